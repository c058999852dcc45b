package ingestion

import (
	"context"
	"fmt"
	"strings"

	"github.com/constellar/paperflow/core"
	"github.com/constellar/paperflow/index"
)

// store persists the finished paper and then upserts the collection tag into
// the search index. The repository write comes first: an index failure after
// the durable write fails the run but never loses content, and a
// resubmission of the complete paper retries only the tagging.
func (p *Pipeline) store(ctx context.Context, record *core.PaperRecord, markdown, densified string, pageCount int, collectionID string) error {
	record.Status = core.StatusComplete
	record.ErrorMessage = ""
	record.Markdown = markdown
	record.DensifiedMarkdown = densified
	record.WordCount = len(strings.Fields(densified))
	record.PageCount = pageCount

	if err := p.papers.UpdatePaper(ctx, record); err != nil {
		return fmt.Errorf("store paper: %w", err)
	}

	if p.index == nil || collectionID == "" {
		return nil
	}
	if err := p.upsertIndexDocument(ctx, record, densified, collectionID); err != nil {
		return fmt.Errorf("index paper: %w", err)
	}
	return nil
}

// upsertIndexDocument creates or updates the paper's index document and
// ensures the collection id appears in its tag set exactly once.
func (p *Pipeline) upsertIndexDocument(ctx context.Context, record *core.PaperRecord, content, collectionID string) error {
	docs, err := p.index.ListByDocKey(ctx, record.ArxivID)
	if err != nil {
		return err
	}

	if len(docs) > 0 {
		doc := docs[0]
		metadata, _ := doc.Metadata.WithCollection(collectionID)
		metadata.DocKey = record.ArxivID
		metadata.PaperTitle = record.Title
		metadata.Processed = true
		return p.index.PatchDocument(ctx, doc.ID, index.PatchRequest{
			Content:  content,
			Metadata: metadata,
		})
	}

	if record.Title != "" {
		content = "# " + record.Title + "\n\n" + content
	}
	return p.index.CreateDocument(ctx, index.CreateRequest{
		Content:  content,
		CustomID: index.SanitizeCustomID(record.ArxivID),
		Metadata: index.Metadata{
			DocKey:        record.ArxivID,
			CollectionIDs: []string{collectionID},
			PaperTitle:    record.Title,
			Processed:     true,
		},
	})
}

// tagCollection adds the collection tag to an already-complete paper's index
// document. Failures are logged, not surfaced: the paper itself is done.
func (p *Pipeline) tagCollection(ctx context.Context, arxivID, collectionID string) {
	if p.index == nil || collectionID == "" {
		return
	}
	logger := p.logger.With("arxiv_id", arxivID, "collection_id", collectionID)

	docs, err := p.index.ListByDocKey(ctx, arxivID)
	if err != nil {
		logger.Warn("collection tag lookup failed", "err", err)
		return
	}
	if len(docs) == 0 {
		logger.Warn("no index document to tag")
		return
	}

	doc := docs[0]
	metadata, changed := doc.Metadata.WithCollection(collectionID)
	if !changed {
		return
	}
	if err := p.index.PatchDocument(ctx, doc.ID, index.PatchRequest{Metadata: metadata}); err != nil {
		logger.Warn("collection tag update failed", "err", err)
	}
}
