// Copyright 2026 Constellar Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package ingestion

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/constellar/paperflow/ai"
	"github.com/constellar/paperflow/core"
	"github.com/constellar/paperflow/fetch"
	"github.com/constellar/paperflow/index"
	"github.com/constellar/paperflow/pdftext"
	"github.com/constellar/paperflow/storage"
)

const (
	defaultPagesPerChunk      = 5
	defaultConvertConcurrency = 8
	defaultDensifyConcurrency = 4
	defaultMinSectionLength   = 100
	defaultCallTimeout        = 2 * time.Minute
)

// Pipeline orchestrates the ingestion and processing of papers.
// It manages the per-paper state machine and the concurrent conversion and
// densification stages.
type Pipeline struct {
	papers    storage.PaperRepository
	fetcher   fetch.Fetcher
	converter ai.Converter
	densifier ai.Densifier // nil disables densification
	index     index.Service

	pagesPerChunk      int
	convertConcurrency int
	densifyConcurrency int
	minSectionLength   int
	callTimeout        time.Duration
	logger             *slog.Logger

	// extract is pdftext.ExtractPages, replaceable in tests.
	extract func(data []byte) ([]string, error)
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithIndexService sets the search index used for collection tagging.
// Without it, tagging is skipped.
func WithIndexService(svc index.Service) Option {
	return func(p *Pipeline) error {
		p.index = svc
		return nil
	}
}

// WithPagesPerChunk sets how many extracted pages form one conversion chunk.
// Default is 5.
func WithPagesPerChunk(n int) Option {
	return func(p *Pipeline) error {
		if n < 1 {
			n = 1
		}
		p.pagesPerChunk = n
		return nil
	}
}

// WithConvertConcurrency bounds concurrent chunk conversion calls.
// Default is 8.
func WithConvertConcurrency(n int) Option {
	return func(p *Pipeline) error {
		if n < 1 {
			n = 1
		}
		p.convertConcurrency = n
		return nil
	}
}

// WithDensifyConcurrency bounds concurrent section densification calls.
// Default is 4.
func WithDensifyConcurrency(n int) Option {
	return func(p *Pipeline) error {
		if n < 1 {
			n = 1
		}
		p.densifyConcurrency = n
		return nil
	}
}

// WithMinSectionLength sets the body length below which a section skips
// densification. Default is 100.
func WithMinSectionLength(n int) Option {
	return func(p *Pipeline) error {
		if n < 0 {
			n = 0
		}
		p.minSectionLength = n
		return nil
	}
}

// WithCallTimeout sets the timeout applied to each outbound model call.
// Default is 2 minutes.
func WithCallTimeout(d time.Duration) Option {
	return func(p *Pipeline) error {
		if d > 0 {
			p.callTimeout = d
		}
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates a new ingestion pipeline. The provider's densifier may
// be nil, in which case the densification stage passes sections through
// unchanged.
func NewPipeline(
	papers storage.PaperRepository,
	fetcher fetch.Fetcher,
	provider ai.Provider,
	opts ...Option,
) (*Pipeline, error) {
	if papers == nil {
		return nil, ErrPaperRepositoryRequired
	}
	if fetcher == nil {
		return nil, ErrFetcherRequired
	}
	if provider == nil || provider.Converter() == nil {
		return nil, ErrConverterRequired
	}

	p := &Pipeline{
		papers:             papers,
		fetcher:            fetcher,
		converter:          provider.Converter(),
		densifier:          provider.Densifier(),
		pagesPerChunk:      defaultPagesPerChunk,
		convertConcurrency: defaultConvertConcurrency,
		densifyConcurrency: defaultDensifyConcurrency,
		minSectionLength:   defaultMinSectionLength,
		callTimeout:        defaultCallTimeout,
		logger:             slog.Default().With("component", "pipeline"),
		extract:            pdftext.ExtractPages,
	}

	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, err
		}
	}

	return p, nil
}

// Request describes one paper submission. At least one of ArxivID and
// PaperURL must yield an arXiv identifier.
type Request struct {
	ArxivID      string
	PaperURL     string
	Title        string
	CollectionID string
}

// Result is the synchronous answer to a submission.
type Result struct {
	Outcome core.Outcome
	ArxivID string
}

// Submit checks the paper's current status and either launches an
// asynchronous pipeline run, reports a run already in progress, or performs
// only the collection tagging side effect for complete papers. A request
// without a derivable arXiv identifier is skipped with no side effects.
func (p *Pipeline) Submit(ctx context.Context, req Request) (Result, error) {
	record, result, err := p.admit(ctx, req)
	if err != nil || record == nil {
		return result, err
	}

	go p.run(context.Background(), record, req.CollectionID)
	return result, nil
}

// Process runs the pipeline synchronously, for one-shot invocations. The
// returned error is the run error, if any; guard outcomes other than started
// return without running.
func (p *Pipeline) Process(ctx context.Context, req Request) (Result, error) {
	record, result, err := p.admit(ctx, req)
	if err != nil || record == nil {
		return result, err
	}

	return result, p.runStages(ctx, record, req.CollectionID)
}

// Status returns the current record for the identifier, which may also be
// given as an arXiv URL. Returns storage.ErrNotFound if the paper was never
// submitted.
func (p *Pipeline) Status(ctx context.Context, urlOrID string) (*core.PaperRecord, error) {
	arxivID, ok := core.ExtractArxivID(urlOrID)
	if !ok {
		return nil, storage.ErrNotFound
	}
	return p.papers.GetPaper(ctx, arxivID)
}

// admit applies the status guard. It returns a non-nil record only when a
// run should start; otherwise the result carries the terminal outcome.
func (p *Pipeline) admit(ctx context.Context, req Request) (*core.PaperRecord, Result, error) {
	arxivID, ok := deriveArxivID(req)
	if !ok {
		p.logger.Info("skipping submission without arxiv identifier", "url", req.PaperURL)
		return nil, Result{Outcome: core.OutcomeSkipped}, nil
	}

	record, err := p.papers.GetPaper(ctx, arxivID)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return nil, Result{}, err
	}

	if record != nil {
		switch {
		case record.Status.InFlight():
			return nil, Result{Outcome: core.OutcomeInProgress, ArxivID: arxivID}, nil
		case record.Status == core.StatusComplete:
			go p.tagCollection(context.Background(), arxivID, req.CollectionID)
			return nil, Result{Outcome: core.OutcomeAlreadyComplete, ArxivID: arxivID}, nil
		}

		// pending or failed: reset and run again from the start.
		record.Status = core.StatusPending
		record.ErrorMessage = ""
		if req.Title != "" {
			record.Title = core.NormalizeTitle(req.Title)
		}
		if err := p.papers.UpdatePaper(ctx, record); err != nil {
			return nil, Result{}, err
		}
		return record, Result{Outcome: core.OutcomeStarted, ArxivID: arxivID}, nil
	}

	paperURL := core.NormalizeURL(req.PaperURL)
	if paperURL == "" {
		paperURL, _ = core.CanonicalPDFURL(arxivID)
	}
	record = &core.PaperRecord{
		ArxivID:  arxivID,
		PaperURL: paperURL,
		Title:    core.NormalizeTitle(req.Title),
		Status:   core.StatusPending,
	}
	if err := p.papers.CreatePaper(ctx, record); err != nil {
		return nil, Result{}, err
	}
	return record, Result{Outcome: core.OutcomeStarted, ArxivID: arxivID}, nil
}

// run executes the stages and records a failed status on error. Used for
// asynchronous submissions.
func (p *Pipeline) run(ctx context.Context, record *core.PaperRecord, collectionID string) {
	if err := p.runStages(ctx, record, collectionID); err != nil {
		p.logger.Error("pipeline run failed", "arxiv_id", record.ArxivID, "err", err)
	}
}

// runStages drives the record through download, conversion, densification
// and storage. Any stage error marks the record failed and stops the run;
// a later resubmission restarts from the download.
func (p *Pipeline) runStages(ctx context.Context, record *core.PaperRecord, collectionID string) error {
	arxivID := record.ArxivID
	logger := p.logger.With("arxiv_id", arxivID)

	if err := p.papers.SetStatus(ctx, arxivID, core.StatusDownloading, ""); err != nil {
		return p.fail(ctx, arxivID, fmt.Errorf("set status: %w", err))
	}

	pdfData, err := p.fetcher.Fetch(ctx, arxivID, record.PaperURL)
	if err != nil {
		return p.fail(ctx, arxivID, fmt.Errorf("download failed: %w", err))
	}

	pages, err := p.extract(pdfData)
	if err != nil {
		return p.fail(ctx, arxivID, fmt.Errorf("text extraction failed: %w", err))
	}
	pageCount := len(pages)
	pages = pdftext.CleanPages(pages)

	if err := p.papers.SetStatus(ctx, arxivID, core.StatusConverting, ""); err != nil {
		return p.fail(ctx, arxivID, fmt.Errorf("set status: %w", err))
	}

	chunks := SplitChunks(pages, p.pagesPerChunk)
	logger.Info("converting chunks", "pages", pageCount, "chunks", len(chunks))

	markdown, err := p.convert(ctx, chunks)
	if err != nil {
		return p.fail(ctx, arxivID, fmt.Errorf("conversion failed: %w", err))
	}

	if err := p.papers.SetStatus(ctx, arxivID, core.StatusDensifying, ""); err != nil {
		return p.fail(ctx, arxivID, fmt.Errorf("set status: %w", err))
	}

	sections := SplitSections(markdown)
	logger.Info("densifying sections", "sections", len(sections))

	densified, err := p.densify(ctx, sections)
	if err != nil {
		// Densification never discards a paper: fall back to the
		// converted markdown and complete the run.
		logger.Warn("densification failed, storing converted markdown", "err", err)
		densified = markdown
	}

	if err := p.store(ctx, record, markdown, densified, pageCount, collectionID); err != nil {
		return p.fail(ctx, arxivID, err)
	}

	logger.Info("paper ingested", "pages", pageCount, "words", record.WordCount)
	return nil
}

// fail records the failure on the paper and returns the original error.
func (p *Pipeline) fail(ctx context.Context, arxivID string, runErr error) error {
	if err := p.papers.SetStatus(ctx, arxivID, core.StatusFailed, runErr.Error()); err != nil {
		p.logger.Error("failed to record failure", "arxiv_id", arxivID, "err", err)
	}
	return runErr
}

func deriveArxivID(req Request) (string, bool) {
	if req.ArxivID != "" {
		if id, ok := core.ExtractArxivID(req.ArxivID); ok {
			return id, true
		}
	}
	if strings.TrimSpace(req.PaperURL) == "" {
		return "", false
	}
	return core.ExtractArxivID(req.PaperURL)
}
