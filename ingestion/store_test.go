package ingestion

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/constellar/paperflow/ai/mock"
	"github.com/constellar/paperflow/core"
	"github.com/constellar/paperflow/index"
)

func TestStoreUpdatesExistingIndexDocument(t *testing.T) {
	provider := mock.NewMockProvider()
	p, _, idx := newTestPipeline(t, provider)

	idx.docs = []index.Document{{
		ID:       "doc-1",
		Metadata: index.Metadata{DocKey: testArxivID, CollectionIDs: []string{"c1"}},
	}}

	_, err := p.Process(context.Background(), Request{ArxivID: testArxivID, CollectionID: "c2"})
	require.NoError(t, err)

	assert.Empty(t, idx.createCalls())
	patches := idx.patchCalls()
	require.Len(t, patches, 1)
	assert.Equal(t, "doc-1", patches[0].id)
	assert.Equal(t, []string{"c1", "c2"}, patches[0].req.Metadata.CollectionIDs)
	assert.True(t, patches[0].req.Metadata.Processed)
	assert.NotEmpty(t, patches[0].req.Content)
}

func TestStoreTagIsIdempotent(t *testing.T) {
	provider := mock.NewMockProvider()
	p, _, idx := newTestPipeline(t, provider)

	idx.docs = []index.Document{{
		ID:       "doc-1",
		Metadata: index.Metadata{DocKey: testArxivID, CollectionIDs: []string{"c1"}},
	}}

	// Tagging with an already-present collection id leaves the set unchanged.
	_, err := p.Process(context.Background(), Request{ArxivID: testArxivID, CollectionID: "c1"})
	require.NoError(t, err)

	patches := idx.patchCalls()
	require.Len(t, patches, 1)
	assert.Equal(t, []string{"c1"}, patches[0].req.Metadata.CollectionIDs)
}

func TestStoreIndexFailurePreservesContent(t *testing.T) {
	provider := mock.NewMockProvider()
	p, repo, idx := newTestPipeline(t, provider)
	idx.listErr = errors.New("index unavailable")

	_, err := p.Process(context.Background(), Request{ArxivID: testArxivID, CollectionID: "c1"})
	require.Error(t, err)

	// The run failed but the durable write survives: resubmission only
	// needs to retry the tagging.
	record, getErr := repo.GetPaper(context.Background(), testArxivID)
	require.NoError(t, getErr)
	assert.Equal(t, core.StatusFailed, record.Status)
	assert.Contains(t, record.ErrorMessage, "index paper")
	assert.NotEmpty(t, record.Markdown)
	assert.NotEmpty(t, record.DensifiedMarkdown)
}

func TestStoreSkipsIndexWithoutCollection(t *testing.T) {
	provider := mock.NewMockProvider()
	p, _, idx := newTestPipeline(t, provider)

	_, err := p.Process(context.Background(), Request{ArxivID: testArxivID})
	require.NoError(t, err)
	assert.Empty(t, idx.createCalls())
	assert.Empty(t, idx.patchCalls())
}

func TestTagCollectionNoChangeSkipsPatch(t *testing.T) {
	provider := mock.NewMockProvider()
	p, repo, idx := newTestPipeline(t, provider)

	require.NoError(t, repo.CreatePaper(context.Background(), &core.PaperRecord{
		ArxivID: testArxivID,
		Status:  core.StatusComplete,
	}))
	idx.docs = []index.Document{{
		ID:       "doc-1",
		Metadata: index.Metadata{DocKey: testArxivID, CollectionIDs: []string{"c1"}},
	}}

	result, err := p.Submit(context.Background(), Request{ArxivID: testArxivID, CollectionID: "c1"})
	require.NoError(t, err)
	assert.Equal(t, core.OutcomeAlreadyComplete, result.Outcome)

	// The tag is already present, so no patch ever happens.
	assert.Never(t, func() bool {
		return len(idx.patchCalls()) > 0
	}, 200*time.Millisecond, 20*time.Millisecond)
}

func TestTagCollectionMissingDocumentIsLoggedOnly(t *testing.T) {
	provider := mock.NewMockProvider()
	p, repo, idx := newTestPipeline(t, provider)

	require.NoError(t, repo.CreatePaper(context.Background(), &core.PaperRecord{
		ArxivID: testArxivID,
		Status:  core.StatusComplete,
	}))

	result, err := p.Submit(context.Background(), Request{ArxivID: testArxivID, CollectionID: "c1"})
	require.NoError(t, err)
	assert.Equal(t, core.OutcomeAlreadyComplete, result.Outcome)

	assert.Never(t, func() bool {
		return len(idx.patchCalls()) > 0 || len(idx.createCalls()) > 0
	}, 200*time.Millisecond, 20*time.Millisecond)
}
