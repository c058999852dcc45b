package search

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/constellar/paperflow/core"
	badgerstore "github.com/constellar/paperflow/storage/badger"
)

func newSearcherWithPapers(t *testing.T, records ...*core.PaperRecord) *Searcher {
	t.Helper()

	repo, _, err := badgerstore.NewMemoryRepository()
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	for _, record := range records {
		require.NoError(t, repo.CreatePaper(context.Background(), record))
	}

	searcher, err := NewSearcher(repo)
	require.NoError(t, err)
	return searcher
}

func TestNewSearcherRequiresRepository(t *testing.T) {
	_, err := NewSearcher(nil)
	assert.ErrorIs(t, err, ErrPaperRepositoryRequired)
}

func TestFindRanksTitleMatchesFirst(t *testing.T) {
	searcher := newSearcherWithPapers(t,
		&core.PaperRecord{
			ArxivID:           "2301.00001",
			Title:             "Transformers for protein folding",
			Status:            core.StatusComplete,
			DensifiedMarkdown: "We study sequence models.",
		},
		&core.PaperRecord{
			ArxivID:           "2301.00002",
			Title:             "Graph networks",
			Status:            core.StatusComplete,
			DensifiedMarkdown: "A passing mention of transformers.",
		},
	)

	results, err := searcher.Find(context.Background(), "transformers", 10)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "2301.00001", results[0].Record.ArxivID)
	assert.Greater(t, results[0].Score, results[1].Score)
}

func TestFindSkipsIncompletePapers(t *testing.T) {
	searcher := newSearcherWithPapers(t,
		&core.PaperRecord{
			ArxivID:           "2301.00001",
			Title:             "Quantum error correction",
			Status:            core.StatusFailed,
			DensifiedMarkdown: "quantum quantum quantum",
		},
		&core.PaperRecord{
			ArxivID:           "2301.00002",
			Title:             "Quantum annealing",
			Status:            core.StatusComplete,
			DensifiedMarkdown: "Results on quantum hardware.",
		},
	)

	results, err := searcher.Find(context.Background(), "quantum", 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "2301.00002", results[0].Record.ArxivID)
}

func TestFindVerbatimBoost(t *testing.T) {
	searcher := newSearcherWithPapers(t,
		&core.PaperRecord{
			ArxivID:           "2301.00001",
			Title:             "Paper A",
			Status:            core.StatusComplete,
			DensifiedMarkdown: "sparse attention kernels for long sequences",
		},
		&core.PaperRecord{
			ArxivID:           "2301.00002",
			Title:             "Paper B",
			Status:            core.StatusComplete,
			DensifiedMarkdown: "attention attention attention attention attention",
		},
	)

	// Only paper A contains both words; the verbatim boost outranks
	// repetition of a single term.
	results, err := searcher.Find(context.Background(), "sparse attention", 10)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "2301.00001", results[0].Record.ArxivID)
}

func TestFindMaxHits(t *testing.T) {
	searcher := newSearcherWithPapers(t,
		&core.PaperRecord{ArxivID: "2301.00001", Status: core.StatusComplete, DensifiedMarkdown: "neural networks"},
		&core.PaperRecord{ArxivID: "2301.00002", Status: core.StatusComplete, DensifiedMarkdown: "neural networks"},
		&core.PaperRecord{ArxivID: "2301.00003", Status: core.StatusComplete, DensifiedMarkdown: "neural networks"},
	)

	results, err := searcher.Find(context.Background(), "neural", 2)
	require.NoError(t, err)
	assert.Len(t, results, 2)
}

func TestFindEmptyQuery(t *testing.T) {
	searcher := newSearcherWithPapers(t)

	_, err := searcher.Find(context.Background(), "the a of", 10)
	assert.ErrorIs(t, err, ErrEmptyQuery)
}

func TestFindNoMatches(t *testing.T) {
	searcher := newSearcherWithPapers(t,
		&core.PaperRecord{ArxivID: "2301.00001", Status: core.StatusComplete, DensifiedMarkdown: "graph theory"},
	)

	results, err := searcher.Find(context.Background(), "astrophysics", 10)
	require.NoError(t, err)
	assert.Empty(t, results)
}
