package redensify

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/constellar/paperflow/ai/mock"
	"github.com/constellar/paperflow/core"
	"github.com/constellar/paperflow/storage"
	badgerstore "github.com/constellar/paperflow/storage/badger"
)

func longMarkdown() string {
	body := strings.TrimSpace(strings.Repeat("findings ", 30))
	return "## Results\n\n" + body + "\n\n## Conclusion\n\n" + body
}

func newTestRedensifier(t *testing.T, densifier *mock.MockDensifier) (*Redensifier, storage.PaperRepository) {
	t.Helper()

	repo, _, err := badgerstore.NewMemoryRepository()
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	config := DefaultConfig()
	config.RetryDelay = time.Millisecond

	r, err := NewRedensifier(repo, densifier, config, io.Discard)
	require.NoError(t, err)
	return r, repo
}

func TestNewRedensifierValidation(t *testing.T) {
	repo, _, err := badgerstore.NewMemoryRepository()
	require.NoError(t, err)
	defer repo.Close()

	_, err = NewRedensifier(nil, mock.NewMockDensifier(), nil, io.Discard)
	assert.ErrorIs(t, err, ErrPaperRepositoryRequired)

	_, err = NewRedensifier(repo, nil, nil, io.Discard)
	assert.ErrorIs(t, err, ErrDensifierRequired)
}

func TestRunRebuildsDensifiedMarkdown(t *testing.T) {
	densifier := mock.NewMockDensifier()
	r, repo := newTestRedensifier(t, densifier)

	require.NoError(t, repo.CreatePaper(context.Background(), &core.PaperRecord{
		ArxivID:           "2301.00001",
		Status:            core.StatusComplete,
		Markdown:          longMarkdown(),
		DensifiedMarkdown: "stale output",
	}))

	require.NoError(t, r.Run(context.Background()))

	record, err := repo.GetPaper(context.Background(), "2301.00001")
	require.NoError(t, err)
	assert.Contains(t, record.DensifiedMarkdown, "[dense] ## Results")
	assert.Contains(t, record.DensifiedMarkdown, "[dense] ## Conclusion")
	assert.Equal(t, len(strings.Fields(record.DensifiedMarkdown)), record.WordCount)
	assert.Equal(t, 2, densifier.CallCount())
}

func TestRunSkipsIncompleteAndEmptyPapers(t *testing.T) {
	densifier := mock.NewMockDensifier()
	r, repo := newTestRedensifier(t, densifier)

	require.NoError(t, repo.CreatePaper(context.Background(), &core.PaperRecord{
		ArxivID: "2301.00001",
		Status:  core.StatusFailed,
	}))
	require.NoError(t, repo.CreatePaper(context.Background(), &core.PaperRecord{
		ArxivID: "2301.00002",
		Status:  core.StatusComplete, // no markdown yet
	}))

	require.NoError(t, r.Run(context.Background()))
	assert.Zero(t, densifier.CallCount())
}

func TestRunRetriesTransientFailures(t *testing.T) {
	densifier := mock.NewMockDensifier()
	var attempts int
	densifier.DensifyFunc = func(ctx context.Context, section string) (string, error) {
		attempts++
		if attempts == 1 {
			return "", errors.New("transient")
		}
		return "[dense] " + section, nil
	}
	r, repo := newTestRedensifier(t, densifier)

	require.NoError(t, repo.CreatePaper(context.Background(), &core.PaperRecord{
		ArxivID:  "2301.00001",
		Status:   core.StatusComplete,
		Markdown: "## Only\n\n" + strings.TrimSpace(strings.Repeat("data ", 30)),
	}))

	require.NoError(t, r.Run(context.Background()))

	record, err := repo.GetPaper(context.Background(), "2301.00001")
	require.NoError(t, err)
	assert.Contains(t, record.DensifiedMarkdown, "[dense] ## Only")
}

func TestRunKeepsOriginalOnPersistentFailure(t *testing.T) {
	densifier := mock.NewMockDensifier()
	densifier.DensifyFunc = func(ctx context.Context, section string) (string, error) {
		return "", errors.New("persistent")
	}
	r, repo := newTestRedensifier(t, densifier)

	body := strings.TrimSpace(strings.Repeat("data ", 30))
	require.NoError(t, repo.CreatePaper(context.Background(), &core.PaperRecord{
		ArxivID:  "2301.00001",
		Status:   core.StatusComplete,
		Markdown: "## Only\n\n" + body,
	}))

	// Sections fall back to their original text; the run itself succeeds.
	require.NoError(t, r.Run(context.Background()))

	record, err := repo.GetPaper(context.Background(), "2301.00001")
	require.NoError(t, err)
	assert.Equal(t, "## Only\n"+body, record.DensifiedMarkdown)
}
