package search

import (
	"context"
	"log/slog"
	"math"
	"sort"

	"github.com/constellar/paperflow/core"
	"github.com/constellar/paperflow/storage"
)

// Result is one ranked search hit.
type Result struct {
	Record *core.PaperRecord
	Score  float32
}

// Searcher ranks stored papers against keyword queries.
type Searcher struct {
	papers storage.PaperRepository
	logger *slog.Logger
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// NewSearcher creates a new searcher.
func NewSearcher(papers storage.PaperRepository, opts ...Option) (*Searcher, error) {
	if papers == nil {
		return nil, ErrPaperRepositoryRequired
	}

	s := &Searcher{
		papers: papers,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Find searches completed papers for the query and returns up to maxHits
// results ranked by relevance. Title matches weigh more than body matches,
// and papers containing every query word get a verbatim boost.
func (s *Searcher) Find(ctx context.Context, query string, maxHits int) ([]*Result, error) {
	queryWords := tokenizeAndFilter(query)
	if len(queryWords) == 0 {
		return nil, ErrEmptyQuery
	}

	records, err := s.papers.ListPapers(ctx)
	if err != nil {
		s.logger.Error("error listing papers", "err", err)
		return nil, err
	}

	results := make([]*Result, 0)
	for _, record := range records {
		if record.Status != core.StatusComplete {
			continue
		}

		score := s.score(record, queryWords)
		if score <= 0 {
			continue
		}
		results = append(results, &Result{Record: record, Score: score})
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if maxHits > 0 && len(results) > maxHits {
		results = results[:maxHits]
	}
	return results, nil
}

// score combines title and body term frequency. Body frequency is
// log-damped so very long papers don't dominate on raw repetition.
func (s *Searcher) score(record *core.PaperRecord, queryWords []string) float32 {
	titleWords := termCounts(record.Title)
	bodyWords := termCounts(record.DensifiedMarkdown)

	var score float64
	for _, word := range queryWords {
		if titleWords[word] > 0 {
			score += 2.0
		}
		if n := bodyWords[word]; n > 0 {
			score += 1.0 + math.Log1p(float64(n))
		}
	}
	if score == 0 {
		return 0
	}

	if containsAllQueryWords(bodyWords, queryWords) {
		score += 3.0
	}
	return float32(score)
}
