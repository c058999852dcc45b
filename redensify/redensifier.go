package redensify

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/constellar/paperflow/ai"
	"github.com/constellar/paperflow/core"
	"github.com/constellar/paperflow/ingestion"
	"github.com/constellar/paperflow/storage"
)

// Config holds tuning parameters for a redensification run.
type Config struct {
	// ReportInterval reports progress every N papers.
	ReportInterval int
	// MaxRetries is the attempt budget for each densification call.
	MaxRetries int
	// RetryDelay is the base delay for exponential backoff.
	RetryDelay time.Duration
	// MinSectionLength skips densification for shorter section bodies.
	MinSectionLength int
}

// DefaultConfig returns sensible defaults for interactive use.
func DefaultConfig() *Config {
	return &Config{
		ReportInterval:   10,
		MaxRetries:       3,
		RetryDelay:       time.Second,
		MinSectionLength: 100,
	}
}

// Redensifier rebuilds densified markdown for all complete papers.
type Redensifier struct {
	papers    storage.PaperRepository
	densifier ai.Densifier
	config    *Config
	out       io.Writer
	logger    *slog.Logger
}

// NewRedensifier creates a redensifier writing progress to out.
func NewRedensifier(papers storage.PaperRepository, densifier ai.Densifier, config *Config, out io.Writer) (*Redensifier, error) {
	if papers == nil {
		return nil, ErrPaperRepositoryRequired
	}
	if densifier == nil {
		return nil, ErrDensifierRequired
	}
	if config == nil {
		config = DefaultConfig()
	}

	return &Redensifier{
		papers:    papers,
		densifier: densifier,
		config:    config,
		out:       out,
		logger:    slog.Default().With("component", "redensify"),
	}, nil
}

// Run redensifies every complete paper that has converted markdown.
// Per-paper failures are logged and counted but don't stop the run; the
// returned error summarizes them.
func (r *Redensifier) Run(ctx context.Context) error {
	records, err := r.papers.ListPapers(ctx)
	if err != nil {
		return fmt.Errorf("list papers: %w", err)
	}

	eligible := make([]*core.PaperRecord, 0, len(records))
	for _, record := range records {
		if record.Status == core.StatusComplete && record.Markdown != "" {
			eligible = append(eligible, record)
		}
	}
	if len(eligible) == 0 {
		fmt.Fprintln(r.out, "No complete papers to redensify")
		return nil
	}

	tracker := NewProgressTracker(r.out, len(eligible), r.config.ReportInterval)
	tracker.Start()

	failures := 0
	for _, record := range eligible {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := r.processPaper(ctx, record); err != nil {
			r.logger.Warn("paper redensification failed", "arxiv_id", record.ArxivID, "err", err)
			failures++
		}
		tracker.Increment(1)
	}
	tracker.Finish()

	fmt.Fprintf(r.out, "Redensified %d papers (%d failed) in %s\n",
		len(eligible)-failures, failures, tracker.Elapsed().Round(time.Second))

	if failures > 0 {
		return fmt.Errorf("%d of %d papers failed", failures, len(eligible))
	}
	return nil
}

// processPaper re-densifies one paper from its converted markdown. Sections
// that fail after all retries keep their original text.
func (r *Redensifier) processPaper(ctx context.Context, record *core.PaperRecord) error {
	sections := ingestion.SplitSections(record.Markdown)
	parts := make([]string, len(sections))

	for i, section := range sections {
		original := section.Text()
		if len(section.Body) < r.config.MinSectionLength {
			parts[i] = original
			continue
		}

		var dense string
		err := RetryWithBackoff(ctx, func() error {
			var callErr error
			dense, callErr = r.densifier.Densify(ctx, original)
			return callErr
		}, r.config.MaxRetries, r.config.RetryDelay)

		if err != nil || strings.TrimSpace(dense) == "" {
			if err != nil {
				r.logger.Warn("section densification failed, keeping original",
					"arxiv_id", record.ArxivID, "section", i, "err", err)
			}
			parts[i] = original
			continue
		}
		parts[i] = dense
	}

	record.DensifiedMarkdown = strings.Join(parts, "\n\n")
	record.WordCount = len(strings.Fields(record.DensifiedMarkdown))
	return r.papers.UpdatePaper(ctx, record)
}
