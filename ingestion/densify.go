package ingestion

import (
	"context"
	"strings"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/constellar/paperflow/core"
)

// densify compresses the document section by section on a bounded pool and
// rejoins the results in source order. Without a densifier the sections pass
// through unchanged. Sections with bodies shorter than the configured minimum
// are emitted as-is without a model call; a failed or empty call substitutes
// the original section text, so one bad section never loses the others'
// compression.
func (p *Pipeline) densify(ctx context.Context, sections []core.Section) (string, error) {
	parts := make([]string, len(sections))

	if p.densifier == nil {
		for i, section := range sections {
			parts[i] = section.Text()
		}
		return strings.Join(parts, "\n\n"), nil
	}

	pool, err := ants.NewPool(p.densifyConcurrency)
	if err != nil {
		return "", err
	}
	defer pool.Release()

	var wg sync.WaitGroup
	for i, section := range sections {
		original := section.Text()
		if len(section.Body) < p.minSectionLength {
			parts[i] = original
			continue
		}

		i := i
		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()
			parts[i] = p.densifySection(ctx, i, original)
		})
		if submitErr != nil {
			wg.Done()
			p.logger.Warn("section densification not scheduled", "section", i, "err", submitErr)
			parts[i] = original
		}
	}
	wg.Wait()

	return strings.Join(parts, "\n\n"), nil
}

// densifySection returns the densified text, or the original on any failure.
func (p *Pipeline) densifySection(ctx context.Context, idx int, original string) string {
	callCtx, cancel := context.WithTimeout(ctx, p.callTimeout)
	defer cancel()

	dense, err := p.densifier.Densify(callCtx, original)
	if err != nil {
		p.logger.Warn("section densification failed, keeping original", "section", idx, "err", err)
		return original
	}
	if strings.TrimSpace(dense) == "" {
		p.logger.Warn("section densified to nothing, keeping original", "section", idx)
		return original
	}
	return dense
}
