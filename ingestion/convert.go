package ingestion

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/constellar/paperflow/core"
)

// convert turns the document's chunks into one markdown document. Chunks are
// converted concurrently on a bounded pool; each result is written into the
// slot addressed by its chunk index so the join preserves source order no
// matter when calls complete. A failed or empty conversion leaves its slot
// empty. If more than half the chunks end up empty the document is rejected
// with ErrTooManyEmptyChunks.
func (p *Pipeline) convert(ctx context.Context, chunks []core.Chunk) (string, error) {
	if len(chunks) == 0 {
		return "", fmt.Errorf("%w: no chunks", ErrTooManyEmptyChunks)
	}

	results := make([]string, len(chunks))

	if len(chunks) == 1 {
		text, err := p.convertChunk(ctx, chunks[0])
		if err != nil {
			p.logger.Warn("chunk conversion failed", "chunk", 0, "err", err)
		} else {
			results[0] = text
		}
	} else {
		pool, err := ants.NewPool(p.convertConcurrency)
		if err != nil {
			return "", err
		}
		defer pool.Release()

		var wg sync.WaitGroup
		for _, chunk := range chunks {
			chunk := chunk
			wg.Add(1)
			submitErr := pool.Submit(func() {
				defer wg.Done()
				text, err := p.convertChunk(ctx, chunk)
				if err != nil {
					p.logger.Warn("chunk conversion failed", "chunk", chunk.Index, "err", err)
					return
				}
				results[chunk.Index] = text
			})
			if submitErr != nil {
				wg.Done()
				p.logger.Warn("chunk conversion not scheduled", "chunk", chunk.Index, "err", submitErr)
			}
		}
		wg.Wait()
	}

	empty := 0
	parts := make([]string, 0, len(results))
	for _, text := range results {
		if strings.TrimSpace(text) == "" {
			empty++
			continue
		}
		parts = append(parts, text)
	}

	if empty > len(chunks)/2 {
		return "", fmt.Errorf("%w: %d of %d", ErrTooManyEmptyChunks, empty, len(chunks))
	}

	return strings.Join(parts, "\n\n"), nil
}

func (p *Pipeline) convertChunk(ctx context.Context, chunk core.Chunk) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, p.callTimeout)
	defer cancel()
	return p.converter.Convert(callCtx, chunk.Payload)
}
