package ingestion

import (
	"strings"

	"github.com/constellar/paperflow/core"
)

// SplitChunks groups extracted page texts into contiguous chunks of
// pagesPerChunk pages each. Every page lands in exactly one chunk and the
// final chunk takes the remainder; a document with fewer pages than one
// chunk yields a single chunk.
func SplitChunks(pages []string, pagesPerChunk int) []core.Chunk {
	if pagesPerChunk < 1 {
		pagesPerChunk = 1
	}
	if len(pages) == 0 {
		return nil
	}

	chunks := make([]core.Chunk, 0, (len(pages)+pagesPerChunk-1)/pagesPerChunk)
	for start := 0; start < len(pages); start += pagesPerChunk {
		end := min(start+pagesPerChunk, len(pages))
		chunks = append(chunks, core.Chunk{
			Index:   len(chunks),
			Payload: []byte(strings.Join(pages[start:end], "\n")),
		})
	}
	return chunks
}
