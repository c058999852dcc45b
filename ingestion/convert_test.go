package ingestion

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/constellar/paperflow/ai/mock"
	"github.com/constellar/paperflow/core"
)

func makeChunks(n int) []core.Chunk {
	chunks := make([]core.Chunk, n)
	for i := range chunks {
		chunks[i] = core.Chunk{Index: i, Payload: []byte(strconv.Itoa(i))}
	}
	return chunks
}

func TestConvertPreservesOrderUnderArbitraryCompletion(t *testing.T) {
	provider := mock.NewMockProvider()
	converter := provider.(*mock.MockProvider).GetMockConverter()
	converter.ConvertFunc = func(ctx context.Context, chunk []byte) (string, error) {
		idx, _ := strconv.Atoi(string(chunk))
		// Earlier chunks finish last.
		time.Sleep(time.Duration(6-idx) * 10 * time.Millisecond)
		return fmt.Sprintf("chunk-%d", idx), nil
	}
	p, _, _ := newTestPipeline(t, provider)

	result, err := p.convert(context.Background(), makeChunks(6))
	require.NoError(t, err)
	assert.Equal(t, "chunk-0\n\nchunk-1\n\nchunk-2\n\nchunk-3\n\nchunk-4\n\nchunk-5", result)
}

func TestConvertSingleChunkDirectCall(t *testing.T) {
	provider := mock.NewMockProvider()
	p, _, _ := newTestPipeline(t, provider)

	result, err := p.convert(context.Background(), []core.Chunk{{Index: 0, Payload: []byte("only chunk")}})
	require.NoError(t, err)
	assert.Equal(t, "## Converted\n\nonly chunk", result)
	assert.Equal(t, 1, provider.(*mock.MockProvider).GetMockConverter().CallCount())
}

func TestConvertQualityGateBoundary(t *testing.T) {
	// 5 chunks: 2 empty results pass the gate, 3 fail it.
	emptyResults := func(empties int) func(ctx context.Context, chunk []byte) (string, error) {
		return func(ctx context.Context, chunk []byte) (string, error) {
			idx, _ := strconv.Atoi(string(chunk))
			if idx < empties {
				return "", nil
			}
			return "chunk-" + string(chunk), nil
		}
	}

	provider := mock.NewMockProvider()
	converter := provider.(*mock.MockProvider).GetMockConverter()
	p, _, _ := newTestPipeline(t, provider)

	converter.ConvertFunc = emptyResults(2)
	result, err := p.convert(context.Background(), makeChunks(5))
	require.NoError(t, err)
	assert.Equal(t, "chunk-2\n\nchunk-3\n\nchunk-4", result)

	converter.ConvertFunc = emptyResults(3)
	_, err = p.convert(context.Background(), makeChunks(5))
	assert.ErrorIs(t, err, ErrTooManyEmptyChunks)
}

func TestConvertChunkErrorIsSoft(t *testing.T) {
	provider := mock.NewMockProvider()
	provider.(*mock.MockProvider).GetMockConverter().ConvertFunc =
		func(ctx context.Context, chunk []byte) (string, error) {
			if string(chunk) == "1" {
				return "", errors.New("transient failure")
			}
			return "chunk-" + string(chunk), nil
		}
	p, _, _ := newTestPipeline(t, provider)

	result, err := p.convert(context.Background(), makeChunks(4))
	require.NoError(t, err)
	assert.Equal(t, "chunk-0\n\nchunk-2\n\nchunk-3", result)
	assert.NotContains(t, result, "chunk-1")
}

func TestConvertWhitespaceOnlyResultCountsAsEmpty(t *testing.T) {
	provider := mock.NewMockProvider()
	provider.(*mock.MockProvider).GetMockConverter().ConvertFunc =
		func(ctx context.Context, chunk []byte) (string, error) {
			return " \n\t ", nil
		}
	p, _, _ := newTestPipeline(t, provider)

	_, err := p.convert(context.Background(), makeChunks(3))
	assert.ErrorIs(t, err, ErrTooManyEmptyChunks)
}

func TestConvertBoundsConcurrency(t *testing.T) {
	var mu sync.Mutex
	active, peak := 0, 0

	provider := mock.NewMockProvider()
	provider.(*mock.MockProvider).GetMockConverter().ConvertFunc =
		func(ctx context.Context, chunk []byte) (string, error) {
			mu.Lock()
			active++
			if active > peak {
				peak = active
			}
			mu.Unlock()

			time.Sleep(20 * time.Millisecond)

			mu.Lock()
			active--
			mu.Unlock()
			return "x-" + string(chunk), nil
		}
	p, _, _ := newTestPipeline(t, provider, WithConvertConcurrency(2))

	result, err := p.convert(context.Background(), makeChunks(8))
	require.NoError(t, err)
	assert.Len(t, strings.Split(result, "\n\n"), 8)

	mu.Lock()
	defer mu.Unlock()
	assert.LessOrEqual(t, peak, 2)
}
