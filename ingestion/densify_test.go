package ingestion

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/constellar/paperflow/ai/mock"
	"github.com/constellar/paperflow/core"
)

func longBody(word string) string {
	return strings.TrimSpace(strings.Repeat(word+" ", 40))
}

func TestDensifySkipsShortSections(t *testing.T) {
	densifier := mock.NewMockDensifier()
	provider := mock.NewMockProviderWithServices(mock.NewMockConverter(), densifier)
	p, _, _ := newTestPipeline(t, provider)

	sections := []core.Section{
		{Header: "# Title", Body: "short abstract"},
		{Header: "## Notes", Body: "tiny"},
	}

	result, err := p.densify(context.Background(), sections)
	require.NoError(t, err)

	// Short sections are emitted byte-identical with no model call.
	assert.Equal(t, "# Title\nshort abstract\n\n## Notes\ntiny", result)
	assert.Zero(t, densifier.CallCount())
}

func TestDensifyCompressesLongSections(t *testing.T) {
	densifier := mock.NewMockDensifier()
	provider := mock.NewMockProviderWithServices(mock.NewMockConverter(), densifier)
	p, _, _ := newTestPipeline(t, provider)

	body := longBody("results")
	result, err := p.densify(context.Background(), []core.Section{{Header: "## Results", Body: body}})
	require.NoError(t, err)

	assert.Equal(t, "[dense] ## Results\n"+body, result)
	assert.Equal(t, 1, densifier.CallCount())
}

func TestDensifyPartialFailureSubstitutesOriginal(t *testing.T) {
	densifier := mock.NewMockDensifier()
	densifier.DensifyFunc = func(ctx context.Context, section string) (string, error) {
		if strings.Contains(section, "## Methods") {
			return "", errors.New("model timeout")
		}
		return "[dense] " + section, nil
	}
	provider := mock.NewMockProviderWithServices(mock.NewMockConverter(), densifier)
	p, _, _ := newTestPipeline(t, provider)

	sections := []core.Section{
		{Header: "## Intro", Body: longBody("intro")},
		{Header: "## Methods", Body: longBody("methods")},
		{Header: "## Results", Body: longBody("results")},
	}

	result, err := p.densify(context.Background(), sections)
	require.NoError(t, err)

	parts := strings.Split(result, "\n\n")
	require.Len(t, parts, 3)
	assert.True(t, strings.HasPrefix(parts[0], "[dense] ## Intro"))
	assert.Equal(t, sections[1].Text(), parts[1])
	assert.True(t, strings.HasPrefix(parts[2], "[dense] ## Results"))
}

func TestDensifyEmptyResultSubstitutesOriginal(t *testing.T) {
	densifier := mock.NewMockDensifier()
	densifier.DensifyFunc = func(ctx context.Context, section string) (string, error) {
		return "  \n ", nil
	}
	provider := mock.NewMockProviderWithServices(mock.NewMockConverter(), densifier)
	p, _, _ := newTestPipeline(t, provider)

	sections := []core.Section{{Header: "## Intro", Body: longBody("intro")}}
	result, err := p.densify(context.Background(), sections)
	require.NoError(t, err)
	assert.Equal(t, sections[0].Text(), result)
}

func TestDensifyWithoutDensifierIsPassthrough(t *testing.T) {
	provider := mock.NewMockProviderWithServices(mock.NewMockConverter(), nil)
	p, _, _ := newTestPipeline(t, provider)

	sections := []core.Section{
		{Header: "## Intro", Body: longBody("intro")},
		{Header: "## Results", Body: longBody("results")},
	}

	result, err := p.densify(context.Background(), sections)
	require.NoError(t, err)
	assert.Equal(t, sections[0].Text()+"\n\n"+sections[1].Text(), result)
}

func TestDensifyMinLengthOption(t *testing.T) {
	densifier := mock.NewMockDensifier()
	provider := mock.NewMockProviderWithServices(mock.NewMockConverter(), densifier)
	p, _, _ := newTestPipeline(t, provider, WithMinSectionLength(10))

	sections := []core.Section{
		{Header: "## A", Body: "123456789"},  // below the threshold
		{Header: "## B", Body: "1234567890"}, // at the threshold
	}

	_, err := p.densify(context.Background(), sections)
	require.NoError(t, err)
	assert.Equal(t, 1, densifier.CallCount())
	assert.Contains(t, densifier.Calls()[0], "## B")
}
