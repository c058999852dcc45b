package openai

import (
	"context"
	"log/slog"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/constellar/paperflow/ai"
)

// Densifier implements ai.Densifier using OpenAI-compatible chat APIs.
type Densifier struct {
	client llms.Model
	logger *slog.Logger
}

func newDensifier(config *ai.Config) (*Densifier, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	token := config.APIKey
	if token == "" {
		token = "none"
	}
	client, err := openai.New(
		openai.WithBaseURL(config.Host),
		openai.WithToken(token),
		openai.WithModel(config.DensifyModel),
	)
	if err != nil {
		return nil, err
	}

	return &Densifier{
		client: client,
		logger: slog.Default().With("component", "openai-densifier"),
	}, nil
}

// NewDensifier creates a new densifier using the provided configuration.
//
// Returns ai.Densifier interface to enforce abstraction.
func NewDensifier(config *ai.Config) (ai.Densifier, error) {
	return newDensifier(config)
}

// Densify compresses a markdown section. The densification stage substitutes
// the original section text when an error or empty result is returned.
func (d *Densifier) Densify(ctx context.Context, section string) (string, error) {
	d.logger.Debug("densifying section", "chars", len(section))

	content := []llms.MessageContent{
		{
			Role:  llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{llms.TextPart(ai.DensifyPrompt + section)},
		},
	}

	response, err := d.client.GenerateContent(ctx, content, llms.WithTemperature(0.0))
	if err != nil {
		d.logger.Warn("densification call failed", "err", err)
		return "", err
	}

	if len(response.Choices) < 1 {
		return "", nil
	}

	return strings.TrimSpace(response.Choices[0].Content), nil
}
