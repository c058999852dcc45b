// Copyright 2026 Constellar Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package openai

import (
	"context"
	"log/slog"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/constellar/paperflow/ai"
)

// Converter implements ai.Converter using OpenAI-compatible chat APIs.
type Converter struct {
	client llms.Model
	logger *slog.Logger
}

// newConverter is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newConverter(config *ai.Config) (*Converter, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	// Use "none" as token for local OpenAI-compatible services that don't
	// require authentication.
	token := config.APIKey
	if token == "" {
		token = "none"
	}
	client, err := openai.New(
		openai.WithBaseURL(config.Host),
		openai.WithToken(token),
		openai.WithModel(config.ConvertModel),
	)
	if err != nil {
		return nil, err
	}

	return &Converter{
		client: client,
		logger: slog.Default().With("component", "openai-converter"),
	}, nil
}

// NewConverter creates a new converter using the provided configuration.
//
// Returns ai.Converter interface to enforce abstraction.
func NewConverter(config *ai.Config) (ai.Converter, error) {
	return newConverter(config)
}

// Convert turns a raw text chunk of a paper into structured markdown.
// An empty result is returned as-is; the conversion stage treats it as an
// empty chunk, not an error.
func (c *Converter) Convert(ctx context.Context, chunk []byte) (string, error) {
	c.logger.Debug("converting chunk", "bytes", len(chunk))

	content := []llms.MessageContent{
		{
			Role:  llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{llms.TextPart(ai.ConvertPrompt)},
		},
		{
			Role:  llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{llms.TextPart(string(chunk))},
		},
	}

	response, err := c.client.GenerateContent(ctx, content, llms.WithTemperature(0.0))
	if err != nil {
		c.logger.Error("conversion call failed", "err", err)
		return "", err
	}

	if len(response.Choices) < 1 {
		c.logger.Warn("no choices returned from conversion model")
		return "", nil
	}

	return strings.TrimSpace(response.Choices[0].Content), nil
}
