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
	"log/slog"

	"github.com/constellar/paperflow/ai"
)

// Provider implements ai.Provider using OpenAI-compatible chat services.
type Provider struct {
	config    *ai.Config
	converter *Converter
	densifier *Densifier
	logger    *slog.Logger
}

// NewProvider creates a new provider with OpenAI-compatible services.
// The config is validated and normalized before use. When no densification
// model is configured the provider's Densifier is nil, which makes the
// densification stage a passthrough.
//
// Returns ai.Provider interface (not *Provider) to enforce abstraction.
func NewProvider(config *ai.Config) (ai.Provider, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	converter, err := newConverter(config)
	if err != nil {
		return nil, err
	}

	var densifier *Densifier
	if config.DensifyModel != "" {
		densifier, err = newDensifier(config)
		if err != nil {
			return nil, err
		}
	}

	return &Provider{
		config:    config,
		converter: converter,
		densifier: densifier,
		logger:    slog.Default().With("component", "openai-provider"),
	}, nil
}

// Converter returns the chunk conversion capability.
func (p *Provider) Converter() ai.Converter {
	return p.converter
}

// Densifier returns the section compression capability, or nil when no
// densification model is configured.
func (p *Provider) Densifier() ai.Densifier {
	if p.densifier == nil {
		return nil
	}
	return p.densifier
}

// Close releases resources held by the provider.
// Currently a no-op as the underlying clients don't require explicit cleanup.
func (p *Provider) Close() error {
	p.logger.Debug("closing OpenAI provider")
	return nil
}
