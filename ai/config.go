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


package ai

import (
	"errors"
	"strings"
)

// Config holds configuration for LLM service providers.
type Config struct {
	// Host is the base URL for the OpenAI-compatible chat API.
	// Example: "http://localhost:11434/v1" for a local server.
	Host string

	// APIKey authenticates requests. Leave empty for local services that
	// don't require authentication; when empty, densification is considered
	// unavailable and the densification stage becomes a passthrough.
	APIKey string

	// ConvertModel is the model used for chunk-to-markdown conversion.
	ConvertModel string

	// DensifyModel is the model used for section densification.
	// Empty disables densification.
	DensifyModel string
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithHost sets the chat API base URL.
func WithHost(host string) ConfigOption {
	return func(c *Config) {
		c.Host = host
	}
}

// WithAPIKey sets the API key.
func WithAPIKey(key string) ConfigOption {
	return func(c *Config) {
		c.APIKey = key
	}
}

// WithConvertModel sets the conversion model identifier.
func WithConvertModel(model string) ConfigOption {
	return func(c *Config) {
		c.ConvertModel = model
	}
}

// WithDensifyModel sets the densification model identifier.
func WithDensifyModel(model string) ConfigOption {
	return func(c *Config) {
		c.DensifyModel = model
	}
}

// DefaultConfig returns a Config with sensible defaults for a local
// OpenAI-compatible service.
func DefaultConfig() *Config {
	return &Config{
		Host:         "http://localhost:11434/v1",
		ConvertModel: "qwen2.5:14b",
		DensifyModel: "qwen2.5:14b",
	}
}

// NewConfig creates a Config with default values and applies the provided
// options.
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Normalize ensures the configuration is in canonical form, adding the /v1
// suffix most OpenAI-compatible APIs expect.
func (c *Config) Normalize() {
	if c.Host != "" && !strings.HasSuffix(c.Host, "/v1") {
		c.Host = strings.TrimSuffix(c.Host, "/") + "/v1"
	}
}

// Validate checks that the configuration is valid and complete.
// It normalizes the configuration before validation.
func (c *Config) Validate() error {
	c.Normalize()

	if c.Host == "" {
		return errors.New("ai config: Host is required")
	}
	if c.ConvertModel == "" {
		return errors.New("ai config: ConvertModel is required")
	}
	return nil
}
