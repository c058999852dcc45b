package ai

import "context"

// Converter converts one raw text chunk of an academic paper into clean,
// structured markdown. Implementations must be thread-safe: the conversion
// stage issues many concurrent calls.
type Converter interface {
	// Convert returns the markdown rendition of the chunk. An empty string
	// is a valid result and means the chunk produced no usable content.
	Convert(ctx context.Context, chunk []byte) (string, error)
}

// Densifier compresses a markdown section while preserving findings, data,
// formulas and terminology. Implementations must be thread-safe.
type Densifier interface {
	// Densify returns the compressed section text. Callers substitute the
	// original text when the result is empty or an error is returned.
	Densify(ctx context.Context, section string) (string, error)
}

// Provider aggregates the LLM capabilities for convenient initialization and
// lifecycle management.
type Provider interface {
	// Converter returns the chunk conversion capability.
	Converter() Converter

	// Densifier returns the section compression capability, or nil when the
	// provider has no densification model configured. A nil densifier makes
	// the densification stage a passthrough.
	Densifier() Densifier

	// Close releases resources held by the provider and its services.
	Close() error
}
