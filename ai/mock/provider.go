package mock

import "github.com/constellar/paperflow/ai"

// MockProvider is a test double for ai.Provider.
type MockProvider struct {
	converter *MockConverter
	densifier *MockDensifier
}

// NewMockProvider creates a new mock provider with default mock services.
//
// Returns ai.Provider interface for consistency with production constructors.
// Use GetMockConverter()/GetMockDensifier() to access concrete types for
// test assertions.
func NewMockProvider() ai.Provider {
	return &MockProvider{
		converter: NewMockConverter(),
		densifier: NewMockDensifier(),
	}
}

// NewMockProviderWithServices creates a mock provider with custom mock
// services. A nil densifier models an unavailable compression capability.
func NewMockProviderWithServices(converter *MockConverter, densifier *MockDensifier) ai.Provider {
	return &MockProvider{
		converter: converter,
		densifier: densifier,
	}
}

// Converter returns the mock converter.
func (p *MockProvider) Converter() ai.Converter {
	return p.converter
}

// Densifier returns the mock densifier, or nil when none was configured.
func (p *MockProvider) Densifier() ai.Densifier {
	if p.densifier == nil {
		return nil
	}
	return p.densifier
}

// GetMockConverter returns the concrete mock converter for assertions.
func (p *MockProvider) GetMockConverter() *MockConverter {
	return p.converter
}

// GetMockDensifier returns the concrete mock densifier for assertions.
func (p *MockProvider) GetMockDensifier() *MockDensifier {
	return p.densifier
}

// Close is a no-op for mock provider.
func (p *MockProvider) Close() error {
	return nil
}
