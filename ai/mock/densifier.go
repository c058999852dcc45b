package mock

import (
	"context"
	"sync"

	"github.com/constellar/paperflow/ai"
)

// MockDensifier is a test double for ai.Densifier.
// The default behavior returns the section prefixed with a marker so tests
// can tell densified output from passthrough.
type MockDensifier struct {
	// DensifyFunc overrides the default behavior when set.
	DensifyFunc func(ctx context.Context, section string) (string, error)

	mu        sync.Mutex
	callCount int
	calls     []string
}

var _ ai.Densifier = (*MockDensifier)(nil)

// NewMockDensifier creates a mock densifier with default behavior.
// Note: Returns concrete type to allow test assertions.
func NewMockDensifier() *MockDensifier {
	return &MockDensifier{}
}

// Densify records the call and applies DensifyFunc or the default behavior.
func (m *MockDensifier) Densify(ctx context.Context, section string) (string, error) {
	m.mu.Lock()
	m.callCount++
	m.calls = append(m.calls, section)
	m.mu.Unlock()

	if m.DensifyFunc != nil {
		return m.DensifyFunc(ctx, section)
	}

	return "[dense] " + section, nil
}

// CallCount returns the number of times Densify was called.
func (m *MockDensifier) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCount
}

// Calls returns the sections passed to Densify, in call order.
func (m *MockDensifier) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

// Reset clears recorded calls and the custom function.
func (m *MockDensifier) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callCount = 0
	m.calls = nil
	m.DensifyFunc = nil
}
