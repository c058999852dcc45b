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


package mock

import (
	"context"
	"strings"
	"sync"

	"github.com/constellar/paperflow/ai"
)

// MockConverter is a test double for ai.Converter.
// The default behavior echoes the chunk back prefixed with a markdown header.
// Counting is mutex-guarded because the conversion stage calls concurrently.
type MockConverter struct {
	// ConvertFunc overrides the default behavior when set.
	ConvertFunc func(ctx context.Context, chunk []byte) (string, error)

	mu        sync.Mutex
	callCount int
	calls     [][]byte
}

var _ ai.Converter = (*MockConverter)(nil)

// NewMockConverter creates a mock converter with default behavior.
// Note: Returns concrete type to allow test assertions.
func NewMockConverter() *MockConverter {
	return &MockConverter{}
}

// Convert records the call and applies ConvertFunc or the default behavior.
func (m *MockConverter) Convert(ctx context.Context, chunk []byte) (string, error) {
	m.mu.Lock()
	m.callCount++
	m.calls = append(m.calls, chunk)
	m.mu.Unlock()

	if m.ConvertFunc != nil {
		return m.ConvertFunc(ctx, chunk)
	}

	text := strings.TrimSpace(string(chunk))
	if text == "" {
		return "", nil
	}
	return "## Converted\n\n" + text, nil
}

// CallCount returns the number of times Convert was called.
func (m *MockConverter) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCount
}

// Calls returns the chunks passed to Convert, in call order.
func (m *MockConverter) Calls() [][]byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([][]byte(nil), m.calls...)
}

// Reset clears recorded calls and the custom function.
func (m *MockConverter) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callCount = 0
	m.calls = nil
	m.ConvertFunc = nil
}
