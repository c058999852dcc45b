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


// Package ai provides abstractions for the LLM capabilities used by paperflow.
//
// Two capabilities are defined:
//
//   - Converter: turns a raw text chunk of a paper into structured markdown
//   - Densifier: compresses a markdown section while preserving technical content
//
// The ingestion pipeline depends only on these interfaces. Implementations:
//
//   - ai/openai: production implementation over OpenAI-compatible chat APIs
//     (langchaingo)
//   - ai/mock: deterministic test doubles with behavior injection
//
// Public constructors in implementation packages return interface types to
// keep consumers decoupled; mock constructors return concrete types so tests
// can inject behavior and assert call counts.
package ai
