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


package core

import "fmt"

// ValidatePaperRecord validates a PaperRecord according to domain rules.
//
// Validation rules:
//   - ArxivID must not be empty
//   - Status must be a known pipeline status
//
// NOT validated (populated as the pipeline progresses):
//   - Markdown, DensifiedMarkdown, WordCount, PageCount
//   - ErrorMessage (only meaningful for failed records)
func ValidatePaperRecord(record *PaperRecord) error {
	if record == nil {
		return fmt.Errorf("%w: record is nil", ErrInvalidPaperRecord)
	}

	if record.ArxivID == "" {
		return fmt.Errorf("%w: %w", ErrInvalidPaperRecord, ErrEmptyArxivID)
	}

	if !record.Status.Valid() {
		return fmt.Errorf("%w: %w: %q", ErrInvalidPaperRecord, ErrInvalidStatus, record.Status)
	}

	return nil
}
