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

import "errors"

// Domain validation errors
var (
	// ErrInvalidPaperRecord indicates a PaperRecord failed validation.
	ErrInvalidPaperRecord = errors.New("invalid paper record")

	// ErrEmptyArxivID indicates the ArxivID field is empty.
	ErrEmptyArxivID = errors.New("arxiv id cannot be empty")

	// ErrInvalidStatus indicates an unknown Status value.
	ErrInvalidStatus = errors.New("invalid status")

	// ErrNotArxiv indicates no arXiv identifier could be derived from the input.
	ErrNotArxiv = errors.New("not an arxiv identifier or url")
)
