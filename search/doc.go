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


// Package search provides keyword search over locally stored papers.
//
// The Searcher scans completed paper records and ranks them by query term
// frequency in the title and densified markdown, with a boost for papers
// containing every query word verbatim. It is a local complement to the
// remote search index, useful when the index service is unreachable or
// unconfigured.
package search
