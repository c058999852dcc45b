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


// Package storage provides the storage abstraction layer for paperflow.
//
// It defines the PaperRepository interface that decouples the ingestion
// pipeline from the storage implementation, so different backends (BadgerDB,
// in-memory test doubles, etc.) can be used interchangeably.
//
// # Constructor Return Type Pattern
//
// Public constructors return the storage.PaperRepository interface rather
// than concrete types:
//
//	repo, err := badger.NewPaperRepository(backend)  // returns storage.PaperRepository
//
// This keeps consumers decoupled from BadgerDB specifics and lets tests
// substitute their own implementations without modification.
//
// # Thread Safety
//
// All repository implementations must be thread-safe: the pipeline writes
// status transitions for many papers concurrently.
package storage
