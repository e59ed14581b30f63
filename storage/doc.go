// Copyright 2025 Poiesic Systems
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


// Package storage provides the storage abstraction layer for suggestor.
//
// This package defines repository interfaces that decouple the learned term
// library from its backing store. The BadgerDB implementation lives in
// storage/badger.
//
// # Architecture
//
//   - TermRepository: learned terms plus the aggregate LibraryStats record
//   - SearchCountRepository: per-query search statistics, reset independently
//
// # Usage
//
//	backend, err := badger.OpenBackend("/path/to/db", false)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer backend.Close()
//
//	terms := badger.NewTermRepository(backend)
//	created, err := terms.UpsertIncrement(ctx, "décret", "Décret", 1.0, time.Now())
//
// # Thread Safety
//
// All repository implementations must be thread-safe. Per-key mutations are
// linearizable; scans observe a consistent snapshot.
//
// # Context Support
//
// All repository methods accept context.Context. Scans stop early when the
// context is cancelled and yield its error.
package storage
