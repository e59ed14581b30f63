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


// Package sources provides the independent suggestion producers consulted
// by the aggregator.
//
// Each Source turns a raw, partial query into candidate suggestions with a
// source-local raw score:
//   - Completion looks up document filenames in a CompletionIndex
//   - Popular matches a curated vocabulary held in a prefix trie
//   - Contextual expands trigger patterns into related phrases
//   - Spelling rewrites common misspellings
//   - Learned scans the term library for previously searched phrases
//
// Sources are safe for concurrent use. A Source that fails returns an error
// and contributes nothing; it never affects the others.
package sources
