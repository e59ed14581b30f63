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


// Package suggest merges candidates from every configured source into one
// ranked list of query suggestions.
//
// The Aggregator calls all sources concurrently on a bounded worker pool,
// each under its own timeout and all under an overall deadline. Results are
// collected as they complete, deduplicated case-insensitively (keeping the
// higher raw score), re-scored by relevance to the live query, and sorted
// with a stable tie-break on source order.
//
// Failures never reach the caller: a failing source contributes nothing, and
// if every source fails a fixed set of templated suggestions is returned.
package suggest
