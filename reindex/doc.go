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


// Package reindex bulk-loads document filenames into the completion index.
//
// A Reindexer reads one document per line from an io.Reader, groups them into
// batches, and hands each batch to a DocumentSink, retrying failed batches
// with exponential backoff. Progress is written to a caller-supplied writer.
//
// Input lines are either a bare filename or "scope<TAB>filename". Blank lines
// and lines starting with '#' are skipped.
package reindex
