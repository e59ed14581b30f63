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


// Package docindex maintains the document filename index used for
// completion suggestions.
//
// Filenames are indexed with a keyword analyzer over their normalized form,
// so a lookup is a single prefix query, optionally restricted to a scope
// (a division or tenant supplied by the caller's authorization layer).
// The index may live on disk or in memory.
package docindex
