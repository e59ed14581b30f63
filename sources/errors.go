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


package sources

import "errors"

var (
	// ErrCompletionIndexRequired is returned when a completion index is not provided.
	ErrCompletionIndexRequired = errors.New("completion index required")

	// ErrTermRepositoryRequired is returned when a term repository is not provided.
	ErrTermRepositoryRequired = errors.New("term repository required")

	// ErrInvalidPattern is returned when a contextual trigger pattern does not compile.
	ErrInvalidPattern = errors.New("invalid trigger pattern")

	// ErrInvalidLimit is returned when a result limit is not positive.
	ErrInvalidLimit = errors.New("limit must be positive")
)
