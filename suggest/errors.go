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


package suggest

import "errors"

var (
	// ErrNilSource is returned when a nil source is configured.
	ErrNilSource = errors.New("source must not be nil")

	// ErrInvalidTimeout is returned when a timeout is not positive.
	ErrInvalidTimeout = errors.New("timeout must be positive")

	// ErrInvalidMaxResults is returned when a result limit is not positive.
	ErrInvalidMaxResults = errors.New("max results must be positive")

	// ErrSourcePanicked is reported when a source panics while suggesting.
	ErrSourcePanicked = errors.New("source panicked")

	// ErrSourceTimeout is reported when a source does not finish in time.
	ErrSourceTimeout = errors.New("source timed out")

	// ErrMergeFailed is reported when deduplication or sorting fails.
	ErrMergeFailed = errors.New("merging suggestions failed")

	// ErrAllSourcesFailed is reported when no source produced a result.
	ErrAllSourcesFailed = errors.New("all sources failed")
)
