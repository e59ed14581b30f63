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


package learning

import "errors"

var (
	// ErrTermRepositoryRequired is returned when a term repository is not provided.
	ErrTermRepositoryRequired = errors.New("term repository required")

	// ErrSweeperRequired is returned when a sweep trigger has no sweeper.
	ErrSweeperRequired = errors.New("sweeper required")

	// ErrInvalidSweepInterval is returned for a zero sweep interval.
	ErrInvalidSweepInterval = errors.New("sweep interval must be greater than 0")

	// ErrInvalidRetention is returned for a non-positive frequency floor or age.
	ErrInvalidRetention = errors.New("retention frequency and age must be positive")
)
