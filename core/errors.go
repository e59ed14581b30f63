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


package core

import "errors"

// Domain validation errors
var (
	// ErrInvalidTerm indicates a Term failed validation.
	ErrInvalidTerm = errors.New("invalid term")

	// ErrKeyTooShort indicates a normalized key is shorter than MinKeyLength.
	ErrKeyTooShort = errors.New("term key too short")

	// ErrNoVariants indicates a Term has no display variants.
	ErrNoVariants = errors.New("term must have at least one display variant")

	// ErrNonPositiveFrequency indicates a stored Term has frequency <= 0.
	ErrNonPositiveFrequency = errors.New("term frequency must be positive")

	// ErrInvalidAmount indicates an increment amount <= 0.
	ErrInvalidAmount = errors.New("increment amount must be positive")
)

// errInvalidLength is returned when a serialized slice length is out of range.
var errInvalidLength = errors.New("invalid encoded length")
