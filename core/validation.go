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

import (
	"fmt"
	"unicode/utf8"
)

// MinKeyLength is the minimum rune length of a normalized term key.
const MinKeyLength = 2

// ValidateTerm validates a Term according to domain rules.
//
// Validation rules:
//   - Key must be at least MinKeyLength runes
//   - DisplayVariants must not be empty
//   - Frequency must be positive
func ValidateTerm(term *Term) error {
	if term == nil {
		return fmt.Errorf("%w: term is nil", ErrInvalidTerm)
	}

	if err := ValidateKey(term.Key); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidTerm, err)
	}

	if len(term.DisplayVariants) == 0 {
		return fmt.Errorf("%w: %w", ErrInvalidTerm, ErrNoVariants)
	}

	if term.Frequency <= 0 {
		return fmt.Errorf("%w: %w", ErrInvalidTerm, ErrNonPositiveFrequency)
	}

	return nil
}

// ValidateKey checks that a normalized key is long enough to be stored.
func ValidateKey(key string) error {
	if utf8.RuneCountInString(key) < MinKeyLength {
		return fmt.Errorf("%w: %q", ErrKeyTooShort, key)
	}
	return nil
}

// ValidateAmount checks that an increment amount is positive.
func ValidateAmount(amount float64) error {
	if amount <= 0 {
		return fmt.Errorf("%w: %v", ErrInvalidAmount, amount)
	}
	return nil
}
