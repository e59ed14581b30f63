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


package storage

import (
	"fmt"

	"github.com/poiesic/suggestor/core"
)

// MarshalTerm serializes a Term to bytes.
func MarshalTerm(term *core.Term) []byte {
	buf := make([]byte, core.TermMUS.Size(*term))
	core.TermMUS.Marshal(*term, buf)
	return buf
}

// UnmarshalTerm deserializes a Term from bytes.
func UnmarshalTerm(data []byte) (*core.Term, error) {
	term, _, err := core.TermMUS.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return &term, nil
}

// MarshalLibraryStats serializes LibraryStats to bytes.
func MarshalLibraryStats(stats core.LibraryStats) []byte {
	buf := make([]byte, core.LibraryStatsMUS.Size(stats))
	core.LibraryStatsMUS.Marshal(stats, buf)
	return buf
}

// UnmarshalLibraryStats deserializes LibraryStats from bytes.
func UnmarshalLibraryStats(data []byte) (core.LibraryStats, error) {
	stats, _, err := core.LibraryStatsMUS.Unmarshal(data)
	if err != nil {
		return core.LibraryStats{}, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return stats, nil
}

// MarshalSearchCount serializes a SearchCount to bytes.
func MarshalSearchCount(count *core.SearchCount) []byte {
	buf := make([]byte, core.SearchCountMUS.Size(*count))
	core.SearchCountMUS.Marshal(*count, buf)
	return buf
}

// UnmarshalSearchCount deserializes a SearchCount from bytes.
func UnmarshalSearchCount(data []byte) (*core.SearchCount, error) {
	count, _, err := core.SearchCountMUS.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return &count, nil
}
