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


package docindex

import "errors"

var (
	// ErrEmptyFilename is returned when a document has no usable filename.
	ErrEmptyFilename = errors.New("filename is empty after normalization")

	// ErrInvalidLimit is returned when a lookup limit is not positive.
	ErrInvalidLimit = errors.New("lookup limit must be positive")
)
