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
	"time"
)

// ValidateNote validates a Note according to domain rules.
//
// Validation rules:
//   - Owner must not be empty
//   - At least one of Title or Content must be non-empty
//   - UpdatedAt must not be in the future
//
// NOT validated (populated by the pipeline):
//   - Vector (can be empty until the embedding pipeline runs)
//   - Summary (can be empty until summarization runs)
//   - ID (0 is valid from database sequences)
func ValidateNote(note *Note) error {
	if note == nil {
		return fmt.Errorf("%w: note is nil", ErrInvalidNote)
	}

	if note.Owner == "" {
		return fmt.Errorf("%w: %w", ErrInvalidNote, ErrEmptyOwner)
	}

	if note.Title == "" && note.Content == "" {
		return fmt.Errorf("%w: %w", ErrInvalidNote, ErrEmptyNote)
	}

	if !note.UpdatedAt.IsZero() && !IsValidTimestamp(note.UpdatedAt) {
		return fmt.Errorf("%w: %w", ErrInvalidNote, ErrInvalidTimestamp)
	}

	return nil
}

// ValidateEmbeddingFilter validates that an EmbeddingFilter has a valid value.
func ValidateEmbeddingFilter(filter EmbeddingFilter) error {
	switch filter {
	case FilterMissingEmbedding, FilterHasEmbedding, FilterAll:
		return nil
	}
	return fmt.Errorf("%w: value %d", ErrInvalidFilter, filter)
}

// IsValidTimestamp checks if a timestamp is valid (not in the future).
func IsValidTimestamp(ts time.Time) bool {
	return !ts.After(time.Now())
}
