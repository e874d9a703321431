package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateNote(t *testing.T) {
	now := time.Now().UTC()

	tests := []struct {
		name    string
		note    *Note
		wantErr error
	}{
		{
			name: "valid note",
			note: &Note{
				Owner:     "user-1",
				Title:     "Meeting notes",
				Content:   `{"type":"doc"}`,
				UpdatedAt: now,
			},
			wantErr: nil,
		},
		{
			name: "content only",
			note: &Note{
				Owner:   "user-1",
				Content: `{"type":"doc"}`,
			},
			wantErr: nil,
		},
		{
			name:    "nil note",
			note:    nil,
			wantErr: ErrInvalidNote,
		},
		{
			name:    "missing owner",
			note:    &Note{Title: "Untitled"},
			wantErr: ErrEmptyOwner,
		},
		{
			name:    "no title and no content",
			note:    &Note{Owner: "user-1"},
			wantErr: ErrEmptyNote,
		},
		{
			name: "future timestamp",
			note: &Note{
				Owner:     "user-1",
				Title:     "Time travel",
				UpdatedAt: now.Add(48 * time.Hour),
			},
			wantErr: ErrInvalidTimestamp,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateNote(tt.note)
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, ErrInvalidNote)
		})
	}
}

func TestValidateEmbeddingFilter(t *testing.T) {
	for _, filter := range []EmbeddingFilter{FilterMissingEmbedding, FilterHasEmbedding, FilterAll} {
		assert.NoError(t, ValidateEmbeddingFilter(filter))
	}

	err := ValidateEmbeddingFilter(EmbeddingFilter(0))
	assert.ErrorIs(t, err, ErrInvalidFilter)

	err = ValidateEmbeddingFilter(EmbeddingFilter(99))
	assert.ErrorIs(t, err, ErrInvalidFilter)
}
