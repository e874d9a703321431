package storage

import (
	"testing"
	"time"

	"github.com/poiesic/recall/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalUnmarshalID(t *testing.T) {
	tests := []struct {
		name string
		id   core.ID
	}{
		{"zero ID", core.ID(0)},
		{"small ID", core.ID(42)},
		{"large ID", core.ID(18446744073709551615)}, // max uint64
		{"content-based ID", core.IDFromContent("test content")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Marshal
			data := MarshalID(tt.id)
			require.NotNil(t, data)
			require.NotEmpty(t, data)

			// Unmarshal
			decoded, err := UnmarshalID(data)
			require.NoError(t, err)
			assert.Equal(t, tt.id, decoded)
		})
	}
}

func TestUnmarshalID_Invalid(t *testing.T) {
	_, err := UnmarshalID([]byte{})
	assert.Error(t, err)
}

func TestMarshalUnmarshalNote(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Microsecond)

	tests := []struct {
		name string
		note *core.Note
	}{
		{
			name: "minimal note",
			note: &core.Note{
				Id:         core.ID(1),
				Owner:      "user-1",
				Title:      "Groceries",
				Content:    `{"type":"doc","content":[]}`,
				InsertedAt: now,
				UpdatedAt:  now,
			},
		},
		{
			name: "note with embedding and summary",
			note: &core.Note{
				Id:         core.ID(2),
				Owner:      "user-1",
				Title:      "Trip planning",
				Summary:    "Flights and lodging for the coast trip.",
				Content:    `{"type":"doc","content":[{"type":"paragraph","content":[{"type":"text","text":"Book flights"}]}]}`,
				Vector:     []float32{0.1, -0.2, 0.3, 0.4},
				InsertedAt: now.Add(-time.Hour),
				UpdatedAt:  now,
			},
		},
		{
			name: "note with unicode content",
			note: &core.Note{
				Id:         core.ID(3),
				Owner:      "user-2",
				Title:      "日本語のノート",
				Content:    `{"type":"text","text":"héllo wörld 🌍"}`,
				InsertedAt: now,
				UpdatedAt:  now,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := MarshalNote(tt.note)
			require.NotEmpty(t, data)

			decoded, err := UnmarshalNote(data)
			require.NoError(t, err)
			if tt.note.Vector == nil {
				assert.Empty(t, decoded.Vector)
				decoded.Vector = nil
			}
			assert.Equal(t, tt.note, decoded)
		})
	}
}

func TestUnmarshalNote_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty data", []byte{}},
		{"truncated data", MarshalNote(&core.Note{
			Id:    core.ID(9),
			Owner: "user-1",
			Title: "truncated",
		})[:3]},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := UnmarshalNote(tt.data)
			assert.Error(t, err)
		})
	}
}
