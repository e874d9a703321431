package core

//go:generate go run ../cmd/musgen

import (
	"encoding/binary"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// It is generated using content-based hashing or database sequences.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// EmbeddingFilter selects notes by the presence of an embedding vector.
type EmbeddingFilter int

const (
	// FilterMissingEmbedding selects notes that have no embedding yet.
	FilterMissingEmbedding EmbeddingFilter = iota + 1
	// FilterHasEmbedding selects notes that already carry an embedding.
	FilterHasEmbedding
	// FilterAll selects every note regardless of embedding state.
	FilterAll
)

// Note represents a single rich-text note owned by a user.
// The Vector field is populated by the embedding pipeline and is always
// replaced wholesale, never partially mutated.
type Note struct {
	Id         ID
	Owner      string
	Title      string
	Summary    string
	Content    string // Rich-document tree as JSON (see the doctree package)
	Vector     []float32
	InsertedAt time.Time // When the note was inserted into the database
	UpdatedAt  time.Time // When the note was last updated
}

// HasEmbedding reports whether the note carries an embedding vector.
func (n *Note) HasEmbedding() bool {
	return len(n.Vector) > 0
}

// SearchResult represents a ranked note with its similarity score.
// It is derived per query and never persisted.
type SearchResult struct {
	Id    ID
	Title string
	Score float32 // Cosine similarity in [-1, 1]
}
