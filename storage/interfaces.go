package storage

import (
	"context"

	"github.com/poiesic/recall/core"
)

// Repository provides common storage operations shared across all repositories.
// Implementations must be thread-safe and support concurrent access.
type Repository interface {
	// WithTransaction executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	// The context passed to fn may contain transaction state.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Close closes the storage backend and releases resources.
	Close() error
}

// NoteStore provides operations for managing notes.
type NoteStore interface {
	Repository
	// AddNotes adds one or more notes to storage.
	// Generates new IDs from sequence, ignoring any caller-supplied ID.
	// Sets InsertedAt and UpdatedAt timestamps.
	// Returns the notes with generated IDs and timestamps populated.
	AddNotes(ctx context.Context, notes ...*core.Note) ([]*core.Note, error)

	// UpdateNotes updates existing notes.
	// Updates the UpdatedAt timestamp automatically.
	// Returns ErrNotFound if any note doesn't exist.
	UpdateNotes(ctx context.Context, notes ...*core.Note) ([]*core.Note, error)

	// DeleteNotes removes notes by their IDs.
	// Also removes associated indices.
	// Returns ErrNotFound if any note doesn't exist.
	DeleteNotes(ctx context.Context, ids ...core.ID) error

	// GetNote retrieves a single note by ID.
	// Returns ErrNotFound if the note doesn't exist.
	GetNote(ctx context.Context, id core.ID) (*core.Note, error)

	// GetNotes retrieves multiple notes by their IDs.
	// Returns only the notes that exist (no error for missing notes).
	GetNotes(ctx context.Context, ids ...core.ID) ([]*core.Note, error)

	// ListNotes retrieves all notes belonging to an owner that match the
	// embedding filter, ordered by UpdatedAt descending (most recent first).
	ListNotes(ctx context.Context, owner string, filter core.EmbeddingFilter) ([]*core.Note, error)

	// UpdateEmbedding replaces the embedding vector of a note.
	// Updates the UpdatedAt timestamp automatically.
	// Returns ErrNotFound if the note doesn't exist.
	UpdateEmbedding(ctx context.Context, id core.ID, vector []float32) (*core.Note, error)

	// UpdateSummary replaces the summary of a note.
	// Updates the UpdatedAt timestamp automatically.
	// Returns ErrNotFound if the note doesn't exist.
	UpdateSummary(ctx context.Context, id core.ID, summary string) (*core.Note, error)

	// UpdateTitle replaces the title of a note.
	// Updates the UpdatedAt timestamp automatically.
	// Returns ErrNotFound if the note doesn't exist.
	UpdateTitle(ctx context.Context, id core.ID, title string) (*core.Note, error)
}
