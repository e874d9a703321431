package badger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/poiesic/recall/core"
	"github.com/poiesic/recall/storage"
)

func TestNoteBasics(t *testing.T) {
	store, backend, err := NewMemoryStore()
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	defer func() { store.Close(); backend.Close() }()

	ctx := context.Background()

	note := &core.Note{
		Owner:   "user-1",
		Title:   "Groceries",
		Content: `{"type":"doc","content":[{"type":"paragraph","content":[{"type":"text","text":"milk and eggs"}]}]}`,
	}

	added, err := store.AddNotes(ctx, note)
	if err != nil {
		t.Fatalf("Failed to add note: %v", err)
	}

	if len(added) != 1 {
		t.Fatalf("Expected 1 note, got %d", len(added))
	}

	if added[0].Id == 0 {
		t.Fatal("Expected non-zero ID")
	}

	if added[0].InsertedAt.IsZero() || added[0].UpdatedAt.IsZero() {
		t.Fatal("Expected timestamps to be populated")
	}

	retrieved, err := store.GetNote(ctx, added[0].Id)
	if err != nil {
		t.Fatalf("Failed to get note: %v", err)
	}

	if retrieved.Title != "Groceries" {
		t.Fatalf("Expected 'Groceries', got '%s'", retrieved.Title)
	}
	if retrieved.Owner != "user-1" {
		t.Fatalf("Expected 'user-1', got '%s'", retrieved.Owner)
	}
}

func TestGetNote_NotFound(t *testing.T) {
	store, backend, err := NewMemoryStore()
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	defer func() { store.Close(); backend.Close() }()

	_, err = store.GetNote(context.Background(), core.ID(9999))
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
}

func TestGetNotes_SkipsMissing(t *testing.T) {
	store, backend, err := NewMemoryStore()
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	defer func() { store.Close(); backend.Close() }()

	ctx := context.Background()

	added, err := store.AddNotes(ctx,
		&core.Note{Owner: "user-1", Title: "First"},
		&core.Note{Owner: "user-1", Title: "Second"},
	)
	if err != nil {
		t.Fatalf("Failed to add notes: %v", err)
	}

	notes, err := store.GetNotes(ctx, added[0].Id, core.ID(9999), added[1].Id)
	if err != nil {
		t.Fatalf("Failed to get notes: %v", err)
	}

	if len(notes) != 2 {
		t.Fatalf("Expected 2 notes, got %d", len(notes))
	}
}

func TestUpdateNote(t *testing.T) {
	store, backend, err := NewMemoryStore()
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	defer func() { store.Close(); backend.Close() }()

	ctx := context.Background()

	added, err := store.AddNotes(ctx, &core.Note{Owner: "user-1", Title: "Draft"})
	if err != nil {
		t.Fatalf("Failed to add note: %v", err)
	}
	insertedAt := added[0].InsertedAt

	time.Sleep(2 * time.Millisecond)

	added[0].Title = "Final"
	updated, err := store.UpdateNotes(ctx, added[0])
	if err != nil {
		t.Fatalf("Failed to update note: %v", err)
	}

	if !updated[0].InsertedAt.Equal(insertedAt) {
		t.Fatal("InsertedAt must not change on update")
	}
	if !updated[0].UpdatedAt.After(insertedAt) {
		t.Fatal("UpdatedAt must move forward on update")
	}

	retrieved, err := store.GetNote(ctx, added[0].Id)
	if err != nil {
		t.Fatalf("Failed to get note: %v", err)
	}
	if retrieved.Title != "Final" {
		t.Fatalf("Expected 'Final', got '%s'", retrieved.Title)
	}
}

func TestUpdateNote_NotFound(t *testing.T) {
	store, backend, err := NewMemoryStore()
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	defer func() { store.Close(); backend.Close() }()

	_, err = store.UpdateNotes(context.Background(), &core.Note{Id: core.ID(9999), Owner: "user-1", Title: "Ghost"})
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
}

func TestDeleteNotes(t *testing.T) {
	store, backend, err := NewMemoryStore()
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	defer func() { store.Close(); backend.Close() }()

	ctx := context.Background()

	added, err := store.AddNotes(ctx, &core.Note{Owner: "user-1", Title: "Ephemeral"})
	if err != nil {
		t.Fatalf("Failed to add note: %v", err)
	}

	if err := store.DeleteNotes(ctx, added[0].Id); err != nil {
		t.Fatalf("Failed to delete note: %v", err)
	}

	_, err = store.GetNote(ctx, added[0].Id)
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound after delete, got %v", err)
	}

	// Owner index must be cleaned up too
	notes, err := store.ListNotes(ctx, "user-1", core.FilterAll)
	if err != nil {
		t.Fatalf("Failed to list notes: %v", err)
	}
	if len(notes) != 0 {
		t.Fatalf("Expected 0 notes after delete, got %d", len(notes))
	}

	if err := store.DeleteNotes(ctx, added[0].Id); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound on double delete, got %v", err)
	}
}

func TestListNotes_OrderAndOwnerIsolation(t *testing.T) {
	store, backend, err := NewMemoryStore()
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	defer func() { store.Close(); backend.Close() }()

	ctx := context.Background()

	titles := []string{"oldest", "middle", "newest"}
	for _, title := range titles {
		if _, err := store.AddNotes(ctx, &core.Note{Owner: "user-1", Title: title}); err != nil {
			t.Fatalf("Failed to add note: %v", err)
		}
		time.Sleep(2 * time.Millisecond)
	}
	if _, err := store.AddNotes(ctx, &core.Note{Owner: "user-2", Title: "other owner"}); err != nil {
		t.Fatalf("Failed to add note: %v", err)
	}

	notes, err := store.ListNotes(ctx, "user-1", core.FilterAll)
	if err != nil {
		t.Fatalf("Failed to list notes: %v", err)
	}

	if len(notes) != 3 {
		t.Fatalf("Expected 3 notes, got %d", len(notes))
	}
	for i, want := range []string{"newest", "middle", "oldest"} {
		if notes[i].Title != want {
			t.Fatalf("Position %d: expected '%s', got '%s'", i, want, notes[i].Title)
		}
	}
}

func TestListNotes_EmbeddingFilter(t *testing.T) {
	store, backend, err := NewMemoryStore()
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	defer func() { store.Close(); backend.Close() }()

	ctx := context.Background()

	added, err := store.AddNotes(ctx,
		&core.Note{Owner: "user-1", Title: "embedded", Vector: []float32{0.1, 0.2}},
		&core.Note{Owner: "user-1", Title: "pending"},
	)
	if err != nil {
		t.Fatalf("Failed to add notes: %v", err)
	}
	_ = added

	missing, err := store.ListNotes(ctx, "user-1", core.FilterMissingEmbedding)
	if err != nil {
		t.Fatalf("Failed to list notes: %v", err)
	}
	if len(missing) != 1 || missing[0].Title != "pending" {
		t.Fatalf("Expected only 'pending', got %d notes", len(missing))
	}

	embedded, err := store.ListNotes(ctx, "user-1", core.FilterHasEmbedding)
	if err != nil {
		t.Fatalf("Failed to list notes: %v", err)
	}
	if len(embedded) != 1 || embedded[0].Title != "embedded" {
		t.Fatalf("Expected only 'embedded', got %d notes", len(embedded))
	}

	all, err := store.ListNotes(ctx, "user-1", core.FilterAll)
	if err != nil {
		t.Fatalf("Failed to list notes: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("Expected 2 notes, got %d", len(all))
	}

	if _, err := store.ListNotes(ctx, "user-1", core.EmbeddingFilter(99)); !errors.Is(err, core.ErrInvalidFilter) {
		t.Fatalf("Expected ErrInvalidFilter, got %v", err)
	}
}

func TestUpdateEmbedding(t *testing.T) {
	store, backend, err := NewMemoryStore()
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	defer func() { store.Close(); backend.Close() }()

	ctx := context.Background()

	added, err := store.AddNotes(ctx, &core.Note{Owner: "user-1", Title: "Pending embed"})
	if err != nil {
		t.Fatalf("Failed to add note: %v", err)
	}

	time.Sleep(2 * time.Millisecond)

	vector := []float32{0.5, -0.5, 0.25}
	updated, err := store.UpdateEmbedding(ctx, added[0].Id, vector)
	if err != nil {
		t.Fatalf("Failed to update embedding: %v", err)
	}
	if !updated.HasEmbedding() {
		t.Fatal("Expected note to have an embedding")
	}
	if !updated.UpdatedAt.After(added[0].UpdatedAt) {
		t.Fatal("UpdatedAt must move forward when the embedding changes")
	}

	retrieved, err := store.GetNote(ctx, added[0].Id)
	if err != nil {
		t.Fatalf("Failed to get note: %v", err)
	}
	if len(retrieved.Vector) != 3 {
		t.Fatalf("Expected 3-dimensional vector, got %d", len(retrieved.Vector))
	}

	// The owner index must follow the new UpdatedAt
	notes, err := store.ListNotes(ctx, "user-1", core.FilterHasEmbedding)
	if err != nil {
		t.Fatalf("Failed to list notes: %v", err)
	}
	if len(notes) != 1 {
		t.Fatalf("Expected 1 note, got %d", len(notes))
	}
}

func TestUpdateSummaryAndTitle(t *testing.T) {
	store, backend, err := NewMemoryStore()
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	defer func() { store.Close(); backend.Close() }()

	ctx := context.Background()

	added, err := store.AddNotes(ctx, &core.Note{Owner: "user-1", Title: "untitled"})
	if err != nil {
		t.Fatalf("Failed to add note: %v", err)
	}

	if _, err := store.UpdateSummary(ctx, added[0].Id, "A short digest."); err != nil {
		t.Fatalf("Failed to update summary: %v", err)
	}
	if _, err := store.UpdateTitle(ctx, added[0].Id, "Titled"); err != nil {
		t.Fatalf("Failed to update title: %v", err)
	}

	retrieved, err := store.GetNote(ctx, added[0].Id)
	if err != nil {
		t.Fatalf("Failed to get note: %v", err)
	}
	if retrieved.Summary != "A short digest." {
		t.Fatalf("Expected summary to persist, got '%s'", retrieved.Summary)
	}
	if retrieved.Title != "Titled" {
		t.Fatalf("Expected 'Titled', got '%s'", retrieved.Title)
	}

	if _, err := store.UpdateSummary(ctx, core.ID(9999), "ghost"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
}
