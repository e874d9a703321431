package badger

import (
	"context"
	"errors"
	"slices"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/recall/core"
	"github.com/poiesic/recall/storage"
)

const fieldUpdateAttempts = 5

// NoteStore implements storage.NoteStore for BadgerDB.
type NoteStore struct {
	backend *Backend
	idSeq   *badger.Sequence
}

var _ storage.NoteStore = (*NoteStore)(nil)

// NewNoteStore creates a new NoteStore on top of an open backend.
func NewNoteStore(backend *Backend) (*NoteStore, error) {
	idSeq, err := backend.GetSequence(noteIDSeq)
	if err != nil {
		return nil, err
	}

	return &NoteStore{
		backend: backend,
		idSeq:   idSeq,
	}, nil
}

// Close releases the ID sequence.
func (s *NoteStore) Close() error {
	return s.idSeq.Release()
}

// WithTransaction delegates to the backend.
func (s *NoteStore) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return s.backend.WithTransaction(ctx, fn)
}

// AddNotes adds one or more notes to storage.
func (s *NoteStore) AddNotes(ctx context.Context, notes ...*core.Note) ([]*core.Note, error) {
	for _, note := range notes {
		if err := core.ValidateNote(note); err != nil {
			return nil, err
		}
	}

	err := s.backend.WithTx(func(tx *badger.Txn) error {
		for _, note := range notes {
			// Always generate new ID from sequence
			nextID, err := s.idSeq.Next()
			if err != nil {
				return err
			}
			// BadgerDB sequences can return 0 on first call, so we skip it
			if nextID == 0 {
				nextID, err = s.idSeq.Next()
				if err != nil {
					return err
				}
			}
			note.Id = core.ID(nextID)

			note.InsertedAt = time.Now().UTC()
			note.UpdatedAt = note.InsertedAt

			if err := s.writeNote(tx, note); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return notes, err
}

// UpdateNotes updates existing notes.
func (s *NoteStore) UpdateNotes(ctx context.Context, notes ...*core.Note) ([]*core.Note, error) {
	for _, note := range notes {
		if err := core.ValidateNote(note); err != nil {
			return nil, err
		}
	}

	err := s.backend.WithTx(func(tx *badger.Txn) error {
		for _, note := range notes {
			old, err := s.readNote(tx, makeNoteKey(note.Id))
			if err != nil {
				return err
			}
			if old == nil {
				return storage.ErrNotFound
			}

			// InsertedAt is immutable, UpdatedAt always moves forward
			note.InsertedAt = old.InsertedAt
			note.UpdatedAt = time.Now().UTC()

			if err := tx.Delete(makeNoteOwnerKey(old.Owner, old.UpdatedAt, old.Id)); err != nil {
				return err
			}
			if err := s.writeNote(tx, note); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return notes, err
}

// DeleteNotes removes notes by their IDs.
func (s *NoteStore) DeleteNotes(ctx context.Context, ids ...core.ID) error {
	return s.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makeNoteKey(id)

			// Read note to get metadata for index cleanup
			note, err := s.readNote(tx, key)
			if err != nil {
				return err
			}
			if note == nil {
				return storage.ErrNotFound
			}

			if err := tx.Delete(makeNoteOwnerKey(note.Owner, note.UpdatedAt, note.Id)); err != nil {
				return err
			}
			if err := tx.Delete(key); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// GetNote retrieves a single note by ID.
func (s *NoteStore) GetNote(ctx context.Context, id core.ID) (*core.Note, error) {
	var note *core.Note

	err := s.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		note, err = s.readNote(tx, makeNoteKey(id))
		if err != nil {
			return err
		}
		if note == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)

	if err != nil {
		return nil, err
	}
	return note, nil
}

// GetNotes retrieves multiple notes by their IDs, skipping missing ones.
func (s *NoteStore) GetNotes(ctx context.Context, ids ...core.ID) ([]*core.Note, error) {
	var notes []*core.Note

	err := s.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			note, err := s.readNote(tx, makeNoteKey(id))
			if err != nil {
				return err
			}
			if note != nil {
				notes = append(notes, note)
			}
		}
		return nil
	}, false)

	if err != nil {
		return nil, err
	}
	return notes, nil
}

// ListNotes retrieves an owner's notes matching the embedding filter,
// most recently updated first.
func (s *NoteStore) ListNotes(ctx context.Context, owner string, filter core.EmbeddingFilter) ([]*core.Note, error) {
	if err := core.ValidateEmbeddingFilter(filter); err != nil {
		return nil, err
	}

	var notes []*core.Note

	err := s.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true

		iter := tx.NewIterator(opts)
		defer iter.Close()

		prefix := makePartialNoteOwnerKey(owner)
		startKey := makeNoteOwnerCeilingKey(owner)

		for iter.Seek(startKey); iter.Valid(); iter.Next() {
			key := iter.Item().Key()

			// Check if we're still in this owner's index
			if len(key) < len(prefix) || slices.Compare(key[:len(prefix)], prefix) != 0 {
				break
			}

			// Read the ID from the index
			var noteID core.ID
			if err := iter.Item().Value(func(val []byte) error {
				var err error
				noteID, err = storage.UnmarshalID(val)
				return err
			}); err != nil {
				return err
			}

			// Look up the full note
			note, err := s.readNote(tx, makeNoteKey(noteID))
			if err != nil {
				return err
			}
			if note == nil {
				continue
			}
			if matchesFilter(note, filter) {
				notes = append(notes, note)
			}
		}
		return nil
	}, false)

	if err != nil {
		return nil, err
	}
	return notes, nil
}

// UpdateEmbedding replaces the embedding vector of a note.
func (s *NoteStore) UpdateEmbedding(ctx context.Context, id core.ID, vector []float32) (*core.Note, error) {
	return s.updateField(id, func(note *core.Note) {
		note.Vector = vector
	})
}

// UpdateSummary replaces the summary of a note.
func (s *NoteStore) UpdateSummary(ctx context.Context, id core.ID, summary string) (*core.Note, error) {
	return s.updateField(id, func(note *core.Note) {
		note.Summary = summary
	})
}

// UpdateTitle replaces the title of a note.
func (s *NoteStore) UpdateTitle(ctx context.Context, id core.ID, title string) (*core.Note, error) {
	return s.updateField(id, func(note *core.Note) {
		note.Title = title
	})
}

// updateField applies a single-field mutation to a stored note and commits it,
// maintaining the owner index. Commits are retried on transaction conflict so
// concurrent enrichers can update different fields of the same note.
func (s *NoteStore) updateField(id core.ID, mutate func(*core.Note)) (*core.Note, error) {
	var note *core.Note
	var err error

	for attempt := 0; attempt < fieldUpdateAttempts; attempt++ {
		note, err = s.tryUpdateField(id, mutate)
		if !errors.Is(err, badger.ErrConflict) {
			break
		}
	}

	if err != nil {
		return nil, err
	}
	return note, nil
}

func (s *NoteStore) tryUpdateField(id core.ID, mutate func(*core.Note)) (*core.Note, error) {
	var note *core.Note

	err := s.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		note, err = s.readNote(tx, makeNoteKey(id))
		if err != nil {
			return err
		}
		if note == nil {
			return storage.ErrNotFound
		}

		if err := tx.Delete(makeNoteOwnerKey(note.Owner, note.UpdatedAt, note.Id)); err != nil {
			return err
		}

		mutate(note)
		note.UpdatedAt = time.Now().UTC()

		if err := s.writeNote(tx, note); err != nil {
			return err
		}
		return tx.Commit()
	}, true)

	if err != nil {
		return nil, err
	}
	return note, nil
}

// writeNote stores the primary record and its owner index entry.
func (s *NoteStore) writeNote(tx *badger.Txn, note *core.Note) error {
	if err := tx.Set(makeNoteKey(note.Id), storage.MarshalNote(note)); err != nil {
		return err
	}
	return tx.Set(makeNoteOwnerKey(note.Owner, note.UpdatedAt, note.Id), storage.MarshalID(note.Id))
}

// readNote reads a note by key. Returns nil, nil when the key is absent.
func (s *NoteStore) readNote(tx *badger.Txn, key []byte) (*core.Note, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var note *core.Note
	err = item.Value(func(val []byte) error {
		var err error
		note, err = storage.UnmarshalNote(val)
		return err
	})
	if err != nil {
		return nil, err
	}
	return note, nil
}

func matchesFilter(note *core.Note, filter core.EmbeddingFilter) bool {
	switch filter {
	case core.FilterMissingEmbedding:
		return !note.HasEmbedding()
	case core.FilterHasEmbedding:
		return note.HasEmbedding()
	default:
		return true
	}
}
