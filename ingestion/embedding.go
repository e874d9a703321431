package ingestion

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/poiesic/recall/ai"
	"github.com/poiesic/recall/core"
	"github.com/poiesic/recall/doctree"
	"github.com/poiesic/recall/storage"
)

// embeddingProcessor generates embeddings for freshly added notes.
type embeddingProcessor struct {
	store    storage.NoteStore
	embedder ai.Embedder
	logger   *slog.Logger
}

var _ processor = (*embeddingProcessor)(nil)

// newEmbeddingProcessor creates a new embedding processor.
func newEmbeddingProcessor(store storage.NoteStore, embedder ai.Embedder, logger *slog.Logger) (processor, error) {
	if store == nil {
		return nil, fmt.Errorf("note store required")
	}
	if embedder == nil {
		return nil, fmt.Errorf("embedder required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &embeddingProcessor{
		store:    store,
		embedder: embedder,
		logger:   logger.With("processor", "embeddings"),
	}, nil
}

// process generates and persists embeddings for the specified notes.
// Notes with no extractable text are left without an embedding.
func (ep *embeddingProcessor) process(ctx context.Context, ids ...core.ID) error {
	ep.logger.Info("processing notes for embeddings", "notes", len(ids))

	notes, err := ep.store.GetNotes(ctx, ids...)
	if err != nil {
		ep.logger.Error("error retrieving notes", "err", err)
		return err
	}

	for _, note := range notes {
		text := noteText(note)
		if ai.IsBlank(text) {
			ep.logger.Debug("note has no extractable text", "id", note.Id)
			continue
		}

		embedding, err := ep.embedder.Embed(ctx, text)
		if err != nil {
			ep.logger.Error("error generating embedding", "id", note.Id, "err", err)
			return err
		}

		if _, err := ep.store.UpdateEmbedding(ctx, note.Id, embedding.Vector); err != nil {
			return err
		}
	}

	return nil
}

// noteText flattens a note to plain text for the AI services: the title,
// then the text extracted from the rich-document content.
func noteText(note *core.Note) string {
	text := doctree.ExtractJSON([]byte(note.Content))
	if note.Title != "" {
		text = strings.TrimSpace(note.Title + "\n" + text)
	}
	return text
}
