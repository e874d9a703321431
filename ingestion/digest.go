package ingestion

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/poiesic/recall/ai"
	"github.com/poiesic/recall/core"
	"github.com/poiesic/recall/doctree"
	"github.com/poiesic/recall/storage"
)

// digestProcessor fills in missing titles and summaries using the
// summarization service. Caller-supplied titles and summaries are never
// overwritten.
type digestProcessor struct {
	store      storage.NoteStore
	summarizer ai.Summarizer
	logger     *slog.Logger
}

var _ processor = (*digestProcessor)(nil)

// newDigestProcessor creates a new digest processor.
func newDigestProcessor(store storage.NoteStore, summarizer ai.Summarizer, logger *slog.Logger) (processor, error) {
	if store == nil {
		return nil, fmt.Errorf("note store required")
	}
	if summarizer == nil {
		return nil, fmt.Errorf("summarizer required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &digestProcessor{
		store:      store,
		summarizer: summarizer,
		logger:     logger.With("processor", "digest"),
	}, nil
}

// process generates digests for notes missing a title or summary.
func (dp *digestProcessor) process(ctx context.Context, ids ...core.ID) error {
	notes, err := dp.store.GetNotes(ctx, ids...)
	if err != nil {
		dp.logger.Error("error retrieving notes", "err", err)
		return err
	}

	for _, note := range notes {
		if note.Title != "" && note.Summary != "" {
			continue
		}

		text := doctree.ExtractJSON([]byte(note.Content))
		if ai.IsBlank(text) {
			dp.logger.Debug("note has no extractable text", "id", note.Id)
			continue
		}

		digest, err := dp.summarizer.Summarize(ctx, text)
		if err != nil {
			dp.logger.Error("error generating digest", "id", note.Id, "err", err)
			return err
		}

		if note.Title == "" && digest.Title != "" {
			if _, err := dp.store.UpdateTitle(ctx, note.Id, digest.Title); err != nil {
				return err
			}
		}
		if note.Summary == "" && digest.Summary != "" {
			if _, err := dp.store.UpdateSummary(ctx, note.Id, digest.Summary); err != nil {
				return err
			}
		}
	}

	return nil
}
