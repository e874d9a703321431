package search

import (
	"context"
	"log/slog"

	"github.com/poiesic/recall/ai"
	"github.com/poiesic/recall/core"
	"github.com/poiesic/recall/rank"
	"github.com/poiesic/recall/storage"
)

const (
	// DefaultLimit is the result cap applied when the caller passes limit <= 0.
	DefaultLimit = 20
)

// Searcher runs semantic search over a single owner's notes.
type Searcher struct {
	store    storage.NoteStore
	embedder ai.Embedder
	logger   *slog.Logger
}

// Result carries the ranked matches plus pre-truncation counts, so callers
// can tell "nothing matched" apart from "matches were cut off by the limit".
type Result struct {
	Results []core.SearchResult
	// TotalFound is the number of candidates at or above the threshold,
	// before the limit was applied.
	TotalFound int
	// TotalCandidates is the number of embedded notes that were scored.
	TotalCandidates int
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// NewSearcher creates a new searcher.
func NewSearcher(store storage.NoteStore, embedder ai.Embedder, opts ...Option) (*Searcher, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	s := &Searcher{
		store:    store,
		embedder: embedder,
		logger:   slog.Default().With("component", "searcher"),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Search finds the owner's notes semantically similar to the query.
// Returns up to limit results at or above threshold, best match first.
func (s *Searcher) Search(ctx context.Context, owner, query string, threshold float32, limit int) (*Result, error) {
	return s.SearchWithMonitor(ctx, owner, query, threshold, limit, nil)
}

// SearchWithMonitor runs Search with per-stage monitoring callbacks.
func (s *Searcher) SearchWithMonitor(ctx context.Context, owner, query string, threshold float32, limit int, monitor SearchMonitor) (*Result, error) {
	// Use noop monitor if none provided
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	if ai.IsBlank(query) {
		return nil, ErrEmptyQuery
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	monitor.Start(owner, query)

	// 1. Scan embedded notes for this owner. Done before the embedding call
	// so an empty store never costs a provider round trip.
	candidates, err := s.store.ListNotes(ctx, owner, core.FilterHasEmbedding)
	if err != nil {
		s.logger.Error("error scanning candidate notes", "owner", owner, "err", err)
		return nil, err
	}
	monitor.AfterCandidateScan(candidateIDs(candidates))

	if len(candidates) == 0 {
		result := &Result{Results: []core.SearchResult{}}
		monitor.Finish(result)
		return result, nil
	}

	// 2. Embed the query
	embedding, err := s.embedder.Embed(ctx, query)
	if err != nil {
		s.logger.Error("error generating embedding for query", "query", query, "err", err)
		return nil, err
	}
	monitor.AfterQueryEmbedding(len(embedding.Vector), embedding.Tokens)

	// 3. Rank every candidate against the query vector
	ranked, err := rank.Rank(embedding.Vector, rankCandidates(candidates), threshold)
	if err != nil {
		s.logger.Error("error ranking candidates", "candidateCount", len(candidates), "err", err)
		return nil, err
	}

	result := &Result{
		Results:         ranked,
		TotalFound:      len(ranked),
		TotalCandidates: len(candidates),
	}
	if len(result.Results) > limit {
		result.Results = result.Results[:limit]
	}
	monitor.Finish(result)

	return result, nil
}

func candidateIDs(notes []*core.Note) []core.ID {
	ids := make([]core.ID, 0, len(notes))
	for _, note := range notes {
		ids = append(ids, note.Id)
	}
	return ids
}

func rankCandidates(notes []*core.Note) []rank.Candidate {
	candidates := make([]rank.Candidate, 0, len(notes))
	for _, note := range notes {
		candidates = append(candidates, rank.Candidate{
			Id:        note.Id,
			Title:     note.Title,
			Vector:    note.Vector,
			UpdatedAt: note.UpdatedAt,
		})
	}
	return candidates
}
