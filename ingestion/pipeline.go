package ingestion

import (
	"context"
	"log/slog"
	"runtime"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/recall/ai"
	"github.com/poiesic/recall/core"
	"github.com/poiesic/recall/storage"
)

// Pipeline orchestrates adding notes and enriching them in the background.
// Embedding generation and digest generation run on separate worker pools.
type Pipeline struct {
	store         storage.NoteStore
	embeddingPool *ants.Pool
	digestPool    *ants.Pool
	embeddingProc processor
	digestProc    processor
	logger        *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for concurrent processing.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}

		// Release old pools
		if p.embeddingPool != nil {
			p.embeddingPool.Release()
		}
		if p.digestPool != nil {
			p.digestPool.Release()
		}

		// Create new pools
		embeddingPool, err := ants.NewPool(size)
		if err != nil {
			return err
		}

		digestPool, err := ants.NewPool(size)
		if err != nil {
			embeddingPool.Release()
			return err
		}

		p.embeddingPool = embeddingPool
		p.digestPool = digestPool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates a new ingestion pipeline.
func NewPipeline(store storage.NoteStore, provider ai.Provider, opts ...Option) (*Pipeline, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}
	if provider == nil {
		return nil, ErrAIProviderRequired
	}

	// Default logger
	logger := slog.Default()

	// Default pool size
	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	embeddingPool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	digestPool, err := ants.NewPool(poolSize)
	if err != nil {
		embeddingPool.Release()
		return nil, err
	}

	p := &Pipeline{
		store:         store,
		embeddingPool: embeddingPool,
		digestPool:    digestPool,
		logger:        logger,
	}

	// Apply options (may override defaults)
	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}

	// Create processors after options are applied (so they get final config)
	embeddingProc, err := newEmbeddingProcessor(store, provider.Embedder(), p.logger)
	if err != nil {
		p.Release()
		return nil, err
	}

	digestProc, err := newDigestProcessor(store, provider.Summarizer(), p.logger)
	if err != nil {
		p.Release()
		return nil, err
	}

	p.embeddingProc = embeddingProc
	p.digestProc = digestProc

	return p, nil
}

// Ingest adds notes for an owner and enriches them asynchronously.
// Enrichment generates embeddings and fills in missing titles and summaries.
// Errors during async processing are logged but do not fail the ingestion.
func (p *Pipeline) Ingest(ctx context.Context, owner string, notes ...*core.Note) ([]*core.Note, error) {
	for _, note := range notes {
		note.Owner = owner
	}

	added, err := p.store.AddNotes(ctx, notes...)
	if err != nil {
		return nil, err
	}

	if len(added) == 0 {
		return added, nil
	}

	// Extract IDs
	ids := make([]core.ID, len(added))
	for i, note := range added {
		ids[i] = note.Id
	}

	// Submit for async processing. A submit failure means the pool is
	// released or saturated and the enrichment job is dropped.
	if err := p.embeddingPool.Submit(func() {
		if err := p.embeddingProc.process(context.Background(), ids...); err != nil {
			p.logger.Error("error processing embeddings", "err", err)
		}
	}); err != nil {
		p.logger.Error("error submitting embedding job", "err", err)
	}

	if err := p.digestPool.Submit(func() {
		if err := p.digestProc.process(context.Background(), ids...); err != nil {
			p.logger.Error("error processing digests", "err", err)
		}
	}); err != nil {
		p.logger.Error("error submitting digest job", "err", err)
	}

	return added, nil
}

// Release releases resources including worker pools.
// The pipeline should not be used after calling Release.
func (p *Pipeline) Release() {
	if p.embeddingPool != nil {
		p.embeddingPool.Release()
	}
	if p.digestPool != nil {
		p.digestPool.Release()
	}
}
