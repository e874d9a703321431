// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package reembed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/recall/ai"
	"github.com/poiesic/recall/core"
	"github.com/poiesic/recall/doctree"
	"github.com/poiesic/recall/storage"
)

// Config holds configuration for a batch embedding run.
type Config struct {
	// ChunkSize is the number of notes embedded concurrently per chunk
	ChunkSize int

	// ChunkDelay is the pause between chunks for the default limiter
	ChunkDelay time.Duration

	// MinContentLen is the minimum extracted text length worth embedding.
	// Shorter notes are counted as skipped, not failed.
	MinContentLen int

	// MaxRetries is the maximum number of attempts per provider call
	MaxRetries int

	// RetryDelay is the base delay for exponential backoff
	RetryDelay time.Duration

	// ReportInterval is how often to report progress (number of notes)
	ReportInterval int
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		ChunkSize:      5,
		ChunkDelay:     1 * time.Second,
		MinContentLen:  10,
		MaxRetries:     3,
		RetryDelay:     1 * time.Second,
		ReportInterval: 10,
	}
}

// Coordinator drives batch (re)embedding of an owner's notes: scan, chunk,
// embed concurrently within a chunk, persist, and summarize.
type Coordinator struct {
	store    storage.NoteStore
	embedder ai.Embedder
	config   *Config
	limiter  Limiter
	progress io.Writer
	pool     *ants.Pool
	logger   *slog.Logger
}

// Option configures a Coordinator.
type Option func(*Coordinator) error

// WithLimiter overrides the inter-chunk limiter.
// Default is a FixedDelayLimiter with the configured ChunkDelay.
func WithLimiter(limiter Limiter) Option {
	return func(c *Coordinator) error {
		if limiter == nil {
			limiter = &NoopLimiter{}
		}
		c.limiter = limiter
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Coordinator) error {
		if logger == nil {
			logger = slog.Default()
		}
		c.logger = logger
		return nil
	}
}

// NewCoordinator creates a new batch coordinator.
// progress: where to write progress output (typically os.Stderr); io.Discard
// silences it.
func NewCoordinator(store storage.NoteStore, embedder ai.Embedder, config *Config, progress io.Writer, opts ...Option) (*Coordinator, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	if config == nil {
		config = DefaultConfig()
	}
	if config.ChunkSize < 1 {
		config.ChunkSize = 1
	}
	if progress == nil {
		progress = io.Discard
	}

	pool, err := ants.NewPool(config.ChunkSize)
	if err != nil {
		return nil, err
	}

	c := &Coordinator{
		store:    store,
		embedder: embedder,
		config:   config,
		limiter:  NewFixedDelayLimiter(config.ChunkDelay),
		progress: progress,
		pool:     pool,
		logger:   slog.Default().With("component", "reembed"),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(c); err != nil {
			c.Release()
			return nil, err
		}
	}

	return c, nil
}

// Release releases the worker pool.
// The coordinator should not be used after calling Release.
func (c *Coordinator) Release() {
	if c.pool != nil {
		c.pool.Release()
	}
}

// Run embeds the owner's notes and reports what happened to each one.
// With full=false only notes missing an embedding are processed; with
// full=true every note is re-embedded.
//
// The run finishes even when individual notes fail: failures become error
// outcomes in the Summary. The returned error is non-nil only when the run
// itself could not proceed (scan failure or cancellation), in which case the
// Summary still covers the notes handled so far.
func (c *Coordinator) Run(ctx context.Context, owner string, full bool) (*Summary, error) {
	summary := &Summary{
		RunId: uuid.New(),
		Owner: owner,
	}

	filter := core.FilterMissingEmbedding
	if full {
		filter = core.FilterAll
	}

	notes, err := c.store.ListNotes(ctx, owner, filter)
	if err != nil {
		return summary, fmt.Errorf("failed to scan notes: %w", err)
	}

	if len(notes) == 0 {
		fmt.Fprintf(c.progress, "No notes to embed for %s (0 notes)\n", owner)
		return summary, nil
	}

	fmt.Fprintf(c.progress, "Embedding %d notes for %s (chunk size: %d)\n",
		len(notes), owner, c.config.ChunkSize)

	tracker := NewProgressTracker(c.progress, len(notes), c.config.ReportInterval)
	tracker.Start()

	var mu sync.Mutex

	for start := 0; start < len(notes); start += c.config.ChunkSize {
		// Chunks are strictly sequential; cancellation is honored at the
		// chunk boundary, never mid-chunk.
		if start > 0 {
			if err := c.limiter.Wait(ctx); err != nil {
				return summary, err
			}
		} else if err := ctx.Err(); err != nil {
			return summary, err
		}

		end := min(start+c.config.ChunkSize, len(notes))
		chunk := notes[start:end]

		var wg sync.WaitGroup
		for _, note := range chunk {
			wg.Add(1)
			note := note
			if err := c.pool.Submit(func() {
				defer wg.Done()
				outcome := c.processNote(ctx, note)
				mu.Lock()
				summary.record(outcome)
				mu.Unlock()
			}); err != nil {
				wg.Done()
				mu.Lock()
				summary.record(Outcome{Id: note.Id, Status: StatusError, Detail: err.Error()})
				mu.Unlock()
			}
		}
		wg.Wait()

		tracker.Update(summary.Total())
	}

	tracker.Finish()

	elapsed := tracker.Elapsed()
	fmt.Fprintf(c.progress, "Run %s complete. %d processed, %d skipped, %d errors in %v\n",
		summary.RunId, summary.Processed, summary.Skipped, summary.Errors,
		elapsed.Round(time.Millisecond))

	return summary, nil
}

// processNote embeds a single note and persists the vector. Never panics the
// run; every failure becomes an error outcome.
func (c *Coordinator) processNote(ctx context.Context, note *core.Note) Outcome {
	text := doctree.ExtractJSON([]byte(note.Content))
	if note.Title != "" {
		text = strings.TrimSpace(note.Title + "\n" + text)
	}

	if len([]rune(text)) < c.config.MinContentLen {
		c.logger.Debug("skipping note with too little text", "id", note.Id, "len", len(text))
		return Outcome{Id: note.Id, Status: StatusSkipped, Detail: "content too short"}
	}

	var embedding *ai.Embedding
	err := RetryWithBackoff(ctx, func() error {
		var err error
		embedding, err = c.embedder.Embed(ctx, text)
		return err
	}, c.config.MaxRetries, c.config.RetryDelay, func(err error) bool {
		// Only transient provider failures are worth retrying
		return errors.Is(err, ai.ErrProviderUnavailable)
	})
	if err != nil {
		c.logger.Error("error embedding note", "id", note.Id, "err", err)
		return Outcome{Id: note.Id, Status: StatusError, Detail: err.Error()}
	}

	if _, err := c.store.UpdateEmbedding(ctx, note.Id, embedding.Vector); err != nil {
		c.logger.Error("error persisting embedding", "id", note.Id, "err", err)
		return Outcome{Id: note.Id, Status: StatusError, Detail: err.Error()}
	}

	return Outcome{Id: note.Id, Status: StatusProcessed}
}
