package ai

import "context"

// Embedder generates vector embeddings from text for semantic similarity
// search. Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// Embed generates a vector embedding for a single text string, along
	// with the token count consumed by the request.
	//
	// Returns ErrEmptyInput if text is empty or whitespace-only after
	// trimming. Input longer than the configured character budget is
	// silently truncated before the provider call. Provider failures are
	// reported as ErrProviderUnavailable; Embed itself never retries.
	Embed(ctx context.Context, text string) (*Embedding, error)
}

// Summarizer produces a short digest (title and summary) for note text.
// Implementations must be thread-safe for concurrent use.
type Summarizer interface {
	// Summarize analyzes note text and returns a digest with a suggested
	// title and a one-paragraph summary.
	// Returns ErrEmptyInput if text is empty or whitespace-only.
	Summarize(ctx context.Context, text string) (*NoteDigest, error)
}

// Provider aggregates AI services for convenient initialization and
// lifecycle management. A provider creates and manages Embedder and
// Summarizer instances, ensuring they share configuration.
type Provider interface {
	// Embedder returns the text embedding service.
	// The returned Embedder is safe for concurrent use.
	Embedder() Embedder

	// Summarizer returns the note digest service.
	// The returned Summarizer is safe for concurrent use.
	Summarizer() Summarizer

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
