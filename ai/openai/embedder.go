package openai

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/poiesic/recall/ai"
	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/openai"
)

// Embedder implements ai.Embedder using OpenAI-compatible embedding APIs.
type Embedder struct {
	embedder      embeddings.Embedder
	maxInputChars int
	tokenEncoding string
	logger        *slog.Logger
}

// newEmbedder is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newEmbedder(config *ai.Config) (*Embedder, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	// Create OpenAI client configured for embeddings
	// Use "none" as token for local OpenAI-compatible services that don't require authentication
	client, err := openai.New(
		openai.WithBaseURL(config.EmbeddingHost),
		openai.WithToken("none"),
		openai.WithEmbeddingModel(config.EmbeddingModel),
	)
	if err != nil {
		return nil, err
	}

	// Wrap in langchaingo embedder
	embedder, err := embeddings.NewEmbedder(client, embeddings.WithStripNewLines(true))
	if err != nil {
		return nil, err
	}

	return &Embedder{
		embedder:      embedder,
		maxInputChars: config.MaxInputChars,
		tokenEncoding: config.TokenEncoding,
		logger:        slog.Default().With("component", "openai-embedder"),
	}, nil
}

// NewEmbedder creates a new embedder using the provided configuration.
//
// Returns ai.Embedder interface to enforce abstraction.
func NewEmbedder(config *ai.Config) (ai.Embedder, error) {
	return newEmbedder(config)
}

// Embed generates a vector embedding for a single text string.
//
// Input is trimmed and capped at the configured character budget before the
// provider call; truncation is silent. Provider failures and empty provider
// responses are reported as ai.ErrProviderUnavailable. Embed does not retry;
// retry policy belongs to the caller.
func (e *Embedder) Embed(ctx context.Context, text string) (*ai.Embedding, error) {
	if ai.IsBlank(text) {
		return nil, ai.ErrEmptyInput
	}

	truncated := ai.TruncateText(text, e.maxInputChars)
	if len(truncated) != len(text) {
		e.logger.Debug("truncated embedding input", "original", len(text), "truncated", len(truncated))
	}

	vectors, err := e.embedder.EmbedDocuments(ctx, []string{truncated})
	if err != nil {
		e.logger.Error("failed to generate embedding", "err", err)
		return nil, fmt.Errorf("%w: %w", ai.ErrProviderUnavailable, err)
	}

	if len(vectors) == 0 || len(vectors[0]) == 0 {
		e.logger.Warn("embedder returned empty result")
		return nil, fmt.Errorf("%w: provider returned an empty vector", ai.ErrProviderUnavailable)
	}

	// The embeddings API here does not report usage, so estimate locally.
	tokens := ai.CountTokens(e.tokenEncoding, truncated)

	return &ai.Embedding{
		Vector: vectors[0],
		Tokens: tokens,
	}, nil
}
