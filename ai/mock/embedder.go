package mock

import (
	"context"
	"hash/fnv"
	"strings"

	"github.com/poiesic/recall/ai"
)

// MockEmbedder is a test double for ai.Embedder.
// It allows custom behavior injection via function fields.
type MockEmbedder struct {
	// EmbedFunc is called by Embed if set.
	// If nil, uses default deterministic behavior.
	EmbedFunc func(ctx context.Context, text string) (*ai.Embedding, error)

	// Dimensions is the vector dimensionality of default embeddings.
	// If 0, DefaultDimensions is used.
	Dimensions int

	callCount int
}

// DefaultDimensions is the dimensionality of default mock embeddings.
const DefaultDimensions = 384

// NewMockEmbedder creates a mock embedder with default deterministic behavior.
// Note: Returns concrete type to allow behavior injection and call assertions.
func NewMockEmbedder() *MockEmbedder {
	return &MockEmbedder{}
}

// Embed generates a deterministic embedding based on text hash.
// It honors the ai.Embedder empty-input contract so pipeline tests exercise
// the same failure paths as production.
func (m *MockEmbedder) Embed(ctx context.Context, text string) (*ai.Embedding, error) {
	m.callCount++

	if m.EmbedFunc != nil {
		return m.EmbedFunc(ctx, text)
	}

	if ai.IsBlank(text) {
		return nil, ai.ErrEmptyInput
	}

	dim := m.Dimensions
	if dim <= 0 {
		dim = DefaultDimensions
	}

	return &ai.Embedding{
		Vector: generateDeterministicVector(text, dim),
		Tokens: len(strings.Fields(text)),
	}, nil
}

// CallCount returns the number of times Embed was called.
func (m *MockEmbedder) CallCount() int {
	return m.callCount
}

// Reset clears the call count and injected behavior.
func (m *MockEmbedder) Reset() {
	m.callCount = 0
	m.EmbedFunc = nil
}

// generateDeterministicVector creates a deterministic embedding vector from text.
// It uses FNV hash to ensure the same text always produces the same vector.
func generateDeterministicVector(text string, dim int) []float32 {
	h := fnv.New32a()
	h.Write([]byte(text))
	seed := h.Sum32()

	vector := make([]float32, dim)
	for i := 0; i < dim; i++ {
		// Simple pseudo-random generation based on seed and index
		seed = seed*1664525 + 1013904223 // LCG constants
		vector[i] = float32(seed%1000) / 1000.0
	}

	// Normalize to unit vector
	var sumSquares float32
	for _, v := range vector {
		sumSquares += v * v
	}
	norm := float32(1.0)
	if sumSquares > 0 {
		norm = float32(1.0) / float32(sumSquares)
		for i := range vector {
			vector[i] *= norm
		}
	}

	return vector
}
