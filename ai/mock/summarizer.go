package mock

import (
	"context"
	"strings"

	"github.com/poiesic/recall/ai"
)

// MockSummarizer is a test double for ai.Summarizer.
// It allows custom behavior injection via function fields.
type MockSummarizer struct {
	// SummarizeFunc is called by Summarize if set.
	// If nil, uses default word-truncation behavior.
	SummarizeFunc func(ctx context.Context, text string) (*ai.NoteDigest, error)

	callCount int
}

// NewMockSummarizer creates a mock summarizer with default behavior.
// Note: Returns concrete type to allow behavior injection and call assertions.
func NewMockSummarizer() *MockSummarizer {
	return &MockSummarizer{}
}

// Summarize produces a trivial digest: the first words of the text become
// the title, the first sentence-length prefix becomes the summary.
func (m *MockSummarizer) Summarize(ctx context.Context, text string) (*ai.NoteDigest, error) {
	m.callCount++

	if m.SummarizeFunc != nil {
		return m.SummarizeFunc(ctx, text)
	}

	if ai.IsBlank(text) {
		return nil, ai.ErrEmptyInput
	}

	words := strings.Fields(text)

	titleWords := words
	if len(titleWords) > 8 {
		titleWords = titleWords[:8]
	}

	summaryWords := words
	if len(summaryWords) > 30 {
		summaryWords = summaryWords[:30]
	}

	return &ai.NoteDigest{
		Title:   strings.Join(titleWords, " "),
		Summary: strings.Join(summaryWords, " "),
	}, nil
}

// CallCount returns the number of times Summarize was called.
func (m *MockSummarizer) CallCount() int {
	return m.callCount
}

// Reset clears the call count and injected behavior.
func (m *MockSummarizer) Reset() {
	m.callCount = 0
	m.SummarizeFunc = nil
}
