package ai

import (
	"strings"

	"github.com/pkoukk/tiktoken-go"
)

// TruncateText caps text at maxChars characters, counted in runes so a
// multi-byte character is never split. Truncation is silent; the provider's
// token limit is approximated by the character budget.
func TruncateText(text string, maxChars int) string {
	if maxChars <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= maxChars {
		return text
	}
	return string(runes[:maxChars])
}

// IsBlank reports whether text is empty or whitespace-only after trimming.
func IsBlank(text string) bool {
	return strings.TrimSpace(text) == ""
}

// CountTokens estimates the token count of text under the named tiktoken
// encoding. Returns 0 when the encoding is unknown, matching the "0 if
// unavailable" contract for token accounting.
func CountTokens(encoding, text string) int {
	enc, err := tiktoken.GetEncoding(encoding)
	if err != nil {
		return 0
	}
	return len(enc.Encode(text, nil, nil))
}
