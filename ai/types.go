package ai

// Embedding is the result of embedding one text input.
type Embedding struct {
	// Vector is the fixed-length numeric representation of the input.
	// Its dimensionality is provider-defined; callers are responsible for
	// dimensional consistency across compared vectors.
	Vector []float32

	// Tokens is the token count consumed by the request. When the provider
	// does not report usage it is estimated locally; 0 means unavailable.
	Tokens int
}

// NoteDigest is a model-generated title and summary for a note.
type NoteDigest struct {
	Title   string `json:"title"`
	Summary string `json:"summary"`
}
