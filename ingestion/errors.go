package ingestion

import "errors"

var (
	// ErrStoreRequired is returned when a note store is not provided.
	ErrStoreRequired = errors.New("note store required")

	// ErrAIProviderRequired is returned when an AI provider is not provided.
	ErrAIProviderRequired = errors.New("AI provider required")
)
