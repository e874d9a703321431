// Package ingestion handles adding notes and enriching them asynchronously.
//
// The Pipeline writes notes to storage synchronously, then generates
// embeddings and missing titles/summaries on background worker pools so the
// add path stays fast even when the AI provider is slow.
package ingestion
