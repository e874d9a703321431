// Package reembed provides batch (re)generation of note embeddings after a
// model change or for notes that were never embedded.
//
// The Coordinator scans an owner's notes, processes them in fixed-size
// chunks (concurrent within a chunk, sequential between chunks, rate-limited
// by a pluggable Limiter), retries transient provider failures with
// exponential backoff, and reports a per-note Summary. A run always
// completes; individual failures are collected, never fatal.
package reembed
