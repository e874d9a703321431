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


// Package ai provides abstractions for the AI services used by recall.
//
// Two interfaces cover the pipeline's needs:
//
//   - Embedder: converts note or query text into a fixed-length vector
//   - Summarizer: produces a short title/summary digest for a note
//
// Implementations live in sub-packages:
//
//   - ai/openai: production implementation against OpenAI-compatible APIs
//   - ai/mock: deterministic test doubles with behavior injection
//
// Public constructors in ai/openai return interface types to enforce
// abstraction; mock constructors return concrete types so tests can inject
// behavior and assert call counts.
//
// Clients are explicit values constructed once at process start and passed
// into the searcher and batch coordinator as dependencies; there is no
// package-level singleton.
//
// # Failure contract
//
// Embed fails with ErrEmptyInput when given nothing to embed, and wraps any
// provider-side failure (auth, quota, network, malformed response) in
// ErrProviderUnavailable. The client never retries internally; retry and
// backoff policy belongs to callers, which keeps this contract simple and
// testable.
package ai
