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


// Package search orchestrates semantic search over a single owner's notes.
//
// The Searcher type implements a three-stage pipeline:
//   - Scan the owner's embedded notes from storage
//   - Embed the query text through the configured provider
//   - Score candidates by cosine similarity and rank them
//
// The query is embedded with the same model as the stored notes, so scores
// are comparable across the whole candidate set. Searchers hold their store
// and embedder as explicit dependencies; nothing in this package reaches for
// package-level state.
package search
