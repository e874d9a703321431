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


// Package doctree models the rich-document tree used for note content and
// provides deterministic plain-text extraction from it.
//
// Note content arrives as a JSON document tree produced by a rich-text
// editor: an ordered, recursively nested node structure where each node may
// carry a type tag, literal text, child nodes, and inline mark annotations.
// Marks are irrelevant to extraction and are preserved only for round-trips.
//
// Extract flattens a tree into a single plain-text string suitable as
// embedding input. It is pure and total: identical input always yields a
// byte-for-byte identical string, and malformed nodes contribute nothing
// rather than failing. The embedding pipeline relies on this determinism to
// keep batch reprocessing idempotent.
package doctree
