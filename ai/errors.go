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


package ai

import "errors"

var (
	// ErrEmptyInput indicates there was nothing to embed or summarize after
	// trimming whitespace. User-correctable; callers surface it as a
	// validation failure.
	ErrEmptyInput = errors.New("input text is empty")

	// ErrProviderUnavailable indicates the upstream AI provider failed
	// (auth, quota, network, or a malformed response). Transient from the
	// caller's perspective; callers decide whether and how to retry.
	ErrProviderUnavailable = errors.New("ai provider unavailable")
)
