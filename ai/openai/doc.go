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


// Package openai provides production implementations of the ai interfaces
// against OpenAI-compatible APIs (OpenAI, Ollama, LocalAI, vLLM, ...).
//
// The embedder and summarizer are thin wrappers over langchaingo clients.
// Both map provider-side failures to ai.ErrProviderUnavailable so callers
// can apply a uniform retry policy, and neither retries network calls
// itself. The summarizer retries only JSON parsing of the model output,
// which is a local concern.
package openai
