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


package rank

import "errors"

var (
	// ErrDimensionMismatch indicates two vectors of different lengths were
	// compared. This is fatal to the current ranking operation: it means the
	// embedding model or version changed and the affected vectors must be
	// regenerated, never silently degraded.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")
)
