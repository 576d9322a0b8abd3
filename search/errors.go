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


package search

import "errors"

var (
	// ErrEmbedderRequired is returned when an embedder is not provided.
	ErrEmbedderRequired = errors.New("embedder required")

	// ErrNoChapters is returned when the corpus has no chapters to index.
	ErrNoChapters = errors.New("corpus has no chapters")

	// ErrInvalidThreshold is returned for a negative or NaN chapter threshold.
	ErrInvalidThreshold = errors.New("chapter threshold must be a non-negative number")

	// ErrInvalidTopK is returned for a non-positive default result count.
	ErrInvalidTopK = errors.New("default top-k must be positive")
)
