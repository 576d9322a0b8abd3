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


package storage

import (
	"context"

	"github.com/poiesic/hukumpedia/core"
)

// EmbeddingCache persists embedding vectors keyed by model and text.
// It stores vectors only; the extracted document structure is never persisted here.
type EmbeddingCache interface {
	// GetEmbeddings retrieves cached embeddings by ID.
	// Returns only the embeddings that exist (no error for missing entries),
	// keyed by ID.
	GetEmbeddings(ctx context.Context, ids ...core.ID) (map[core.ID]*core.CachedEmbedding, error)

	// PutEmbeddings stores embeddings, replacing existing entries with the same ID.
	// Sets InsertedAt if not already set.
	PutEmbeddings(ctx context.Context, embeddings ...*core.CachedEmbedding) error

	// CountEmbeddings returns the number of cached embeddings for a model.
	CountEmbeddings(ctx context.Context, model string) (int, error)

	// DeleteModel removes every cached embedding produced by model and
	// returns the number removed.
	DeleteModel(ctx context.Context, model string) (int, error)

	// Close closes the cache and releases resources.
	Close() error
}
