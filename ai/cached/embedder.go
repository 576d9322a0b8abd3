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


// Package cached provides an ai.Embedder decorator backed by a persistent
// embedding cache.
package cached

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/poiesic/hukumpedia/ai"
	"github.com/poiesic/hukumpedia/core"
	"github.com/poiesic/hukumpedia/storage"
)

// Embedder serves embeddings from a cache and embeds only the misses.
// Cache failures never fail an embedding request: read errors are treated as
// misses and write errors are logged.
type Embedder struct {
	next   ai.Embedder
	cache  storage.EmbeddingCache
	model  string
	logger *slog.Logger
}

var _ ai.Embedder = (*Embedder)(nil)

// NewEmbedder wraps next with cache. model scopes the cache keys so vectors
// from different embedding models never mix.
func NewEmbedder(next ai.Embedder, cache storage.EmbeddingCache, model string) *Embedder {
	return &Embedder{
		next:   next,
		cache:  cache,
		model:  model,
		logger: slog.Default().With("component", "cached-embedder", "model", model),
	}
}

// EmbedText generates or loads the embedding for a single text.
func (e *Embedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	vectors, err := e.EmbedTexts(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

// EmbedTexts returns one embedding per text in order. Texts missing from the
// cache are embedded in a single batch and written back.
func (e *Embedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return [][]float32{}, nil
	}

	ids := make([]core.ID, len(texts))
	for i, text := range texts {
		ids[i] = core.EmbeddingID(e.model, text)
	}

	cached, err := e.cache.GetEmbeddings(ctx, ids...)
	if err != nil {
		e.logger.Warn("embedding cache read failed, embedding all texts", "err", err)
		cached = nil
	}

	vectors := make([][]float32, len(texts))
	var missTexts []string
	var missPositions []int
	// duplicate texts within one batch are embedded once
	pending := make(map[core.ID]int)
	for i, id := range ids {
		if hit, ok := cached[id]; ok {
			vectors[i] = hit.Vector
			continue
		}
		if _, ok := pending[id]; !ok {
			pending[id] = len(missTexts)
			missTexts = append(missTexts, texts[i])
		}
		missPositions = append(missPositions, i)
	}

	e.logger.Debug("embedding cache lookup", "texts", len(texts), "misses", len(missTexts))
	if len(missTexts) == 0 {
		return vectors, nil
	}

	fresh, err := e.next.EmbedTexts(ctx, missTexts)
	if err != nil {
		return nil, err
	}
	if len(fresh) != len(missTexts) {
		return nil, fmt.Errorf("embedder returned %d vectors for %d texts", len(fresh), len(missTexts))
	}

	for _, pos := range missPositions {
		vectors[pos] = fresh[pending[ids[pos]]]
	}

	records := make([]*core.CachedEmbedding, 0, len(missTexts))
	for i, text := range missTexts {
		if len(fresh[i]) == 0 {
			continue
		}
		records = append(records, &core.CachedEmbedding{
			Id:     core.EmbeddingID(e.model, text),
			Model:  e.model,
			Vector: fresh[i],
		})
	}
	if err := e.cache.PutEmbeddings(ctx, records...); err != nil {
		e.logger.Warn("embedding cache write failed", "count", len(records), "err", err)
	}

	return vectors, nil
}
