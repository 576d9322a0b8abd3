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


// Package index builds exact nearest-neighbour indices over embedded records.
//
// An Index pairs each record with its vector by position and answers k-NN
// queries by squared Euclidean distance with no approximation. Indices are
// immutable once built and safe for concurrent searches.
package index

import (
	"context"
	"fmt"
	"slices"

	"github.com/poiesic/hukumpedia/ai"
	"github.com/poiesic/hukumpedia/normalize"
)

// Hit is a record matched by a search together with its distance to the query.
type Hit[T any] struct {
	Record   T
	Position int
	Distance float32
}

// Index is an exact k-NN index over records of type T.
type Index[T any] struct {
	records []T
	vectors [][]float32
	dim     int
}

// Build normalizes the text of every record, embeds all texts in one batched
// call and indexes the resulting vectors. The dimension is taken from the first
// vector; every other vector must match it.
func Build[T any](ctx context.Context, records []T, textOf func(T) string, embedder ai.Embedder) (*Index[T], error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: no records to index", ErrDimensionMismatch)
	}

	texts := make([]string, len(records))
	for i, r := range records {
		texts[i] = normalize.Text(textOf(r))
	}

	vectors, err := embedder.EmbedTexts(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCollaboratorUnavailable, err)
	}
	if len(vectors) != len(records) {
		return nil, fmt.Errorf("%w: got %d vectors for %d records", ErrCountMismatch, len(vectors), len(records))
	}

	return FromVectors(records, vectors)
}

// FromVectors indexes records with precomputed vectors.
func FromVectors[T any](records []T, vectors [][]float32) (*Index[T], error) {
	if len(records) != len(vectors) {
		return nil, fmt.Errorf("%w: got %d vectors for %d records", ErrCountMismatch, len(vectors), len(records))
	}
	if len(vectors) == 0 {
		return nil, fmt.Errorf("%w: empty batch", ErrDimensionMismatch)
	}

	dim := len(vectors[0])
	if dim == 0 {
		return nil, fmt.Errorf("%w: zero-dimension vector", ErrDimensionMismatch)
	}
	for i, v := range vectors {
		if len(v) != dim {
			return nil, fmt.Errorf("%w: vector %d has %d dimensions, expected %d", ErrDimensionMismatch, i, len(v), dim)
		}
	}

	return &Index[T]{
		records: slices.Clone(records),
		vectors: vectors,
		dim:     dim,
	}, nil
}

// Len returns the number of indexed records.
func (idx *Index[T]) Len() int {
	return len(idx.records)
}

// Dimension returns the vector dimensionality of the index.
func (idx *Index[T]) Dimension() int {
	return idx.dim
}

// Records returns the indexed records in insertion order.
func (idx *Index[T]) Records() []T {
	return slices.Clone(idx.records)
}

// Search returns the min(k, Len) records nearest to query ordered by
// non-decreasing distance. Equal distances keep insertion order.
func (idx *Index[T]) Search(query []float32, k int) ([]Hit[T], error) {
	if len(query) != idx.dim {
		return nil, fmt.Errorf("%w: query has %d dimensions, index has %d", ErrDimensionMismatch, len(query), idx.dim)
	}
	if k <= 0 {
		return []Hit[T]{}, nil
	}

	hits := make([]Hit[T], len(idx.records))
	for i, v := range idx.vectors {
		hits[i] = Hit[T]{
			Record:   idx.records[i],
			Position: i,
			Distance: SquaredL2(query, v),
		}
	}

	slices.SortStableFunc(hits, func(a, b Hit[T]) int {
		switch {
		case a.Distance < b.Distance:
			return -1
		case a.Distance > b.Distance:
			return 1
		}
		return 0
	})

	if k < len(hits) {
		hits = hits[:k]
	}
	return hits, nil
}

// SquaredL2 returns the squared Euclidean distance between a and b.
// Both vectors must have the same length.
func SquaredL2(a, b []float32) float32 {
	var sum float32
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}
