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
	"fmt"
	"time"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"
	"github.com/poiesic/hukumpedia/core"
)

// MarshalID serializes an ID to bytes.
func MarshalID(id core.ID) []byte {
	buf := make([]byte, varint.Uint64.Size(uint64(id)))
	varint.Uint64.Marshal(uint64(id), buf)
	return buf
}

// UnmarshalID deserializes an ID from bytes.
func UnmarshalID(data []byte) (core.ID, error) {
	v, _, err := varint.Uint64.Unmarshal(data)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return core.ID(v), nil
}

// MarshalCachedEmbedding serializes a CachedEmbedding to bytes.
func MarshalCachedEmbedding(e *core.CachedEmbedding) []byte {
	buf := make([]byte, CachedEmbeddingMUS.Size(*e))
	CachedEmbeddingMUS.Marshal(*e, buf)
	return buf
}

// UnmarshalCachedEmbedding deserializes a CachedEmbedding from bytes.
func UnmarshalCachedEmbedding(data []byte) (*core.CachedEmbedding, error) {
	e, _, err := CachedEmbeddingMUS.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return &e, nil
}

// CachedEmbeddingMUS is the MUS serializer for core.CachedEmbedding.
// Layout: id (varint), model (string), inserted-at unix nanos (varint),
// vector length (varint), vector elements (raw float32).
var CachedEmbeddingMUS = cachedEmbeddingMUS{}

type cachedEmbeddingMUS struct{}

func (s cachedEmbeddingMUS) Marshal(e core.CachedEmbedding, bs []byte) (n int) {
	n = varint.Uint64.Marshal(uint64(e.Id), bs)
	n += ord.String.Marshal(e.Model, bs[n:])
	n += varint.Int64.Marshal(unixNano(e.InsertedAt), bs[n:])
	n += varint.Int.Marshal(len(e.Vector), bs[n:])
	for _, f := range e.Vector {
		n += raw.Float32.Marshal(f, bs[n:])
	}
	return n
}

func (s cachedEmbeddingMUS) Unmarshal(bs []byte) (e core.CachedEmbedding, n int, err error) {
	id, n1, err := varint.Uint64.Unmarshal(bs)
	n += n1
	if err != nil {
		return
	}
	e.Id = core.ID(id)

	e.Model, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}

	nanos, n1, err := varint.Int64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	if nanos != 0 {
		e.InsertedAt = time.Unix(0, nanos).UTC()
	}

	length, n1, err := varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	if length < 0 || length > (len(bs)-n)/4 {
		err = ErrTruncatedData
		return
	}

	e.Vector = make([]float32, length)
	for i := range e.Vector {
		e.Vector[i], n1, err = raw.Float32.Unmarshal(bs[n:])
		n += n1
		if err != nil {
			return
		}
	}
	return
}

func (s cachedEmbeddingMUS) Size(e core.CachedEmbedding) (size int) {
	size = varint.Uint64.Size(uint64(e.Id))
	size += ord.String.Size(e.Model)
	size += varint.Int64.Size(unixNano(e.InsertedAt))
	size += varint.Int.Size(len(e.Vector))
	for _, f := range e.Vector {
		size += raw.Float32.Size(f)
	}
	return size
}

func (s cachedEmbeddingMUS) Skip(bs []byte) (n int, err error) {
	_, n, err = s.Unmarshal(bs)
	return
}

func unixNano(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixNano()
}
