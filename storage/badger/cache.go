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


package badger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/hukumpedia/core"
	"github.com/poiesic/hukumpedia/storage"
)

// Cache implements storage.EmbeddingCache on BadgerDB.
type Cache struct {
	backend *Backend
	logger  *slog.Logger
}

var _ storage.EmbeddingCache = (*Cache)(nil)

// NewCache opens an on-disk embedding cache in directory path.
//
// Returns storage.EmbeddingCache interface to enforce abstraction.
func NewCache(path string) (storage.EmbeddingCache, error) {
	backend, err := OpenBackend(path, false)
	if err != nil {
		return nil, err
	}
	return newCache(backend), nil
}

func newCache(backend *Backend) *Cache {
	return &Cache{
		backend: backend,
		logger:  slog.Default().With("component", "embedding-cache"),
	}
}

// Close compacts the value log and closes the database.
func (c *Cache) Close() error {
	if c.backend.IsClosed() {
		return nil
	}
	if err := c.backend.RunValueLogGC(0.5); err != nil {
		c.logger.Warn("value log gc failed", "err", err)
	}
	return c.backend.Close()
}

// GetEmbeddings retrieves the cached embeddings that exist among ids.
func (c *Cache) GetEmbeddings(ctx context.Context, ids ...core.ID) (map[core.ID]*core.CachedEmbedding, error) {
	if c.backend.IsClosed() {
		return nil, storage.ErrStorageClosed
	}

	found := make(map[core.ID]*core.CachedEmbedding, len(ids))
	err := c.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			if err := ctx.Err(); err != nil {
				return err
			}
			embedding, err := readEmbedding(tx, makeEmbeddingKey(id))
			if err != nil {
				return err
			}
			if embedding != nil {
				found[id] = embedding
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("cache lookup", "requested", len(ids), "found", len(found))
	return found, nil
}

// PutEmbeddings stores embeddings and indexes them by model.
func (c *Cache) PutEmbeddings(ctx context.Context, embeddings ...*core.CachedEmbedding) error {
	if c.backend.IsClosed() {
		return storage.ErrStorageClosed
	}

	for _, e := range embeddings {
		if err := core.ValidateCachedEmbedding(e); err != nil {
			return err
		}
	}

	wb := c.backend.db.NewWriteBatch()
	defer wb.Cancel()

	now := time.Now().UTC()
	for _, e := range embeddings {
		if err := ctx.Err(); err != nil {
			return err
		}
		if e.InsertedAt.IsZero() {
			e.InsertedAt = now
		}
		if err := wb.Set(makeEmbeddingKey(e.Id), storage.MarshalCachedEmbedding(e)); err != nil {
			return err
		}
		if err := wb.Set(makeModelKey(e.Model, e.Id), []byte{}); err != nil {
			return err
		}
	}

	if err := wb.Flush(); err != nil {
		return fmt.Errorf("flushing embeddings: %w", err)
	}
	c.logger.Debug("cached embeddings", "count", len(embeddings))
	return nil
}

// CountEmbeddings returns the number of cached embeddings for model.
func (c *Cache) CountEmbeddings(ctx context.Context, model string) (int, error) {
	ids, err := c.modelIDs(ctx, model)
	return len(ids), err
}

// DeleteModel removes every cached embedding produced by model.
func (c *Cache) DeleteModel(ctx context.Context, model string) (int, error) {
	ids, err := c.modelIDs(ctx, model)
	if err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, nil
	}

	wb := c.backend.db.NewWriteBatch()
	defer wb.Cancel()
	for _, id := range ids {
		if err := wb.Delete(makeEmbeddingKey(id)); err != nil {
			return 0, err
		}
		if err := wb.Delete(makeModelKey(model, id)); err != nil {
			return 0, err
		}
	}
	if err := wb.Flush(); err != nil {
		return 0, fmt.Errorf("deleting embeddings: %w", err)
	}

	c.logger.Info("deleted cached embeddings", "model", model, "count", len(ids))
	return len(ids), nil
}

func (c *Cache) modelIDs(ctx context.Context, model string) ([]core.ID, error) {
	if c.backend.IsClosed() {
		return nil, storage.ErrStorageClosed
	}

	var ids []core.ID
	err := c.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makeModelPrefix(model)
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			if id, ok := idFromModelKey(iter.Item().Key()); ok {
				ids = append(ids, id)
			}
		}
		return nil
	}, false)
	return ids, err
}

// readEmbedding reads one embedding, returning nil when the key is absent.
func readEmbedding(tx *badger.Txn, key []byte) (*core.CachedEmbedding, error) {
	item, err := tx.Get(key)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var embedding *core.CachedEmbedding
	err = item.Value(func(val []byte) error {
		var err error
		embedding, err = storage.UnmarshalCachedEmbedding(val)
		return err
	})
	return embedding, err
}
