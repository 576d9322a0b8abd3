package badger

import (
	"context"
	"testing"

	"github.com/poiesic/hukumpedia/core"
	"github.com/poiesic/hukumpedia/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) storage.EmbeddingCache {
	t.Helper()
	cache, err := NewMemoryCache()
	require.NoError(t, err)
	t.Cleanup(func() { cache.Close() })
	return cache
}

func embedding(model, text string, vector ...float32) *core.CachedEmbedding {
	return &core.CachedEmbedding{
		Id:     core.EmbeddingID(model, text),
		Model:  model,
		Vector: vector,
	}
}

func TestCache_PutGet(t *testing.T) {
	ctx := context.Background()
	cache := newTestCache(t)

	a := embedding("m1", "pasal satu", 1, 2)
	b := embedding("m1", "pasal dua", 3, 4)
	require.NoError(t, cache.PutEmbeddings(ctx, a, b))
	assert.False(t, a.InsertedAt.IsZero(), "InsertedAt should be set")

	missing := core.EmbeddingID("m1", "pasal tiga")
	got, err := cache.GetEmbeddings(ctx, a.Id, b.Id, missing)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, []float32{1, 2}, got[a.Id].Vector)
	assert.Equal(t, []float32{3, 4}, got[b.Id].Vector)
	assert.Equal(t, "m1", got[b.Id].Model)
	_, ok := got[missing]
	assert.False(t, ok)
}

func TestCache_Overwrite(t *testing.T) {
	ctx := context.Background()
	cache := newTestCache(t)

	require.NoError(t, cache.PutEmbeddings(ctx, embedding("m1", "x", 1)))
	require.NoError(t, cache.PutEmbeddings(ctx, embedding("m1", "x", 2)))

	id := core.EmbeddingID("m1", "x")
	got, err := cache.GetEmbeddings(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, []float32{2}, got[id].Vector)

	count, err := cache.CountEmbeddings(ctx, "m1")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestCache_RejectsInvalid(t *testing.T) {
	ctx := context.Background()
	cache := newTestCache(t)

	err := cache.PutEmbeddings(ctx, embedding("m1", "ok", 1), embedding("", "no model", 1))
	assert.ErrorIs(t, err, core.ErrEmptyModel)

	err = cache.PutEmbeddings(ctx, embedding("m1", "no vector"))
	assert.ErrorIs(t, err, core.ErrEmptyVector)

	count, err := cache.CountEmbeddings(ctx, "m1")
	require.NoError(t, err)
	assert.Zero(t, count, "nothing is written when validation fails")
}

func TestCache_CountAndDeleteModel(t *testing.T) {
	ctx := context.Background()
	cache := newTestCache(t)

	require.NoError(t, cache.PutEmbeddings(ctx,
		embedding("m1", "a", 1),
		embedding("m1", "b", 1),
		embedding("m1-large", "a", 1),
		embedding("m2", "a", 1),
	))

	tests := []struct {
		model string
		want  int
	}{
		{"m1", 2},
		{"m1-large", 1},
		{"m2", 1},
		{"unknown", 0},
	}
	for _, tt := range tests {
		t.Run(tt.model, func(t *testing.T) {
			count, err := cache.CountEmbeddings(ctx, tt.model)
			require.NoError(t, err)
			assert.Equal(t, tt.want, count)
		})
	}

	deleted, err := cache.DeleteModel(ctx, "m1")
	require.NoError(t, err)
	assert.Equal(t, 2, deleted)

	count, err := cache.CountEmbeddings(ctx, "m1")
	require.NoError(t, err)
	assert.Zero(t, count)

	got, err := cache.GetEmbeddings(ctx, core.EmbeddingID("m1", "a"), core.EmbeddingID("m2", "a"))
	require.NoError(t, err)
	assert.Len(t, got, 1)

	deleted, err = cache.DeleteModel(ctx, "m1")
	require.NoError(t, err)
	assert.Zero(t, deleted)
}

func TestCache_Persistence(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	cache, err := NewCache(dir)
	require.NoError(t, err)
	e := embedding("m1", "kedaulatan", 0.5, 0.25)
	require.NoError(t, cache.PutEmbeddings(ctx, e))
	require.NoError(t, cache.Close())

	reopened, err := NewCache(dir)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.GetEmbeddings(ctx, e.Id)
	require.NoError(t, err)
	require.Contains(t, got, e.Id)
	assert.Equal(t, e.Vector, got[e.Id].Vector)
}

func TestCache_Closed(t *testing.T) {
	ctx := context.Background()
	cache, err := NewMemoryCache()
	require.NoError(t, err)
	require.NoError(t, cache.Close())
	require.NoError(t, cache.Close(), "second close is a no-op")

	_, err = cache.GetEmbeddings(ctx, 1)
	assert.ErrorIs(t, err, storage.ErrStorageClosed)
	assert.ErrorIs(t, cache.PutEmbeddings(ctx, embedding("m", "x", 1)), storage.ErrStorageClosed)
	_, err = cache.CountEmbeddings(ctx, "m")
	assert.ErrorIs(t, err, storage.ErrStorageClosed)
}
