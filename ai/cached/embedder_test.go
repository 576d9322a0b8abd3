package cached

import (
	"context"
	"errors"
	"testing"

	"github.com/poiesic/hukumpedia/ai/mock"
	"github.com/poiesic/hukumpedia/core"
	"github.com/poiesic/hukumpedia/storage"
	"github.com/poiesic/hukumpedia/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCache(t *testing.T) storage.EmbeddingCache {
	t.Helper()
	cache, err := badger.NewMemoryCache()
	require.NoError(t, err)
	t.Cleanup(func() { cache.Close() })
	return cache
}

func TestEmbedder_EmbedsOnlyMisses(t *testing.T) {
	ctx := context.Background()
	inner := mock.NewMockEmbedder()
	cache := newCache(t)
	e := NewEmbedder(inner, cache, "m1")

	first, err := e.EmbedTexts(ctx, []string{"bab satu", "pasal satu"})
	require.NoError(t, err)
	require.Len(t, first, 2)
	assert.Equal(t, []string{"bab satu", "pasal satu"}, inner.Embedded())

	inner.Reset()
	second, err := e.EmbedTexts(ctx, []string{"pasal dua", "bab satu", "pasal satu"})
	require.NoError(t, err)
	assert.Equal(t, []string{"pasal dua"}, inner.Embedded())
	assert.Equal(t, first[0], second[1])
	assert.Equal(t, first[1], second[2])

	count, err := cache.CountEmbeddings(ctx, "m1")
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestEmbedder_AllCached(t *testing.T) {
	ctx := context.Background()
	inner := mock.NewMockEmbedder()
	e := NewEmbedder(inner, newCache(t), "m1")

	_, err := e.EmbedText(ctx, "kedaulatan")
	require.NoError(t, err)
	_, err = e.EmbedText(ctx, "kedaulatan")
	require.NoError(t, err)

	assert.Equal(t, 1, inner.CallCount())
}

func TestEmbedder_DuplicateTexts(t *testing.T) {
	ctx := context.Background()
	inner := mock.NewMockEmbedder()
	e := NewEmbedder(inner, newCache(t), "m1")

	vectors, err := e.EmbedTexts(ctx, []string{"a", "b", "a"})
	require.NoError(t, err)
	require.Len(t, vectors, 3)
	assert.Equal(t, vectors[0], vectors[2])
	assert.Equal(t, []string{"a", "b"}, inner.Embedded())
}

func TestEmbedder_ModelScoped(t *testing.T) {
	ctx := context.Background()
	cache := newCache(t)
	inner := mock.NewMockEmbedder()

	_, err := NewEmbedder(inner, cache, "m1").EmbedText(ctx, "x")
	require.NoError(t, err)
	_, err = NewEmbedder(inner, cache, "m2").EmbedText(ctx, "x")
	require.NoError(t, err)

	assert.Equal(t, 2, inner.CallCount())
}

func TestEmbedder_InnerError(t *testing.T) {
	inner := mock.NewMockEmbedder()
	serviceErr := errors.New("connection refused")
	inner.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		return nil, serviceErr
	}
	e := NewEmbedder(inner, newCache(t), "m1")

	_, err := e.EmbedTexts(context.Background(), []string{"x"})
	assert.ErrorIs(t, err, serviceErr)
}

func TestEmbedder_CountMismatch(t *testing.T) {
	inner := mock.NewMockEmbedder()
	inner.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		return [][]float32{{1}}, nil
	}
	e := NewEmbedder(inner, newCache(t), "m1")

	_, err := e.EmbedTexts(context.Background(), []string{"x", "y"})
	assert.Error(t, err)
}

type failingCache struct {
	storage.EmbeddingCache
	puts int
}

func (f *failingCache) GetEmbeddings(ctx context.Context, ids ...core.ID) (map[core.ID]*core.CachedEmbedding, error) {
	return nil, storage.ErrStorageClosed
}

func (f *failingCache) PutEmbeddings(ctx context.Context, embeddings ...*core.CachedEmbedding) error {
	f.puts++
	return storage.ErrStorageClosed
}

func TestEmbedder_CacheFailuresAreMisses(t *testing.T) {
	inner := mock.NewMockEmbedder()
	cache := &failingCache{}
	e := NewEmbedder(inner, cache, "m1")

	vectors, err := e.EmbedTexts(context.Background(), []string{"x", "y"})
	require.NoError(t, err)
	assert.Len(t, vectors, 2)
	assert.Equal(t, 1, cache.puts)
}

func TestEmbedder_Empty(t *testing.T) {
	inner := mock.NewMockEmbedder()
	e := NewEmbedder(inner, newCache(t), "m1")

	vectors, err := e.EmbedTexts(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, vectors)
	assert.Zero(t, inner.CallCount())
}
