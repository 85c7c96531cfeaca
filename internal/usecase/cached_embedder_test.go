package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/DRSN-tech/recommendation-engine/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCachedEmbedder_HitSkipsInner(t *testing.T) {
	inner := &mockEmbedder{vector: []float32{0.1, 0.2}, dim: 2}
	cache := &mockEmbeddingCache{}
	c := NewCachedEmbedder(inner, cache, "all-minilm", logger.NewNopLogger())

	first, err := c.Embed(context.Background(), "proximity sensor")
	require.NoError(t, err)
	second, err := c.Embed(context.Background(), "proximity sensor")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, inner.calls)
	assert.Equal(t, 1, cache.sets)
	assert.Equal(t, 2, c.Dimension())
}

func TestCachedEmbedder_KeyDependsOnModel(t *testing.T) {
	a := NewCachedEmbedder(&mockEmbedder{}, &mockEmbeddingCache{}, "model-a", logger.NewNopLogger())
	b := NewCachedEmbedder(&mockEmbedder{}, &mockEmbeddingCache{}, "model-b", logger.NewNopLogger())

	assert.NotEqual(t, a.cacheKey("text"), b.cacheKey("text"))
	assert.Equal(t, a.cacheKey("text"), a.cacheKey("text"))
}

func TestCachedEmbedder_CacheErrorsIgnored(t *testing.T) {
	inner := &mockEmbedder{vector: []float32{1}}
	cache := &mockEmbeddingCache{getErr: errors.New("redis down"), setErr: errors.New("redis down")}
	c := NewCachedEmbedder(inner, cache, "m", logger.NewNopLogger())

	vec, err := c.Embed(context.Background(), "q")
	require.NoError(t, err)
	assert.Equal(t, []float32{1}, vec)
	assert.Equal(t, 1, inner.calls)
}

func TestCachedEmbedder_EmptyText(t *testing.T) {
	inner := &mockEmbedder{vector: []float32{1}}
	c := NewCachedEmbedder(inner, &mockEmbeddingCache{}, "m", logger.NewNopLogger())

	vec, err := c.Embed(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, vec)
	assert.Equal(t, 0, inner.calls)
}

func TestCachedEmbedder_InnerErrorPropagates(t *testing.T) {
	cache := &mockEmbeddingCache{}
	c := NewCachedEmbedder(&mockEmbedder{err: errors.New("down")}, cache, "m", logger.NewNopLogger())

	_, err := c.Embed(context.Background(), "q")
	assert.Error(t, err)
	assert.Equal(t, 0, cache.sets)
}
