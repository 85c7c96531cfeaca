package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"

	"github.com/DRSN-tech/recommendation-engine/internal/metrics"
	"github.com/DRSN-tech/recommendation-engine/pkg/e"
	"github.com/DRSN-tech/recommendation-engine/pkg/logger"
)

// CachedEmbedder кэширует векторы запросов. Ошибки кэша не влияют на результат.
type CachedEmbedder struct {
	inner  Embedder
	cache  EmbeddingCacheRepository
	model  string
	logger logger.Logger
}

func NewCachedEmbedder(inner Embedder, cache EmbeddingCacheRepository, model string, logger logger.Logger) *CachedEmbedder {
	return &CachedEmbedder{
		inner:  inner,
		cache:  cache,
		model:  model,
		logger: logger,
	}
}

func (c *CachedEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	const op = "CachedEmbedder.Embed"

	if text == "" {
		return []float32{}, nil
	}

	key := c.cacheKey(text)

	vector, err := c.cache.GetEmbedding(ctx, key)
	if err != nil {
		c.logger.Warnf("%s: failed to read cached embedding: %v", op, err)
	}
	if len(vector) > 0 {
		metrics.CacheTotal.WithLabelValues(metrics.CacheEmbedding, "hit").Inc()
		return vector, nil
	}
	metrics.CacheTotal.WithLabelValues(metrics.CacheEmbedding, "miss").Inc()

	vector, err = c.inner.Embed(ctx, text)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	if len(vector) > 0 {
		if err := c.cache.SetEmbedding(ctx, key, vector); err != nil {
			c.logger.Warnf("%s: failed to cache embedding: %v", op, err)
		}
	}

	return vector, nil
}

// EmbedBatch используется при индексации и в кэш не ходит.
func (c *CachedEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	return c.inner.EmbedBatch(ctx, texts)
}

func (c *CachedEmbedder) Dimension() int {
	return c.inner.Dimension()
}

func (c *CachedEmbedder) cacheKey(text string) string {
	h := sha256.Sum256([]byte(c.model + "\x00" + text))
	return hex.EncodeToString(h[:])
}
