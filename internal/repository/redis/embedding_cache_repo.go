package redis

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/DRSN-tech/recommendation-engine/internal/cfg"
	"github.com/DRSN-tech/recommendation-engine/pkg/clients"
	"github.com/DRSN-tech/recommendation-engine/pkg/e"
	"github.com/jimlawless/whereami"
	r "github.com/redis/go-redis/v9"
)

// EmbeddingCacheRepo хранит векторы запросов в бинарном виде (little-endian float32).
type EmbeddingCacheRepo struct {
	client *clients.RedisClient
	cfg    *cfg.RedisCfg
}

func NewEmbeddingCacheRepo(client *clients.RedisClient, cfg *cfg.RedisCfg) *EmbeddingCacheRepo {
	return &EmbeddingCacheRepo{
		client: client,
		cfg:    cfg,
	}
}

func (c *EmbeddingCacheRepo) GetEmbedding(ctx context.Context, key string) ([]float32, error) {
	data, err := c.client.Client.Get(ctx, embeddingKey(key)).Bytes()
	if err != nil {
		if errors.Is(err, r.Nil) {
			return nil, nil
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	vec, err := bytesToVector(data)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return vec, nil
}

func (c *EmbeddingCacheRepo) SetEmbedding(ctx context.Context, key string, vector []float32) error {
	if err := c.client.Client.Set(ctx, embeddingKey(key), vectorToBytes(vector), c.cfg.EmbeddingTTL).Err(); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

func embeddingKey(key string) string {
	return "embedding:query:" + key
}

func vectorToBytes(v []float32) []byte {
	buf := make([]byte, len(v)*4)
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}

	return buf
}

func bytesToVector(data []byte) ([]float32, error) {
	if len(data)%4 != 0 {
		return nil, fmt.Errorf("invalid embedding cache data: len=%d (not multiple of 4)", len(data))
	}

	vec := make([]float32, len(data)/4)
	for i := range vec {
		vec[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}

	return vec, nil
}
