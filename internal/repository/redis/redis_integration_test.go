//go:build integration

package redis

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/DRSN-tech/recommendation-engine/internal/cfg"
	"github.com/DRSN-tech/recommendation-engine/internal/domain"
	"github.com/DRSN-tech/recommendation-engine/internal/repository/redis/converter"
	"github.com/DRSN-tech/recommendation-engine/pkg/clients"
	"github.com/DRSN-tech/recommendation-engine/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupRedis(t *testing.T) (*clients.RedisClient, *cfg.RedisCfg) {
	t.Helper()
	ctx := context.Background()

	redisContainer, err := tcredis.Run(ctx,
		"redis:7.4-alpine",
		testcontainers.WithWaitStrategy(
			wait.ForLog("Ready to accept connections").
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := redisContainer.Terminate(ctx); err != nil {
			t.Logf("Failed to terminate redis container: %v", err)
		}
	})

	host, err := redisContainer.Host(ctx)
	require.NoError(t, err)
	port, err := redisContainer.MappedPort(ctx, "6379")
	require.NoError(t, err)

	redisCfg := &cfg.RedisCfg{
		Addr:         fmt.Sprintf("%s:%s", host, port.Port()),
		DialTimeout:  5 * time.Second,
		Timeout:      5 * time.Second,
		MetadataTTL:  time.Minute,
		EmbeddingTTL: time.Hour,
	}

	client := clients.NewRedisClient(redisCfg)
	t.Cleanup(func() { _ = client.Close() })
	require.NoError(t, client.Ping(ctx))

	return client, redisCfg
}

func TestRedisRepos(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	client, redisCfg := setupRedis(t)
	ctx := context.Background()

	t.Run("metadata round trip with ttl", func(t *testing.T) {
		repo := NewMetadataCacheRepo(client, converter.MetadataConverterImpl{}, redisCfg, logger.NewNopLogger())
		datasheet := "https://minio.local/ds.pdf"

		err := repo.SetMetadata(ctx, []domain.MetadataRecord{
			{
				Sku:            "1040763",
				Specifications: map[string]any{"range": "0-4 m"},
				Images:         []string{"https://minio.local/a.png"},
				Documents:      []domain.Document{{Title: "Manual", URL: "https://minio.local/m.pdf", Type: "manual"}},
				DatasheetURL:   &datasheet,
			},
		})
		require.NoError(t, err)

		got, err := repo.GetMetadata(ctx, []string{"1040763", "missing"})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "0-4 m", got["1040763"].Specifications["range"])
		assert.Equal(t, []string{"https://minio.local/a.png"}, got["1040763"].Images)
		assert.Equal(t, datasheet, *got["1040763"].DatasheetURL)

		ttl, err := client.Client.TTL(ctx, metadataKey("1040763")).Result()
		require.NoError(t, err)
		assert.Greater(t, ttl, time.Duration(0))
		assert.LessOrEqual(t, ttl, time.Minute)

		require.NoError(t, repo.DeleteMetadata(ctx, []string{"1040763"}))
		got, err = repo.GetMetadata(ctx, []string{"1040763"})
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("corrupted metadata is a miss", func(t *testing.T) {
		repo := NewMetadataCacheRepo(client, converter.MetadataConverterImpl{}, redisCfg, logger.NewNopLogger())
		require.NoError(t, client.Client.Set(ctx, metadataKey("broken"), "{not json", time.Minute).Err())

		got, err := repo.GetMetadata(ctx, []string{"broken"})
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("embedding round trip", func(t *testing.T) {
		repo := NewEmbeddingCacheRepo(client, redisCfg)

		vec, err := repo.GetEmbedding(ctx, "k1")
		require.NoError(t, err)
		assert.Nil(t, vec)

		require.NoError(t, repo.SetEmbedding(ctx, "k1", []float32{0.1, -0.2, 0.3}))

		vec, err = repo.GetEmbedding(ctx, "k1")
		require.NoError(t, err)
		assert.Equal(t, []float32{0.1, -0.2, 0.3}, vec)
	})
}
