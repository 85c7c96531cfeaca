package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/DRSN-tech/recommendation-engine/internal/cfg"
	"github.com/DRSN-tech/recommendation-engine/internal/domain"
	"github.com/DRSN-tech/recommendation-engine/internal/repository/redis/converter"
	"github.com/DRSN-tech/recommendation-engine/pkg/clients"
	"github.com/DRSN-tech/recommendation-engine/pkg/e"
	"github.com/DRSN-tech/recommendation-engine/pkg/logger"
	"github.com/jimlawless/whereami"
)

type MetadataCacheRepo struct {
	client *clients.RedisClient
	conv   converter.MetadataConverter
	cfg    *cfg.RedisCfg
	logger logger.Logger
}

func NewMetadataCacheRepo(client *clients.RedisClient, conv converter.MetadataConverter,
	cfg *cfg.RedisCfg, logger logger.Logger) *MetadataCacheRepo {
	return &MetadataCacheRepo{
		client: client,
		conv:   conv,
		cfg:    cfg,
		logger: logger,
	}
}

// GetMetadata возвращает закэшированные метаданные по sku, игнорируя промахи и логируя битые записи
func (r *MetadataCacheRepo) GetMetadata(ctx context.Context, skus []string) (map[string]domain.MetadataRecord, error) {
	if len(skus) == 0 {
		return map[string]domain.MetadataRecord{}, nil
	}

	keys := buildMetadataKeys(skus)

	values, err := r.client.Client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	result := make(map[string]domain.MetadataRecord, len(values))
	for i, val := range values {
		data, err := redisValueToBytes(val, keys[i])
		if err != nil {
			r.logger.Warnf("%v", e.Wrap(whereami.WhereAmI(), err))
		}

		if data == nil {
			continue // cache miss
		}

		var model converter.MetadataRedisModel
		if err := json.Unmarshal(data, &model); err != nil {
			r.logger.Warnf("Redis unmarshal failed: %v", e.Wrap(whereami.WhereAmI(), err))
			continue
		}

		if model.Sku != skus[i] {
			r.logger.Warnf("Cache sku mismatch: key_sku: %s, model_sku: %s", skus[i], model.Sku)
			if err := r.client.Client.Del(ctx, keys[i]).Err(); err != nil {
				r.logger.Warnf("Redis del failed: %v", e.Wrap(whereami.WhereAmI(), err))
			}
			continue // cache miss
		}

		result[skus[i]] = *r.conv.ToEntity(&model)
	}

	return result, nil
}

// SetMetadata кэширует метаданные одним пайплайном с TTL.
func (r *MetadataCacheRepo) SetMetadata(ctx context.Context, records []domain.MetadataRecord) error {
	if len(records) == 0 {
		return nil
	}

	pipeline := r.client.Client.Pipeline()
	for _, model := range r.conv.ToArrRedisModel(records) {
		data, err := json.Marshal(model)
		if err != nil {
			r.logger.Warnf("Failed to marshal metadata for caching (sku: %s): %v", model.Sku, e.Wrap(whereami.WhereAmI(), err))
			continue
		}

		pipeline.Set(ctx, metadataKey(model.Sku), data, r.cfg.MetadataTTL)
	}

	if _, err := pipeline.Exec(ctx); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// DeleteMetadata удаляет метаданные из кэша по sku
func (r *MetadataCacheRepo) DeleteMetadata(ctx context.Context, skus []string) error {
	if len(skus) == 0 {
		return nil
	}

	if err := r.client.Client.Del(ctx, buildMetadataKeys(skus)...).Err(); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

func buildMetadataKeys(skus []string) []string {
	keys := make([]string, len(skus))
	for i, sku := range skus {
		keys[i] = metadataKey(sku)
	}

	return keys
}

func metadataKey(sku string) string {
	return "product:metadata:" + sku
}

// redisValueToBytes конвертирует значение из Redis в []byte.
// Поддерживает string и []byte, возвращает ошибку для неизвестных типов.
func redisValueToBytes(val interface{}, key string) ([]byte, error) {
	switch v := val.(type) {
	case string:
		return []byte(v), nil
	case []byte:
		return v, nil
	case nil:
		return nil, nil // cache miss
	default:
		return nil, fmt.Errorf("unexpected Redis value type for key %s: %T", key, val)
	}
}
