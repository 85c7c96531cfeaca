package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/DRSN-tech/recommendation-engine/internal/domain"
	"github.com/DRSN-tech/recommendation-engine/internal/metrics"
	"github.com/DRSN-tech/recommendation-engine/pkg/e"
	"github.com/DRSN-tech/recommendation-engine/pkg/logger"
)

const cacheFillTimeout = 500 * time.Millisecond

// CachedMetadataStore отдаёт метаданные из redis, промахи добирает одним запросом в PostgreSQL.
type CachedMetadataStore struct {
	productRepo ProductRepository
	cacheRepo   MetadataCacheRepository
	assets      AssetLinker
	logger      logger.Logger
}

func NewCachedMetadataStore(
	productRepo ProductRepository,
	cacheRepo MetadataCacheRepository,
	assets AssetLinker,
	logger logger.Logger,
) *CachedMetadataStore {
	return &CachedMetadataStore{
		productRepo: productRepo,
		cacheRepo:   cacheRepo,
		assets:      assets,
		logger:      logger,
	}
}

// FetchBySkus возвращает метаданные найденных sku. Отсутствующие sku в результат не попадают.
func (s *CachedMetadataStore) FetchBySkus(ctx context.Context, skus []string) (map[string]domain.MetadataRecord, error) {
	const op = "CachedMetadataStore.FetchBySkus"

	result := make(map[string]domain.MetadataRecord, len(skus))
	if len(skus) == 0 {
		return result, nil
	}

	// Поиск метаданных в кэше
	cached, err := s.cacheRepo.GetMetadata(ctx, skus)
	if err != nil {
		s.logger.Warnf("%s: cache unavailable, falling back to database: %v", op, err)
		cached = nil
	}

	misses := make([]string, 0, len(skus))
	for _, sku := range skus {
		if rec, ok := cached[sku]; ok {
			result[sku] = rec
			continue
		}
		misses = append(misses, sku)
	}
	metrics.CacheTotal.WithLabelValues(metrics.CacheMetadata, "hit").Add(float64(len(result)))
	metrics.CacheTotal.WithLabelValues(metrics.CacheMetadata, "miss").Add(float64(len(misses)))

	if len(misses) == 0 {
		return result, nil
	}

	// Получение промахов из БД одним запросом
	fromDB, err := s.productRepo.FetchBySkus(ctx, misses)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	fresh := make([]domain.MetadataRecord, 0, len(fromDB))
	for sku, rec := range fromDB {
		rec = s.resolveAssets(ctx, rec)
		result[sku] = rec
		fresh = append(fresh, rec)
	}

	// Фоновое добавление метаданных в кэш
	if len(fresh) > 0 {
		go func() {
			bgCtx, cancel := context.WithTimeout(context.Background(), cacheFillTimeout)
			defer cancel()

			if err := s.cacheRepo.SetMetadata(bgCtx, fresh); err != nil {
				s.logger.Warnf("%s: failed to cache metadata in background: %v", op, err)
			}
		}()
	}

	return result, nil
}

// resolveAssets превращает ссылки вида s3://key в подписанные URL.
func (s *CachedMetadataStore) resolveAssets(ctx context.Context, rec domain.MetadataRecord) domain.MetadataRecord {
	if s.assets == nil {
		return rec
	}

	images := make([]string, len(rec.Images))
	for i, img := range rec.Images {
		images[i] = s.assets.Resolve(ctx, img)
	}
	rec.Images = images
	rec.TechnicalDrawings = s.resolveDocuments(ctx, rec.TechnicalDrawings)
	rec.Documents = s.resolveDocuments(ctx, rec.Documents)

	if rec.DatasheetURL != nil && strings.TrimSpace(*rec.DatasheetURL) != "" {
		url := s.assets.Resolve(ctx, *rec.DatasheetURL)
		rec.DatasheetURL = &url
	}

	return rec
}

func (s *CachedMetadataStore) resolveDocuments(ctx context.Context, docs []domain.Document) []domain.Document {
	if docs == nil {
		return nil
	}

	res := make([]domain.Document, len(docs))
	for i, d := range docs {
		d.URL = s.assets.Resolve(ctx, d.URL)
		res[i] = d
	}

	return res
}
