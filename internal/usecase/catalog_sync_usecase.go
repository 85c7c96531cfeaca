package usecase

import (
	"context"

	"github.com/DRSN-tech/recommendation-engine/internal/domain"
	"github.com/DRSN-tech/recommendation-engine/pkg/e"
	"github.com/DRSN-tech/recommendation-engine/pkg/logger"
)

const DefaultSyncBatchSize = 100

// CatalogSyncUseCase переносит каталог из PostgreSQL в векторный индекс.
type CatalogSyncUseCase struct {
	productRepo ProductRepository
	versionRepo ProductEmbeddingVersionRepository
	cacheRepo   MetadataCacheRepository
	index       VectorIndex
	embedder    Embedder
	txManager   TxManager
	logger      logger.Logger
}

func NewCatalogSyncUC(
	productRepo ProductRepository,
	versionRepo ProductEmbeddingVersionRepository,
	cacheRepo MetadataCacheRepository,
	index VectorIndex,
	embedder Embedder,
	txManager TxManager,
	logger logger.Logger,
) *CatalogSyncUseCase {
	return &CatalogSyncUseCase{
		productRepo: productRepo,
		versionRepo: versionRepo,
		cacheRepo:   cacheRepo,
		index:       index,
		embedder:    embedder,
		txManager:   txManager,
		logger:      logger,
	}
}

// EnsureIndex создаёт коллекцию под размерность эмбеддера или проверяет существующую.
func (s *CatalogSyncUseCase) EnsureIndex(ctx context.Context) error {
	const op = "CatalogSyncUseCase.EnsureIndex"

	if err := s.index.CreateCollection(ctx, uint64(s.embedder.Dimension())); err != nil {
		return e.Wrap(op, err)
	}

	return nil
}

// SyncCatalog постранично индексирует весь каталог. Упавший батч пропускается, синхронизация продолжается.
func (s *CatalogSyncUseCase) SyncCatalog(ctx context.Context, batchSize int) (*SyncCatalogRes, error) {
	const op = "CatalogSyncUseCase.SyncCatalog"

	if batchSize <= 0 {
		batchSize = DefaultSyncBatchSize
	}

	if err := s.EnsureIndex(ctx); err != nil {
		return nil, e.Wrap(op, err)
	}

	res := &SyncCatalogRes{}
	after := ""
	for {
		if err := ctx.Err(); err != nil {
			return res, e.Wrap(op, err)
		}

		page, err := s.productRepo.ListCatalog(ctx, after, batchSize)
		if err != nil {
			return res, e.Wrap(op, err)
		}

		if len(page) == 0 {
			break
		}
		after = page[len(page)-1].Sku

		if err := s.indexBatch(ctx, page); err != nil {
			res.FailedBatches++
			s.logger.Errorf(err, "%s: batch after sku %q failed, skipping %d products", op, page[0].Sku, len(page))
		} else {
			res.Indexed += len(page)
			s.logger.Infof("%s: indexed %d products (total %d)", op, len(page), res.Indexed)
		}

		if len(page) < batchSize {
			break
		}
	}

	return res, nil
}

// indexBatch считает векторы, сохраняет их в индекс и увеличивает версии эмбеддингов в одной транзакции.
func (s *CatalogSyncUseCase) indexBatch(ctx context.Context, products []domain.CatalogProduct) error {
	const op = "CatalogSyncUseCase.indexBatch"

	texts := make([]string, 0, len(products))
	records := make([]domain.IndexRecord, 0, len(products))
	skus := make([]string, 0, len(products))
	for i := range products {
		texts = append(texts, products[i].EmbeddingText())
		records = append(records, products[i].IndexRecord())
		skus = append(skus, products[i].Sku)
	}

	vectors, err := s.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return e.Wrap(op, err)
	}

	if len(vectors) != len(records) {
		return e.Wrap(op, e.ErrRecordsVectorsMismatch)
	}

	if err := s.index.Insert(ctx, records, vectors); err != nil {
		return e.Wrap(op, err)
	}

	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		for _, sku := range skus {
			if _, err := s.versionRepo.Upsert(ctx, sku); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return e.Wrap(op, err)
	}

	// Удаление из кэша старых метаданных товаров
	if err := s.cacheRepo.DeleteMetadata(ctx, skus); err != nil {
		s.logger.Warnf("%s: failed to invalidate metadata cache: %v", op, err)
	}

	return nil
}
