package usecase

import (
	"context"

	"github.com/DRSN-tech/recommendation-engine/internal/domain"
)

// VectorIndex: векторный индекс товаров.
type VectorIndex interface {
	// CreateCollection идемпотентна: существующая коллекция переиспользуется, при несовпадении размерности возвращается ошибка.
	CreateCollection(ctx context.Context, dimension uint64) error
	// Insert сохраняет точки и возвращается только после того, как они доступны для поиска.
	Insert(ctx context.Context, records []domain.IndexRecord, vectors [][]float32) error
	Search(ctx context.Context, vector []float32, limit int) ([]domain.RetrievalHit, error)
}

// MetadataStore отдаёт метаданные товаров одним пакетным запросом.
type MetadataStore interface {
	FetchBySkus(ctx context.Context, skus []string) (map[string]domain.MetadataRecord, error)
}

type ProductRepository interface {
	FetchBySkus(ctx context.Context, skus []string) (map[string]domain.MetadataRecord, error)
	// ListCatalog отдаёт страницу каталога, отсортированную по sku, начиная после afterSku.
	ListCatalog(ctx context.Context, afterSku string, limit int) ([]domain.CatalogProduct, error)
}

type MetadataCacheRepository interface {
	GetMetadata(ctx context.Context, skus []string) (map[string]domain.MetadataRecord, error)
	SetMetadata(ctx context.Context, records []domain.MetadataRecord) error
	DeleteMetadata(ctx context.Context, skus []string) error
}

type EmbeddingCacheRepository interface {
	// GetEmbedding возвращает nil без ошибки, если вектора нет в кэше.
	GetEmbedding(ctx context.Context, key string) ([]float32, error)
	SetEmbedding(ctx context.Context, key string, vector []float32) error
}

type ProductEmbeddingVersionRepository interface {
	// Upsert работает в транзакции из контекста.
	Upsert(ctx context.Context, sku string) (*domain.ProductEmbeddingVersion, error)
}

type InteractionLogRepository interface {
	// Create работает в транзакции из контекста.
	Create(ctx context.Context, log *domain.InteractionLog) error
}

type OutboxRepository interface {
	Create(ctx context.Context, event *OutboxEvent) (*OutboxEvent, error)
	GetAndMarkAsProcessing(ctx context.Context, limit int) ([]*OutboxEvent, error)
	MarkAsProcessed(ctx context.Context, id int64) error
}

// TxManager выполняет функцию в транзакции, доступной репозиториям через контекст.
type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}
