package app

import (
	"context"

	config "github.com/DRSN-tech/recommendation-engine/internal/cfg"
	"github.com/DRSN-tech/recommendation-engine/internal/usecase"
	"github.com/DRSN-tech/recommendation-engine/pkg/closer"
	"github.com/DRSN-tech/recommendation-engine/pkg/e"
	"github.com/DRSN-tech/recommendation-engine/pkg/logger"
	"github.com/jimlawless/whereami"
)

// Indexer: офлайн-синхронизация каталога PostgreSQL с векторным индексом.
type Indexer struct {
	syncUC *usecase.CatalogSyncUseCase
	closer *closer.Closer
	logger logger.Logger
}

func NewIndexer(cfg *config.Config, logger logger.Logger) (*Indexer, error) {
	cl := closer.NewCloser(0)

	d, err := initDeps(cfg, logger, cl)
	if err != nil {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = cl.Close(ctx)
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	// без кэша векторов
	syncUC := usecase.NewCatalogSyncUC(d.productRepo, d.versionRepo, d.metaCache, d.index, d.embedder, d.txManager, logger)

	return &Indexer{
		syncUC: syncUC,
		closer: cl,
		logger: logger,
	}, nil
}

// Sync создаёт коллекцию при необходимости и переиндексирует весь каталог.
func (i *Indexer) Sync(ctx context.Context, batchSize int) (*usecase.SyncCatalogRes, error) {
	if err := i.syncUC.EnsureIndex(ctx); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	res, err := i.syncUC.SyncCatalog(ctx, batchSize)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	i.logger.Infof("catalog sync finished: indexed=%d failed_batches=%d", res.Indexed, res.FailedBatches)

	return res, nil
}

func (i *Indexer) Close(ctx context.Context) error {
	return i.closer.Close(ctx)
}
