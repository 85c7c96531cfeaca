package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/DRSN-tech/recommendation-engine/internal/domain"
	"github.com/DRSN-tech/recommendation-engine/pkg/e"
	"github.com/DRSN-tech/recommendation-engine/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func catalog(n int) []domain.CatalogProduct {
	res := make([]domain.CatalogProduct, 0, n)
	for i := 0; i < n; i++ {
		res = append(res, *domain.NewCatalogProduct(fmt.Sprintf("SKU-%03d", i), fmt.Sprintf("Product %d", i), "Sensors", "", nil))
	}
	return res
}

type syncFixture struct {
	repo     *mockProductRepo
	versions *mockVersionRepo
	cache    *mockMetadataCache
	index    *mockIndex
	embedder *mockEmbedder
	tx       *mockTxManager
	uc       *CatalogSyncUseCase
}

func newSyncFixture(products []domain.CatalogProduct) *syncFixture {
	f := &syncFixture{
		repo:     &mockProductRepo{catalog: products},
		versions: &mockVersionRepo{},
		cache:    &mockMetadataCache{},
		index:    &mockIndex{},
		embedder: &mockEmbedder{dim: 384},
		tx:       &mockTxManager{},
	}
	f.uc = NewCatalogSyncUC(f.repo, f.versions, f.cache, f.index, f.embedder, f.tx, logger.NewNopLogger())
	return f
}

func TestSyncCatalog_PagesThroughCatalog(t *testing.T) {
	f := newSyncFixture(catalog(5))

	res, err := f.uc.SyncCatalog(context.Background(), 2)
	require.NoError(t, err)

	assert.Equal(t, 5, res.Indexed)
	assert.Equal(t, 0, res.FailedBatches)
	assert.Equal(t, uint64(384), f.index.createdDim)
	assert.Len(t, f.index.inserted, 5)
	assert.Equal(t, 3, f.embedder.batchCalls)
	assert.Equal(t, 3, f.tx.committed)
	assert.True(t, f.versions.inTx)
	assert.Len(t, f.versions.skus, 5)
	assert.Len(t, f.cache.deleted, 5)
	assert.Equal(t, "Product: Product 0\nCategory: Sensors\nDescription: \nSpecs: {}", f.embedder.texts[0])
}

func TestSyncCatalog_ExactMultipleOfBatch(t *testing.T) {
	f := newSyncFixture(catalog(4))

	res, err := f.uc.SyncCatalog(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, 4, res.Indexed)
}

func TestSyncCatalog_MismatchedVectorsSkipBatch(t *testing.T) {
	f := newSyncFixture(catalog(3))
	f.embedder.batch = [][]float32{{1, 2}}

	res, err := f.uc.SyncCatalog(context.Background(), 10)
	require.NoError(t, err)

	assert.Equal(t, 0, res.Indexed)
	assert.Equal(t, 1, res.FailedBatches)
	assert.Empty(t, f.index.inserted)
	assert.Equal(t, 0, f.tx.calls)
}

func TestSyncCatalog_VersionFailureRollsBack(t *testing.T) {
	f := newSyncFixture(catalog(2))
	f.versions.err = errors.New("constraint violation")

	res, err := f.uc.SyncCatalog(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, 1, res.FailedBatches)
	assert.Equal(t, 1, f.tx.rolledBack)
	assert.Empty(t, f.cache.deleted)
}

func TestSyncCatalog_IndexNotReady(t *testing.T) {
	f := newSyncFixture(catalog(2))
	f.index.createErr = e.ErrDimensionMismatch

	_, err := f.uc.SyncCatalog(context.Background(), 10)
	assert.ErrorIs(t, err, e.ErrDimensionMismatch)
	assert.Equal(t, 0, f.embedder.batchCalls)
}

func TestSyncCatalog_ListFailureStops(t *testing.T) {
	f := newSyncFixture(nil)
	f.repo.listErr = errors.New("postgres down")

	_, err := f.uc.SyncCatalog(context.Background(), 10)
	assert.Error(t, err)
}

func TestSyncCatalog_DefaultBatchSize(t *testing.T) {
	f := newSyncFixture(catalog(3))

	res, err := f.uc.SyncCatalog(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, 3, res.Indexed)
	assert.Equal(t, 1, f.embedder.batchCalls)
}
