package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DRSN-tech/recommendation-engine/internal/domain"
	"github.com/DRSN-tech/recommendation-engine/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCachedMetadataStore_OneQueryForAllMisses(t *testing.T) {
	ds := "s3://datasheets/b.pdf"
	repo := &mockProductRepo{records: map[string]domain.MetadataRecord{
		"B": {
			Sku:          "B",
			Images:       []string{"s3://images/b.png", "https://cdn/b2.png"},
			Documents:    []domain.Document{{Title: "Manual", URL: "s3://docs/b.pdf", Type: "pdf"}},
			DatasheetURL: &ds,
		},
		"C": {Sku: "C"},
	}}
	cache := &mockMetadataCache{
		records: map[string]domain.MetadataRecord{"A": {Sku: "A", Images: []string{"cached.png"}}},
		setCh:   make(chan []domain.MetadataRecord, 1),
	}
	s := NewCachedMetadataStore(repo, cache, mockAssetLinker{}, logger.NewNopLogger())

	res, err := s.FetchBySkus(context.Background(), []string{"A", "B", "C", "D"})
	require.NoError(t, err)

	require.Len(t, repo.fetchCalls, 1)
	assert.Equal(t, []string{"B", "C", "D"}, repo.fetchCalls[0])

	assert.Len(t, res, 3)
	assert.Equal(t, []string{"cached.png"}, res["A"].Images)
	assert.Equal(t, []string{"https://assets.local/images/b.png", "https://cdn/b2.png"}, res["B"].Images)
	assert.Equal(t, "https://assets.local/docs/b.pdf", res["B"].Documents[0].URL)
	require.NotNil(t, res["B"].DatasheetURL)
	assert.Equal(t, "https://assets.local/datasheets/b.pdf", *res["B"].DatasheetURL)

	select {
	case cached := <-cache.setCh:
		assert.Len(t, cached, 2)
	case <-time.After(time.Second):
		t.Fatal("metadata was not cached in background")
	}
}

func TestCachedMetadataStore_AllCachedSkipsDatabase(t *testing.T) {
	repo := &mockProductRepo{}
	cache := &mockMetadataCache{records: map[string]domain.MetadataRecord{"A": {Sku: "A"}}}
	s := NewCachedMetadataStore(repo, cache, mockAssetLinker{}, logger.NewNopLogger())

	res, err := s.FetchBySkus(context.Background(), []string{"A"})
	require.NoError(t, err)
	assert.Contains(t, res, "A")
	assert.Empty(t, repo.fetchCalls)
}

func TestCachedMetadataStore_CacheFailureFallsBackToDatabase(t *testing.T) {
	repo := &mockProductRepo{records: map[string]domain.MetadataRecord{"A": {Sku: "A"}}}
	cache := &mockMetadataCache{getErr: errors.New("redis down"), setCh: make(chan []domain.MetadataRecord, 1)}
	s := NewCachedMetadataStore(repo, cache, mockAssetLinker{}, logger.NewNopLogger())

	res, err := s.FetchBySkus(context.Background(), []string{"A"})
	require.NoError(t, err)
	assert.Contains(t, res, "A")
	require.Len(t, repo.fetchCalls, 1)
	<-cache.setCh
}

func TestCachedMetadataStore_DatabaseFailure(t *testing.T) {
	repo := &mockProductRepo{err: errors.New("postgres down")}
	s := NewCachedMetadataStore(repo, &mockMetadataCache{}, mockAssetLinker{}, logger.NewNopLogger())

	_, err := s.FetchBySkus(context.Background(), []string{"A"})
	assert.Error(t, err)
}

func TestCachedMetadataStore_EmptyInput(t *testing.T) {
	repo := &mockProductRepo{}
	s := NewCachedMetadataStore(repo, &mockMetadataCache{}, nil, logger.NewNopLogger())

	res, err := s.FetchBySkus(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, res)
	assert.Empty(t, repo.fetchCalls)
}
