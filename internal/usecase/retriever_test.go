package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/DRSN-tech/recommendation-engine/internal/domain"
	"github.com/DRSN-tech/recommendation-engine/pkg/e"
	"github.com/DRSN-tech/recommendation-engine/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetriever_Search_SortsTruncatesAndEnriches(t *testing.T) {
	datasheet := "https://example.com/ds.pdf"
	index := &mockIndex{hits: []domain.RetrievalHit{
		hit("B", "Barrier", "Safety", 0.65),
		hit("A", "Curtain", "Safety", 0.82),
		hit("C", "Scanner", "Safety", 0.65),
		hit("D", "Mat", "Safety", 0.10),
	}}
	meta := &mockMetadataStore{records: map[string]domain.MetadataRecord{
		"A": {Sku: "A", Specifications: map[string]any{"range": "2m"}, DatasheetURL: &datasheet},
	}}
	r := NewRetriever(&mockEmbedder{vector: []float32{1, 0}}, index, meta, logger.NewNopLogger())

	hits, err := r.Search(context.Background(), "light curtain", 3)
	require.NoError(t, err)

	require.Len(t, hits, 3)
	assert.Equal(t, []string{"A", "B", "C"}, []string{hits[0].Sku, hits[1].Sku, hits[2].Sku})
	assert.Equal(t, 3, index.lastLimit)
	assert.Equal(t, 1, meta.calls)
	assert.ElementsMatch(t, []string{"A", "B", "C"}, meta.skus)

	assert.Equal(t, "2m", hits[0].Specifications["range"])
	require.NotNil(t, hits[0].DatasheetURL)
	assert.Equal(t, datasheet, *hits[0].DatasheetURL)
	assert.Empty(t, hits[1].Specifications)
	assert.Nil(t, hits[1].DatasheetURL)
}

func TestRetriever_Search_NonIncreasingScores(t *testing.T) {
	index := &mockIndex{hits: []domain.RetrievalHit{
		hit("1", "", "", 0.1), hit("2", "", "", 0.9), hit("3", "", "", 0.5), hit("4", "", "", 0.9), hit("5", "", "", 0.3),
	}}
	r := NewRetriever(&mockEmbedder{vector: []float32{1}}, index, &mockMetadataStore{}, logger.NewNopLogger())

	for topK := 1; topK <= 6; topK++ {
		hits, err := r.Search(context.Background(), "q", topK)
		require.NoError(t, err)
		assert.LessOrEqual(t, len(hits), topK)
		for i := 1; i < len(hits); i++ {
			assert.GreaterOrEqual(t, hits[i-1].Score, hits[i].Score)
		}
	}
}

func TestRetriever_Search_Deterministic(t *testing.T) {
	index := &mockIndex{hits: []domain.RetrievalHit{
		hit("X", "", "", 0.7), hit("Y", "", "", 0.7), hit("Z", "", "", 0.9),
	}}
	r := NewRetriever(&mockEmbedder{vector: []float32{1}}, index, &mockMetadataStore{}, logger.NewNopLogger())

	first, err := r.Search(context.Background(), "q", 5)
	require.NoError(t, err)
	second, err := r.Search(context.Background(), "q", 5)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, "Z", first[0].Sku)
	assert.Equal(t, "X", first[1].Sku)
}

func TestRetriever_Search_EmptyEmbeddingSkipsIndex(t *testing.T) {
	index := &mockIndex{}
	r := NewRetriever(&mockEmbedder{vector: []float32{}}, index, &mockMetadataStore{}, logger.NewNopLogger())

	hits, err := r.Search(context.Background(), "", 5)
	require.NoError(t, err)
	assert.Empty(t, hits)
	assert.Equal(t, 0, index.searchCalls)
}

func TestRetriever_Search_ZeroHitsSkipsMetadata(t *testing.T) {
	meta := &mockMetadataStore{}
	r := NewRetriever(&mockEmbedder{vector: []float32{1}}, &mockIndex{}, meta, logger.NewNopLogger())

	hits, err := r.Search(context.Background(), "q", 5)
	require.NoError(t, err)
	assert.Empty(t, hits)
	assert.NotNil(t, hits)
	assert.Equal(t, 0, meta.calls)
}

func TestRetriever_Search_MetadataFailureFailsOpen(t *testing.T) {
	meta := &mockMetadataStore{err: errors.New("postgres down")}
	index := &mockIndex{hits: []domain.RetrievalHit{{Sku: "A", Name: "Curtain", Score: 0.8}}}
	r := NewRetriever(&mockEmbedder{vector: []float32{1}}, index, meta, logger.NewNopLogger())

	hits, err := r.Search(context.Background(), "q", 5)
	require.NoError(t, err)
	require.Len(t, hits, 1)

	assert.Equal(t, map[string]any{}, hits[0].Specifications)
	assert.Equal(t, []string{}, hits[0].Images)
	assert.Equal(t, []domain.Document{}, hits[0].Documents)
	assert.Equal(t, []domain.Document{}, hits[0].TechnicalDrawings)
	assert.Nil(t, hits[0].DatasheetURL)
}

func TestRetriever_Search_Errors(t *testing.T) {
	t.Run("embedding", func(t *testing.T) {
		index := &mockIndex{}
		r := NewRetriever(&mockEmbedder{err: errors.New("embedder down")}, index, &mockMetadataStore{}, logger.NewNopLogger())

		_, err := r.Search(context.Background(), "q", 5)
		assert.Error(t, err)
		assert.Equal(t, 0, index.searchCalls)
	})

	t.Run("index", func(t *testing.T) {
		meta := &mockMetadataStore{}
		r := NewRetriever(&mockEmbedder{vector: []float32{1}}, &mockIndex{err: errors.New("qdrant down")}, meta, logger.NewNopLogger())

		_, err := r.Search(context.Background(), "q", 5)
		assert.Error(t, err)
		assert.Equal(t, 0, meta.calls)
	})
}

func TestRetriever_Search_DeduplicatesSkus(t *testing.T) {
	meta := &mockMetadataStore{}
	index := &mockIndex{hits: []domain.RetrievalHit{hit("A", "", "", 0.9), hit("A", "", "", 0.8), hit("B", "", "", 0.7)}}
	r := NewRetriever(&mockEmbedder{vector: []float32{1}}, index, meta, logger.NewNopLogger())

	_, err := r.Search(context.Background(), "q", 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, meta.skus)
}

func TestRetriever_EnsureIndex_FreshCollectionGivesNoMatch(t *testing.T) {
	index := &mockIndex{}
	meta := &mockMetadataStore{}
	r := NewRetriever(&mockEmbedder{vector: []float32{1, 0}, dim: 384}, index, meta, logger.NewNopLogger())

	require.NoError(t, r.EnsureIndex(context.Background()))
	assert.Equal(t, uint64(384), index.createdDim)

	hits, err := r.Search(context.Background(), "light curtain", 5)
	require.NoError(t, err)
	assert.Empty(t, hits)
	assert.Equal(t, 0, meta.calls)
}

func TestRetriever_EnsureIndex_DimensionMismatch(t *testing.T) {
	index := &mockIndex{createErr: e.ErrDimensionMismatch}
	r := NewRetriever(&mockEmbedder{dim: 768}, index, &mockMetadataStore{}, logger.NewNopLogger())

	err := r.EnsureIndex(context.Background())
	assert.ErrorIs(t, err, e.ErrDimensionMismatch)
}
