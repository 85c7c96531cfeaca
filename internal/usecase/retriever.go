package usecase

import (
	"context"
	"slices"

	"github.com/DRSN-tech/recommendation-engine/internal/domain"
	"github.com/DRSN-tech/recommendation-engine/pkg/e"
	"github.com/DRSN-tech/recommendation-engine/pkg/logger"
)

// Retriever ищет товары по смыслу запроса и обогащает их метаданными.
type Retriever struct {
	embedder Embedder
	index    VectorIndex
	metadata MetadataStore
	logger   logger.Logger
}

func NewRetriever(embedder Embedder, index VectorIndex, metadata MetadataStore, logger logger.Logger) *Retriever {
	return &Retriever{
		embedder: embedder,
		index:    index,
		metadata: metadata,
		logger:   logger,
	}
}

// EnsureIndex создаёт коллекцию под размерность эмбеддера, если её ещё нет.
func (r *Retriever) EnsureIndex(ctx context.Context) error {
	const op = "Retriever.EnsureIndex"

	if err := r.index.CreateCollection(ctx, uint64(r.embedder.Dimension())); err != nil {
		return e.Wrap(op, err)
	}

	return nil
}

// Search возвращает не больше limit попаданий по убыванию score.
// Ошибка метаданных не считается ошибкой поиска: попадания возвращаются без обогащения.
func (r *Retriever) Search(ctx context.Context, query string, limit int) ([]domain.RetrievalHit, error) {
	const op = "Retriever.Search"

	vector, err := r.embedder.Embed(ctx, query)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	if len(vector) == 0 {
		return []domain.RetrievalHit{}, nil
	}

	hits, err := r.index.Search(ctx, vector, limit)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	if len(hits) == 0 {
		return []domain.RetrievalHit{}, nil
	}

	slices.SortStableFunc(hits, func(a, b domain.RetrievalHit) int {
		switch {
		case a.Score > b.Score:
			return -1
		case a.Score < b.Score:
			return 1
		default:
			return 0
		}
	})
	if limit > 0 && len(hits) > limit {
		hits = hits[:limit]
	}

	r.enrich(ctx, hits)

	return hits, nil
}

// enrich делает один пакетный запрос метаданных на все sku.
func (r *Retriever) enrich(ctx context.Context, hits []domain.RetrievalHit) {
	const op = "Retriever.enrich"

	records, err := r.metadata.FetchBySkus(ctx, uniqueSkus(hits))
	if err != nil {
		r.logger.Warnf("%s: metadata enrichment failed, returning unenriched hits: %v", op, err)
		records = nil
	}

	for i := range hits {
		if rec, ok := records[hits[i].Sku]; ok {
			hits[i].ApplyMetadata(&rec)
			continue
		}
		hits[i].ApplyMetadata(nil)
	}
}

func uniqueSkus(hits []domain.RetrievalHit) []string {
	seen := make(map[string]struct{}, len(hits))
	skus := make([]string, 0, len(hits))
	for _, hit := range hits {
		if _, ok := seen[hit.Sku]; ok {
			continue
		}
		seen[hit.Sku] = struct{}{}
		skus = append(skus, hit.Sku)
	}

	return skus
}
