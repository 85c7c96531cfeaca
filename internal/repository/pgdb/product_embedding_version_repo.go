package pgdb

import (
	"context"

	"github.com/DRSN-tech/recommendation-engine/internal/domain"
	"github.com/DRSN-tech/recommendation-engine/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/recommendation-engine/pkg/e"
	"github.com/DRSN-tech/recommendation-engine/pkg/tr"
	"github.com/jimlawless/whereami"
)

type ProductEmbeddingVersionRepo struct {
	conv converter.ProductEmbeddingVersionConverter
}

func NewProductEmbeddingVersionRepo(conv converter.ProductEmbeddingVersionConverter) *ProductEmbeddingVersionRepo {
	return &ProductEmbeddingVersionRepo{
		conv: conv,
	}
}

// Upsert создаёт версию 1 или увеличивает версию эмбеддинга товара. Работает только в транзакции.
func (p *ProductEmbeddingVersionRepo) Upsert(ctx context.Context, sku string) (*domain.ProductEmbeddingVersion, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	var model converter.ProductEmbeddingVersionModel
	query := `
	INSERT INTO product_embedding_version (sku_id)
    VALUES ($1)
    ON CONFLICT (sku_id)
    DO UPDATE SET embedding_version = product_embedding_version.embedding_version + 1,
                  updated_at = NOW()
    RETURNING id, sku_id, embedding_version, created_at, updated_at;
	`

	err = tx.QueryRow(ctx, query, sku).Scan(
		&model.ID,
		&model.SkuID,
		&model.EmbeddingVersion,
		&model.CreatedAt,
		&model.UpdatedAt,
	)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return p.conv.ToEntity(&model), nil
}
