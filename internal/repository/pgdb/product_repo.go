package pgdb

import (
	"context"

	"github.com/DRSN-tech/recommendation-engine/internal/domain"
	"github.com/DRSN-tech/recommendation-engine/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/recommendation-engine/pkg/e"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
)

// ProductRepo реализует чтение каталога товаров из PostgreSQL.
type ProductRepo struct {
	pool *pgxpool.Pool
	conv converter.ProductConverter
}

func NewProductRepo(pool *pgxpool.Pool, conv converter.ProductConverter) *ProductRepo {
	return &ProductRepo{
		pool: pool,
		conv: conv,
	}
}

// FetchBySkus возвращает метаданные товаров одним запросом. Отсутствующие sku пропускаются.
func (p *ProductRepo) FetchBySkus(ctx context.Context, skus []string) (map[string]domain.MetadataRecord, error) {
	result := make(map[string]domain.MetadataRecord, len(skus))
	if len(skus) == 0 {
		return result, nil
	}

	query := `
		SELECT sku_id, specifications, images, technical_drawings, documents, datasheet_url
		FROM products
		WHERE sku_id = ANY($1)
	`

	rows, err := p.pool.Query(ctx, query, skus)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	for rows.Next() {
		var model converter.ProductMetadataModel
		if err := rows.Scan(
			&model.SkuID,
			&model.Specifications,
			&model.Images,
			&model.TechnicalDrawings,
			&model.Documents,
			&model.DatasheetURL,
		); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		rec, err := p.conv.ToMetadataEntity(&model)
		if err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		result[rec.Sku] = *rec
	}

	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return result, nil
}

// ListCatalog отдаёт страницу каталога по keyset-пагинации: sku строго больше afterSku.
func (p *ProductRepo) ListCatalog(ctx context.Context, afterSku string, limit int) ([]domain.CatalogProduct, error) {
	query := `
		SELECT sku_id, product_name, category, description, specifications
		FROM products
		WHERE sku_id > $1
		ORDER BY sku_id
		LIMIT $2
	`

	rows, err := p.pool.Query(ctx, query, afterSku, limit)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	result := make([]domain.CatalogProduct, 0, limit)
	for rows.Next() {
		var model converter.CatalogProductModel
		if err := rows.Scan(
			&model.SkuID,
			&model.ProductName,
			&model.Category,
			&model.Description,
			&model.Specifications,
		); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		product, err := p.conv.ToCatalogEntity(&model)
		if err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		result = append(result, *product)
	}

	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return result, nil
}
