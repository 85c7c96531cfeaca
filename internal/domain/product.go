package domain

import (
	"encoding/json"
	"fmt"
)

// specsPreviewLimit ограничивает длину характеристик в тексте для эмбеддинга.
const specsPreviewLimit = 1000

// CatalogProduct: строка каталога, из которой строится вектор товара.
type CatalogProduct struct {
	Sku            string
	Name           string
	Category       string
	Description    string
	Specifications map[string]any
}

func NewCatalogProduct(sku, name, category, description string, specs map[string]any) *CatalogProduct {
	return &CatalogProduct{
		Sku:            sku,
		Name:           name,
		Category:       category,
		Description:    description,
		Specifications: specs,
	}
}

// EmbeddingText собирает текст, по которому считается вектор товара.
func (p *CatalogProduct) EmbeddingText() string {
	specs := "{}"
	if len(p.Specifications) > 0 {
		if raw, err := json.Marshal(p.Specifications); err == nil {
			specs = string(raw)
		}
	}

	if runes := []rune(specs); len(runes) > specsPreviewLimit {
		specs = string(runes[:specsPreviewLimit])
	}

	return fmt.Sprintf(
		"Product: %s\nCategory: %s\nDescription: %s\nSpecs: %s",
		p.Name, p.Category, p.Description, specs,
	)
}

// IndexRecord возвращает полезную нагрузку точки в векторном индексе.
// Идентификатор товара в каталоге совпадает с sku_id.
func (p *CatalogProduct) IndexRecord() IndexRecord {
	return IndexRecord{
		ProductID: p.Sku,
		Sku:       p.Sku,
		Name:      p.Name,
		Category:  p.Category,
	}
}
