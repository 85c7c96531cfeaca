package domain

// Document описывает прикреплённый к товару файл (чертёж, сертификат, инструкция).
type Document struct {
	Title string `json:"title"`
	URL   string `json:"url"`
	Type  string `json:"type"`
}

// MetadataRecord: реляционные метаданные товара, ключ sku.
type MetadataRecord struct {
	Sku               string
	Specifications    map[string]any
	Images            []string
	TechnicalDrawings []Document
	Documents         []Document
	DatasheetURL      *string
}

// RetrievalHit: один найденный товар вместе с обогащёнными метаданными.
type RetrievalHit struct {
	ProductID string  `json:"product_id"`
	Sku       string  `json:"sku"`
	Name      string  `json:"name"`
	Category  string  `json:"category"`
	Score     float32 `json:"score"`

	Specifications    map[string]any `json:"specifications"`
	Images            []string       `json:"images"`
	TechnicalDrawings []Document     `json:"technical_drawings"`
	Documents         []Document     `json:"documents"`
	DatasheetURL      *string        `json:"datasheet_url"`
}

func NewRetrievalHit(productID, sku, name, category string, score float32) RetrievalHit {
	hit := RetrievalHit{
		ProductID: productID,
		Sku:       sku,
		Name:      name,
		Category:  category,
		Score:     score,
	}
	hit.ensureContainers()

	return hit
}

// ApplyMetadata дополняет попадание метаданными. Поля поиска (product_id, sku, name, category, score) не меняются.
// nil означает, что метаданных нет: контейнеры остаются пустыми, datasheet_url равен null.
func (h *RetrievalHit) ApplyMetadata(m *MetadataRecord) {
	if m != nil {
		h.Specifications = m.Specifications
		h.Images = m.Images
		h.TechnicalDrawings = m.TechnicalDrawings
		h.Documents = m.Documents
		h.DatasheetURL = m.DatasheetURL
	}

	h.ensureContainers()
}

func (h *RetrievalHit) ensureContainers() {
	if h.Specifications == nil {
		h.Specifications = map[string]any{}
	}
	if h.Images == nil {
		h.Images = []string{}
	}
	if h.TechnicalDrawings == nil {
		h.TechnicalDrawings = []Document{}
	}
	if h.Documents == nil {
		h.Documents = []Document{}
	}
}
