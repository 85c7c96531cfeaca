package converter

type DocumentRedisModel struct {
	Title string `json:"title"`
	URL   string `json:"url"`
	Type  string `json:"type"`
}

// MetadataRedisModel: метаданные товара в кэше.
type MetadataRedisModel struct {
	Sku               string               `json:"sku"`
	Specifications    map[string]any       `json:"specifications,omitempty"`
	Images            []string             `json:"images,omitempty"`
	TechnicalDrawings []DocumentRedisModel `json:"technical_drawings,omitempty"`
	Documents         []DocumentRedisModel `json:"documents,omitempty"`
	DatasheetURL      *string              `json:"datasheet_url,omitempty"`
}
