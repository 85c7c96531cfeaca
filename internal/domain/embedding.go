package domain

// IndexRecord: полезная нагрузка одной точки векторного индекса.
type IndexRecord struct {
	ProductID string
	Sku       string
	Name      string
	Category  string
}

// Payload описывает дополнительную информацию вектора
func (r IndexRecord) Payload() map[string]any {
	return map[string]any{
		"product_id": r.ProductID,
		"sku":        r.Sku,
		"name":       r.Name,
		"category":   r.Category,
	}
}
