package domain

import "time"

// ProductEmbeddingVersion: счётчик переиндексаций товара.
type ProductEmbeddingVersion struct {
	ID               int64
	Sku              string
	EmbeddingVersion int32
	CreatedAt        time.Time
	UpdatedAt        *time.Time
}
