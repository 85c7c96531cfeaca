package converter

import (
	"time"

	"github.com/google/uuid"
)

// ProductMetadataModel: колонки products, нужные для обогащения попаданий. JSONB читается сырыми байтами.
type ProductMetadataModel struct {
	SkuID             string  `db:"sku_id"`
	Specifications    []byte  `db:"specifications"`
	Images            []byte  `db:"images"`
	TechnicalDrawings []byte  `db:"technical_drawings"`
	Documents         []byte  `db:"documents"`
	DatasheetURL      *string `db:"datasheet_url"`
}

// CatalogProductModel: колонки products, из которых строится текст для эмбеддинга.
type CatalogProductModel struct {
	SkuID          string  `db:"sku_id"`
	ProductName    string  `db:"product_name"`
	Category       *string `db:"category"`
	Description    *string `db:"description"`
	Specifications []byte  `db:"specifications"`
}

// ProductEmbeddingVersionModel представляет запись таблицы product_embedding_version в PostgreSQL.
type ProductEmbeddingVersionModel struct {
	ID               int64      `db:"id"`
	SkuID            string     `db:"sku_id"`
	EmbeddingVersion int32      `db:"embedding_version"`
	CreatedAt        time.Time  `db:"created_at"`
	UpdatedAt        *time.Time `db:"updated_at"`
}

// InteractionLogModel представляет запись таблицы interaction_logs в PostgreSQL.
type InteractionLogModel struct {
	ID               int64     `db:"log_id"`
	QueryID          uuid.UUID `db:"query_id"`
	Query            string    `db:"query"`
	DetectedLanguage string    `db:"detected_language"`
	RecommendedSku   *string   `db:"recommended_sku"`
	ConfidenceScore  float64   `db:"confidence_score"`
	Outcome          string    `db:"outcome"`
	HitCount         int32     `db:"hit_count"`
	ResponseTimeMs   int64     `db:"response_time_ms"`
	Timestamp        time.Time `db:"timestamp"`
}

// OutboxEventModel представляет запись таблицы outbox_events в PostgreSQL.
type OutboxEventModel struct {
	ID          int64      `db:"id"`
	EventID     uuid.UUID  `db:"event_id"`
	EventType   string     `db:"event_type"`
	AggregateID string     `db:"aggregate_id"`
	Payload     []byte     `db:"payload"`
	Status      string     `db:"status"`
	CreatedAt   time.Time  `db:"created_at"`
	ProcessedAt *time.Time `db:"processed_at"`
}
