package domain

import (
	"time"

	"github.com/google/uuid"
)

// InteractionLog: запись об обработанном запросе для аналитики.
type InteractionLog struct {
	QueryID          uuid.UUID `json:"query_id"`
	Query            string    `json:"query"`
	DetectedLanguage Language  `json:"detected_language"`
	RecommendedSku   *string   `json:"recommended_sku"`
	Confidence       float64   `json:"confidence"`
	Outcome          Outcome   `json:"outcome"`
	HitCount         int       `json:"hit_count"`
	ResponseTimeMs   int64     `json:"response_time_ms"`
	CreatedAt        time.Time `json:"created_at"`
}

// NewInteractionLog строит запись по ответу пайплайна. Рекомендованным считается первый источник.
func NewInteractionLog(query string, resp RecommendationResponse, elapsed time.Duration) *InteractionLog {
	var sku *string
	if len(resp.SourceDocuments) > 0 {
		s := resp.SourceDocuments[0].Sku
		sku = &s
	}

	return &InteractionLog{
		QueryID:          uuid.New(),
		Query:            query,
		DetectedLanguage: resp.DetectedLanguage,
		RecommendedSku:   sku,
		Confidence:       resp.Confidence,
		Outcome:          resp.Outcome,
		HitCount:         len(resp.SourceDocuments),
		ResponseTimeMs:   elapsed.Milliseconds(),
		CreatedAt:        time.Now().UTC(),
	}
}
