package http

import (
	"strings"

	"github.com/DRSN-tech/recommendation-engine/internal/domain"
	"github.com/DRSN-tech/recommendation-engine/pkg/e"
)

type RecommendRequest struct {
	Query string `json:"query" example:"I need a sensor to measure water level in a tank"`
	TopK  *int   `json:"top_k,omitempty" example:"5"`
}

// ProductSource: краткое описание источника рекомендации.
type ProductSource struct {
	Name     string  `json:"name"`
	Sku      string  `json:"sku"`
	Category string  `json:"category,omitempty"`
	Score    float32 `json:"score"`
}

type RecommendResponse struct {
	Answer           string                `json:"answer"`
	Confidence       float64               `json:"confidence"`
	DetectedLanguage string                `json:"detected_language"`
	Outcome          string                `json:"outcome"`
	Sources          []ProductSource       `json:"sources"`
	SourceDocuments  []domain.RetrievalHit `json:"source_documents"`
}

type ChatRequest struct {
	Message string `json:"message" example:"What flow meter fits a 50mm pipe?"`
}

type ChatResponse struct {
	Response string                `json:"response"`
	Sources  []domain.RetrievalHit `json:"sources"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

// validateQuery возвращает запрос без пробелов по краям.
func validateQuery(q string) (string, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return "", e.ErrEmptyQuery
	}

	return q, nil
}

// resolveTopK подставляет значение по умолчанию, если top_k не передан.
func resolveTopK(topK *int, def, max int) (int, error) {
	if topK == nil {
		return def, nil
	}

	if *topK < 1 || *topK > max {
		return 0, e.ErrInvalidTopK
	}

	return *topK, nil
}

func toRecommendResponse(resp domain.RecommendationResponse) RecommendResponse {
	docs := resp.SourceDocuments
	if docs == nil {
		docs = []domain.RetrievalHit{}
	}

	sources := make([]ProductSource, len(docs))
	for i, d := range docs {
		sources[i] = ProductSource{
			Name:     d.Name,
			Sku:      d.Sku,
			Category: d.Category,
			Score:    d.Score,
		}
	}

	return RecommendResponse{
		Answer:           resp.Answer,
		Confidence:       resp.Confidence,
		DetectedLanguage: resp.DetectedLanguage.String(),
		Outcome:          string(resp.Outcome),
		Sources:          sources,
		SourceDocuments:  docs,
	}
}
