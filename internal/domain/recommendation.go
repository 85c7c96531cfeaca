package domain

// Outcome: итог обработки запроса рекомендации.
type Outcome string

const (
	OutcomeSuccess         Outcome = "success"
	OutcomeNoMatch         Outcome = "no_match"
	OutcomeRetrievalError  Outcome = "retrieval_error"
	OutcomeGenerationError Outcome = "generation_error"
)

// RecommendationResponse: ответ пайплайна. Ошибки стадий в него не пробрасываются.
type RecommendationResponse struct {
	Answer           string
	SourceDocuments  []RetrievalHit
	DetectedLanguage Language
	Confidence       float64
	Outcome          Outcome
}
