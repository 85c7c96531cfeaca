package e

import "fmt"

var (
	// Внутренние ошибки с транзакциями
	ErrTransactionNotFound = fmt.Errorf("transaction not found")

	// Внутренние ошибки с векторами
	ErrEmptyVectors           = fmt.Errorf("empty vectors")
	ErrRecordsVectorsMismatch = fmt.Errorf("records and vectors count mismatch")
	ErrDimensionMismatch      = fmt.Errorf("vector dimension mismatch")
	ErrCollectionNotReady     = fmt.Errorf("vector collection is not initialized")

	// Ошибки внешних сервисов
	ErrEmptyGeneration    = fmt.Errorf("language model returned empty completion")
	ErrEmptyTranslation   = fmt.Errorf("translation service returned empty text")
	ErrLanguageUndetected = fmt.Errorf("language could not be detected")
	ErrEmptyEmbedding     = fmt.Errorf("embedding service returned no vectors")
	ErrLLMProvider        = fmt.Errorf("language model provider error")

	// Конфигурация
	ErrIncorrectEnvVariable = fmt.Errorf("incorrect environment variable")
	ErrMissingEnvVariable   = fmt.Errorf("required environment variable is missing")

	// 400 Bad Request
	ErrStatusBadRequest = fmt.Errorf("bad request")
	ErrEmptyQuery       = fmt.Errorf("query cannot be empty")
	ErrInvalidTopK      = fmt.Errorf("top_k is out of range")
	ErrInvalidJSON      = fmt.Errorf("invalid json body")

	// 500 Internal Server Error
	ErrInternalServerError = fmt.Errorf("internal server error")
)

// Wrap оборачивает ошибку
func Wrap(msg string, err error) error {
	return fmt.Errorf("%s: %w", msg, err)
}
