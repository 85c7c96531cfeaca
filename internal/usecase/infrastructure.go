package usecase

import (
	"context"

	"github.com/DRSN-tech/recommendation-engine/internal/domain"
)

type Embedder interface {
	// Embed возвращает пустой вектор для пустого текста.
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
	Dimension() int
}

// LanguageDetector возвращает ISO 639-1 код языка текста.
type LanguageDetector interface {
	Detect(ctx context.Context, text string) (string, error)
}

type Translator interface {
	Translate(ctx context.Context, text string, from, to domain.Language) (string, error)
}

type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// AssetLinker превращает ссылку на объект хранилища в URL для клиента.
type AssetLinker interface {
	Resolve(ctx context.Context, raw string) string
}

type MessageProducer interface {
	WriteRawMessage(ctx context.Context, req *WriteRawMessageReq) error
}
