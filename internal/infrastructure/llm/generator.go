package llm

import (
	"context"
	"strings"
	"time"

	"github.com/DRSN-tech/recommendation-engine/internal/metrics"
	"github.com/DRSN-tech/recommendation-engine/pkg/e"
	openai "github.com/sashabaranov/go-openai"
)

// Generator отправляет собранный промпт одним запросом chat completion.
// Повторных попыток нет: ответ модели дорогой, ошибку обрабатывает оркестратор.
type Generator struct {
	client      *openai.Client
	model       string
	temperature float32
}

func NewGenerator(client *openai.Client, model string, temperature float32) *Generator {
	return &Generator{
		client:      client,
		model:       model,
		temperature: temperature,
	}
}

func (g *Generator) Generate(ctx context.Context, prompt string) (string, error) {
	const op = "Generator.Generate"

	text, err := complete(ctx, g.client, metrics.OperationGenerate, openai.ChatCompletionRequest{
		Model:       g.model,
		Temperature: g.temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", e.Wrap(op, err)
	}

	if text == "" {
		return "", e.Wrap(op, e.ErrEmptyGeneration)
	}

	return text, nil
}

func complete(ctx context.Context, client *openai.Client, operation string, req openai.ChatCompletionRequest) (text string, err error) {
	start := time.Now()
	defer func() { observe(operation, req.Model, start, err) }()

	resp, err := client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", parseAPIError(err)
	}
	observeUsage(operation, req.Model, resp.Usage)

	if len(resp.Choices) == 0 {
		return "", nil
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
