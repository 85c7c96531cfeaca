// Package llm: клиенты OpenAI-совместимого сервиса (Ollama, vLLM, OpenAI):
// эмбеддинги, генерация ответа и перевод.
package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/DRSN-tech/recommendation-engine/internal/cfg"
	"github.com/DRSN-tech/recommendation-engine/internal/metrics"
	"github.com/DRSN-tech/recommendation-engine/pkg/e"
	openai "github.com/sashabaranov/go-openai"
)

func NewClient(cfg *cfg.LLMCfg) *openai.Client {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	clientCfg.BaseURL = cfg.BaseURL

	return openai.NewClientWithConfig(clientCfg)
}

func observe(operation, model string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}

	metrics.LLMRequestsTotal.WithLabelValues(operation, model, status).Inc()
	metrics.LLMRequestDuration.WithLabelValues(operation, model).Observe(time.Since(start).Seconds())
}

func observeUsage(operation, model string, usage openai.Usage) {
	if usage.PromptTokens > 0 {
		metrics.LLMTokensTotal.WithLabelValues(operation, model, "prompt").Add(float64(usage.PromptTokens))
	}
	if usage.CompletionTokens > 0 {
		metrics.LLMTokensTotal.WithLabelValues(operation, model, "completion").Add(float64(usage.CompletionTokens))
	}
}

// parseAPIError достаёт читаемое описание из ответа сервиса и оборачивает его в e.ErrLLMProvider.
func parseAPIError(err error) error {
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		if detail := extractDetail(reqErr.Body); detail != "" {
			return fmt.Errorf("llm api error %d: %s: %w", reqErr.HTTPStatusCode, detail, e.ErrLLMProvider)
		}
		return fmt.Errorf("llm api error %d: %s: %w", reqErr.HTTPStatusCode, string(reqErr.Body), e.ErrLLMProvider)
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("llm api error %d: %s: %w", apiErr.HTTPStatusCode, apiErr.Message, e.ErrLLMProvider)
	}

	return fmt.Errorf("llm request failed: %v: %w", err, e.ErrLLMProvider)
}

// extractDetail вытаскивает поле "detail" или "error" из тела ошибки.
func extractDetail(body []byte) string {
	var parsed struct {
		Detail string `json:"detail"`
		Error  string `json:"error"`
	}
	if json.Unmarshal(body, &parsed) != nil {
		return ""
	}
	if parsed.Detail != "" {
		return parsed.Detail
	}

	return parsed.Error
}
