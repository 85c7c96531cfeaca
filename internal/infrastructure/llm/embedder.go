package llm

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/DRSN-tech/recommendation-engine/internal/metrics"
	"github.com/DRSN-tech/recommendation-engine/pkg/e"
	"github.com/DRSN-tech/recommendation-engine/pkg/jitter"
	"github.com/DRSN-tech/recommendation-engine/pkg/logger"
	openai "github.com/sashabaranov/go-openai"
)

// Embedder строит векторы через /embeddings с повторными попытками.
type Embedder struct {
	client     *openai.Client
	model      string
	dimension  int
	maxRetries int
	backoff    jitter.Backoff
	logger     logger.Logger
}

func NewEmbedder(client *openai.Client, model string, dimension, maxRetries int, logger logger.Logger) *Embedder {
	if maxRetries < 1 {
		maxRetries = 1
	}

	return &Embedder{
		client:     client,
		model:      model,
		dimension:  dimension,
		maxRetries: maxRetries,
		backoff:    jitter.NewBackoff(500*time.Millisecond, 10*time.Second),
		logger:     logger,
	}
}

func (m *Embedder) Dimension() int {
	return m.dimension
}

func (m *Embedder) Embed(ctx context.Context, text string) ([]float32, error) {
	const op = "Embedder.Embed"

	if text == "" {
		return []float32{}, nil
	}

	vectors, err := m.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return vectors[0], nil
}

// EmbedBatch векторизует тексты одним запросом, сохраняя порядок входа.
func (m *Embedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	const op = "Embedder.EmbedBatch"

	if len(texts) == 0 {
		return [][]float32{}, nil
	}

	for attempt := 0; attempt < m.maxRetries; attempt++ {
		vectors, err := m.embed(ctx, texts)
		if err == nil {
			return vectors, nil
		}

		if attempt == m.maxRetries-1 {
			return nil, e.Wrap(op, fmt.Errorf("all %d attempts failed: %w", m.maxRetries, err))
		}

		sleepTime := m.backoff.Delay(attempt)
		m.logger.Warnf("embedding failed, retrying in %v (attempt %d): %v", sleepTime, attempt+1, err)
		if err := jitter.Wait(ctx, sleepTime); err != nil {
			return nil, e.Wrap(op, err)
		}
	}

	return nil, e.Wrap(op, fmt.Errorf("unreachable"))
}

func (m *Embedder) embed(ctx context.Context, texts []string) (res [][]float32, err error) {
	start := time.Now()
	defer func() { observe(metrics.OperationEmbed, m.model, start, err) }()

	resp, err := m.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input:          texts,
		Model:          openai.EmbeddingModel(m.model),
		EncodingFormat: openai.EmbeddingEncodingFormatFloat,
	})
	if err != nil {
		return nil, parseAPIError(err)
	}
	observeUsage(metrics.OperationEmbed, m.model, resp.Usage)

	if len(resp.Data) != len(texts) {
		return nil, fmt.Errorf("got %d vectors for %d texts: %w", len(resp.Data), len(texts), e.ErrEmptyEmbedding)
	}

	data := resp.Data
	sort.SliceStable(data, func(i, j int) bool { return data[i].Index < data[j].Index })

	res = make([][]float32, len(data))
	for i, d := range data {
		if m.dimension > 0 && len(d.Embedding) != m.dimension {
			return nil, fmt.Errorf("expected %d, got %d: %w", m.dimension, len(d.Embedding), e.ErrDimensionMismatch)
		}
		res[i] = d.Embedding
	}

	return res, nil
}
