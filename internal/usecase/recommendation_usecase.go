package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/DRSN-tech/recommendation-engine/internal/domain"
	"github.com/DRSN-tech/recommendation-engine/internal/metrics"
	"github.com/DRSN-tech/recommendation-engine/pkg/e"
	"github.com/DRSN-tech/recommendation-engine/pkg/logger"
)

const (
	recordInteractionTimeout = 3 * time.Second
	chatSourcesLimit         = 3
)

type RecommendationUC interface {
	Recommend(ctx context.Context, query string, topK int) domain.RecommendationResponse
}

// ProductRetriever: стадия поиска пайплайна.
type ProductRetriever interface {
	Search(ctx context.Context, query string, limit int) ([]domain.RetrievalHit, error)
}

// InteractionWriter сохраняет запись о запросе.
type InteractionWriter interface {
	RecordInteraction(ctx context.Context, log *domain.InteractionLog) error
}

// Статические ответы без вызова переводчика.
var localizedMessages = map[domain.Outcome]map[domain.Language]string{
	domain.OutcomeNoMatch: {
		domain.LanguageEN: "I could not find any matching products in the database.",
		domain.LanguageAR: "لم أتمكن من العثور على أي منتجات مطابقة في قاعدة البيانات.",
	},
	domain.OutcomeRetrievalError: {
		domain.LanguageEN: "I encountered an error searching for products.",
		domain.LanguageAR: "واجهت خطأً أثناء البحث عن المنتجات.",
	},
	domain.OutcomeGenerationError: {
		domain.LanguageEN: "I found some products but failed to generate a recommendation description.",
		domain.LanguageAR: "وجدت بعض المنتجات ولكن تعذر إنشاء وصف التوصية.",
	},
}

// LocalizedMessage возвращает статический ответ для исхода на языке пользователя.
func LocalizedMessage(outcome domain.Outcome, lang domain.Language) string {
	msgs := localizedMessages[outcome]
	if msg, ok := msgs[lang]; ok {
		return msg
	}

	return msgs[domain.WorkingLanguage]
}

// RecommendationUseCase проводит запрос через пайплайн:
// определение языка, перевод, поиск, оценка, генерация, обратный перевод.
type RecommendationUseCase struct {
	router    *LanguageRouter
	retriever ProductRetriever
	scorer    *ConfidenceScorer
	assembler *PromptAssembler
	generator Generator
	recorder  InteractionWriter // если nil, запросы не логируются
	logger    logger.Logger
}

func NewRecommendationUC(
	router *LanguageRouter,
	retriever ProductRetriever,
	scorer *ConfidenceScorer,
	assembler *PromptAssembler,
	generator Generator,
	recorder InteractionWriter,
	logger logger.Logger,
) *RecommendationUseCase {
	return &RecommendationUseCase{
		router:    router,
		retriever: retriever,
		scorer:    scorer,
		assembler: assembler,
		generator: generator,
		recorder:  recorder,
		logger:    logger,
	}
}

// Recommend никогда не возвращает ошибку: сбои стадий превращаются в локализованные ответы.
func (u *RecommendationUseCase) Recommend(ctx context.Context, query string, topK int) domain.RecommendationResponse {
	start := time.Now()

	resp := u.run(ctx, query, topK)

	metrics.RecommendationsTotal.WithLabelValues(string(resp.Outcome), resp.DetectedLanguage.String()).Inc()
	if resp.Outcome == domain.OutcomeSuccess {
		metrics.Confidence.Observe(resp.Confidence)
	}

	u.recordAsync(query, resp, time.Since(start))

	return resp
}

func (u *RecommendationUseCase) run(ctx context.Context, query string, topK int) domain.RecommendationResponse {
	const op = "RecommendationUseCase.Recommend"

	// DETECT_LANG
	var lang domain.Language
	observeStage(metrics.StageDetect, func() {
		lang = u.router.Detect(ctx, query)
	})

	// TRANSLATE_IN
	working := query
	if lang.NeedsTranslation() {
		observeStage(metrics.StageTranslate, func() {
			working = u.router.ToWorkingLanguage(ctx, query, lang)
		})
	}

	// RETRIEVE
	retrieval := u.retrieve(ctx, working, topK)

	switch {
	case retrieval.Err != nil:
		u.logger.Errorf(retrieval.Err, "%s: retrieval failed", op)
		return u.staticResponse(domain.OutcomeRetrievalError, lang, []domain.RetrievalHit{})
	case len(retrieval.Hits) == 0:
		u.logger.Infof("%s: no matching products for query", op)
		return u.staticResponse(domain.OutcomeNoMatch, lang, []domain.RetrievalHit{})
	}

	// SCORE_AND_GENERATE
	confidence := u.scorer.Score(working, retrieval.Hits)
	generation := u.generate(ctx, u.assembler.Render(retrieval.Hits, working))

	switch {
	case generation.Err != nil:
		u.logger.Errorf(generation.Err, "%s: generation failed", op)
		// источники сохраняются, поэтому их оценка тоже
		resp := u.staticResponse(domain.OutcomeGenerationError, lang, retrieval.Hits)
		resp.Confidence = confidence
		return resp
	default:
		// TRANSLATE_OUT
		answer := generation.Text
		if lang.NeedsTranslation() {
			observeStage(metrics.StageTranslate, func() {
				answer = u.router.FromWorkingLanguage(ctx, answer, lang)
			})
		}

		return domain.RecommendationResponse{
			Answer:           answer,
			SourceDocuments:  retrieval.Hits,
			DetectedLanguage: lang,
			Confidence:       confidence,
			Outcome:          domain.OutcomeSuccess,
		}
	}
}

func (u *RecommendationUseCase) retrieve(ctx context.Context, query string, topK int) RetrievalResult {
	var res RetrievalResult
	observeStage(metrics.StageRetrieve, func() {
		res.Hits, res.Err = u.retriever.Search(ctx, query, topK)
	})

	return res
}

func (u *RecommendationUseCase) generate(ctx context.Context, prompt string) GenerationResult {
	var res GenerationResult
	observeStage(metrics.StageGenerate, func() {
		res.Text, res.Err = u.generator.Generate(ctx, prompt)
	})

	if res.Err == nil && strings.TrimSpace(res.Text) == "" {
		res.Err = e.ErrEmptyGeneration
	}

	return res
}

func (u *RecommendationUseCase) staticResponse(outcome domain.Outcome, lang domain.Language, hits []domain.RetrievalHit) domain.RecommendationResponse {
	return domain.RecommendationResponse{
		Answer:           LocalizedMessage(outcome, lang),
		SourceDocuments:  hits,
		DetectedLanguage: lang,
		Outcome:          outcome,
	}
}

// recordAsync пишет InteractionLog в фоне с собственным таймаутом.
func (u *RecommendationUseCase) recordAsync(query string, resp domain.RecommendationResponse, elapsed time.Duration) {
	const op = "RecommendationUseCase.recordAsync"

	if u.recorder == nil {
		return
	}

	log := domain.NewInteractionLog(query, resp, elapsed)
	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), recordInteractionTimeout)
		defer cancel()

		if err := u.recorder.RecordInteraction(bgCtx, log); err != nil {
			u.logger.Warnf("%s: failed to record interaction %s: %v", op, log.QueryID, err)
		}
	}()
}

// FormatChatAnswer добавляет к ответу список первых источников.
func FormatChatAnswer(resp domain.RecommendationResponse) string {
	if len(resp.SourceDocuments) == 0 {
		return resp.Answer
	}

	sources := resp.SourceDocuments[:min(chatSourcesLimit, len(resp.SourceDocuments))]
	lines := make([]string, 0, len(sources))
	for _, doc := range sources {
		lines = append(lines, fmt.Sprintf("- %s (%s)", doc.Name, doc.Sku))
	}

	return resp.Answer + "\n\n**Sources:**\n" + strings.Join(lines, "\n")
}

func observeStage(stage string, fn func()) {
	start := time.Now()
	fn()
	metrics.StageDuration.WithLabelValues(stage).Observe(time.Since(start).Seconds())
}
