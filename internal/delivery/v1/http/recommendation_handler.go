package http

import (
	"net/http"

	"github.com/DRSN-tech/recommendation-engine/internal/cfg"
	"github.com/DRSN-tech/recommendation-engine/internal/domain"
	"github.com/DRSN-tech/recommendation-engine/internal/usecase"
	"github.com/DRSN-tech/recommendation-engine/pkg/e"
	"github.com/DRSN-tech/recommendation-engine/pkg/logger"
)

type RecommendationHandler struct {
	recommendationUsecase usecase.RecommendationUC
	cfg                   *cfg.RecommendCfg
	logger                logger.Logger
}

func NewRecommendationHandler(recommendationUsecase usecase.RecommendationUC, cfg *cfg.RecommendCfg, logger logger.Logger) *RecommendationHandler {
	return &RecommendationHandler{
		recommendationUsecase: recommendationUsecase,
		cfg:                   cfg,
		logger:                logger,
	}
}

// recommend
//
//	@Summary		Подбор товаров по техническому запросу
//	@Description	Ищет подходящие товары в каталоге и генерирует рекомендацию на языке запроса (en/ar)
//	@Tags			recommendations
//	@Accept			json
//	@Produce		json
//	@Param			request	body		RecommendRequest	true	"Запрос"
//	@Success		200		{object}	RecommendResponse
//	@Failure		400		{object}	ErrorResponse	"Ошибка валидации"
//	@Router			/recommend [post]
func (h *RecommendationHandler) recommend(w http.ResponseWriter, r *http.Request) {
	var req RecommendRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, err)
		return
	}

	query, err := validateQuery(req.Query)
	if err != nil {
		h.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, err)
		return
	}

	topK, err := resolveTopK(req.TopK, h.cfg.DefaultTopK, h.cfg.MaxTopK)
	if err != nil {
		h.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, err)
		return
	}

	resp := h.recommendationUsecase.Recommend(r.Context(), query, topK)
	if resp.Outcome != domain.OutcomeSuccess {
		h.logger.Infof("recommendation finished with outcome %s", resp.Outcome)
	}

	WriteSuccess(w, http.StatusOK, toRecommendResponse(resp))
}

// chat
//
//	@Summary		Ответ ассистента в чате
//	@Description	Рекомендация с перечнем первых трёх источников в тексте ответа. История не сохраняется
//	@Tags			recommendations
//	@Accept			json
//	@Produce		json
//	@Param			request	body		ChatRequest	true	"Сообщение"
//	@Success		200		{object}	ChatResponse
//	@Failure		400		{object}	ErrorResponse	"Ошибка валидации"
//	@Router			/chat [post]
func (h *RecommendationHandler) chat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, err)
		return
	}

	message, err := validateQuery(req.Message)
	if err != nil {
		h.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, err)
		return
	}

	resp := h.recommendationUsecase.Recommend(r.Context(), message, h.cfg.DefaultTopK)

	sources := resp.SourceDocuments
	if sources == nil {
		sources = []domain.RetrievalHit{}
	}

	WriteSuccess(w, http.StatusOK, ChatResponse{
		Response: usecase.FormatChatAnswer(resp),
		Sources:  sources,
	})
}

// health
//
//	@Summary	Проверка доступности сервиса
//	@Tags		health
//	@Produce	json
//	@Success	200	{object}	HealthResponse
//	@Router		/health [get]
func health(w http.ResponseWriter, _ *http.Request) {
	WriteSuccess(w, http.StatusOK, HealthResponse{Status: "ok"})
}
