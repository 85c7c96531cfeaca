package http

import (
	_ "github.com/DRSN-tech/recommendation-engine/docs" // Импорт сгенерированных файлов
	"github.com/DRSN-tech/recommendation-engine/internal/cfg"
	"github.com/DRSN-tech/recommendation-engine/internal/metrics"
	"github.com/DRSN-tech/recommendation-engine/internal/usecase"
	"github.com/DRSN-tech/recommendation-engine/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

type Router struct {
	router *chi.Mux
	logger logger.Logger
}

func NewRouter(router *chi.Mux, logger logger.Logger) *Router {
	return &Router{router: router, logger: logger}
}

func (r *Router) Init(recUC usecase.RecommendationUC, recCfg *cfg.RecommendCfg, swaggerURL string) {
	r.router.Use(middleware.RequestID)
	r.router.Use(middleware.RealIP)
	r.router.Use(middleware.Recoverer)
	r.router.Use(metrics.Middleware())

	r.router.Handle("/metrics", promhttp.Handler())
	r.router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(swaggerURL), // ссылка на JSON
	))

	r.router.Route("/api/v1", func(v1 chi.Router) {
		v1.Get("/health", health)

		recHandler := NewRecommendationHandler(recUC, recCfg, r.logger)
		registerRecommendationRoutes(v1, recHandler, recCfg)
	})
}

func registerRecommendationRoutes(router chi.Router, recHandler *RecommendationHandler, recCfg *cfg.RecommendCfg) {
	router.Group(func(rec chi.Router) {
		rec.Use(middleware.Timeout(recCfg.Timeout))
		rec.Post("/recommend", recHandler.recommend)
		rec.Post("/chat", recHandler.chat)
	})
}
