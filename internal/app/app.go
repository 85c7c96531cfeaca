package app

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	config "github.com/DRSN-tech/recommendation-engine/internal/cfg"
	v1Grpc "github.com/DRSN-tech/recommendation-engine/internal/delivery/v1/grpc"
	v1Http "github.com/DRSN-tech/recommendation-engine/internal/delivery/v1/http"
	"github.com/DRSN-tech/recommendation-engine/internal/infrastructure/kafka"
	"github.com/DRSN-tech/recommendation-engine/internal/infrastructure/language"
	"github.com/DRSN-tech/recommendation-engine/internal/infrastructure/llm"
	"github.com/DRSN-tech/recommendation-engine/internal/repository/pgdb"
	pgdbConv "github.com/DRSN-tech/recommendation-engine/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/recommendation-engine/internal/usecase"
	"github.com/DRSN-tech/recommendation-engine/pkg/closer"
	"github.com/DRSN-tech/recommendation-engine/pkg/e"
	"github.com/DRSN-tech/recommendation-engine/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/jimlawless/whereami"
)

const (
	shutdownTimeout    = 15 * time.Second
	topicEnsureTimeout = 10 * time.Second
	indexEnsureTimeout = 30 * time.Second
)

type App struct {
	cfg          *config.Config
	logger       logger.Logger
	closer       *closer.Closer
	httpSrv      *v1Http.Server
	grpcSrv      *v1Grpc.GRPCServer
	outboxWorker *kafka.OutboxWorker
}

func NewApp(cfg *config.Config, logger logger.Logger) (*App, error) {
	cl := closer.NewCloser(0)

	application, err := newApp(cfg, logger, cl)
	if err != nil {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if closeErr := cl.Close(ctx); closeErr != nil {
			logger.Warnf("cleanup after failed start: %v", closeErr)
		}
		return nil, err
	}

	return application, nil
}

func newApp(cfg *config.Config, logger logger.Logger, cl *closer.Closer) (*App, error) {
	d, err := initDeps(cfg, logger, cl)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	policy, err := loadSystemPolicy(cfg.Recommend.SystemPromptFile)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	// === Пайплайн рекомендаций ===
	router := usecase.NewLanguageRouter(
		language.NewDetector(),
		llm.NewTranslator(d.llmClient, cfg.LLM.TranslationModel),
		logger,
	)
	metadataStore := usecase.NewCachedMetadataStore(d.productRepo, d.metaCache, d.assetLinker, logger)
	retriever := usecase.NewRetriever(d.cachedEmbed, d.index, metadataStore, logger)

	indexCtx, indexCancel := context.WithTimeout(context.Background(), indexEnsureTimeout)
	defer indexCancel()
	if err := retriever.EnsureIndex(indexCtx); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	var recorder usecase.InteractionWriter
	var outboxWorker *kafka.OutboxWorker
	if cfg.Recommend.LogInteractions {
		outboxRepo := pgdb.NewOutboxEventRepo(d.db.Pool, pgdbConv.OutboxEventConverterImpl{})
		recorder = usecase.NewInteractionRecorder(
			pgdb.NewInteractionLogRepo(pgdbConv.InteractionLogConverterImpl{}),
			outboxRepo,
			d.txManager,
		)

		producer := kafka.NewProducer(logger, cfg.Kafka)
		cl.Add("kafka producer", func(context.Context) error { return producer.Close() })
		if err := producer.EnsureTopic(topicEnsureTimeout); err != nil {
			logger.Warnf("failed to ensure kafka topic, events stay in outbox until it exists: %v", err)
		}

		outboxWorker = kafka.NewOutboxWorker(outboxRepo, logger, producer, d.db.Dsn, pgdb.OutboxChannel, cfg.Kafka.OutboxBatchSize)
	}

	recommendationUC := usecase.NewRecommendationUC(
		router,
		retriever,
		usecase.NewConfidenceScorer(),
		usecase.NewPromptAssembler(policy),
		llm.NewGenerator(d.llmClient, cfg.LLM.ChatModel, cfg.LLM.Temperature),
		recorder,
		logger,
	)

	// === Delivery ===
	r := chi.NewRouter()
	v1Http.NewRouter(r, logger).Init(recommendationUC, cfg.Recommend, cfg.Http.SwaggerURL)

	grpcSrv := v1Grpc.NewGRPCServer(cfg.Grpc, logger)
	grpcSrv.RegisterServices()

	return &App{
		cfg:          cfg,
		logger:       logger,
		closer:       cl,
		httpSrv:      v1Http.NewServer(r, cfg.Http),
		grpcSrv:      grpcSrv,
		outboxWorker: outboxWorker,
	}, nil
}

// Run запускает серверы и блокируется до сигнала остановки или фатальной ошибки сервера.
func (a *App) Run() error {
	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()

	if a.outboxWorker != nil {
		a.outboxWorker.Start(workerCtx)
	}

	grpcErrCh := make(chan error, 1)
	go func() {
		a.logger.Infof("gRPC server starting on %s:%s", a.cfg.Grpc.NetworkMode, a.cfg.Grpc.Port)
		if err := a.grpcSrv.Start(); err != nil {
			a.logger.Errorf(err, "gRPC server failed")
			grpcErrCh <- err
		}
	}()

	errCh := make(chan error, 1)
	go func() {
		a.logger.Infof("HTTP server started on port %s", a.cfg.Http.Port)
		if err := a.httpSrv.Run(); err != nil {
			a.logger.Errorf(err, "HTTP server failed")
			errCh <- err
		}
	}()

	// === Ожидание сигнала или ошибки ===
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	var appErr error
	select {
	case appErr = <-errCh:
		a.logger.Errorf(appErr, "HTTP server fatal error")
	case appErr = <-grpcErrCh:
		a.logger.Errorf(appErr, "gRPC server fatal error")
	case <-shutdown:
		a.logger.Infof("Received shutdown signal, stopping gracefully...")
	}

	// === Graceful shutdown ===
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := a.httpSrv.Stop(shutdownCtx); err != nil {
		a.logger.Errorf(err, "HTTP server shutdown error")
	} else {
		a.logger.Infof("HTTP server stopped")
	}

	if err := a.grpcSrv.Stop(shutdownCtx); err != nil {
		if !errors.Is(err, context.DeadlineExceeded) {
			a.logger.Errorf(err, "gRPC server shutdown error")
		} else {
			a.logger.Warnf("gRPC server shutdown timeout")
		}
	}

	if a.outboxWorker != nil {
		a.outboxWorker.Stop()
	}

	if err := a.closer.Close(shutdownCtx); err != nil {
		a.logger.Errorf(err, "resources shutdown error")
	}

	a.logger.Infof("Application shutdown complete")

	return appErr
}
