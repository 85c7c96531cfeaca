package app

import (
	"context"
	"os"
	"strings"
	"time"

	config "github.com/DRSN-tech/recommendation-engine/internal/cfg"
	"github.com/DRSN-tech/recommendation-engine/internal/infrastructure/llm"
	minioInfra "github.com/DRSN-tech/recommendation-engine/internal/infrastructure/minio"
	s3Repo "github.com/DRSN-tech/recommendation-engine/internal/repository/minio"
	"github.com/DRSN-tech/recommendation-engine/internal/repository/pgdb"
	pgdbConv "github.com/DRSN-tech/recommendation-engine/internal/repository/pgdb/converter"
	qdrantRepo "github.com/DRSN-tech/recommendation-engine/internal/repository/qdrant"
	"github.com/DRSN-tech/recommendation-engine/internal/repository/redis"
	redisConv "github.com/DRSN-tech/recommendation-engine/internal/repository/redis/converter"
	"github.com/DRSN-tech/recommendation-engine/internal/usecase"
	"github.com/DRSN-tech/recommendation-engine/pkg/clients"
	"github.com/DRSN-tech/recommendation-engine/pkg/closer"
	"github.com/DRSN-tech/recommendation-engine/pkg/e"
	"github.com/DRSN-tech/recommendation-engine/pkg/logger"
	"github.com/DRSN-tech/recommendation-engine/pkg/postgres"
	"github.com/DRSN-tech/recommendation-engine/pkg/tr"
	"github.com/jimlawless/whereami"
	openai "github.com/sashabaranov/go-openai"
)

const initTimeout = 10 * time.Second

// deps: общие для сервиса и индексатора подключения и репозитории.
type deps struct {
	db           *postgres.PgDatabase
	redisClient  *clients.RedisClient
	qdrantClient *clients.QdrantClient
	llmClient    *openai.Client

	productRepo *pgdb.ProductRepo
	versionRepo *pgdb.ProductEmbeddingVersionRepo
	metaCache   *redis.MetadataCacheRepo
	embCache    *redis.EmbeddingCacheRepo
	index       *qdrantRepo.ProductIndexRepo
	txManager   *tr.Manager
	embedder    usecase.Embedder
	cachedEmbed *usecase.CachedEmbedder
	assetLinker usecase.AssetLinker
}

func initDeps(cfg *config.Config, logger logger.Logger, cl *closer.Closer) (*deps, error) {
	d := &deps{}

	db, err := initPGDB(logger, cfg)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	cl.AddQuiet("postgres", db.Close)
	d.db = db

	d.redisClient = clients.NewRedisClient(cfg.Redis)
	cl.Add("redis", func(context.Context) error { return d.redisClient.Close() })

	redisCtx, redisCancel := context.WithTimeout(context.Background(), initTimeout)
	defer redisCancel()
	if err := d.redisClient.Ping(redisCtx); err != nil {
		// кэш необязателен
		logger.Warnf("redis is unavailable, caches disabled until it recovers: %v", err)
	}

	qdrantClient, err := clients.NewQdrantClient(cfg.Qdrant)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	cl.Add("qdrant", func(context.Context) error { return qdrantClient.Close() })
	d.qdrantClient = qdrantClient

	qdrantCtx, qdrantCancel := context.WithTimeout(context.Background(), initTimeout)
	defer qdrantCancel()
	if err := qdrantClient.Ping(qdrantCtx); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	d.assetLinker = initAssetLinker(cfg, logger)

	d.productRepo = pgdb.NewProductRepo(db.Pool, pgdbConv.ProductConverterImpl{})
	d.versionRepo = pgdb.NewProductEmbeddingVersionRepo(pgdbConv.ProductEmbeddingVersionConverterImpl{})
	d.metaCache = redis.NewMetadataCacheRepo(d.redisClient, redisConv.MetadataConverterImpl{}, cfg.Redis, logger)
	d.embCache = redis.NewEmbeddingCacheRepo(d.redisClient, cfg.Redis)
	d.index = qdrantRepo.NewProductIndexRepo(qdrantClient.Client, cfg.Qdrant)
	d.txManager = tr.NewManager(db.Pool)

	d.llmClient = llm.NewClient(cfg.LLM)
	d.embedder = llm.NewEmbedder(d.llmClient, cfg.LLM.EmbeddingModel, cfg.LLM.EmbeddingDimensions, cfg.LLM.MaxRetries, logger)
	d.cachedEmbed = usecase.NewCachedEmbedder(d.embedder, d.embCache, cfg.LLM.EmbeddingModel, logger)

	return d, nil
}

func initPGDB(logger logger.Logger, cfg *config.Config) (*postgres.PgDatabase, error) {
	ctx, cancel := context.WithTimeout(context.Background(), initTimeout)
	defer cancel()

	db, err := postgres.Connect(ctx, cfg.Db)
	if err != nil {
		logger.Errorf(err, "failed to connect to database")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if err := db.RunMigrations(logger); err != nil {
		logger.Errorf(err, "failed to run migrations")
		db.Close()
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return db, nil
}

// initAssetLinker возвращает nil, если MinIO не настроен: ссылки на файлы тогда отдаются как есть.
func initAssetLinker(cfg *config.Config, logger logger.Logger) usecase.AssetLinker {
	if cfg.Minio.RootUser == "" {
		logger.Infof("MinIO credentials are not set, asset links are returned as stored")
		return nil
	}

	minioClient, err := clients.NewMinIOClient(cfg.Minio)
	if err != nil {
		logger.Warnf("failed to initialize minio client, asset links are returned as stored: %v", err)
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), initTimeout)
	defer cancel()
	if err := clients.EnsureBucket(ctx, minioClient, cfg.Minio.BucketName); err != nil {
		logger.Warnf("failed to ensure MinIO bucket %s: %v", cfg.Minio.BucketName, err)
	}

	return minioInfra.NewAssetLinker(s3Repo.NewAssetRepo(minioClient, cfg.Minio), cfg.Minio.BucketName, logger)
}

// loadSystemPolicy читает политику модели из файла. При пустом пути используется встроенная политика.
func loadSystemPolicy(path string) (string, error) {
	if path == "" {
		return "", nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", e.Wrap(whereami.WhereAmI(), err)
	}

	return strings.TrimSpace(string(data)), nil
}
