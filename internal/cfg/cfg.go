package cfg

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/DRSN-tech/recommendation-engine/pkg/e"
	"github.com/DRSN-tech/recommendation-engine/pkg/logger"
	"github.com/jimlawless/whereami"
)

type Config struct {
	Http      *HTTPConfig
	Grpc      *GRPCConfig
	Db        *PGDBCfg
	Qdrant    *QdrantCfg
	Redis     *RedisCfg
	Minio     *MinIOCfg
	Kafka     *KafkaCfg
	LLM       *LLMCfg
	Recommend *RecommendCfg
}

type HTTPConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	SwaggerURL   string
}

type GRPCConfig struct {
	Port        string
	NetworkMode string
}

type PGDBCfg struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// DSN собирает строку подключения к PostgreSQL.
func (c *PGDBCfg) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

type QdrantCfg struct {
	Port           int
	Host           string
	ApiKey         string
	CollectionName string // имя коллекции с векторами товаров
	UseTLS         bool
}

type RedisCfg struct {
	Addr         string
	Password     string
	User         string
	DB           int
	MaxRetries   int
	DialTimeout  time.Duration
	Timeout      time.Duration
	MetadataTTL  time.Duration // время жизни закэшированных метаданных товара
	EmbeddingTTL time.Duration // время жизни закэшированного вектора запроса
}

type MinIOCfg struct {
	Endpoint     string        // Адрес конечной точки MinIO
	BucketName   string        // Бакет с даташитами, чертежами и изображениями
	RootUser     string        // Имя пользователя для доступа к MinIO
	RootPassword string        // Пароль для доступа к MinIO
	UseSSL       bool          // Подключение по TLS
	Region       string        // Регион бакета, чтобы presign не ходил в сеть
	PresignTTL   time.Duration // Время жизни подписанной ссылки
}

type KafkaCfg struct {
	Topic             string
	Brokers           []string
	NetworkMode       string
	Partitions        int
	ReplicationFactor int
	OutboxBatchSize   int
}

// LLMCfg описывает OpenAI-совместимый сервис (Ollama, vLLM, OpenAI) для эмбеддингов, генерации и перевода.
type LLMCfg struct {
	BaseURL             string
	APIKey              string
	ChatModel           string
	EmbeddingModel      string
	EmbeddingDimensions int
	TranslationModel    string
	Temperature         float32
	MaxRetries          int
}

type RecommendCfg struct {
	DefaultTopK      int
	MaxTopK          int
	Timeout          time.Duration // таймаут на весь запрос рекомендации
	SystemPromptFile string        // файл с политикой для модели, если пусто, встроенная
	LogInteractions  bool
}

// Load безопасно загружает конфигурацию и возвращает ошибку в случае неудачи.
func Load(log logger.Logger) (*Config, error) {
	db, err := loadPGDBCfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	http, err := loadHTTPConfig(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	redis, err := loadRedisCfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	minio, err := loadMinIOCfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	qdrant, err := loadQdrantCfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	kafka, err := loadKafkaCfg()
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	llm, err := loadLLMCfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	recommend, err := loadRecommendCfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return &Config{
		Http:      http,
		Grpc:      loadGRPCConfig(),
		Db:        db,
		Qdrant:    qdrant,
		Redis:     redis,
		Minio:     minio,
		Kafka:     kafka,
		LLM:       llm,
		Recommend: recommend,
	}, nil
}

func loadKafkaCfg() (*KafkaCfg, error) {
	const (
		defaultPartitions        = 3
		defaultReplicationFactor = 1
		defaultNetworkMode       = "tcp"
		defaultOutboxBatchSize   = 10
	)

	brokerStr := getEnv("KAFKA_BROKERS")
	if brokerStr == "" {
		return nil, e.Wrap("KAFKA_BROKERS", e.ErrMissingEnvVariable)
	}

	topic := getEnv("KAFKA_TOPIC")
	if topic == "" {
		return nil, e.Wrap("KAFKA_TOPIC", e.ErrMissingEnvVariable)
	}

	partitions, err := parseIntEnv("KAFKA_PARTITIONS", defaultPartitions)
	if err != nil {
		return nil, e.Wrap("KAFKA_PARTITIONS", err)
	}

	replicationFactor, err := parseIntEnv("REPLICATION_FACTOR", defaultReplicationFactor)
	if err != nil {
		return nil, e.Wrap("REPLICATION_FACTOR", err)
	}

	batchSize, err := parseIntEnv("OUTBOX_BATCH_SIZE", defaultOutboxBatchSize)
	if err != nil {
		return nil, e.Wrap("OUTBOX_BATCH_SIZE", err)
	}

	return &KafkaCfg{
		Brokers:           splitAndTrim(brokerStr),
		Topic:             topic,
		Partitions:        partitions,
		ReplicationFactor: replicationFactor,
		NetworkMode:       getEnvOrDefault("KAFKA_NETWORK_MODE", defaultNetworkMode),
		OutboxBatchSize:   batchSize,
	}, nil
}

func loadMinIOCfg(log logger.Logger) (*MinIOCfg, error) {
	const (
		defaultUseSSL     = false
		defaultEndpoint   = "minio:9000"
		defaultBucket     = "catalog-assets"
		defaultRegion     = "us-east-1"
		defaultPresignTTL = time.Hour
	)

	useSSL, err := strconv.ParseBool(getEnvOrDefault("MINIO_USE_SSL", strconv.FormatBool(defaultUseSSL)))
	if err != nil {
		log.Errorf(err, "invalid MINIO_USE_SSL")
		return nil, err
	}

	presignTTL, err := parseDurationEnv("MINIO_PRESIGN_TTL", defaultPresignTTL)
	if err != nil {
		log.Errorf(err, "invalid MINIO_PRESIGN_TTL")
		return nil, err
	}

	return &MinIOCfg{
		Endpoint:     getEnvOrDefault("MINIO_ENDPOINT", defaultEndpoint),
		BucketName:   getEnvOrDefault("BUCKET_NAME", defaultBucket),
		RootUser:     getEnv("MINIO_ROOT_USER"),
		RootPassword: getEnv("MINIO_ROOT_PASSWORD"),
		UseSSL:       useSSL,
		Region:       getEnvOrDefault("MINIO_REGION", defaultRegion),
		PresignTTL:   presignTTL,
	}, nil
}

func loadHTTPConfig(log logger.Logger) (*HTTPConfig, error) {
	const (
		defaultPort         = "8080"
		defaultReadTimeout  = 5 * time.Second
		defaultWriteTimeout = 120 * time.Second // генерация ответа моделью может занимать десятки секунд
		defaultIdleTimeout  = 60 * time.Second
	)

	port := getEnvOrDefault("HTTP_PORT", defaultPort)

	readTimeout, err := parseDurationEnv("HTTP_READ_TIMEOUT", defaultReadTimeout)
	if err != nil {
		log.Errorf(err, "invalid HTTP_READ_TIMEOUT")
		return nil, err
	}

	writeTimeout, err := parseDurationEnv("HTTP_WRITE_TIMEOUT", defaultWriteTimeout)
	if err != nil {
		log.Errorf(err, "invalid HTTP_WRITE_TIMEOUT")
		return nil, err
	}

	idleTimeout, err := parseDurationEnv("KEEP_ALIVE", defaultIdleTimeout)
	if err != nil {
		log.Errorf(err, "invalid KEEP_ALIVE")
		return nil, err
	}

	return &HTTPConfig{
		Port:         port,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
		SwaggerURL:   getEnvOrDefault("SWAGGER_URL", "http://localhost:"+port+"/swagger/doc.json"),
	}, nil
}

func loadGRPCConfig() *GRPCConfig {
	const (
		defaultPort        = "8091"
		defaultNetworkMode = "tcp"
	)

	return &GRPCConfig{
		Port:        getEnvOrDefault("GRPC_PORT", defaultPort),
		NetworkMode: getEnvOrDefault("GRPC_NETWORK_MODE", defaultNetworkMode),
	}
}

func loadPGDBCfg(log logger.Logger) (*PGDBCfg, error) {
	const (
		defaultHost    = "localhost"
		defaultPort    = "5432"
		defaultSSLMode = "disable"
	)

	user := getEnv("POSTGRES_USER")
	if user == "" {
		err := e.Wrap("POSTGRES_USER", e.ErrMissingEnvVariable)
		log.Errorf(err, "missing POSTGRES_USER")
		return nil, err
	}

	password := getEnv("POSTGRES_PASSWORD")
	if password == "" {
		err := e.Wrap("POSTGRES_PASSWORD", e.ErrMissingEnvVariable)
		log.Errorf(err, "missing POSTGRES_PASSWORD")
		return nil, err
	}

	dbName := getEnv("POSTGRES_DB")
	if dbName == "" {
		err := e.Wrap("POSTGRES_DB", e.ErrMissingEnvVariable)
		log.Errorf(err, "missing POSTGRES_DB")
		return nil, err
	}

	return &PGDBCfg{
		Host:     getEnvOrDefault("POSTGRES_HOST", defaultHost),
		Port:     getEnvOrDefault("POSTGRES_PORT", defaultPort),
		User:     user,
		Password: password,
		DBName:   dbName,
		SSLMode:  getEnvOrDefault("SSL_MODE", defaultSSLMode),
	}, nil
}

func loadQdrantCfg(logger logger.Logger) (*QdrantCfg, error) {
	const (
		defaultQdrantHost     = "localhost"
		defaultQdrantGRPCPort = "6334"
		defaultUseTLS         = false
		defaultCollection     = "products"
	)

	port, err := strconv.Atoi(getEnvOrDefault("QDRANT_GRPC_PORT", defaultQdrantGRPCPort))
	if err != nil {
		logger.Errorf(err, "invalid QDRANT_GRPC_PORT")
		return nil, err
	}

	useTLS, err := strconv.ParseBool(getEnvOrDefault("QDRANT_USE_TLS", strconv.FormatBool(defaultUseTLS)))
	if err != nil {
		logger.Errorf(err, "invalid QDRANT_USE_TLS")
		return nil, err
	}

	return &QdrantCfg{
		Host:           getEnvOrDefault("QDRANT_HOST", defaultQdrantHost),
		Port:           port,
		ApiKey:         getEnv("QDRANT__SERVICE__API_KEY"),
		CollectionName: getEnvOrDefault("COLLECTION_NAME", defaultCollection),
		UseTLS:         useTLS,
	}, nil
}

func loadRedisCfg(log logger.Logger) (*RedisCfg, error) {
	const (
		defaultAddr         = "localhost:6379"
		defaultDB           = 0
		defaultMaxRetries   = 3
		defaultDialTimeout  = 5 * time.Second
		defaultReadTimeout  = 3 * time.Second
		defaultWriteTimeout = 3 * time.Second
		defaultMetadataTTL  = 3 * time.Minute
		defaultEmbeddingTTL = 24 * time.Hour
	)

	db, err := parseIntEnv("REDIS_DB_ID", defaultDB)
	if err != nil {
		log.Errorf(err, "invalid REDIS_DB_ID")
		return nil, err
	}

	maxRetries, err := parseIntEnv("MAX_RETRIES", defaultMaxRetries)
	if err != nil {
		log.Errorf(err, "invalid MAX_RETRIES")
		return nil, err
	}

	dialTimeout, err := parseDurationEnv("DIAL_TIMEOUT", defaultDialTimeout)
	if err != nil {
		log.Errorf(err, "invalid DIAL_TIMEOUT")
		return nil, err
	}

	readTimeout, err := parseDurationEnv("READ_TIMEOUT", defaultReadTimeout)
	if err != nil {
		log.Errorf(err, "invalid READ_TIMEOUT")
		return nil, err
	}

	writeTimeout, err := parseDurationEnv("WRITE_TIMEOUT", defaultWriteTimeout)
	if err != nil {
		log.Errorf(err, "invalid WRITE_TIMEOUT")
		return nil, err
	}

	metadataTTL, err := parseDurationEnv("METADATA_TTL", defaultMetadataTTL)
	if err != nil {
		log.Errorf(err, "invalid METADATA_TTL")
		return nil, err
	}

	embeddingTTL, err := parseDurationEnv("EMBEDDING_TTL", defaultEmbeddingTTL)
	if err != nil {
		log.Errorf(err, "invalid EMBEDDING_TTL")
		return nil, err
	}

	return &RedisCfg{
		Addr:         getEnvOrDefault("REDIS_ADDR", defaultAddr),
		Password:     getEnv("REDIS_PASSWORD"),
		User:         getEnv("REDIS_USER"),
		DB:           db,
		MaxRetries:   maxRetries,
		DialTimeout:  dialTimeout,
		Timeout:      max(readTimeout, writeTimeout),
		MetadataTTL:  metadataTTL,
		EmbeddingTTL: embeddingTTL,
	}, nil
}

func loadLLMCfg(log logger.Logger) (*LLMCfg, error) {
	const (
		defaultBaseURL        = "http://ollama:11434/v1"
		defaultChatModel      = "llama3"
		defaultEmbeddingModel = "all-minilm"
		defaultDimensions     = 384 // all-MiniLM-L6-v2
		defaultTemperature    = "0.2"
		defaultMaxRetries     = 3
	)

	dimensions, err := parseIntEnv("EMBEDDING_DIMENSIONS", defaultDimensions)
	if err != nil {
		log.Errorf(err, "invalid EMBEDDING_DIMENSIONS")
		return nil, err
	}
	if dimensions <= 0 {
		err := e.Wrap("EMBEDDING_DIMENSIONS", e.ErrIncorrectEnvVariable)
		log.Errorf(err, "EMBEDDING_DIMENSIONS must be positive")
		return nil, err
	}

	temperature, err := strconv.ParseFloat(getEnvOrDefault("LLM_TEMPERATURE", defaultTemperature), 32)
	if err != nil {
		log.Errorf(err, "invalid LLM_TEMPERATURE")
		return nil, err
	}

	maxRetries, err := parseIntEnv("EMBEDDING_MAX_RETRIES", defaultMaxRetries)
	if err != nil {
		log.Errorf(err, "invalid EMBEDDING_MAX_RETRIES")
		return nil, err
	}

	chatModel := getEnvOrDefault("OLLAMA_MODEL", defaultChatModel)

	return &LLMCfg{
		BaseURL:             getEnvOrDefault("OLLAMA_BASE_URL", defaultBaseURL),
		APIKey:              getEnvOrDefault("LLM_API_KEY", "ollama"),
		ChatModel:           chatModel,
		EmbeddingModel:      getEnvOrDefault("EMBEDDING_MODEL", defaultEmbeddingModel),
		EmbeddingDimensions: dimensions,
		TranslationModel:    getEnvOrDefault("TRANSLATION_MODEL", chatModel),
		Temperature:         float32(temperature),
		MaxRetries:          max(maxRetries, 1),
	}, nil
}

func loadRecommendCfg(log logger.Logger) (*RecommendCfg, error) {
	const (
		defaultTopK    = 5
		defaultMaxTopK = 20
		defaultTimeout = 90 * time.Second
	)

	topK, err := parseIntEnv("RECOMMEND_DEFAULT_TOP_K", defaultTopK)
	if err != nil {
		log.Errorf(err, "invalid RECOMMEND_DEFAULT_TOP_K")
		return nil, err
	}

	maxTopK, err := parseIntEnv("RECOMMEND_MAX_TOP_K", defaultMaxTopK)
	if err != nil {
		log.Errorf(err, "invalid RECOMMEND_MAX_TOP_K")
		return nil, err
	}

	if topK < 1 || maxTopK < topK {
		err := e.Wrap(fmt.Sprintf("top_k=%d max_top_k=%d", topK, maxTopK), e.ErrIncorrectEnvVariable)
		log.Errorf(err, "invalid top_k bounds")
		return nil, err
	}

	timeout, err := parseDurationEnv("RECOMMEND_TIMEOUT", defaultTimeout)
	if err != nil {
		log.Errorf(err, "invalid RECOMMEND_TIMEOUT")
		return nil, err
	}

	logInteractions, err := strconv.ParseBool(getEnvOrDefault("LOG_INTERACTIONS", "true"))
	if err != nil {
		log.Errorf(err, "invalid LOG_INTERACTIONS")
		return nil, err
	}

	return &RecommendCfg{
		DefaultTopK:      topK,
		MaxTopK:          maxTopK,
		Timeout:          timeout,
		SystemPromptFile: getEnv("RAG_SYSTEM_PROMPT_FILE"),
		LogInteractions:  logInteractions,
	}, nil
}

// getEnv возвращает значение переменной окружения.
// Возвращает пустую строку, если переменная не задана.
func getEnv(key string) string {
	return os.Getenv(key)
}

// getEnvOrDefault возвращает значение переменной окружения или значение по умолчанию.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return defaultValue
}

// parseDurationEnv считывает длительность или возвращает значение по умолчанию.
func parseDurationEnv(key string, defaultValue time.Duration) (time.Duration, error) {
	if v := os.Getenv(key); v != "" {
		return time.ParseDuration(v)
	}

	return defaultValue, nil
}

func parseIntEnv(key string, defaultValue int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue, nil
	}

	intValue, err := strconv.Atoi(v)
	if err != nil {
		return defaultValue, e.ErrIncorrectEnvVariable
	}

	return intValue, nil
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	res := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			res = append(res, p)
		}
	}

	return res
}
