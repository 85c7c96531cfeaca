package metrics

import "github.com/prometheus/client_golang/prometheus"

const namespace = "recommender"

// Метрики пайплайна рекомендаций.
var (
	RecommendationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "recommendations_total",
			Help:      "Total number of recommendation requests by outcome and detected language",
		},
		[]string{"outcome", "language"},
	)

	StageDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "pipeline_stage_duration_seconds",
			Help:      "Duration of a recommendation pipeline stage in seconds",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"stage"},
	)

	Confidence = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "confidence",
			Help:      "Confidence score of successful recommendations",
			Buckets:   prometheus.LinearBuckets(0.1, 0.1, 10),
		},
	)

	CacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_total",
			Help:      "Cache hits and misses",
		},
		[]string{"cache", "result"}, // cache: "metadata" / "embedding", result: "hit" / "miss"
	)
)

const (
	StageDetect    = "detect_language"
	StageTranslate = "translate"
	StageRetrieve  = "retrieve"
	StageGenerate  = "generate"
)

const (
	CacheMetadata  = "metadata"
	CacheEmbedding = "embedding"
)

func init() {
	prometheus.MustRegister(RecommendationsTotal)
	prometheus.MustRegister(StageDuration)
	prometheus.MustRegister(Confidence)
	prometheus.MustRegister(CacheTotal)
}
