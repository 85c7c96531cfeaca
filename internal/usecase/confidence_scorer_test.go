package usecase

import (
	"testing"

	"github.com/DRSN-tech/recommendation-engine/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestConfidenceScorer_Score(t *testing.T) {
	tests := []struct {
		name  string
		query string
		hits  []domain.RetrievalHit
		want  float64
	}{
		{
			name:  "no hits",
			query: "anything",
			want:  0,
		},
		{
			name:  "all tokens match name, capped at one",
			query: "safety light curtain",
			hits: []domain.RetrievalHit{
				hit("SICK-200", "Safety Light Curtain", "Safety", 0.82),
				hit("SICK-210", "Safety Barrier", "", 0.65),
			},
			want: 1.0,
		},
		{
			name:  "short tokens ignored",
			query: "a big red box",
			hits:  []domain.RetrievalHit{hit("X-1", "a big red box", "", 0.5)},
			want:  0.5,
		},
		{
			name:  "sku match",
			query: "need wl12 variant",
			hits:  []domain.RetrievalHit{hit("WL12-2P430", "Photoelectric Sensor", "", 0.4)},
			want:  0.5,
		},
		{
			name:  "matches capped at three",
			query: "photo photo photo photo photo",
			hits:  []domain.RetrievalHit{hit("P-1", "Photoelectric", "", 0.2)},
			want:  0.5,
		},
		{
			name:  "duplicate tokens count again",
			query: "sensor sensor",
			hits:  []domain.RetrievalHit{hit("P-1", "Proximity Sensor", "", 0.3)},
			want:  0.5,
		},
		{
			name:  "negative score clamped",
			query: "nothing",
			hits:  []domain.RetrievalHit{hit("P-1", "Valve", "", -0.4)},
			want:  0,
		},
		{
			name:  "score above one clamped",
			query: "nothing",
			hits:  []domain.RetrievalHit{hit("P-1", "Valve", "", 1.7)},
			want:  1,
		},
		{
			name:  "case insensitive and rounded",
			query: "ENCODER",
			hits:  []domain.RetrievalHit{hit("E-1", "Rotary Encoder", "", 0.333)},
			want:  0.43,
		},
		{
			name:  "only top hit counts",
			query: "barrier",
			hits: []domain.RetrievalHit{
				hit("S-1", "Safety Light Curtain", "", 0.6),
				hit("S-2", "Safety Barrier", "", 0.5),
			},
			want: 0.6,
		},
		{
			name:  "tie rounds to even, low",
			query: "xyz",
			hits:  []domain.RetrievalHit{hit("P-1", "Valve", "", 0.125)},
			want:  0.12,
		},
		{
			name:  "tie rounds to even, high",
			query: "xyz",
			hits:  []domain.RetrievalHit{hit("P-1", "Valve", "", 0.625)},
			want:  0.62,
		},
		{
			name:  "binary value below the tie rounds down",
			query: "xyz",
			hits:  []domain.RetrievalHit{hit("P-1", "Valve", "", 0.355)},
			want:  0.35,
		},
	}

	scorer := NewConfidenceScorer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := scorer.Score(tt.query, tt.hits)
			assert.InDelta(t, tt.want, got, 1e-9)
			assert.GreaterOrEqual(t, got, 0.0)
			assert.LessOrEqual(t, got, 1.0)
		})
	}
}
