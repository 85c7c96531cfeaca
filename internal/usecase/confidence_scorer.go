package usecase

import (
	"strings"

	"github.com/DRSN-tech/recommendation-engine/internal/domain"
	"github.com/shopspring/decimal"
)

const (
	minMatchTokenRunes = 4 // учитываются токены длиннее трёх символов
	maxKeywordMatches  = 3
	keywordMatchBonus  = 0.1
	confidencePlaces   = 2

	// достаточно, чтобы любой float64 перевёлся в decimal без потери точности
	exactFloatExponent = -1074
)

// ConfidenceScorer оценивает уверенность в рекомендации по лучшему попаданию.
// Оценка не зависит от генерации.
type ConfidenceScorer struct{}

func NewConfidenceScorer() *ConfidenceScorer {
	return &ConfidenceScorer{}
}

// Score возвращает значение в [0, 1] с точностью до двух знаков.
// Основа берётся из score лучшего попадания, бонус дают совпадения слов запроса с его названием или sku.
func (s *ConfidenceScorer) Score(query string, hits []domain.RetrievalHit) float64 {
	if len(hits) == 0 {
		return 0
	}

	top := hits[0]
	base := clamp(float64(top.Score), 0, 1)

	name := strings.ToLower(top.Name)
	sku := strings.ToLower(top.Sku)

	matches := 0
	for _, token := range strings.Fields(strings.ToLower(query)) {
		if len([]rune(token)) < minMatchTokenRunes {
			continue
		}
		if strings.Contains(name, token) || strings.Contains(sku, token) {
			matches++
		}
	}
	matches = min(matches, maxKeywordMatches)

	score := min(1.0, base+keywordMatchBonus*float64(matches))

	return roundHalfEven(score, confidencePlaces)
}

// roundHalfEven округляет точное двоичное значение x, ничьи уходят к чётной цифре.
func roundHalfEven(x float64, places int32) float64 {
	res, _ := decimal.NewFromFloatWithExponent(x, exactFloatExponent).RoundBank(places).Float64()
	return res
}

func clamp(v, lo, hi float64) float64 {
	return max(lo, min(hi, v))
}
