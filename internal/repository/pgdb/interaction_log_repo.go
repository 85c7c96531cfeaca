package pgdb

import (
	"context"
	"fmt"

	"github.com/DRSN-tech/recommendation-engine/internal/domain"
	"github.com/DRSN-tech/recommendation-engine/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/recommendation-engine/pkg/e"
	"github.com/DRSN-tech/recommendation-engine/pkg/tr"
	"github.com/jimlawless/whereami"
)

type InteractionLogRepo struct {
	conv converter.InteractionLogConverter
}

func NewInteractionLogRepo(conv converter.InteractionLogConverter) *InteractionLogRepo {
	return &InteractionLogRepo{conv: conv}
}

// Create сохраняет запись о запросе в транзакции из контекста.
func (r *InteractionLogRepo) Create(ctx context.Context, log *domain.InteractionLog) error {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	model := r.conv.ToModel(log)
	query := `
		INSERT INTO interaction_logs (
			query_id,
			query,
			detected_language,
			recommended_sku,
			confidence_score,
			outcome,
			hit_count,
			response_time_ms,
			timestamp
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	if _, err := tx.Exec(ctx, query,
		model.QueryID,
		model.Query,
		model.DetectedLanguage,
		model.RecommendedSku,
		model.ConfidenceScore,
		model.Outcome,
		model.HitCount,
		model.ResponseTimeMs,
		model.Timestamp,
	); err != nil {
		if postgresDuplicate(err) {
			return fmt.Errorf("%s: interaction %s already exists", whereami.WhereAmI(), log.QueryID)
		}

		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}
