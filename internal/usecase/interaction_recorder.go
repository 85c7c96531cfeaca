package usecase

import (
	"context"
	"encoding/json"

	"github.com/DRSN-tech/recommendation-engine/internal/domain"
	"github.com/DRSN-tech/recommendation-engine/pkg/e"
)

// InteractionRecorder сохраняет запись о запросе и событие для Kafka в одной транзакции.
type InteractionRecorder struct {
	logRepo    InteractionLogRepository
	outboxRepo OutboxRepository
	txManager  TxManager
}

func NewInteractionRecorder(logRepo InteractionLogRepository, outboxRepo OutboxRepository, txManager TxManager) *InteractionRecorder {
	return &InteractionRecorder{
		logRepo:    logRepo,
		outboxRepo: outboxRepo,
		txManager:  txManager,
	}
}

func (r *InteractionRecorder) RecordInteraction(ctx context.Context, log *domain.InteractionLog) error {
	const op = "InteractionRecorder.RecordInteraction"

	payload, err := json.Marshal(log)
	if err != nil {
		return e.Wrap(op, err)
	}

	err = r.txManager.Do(ctx, func(ctx context.Context) error {
		if err := r.logRepo.Create(ctx, log); err != nil {
			return err
		}

		event := NewOutboxEvent(EventTypeInteractionRecorded, log.QueryID.String(), payload)
		if _, err := r.outboxRepo.Create(ctx, event); err != nil {
			return err
		}

		return nil
	})
	if err != nil {
		return e.Wrap(op, err)
	}

	return nil
}
