package usecase

import (
	"time"

	"github.com/DRSN-tech/recommendation-engine/internal/domain"
	"github.com/google/uuid"
)

// OUTBOX

type OutboxStatus string

const (
	Pending    OutboxStatus = "pending"
	Processing OutboxStatus = "processing"
	Processed  OutboxStatus = "processed"
)

const EventTypeInteractionRecorded = "interaction.recorded"

// OutboxEvent: событие, ожидающее отправки в Kafka.
type OutboxEvent struct {
	ID          int64
	EventID     uuid.UUID
	EventType   string
	AggregateID string // ключ сообщения в Kafka (query_id)
	Payload     []byte
	Status      OutboxStatus
	CreatedAt   time.Time
	ProcessedAt *time.Time
}

// INFRASTRUCTURE

type WriteRawMessageReq struct {
	Key       string
	EventType string
	Payload   []byte
}

// SYNC

// SyncCatalogRes: итог синхронизации каталога с векторным индексом.
type SyncCatalogRes struct {
	Indexed       int
	FailedBatches int
}

// STAGE RESULTS

// RetrievalResult: результат стадии поиска: либо попадания, либо ошибка.
type RetrievalResult struct {
	Hits []domain.RetrievalHit
	Err  error
}

// GenerationResult: результат стадии генерации: либо текст, либо ошибка.
type GenerationResult struct {
	Text string
	Err  error
}

// MAPPERS

func NewOutboxEvent(eventType, aggregateID string, payload []byte) *OutboxEvent {
	return &OutboxEvent{
		EventID:     uuid.New(),
		EventType:   eventType,
		AggregateID: aggregateID,
		Payload:     payload,
		Status:      Pending,
		CreatedAt:   time.Now().UTC(),
	}
}

func NewWriteRawMessageReq(key, eventType string, payload []byte) *WriteRawMessageReq {
	return &WriteRawMessageReq{
		Key:       key,
		EventType: eventType,
		Payload:   payload,
	}
}
