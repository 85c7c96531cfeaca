package converter

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/DRSN-tech/recommendation-engine/internal/domain"
	"github.com/DRSN-tech/recommendation-engine/internal/usecase"
)

// ProductConverter преобразует строки products в сущности domain.
type ProductConverter interface {
	ToMetadataEntity(model *ProductMetadataModel) (*domain.MetadataRecord, error)
	ToCatalogEntity(model *CatalogProductModel) (*domain.CatalogProduct, error)
}

// ProductEmbeddingVersionConverter преобразует сущности ProductEmbeddingVersion между domain и моделью PostgreSQL.
type ProductEmbeddingVersionConverter interface {
	ToEntity(model *ProductEmbeddingVersionModel) *domain.ProductEmbeddingVersion
}

// InteractionLogConverter преобразует InteractionLog в модель PostgreSQL.
type InteractionLogConverter interface {
	ToModel(entity *domain.InteractionLog) *InteractionLogModel
}

// OutboxEventConverter преобразует сущности OutboxEvent между usecase и моделью PostgreSQL.
type OutboxEventConverter interface {
	ToModel(entity *usecase.OutboxEvent) *OutboxEventModel
	ToEntity(model *OutboxEventModel) *usecase.OutboxEvent
	ToArrEntity(models []*OutboxEventModel) []*usecase.OutboxEvent
}

type ProductConverterImpl struct{}

func (ProductConverterImpl) ToMetadataEntity(model *ProductMetadataModel) (*domain.MetadataRecord, error) {
	rec := &domain.MetadataRecord{
		Sku:          model.SkuID,
		DatasheetURL: model.DatasheetURL,
	}

	if err := decodeJSONB(model.Specifications, &rec.Specifications); err != nil {
		return nil, fmt.Errorf("sku %s: specifications: %w", model.SkuID, err)
	}
	if err := decodeJSONB(model.Images, &rec.Images); err != nil {
		return nil, fmt.Errorf("sku %s: images: %w", model.SkuID, err)
	}
	if err := decodeJSONB(model.TechnicalDrawings, &rec.TechnicalDrawings); err != nil {
		return nil, fmt.Errorf("sku %s: technical_drawings: %w", model.SkuID, err)
	}
	if err := decodeJSONB(model.Documents, &rec.Documents); err != nil {
		return nil, fmt.Errorf("sku %s: documents: %w", model.SkuID, err)
	}

	if rec.DatasheetURL != nil && *rec.DatasheetURL == "" {
		rec.DatasheetURL = nil
	}

	return rec, nil
}

func (ProductConverterImpl) ToCatalogEntity(model *CatalogProductModel) (*domain.CatalogProduct, error) {
	var specs map[string]any
	if err := decodeJSONB(model.Specifications, &specs); err != nil {
		return nil, fmt.Errorf("sku %s: specifications: %w", model.SkuID, err)
	}

	return domain.NewCatalogProduct(
		model.SkuID,
		model.ProductName,
		derefString(model.Category),
		derefString(model.Description),
		specs,
	), nil
}

type ProductEmbeddingVersionConverterImpl struct{}

func (ProductEmbeddingVersionConverterImpl) ToEntity(model *ProductEmbeddingVersionModel) *domain.ProductEmbeddingVersion {
	if model == nil {
		return nil
	}

	return &domain.ProductEmbeddingVersion{
		ID:               model.ID,
		Sku:              model.SkuID,
		EmbeddingVersion: model.EmbeddingVersion,
		CreatedAt:        model.CreatedAt,
		UpdatedAt:        model.UpdatedAt,
	}
}

type InteractionLogConverterImpl struct{}

func (InteractionLogConverterImpl) ToModel(entity *domain.InteractionLog) *InteractionLogModel {
	if entity == nil {
		return nil
	}

	return &InteractionLogModel{
		QueryID:          entity.QueryID,
		Query:            entity.Query,
		DetectedLanguage: entity.DetectedLanguage.String(),
		RecommendedSku:   entity.RecommendedSku,
		ConfidenceScore:  entity.Confidence,
		Outcome:          string(entity.Outcome),
		HitCount:         int32(entity.HitCount),
		ResponseTimeMs:   entity.ResponseTimeMs,
		Timestamp:        entity.CreatedAt,
	}
}

type OutboxEventConverterImpl struct{}

func (OutboxEventConverterImpl) ToModel(entity *usecase.OutboxEvent) *OutboxEventModel {
	if entity == nil {
		return nil
	}

	return &OutboxEventModel{
		ID:          entity.ID,
		EventID:     entity.EventID,
		EventType:   entity.EventType,
		AggregateID: entity.AggregateID,
		Payload:     entity.Payload,
		Status:      string(entity.Status),
		CreatedAt:   entity.CreatedAt,
		ProcessedAt: entity.ProcessedAt,
	}
}

func (OutboxEventConverterImpl) ToEntity(model *OutboxEventModel) *usecase.OutboxEvent {
	if model == nil {
		return nil
	}

	return &usecase.OutboxEvent{
		ID:          model.ID,
		EventID:     model.EventID,
		EventType:   model.EventType,
		AggregateID: model.AggregateID,
		Payload:     model.Payload,
		Status:      usecase.OutboxStatus(model.Status),
		CreatedAt:   model.CreatedAt,
		ProcessedAt: model.ProcessedAt,
	}
}

func (c OutboxEventConverterImpl) ToArrEntity(models []*OutboxEventModel) []*usecase.OutboxEvent {
	res := make([]*usecase.OutboxEvent, 0, len(models))
	for _, m := range models {
		res = append(res, c.ToEntity(m))
	}

	return res
}

// decodeJSONB декодирует JSONB-колонку. NULL и пустое значение оставляют dst нетронутым.
func decodeJSONB(raw []byte, dst any) error {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}

	return json.Unmarshal(raw, dst)
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}

	return *s
}
