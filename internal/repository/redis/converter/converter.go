package converter

import "github.com/DRSN-tech/recommendation-engine/internal/domain"

type MetadataConverter interface {
	ToRedisModel(entity *domain.MetadataRecord) *MetadataRedisModel
	ToEntity(model *MetadataRedisModel) *domain.MetadataRecord
	ToArrRedisModel(entities []domain.MetadataRecord) []MetadataRedisModel
}

type MetadataConverterImpl struct{}

func (c MetadataConverterImpl) ToRedisModel(entity *domain.MetadataRecord) *MetadataRedisModel {
	if entity == nil {
		return nil
	}

	return &MetadataRedisModel{
		Sku:               entity.Sku,
		Specifications:    entity.Specifications,
		Images:            entity.Images,
		TechnicalDrawings: toDocumentModels(entity.TechnicalDrawings),
		Documents:         toDocumentModels(entity.Documents),
		DatasheetURL:      entity.DatasheetURL,
	}
}

func (c MetadataConverterImpl) ToEntity(model *MetadataRedisModel) *domain.MetadataRecord {
	if model == nil {
		return nil
	}

	return &domain.MetadataRecord{
		Sku:               model.Sku,
		Specifications:    model.Specifications,
		Images:            model.Images,
		TechnicalDrawings: toDocuments(model.TechnicalDrawings),
		Documents:         toDocuments(model.Documents),
		DatasheetURL:      model.DatasheetURL,
	}
}

func (c MetadataConverterImpl) ToArrRedisModel(entities []domain.MetadataRecord) []MetadataRedisModel {
	res := make([]MetadataRedisModel, 0, len(entities))
	for i := range entities {
		res = append(res, *c.ToRedisModel(&entities[i]))
	}

	return res
}

func toDocumentModels(docs []domain.Document) []DocumentRedisModel {
	if docs == nil {
		return nil
	}

	res := make([]DocumentRedisModel, len(docs))
	for i, d := range docs {
		res[i] = DocumentRedisModel(d)
	}

	return res
}

func toDocuments(models []DocumentRedisModel) []domain.Document {
	if models == nil {
		return nil
	}

	res := make([]domain.Document, len(models))
	for i, m := range models {
		res[i] = domain.Document(m)
	}

	return res
}
