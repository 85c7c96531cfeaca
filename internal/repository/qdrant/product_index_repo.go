package qdrant

import (
	"context"
	"fmt"

	"github.com/DRSN-tech/recommendation-engine/internal/cfg"
	"github.com/DRSN-tech/recommendation-engine/internal/domain"
	"github.com/DRSN-tech/recommendation-engine/pkg/e"
	"github.com/google/uuid"
	"github.com/jimlawless/whereami"
	"github.com/qdrant/go-client/qdrant"
)

// skuNamespace: пространство имён UUIDv5 для идентификаторов точек.
var skuNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("urn:recommendation-engine:product-sku"))

// API: методы клиента Qdrant, которые использует репозиторий.
type API interface {
	CollectionExists(ctx context.Context, collectionName string) (bool, error)
	GetCollectionInfo(ctx context.Context, collectionName string) (*qdrant.CollectionInfo, error)
	CreateCollection(ctx context.Context, request *qdrant.CreateCollection) error
	Upsert(ctx context.Context, request *qdrant.UpsertPoints) (*qdrant.UpdateResult, error)
	Query(ctx context.Context, request *qdrant.QueryPoints) ([]*qdrant.ScoredPoint, error)
}

// ProductIndexRepo хранит векторы товаров в коллекции Qdrant с косинусной метрикой.
type ProductIndexRepo struct {
	client API
	cfg    *cfg.QdrantCfg
}

func NewProductIndexRepo(client API, cfg *cfg.QdrantCfg) *ProductIndexRepo {
	return &ProductIndexRepo{
		client: client,
		cfg:    cfg,
	}
}

// PointID детерминированно выводит идентификатор точки из sku, чтобы переиндексация перезаписывала точку.
func PointID(sku string) string {
	return uuid.NewSHA1(skuNamespace, []byte(sku)).String()
}

// CreateCollection создаёт коллекцию или проверяет размерность существующей.
func (q *ProductIndexRepo) CreateCollection(ctx context.Context, dimension uint64) error {
	exists, err := q.client.CollectionExists(ctx, q.cfg.CollectionName)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if !exists {
		err := q.client.CreateCollection(ctx, &qdrant.CreateCollection{
			CollectionName: q.cfg.CollectionName,
			VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
				Size:     dimension,
				Distance: qdrant.Distance_Cosine,
			}),
		})
		if err != nil {
			return e.Wrap(whereami.WhereAmI(), err)
		}

		return nil
	}

	info, err := q.client.GetCollectionInfo(ctx, q.cfg.CollectionName)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	params := info.GetConfig().GetParams().GetVectorsConfig().GetParams()
	if params == nil {
		return e.Wrap(whereami.WhereAmI(), e.ErrCollectionNotReady)
	}

	if params.GetSize() != dimension {
		return e.Wrap(
			fmt.Sprintf("%s: collection %q has %d, embedder has %d", whereami.WhereAmI(), q.cfg.CollectionName, params.GetSize(), dimension),
			e.ErrDimensionMismatch,
		)
	}

	return nil
}

// Insert сохраняет точки и ждёт подтверждения записи.
func (q *ProductIndexRepo) Insert(ctx context.Context, records []domain.IndexRecord, vectors [][]float32) error {
	if len(records) != len(vectors) {
		return e.Wrap(whereami.WhereAmI(), e.ErrRecordsVectorsMismatch)
	}

	if len(records) == 0 {
		return nil
	}

	points := make([]*qdrant.PointStruct, 0, len(records))
	for i, rec := range records {
		if len(vectors[i]) == 0 {
			return e.Wrap(whereami.WhereAmI(), e.ErrEmptyVectors)
		}

		points = append(points, &qdrant.PointStruct{
			Id:      qdrant.NewIDUUID(PointID(rec.Sku)),
			Vectors: qdrant.NewVectors(vectors[i]...),
			Payload: qdrant.NewValueMap(rec.Payload()),
		})
	}

	_, err := q.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: q.cfg.CollectionName,
		Wait:           qdrant.PtrOf(true),
		Points:         points,
	})
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// Search возвращает ближайших соседей. Score равен косинусному сходству: чем больше, тем ближе.
func (q *ProductIndexRepo) Search(ctx context.Context, vector []float32, limit int) ([]domain.RetrievalHit, error) {
	if limit <= 0 {
		return []domain.RetrievalHit{}, nil
	}

	points, err := q.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: q.cfg.CollectionName,
		Query:          qdrant.NewQuery(vector...),
		Limit:          qdrant.PtrOf(uint64(limit)),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	hits := make([]domain.RetrievalHit, 0, len(points))
	for _, p := range points {
		payload := p.GetPayload()
		sku := payload["sku"].GetStringValue()

		// точки без product_id записаны до его появления в payload
		productID := payload["product_id"].GetStringValue()
		if productID == "" {
			productID = sku
		}

		hits = append(hits, domain.NewRetrievalHit(
			productID,
			sku,
			payload["name"].GetStringValue(),
			payload["category"].GetStringValue(),
			p.GetScore(),
		))
	}

	return hits, nil
}
