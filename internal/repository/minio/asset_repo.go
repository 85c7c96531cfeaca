package minio

import (
	"context"
	"net/url"

	"github.com/DRSN-tech/recommendation-engine/internal/cfg"
	"github.com/DRSN-tech/recommendation-engine/pkg/e"
	"github.com/jimlawless/whereami"
	"github.com/minio/minio-go/v7"
)

// AssetRepo выдаёт подписанные ссылки на файлы товаров в MinIO.
type AssetRepo struct {
	mc  *minio.Client
	cfg *cfg.MinIOCfg
}

func NewAssetRepo(mc *minio.Client, cfg *cfg.MinIOCfg) *AssetRepo {
	return &AssetRepo{
		mc:  mc,
		cfg: cfg,
	}
}

// PresignGet возвращает временную ссылку на объект бакета.
func (a *AssetRepo) PresignGet(ctx context.Context, key string) (string, error) {
	u, err := a.mc.PresignedGetObject(ctx, a.cfg.BucketName, key, a.cfg.PresignTTL, url.Values{})
	if err != nil {
		return "", e.Wrap(whereami.WhereAmI(), err)
	}

	return u.String(), nil
}
