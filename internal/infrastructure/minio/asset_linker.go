package minio

import (
	"context"
	"strings"

	"github.com/DRSN-tech/recommendation-engine/pkg/logger"
)

const assetScheme = "s3://"

type Presigner interface {
	PresignGet(ctx context.Context, key string) (string, error)
}

// AssetLinker превращает ссылки вида s3://key в подписанные URL MinIO.
// Остальные значения (обычные http ссылки) возвращаются как есть.
type AssetLinker struct {
	presigner Presigner
	bucket    string
	logger    logger.Logger
}

func NewAssetLinker(presigner Presigner, bucket string, logger logger.Logger) *AssetLinker {
	return &AssetLinker{
		presigner: presigner,
		bucket:    bucket,
		logger:    logger,
	}
}

// Resolve при ошибке подписи оставляет исходное значение.
func (a *AssetLinker) Resolve(ctx context.Context, raw string) string {
	const op = "AssetLinker.Resolve"

	key, ok := a.objectKey(raw)
	if !ok {
		return raw
	}

	link, err := a.presigner.PresignGet(ctx, key)
	if err != nil {
		a.logger.Warnf("%s: failed to presign %s: %v", op, key, err)
		return raw
	}

	return link
}

// objectKey достаёт ключ объекта из s3://key или s3://bucket/key.
func (a *AssetLinker) objectKey(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if !strings.HasPrefix(raw, assetScheme) {
		return "", false
	}

	key := strings.TrimPrefix(raw, assetScheme)
	if a.bucket != "" {
		key = strings.TrimPrefix(key, a.bucket+"/")
	}
	key = strings.TrimLeft(key, "/")

	return key, key != ""
}
