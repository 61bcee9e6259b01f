package storage

import (
	"context"
	"errors"
	"fmt"
	"petshop-backend/config"
)

// ErrObjectNotFound 对象不存在
var ErrObjectNotFound = errors.New("object not found")

// ErrInvalidKey 对象键非法，例如试图跳出存储根目录
var ErrInvalidKey = errors.New("invalid object key")

// ObjectStorage 图片等二进制对象的存储
type ObjectStorage interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
}

// New 根据配置选择存储后端
func New(ctx context.Context, cfg config.Config) (ObjectStorage, error) {
	switch cfg.StorageDriver {
	case "", "local":
		return NewLocalStorage(cfg.LocalStoragePath)
	case "s3":
		return NewS3Storage(cfg.S3Region, cfg.S3Bucket)
	case "gcs":
		return NewGCSStorage(ctx, cfg.GCSBucketName, cfg.GCSCredentials)
	default:
		return nil, fmt.Errorf("未知的存储驱动: %s", cfg.StorageDriver)
	}
}
