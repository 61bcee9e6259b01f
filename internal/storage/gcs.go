package storage

import (
	"context"
	"errors"
	"fmt"
	"io"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

type GCSStorage struct {
	client     *storage.Client
	bucketName string
}

func NewGCSStorage(ctx context.Context, bucketName, credentialsFile string) (*GCSStorage, error) {
	if bucketName == "" {
		return nil, errors.New("GCS_BUCKET_NAME 未设置")
	}
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, err
	}

	return &GCSStorage{
		client:     client,
		bucketName: bucketName,
	}, nil
}

func (c *GCSStorage) Put(ctx context.Context, key string, data []byte, contentType string) error {
	writer := c.client.Bucket(c.bucketName).Object(key).NewWriter(ctx)
	writer.ContentType = contentType

	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("上传到GCS失败: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("上传到GCS失败: %w", err)
	}
	return nil
}

func (c *GCSStorage) Get(ctx context.Context, key string) ([]byte, error) {
	reader, err := c.client.Bucket(c.bucketName).Object(key).NewReader(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return nil, ErrObjectNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("从GCS读取失败: %w", err)
	}
	defer reader.Close()
	return io.ReadAll(reader)
}

func (c *GCSStorage) Delete(ctx context.Context, key string) error {
	err := c.client.Bucket(c.bucketName).Object(key).Delete(ctx)
	if err != nil && !errors.Is(err, storage.ErrObjectNotExist) {
		return fmt.Errorf("从GCS删除失败: %w", err)
	}
	return nil
}
