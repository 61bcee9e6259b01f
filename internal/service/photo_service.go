package service

import (
	"context"
	"encoding/base64"
	stderrors "errors"
	"net/http"
	"petshop-backend/internal/errors"
	"petshop-backend/internal/storage"
	"petshop-backend/internal/util"
	"strings"

	"go.uber.org/zap"
)

const maxPhotoBytes = 5 * 1024 * 1024

var photoExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

type PhotoServiceInterface interface {
	Save(ctx context.Context, encoded string) (string, error)
	LoadDataURI(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string)
}

// PhotoService 保存 base64 图片并以 data URI 形式读回
type PhotoService struct {
	store  storage.ObjectStorage
	prefix string
}

func NewPhotoService(store storage.ObjectStorage, prefix string) *PhotoService {
	return &PhotoService{store: store, prefix: prefix}
}

var _ PhotoServiceInterface = (*PhotoService)(nil)

// Save 接受纯 base64 或 data URI，返回对象键
func (s *PhotoService) Save(ctx context.Context, encoded string) (string, error) {
	encoded = strings.TrimSpace(encoded)
	if strings.HasPrefix(encoded, "data:") {
		comma := strings.IndexByte(encoded, ',')
		if comma < 0 {
			return "", errors.New(errors.ErrInvalidPhoto, "Invalid image data")
		}
		encoded = encoded[comma+1:]
	}
	if encoded == "" {
		return "", errors.New(errors.ErrInvalidPhoto, "Image data is empty")
	}
	if base64.StdEncoding.DecodedLen(len(encoded)) > maxPhotoBytes+3 {
		return "", errors.New(errors.ErrInvalidPhoto, "Image exceeds the 5MB limit")
	}

	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", errors.Wrap(errors.ErrInvalidPhoto, "Invalid image data", err)
	}
	if len(data) > maxPhotoBytes {
		return "", errors.New(errors.ErrInvalidPhoto, "Image exceeds the 5MB limit")
	}

	mime := http.DetectContentType(data)
	ext, ok := photoExtensions[mime]
	if !ok {
		return "", errors.New(errors.ErrInvalidPhoto, "Unsupported image type, allowed: jpg, jpeg, png, webp")
	}

	key := util.GenerateObjectKey(s.prefix, ext)
	if err := s.store.Put(ctx, key, data, mime); err != nil {
		util.Logger.Error("保存图片失败", zap.Error(err), zap.String("key", key))
		return "", errors.Wrap(errors.ErrStorage, "failed to store photo", err)
	}
	return key, nil
}

func (s *PhotoService) LoadDataURI(ctx context.Context, key string) (string, error) {
	data, err := s.store.Get(ctx, key)
	if stderrors.Is(err, storage.ErrObjectNotFound) {
		return "", errors.NotFound("Photo not found")
	}
	if err != nil {
		return "", errors.Wrap(errors.ErrStorage, "failed to load photo", err)
	}
	return "data:" + http.DetectContentType(data) + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

// Delete 尽力删除，失败只记录日志
func (s *PhotoService) Delete(ctx context.Context, key string) {
	if key == "" {
		return
	}
	if err := s.store.Delete(ctx, key); err != nil {
		util.Logger.Warn("删除旧图片失败", zap.Error(err), zap.String("key", key))
	}
}

// inlinePhoto 读取失败时返回空字符串
func inlinePhoto(ctx context.Context, photos PhotoServiceInterface, key *string) string {
	if key == nil || *key == "" || photos == nil {
		return ""
	}
	uri, err := photos.LoadDataURI(ctx, *key)
	if err != nil {
		util.Logger.Warn("读取图片失败", zap.Error(err), zap.String("key", *key))
		return ""
	}
	return uri
}
