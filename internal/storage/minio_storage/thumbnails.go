package minio_storage

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/url"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
)

// ThumbnailStorage keeps course and lesson thumbnails in a single bucket
// under entity-scoped object keys.
type ThumbnailStorage struct {
	storage      *MinioStorage
	bucket       string
	presignedTTL time.Duration
}

func NewThumbnailStorage(storage *MinioStorage, bucketName string, presignedTTL time.Duration) (*ThumbnailStorage, error) {
	exists, err := storage.client.BucketExists(context.Background(), bucketName)
	if err != nil {
		return nil, err
	}
	if !exists {
		if err = storage.client.MakeBucket(context.Background(), bucketName, minio.MakeBucketOptions{}); err != nil {
			return nil, err
		}
	}
	return &ThumbnailStorage{storage: storage, bucket: bucketName, presignedTTL: presignedTTL}, nil
}

func (s *ThumbnailStorage) upload(ctx context.Context, objectKey, filename string, reader io.Reader, size int64, contentType string) (string, error) {
	if contentType == "" {
		contentType = mime.TypeByExtension(filepath.Ext(filename))
		if contentType == "" {
			contentType = "application/octet-stream"
		}
	}

	_, err := s.storage.client.PutObject(
		ctx,
		s.bucket,
		objectKey,
		reader,
		size,
		minio.PutObjectOptions{ContentType: contentType},
	)
	if err != nil {
		return "", err
	}
	return objectKey, nil
}

func (s *ThumbnailStorage) UploadCourseThumbnail(ctx context.Context, courseID uuid.UUID, filename string, reader io.Reader, size int64, contentType string) (string, error) {
	ext := filepath.Ext(filename)
	if ext == "" {
		ext = ".bin"
	}
	objectKey := fmt.Sprintf("courses/%s/thumbnail%s", courseID.String(), ext)
	return s.upload(ctx, objectKey, filename, reader, size, contentType)
}

func (s *ThumbnailStorage) UploadLessonThumbnail(ctx context.Context, lessonID uuid.UUID, filename string, reader io.Reader, size int64, contentType string) (string, error) {
	ext := filepath.Ext(filename)
	if ext == "" {
		ext = ".bin"
	}
	objectKey := fmt.Sprintf("lessons/%s/thumbnail%s", lessonID.String(), ext)
	return s.upload(ctx, objectKey, filename, reader, size, contentType)
}

func (s *ThumbnailStorage) ThumbnailURL(ctx context.Context, objectKey string) (string, error) {
	reqParams := make(url.Values)
	presignedURL, err := s.storage.client.PresignedGetObject(
		ctx,
		s.bucket,
		objectKey,
		s.presignedTTL,
		reqParams,
	)
	if err != nil {
		return "", err
	}
	return presignedURL.String(), nil
}

func (s *ThumbnailStorage) DeleteThumbnail(ctx context.Context, objectKey string) error {
	return s.storage.client.RemoveObject(ctx, s.bucket, objectKey, minio.RemoveObjectOptions{})
}
