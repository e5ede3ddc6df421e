package s3

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/SubhamSahu809/ProRental/internal/domain"
	"github.com/SubhamSahu809/ProRental/internal/platform/logger"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

// MaxFileSize is the per-file upload limit.
const MaxFileSize = 5 << 20 // 5 MiB

// objectFolder namespaces property photos inside the bucket.
const objectFolder = "properties"

// allowedImageTypes maps the accepted extensions and content types.
// A file passes when either its extension or its declared content
// type matches; that leniency is inherited from the original system.
var allowedImageTypes = map[string]bool{
	"jpeg": true,
	"jpg":  true,
	"png":  true,
	"gif":  true,
	"webp": true,
}

// Storage implements domain.ImageStorage against a MinIO/S3 bucket.
type Storage struct {
	client *minio.Client
	bucket string
	logger *logger.Logger
}

// NewStorage creates the MinIO client and ensures the bucket exists.
func NewStorage(endpoint, accessKey, secretKey, bucket string, useSSL bool, log *logger.Logger) (*Storage, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client for endpoint %s: %w", endpoint, err)
	}

	if err := client.MakeBucket(context.Background(), bucket, minio.MakeBucketOptions{}); err != nil {
		exists, existsErr := client.BucketExists(context.Background(), bucket)
		if existsErr != nil || !exists {
			return nil, fmt.Errorf("failed to make/verify bucket %s: (make: %v / exists_check: %v)", bucket, err, existsErr)
		}
	}

	return &Storage{
		client: client,
		bucket: bucket,
		logger: log.Named("S3Storage"),
	}, nil
}

// validate checks one file against the upload constraints without
// touching the network.
func validate(file domain.UploadFile) error {
	if file.Size > MaxFileSize {
		return fmt.Errorf("%w: %q is %d bytes, limit is %d", domain.ErrFileTooLarge, file.OriginalName, file.Size, MaxFileSize)
	}

	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(file.OriginalName)), ".")
	ctype := strings.ToLower(strings.TrimPrefix(file.ContentType, "image/"))
	if !allowedImageTypes[ext] && !allowedImageTypes[ctype] {
		return fmt.Errorf("%w: %q (%s)", domain.ErrUnsupportedFileType, file.OriginalName, file.ContentType)
	}
	return nil
}

// UploadBatch validates every file up front, then uploads them in
// input order. Any failure aborts the batch; already-uploaded objects
// from the same batch are left for the caller's compensation logic.
func (s *Storage) UploadBatch(ctx context.Context, files []domain.UploadFile) ([]domain.Image, error) {
	if len(files) > domain.MaxListingImages {
		return nil, fmt.Errorf("%w: got %d files, maximum is %d", domain.ErrTooManyFiles, len(files), domain.MaxListingImages)
	}
	for _, file := range files {
		if err := validate(file); err != nil {
			return nil, err
		}
	}

	images := make([]domain.Image, 0, len(files))
	for _, file := range files {
		ext := strings.ToLower(filepath.Ext(file.OriginalName))
		objectKey := fmt.Sprintf("%s/%s%s", objectFolder, uuid.New().String(), ext)

		opts := minio.PutObjectOptions{ContentType: file.ContentType}
		info, err := s.client.PutObject(ctx, s.bucket, objectKey, bytes.NewReader(file.Data), int64(len(file.Data)), opts)
		if err != nil {
			s.logger.Error("PutObject failed",
				zap.String("bucket", s.bucket),
				zap.String("key", objectKey),
				zap.Error(err))
			return images, fmt.Errorf("%w: upload %q: %v", domain.ErrStorageUnavailable, file.OriginalName, err)
		}

		url := fmt.Sprintf("%s/%s/%s", s.client.EndpointURL().String(), s.bucket, objectKey)
		images = append(images, domain.Image{
			URL:          url,
			Filename:     objectKey,
			OriginalName: file.OriginalName,
		})

		s.logger.Debug("File uploaded",
			zap.String("key", info.Key),
			zap.String("original_filename", file.OriginalName),
			zap.Int64("size_bytes", info.Size))
	}

	return images, nil
}

// Delete removes an object by its key. Removing an absent object is
// not an error.
func (s *Storage) Delete(ctx context.Context, filename string) error {
	if filename == "" {
		return nil
	}
	if err := s.client.RemoveObject(ctx, s.bucket, filename, minio.RemoveObjectOptions{}); err != nil {
		resp := minio.ToErrorResponse(err)
		if resp.Code == "NoSuchKey" {
			return nil
		}
		s.logger.Error("RemoveObject failed", zap.String("key", filename), zap.Error(err))
		return fmt.Errorf("%w: delete %q: %v", domain.ErrStorageUnavailable, filename, err)
	}
	return nil
}
