package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/nestavo/contracts/backend/config"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Renderer turns processed contract markup into a stored document and returns
// its file URI. The call must respect the context deadline.
type Renderer interface {
	Render(ctx context.Context, contractID string, markup string) (string, error)
}

// MinioRenderer stores rendered contracts as HTML objects in MinIO and hands
// back a presigned URL as the file URI.
type MinioRenderer struct {
	client *minio.Client
	bucket string
	config *config.MinioConfig
}

func NewMinioRenderer(cfg *config.MinioConfig) (*MinioRenderer, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	return &MinioRenderer{
		client: client,
		bucket: cfg.Bucket,
		config: cfg,
	}, nil
}

// EnsureBucket creates the bucket if it doesn't exist
func (r *MinioRenderer) EnsureBucket(ctx context.Context) error {
	exists, err := r.client.BucketExists(ctx, r.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket: %w", err)
	}

	if !exists {
		err = r.client.MakeBucket(ctx, r.bucket, minio.MakeBucketOptions{})
		if err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return nil
}

// Render uploads the processed markup and returns a presigned URL for it.
func (r *MinioRenderer) Render(ctx context.Context, contractID string, markup string) (string, error) {
	objectName := ObjectName(contractID)

	_, err := r.client.PutObject(ctx, r.bucket, objectName, strings.NewReader(markup), int64(len(markup)), minio.PutObjectOptions{
		ContentType: "text/html; charset=utf-8",
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload rendered contract: %w", err)
	}

	expiry := time.Duration(r.config.ExpireDays) * 24 * time.Hour
	url, err := r.client.PresignedGetObject(ctx, r.bucket, objectName, expiry, nil)
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned URL: %w", err)
	}

	return url.String(), nil
}

// ObjectName returns the object key a contract's rendered document is stored under.
func ObjectName(contractID string) string {
	return fmt.Sprintf("contracts/%s/contract.html", contractID)
}

// GetPublicURL returns a public URL for the object (if bucket policy allows)
func (r *MinioRenderer) GetPublicURL(objectName string) string {
	protocol := "http"
	if r.config.UseSSL {
		protocol = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", protocol, r.config.Endpoint, r.bucket, objectName)
}
