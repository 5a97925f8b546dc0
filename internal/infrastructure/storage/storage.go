// Package storage provides object storage implementations using MinIO S3.
package storage

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"net/http"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/rs/zerolog/log"

	"github.com/mutugading/catalog-service/internal/domain/shared"
	"github.com/mutugading/catalog-service/internal/infrastructure/config"
)

// MinIOStorage implements shared.ObjectStorage using a MinIO S3 client.
type MinIOStorage struct {
	client    *minio.Client
	bucket    string
	publicURL string
}

var _ shared.ObjectStorage = (*MinIOStorage)(nil)

// NewMinIOStorage creates a new MinIO storage client and ensures the
// bucket exists.
func NewMinIOStorage(cfg *config.StorageConfig) (*MinIOStorage, error) {
	opts := &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	}

	// Support self-signed TLS certificates.
	if cfg.UseSSL && cfg.InsecureSkipVerify {
		opts.Transport = &http.Transport{
			TLSClientConfig: &tls.Config{
				InsecureSkipVerify: true, //nolint:gosec // user explicitly opted-in for self-signed certs
			},
		}
	}

	client, err := minio.New(cfg.Endpoint, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	s := &MinIOStorage{
		client:    client,
		bucket:    cfg.Bucket,
		publicURL: strings.TrimRight(cfg.PublicURL, "/"),
	}

	if err := s.ensureBucket(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to ensure bucket: %w", err)
	}

	log.Info().
		Str("endpoint", cfg.Endpoint).
		Str("bucket", cfg.Bucket).
		Bool("ssl", cfg.UseSSL).
		Msg("MinIO storage initialized")

	return s, nil
}

// ensureBucket creates the bucket if it doesn't exist and sets a public
// read policy so catalog images are servable without signed URLs.
func (s *MinIOStorage) ensureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if exists {
		return nil
	}

	if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create bucket: %w", err)
	}

	policy := fmt.Sprintf(`{
		"Version": "2012-10-17",
		"Statement": [{
			"Effect": "Allow",
			"Principal": {"AWS": ["*"]},
			"Action": ["s3:GetObject"],
			"Resource": ["arn:aws:s3:::%s/*"]
		}]
	}`, s.bucket)

	if err := s.client.SetBucketPolicy(ctx, s.bucket, policy); err != nil {
		log.Warn().Err(err).Str("bucket", s.bucket).Msg("failed to set public read policy on bucket")
	}

	log.Info().Str("bucket", s.bucket).Msg("bucket created with public read policy")
	return nil
}

// Upload stores data under the given key.
func (s *MinIOStorage) Upload(ctx context.Context, key string, data []byte, contentType string) error {
	_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("failed to upload object %s: %w", key, err)
	}

	log.Debug().Str("object", key).Int("size", len(data)).Msg("object uploaded")
	return nil
}

// Delete removes an object by key. Deleting a missing key is not an error,
// so cleanup passes can retry safely.
func (s *MinIOStorage) Delete(ctx context.Context, key string) error {
	if key == "" {
		return nil
	}

	err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to delete object %s: %w", key, err)
	}

	log.Debug().Str("object", key).Msg("object deleted from storage")
	return nil
}

// BuildKey generates a collision-resistant object key. The original
// filename contributes only its extension; everything else is replaced
// with a fresh UUID. Example: "categories/5f4c...e2.png".
func (s *MinIOStorage) BuildKey(folder, filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	return fmt.Sprintf("%s/%s%s", strings.Trim(folder, "/"), uuid.New().String(), ext)
}

// PublicURL returns the public URL for an object key.
func (s *MinIOStorage) PublicURL(key string) string {
	if key == "" {
		return ""
	}
	if s.publicURL != "" {
		return fmt.Sprintf("%s/%s/%s", s.publicURL, s.bucket, key)
	}
	return fmt.Sprintf("%s/%s/%s", s.client.EndpointURL().String(), s.bucket, key)
}
