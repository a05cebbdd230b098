package storage

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/honeynil/employer-dashboard/internal/config"
	"github.com/honeynil/employer-dashboard/internal/models"
)

// ObjectStorage stores uploaded media and reports where it can be fetched.
type ObjectStorage interface {
	Upload(ctx context.Context, key, contentType string, body io.ReadSeeker, size int64) (*models.UploadResult, error)
	Delete(ctx context.Context, key string) error
}

type S3Storage struct {
	client    s3iface.S3API
	bucket    string
	publicURL string
}

func NewS3Storage(cfg *config.Config) (*S3Storage, error) {
	awsConfig := &aws.Config{
		Region: aws.String(cfg.S3Region),
	}
	if cfg.S3AccessKey != "" {
		awsConfig.Credentials = credentials.NewStaticCredentials(cfg.S3AccessKey, cfg.S3SecretKey, "")
	}
	// MinIO and other S3-compatible stores need path-style addressing.
	if cfg.S3Endpoint != "" {
		awsConfig.Endpoint = aws.String(cfg.S3Endpoint)
		awsConfig.S3ForcePathStyle = aws.Bool(true)
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	publicURL := cfg.S3PublicURL
	if publicURL == "" {
		if cfg.S3Endpoint != "" {
			publicURL = strings.TrimSuffix(cfg.S3Endpoint, "/") + "/" + cfg.S3Bucket
		} else {
			publicURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.S3Bucket, cfg.S3Region)
		}
	}

	slog.Info("object storage configured", "bucket", cfg.S3Bucket, "endpoint", cfg.S3Endpoint)
	return NewS3StorageWithClient(s3.New(sess), cfg.S3Bucket, publicURL), nil
}

func NewS3StorageWithClient(client s3iface.S3API, bucket, publicURL string) *S3Storage {
	return &S3Storage{client: client, bucket: bucket, publicURL: strings.TrimSuffix(publicURL, "/")}
}

func (s *S3Storage) Upload(ctx context.Context, key, contentType string, body io.ReadSeeker, size int64) (*models.UploadResult, error) {
	_, err := s.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          body,
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(size),
		CacheControl:  aws.String("public, max-age=31536000, immutable"),
	})
	if err != nil {
		slog.Error("failed to upload object", "key", key, "error", err)
		return nil, fmt.Errorf("failed to upload file to S3: %w", err)
	}

	return &models.UploadResult{
		SecureURL: s.publicURL + "/" + key,
		PublicID:  key,
		Bytes:     size,
		Format:    strings.TrimPrefix(path.Ext(key), "."),
	}, nil
}

func (s *S3Storage) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete file from S3: %w", err)
	}
	return nil
}
