package storage

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"strings"

	appconfig "bersih-backend/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Uploader stores photo bytes and returns a durable, publicly fetchable
// URL. The report service also deletes objects to roll back a partially
// uploaded photo set.
type Uploader interface {
	Upload(ctx context.Context, data []byte, contentType, name string) (string, error)
	Delete(ctx context.Context, url string) error
}

// S3Storage uploads report photos to an S3-compatible bucket (Cloudflare R2).
type S3Storage struct {
	client  *s3.Client
	bucket  string
	baseURL string
}

func NewS3Storage(ctx context.Context, cfg *appconfig.Config) (*S3Storage, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.Storage.AccessKey,
			cfg.Storage.SecretKey,
			"",
		)),
		awsconfig.WithRegion(cfg.Storage.Region),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to configure storage client: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.Storage.Endpoint)
	})

	return &S3Storage{
		client:  client,
		bucket:  cfg.Storage.Bucket,
		baseURL: strings.TrimSuffix(cfg.Storage.PublicBaseURL, "/"),
	}, nil
}

// Upload puts an object and returns its public URL
func (s *S3Storage) Upload(ctx context.Context, data []byte, contentType, name string) (string, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(name),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("upload failed: %w", err)
	}
	return fmt.Sprintf("%s/%s", s.baseURL, name), nil
}

// Delete removes an object by its public URL. Used to roll back partial
// photo sets; failures are logged, not propagated.
func (s *S3Storage) Delete(ctx context.Context, url string) error {
	key := strings.TrimPrefix(url, s.baseURL+"/")
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		log.Printf("[Storage] delete %s failed: %v", key, err)
	}
	return err
}
