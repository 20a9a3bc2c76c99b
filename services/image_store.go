package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/mack-digital/mack-site/backend/admin"
	"github.com/mack-digital/mack-site/backend/config"
)

// S3ImageStore uploads cropped project images to an S3 bucket and hands back
// their public URL.
type S3ImageStore struct {
	client  *s3.Client
	bucket  string
	baseURL string
}

func NewS3ImageStore(ctx context.Context, bucket, baseURL string) (*S3ImageStore, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", bucket, awsCfg.Region)
	}
	return &S3ImageStore{
		client:  s3.NewFromConfig(awsCfg),
		bucket:  bucket,
		baseURL: baseURL,
	}, nil
}

func (s *S3ImageStore) Store(ctx context.Context, jpegData []byte) (string, error) {
	key := fmt.Sprintf("projects/%s.jpg", uuid.NewString())
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(jpegData),
		ContentType: aws.String("image/jpeg"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}
	return s.baseURL + "/" + key, nil
}

// DataURLImageStore inlines images as base64 data URLs, matching the
// original canvas export. It is the fallback when no bucket is configured.
type DataURLImageStore struct{}

func (DataURLImageStore) Store(_ context.Context, jpegData []byte) (string, error) {
	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(jpegData), nil
}

// NewImageStore picks the image backend from configuration: S3 when
// IMAGE_BUCKET is set, inline data URLs otherwise.
func NewImageStore(ctx context.Context, cfg map[string]string) admin.ImageStore {
	bucket := config.GetString(cfg, "IMAGE_BUCKET", "")
	if bucket == "" {
		return DataURLImageStore{}
	}
	s3Store, err := NewS3ImageStore(ctx, bucket, config.GetString(cfg, "IMAGE_BASE_URL", ""))
	if err != nil {
		log.Warn().Err(err).Msg("S3 image store unavailable, falling back to inline images")
		return DataURLImageStore{}
	}
	return s3Store
}
