package imagestore

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3 stores objects in a bucket. Credentials come from the default AWS chain.
type S3 struct {
	client    *s3.Client
	bucket    string
	prefix    string
	region    string
	publicURL string
}

// S3Config configures the S3 backend. PublicURL (e.g. a CDN origin) is
// optional; without it the bucket's virtual-hosted URL is used.
type S3Config struct {
	Region    string
	Bucket    string
	Prefix    string
	PublicURL string
}

// NewS3 loads AWS configuration and builds the client.
func NewS3(ctx context.Context, cfg S3Config) (*S3, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return &S3{
		client:    s3.NewFromConfig(awsCfg),
		bucket:    cfg.Bucket,
		prefix:    cfg.Prefix,
		region:    cfg.Region,
		publicURL: cfg.PublicURL,
	}, nil
}

// Save implements Store.
func (s *S3) Save(ctx context.Context, key, contentType string, r io.Reader) (string, error) {
	fullKey := s.objectKey(key)
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(fullKey),
		Body:        r,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("put object: %w", err)
	}
	return s.url(fullKey), nil
}

func (s *S3) objectKey(key string) string {
	if s.prefix == "" {
		return key
	}
	return joinURL(s.prefix, key)
}

func (s *S3) url(fullKey string) string {
	if s.publicURL != "" {
		return joinURL(s.publicURL, fullKey)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, fullKey)
}
