package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// R2Config holds the Cloudflare R2 bucket credentials.
type R2Config struct {
	AccountID       string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	PublicURL       string
	Region          string
}

type objectClient interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// R2Store uploads images to an R2 bucket through its S3 API and serves
// them from the bucket's public URL.
type R2Store struct {
	client    objectClient
	bucket    string
	publicURL string
}

func NewR2Store(cfg R2Config) *R2Store {
	region := cfg.Region
	if region == "" {
		region = "auto"
	}
	client := s3.New(s3.Options{
		BaseEndpoint: aws.String(fmt.Sprintf("https://%s.r2.cloudflarestorage.com", cfg.AccountID)),
		Credentials: credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		),
		Region: region,
	})
	return &R2Store{client: client, bucket: cfg.BucketName, publicURL: cfg.PublicURL}
}

func (s *R2Store) Save(ctx context.Context, relPath string, data []byte, contentType string) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(relPath),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("put %s: %w", relPath, err)
	}
	return nil
}

func (s *R2Store) Delete(ctx context.Context, relPath string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(relPath),
	})
	if err != nil {
		return fmt.Errorf("delete %s: %w", relPath, err)
	}
	return nil
}

func (s *R2Store) URL(relPath string) string {
	return fmt.Sprintf("%s/%s", strings.TrimRight(s.publicURL, "/"), relPath)
}
