package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/filedger/libfiledger-go/digest"
)

// S3Config holds connection parameters for an S3-compatible object
// store (MinIO, Garage, AWS S3).
type S3Config struct {
	Region    string `json:"region"`
	Endpoint  string `json:"endpoint"` // empty = AWS default endpoint
	AccessKey string `json:"access_key"`
	SecretKey string `json:"secret_key"`
	Bucket    string `json:"bucket"`
}

// S3Store implements Store over an S3-compatible bucket. Objects are
// keyed by the SHA256 digest of their content, which makes inserts
// idempotent and identifiers reproducible — the content-addressing
// contract the engine depends on.
type S3Store struct {
	client *s3.Client
	bucket string
}

// NewS3Store creates a content-addressed store backed by the bucket in cfg.
func NewS3Store(ctx context.Context, cfg S3Config) (*S3Store, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("storage: s3 bucket is required")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey, cfg.SecretKey, "",
		)))
	if err != nil {
		return nil, fmt.Errorf("storage: load s3 config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true // MinIO-style addressing
		}
	})

	return &S3Store{client: client, bucket: cfg.Bucket}, nil
}

// Insert stores data under its digest and returns the digest as the
// content identifier. If an object with that key already exists the
// upload is skipped — the content is already there by definition.
func (s *S3Store) Insert(ctx context.Context, data []byte) (string, error) {
	if len(data) == 0 {
		return "", ErrEmptyContent
	}

	key := digest.Sum(data)

	_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err == nil {
		return key, nil
	}
	var notFound *types.NotFound
	if !errors.As(err, &notFound) {
		return "", fmt.Errorf("%w: head object: %w", ErrUnavailable, err)
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(data),
	})
	if err != nil {
		return "", fmt.Errorf("%w: put object: %w", ErrUnavailable, err)
	}

	return key, nil
}
