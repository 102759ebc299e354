package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewS3StoreRequiresBucket(t *testing.T) {
	_, err := NewS3Store(context.Background(), S3Config{
		Region:    "us-east-1",
		AccessKey: "minio",
		SecretKey: "minio123",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bucket")
}

func TestNewS3StoreWithEndpoint(t *testing.T) {
	store, err := NewS3Store(context.Background(), S3Config{
		Region:    "us-east-1",
		Endpoint:  "http://localhost:9000",
		AccessKey: "minio",
		SecretKey: "minio123",
		Bucket:    "filedger",
	})
	require.NoError(t, err)
	assert.Equal(t, "filedger", store.bucket)
}

func TestS3StoreInsertEmpty(t *testing.T) {
	store, err := NewS3Store(context.Background(), S3Config{
		Region: "us-east-1", AccessKey: "a", SecretKey: "b", Bucket: "c",
	})
	require.NoError(t, err)

	_, err = store.Insert(context.Background(), nil)
	assert.ErrorIs(t, err, ErrEmptyContent)
}
