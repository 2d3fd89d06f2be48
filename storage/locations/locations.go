package locations

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"locsplit.dev/locsplit/storage/objstore"
)

// New creates a StorageLocation type from the given path. Returns an
// S3Location if the path is an S3 URI, otherwise returns a local file
// system location.
func New(path string) (StorageLocation, error) {
	if IsS3URI(path) {
		client, err := NewS3Client()
		if err != nil {
			return nil, err
		}
		return NewWithS3Service(path, client)
	}

	return NewLocalDirectory(path), nil
}

// NewWithS3Service is like New but uses the given client for S3 paths.
func NewWithS3Service(path string, client objstore.S3Service) (StorageLocation, error) {
	if IsS3URI(path) {
		return NewS3Location(client, path)
	}
	return NewLocalDirectory(path), nil
}

// OpenS3File opens the object at an s3://bucket/key URI.
func OpenS3File(client objstore.S3Service, uri string) (io.ReadCloser, error) {
	bucketAndKey := strings.TrimPrefix(uri, "s3://")
	bucket, key, ok := strings.Cut(bucketAndKey, "/")
	if !ok || bucket == "" || key == "" {
		return nil, fmt.Errorf("invalid S3 path, must include bucket and key: %s", uri)
	}

	loc, err := NewS3Location(client, "s3://"+bucket)
	if err != nil {
		return nil, err
	}
	return loc.Open(uri)
}

// NewS3Client builds an S3 client from the default AWS configuration chain.
func NewS3Client() (*s3.Client, error) {
	cfg, err := config.LoadDefaultConfig(context.Background())
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}
	return s3.NewFromConfig(cfg), nil
}

func IsS3URI(path string) bool {
	return strings.HasPrefix(path, "s3://")
}
