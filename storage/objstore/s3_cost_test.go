package objstore_test

import (
	"bytes"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"locsplit.dev/locsplit/storage/objstore"
)

func TestAddingRequests(t *testing.T) {
	usage := objstore.S3Usage{}
	for range 1_000 {
		usage.AddCheapRequest()
	}

	assert.Equal(t, "$0.0004", usage.TotalCost())

	usage = objstore.S3Usage{}
	for range 1_000_000 {
		usage.AddCheapRequest()
	}
	assert.Equal(t, "$0.40", usage.TotalCost())

	usage = objstore.S3Usage{}
	usage.AddCheapRequest()
	assert.Equal(t, "$0.0000", usage.TotalCost())

	usage = objstore.S3Usage{}
	for range 1_000 {
		usage.AddExpensiveRequest()
	}
	assert.Equal(t, "$0.0050", usage.TotalCost())
}

func TestMeteredS3Service_CountsRequests(t *testing.T) {
	svc := objstore.NewMeteredS3Service(objstore.NewMemoryS3Service())

	_, err := svc.PutObject(t.Context(), &s3.PutObjectInput{
		Bucket: aws.String("bucket"),
		Key:    aws.String("2013-04.kml"),
		Body:   bytes.NewReader([]byte("<kml/>")),
	})
	require.NoError(t, err)

	_, err = svc.GetObject(t.Context(), &s3.GetObjectInput{
		Bucket: aws.String("bucket"),
		Key:    aws.String("2013-04.kml"),
	})
	require.NoError(t, err)

	_, err = svc.HeadObject(t.Context(), &s3.HeadObjectInput{
		Bucket: aws.String("bucket"),
		Key:    aws.String("missing.kml"),
	})
	assert.Error(t, err, "missing keys are reported by HEAD")

	assert.Equal(t, 3, svc.Usage.Requests())
}
