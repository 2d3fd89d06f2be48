package objstore

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Usage keeps track of the number of cheap and expensive requests
type S3Usage struct {
	cheapRequests     int
	expensiveRequests int
}

// Cost per 1,000 requests in microdollars (1 dollar = 1,000,000 microdollars)
const (
	cheapCostPerThousand     = 400   // GET, HEAD
	expensiveCostPerThousand = 5_000 // PUT
)

func (s *S3Usage) AddCheapRequest() {
	s.cheapRequests++
}

func (s *S3Usage) AddExpensiveRequest() {
	s.expensiveRequests++
}

// Requests returns the number of requests made so far.
func (s *S3Usage) Requests() int {
	return s.cheapRequests + s.expensiveRequests
}

// TotalCost calculates the total cost and returns it formatted as USD.
func (s *S3Usage) TotalCost() string {
	cheapCost := (s.cheapRequests * cheapCostPerThousand) / 1000
	expensiveCost := (s.expensiveRequests * expensiveCostPerThousand) / 1000
	totalMicrodollars := cheapCost + expensiveCost

	dollars := totalMicrodollars / 1_000_000
	cents := (totalMicrodollars % 1_000_000) / 10_000
	remainderMicrodollars := (totalMicrodollars % 10_000) / 100

	if dollars > 0 || cents > 0 {
		return fmt.Sprintf("$%d.%02d", dollars, cents)
	}
	return fmt.Sprintf("$0.%04d", remainderMicrodollars)
}

// MeteredS3Service counts every request made through the wrapped service.
type MeteredS3Service struct {
	S3Service
	Usage *S3Usage
}

func NewMeteredS3Service(svc S3Service) *MeteredS3Service {
	return &MeteredS3Service{S3Service: svc, Usage: &S3Usage{}}
}

func (m *MeteredS3Service) GetObject(ctx context.Context, input *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	m.Usage.AddCheapRequest()
	return m.S3Service.GetObject(ctx, input, optFns...)
}

func (m *MeteredS3Service) HeadObject(ctx context.Context, input *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
	m.Usage.AddCheapRequest()
	return m.S3Service.HeadObject(ctx, input, optFns...)
}

func (m *MeteredS3Service) PutObject(ctx context.Context, input *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	m.Usage.AddExpensiveRequest()
	return m.S3Service.PutObject(ctx, input, optFns...)
}

var _ S3Service = (*MeteredS3Service)(nil)
