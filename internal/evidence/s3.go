// Package evidence stores uploaded evidence files and rendered documents:
// S3 in production, a local directory in stub mode.
package evidence

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/landlord-heaven/wizard-go/internal/ratelimit"
)

// s3API is the subset of the S3 client the store uses.
type s3API interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, opts ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, in *s3.GetObjectInput, opts ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Store writes evidence objects to one bucket, rate limited so a burst
// of uploads cannot starve the rest of the service's AWS quota.
type S3Store struct {
	client  s3API
	bucket  string
	limiter *ratelimit.ServiceLimiter
}

func NewS3Store(cfg aws.Config, bucket string, limiter *ratelimit.ServiceLimiter) *S3Store {
	return &S3Store{
		client:  s3.NewFromConfig(cfg),
		bucket:  bucket,
		limiter: limiter,
	}
}

// Put uploads one object.
func (s *S3Store) Put(ctx context.Context, key string, body io.Reader, size int64) error {
	if s.limiter != nil {
		if err := s.limiter.Wait(ctx, "s3"); err != nil {
			return fmt.Errorf("evidence: rate limit: %w", err)
		}
	}
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          body,
		ContentLength: aws.Int64(size),
	})
	if err != nil {
		return fmt.Errorf("evidence: put %s: %w", key, err)
	}
	return nil
}

// Get streams one object back. The caller closes the reader.
func (s *S3Store) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	if s.limiter != nil {
		if err := s.limiter.Wait(ctx, "s3"); err != nil {
			return nil, fmt.Errorf("evidence: rate limit: %w", err)
		}
	}
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("evidence: get %s: %w", key, err)
	}
	return out.Body, nil
}

// PresignDownload returns a time-limited download URL for delivery links.
func (s *S3Store) PresignDownload(ctx context.Context, key string, expiry time.Duration) (string, error) {
	client, ok := s.client.(*s3.Client)
	if !ok {
		return "", fmt.Errorf("evidence: presign unavailable on stub client")
	}
	presigner := s3.NewPresignClient(client)
	req, err := presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(expiry))
	if err != nil {
		return "", fmt.Errorf("evidence: presign %s: %w", key, err)
	}
	return req.URL, nil
}
