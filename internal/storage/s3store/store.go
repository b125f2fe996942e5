// Package s3store implements the blob-store contract (put/delete plus
// presigned download links) on any S3-compatible backend such as MinIO.
package s3store

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

type Config struct {
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	Bucket    string
}

type Store struct {
	client  *s3.Client
	presign *s3.PresignClient
	bucket  string
}

func New(ctx context.Context, cfg Config) (*Store, error) {

	awsCfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(cfg.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("loading s3 config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.Endpoint)
		// MinIO serves buckets on the path, not a subdomain.
		o.UsePathStyle = true
	})

	return &Store{
		client:  client,
		presign: s3.NewPresignClient(client),
		bucket:  cfg.Bucket,
	}, nil
}

// randomStorageKey spreads objects across date-based prefixes.
func randomStorageKey() string {
	d := time.Now()
	return fmt.Sprintf("videos/%d/%d/%d/%v", d.Year(), d.Month(), d.Day(), uuid.New())
}

// Put stores the payload under a fresh key and returns the key as the blob
// handle referenced by downstream job messages.
func (s *Store) Put(ctx context.Context, body io.Reader) (string, error) {

	key := randomStorageKey()

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: &s.bucket,
		Key:    &key,
		Body:   body,
	})
	if err != nil {
		return "", fmt.Errorf("putting object: %w", err)
	}

	return key, nil
}

// Delete removes the blob with the given handle. Used as the compensating
// action when a job cannot be enqueued for an already-stored blob.
func (s *Store) Delete(ctx context.Context, key string) error {

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: &s.bucket,
		Key:    &key,
	})
	if err != nil {
		return fmt.Errorf("deleting object %s: %w", key, err)
	}

	return nil
}

// PresignGet returns a time-limited download URL for the given handle.
func (s *Store) PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error) {

	req, err := s.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: &s.bucket,
		Key:    &key,
	}, s3.WithPresignExpires(ttl))
	if err != nil {
		return "", fmt.Errorf("presigning get for %s: %w", key, err)
	}

	return req.URL, nil
}
