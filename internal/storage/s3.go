// Package storage provides object storage for profile photos.
package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// PhotoStore manages photo objects and presigned access to them.
type PhotoStore interface {
	// PresignUpload returns a short-lived PUT URL plus the object key the
	// client must upload to.
	PresignUpload(ctx context.Context, userID uint, contentType string) (url, key string, err error)
	// PublicURL returns the stable serving URL for a stored object.
	PublicURL(key string) string
	// Delete removes the object.
	Delete(ctx context.Context, key string) error
}

// S3PhotoStore implements PhotoStore on AWS S3.
type S3PhotoStore struct {
	client    *s3.Client
	presigner *s3.PresignClient
	bucket    string
	publicURL string
}

// NewS3PhotoStore builds an S3-backed photo store using the default AWS
// credential chain.
func NewS3PhotoStore(ctx context.Context, bucket, region, publicURL string) (*S3PhotoStore, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	client := s3.NewFromConfig(cfg)
	if publicURL == "" {
		publicURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", bucket, region)
	}
	return &S3PhotoStore{
		client:    client,
		presigner: s3.NewPresignClient(client),
		bucket:    bucket,
		publicURL: publicURL,
	}, nil
}

// PresignUpload returns a 5-minute PUT URL for a new photo object.
func (s *S3PhotoStore) PresignUpload(ctx context.Context, userID uint, contentType string) (string, string, error) {
	key := fmt.Sprintf("photos/%d/%s", userID, uuid.NewString())
	params := &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}
	presigned, err := s.presigner.PresignPutObject(ctx, params, s3.WithPresignExpires(5*time.Minute))
	if err != nil {
		return "", "", fmt.Errorf("failed to presign photo upload: %w", err)
	}
	return presigned.URL, key, nil
}

// PublicURL returns the serving URL for the object key.
func (s *S3PhotoStore) PublicURL(key string) string {
	return s.publicURL + "/" + key
}

// Delete removes the photo object from the bucket.
func (s *S3PhotoStore) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete photo object: %w", err)
	}
	return nil
}
