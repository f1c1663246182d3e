package export

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog/log"
)

// S3Client defines the interface for S3 operations we need
type S3Client interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

const exportPrefix = "exports/"

// S3Saver stores exports as objects in a bucket
type S3Saver struct {
	client     S3Client
	bucketName string
}

func NewS3Saver(client S3Client, bucketName string) *S3Saver {
	return &S3Saver{
		client:     client,
		bucketName: bucketName,
	}
}

// NewS3SaverFromDefaultConfig builds an S3 client from the default AWS credential chain
func NewS3SaverFromDefaultConfig(ctx context.Context, bucketName string) (*S3Saver, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}
	return NewS3Saver(s3.NewFromConfig(cfg), bucketName), nil
}

func (s *S3Saver) Save(ctx context.Context, payload *Payload) (string, error) {
	if s.bucketName == "" {
		return "", fmt.Errorf("empty bucket name")
	}

	key := exportPrefix + payload.Filename
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:             aws.String(s.bucketName),
		Key:                aws.String(key),
		Body:               bytes.NewReader(payload.Data),
		ContentType:        aws.String(payload.ContentType),
		ContentDisposition: aws.String(fmt.Sprintf("attachment; filename=%q", payload.Filename)),
	})
	if err != nil {
		return "", fmt.Errorf("saving to S3: %w", err)
	}

	location := fmt.Sprintf("s3://%s/%s", s.bucketName, key)
	log.Debug().Str("location", location).Int("bytes", len(payload.Data)).Msg("Saved export to S3")
	return location, nil
}
