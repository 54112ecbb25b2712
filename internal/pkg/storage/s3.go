package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Presigner issues short-lived upload URLs for direct-to-storage uploads.
// The service never proxies file bytes; clients PUT straight to the bucket.
type Presigner interface {
	PresignUpload(ctx context.Context, fileName, contentType string) (*PresignedUpload, error)
}

// PresignedUpload is the result of a presign request: where the client
// uploads to and where the object will be publicly reachable afterwards.
type PresignedUpload struct {
	UploadURL string
	FileURL   string
	Key       string
	ExpiresIn time.Duration
}

// S3Config holds object storage settings
type S3Config struct {
	Region          string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
	Endpoint        string // optional, for S3-compatible backends (MinIO, R2)
	PresignExpiry   time.Duration
}

// S3Presigner implements Presigner against AWS S3 or a compatible backend
type S3Presigner struct {
	config S3Config
}

// NewS3Presigner creates a new S3Presigner
func NewS3Presigner(config S3Config) *S3Presigner {
	if config.PresignExpiry <= 0 {
		config.PresignExpiry = 5 * time.Minute
	}
	return &S3Presigner{config: config}
}

func (p *S3Presigner) presignClient(ctx context.Context) (*s3.PresignClient, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(p.config.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			p.config.AccessKeyID,
			p.config.SecretAccessKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if p.config.Endpoint != "" {
			o.BaseEndpoint = aws.String(p.config.Endpoint)
		}
	})

	return s3.NewPresignClient(client), nil
}

// objectKey builds a collision-resistant key under the uploads/ prefix.
func objectKey(fileName string) string {
	cleaned := strings.ReplaceAll(fileName, "/", "_")
	return fmt.Sprintf("uploads/%d-%s", time.Now().UnixMilli(), cleaned)
}

// PresignUpload issues a presigned PUT URL for the given file.
func (p *S3Presigner) PresignUpload(ctx context.Context, fileName, contentType string) (*PresignedUpload, error) {
	presignClient, err := p.presignClient(ctx)
	if err != nil {
		return nil, err
	}

	key := objectKey(fileName)

	req, err := presignClient.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(p.config.Bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(p.config.PresignExpiry))
	if err != nil {
		return nil, fmt.Errorf("failed to presign upload: %w", err)
	}

	return &PresignedUpload{
		UploadURL: req.URL,
		FileURL:   p.publicURL(key),
		Key:       key,
		ExpiresIn: p.config.PresignExpiry,
	}, nil
}

// publicURL is where the object will be readable after the client uploads it.
func (p *S3Presigner) publicURL(key string) string {
	if p.config.Endpoint != "" {
		return fmt.Sprintf("%s/%s/%s", strings.TrimRight(p.config.Endpoint, "/"), p.config.Bucket, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", p.config.Bucket, p.config.Region, key)
}
