package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"path"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/rollcall-io/rollcall/internal/models"
)

// ErrNoBucket is returned by NewUploader when no bucket is configured.
var ErrNoBucket = errors.New("export.bucket is not configured")

// ObjectPutter is the part of the S3 client used for uploads.
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Uploader stores exported logs in a bucket.
type Uploader struct {
	client ObjectPutter
	bucket string
	prefix string
	now    func() time.Time
}

// NewS3Client builds an S3 client from cfg. Static keys and a custom endpoint
// (R2, MinIO) are optional; otherwise the default AWS credential chain is used.
func NewS3Client(ctx context.Context, cfg models.ExportConfig) (*s3.Client, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if cfg.Region != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.Region))
	}
	if cfg.AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to configure S3 client: %w", err)
	}

	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	}), nil
}

// NewUploader creates an uploader for cfg.Bucket.
func NewUploader(client ObjectPutter, cfg models.ExportConfig) (*Uploader, error) {
	if cfg.Bucket == "" {
		return nil, ErrNoBucket
	}
	return &Uploader{client: client, bucket: cfg.Bucket, prefix: cfg.Prefix, now: time.Now}, nil
}

// Upload writes the table as CSV and returns the object key.
func (u *Uploader) Upload(ctx context.Context, table *models.LogTable) (string, error) {
	data, err := CSV(table)
	if err != nil {
		return "", err
	}

	key := path.Join(u.prefix, fmt.Sprintf("attendance_%s.csv", u.now().Format("20060102_150405")))
	_, err = u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("text/csv"),
	})
	if err != nil {
		log.Printf("[export] upload to %s/%s failed: %v", u.bucket, key, err)
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}

	log.Printf("[export] uploaded %s/%s (%d rows, %d bytes)", u.bucket, key, table.Len(), len(data))
	return key, nil
}
