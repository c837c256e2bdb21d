package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/docforge/internal/client/blob"
	"github.com/dmitrijs2005/docforge/internal/client/config"
	"github.com/dmitrijs2005/docforge/internal/client/models"
	"github.com/dmitrijs2005/docforge/internal/logging"
	"github.com/dmitrijs2005/docforge/internal/netx"
	"github.com/google/uuid"
)

var ErrPublishDisabled = errors.New("publishing is not configured (set s3_bucket)")

var (
	loadDefaultAWSConfig = awsconfig.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}
	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}
)

// Publication is an archive copied to object storage.
type Publication struct {
	Key       string    `json:"key"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}

// PublishService shares a ready archive through an S3-compatible bucket.
type PublishService interface {
	Enabled() bool
	Publish(ctx context.Context, res models.DownloadableResource) (*Publication, error)
}

type publishService struct {
	config     *config.Config
	blobs      *blob.Store
	httpClient *http.Client
	log        logging.Logger
}

func NewPublishService(cfg *config.Config, blobs *blob.Store, log logging.Logger) PublishService {
	return &publishService{
		config:     cfg,
		blobs:      blobs,
		httpClient: &http.Client{Timeout: cfg.RequestTimeout},
		log:        log,
	}
}

// StorageKey returns a fresh object key for an archive published now, shaped
// docs/YYYY/MM/DD/<uuid>.zip.
func StorageKey(now time.Time) string {
	return fmt.Sprintf("docs/%s/%v.zip", now.Format("2006/01/02"), uuid.New())
}

func (s *publishService) Enabled() bool {
	return s.config.PublishEnabled()
}

func (s *publishService) getPresignClient(ctx context.Context) (*s3.PresignClient, error) {
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(s.config.S3Region)}
	if s.config.S3AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3AccessKey,
			s.config.S3SecretKey,
			"",
		)))
	}

	cfg, err := loadDefaultAWSConfig(ctx, opts...)
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		if s.config.S3BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
			// MinIO and friends serve buckets by path
			o.UsePathStyle = true
		}
	})

	return newS3PresignClient(client), nil
}

// Publish uploads the archive through a presigned PUT and returns a presigned
// GET valid for the configured TTL.
func (s *publishService) Publish(ctx context.Context, res models.DownloadableResource) (*Publication, error) {
	if !s.Enabled() {
		return nil, ErrPublishDisabled
	}

	data, err := s.blobs.Bytes(res.Locator)
	if err != nil {
		return nil, fmt.Errorf("read archive: %w", err)
	}

	presignClient, err := s.getPresignClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("s3 config: %w", err)
	}

	bucket := s.config.S3Bucket
	key := StorageKey(time.Now())
	contentType := res.ContentType

	in := &s3.PutObjectInput{Bucket: &bucket, Key: &key}
	if contentType != "" {
		in.ContentType = &contentType
	}

	put, err := presignPutObject(presignClient, ctx, in, s3.WithPresignExpires(s.config.PublishTTL))
	if err != nil {
		return nil, fmt.Errorf("presign put: %w", err)
	}

	if err := netx.PutPresigned(ctx, s.httpClient, put.URL, data, contentType); err != nil {
		return nil, fmt.Errorf("upload archive: %w", err)
	}

	disposition := fmt.Sprintf("attachment; filename=%q", res.FileName)
	get, err := presignGetObject(presignClient, ctx, &s3.GetObjectInput{
		Bucket:                     &bucket,
		Key:                        &key,
		ResponseContentDisposition: &disposition,
	}, s3.WithPresignExpires(s.config.PublishTTL))
	if err != nil {
		return nil, fmt.Errorf("presign get: %w", err)
	}

	s.log.Info(ctx, "archive published", "bucket", bucket, "key", key)

	return &Publication{
		Key:       key,
		URL:       get.URL,
		ExpiresAt: time.Now().Add(s.config.PublishTTL),
	}, nil
}
