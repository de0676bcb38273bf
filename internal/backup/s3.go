package backup

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/osse101/ScrapTracker_Go/internal/domain"
	"github.com/osse101/ScrapTracker_Go/internal/logger"
)

// S3Config locates the bucket backups are copied to. Endpoint is only set
// for S3-compatible stores such as MinIO.
type S3Config struct {
	Bucket    string
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
	Prefix    string
}

// Enabled reports whether a bucket is configured.
func (c S3Config) Enabled() bool {
	return c.Bucket != ""
}

// ObjectPutter is the subset of *s3.Client used for uploads.
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Uploader copies JSON backups to an S3 bucket.
type Uploader struct {
	client ObjectPutter
	bucket string
	prefix string
	now    func() time.Time
}

// ErrS3NotConfigured is returned when no bucket is set.
var ErrS3NotConfigured = errors.New(ErrMsgS3NotConfigured)

var loadDefaultAWSConfig = awsconfig.LoadDefaultConfig

// NewS3Uploader builds an uploader from cfg. Static credentials are used when
// both keys are set, otherwise the default AWS credential chain applies.
func NewS3Uploader(ctx context.Context, cfg S3Config) (*Uploader, error) {
	if !cfg.Enabled() {
		return nil, ErrS3NotConfigured
	}

	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")))
	}

	awsCfg, err := loadDefaultAWSConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgLoadAWSConfig, err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return NewUploader(client, cfg.Bucket, cfg.Prefix), nil
}

// NewUploader wraps an existing client.
func NewUploader(client ObjectPutter, bucket, prefix string) *Uploader {
	return &Uploader{
		client: client,
		bucket: bucket,
		prefix: strings.Trim(prefix, "/"),
		now:    time.Now,
	}
}

// Upload exports a JSON backup through svc and stores it under a timestamped
// key, which it returns.
func (u *Uploader) Upload(ctx context.Context, svc Service) (string, error) {
	var buf bytes.Buffer
	if err := svc.ExportJSON(ctx, &buf); err != nil {
		return "", err
	}

	key := u.objectKey()

	ctx, cancel := context.WithTimeout(ctx, S3UploadTimeout)
	defer cancel()

	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(u.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(buf.Bytes()),
		ContentLength: aws.Int64(int64(buf.Len())),
		ContentType:   aws.String(S3ContentTypeJSON),
	})
	if err != nil {
		return "", fmt.Errorf("%s: %w", ErrMsgUploadBackup, err)
	}

	logger.FromContext(ctx).Info(LogMsgBackupUploaded, "bucket", u.bucket, "key", key, "bytes", buf.Len())
	return key, nil
}

// objectKey names the upload after the JSON backup filename, stamped with
// the current time.
func (u *Uploader) objectKey() string {
	name := strings.TrimSuffix(domain.BackupJSONFilename, ".json") + "-" + u.now().Format(S3KeyTimeLayout) + ".json"
	if u.prefix == "" {
		return name
	}
	return path.Join(u.prefix, name)
}
