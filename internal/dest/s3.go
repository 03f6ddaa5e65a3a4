package dest

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"picsort/internal/config"
	"picsort/internal/sorter"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// s3API is the subset of the S3 client the destination uses.
type s3API interface {
	HeadObject(ctx context.Context, in *s3.HeadObjectInput, opts ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	HeadBucket(ctx context.Context, in *s3.HeadBucketInput, opts ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
}

// s3Uploader is the subset of the upload manager the destination uses.
type s3Uploader interface {
	Upload(ctx context.Context, in *s3.PutObjectInput, opts ...func(*manager.Uploader)) (*manager.UploadOutput, error)
}

// S3Destination stores sorted images as S3 objects. The planner's
// destination paths become object keys under the configured bucket and
// prefix, so the sorted tree layout is identical to the filesystem
// backend's.
type S3Destination struct {
	// ctx is the run context from construction. The Destination methods
	// carry no context of their own, so canceling the run is what aborts
	// in-flight S3 calls.
	ctx      context.Context
	client   s3API
	uploader s3Uploader
	bucket   string
	prefix   string
}

// NewS3Destination creates an S3 destination from config. Credentials
// come from the default AWS chain unless static credentials are set in
// the config.
func NewS3Destination(ctx context.Context, cfg config.DestinationConfig) (*S3Destination, error) {
	if cfg.S3Bucket == "" {
		return nil, fmt.Errorf("s3 destination requires s3_bucket to be set")
	}

	opts := []func(*awsconfig.LoadOptions) error{}
	if cfg.S3Region != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.S3Region))
	}
	if cfg.S3AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.S3AccessKeyID, cfg.S3SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("loading aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg)
	return &S3Destination{
		ctx:      ctx,
		client:   client,
		uploader: manager.NewUploader(client),
		bucket:   cfg.S3Bucket,
		prefix:   cfg.S3Prefix,
	}, nil
}

// key maps a planner destination path to an object key.
func (d *S3Destination) key(destPath string) string {
	k := filepath.ToSlash(destPath)
	k = strings.TrimPrefix(k, "/")
	if d.prefix != "" {
		k = path.Join(d.prefix, k)
	}
	return k
}

// Exists reports whether an object already exists at destPath.
func (d *S3Destination) Exists(destPath string) (bool, error) {
	_, err := d.client.HeadObject(d.ctx, &s3.HeadObjectInput{
		Bucket: aws.String(d.bucket),
		Key:    aws.String(d.key(destPath)),
	})
	if err != nil {
		var notFound *types.NotFound
		if errors.As(err, &notFound) {
			return false, nil
		}
		return false, fmt.Errorf("head object: %w", err)
	}
	return true, nil
}

// Store uploads the source file to the object key for destPath.
// The multipart upload manager streams the file, so large RAW images are
// never held in memory whole.
func (d *S3Destination) Store(srcPath string, destPath string) error {
	f, err := os.Open(srcPath)
	if err != nil {
		return fmt.Errorf("opening source file: %w", err)
	}
	defer f.Close()

	_, err = d.uploader.Upload(d.ctx, &s3.PutObjectInput{
		Bucket: aws.String(d.bucket),
		Key:    aws.String(d.key(destPath)),
		Body:   f,
	})
	if err != nil {
		return fmt.Errorf("uploading object: %w", err)
	}
	return nil
}

// ValidateSetup verifies the bucket is accessible.
func (d *S3Destination) ValidateSetup() error {
	_, err := d.client.HeadBucket(d.ctx, &s3.HeadBucketInput{
		Bucket: aws.String(d.bucket),
	})
	if err != nil {
		return fmt.Errorf("bucket not accessible: %w", err)
	}
	return nil
}

// Compile-time check that S3Destination implements sorter.Destination
var _ sorter.Destination = (*S3Destination)(nil)
