// Package s3 implements the media store on an S3-compatible backend (AWS S3
// or MinIO). One bucket per deployment; media keys map to object keys
// directly, and the media kind is stamped onto each object as user metadata
// so bucket-side tooling can tell video sources from images.
package s3

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	aws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"instructcore/internal/blob/core"
)

// metaKindKey is the user-metadata key carrying the media kind.
const metaKindKey = "media-kind"

// Store implements core.Store against a single bucket.
type Store struct {
	client  *s3.Client
	presign *s3.PresignClient
	bucket  string
}

// Config carries explicit construction parameters. Static credentials are for
// MinIO-style deployments; when absent the default AWS chain applies.
type Config struct {
	Bucket          string
	Region          string
	Endpoint        string // custom endpoint, e.g. MinIO
	PathStyle       bool
	AccessKeyID     string
	SecretAccessKey string
}

// New constructs an S3 media store.
func New(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("s3 bucket required")
	}
	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}
	loadOpts := []func(*config.LoadOptions) error{config.WithRegion(region)}
	if cfg.AccessKeyID != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")))
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.PathStyle
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})
	return &Store{
		client:  client,
		presign: s3.NewPresignClient(client),
		bucket:  cfg.Bucket,
	}, nil
}

// OpenFromEnv constructs an S3 store from process environment:
//
//	INSTRUCTCORE_BLOB_S3_BUCKET      (required)
//	INSTRUCTCORE_BLOB_S3_REGION      (default us-east-1)
//	INSTRUCTCORE_BLOB_S3_ENDPOINT    (optional, MinIO)
//	INSTRUCTCORE_BLOB_S3_PATH_STYLE  (true|false, default false)
//	INSTRUCTCORE_BLOB_S3_ACCESS_KEY / INSTRUCTCORE_BLOB_S3_SECRET_KEY
//	  (optional static credentials; default AWS chain otherwise)
func OpenFromEnv(ctx context.Context) (*Store, error) {
	bucket := os.Getenv("INSTRUCTCORE_BLOB_S3_BUCKET")
	if bucket == "" {
		return nil, fmt.Errorf("INSTRUCTCORE_BLOB_S3_BUCKET required for s3 driver")
	}
	return New(ctx, Config{
		Bucket:          bucket,
		Region:          os.Getenv("INSTRUCTCORE_BLOB_S3_REGION"),
		Endpoint:        os.Getenv("INSTRUCTCORE_BLOB_S3_ENDPOINT"),
		PathStyle:       strings.EqualFold(os.Getenv("INSTRUCTCORE_BLOB_S3_PATH_STYLE"), "true"),
		AccessKeyID:     os.Getenv("INSTRUCTCORE_BLOB_S3_ACCESS_KEY"),
		SecretAccessKey: os.Getenv("INSTRUCTCORE_BLOB_S3_SECRET_KEY"),
	})
}

func (s *Store) Driver() core.Driver { return core.DriverS3 }

// Put emulates create-only semantics with a HeadObject check first; S3
// itself would silently overwrite.
func (s *Store) Put(ctx context.Context, key string, r io.Reader, contentType string) (core.Info, error) {
	if _, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{Bucket: &s.bucket, Key: &key}); err == nil {
		return core.Info{}, fmt.Errorf("media %s already exists", key)
	}
	if contentType == "" {
		contentType = core.ContentTypeForKey(key)
	}
	input := &s3.PutObjectInput{
		Bucket:   &s.bucket,
		Key:      &key,
		Body:     r,
		Metadata: map[string]string{metaKindKey: string(core.KindForKey(key))},
	}
	if contentType != "" {
		input.ContentType = &contentType
	}
	if _, err := s.client.PutObject(ctx, input); err != nil {
		return core.Info{}, fmt.Errorf("put media %s: %w", key, err)
	}
	return s.Head(ctx, key)
}

func (s *Store) Get(ctx context.Context, key string) (core.Info, io.ReadCloser, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{Bucket: &s.bucket, Key: &key})
	if err != nil {
		return core.Info{}, nil, err
	}
	info := s.objectInfo(key, out.ContentLength, out.ContentType, out.ETag, out.LastModified)
	return info, out.Body, nil
}

func (s *Store) Head(ctx context.Context, key string) (core.Info, error) {
	out, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{Bucket: &s.bucket, Key: &key})
	if err != nil {
		return core.Info{}, err
	}
	return s.objectInfo(key, out.ContentLength, out.ContentType, out.ETag, out.LastModified), nil
}

func (s *Store) Delete(ctx context.Context, key string) (bool, error) {
	if _, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{Bucket: &s.bucket, Key: &key}); err != nil {
		return false, err
	}
	// DeleteObject does not report prior existence.
	return true, nil
}

func (s *Store) List(ctx context.Context, prefix string) ([]core.Info, error) {
	var infos []core.Info
	var token *string
	for {
		page, err := s.client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
			Bucket:            &s.bucket,
			Prefix:            &prefix,
			ContinuationToken: token,
		})
		if err != nil {
			return nil, fmt.Errorf("list media: %w", err)
		}
		for _, obj := range page.Contents {
			key := aws.ToString(obj.Key)
			infos = append(infos, core.Info{
				Key:      key,
				Kind:     core.KindForKey(key),
				Size:     aws.ToInt64(obj.Size),
				StoredAt: aws.ToTime(obj.LastModified),
			})
		}
		if aws.ToBool(page.IsTruncated) && page.NextContinuationToken != nil {
			token = page.NextContinuationToken
			continue
		}
		break
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Key < infos[j].Key })
	return infos, nil
}

// MediaURL presigns a GET for the media key.
func (s *Store) MediaURL(ctx context.Context, key string, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	out, err := s.presign.PresignGetObject(ctx,
		&s3.GetObjectInput{Bucket: &s.bucket, Key: &key},
		func(po *s3.PresignOptions) { po.Expires = ttl })
	if err != nil {
		return "", fmt.Errorf("presign media %s: %w", key, err)
	}
	return out.URL, nil
}

func (s *Store) objectInfo(key string, size *int64, contentType, etag *string, lastModified *time.Time) core.Info {
	info := core.Info{
		Key:         key,
		Kind:        core.KindForKey(key),
		Size:        aws.ToInt64(size),
		ContentType: aws.ToString(contentType),
		ETag:        strings.Trim(aws.ToString(etag), `"`),
		StoredAt:    aws.ToTime(lastModified),
	}
	if info.StoredAt.IsZero() {
		info.StoredAt = time.Now().UTC()
	}
	return info
}
