package fetch

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// StoreConfig configures an S3-compatible object store. When AccountID is set
// the Cloudflare R2 endpoint for that account is used.
type StoreConfig struct {
	AccountID string
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	Bucket    string
}

// ResolvedEndpoint returns the effective endpoint, or "" for the AWS default
func (c StoreConfig) ResolvedEndpoint() string {
	if c.Endpoint != "" {
		return c.Endpoint
	}
	if c.AccountID != "" {
		return fmt.Sprintf("https://%s.r2.cloudflarestorage.com", c.AccountID)
	}
	return ""
}

// ObjectGetter is the subset of the S3 client used to download objects
type ObjectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// ObjectStore downloads resume files from a bucket
type ObjectStore struct {
	client        ObjectGetter
	defaultBucket string
}

// NewObjectStore builds an S3 client from cfg
func NewObjectStore(ctx context.Context, cfg StoreConfig) (*ObjectStore, error) {
	region := cfg.Region
	if region == "" {
		region = "auto"
	}

	opts := []func(*config.LoadOptions) error{config.WithRegion(region)}
	if cfg.AccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsConfig, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load object store config: %w", err)
	}

	endpoint := cfg.ResolvedEndpoint()
	client := s3.NewFromConfig(awsConfig, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	})
	return NewObjectStoreWithClient(client, cfg.Bucket), nil
}

// NewObjectStoreWithClient wraps an existing client
func NewObjectStoreWithClient(client ObjectGetter, defaultBucket string) *ObjectStore {
	return &ObjectStore{client: client, defaultBucket: defaultBucket}
}

// Get downloads bucket/key. An empty bucket means the configured default bucket.
// It returns the body and the stored content type.
func (s *ObjectStore) Get(ctx context.Context, bucket, key string) ([]byte, string, error) {
	if bucket == "" {
		bucket = s.defaultBucket
	}
	location := "s3://" + bucket + "/" + key
	if bucket == "" || key == "" {
		return nil, "", &Error{URL: location, Message: "bucket and key are required"}
	}

	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, "", &Error{URL: location, Message: "failed to get object", Cause: err}
	}
	defer func() { _ = out.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(out.Body, MaxDocumentBytes+1))
	if err != nil {
		return nil, "", &Error{URL: location, Message: "failed to read object body", Cause: err}
	}
	if len(body) > MaxDocumentBytes {
		return nil, "", &Error{URL: location, Message: fmt.Sprintf("object larger than %d bytes", MaxDocumentBytes)}
	}
	return body, aws.ToString(out.ContentType), nil
}

// ParseObjectURI splits s3://bucket/key. The bucket may be empty (s3:///key)
// to select the store's default bucket.
func ParseObjectURI(uri string) (bucket, key string, err error) {
	parsed, err := url.Parse(uri)
	if err != nil || parsed.Scheme != "s3" {
		return "", "", fmt.Errorf("not an s3:// URI: %q", uri)
	}
	key = strings.TrimPrefix(parsed.Path, "/")
	if key == "" {
		return "", "", fmt.Errorf("missing object key in %q", uri)
	}
	return parsed.Host, key, nil
}
