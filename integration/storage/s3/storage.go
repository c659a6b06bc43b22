package s3

import (
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	s3aws "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/dmitrymomot/imgstore/core/storage"
)

var _ storage.Storage = (*S3Storage)(nil)

// S3Client defines the S3 operations used by S3Storage. Satisfied by the
// AWS SDK client and by mocks in tests.
type S3Client interface {
	PutObject(ctx context.Context, params *s3aws.PutObjectInput, optFns ...func(*s3aws.Options)) (*s3aws.PutObjectOutput, error)
	HeadObject(ctx context.Context, params *s3aws.HeadObjectInput, optFns ...func(*s3aws.Options)) (*s3aws.HeadObjectOutput, error)
	ListObjectsV2(ctx context.Context, params *s3aws.ListObjectsV2Input, optFns ...func(*s3aws.Options)) (*s3aws.ListObjectsV2Output, error)
	DeleteObject(ctx context.Context, params *s3aws.DeleteObjectInput, optFns ...func(*s3aws.Options)) (*s3aws.DeleteObjectOutput, error)
	DeleteObjects(ctx context.Context, params *s3aws.DeleteObjectsInput, optFns ...func(*s3aws.Options)) (*s3aws.DeleteObjectsOutput, error)
}

// S3ListObjectsV2Paginator defines the interface for paginated list operations.
type S3ListObjectsV2Paginator interface {
	HasMorePages() bool
	NextPage(ctx context.Context, optFns ...func(*s3aws.Options)) (*s3aws.ListObjectsV2Output, error)
}

// S3Storage implements storage.Storage for Amazon S3 and S3-compatible
// services such as MinIO, DigitalOcean Spaces and Wasabi.
type S3Storage struct {
	client           S3Client
	bucket           string
	region           string
	endpoint         string
	baseURL          string
	forcePathStyle   bool
	uploadTimeout    time.Duration
	paginatorFactory func(client S3Client, params *s3aws.ListObjectsV2Input) S3ListObjectsV2Paginator
}

// Config contains the S3 storage settings, loaded from the environment.
type Config struct {
	Bucket      string `env:"S3_BUCKET"`
	Region      string `env:"S3_REGION"`
	AccessKeyID string `env:"S3_ACCESS_KEY_ID"`
	SecretKey   string `env:"S3_SECRET_KEY"`
	// Endpoint points at an S3-compatible service like MinIO or Wasabi.
	Endpoint string `env:"S3_ENDPOINT"`
	// BaseURL overrides URL generation, e.g. a CDN in front of the bucket.
	BaseURL string `env:"S3_BASE_URL"`
	// ForcePathStyle is required for MinIO and some S3-compatible services.
	ForcePathStyle bool `env:"S3_FORCE_PATH_STYLE" envDefault:"false"`
}

// Option configures S3Storage.
type Option func(*options)

type options struct {
	httpClient       *http.Client
	s3Client         S3Client
	s3ConfigOptions  []func(*config.LoadOptions) error
	s3ClientOptions  []func(*s3aws.Options)
	paginatorFactory func(client S3Client, params *s3aws.ListObjectsV2Input) S3ListObjectsV2Paginator
	uploadTimeout    time.Duration
}

// WithS3Client sets a custom pre-configured S3 client.
// Primarily used for testing with mocks.
func WithS3Client(client S3Client) Option {
	return func(o *options) {
		o.s3Client = client
	}
}

// WithHTTPClient sets a custom HTTP client for S3 requests.
func WithHTTPClient(client *http.Client) Option {
	return func(o *options) {
		o.httpClient = client
	}
}

// WithConfigOption adds a custom AWS config option.
func WithConfigOption(option func(*config.LoadOptions) error) Option {
	return func(o *options) {
		o.s3ConfigOptions = append(o.s3ConfigOptions, option)
	}
}

// WithClientOption adds a custom S3 client option.
func WithClientOption(option func(*s3aws.Options)) Option {
	return func(o *options) {
		o.s3ClientOptions = append(o.s3ClientOptions, option)
	}
}

// WithPaginatorFactory sets a custom paginator factory.
// Mock clients must provide one for DeleteDir to work.
func WithPaginatorFactory(factory func(client S3Client, params *s3aws.ListObjectsV2Input) S3ListObjectsV2Paginator) Option {
	return func(o *options) {
		o.paginatorFactory = factory
	}
}

// WithUploadTimeout caps the duration of a single upload. When unset, the
// caller's context deadline applies.
func WithUploadTimeout(timeout time.Duration) Option {
	return func(o *options) {
		o.uploadTimeout = timeout
	}
}

// New creates an S3 storage backend. Credentials fall back to the default
// AWS chain (env vars, IAM roles) when not set in the config.
func New(ctx context.Context, cfg Config, opts ...Option) (*S3Storage, error) {
	if cfg.Bucket == "" || cfg.Region == "" {
		return nil, storage.ErrInvalidConfig
	}

	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	client := o.s3Client
	if client == nil {
		awsOptions := []func(*config.LoadOptions) error{
			config.WithRegion(cfg.Region),
		}

		if cfg.AccessKeyID != "" && cfg.SecretKey != "" {
			awsOptions = append(awsOptions,
				config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
					cfg.AccessKeyID,
					cfg.SecretKey,
					"",
				)),
			)
		}

		if o.httpClient != nil {
			awsOptions = append(awsOptions, config.WithHTTPClient(o.httpClient))
		}

		awsOptions = append(awsOptions, o.s3ConfigOptions...)

		awsConfig, err := config.LoadDefaultConfig(ctx, awsOptions...)
		if err != nil {
			return nil, fmt.Errorf("failed to load AWS config: %w", err)
		}

		client = s3aws.NewFromConfig(awsConfig, func(so *s3aws.Options) {
			if cfg.Endpoint != "" {
				so.BaseEndpoint = aws.String(cfg.Endpoint)
			}
			so.UsePathStyle = cfg.ForcePathStyle

			for _, opt := range o.s3ClientOptions {
				opt(so)
			}
		})
	}

	paginatorFactory := o.paginatorFactory
	if paginatorFactory == nil {
		paginatorFactory = func(c S3Client, params *s3aws.ListObjectsV2Input) S3ListObjectsV2Paginator {
			if realClient, ok := c.(*s3aws.Client); ok {
				return s3aws.NewListObjectsV2Paginator(realClient, params)
			}
			return nil
		}
	}

	return &S3Storage{
		client:           client,
		bucket:           cfg.Bucket,
		region:           cfg.Region,
		endpoint:         cfg.Endpoint,
		baseURL:          cfg.BaseURL,
		forcePathStyle:   cfg.ForcePathStyle,
		uploadTimeout:    o.uploadTimeout,
		paginatorFactory: paginatorFactory,
	}, nil
}

// Save uploads the file to the object key given by relPath. The key includes
// the target filename. Content-Type is set from the sniffed MIME type.
func (s *S3Storage) Save(ctx context.Context, fh *multipart.FileHeader, relPath string) (*storage.File, error) {
	if fh == nil {
		return nil, storage.ErrNilFileHeader
	}

	if s.uploadTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.uploadTimeout)
		defer cancel()
	}

	key, err := cleanKey(relPath)
	if err != nil {
		return nil, err
	}

	src, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", storage.ErrFailedToOpenFile, err)
	}
	defer src.Close()

	mimeType := storage.GetMIMEType(fh)

	_, err = s.client.PutObject(ctx, &s3aws.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        src,
		ContentType: aws.String(mimeType),
	})
	if err != nil {
		return nil, classifyS3Error(err, "upload file")
	}

	return &storage.File{
		Filename:     path.Base(key),
		Size:         fh.Size,
		MIMEType:     mimeType,
		Extension:    strings.ToLower(strings.TrimPrefix(path.Ext(key), ".")),
		AbsolutePath: "",
		RelativePath: key,
	}, nil
}

// Delete removes a single object. The existence check first gives the same
// not-found behavior as the local backend.
func (s *S3Storage) Delete(ctx context.Context, relPath string) error {
	key, err := cleanKey(relPath)
	if err != nil {
		return err
	}

	if _, err := s.client.HeadObject(ctx, &s3aws.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}); err != nil {
		return classifyS3Error(err, "check file")
	}

	if _, err := s.client.DeleteObject(ctx, &s3aws.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}); err != nil {
		return classifyS3Error(err, "delete file")
	}

	return nil
}

// DeleteDir removes all objects under the given prefix in batches of 1000,
// the S3 API limit per request.
func (s *S3Storage) DeleteDir(ctx context.Context, dir string) error {
	prefix, err := cleanKey(dir)
	if err != nil {
		return err
	}
	prefix += "/"

	paginator := s.paginatorFactory(s.client, &s3aws.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(prefix),
	})
	if paginator == nil {
		return storage.ErrPaginatorNil
	}

	var objects []types.ObjectIdentifier
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return classifyS3Error(err, "list directory")
		}
		for _, obj := range page.Contents {
			objects = append(objects, types.ObjectIdentifier{Key: obj.Key})
		}
	}

	if len(objects) == 0 {
		return fmt.Errorf("%w: %s", storage.ErrDirectoryNotFound, dir)
	}

	const batchSize = 1000
	for i := range (len(objects) + batchSize - 1) / batchSize {
		start := i * batchSize
		end := min(start+batchSize, len(objects))
		if _, err := s.client.DeleteObjects(ctx, &s3aws.DeleteObjectsInput{
			Bucket: aws.String(s.bucket),
			Delete: &types.Delete{Objects: objects[start:end]},
		}); err != nil {
			return classifyS3Error(err, "delete directory")
		}
	}

	return nil
}

// Exists reports whether an object is present at the given key.
func (s *S3Storage) Exists(ctx context.Context, relPath string) bool {
	key, err := cleanKey(relPath)
	if err != nil {
		return false
	}

	_, err = s.client.HeadObject(ctx, &s3aws.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	return err == nil
}

// List returns the immediate entries under a prefix. The "/" delimiter makes
// S3 report common prefixes as subdirectories.
func (s *S3Storage) List(ctx context.Context, dir string) ([]storage.Entry, error) {
	prefix := ""
	if strings.TrimSpace(dir) != "" {
		var err error
		prefix, err = cleanKey(dir)
		if err != nil {
			return nil, err
		}
		prefix += "/"
	}

	resp, err := s.client.ListObjectsV2(ctx, &s3aws.ListObjectsV2Input{
		Bucket:    aws.String(s.bucket),
		Prefix:    aws.String(prefix),
		Delimiter: aws.String("/"),
	})
	if err != nil {
		return nil, classifyS3Error(err, "list directory")
	}

	var entries []storage.Entry

	for _, commonPrefix := range resp.CommonPrefixes {
		name := strings.TrimPrefix(aws.ToString(commonPrefix.Prefix), prefix)
		name = strings.TrimSuffix(name, "/")
		entries = append(entries, storage.Entry{
			Name:  name,
			Path:  strings.TrimSuffix(aws.ToString(commonPrefix.Prefix), "/"),
			IsDir: true,
		})
	}

	for _, obj := range resp.Contents {
		key := aws.ToString(obj.Key)
		if key == prefix {
			// Directory marker object.
			continue
		}
		name := strings.TrimPrefix(key, prefix)
		if strings.Contains(name, "/") {
			continue
		}
		entries = append(entries, storage.Entry{
			Name:  name,
			Path:  key,
			IsDir: false,
			Size:  aws.ToInt64(obj.Size),
		})
	}

	return entries, nil
}

// URL returns the public URL for an object. A configured BaseURL wins,
// then a custom endpoint, then the standard AWS S3 URL format. Path-style
// and virtual-hosted-style are both supported.
func (s *S3Storage) URL(relPath string) string {
	key, err := cleanKey(relPath)
	if err != nil {
		return ""
	}

	if s.baseURL != "" {
		return strings.TrimSuffix(s.baseURL, "/") + "/" + key
	}

	if s.endpoint != "" {
		endpoint := strings.TrimSuffix(s.endpoint, "/")
		protocol := "https://"
		if after, ok := strings.CutPrefix(endpoint, "http://"); ok {
			protocol = "http://"
			endpoint = after
		} else if after, ok := strings.CutPrefix(endpoint, "https://"); ok {
			endpoint = after
		}

		if s.forcePathStyle {
			return fmt.Sprintf("%s%s/%s/%s", protocol, endpoint, s.bucket, key)
		}
		return fmt.Sprintf("%s%s.%s/%s", protocol, s.bucket, endpoint, key)
	}

	if s.forcePathStyle {
		return fmt.Sprintf("https://s3.%s.amazonaws.com/%s/%s", s.region, s.bucket, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
}

// cleanKey normalizes an object key and rejects traversal attempts.
func cleanKey(p string) (string, error) {
	p = strings.TrimPrefix(strings.TrimSpace(p), "/")
	if p == "" || strings.Contains(p, "..") {
		return "", fmt.Errorf("%w: %s", storage.ErrInvalidPath, p)
	}
	return strings.TrimSuffix(p, "/"), nil
}
