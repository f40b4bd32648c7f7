package s3store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/hashgraph-online/collection-kit-go/pkg/contentid"
)

const defaultRegion = "us-east-1"

// Config options for the S3 store.
type Config struct {
	Bucket          string
	Region          string
	Endpoint        string // custom endpoint for S3-compatible services
	PublicURL       string // base URL objects are served from
	AccessKeyID     string
	SecretAccessKey string
	UsePathStyle    bool
	Prefix          string // optional key prefix, e.g. "collections/"
}

// Uploader is the subset of manager.Uploader used by the store.
type Uploader interface {
	Upload(ctx context.Context, input *s3.PutObjectInput, opts ...func(*manager.Uploader)) (*manager.UploadOutput, error)
}

type Store struct {
	uploader  Uploader
	bucket    string
	prefix    string
	publicURL string
}

// New creates a store backed by an AWS SDK client. Credentials fall back to
// the default provider chain when no static keys are configured.
func New(ctx context.Context, config Config) (*Store, error) {
	if strings.TrimSpace(config.Bucket) == "" {
		return nil, errors.New("bucket name is required")
	}
	if config.Region == "" {
		config.Region = defaultRegion
	}

	options := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(config.Region)}
	if config.AccessKeyID != "" && config.SecretAccessKey != "" {
		options = append(options, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(config.AccessKeyID, config.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, options...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	var s3Options []func(*s3.Options)
	if config.Endpoint != "" {
		s3Options = append(s3Options, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(config.Endpoint)
			o.UsePathStyle = config.UsePathStyle
		})
	}

	client := s3.NewFromConfig(awsCfg, s3Options...)
	return NewWithUploader(config, manager.NewUploader(client))
}

// NewWithUploader creates a store around an existing uploader.
func NewWithUploader(config Config, uploader Uploader) (*Store, error) {
	if strings.TrimSpace(config.Bucket) == "" {
		return nil, errors.New("bucket name is required")
	}
	if uploader == nil {
		return nil, errors.New("uploader is required")
	}
	if config.Region == "" {
		config.Region = defaultRegion
	}

	publicURL, err := resolvePublicURL(config)
	if err != nil {
		return nil, err
	}

	return &Store{
		uploader:  uploader,
		bucket:    strings.TrimSpace(config.Bucket),
		prefix:    strings.Trim(strings.TrimSpace(config.Prefix), "/"),
		publicURL: publicURL,
	}, nil
}

// UploadBinary stores data under its content identifier and returns the public URI.
func (s *Store) UploadBinary(ctx context.Context, data []byte, fileName string, contentType string) (string, error) {
	if len(data) == 0 {
		return "", errors.New("cannot upload empty content")
	}

	key, err := s.objectKey(data, fileName)
	if err != nil {
		return "", err
	}

	input := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(data),
	}
	if strings.TrimSpace(contentType) != "" {
		input.ContentType = aws.String(contentType)
	}

	if _, err := s.uploader.Upload(ctx, input); err != nil {
		return "", fmt.Errorf("failed to upload %s to S3: %w", fileName, err)
	}

	return s.publicURL + "/" + key, nil
}

// UploadMetadata stores a JSON document and returns its public URI.
func (s *Store) UploadMetadata(ctx context.Context, document []byte) (string, error) {
	return s.UploadBinary(ctx, document, "metadata.json", "application/json")
}

func (s *Store) objectKey(data []byte, fileName string) (string, error) {
	id, err := contentid.Of(data)
	if err != nil {
		return "", err
	}

	key := id + strings.ToLower(filepath.Ext(strings.TrimSpace(fileName)))
	if s.prefix != "" {
		key = s.prefix + "/" + key
	}
	return key, nil
}

func resolvePublicURL(config Config) (string, error) {
	publicURL := strings.TrimRight(strings.TrimSpace(config.PublicURL), "/")
	if publicURL == "" {
		endpoint := strings.TrimRight(strings.TrimSpace(config.Endpoint), "/")
		switch {
		case endpoint != "":
			publicURL = endpoint + "/" + config.Bucket
		default:
			publicURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", config.Bucket, config.Region)
		}
	}

	parsed, err := url.Parse(publicURL)
	if err != nil {
		return "", fmt.Errorf("invalid public URL: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", fmt.Errorf("invalid public URL: scheme must be http or https")
	}
	return publicURL, nil
}
