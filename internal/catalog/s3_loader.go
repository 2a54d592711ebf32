package catalog

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
)

// objectGetter is the part of the S3 client the loader uses.
type objectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// s3Loader implements Loader for reading catalog files from AWS S3.
type s3Loader struct {
	client objectGetter
	bucket string
	logger zerolog.Logger
}

// NewS3Loader creates a new S3-based catalog loader.
func NewS3Loader(ctx context.Context, bucket, region string, logger zerolog.Logger) (Loader, error) {
	logger = logger.With().Str("component", "s3-catalog-loader").Logger()

	// Load AWS configuration
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		logger.Error().Err(err).Msg("failed to load AWS configuration")
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	logger.Info().
		Str("bucket", bucket).
		Str("region", region).
		Msg("S3 loader initialised")

	return newS3Loader(s3.NewFromConfig(cfg), bucket, logger), nil
}

func newS3Loader(client objectGetter, bucket string, logger zerolog.Logger) *s3Loader {
	return &s3Loader{
		client: client,
		bucket: bucket,
		logger: logger,
	}
}

// Load reads a catalog object from S3. The key parameter should be the
// full S3 key (including any prefix).
func (l *s3Loader) Load(ctx context.Context, key string) (*Catalog, error) {
	l.logger.Info().
		Str("bucket", l.bucket).
		Str("key", key).
		Msg("loading catalog from S3")

	result, err := l.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(l.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		l.logger.Error().
			Err(err).
			Str("bucket", l.bucket).
			Str("key", key).
			Msg("failed to get object from S3")
		return nil, fmt.Errorf("failed to get object from S3 (bucket=%s, key=%s): %w", l.bucket, key, err)
	}
	defer result.Body.Close()

	cat, err := Decode(result.Body, isGzipped(key))
	if err != nil {
		l.logger.Error().
			Err(err).
			Str("bucket", l.bucket).
			Str("key", key).
			Msg("failed to parse catalog from S3")
		return nil, fmt.Errorf("failed to parse S3 object %s: %w", key, err)
	}
	cat.Source = "s3://" + l.bucket + "/" + key

	l.logger.Info().
		Str("bucket", l.bucket).
		Str("key", key).
		Int("rows", len(cat.Rows)).
		Msg("catalog loaded successfully from S3")

	return cat, nil
}

// fallbackLoader tries S3 first, then falls back to local file system.
type fallbackLoader struct {
	s3Loader   Loader
	fileLoader Loader
	s3Prefix   string
	logger     zerolog.Logger
	s3Enabled  bool
}

// NewFallbackLoader creates a loader that tries S3 first, then falls back to local file system.
// If s3Loader is nil, it will only use the file loader.
func NewFallbackLoader(s3Loader, fileLoader Loader, s3Prefix string, s3Enabled bool, logger zerolog.Logger) Loader {
	return &fallbackLoader{
		s3Loader:   s3Loader,
		fileLoader: fileLoader,
		s3Prefix:   s3Prefix,
		s3Enabled:  s3Enabled,
		logger:     logger.With().Str("component", "fallback-loader").Logger(),
	}
}

// Load attempts to load from S3 first, then falls back to local file system.
// For S3, it prepends the s3Prefix to the filePath.
func (l *fallbackLoader) Load(ctx context.Context, filePath string) (*Catalog, error) {
	if l.s3Enabled && l.s3Loader != nil {
		s3Key := l.s3Prefix + filePath

		cat, err := l.s3Loader.Load(ctx, s3Key)
		if err == nil {
			return cat, nil
		}

		l.logger.Warn().
			Err(err).
			Str("s3_key", s3Key).
			Msg("failed to load from S3, falling back to local file system")
	}

	return l.fileLoader.Load(ctx, filePath)
}
