package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/BruksfildServices01/homely-bites/internal/config"
)

// Store persists an encoded image and returns the reference saved on the
// menu item: a path under /uploads for local files or an absolute URL.
type Store interface {
	Save(ctx context.Context, name, contentType string, data []byte) (string, error)
}

func NewStore(cfg config.MediaConfig) (Store, error) {
	switch cfg.Backend {
	case config.MediaS3:
		return NewS3Store(cfg)
	case config.MediaLocal, "":
		return NewLocalStore(cfg.UploadDir), nil
	}
	return nil, fmt.Errorf("unsupported media backend %q", cfg.Backend)
}

// ======================================================
// Local disk
// ======================================================

const LocalURLPrefix = "/uploads"

type LocalStore struct {
	Dir string
}

func NewLocalStore(dir string) *LocalStore {
	return &LocalStore{Dir: dir}
}

func (s *LocalStore) Save(_ context.Context, name, _ string, data []byte) (string, error) {
	if filepath.Base(name) != name {
		return "", errors.New("media: invalid file name")
	}
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(filepath.Join(s.Dir, name), data, 0o644); err != nil {
		return "", err
	}
	return path.Join(LocalURLPrefix, name), nil
}

// ======================================================
// S3
// ======================================================

const s3KeyPrefix = "menu/"

type S3Store struct {
	client     *s3.Client
	bucket     string
	publicBase string
}

func NewS3Store(cfg config.MediaConfig) (*S3Store, error) {
	if cfg.S3Bucket == "" {
		return nil, errors.New("media: S3 bucket is required")
	}

	opts := s3.Options{
		Region: cfg.S3Region,
	}
	if cfg.S3AccessKeyID != "" {
		opts.Credentials = credentials.NewStaticCredentialsProvider(cfg.S3AccessKeyID, cfg.S3SecretKey, "")
	}
	if cfg.S3Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.S3Endpoint)
		opts.UsePathStyle = true
	}

	publicBase := cfg.S3PublicBaseURL
	if publicBase == "" {
		publicBase = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.S3Bucket, cfg.S3Region)
	}

	return &S3Store{
		client:     s3.New(opts),
		bucket:     cfg.S3Bucket,
		publicBase: publicBase,
	}, nil
}

func (s *S3Store) Save(ctx context.Context, name, contentType string, data []byte) (string, error) {
	key := s3KeyPrefix + name
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(s.bucket),
		Key:          aws.String(key),
		Body:         bytes.NewReader(data),
		ContentType:  aws.String(contentType),
		CacheControl: aws.String("public, max-age=31536000, immutable"),
	})
	if err != nil {
		return "", fmt.Errorf("s3 put %s: %w", key, err)
	}
	return s.publicBase + "/" + key, nil
}
