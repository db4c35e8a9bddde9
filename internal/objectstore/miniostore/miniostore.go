package miniostore

import (
	"context"
	"io"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/pkg/errors"
)

type Options struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Region    string
	Bucket    string
	// PublicBaseURL: префикс ссылок для клиентов, по умолчанию endpoint.
	PublicBaseURL string
}

type Store struct {
	c       *minio.Client
	bucket  string
	region  string
	baseURL string
}

func New(opts Options) (*Store, error) {
	if opts.Bucket == "" {
		return nil, errors.New("bucket is required")
	}
	c, err := minio.New(opts.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, ""),
		Secure: opts.UseSSL,
		Region: opts.Region,
	})
	if err != nil {
		return nil, errors.Wrap(err, "minio client")
	}

	base := opts.PublicBaseURL
	if base == "" {
		scheme := "http://"
		if opts.UseSSL {
			scheme = "https://"
		}
		base = scheme + opts.Endpoint
	}

	return &Store{
		c:       c,
		bucket:  opts.Bucket,
		region:  opts.Region,
		baseURL: strings.TrimRight(base, "/"),
	}, nil
}

// EnsureBucket создаёт бакет при первом старте.
func (s *Store) EnsureBucket(ctx context.Context) error {
	exists, err := s.c.BucketExists(ctx, s.bucket)
	if err != nil {
		return errors.Wrap(err, "minio bucket exists")
	}
	if exists {
		return nil
	}
	if err := s.c.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{Region: s.region}); err != nil {
		return errors.Wrap(err, "minio make bucket")
	}
	return nil
}

func (s *Store) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	_, err := s.c.PutObject(ctx, s.bucket, key, r, size, minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return errors.Wrap(err, "minio put object")
	}
	return nil
}

func (s *Store) Remove(ctx context.Context, key string) error {
	if err := s.c.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return errors.Wrap(err, "minio remove object")
	}
	return nil
}

// URL: адрес объекта для скачивания; бакет должен разрешать публичное чтение.
func (s *Store) URL(key string) string {
	return s.baseURL + "/" + s.bucket + "/" + key
}
