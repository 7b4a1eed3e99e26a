package output

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/gaurav-prasanna/proofpipe/core"
)

// S3Config locates the artifact object in an S3-compatible bucket.
type S3Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Key       string
	Region    string
	UseSSL    bool
}

// S3Store keeps the last output as a single object.
type S3Store struct {
	api    *minio.Client
	bucket string
	key    string
	secure bool
}

// NewS3Store creates an S3Store. No request is made until the first Save
// or Load.
func NewS3Store(cfg S3Config) (*S3Store, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("s3 bucket is required")
	}
	if cfg.Key == "" {
		cfg.Key = "output.html"
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("creating s3 client: %w", err)
	}

	return &S3Store{api: client, bucket: cfg.Bucket, key: cfg.Key, secure: cfg.UseSSL}, nil
}

// Save overwrites the object with data.
func (s *S3Store) Save(ctx context.Context, data []byte) error {
	_, err := s.api.PutObject(ctx, s.bucket, s.key, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: "text/html; charset=utf-8"})
	if err != nil {
		return fmt.Errorf("put object %s: %w", s.key, err)
	}
	return nil
}

// Load downloads the object into memory.
func (s *S3Store) Load(ctx context.Context) ([]byte, error) {
	obj, err := s.api.GetObject(ctx, s.bucket, s.key, minio.GetObjectOptions{})
	if err != nil {
		return nil, s.loadError(err)
	}
	defer obj.Close()

	buf := new(bytes.Buffer)
	if _, err := io.Copy(buf, obj); err != nil {
		return nil, s.loadError(err)
	}
	return buf.Bytes(), nil
}

// Location returns the object URL.
func (s *S3Store) Location() string {
	u := s.api.EndpointURL()
	return fmt.Sprintf("%s://%s/%s/%s", u.Scheme, u.Host, s.bucket, s.key)
}

func (s *S3Store) loadError(err error) error {
	if isNotFound(err) {
		return ErrNoArtifact
	}
	return fmt.Errorf("get object %s: %w", s.key, err)
}

func isNotFound(err error) bool {
	switch minio.ToErrorResponse(err).Code {
	case "NoSuchKey", "NoSuchBucket":
		return true
	}
	return false
}

var _ core.ArtifactStore = (*S3Store)(nil)
