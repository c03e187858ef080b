// Package storage keeps uploaded profile pictures on local disk or in S3.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// PublicPrefix is the URL path local uploads are served under.
const PublicPrefix = "uploads"

var ErrUnsupportedType = errors.New("only images are allowed")

var (
	imageExts  = regexp.MustCompile(`^\.(jpe?g|png|webp)$`)
	imageMimes = regexp.MustCompile(`^image/(jpe?g|png|webp)$`)
)

// FileStore saves a named object and returns the reference stored on the user record.
type FileStore interface {
	Save(ctx context.Context, name, contentType string, r io.Reader) (string, error)
}

// ValidateImage accepts jpeg, jpg, png and webp by both extension and MIME type
// and returns the lower-cased extension.
func ValidateImage(filename, contentType string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" || !imageExts.MatchString(ext) || !imageMimes.MatchString(strings.ToLower(strings.TrimSpace(contentType))) {
		return "", ErrUnsupportedType
	}
	return ext, nil
}

func ProfilePictureName(ext string, now time.Time) string {
	return fmt.Sprintf("profile-%d%s", now.UnixMilli(), ext)
}

type DiskStore struct {
	dir string
}

func NewDiskStore(dir string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &DiskStore{dir: dir}, nil
}

// Save returns the path the file is served at, e.g. "uploads/profile-1700000000000.png",
// wherever the directory lives on disk.
func (s *DiskStore) Save(ctx context.Context, name, contentType string, r io.Reader) (string, error) {
	name = filepath.Base(name)
	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, r); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}
	return path.Join(PublicPrefix, name), nil
}

type S3Store struct {
	uploader *manager.Uploader
	bucket   string
	prefix   string
}

func NewS3Store(ctx context.Context, bucket, prefix string) (*S3Store, error) {
	if bucket == "" {
		return nil, errors.New("s3 bucket is required")
	}
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("error loading AWS config: %w", err)
	}

	client := s3.NewFromConfig(cfg)
	return &S3Store{
		uploader: manager.NewUploader(client),
		bucket:   bucket,
		prefix:   strings.Trim(prefix, "/"),
	}, nil
}

func (s *S3Store) Save(ctx context.Context, name, contentType string, r io.Reader) (string, error) {
	key := name
	if s.prefix != "" {
		key = s.prefix + "/" + name
	}

	result, err := s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        r,
		ACL:         "public-read",
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", key, err)
	}
	return result.Location, nil
}
