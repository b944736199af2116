package loader

import (
	"context"
	"fmt"
	"io"
	"log"
	"sort"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinioConfig carries everything a MinioSource needs; mapped from the
// process configuration by the caller.
type MinioConfig struct {
	Endpoint          string
	AccessKey         string
	SecretKey         string
	Secure            bool
	Region            string
	Bucket            string
	FolderPrefix      string
	AllowedExtensions []string
	SampleFraction    float64
	SampleRandom      bool
	SampleSeed        *int64
}

// MinioSource loads documents from a MinIO/S3 bucket, with an extension
// allow-list, an optional folder prefix, and fractional sampling of the
// listing.
type MinioSource struct {
	client *minio.Client
	cfg    MinioConfig
}

func NewMinioSource(cfg MinioConfig) (*MinioSource, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("minio endpoint is required")
	}
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.Secure,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}
	return &MinioSource{client: client, cfg: cfg}, nil
}

// CheckConnection verifies the server answers at all before a run starts.
func (s *MinioSource) CheckConnection(ctx context.Context) error {
	if _, err := s.client.ListBuckets(ctx); err != nil {
		return fmt.Errorf("minio connection check failed: %w", err)
	}
	return nil
}

// ListFiles returns the sorted object names under the configured prefix that
// pass the extension allow-list.
func (s *MinioSource) ListFiles(ctx context.Context) ([]string, error) {
	opts := minio.ListObjectsOptions{
		Prefix:    s.cfg.FolderPrefix,
		Recursive: true,
	}

	var files []string
	for obj := range s.client.ListObjects(ctx, s.cfg.Bucket, opts) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list bucket %s: %w", s.cfg.Bucket, obj.Err)
		}
		if hasAllowedExtension(obj.Key, s.cfg.AllowedExtensions) {
			files = append(files, obj.Key)
		}
	}
	sort.Strings(files)
	return files, nil
}

func (s *MinioSource) readObject(ctx context.Context, name string) (string, error) {
	obj, err := s.client.GetObject(ctx, s.cfg.Bucket, name, minio.GetObjectOptions{})
	if err != nil {
		return "", err
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return "", err
	}
	return decodeText(data), nil
}

func (s *MinioSource) Load(ctx context.Context) ([]Document, error) {
	if err := s.CheckConnection(ctx); err != nil {
		return nil, err
	}

	files, err := s.ListFiles(ctx)
	if err != nil {
		return nil, err
	}
	files = sampleNames(files, s.cfg.SampleFraction, s.cfg.SampleRandom, s.cfg.SampleSeed)

	var docs []Document
	for _, name := range files {
		content, err := s.readObject(ctx, name)
		if err != nil {
			log.Printf("warning: failed to read %s: %v", name, err)
			continue
		}
		content = strings.TrimSpace(content)
		if content == "" {
			continue
		}
		docs = append(docs, Document{Name: name, Content: content})
	}
	return docs, nil
}
