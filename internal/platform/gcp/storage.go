package gcp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"github.com/yungbote/careercompass-backend/internal/platform/ctxutil"
	"github.com/yungbote/careercompass-backend/internal/platform/logger"
)

var ErrInvalidGSURI = errors.New("invalid gs:// uri")

// Object is a downloaded object with its stored content type.
type Object struct {
	Data        []byte
	ContentType string
}

type ObjectReader interface {
	// Download reads at most maxBytes of the object named by a gs://bucket/key uri.
	Download(ctx context.Context, uri string, maxBytes int64) (*Object, error)
	Close() error
}

type objectReader struct {
	log    *logger.Logger
	client *storage.Client
}

func NewObjectReader(log *logger.Logger) (ObjectReader, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	ctx := context.Background()
	var opts []option.ClientOption
	if host := strings.TrimSpace(os.Getenv("STORAGE_EMULATOR_HOST")); host != "" {
		opts = []option.ClientOption{option.WithoutAuthentication()}
	} else {
		opts = append(ClientOptionsFromEnv(), option.WithScopes(storage.ScopeReadOnly))
	}
	c, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("storage client: %w", err)
	}
	return &objectReader{log: log.With("service", "gcp.ObjectReader"), client: c}, nil
}

func (r *objectReader) Close() error {
	if r == nil || r.client == nil {
		return nil
	}
	return r.client.Close()
}

func (r *objectReader) Download(ctx context.Context, uri string, maxBytes int64) (*Object, error) {
	bucket, key, err := ParseGSURI(uri)
	if err != nil {
		return nil, err
	}
	ctx = ctxutil.Default(ctx)
	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	rd, err := r.client.Bucket(bucket).Object(key).NewReader(ctx)
	if err != nil {
		return nil, fmt.Errorf("open gcs reader %s: %w", uri, err)
	}
	defer rd.Close()

	var src io.Reader = rd
	if maxBytes > 0 {
		src = io.LimitReader(rd, maxBytes)
	}
	data, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("read gcs object %s: %w", uri, err)
	}
	r.log.Debug("Downloaded object", "bucket", bucket, "bytes", len(data))
	return &Object{Data: data, ContentType: rd.Attrs.ContentType}, nil
}

// ParseGSURI splits gs://bucket/key into its parts.
func ParseGSURI(uri string) (bucket, key string, err error) {
	uri = strings.TrimSpace(uri)
	if !strings.HasPrefix(uri, "gs://") {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidGSURI, uri)
	}
	rest := strings.TrimPrefix(uri, "gs://")
	i := strings.Index(rest, "/")
	if i <= 0 || i == len(rest)-1 {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidGSURI, uri)
	}
	return rest[:i], rest[i+1:], nil
}
