// Package resume turns the resume reference stored with a user's answers into
// plain text for the planner.
package resume

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/yungbote/careercompass-backend/internal/platform/envutil"
	"github.com/yungbote/careercompass-backend/internal/platform/gcp"
	"github.com/yungbote/careercompass-backend/internal/platform/httpx"
	"github.com/yungbote/careercompass-backend/internal/platform/logger"
)

var ErrUnsupportedResume = errors.New("unsupported resume format")

type Resolver interface {
	// Resolve returns the resume text for ref. An empty ref resolves to "".
	Resolve(ctx context.Context, ref string) (string, error)
}

type Options struct {
	MaxChars   int
	MaxBytes   int64
	MaxRetries int
	HTTPClient *http.Client
}

func OptionsFromEnv() Options {
	return Options{
		MaxChars:   envutil.Int("RESUME_MAX_CHARS", 20000),
		MaxBytes:   int64(envutil.Int("RESUME_MAX_BYTES", 10<<20)),
		MaxRetries: envutil.Int("RESUME_FETCH_MAX_RETRIES", 2),
		HTTPClient: &http.Client{Timeout: envutil.Duration("RESUME_FETCH_TIMEOUT", 30*time.Second)},
	}
}

type resolver struct {
	log     *logger.Logger
	objects gcp.ObjectReader
	docs    gcp.TextExtractor
	opts    Options
	backoff time.Duration
}

// NewResolver builds a Resolver. objects and docs may be nil; references that
// need them then fail with ErrUnsupportedResume.
func NewResolver(log *logger.Logger, objects gcp.ObjectReader, docs gcp.TextExtractor, opts Options) Resolver {
	if opts.MaxChars <= 0 {
		opts.MaxChars = 20000
	}
	if opts.MaxBytes <= 0 {
		opts.MaxBytes = 10 << 20
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &resolver{log: log.With("service", "ResumeResolver"), objects: objects, docs: docs, opts: opts, backoff: 500 * time.Millisecond}
}

func (r *resolver) Resolve(ctx context.Context, ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", nil
	}

	var (
		data        []byte
		contentType string
		err         error
	)
	switch {
	case strings.HasPrefix(ref, "gs://"):
		if r.objects == nil {
			return "", fmt.Errorf("%w: object storage not configured", ErrUnsupportedResume)
		}
		obj, dErr := r.objects.Download(ctx, ref, r.opts.MaxBytes)
		if dErr != nil {
			return "", fmt.Errorf("download resume: %w", dErr)
		}
		data, contentType = obj.Data, obj.ContentType
	case strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://"):
		data, contentType, err = r.fetch(ctx, ref)
		if err != nil {
			return "", err
		}
	default:
		// Inline resume text.
		return r.finish(ref), nil
	}

	text, err := r.toText(ctx, data, contentType)
	if err != nil {
		return "", err
	}
	out := r.finish(text)
	r.log.Debug("Resume resolved", "content_type", contentType, "bytes", len(data), "chars", utf8.RuneCountInString(out))
	return out, nil
}

func (r *resolver) fetch(ctx context.Context, url string) ([]byte, string, error) {
	backoff := r.backoff
	for attempt := 0; ; attempt++ {
		data, ct, resp, err := r.fetchOnce(ctx, url)
		if err == nil {
			return data, ct, nil
		}
		if !httpx.IsRetryableError(err) || attempt >= r.opts.MaxRetries {
			return nil, "", fmt.Errorf("fetch resume: %w", err)
		}
		sleepFor := httpx.JitterSleep(httpx.RetryAfterDuration(resp, backoff, 5*time.Second))
		r.log.Warn("Resume fetch retrying", "attempt", attempt+1, "sleep", sleepFor.String(), "error", err)
		if err := httpx.Sleep(ctx, sleepFor); err != nil {
			return nil, "", err
		}
		backoff *= 2
	}
}

type statusError struct {
	StatusCode int
}

func (e *statusError) Error() string       { return fmt.Sprintf("http status %d", e.StatusCode) }
func (e *statusError) HTTPStatusCode() int { return e.StatusCode }

func (r *resolver) fetchOnce(ctx context.Context, url string) ([]byte, string, *http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", nil, err
	}
	resp, err := r.opts.HTTPClient.Do(req)
	if err != nil {
		return nil, "", nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, "", resp, &statusError{StatusCode: resp.StatusCode}
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, r.opts.MaxBytes))
	if err != nil {
		return nil, "", resp, err
	}
	return data, resp.Header.Get("Content-Type"), resp, nil
}

func (r *resolver) toText(ctx context.Context, data []byte, contentType string) (string, error) {
	mt := mediaType(contentType, data)
	switch {
	case isTextual(mt):
		if !utf8.Valid(data) {
			return "", fmt.Errorf("%w: %s is not valid utf-8", ErrUnsupportedResume, mt)
		}
		return string(data), nil
	case mt == "application/pdf" || strings.HasPrefix(mt, "image/"):
		if r.docs == nil {
			return "", fmt.Errorf("%w: %s needs document text extraction", ErrUnsupportedResume, mt)
		}
		text, err := r.docs.ExtractText(ctx, data, mt)
		if err != nil {
			return "", fmt.Errorf("extract resume text: %w", err)
		}
		return text, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedResume, mt)
	}
}

// mediaType prefers the declared type and sniffs when it is missing or generic.
func mediaType(contentType string, data []byte) string {
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil || mt == "" || mt == "application/octet-stream" || mt == "binary/octet-stream" {
		mt, _, _ = mime.ParseMediaType(http.DetectContentType(data))
	}
	return strings.ToLower(mt)
}

func isTextual(mt string) bool {
	switch mt {
	case "application/json", "application/xml", "application/rtf":
		return true
	}
	return strings.HasPrefix(mt, "text/")
}

func (r *resolver) finish(text string) string {
	return truncateRunes(strings.Join(strings.Fields(text), " "), r.opts.MaxChars)
}

func truncateRunes(s string, max int) string {
	if max <= 0 || utf8.RuneCountInString(s) <= max {
		return s
	}
	n := 0
	for i := range s {
		if n == max {
			return s[:i]
		}
		n++
	}
	return s
}
