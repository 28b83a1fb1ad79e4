package resume

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/yungbote/careercompass-backend/internal/platform/gcp"
	"github.com/yungbote/careercompass-backend/internal/platform/logger"
)

type fakeObjects struct {
	obj *gcp.Object
	err error
	uri string
}

func (f *fakeObjects) Download(_ context.Context, uri string, _ int64) (*gcp.Object, error) {
	f.uri = uri
	return f.obj, f.err
}

func (f *fakeObjects) Close() error { return nil }

type fakeDocs struct {
	text string
	mime string
}

func (f *fakeDocs) ExtractText(_ context.Context, _ []byte, mimeType string) (string, error) {
	f.mime = mimeType
	return f.text, nil
}

func (f *fakeDocs) Close() error { return nil }

func newTestResolver(objects gcp.ObjectReader, docs gcp.TextExtractor, opts Options) Resolver {
	r := NewResolver(logger.Nop(), objects, docs, opts)
	r.(*resolver).backoff = time.Millisecond
	return r
}

func TestResolveEmptyAndInline(t *testing.T) {
	r := newTestResolver(nil, nil, Options{})
	got, err := r.Resolve(context.Background(), "   ")
	if err != nil || got != "" {
		t.Fatalf("empty ref: got %q, %v", got, err)
	}
	got, err = r.Resolve(context.Background(), "Senior   analyst\n\nSQL,  Python")
	if err != nil {
		t.Fatalf("inline: %v", err)
	}
	if got != "Senior analyst SQL, Python" {
		t.Fatalf("inline: got %q", got)
	}
}

func TestResolveTruncates(t *testing.T) {
	r := newTestResolver(nil, nil, Options{MaxChars: 5})
	got, err := r.Resolve(context.Background(), "héllo world")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got != "héllo" {
		t.Fatalf("got %q", got)
	}
}

func TestResolveGCSText(t *testing.T) {
	objects := &fakeObjects{obj: &gcp.Object{Data: []byte("Resume\ttext"), ContentType: "text/plain; charset=utf-8"}}
	r := newTestResolver(objects, nil, Options{})
	got, err := r.Resolve(context.Background(), "gs://bucket/resumes/a.txt")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got != "Resume text" || objects.uri != "gs://bucket/resumes/a.txt" {
		t.Fatalf("got %q from %q", got, objects.uri)
	}
}

func TestResolvePDFNeedsExtractor(t *testing.T) {
	pdf := &gcp.Object{Data: []byte("%PDF-1.4 binary"), ContentType: "application/pdf"}

	r := newTestResolver(&fakeObjects{obj: pdf}, nil, Options{})
	if _, err := r.Resolve(context.Background(), "gs://b/r.pdf"); !errors.Is(err, ErrUnsupportedResume) {
		t.Fatalf("expected ErrUnsupportedResume, got %v", err)
	}

	docs := &fakeDocs{text: "Extracted  resume"}
	r = newTestResolver(&fakeObjects{obj: pdf}, docs, Options{})
	got, err := r.Resolve(context.Background(), "gs://b/r.pdf")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got != "Extracted resume" || docs.mime != "application/pdf" {
		t.Fatalf("got %q mime %q", got, docs.mime)
	}
}

func TestResolveGCSWithoutStorage(t *testing.T) {
	r := newTestResolver(nil, nil, Options{})
	if _, err := r.Resolve(context.Background(), "gs://b/r.txt"); !errors.Is(err, ErrUnsupportedResume) {
		t.Fatalf("expected ErrUnsupportedResume, got %v", err)
	}
}

func TestResolveHTTPRetries(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("From the web"))
	}))
	defer srv.Close()

	r := newTestResolver(nil, nil, Options{MaxRetries: 2})
	got, err := r.Resolve(context.Background(), srv.URL+"/resume.txt")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got != "From the web" || atomic.LoadInt32(&calls) != 2 {
		t.Fatalf("got %q after %d calls", got, calls)
	}
}

func TestResolveHTTPNotFound(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()
	r := newTestResolver(nil, nil, Options{MaxRetries: 2})
	_, err := r.Resolve(context.Background(), srv.URL)
	if err == nil || !strings.Contains(err.Error(), "404") {
		t.Fatalf("expected 404 error, got %v", err)
	}
}

func TestResolveUnsupportedBinary(t *testing.T) {
	obj := &gcp.Object{Data: []byte{0x50, 0x4b, 0x03, 0x04, 0, 0, 0}, ContentType: "application/zip"}
	r := newTestResolver(&fakeObjects{obj: obj}, &fakeDocs{}, Options{})
	if _, err := r.Resolve(context.Background(), "gs://b/r.zip"); !errors.Is(err, ErrUnsupportedResume) {
		t.Fatalf("expected ErrUnsupportedResume, got %v", err)
	}
}
