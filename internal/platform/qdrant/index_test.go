package qdrant

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/yungbote/careercompass-backend/internal/platform/logger"
)

type fakeServer struct {
	mu       sync.Mutex
	distance string
	size     int
	upserts  []map[string]any
	search   map[string]any
	apiKey   string
	fail     int
}

func (f *fakeServer) handler(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.apiKey = r.Header.Get("api-key")
		if f.fail != 0 {
			w.WriteHeader(f.fail)
			_, _ = io.WriteString(w, `{"status":{"error":"boom"}}`)
			return
		}
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/collections/courses":
			writeResult(w, map[string]any{"config": map[string]any{"params": map[string]any{
				"vectors": map[string]any{"size": f.size, "distance": f.distance},
			}}})
		case r.Method == http.MethodPut && r.URL.Path == "/collections/courses/points":
			var body struct {
				Points []map[string]any `json:"points"`
			}
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				t.Errorf("decode upsert: %v", err)
			}
			f.upserts = append(f.upserts, body.Points...)
			writeResult(w, map[string]any{"status": "completed"})
		case r.Method == http.MethodPost && r.URL.Path == "/collections/courses/points/search":
			f.search = nil
			_ = json.NewDecoder(r.Body).Decode(&f.search)
			writeResult(w, []map[string]any{
				{"id": "b", "score": 0.7},
				{"id": "a", "score": 0.9},
				{"id": "c", "score": 0.2},
			})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
}

func (f *fakeServer) snapshot() ([]map[string]any, string, map[string]any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]map[string]any(nil), f.upserts...), f.apiKey, f.search
}

func writeResult(w http.ResponseWriter, result any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"result": result, "status": "ok", "time": 0.001})
}

func newTestIndex(t *testing.T, f *fakeServer, cfg Config) Index {
	t.Helper()
	srv := httptest.NewServer(f.handler(t))
	t.Cleanup(srv.Close)
	cfg.URL = srv.URL
	if cfg.Collection == "" {
		cfg.Collection = "courses"
	}
	ix, err := New(context.Background(), logger.Nop(), cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return ix
}

func TestUpsertAndSearch(t *testing.T) {
	f := &fakeServer{distance: "Cosine", size: 3}
	ix := newTestIndex(t, f, Config{APIKey: "secret"})

	err := ix.Upsert(context.Background(), []Point{
		{ID: "a", Vector: []float32{1, 0, 0}, Payload: map[string]any{"title": "A"}},
		{ID: "b", Vector: []float32{0, 1, 0}},
	})
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	upserts, apiKey, _ := f.snapshot()
	if len(upserts) != 2 || upserts[0]["id"] != "a" {
		t.Fatalf("unexpected upserts %#v", upserts)
	}
	if apiKey != "secret" {
		t.Fatalf("api key not sent")
	}

	hits, err := ix.Search(context.Background(), []float32{1, 0, 0}, 3, 0.5)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(hits) != 2 || hits[0].ID != "a" || hits[1].ID != "b" {
		t.Fatalf("unexpected hits %#v", hits)
	}
	if _, _, search := f.snapshot(); search["score_threshold"] != 0.5 {
		t.Fatalf("threshold not forwarded: %#v", search)
	}
}

func TestDimensionChecks(t *testing.T) {
	f := &fakeServer{distance: "Cosine", size: 3}
	ix := newTestIndex(t, f, Config{})

	err := ix.Upsert(context.Background(), []Point{{ID: "a", Vector: []float32{1, 2}}})
	var opErr *OperationError
	if !errors.As(err, &opErr) || opErr.Code != OperationErrorValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, err := ix.Search(context.Background(), nil, 3, 0); err == nil {
		t.Fatalf("expected error for empty query")
	}

	srv := httptest.NewServer(f.handler(t))
	defer srv.Close()
	if _, err := New(context.Background(), logger.Nop(), Config{URL: srv.URL, Collection: "courses", VectorDim: 8}); err == nil {
		t.Fatalf("expected size mismatch")
	}
}

func TestEuclidScoresAreNormalized(t *testing.T) {
	f := &fakeServer{distance: "Euclid", size: 3}
	ix := newTestIndex(t, f, Config{})
	hits, err := ix.Search(context.Background(), []float32{1, 0, 0}, 3, 0.6)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	_, _, search := f.snapshot()
	if _, sent := search["score_threshold"]; sent {
		t.Fatalf("distance metrics must not send a similarity threshold")
	}
	// 1/(1+0.2) is the only score above 0.6.
	if len(hits) != 1 || hits[0].ID != "c" {
		t.Fatalf("unexpected hits %#v", hits)
	}
}

func TestServerErrorIsRetryable(t *testing.T) {
	f := &fakeServer{distance: "Cosine", size: 3}
	ix := newTestIndex(t, f, Config{})
	f.mu.Lock()
	f.fail = http.StatusServiceUnavailable
	f.mu.Unlock()

	_, err := ix.Search(context.Background(), []float32{1, 0, 0}, 3, 0)
	var opErr *OperationError
	if !errors.As(err, &opErr) || opErr.HTTPStatusCode() != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 operation error, got %v", err)
	}
	if !strings.Contains(err.Error(), "search") {
		t.Fatalf("error should name the operation: %v", err)
	}
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("QDRANT_URL", "")
	cfg, err := ConfigFromEnv()
	if err != nil || cfg.Enabled() {
		t.Fatalf("unset url should disable: %#v %v", cfg, err)
	}

	t.Setenv("QDRANT_URL", "qdrant:6333")
	if _, err := ConfigFromEnv(); err == nil {
		t.Fatalf("expected invalid url error")
	}

	t.Setenv("QDRANT_URL", "http://qdrant:6333")
	t.Setenv("QDRANT_VECTOR_DIM", "x")
	var cerr *ConfigError
	if _, err := ConfigFromEnv(); !errors.As(err, &cerr) || cerr.Code != ConfigErrorInvalidVectorDim {
		t.Fatalf("expected vector dim error, got %v", err)
	}

	t.Setenv("QDRANT_VECTOR_DIM", "1536")
	cfg, err = ConfigFromEnv()
	if err != nil || cfg.Collection != "courses" || cfg.VectorDim != 1536 {
		t.Fatalf("unexpected %#v %v", cfg, err)
	}
}
