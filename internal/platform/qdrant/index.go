// Package qdrant is a small REST client for a Qdrant collection holding the
// course description embeddings.
package qdrant

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/yungbote/careercompass-backend/internal/platform/ctxutil"
	"github.com/yungbote/careercompass-backend/internal/platform/logger"
)

const maxErrorBodyBytes = 1024

// Point is one stored vector. ID must be a UUID string.
type Point struct {
	ID      string
	Vector  []float32
	Payload map[string]any
}

// Hit is one search result; Score is a similarity where higher is better.
type Hit struct {
	ID    string
	Score float64
}

type Index interface {
	// Upsert writes points and waits until they are searchable.
	Upsert(ctx context.Context, points []Point) error
	// Search returns at most limit points scoring above minScore, best first.
	Search(ctx context.Context, vector []float32, limit int, minScore float64) ([]Hit, error)
}

type index struct {
	log      *logger.Logger
	cfg      Config
	baseURL  string
	distance string
	http     *http.Client
}

type envelope struct {
	Result json.RawMessage `json:"result"`
	Status json.RawMessage `json:"status"`
}

type searchItem struct {
	ID    json.RawMessage `json:"id"`
	Score float64         `json:"score"`
}

// New connects to the collection and checks that its vector size matches.
func New(ctx context.Context, log *logger.Logger, cfg Config) (Index, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	ix := &index{
		log:     log.With("service", "QdrantCourseIndex"),
		cfg:     cfg,
		baseURL: strings.TrimRight(cfg.URL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
	if err := ix.verify(ctx); err != nil {
		return nil, err
	}
	ix.log.Info("Qdrant course index ready",
		"url", ix.baseURL,
		"collection", cfg.Collection,
		"vector_dim", cfg.VectorDim,
		"distance", ix.distance,
	)
	return ix, nil
}

func (ix *index) Upsert(ctx context.Context, points []Point) error {
	const op = "upsert"
	if len(points) == 0 {
		return nil
	}
	body := make([]map[string]any, 0, len(points))
	for _, p := range points {
		id := strings.TrimSpace(p.ID)
		if id == "" {
			return opErr(op, OperationErrorValidation, "point id is required", nil)
		}
		if err := ix.checkDim(op, id, p.Vector); err != nil {
			return err
		}
		payload := p.Payload
		if payload == nil {
			payload = map[string]any{}
		}
		body = append(body, map[string]any{"id": id, "vector": p.Vector, "payload": payload})
	}
	return ix.doJSON(ctx, op, http.MethodPut, ix.collectionPath("/points?wait=true"), map[string]any{"points": body}, nil)
}

func (ix *index) Search(ctx context.Context, vector []float32, limit int, minScore float64) ([]Hit, error) {
	const op = "search"
	if len(vector) == 0 {
		return nil, opErr(op, OperationErrorValidation, "query vector required", nil)
	}
	if err := ix.checkDim(op, "query", vector); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 10
	}
	req := map[string]any{
		"vector":       vector,
		"limit":        limit,
		"with_payload": false,
		"with_vector":  false,
	}
	if ix.scoreIsSimilarity() {
		req["score_threshold"] = minScore
	}
	var items []searchItem
	if err := ix.doJSON(ctx, op, http.MethodPost, ix.collectionPath("/points/search"), req, &items); err != nil {
		return nil, err
	}

	out := make([]Hit, 0, len(items))
	for _, it := range items {
		id := decodePointID(it.ID)
		score := ix.normalizeScore(it.Score)
		if id == "" || score <= minScore {
			continue
		}
		out = append(out, Hit{ID: id, Score: score})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score == out[j].Score {
			return out[i].ID < out[j].ID
		}
		return out[i].Score > out[j].Score
	})
	return out, nil
}

func (ix *index) checkDim(op, id string, v []float32) error {
	if len(v) == 0 {
		return opErr(op, OperationErrorValidation, fmt.Sprintf("vector %q is empty", id), nil)
	}
	if ix.cfg.VectorDim > 0 && len(v) != ix.cfg.VectorDim {
		return opErr(op, OperationErrorValidation,
			fmt.Sprintf("vector %q dimension mismatch: expected=%d got=%d", id, ix.cfg.VectorDim, len(v)), nil)
	}
	return nil
}

func (ix *index) verify(ctx context.Context) error {
	const op = "verify"
	var result struct {
		Config struct {
			Params struct {
				Vectors struct {
					Size     int    `json:"size"`
					Distance string `json:"distance"`
				} `json:"vectors"`
			} `json:"params"`
		} `json:"config"`
	}
	if err := ix.doJSON(ctx, op, http.MethodGet, ix.collectionPath(""), nil, &result); err != nil {
		return err
	}
	size := result.Config.Params.Vectors.Size
	if ix.cfg.VectorDim > 0 && size != 0 && size != ix.cfg.VectorDim {
		return opErr(op, OperationErrorValidation,
			fmt.Sprintf("collection %q vector size mismatch: expected=%d actual=%d", ix.cfg.Collection, ix.cfg.VectorDim, size), nil)
	}
	if ix.cfg.VectorDim == 0 {
		ix.cfg.VectorDim = size
	}
	ix.distance = strings.TrimSpace(result.Config.Params.Vectors.Distance)
	return nil
}

func (ix *index) doJSON(ctx context.Context, op, method, path string, in any, out any) error {
	var body io.Reader
	if in != nil {
		var buf bytes.Buffer
		if err := json.NewEncoder(&buf).Encode(in); err != nil {
			return opErr(op, OperationErrorEncodeFailed, "encode request failed", err)
		}
		body = &buf
	}
	req, err := http.NewRequestWithContext(ctxutil.Default(ctx), method, ix.baseURL+path, body)
	if err != nil {
		return opErr(op, OperationErrorTransportFailed, "build request failed", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if ix.cfg.APIKey != "" {
		req.Header.Set("api-key", ix.cfg.APIKey)
	}

	resp, err := ix.http.Do(req)
	if err != nil {
		return classifyCallError(op, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return opErr(op, OperationErrorDecodeFailed, "read response failed", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &OperationError{
			Code:       OperationErrorRequestFailed,
			Operation:  op,
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("status=%d body=%q", resp.StatusCode, truncate(raw)),
		}
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return opErr(op, OperationErrorDecodeFailed, "decode envelope failed", err)
	}
	if msg := statusError(env.Status); msg != "" {
		return &OperationError{Code: OperationErrorRequestFailed, Operation: op, StatusCode: resp.StatusCode, Message: msg}
	}
	if out == nil || len(env.Result) == 0 || string(env.Result) == "null" {
		return nil
	}
	if err := json.Unmarshal(env.Result, out); err != nil {
		return opErr(op, OperationErrorDecodeFailed, "decode result failed", err)
	}
	return nil
}

func classifyCallError(op string, err error) error {
	if errors.Is(err, context.Canceled) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return opErr(op, OperationErrorTimeout, "request timed out", err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return opErr(op, OperationErrorTimeout, "request timed out", err)
	}
	return opErr(op, OperationErrorTransportFailed, "request failed", err)
}

// statusError returns "" for an ok status, else a readable message.
func statusError(raw json.RawMessage) string {
	s := strings.TrimSpace(string(raw))
	if s == "" || s == "null" {
		return ""
	}
	var str string
	if err := json.Unmarshal(raw, &str); err == nil {
		if strings.EqualFold(str, "ok") {
			return ""
		}
		return fmt.Sprintf("status=%q", str)
	}
	var obj struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil && strings.TrimSpace(obj.Error) != "" {
		return strings.TrimSpace(obj.Error)
	}
	return "status=" + s
}

func truncate(raw []byte) string {
	if len(raw) <= maxErrorBodyBytes {
		return string(raw)
	}
	return string(raw[:maxErrorBodyBytes]) + "..."
}

func decodePointID(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}
	var n int64
	if err := json.Unmarshal(raw, &n); err == nil {
		return fmt.Sprintf("%d", n)
	}
	return ""
}

func (ix *index) collectionPath(suffix string) string {
	return "/collections/" + ix.cfg.Collection + suffix
}

func (ix *index) scoreIsSimilarity() bool {
	switch strings.ToLower(ix.distance) {
	case "euclid", "manhattan":
		return false
	}
	return true
}

// normalizeScore maps distance metrics onto (0, 1] so thresholds compare
// like cosine similarity.
func (ix *index) normalizeScore(score float64) float64 {
	if ix.scoreIsSimilarity() {
		return score
	}
	if score < 0 {
		score = -score
	}
	return 1.0 / (1.0 + score)
}
