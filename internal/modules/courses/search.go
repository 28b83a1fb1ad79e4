package courses

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/google/uuid"

	types "github.com/yungbote/careercompass-backend/internal/domain"
	"github.com/yungbote/careercompass-backend/internal/data/repos"
	"github.com/yungbote/careercompass-backend/internal/platform/llm"
	"github.com/yungbote/careercompass-backend/internal/platform/logger"
	"github.com/yungbote/careercompass-backend/internal/platform/qdrant"
)

const (
	DefaultMatchThreshold = 0.5
	DefaultMatchCount     = 3
)

type Match struct {
	Course *types.Course
	Score  float64
}

type Searcher interface {
	// Match returns up to count courses whose similarity to query exceeds
	// threshold, best first.
	Match(ctx context.Context, query string, threshold float64, count int) ([]Match, error)
}

type searcher struct {
	log     *logger.Logger
	courses repos.CourseRepo
	ai      llm.Client
	index   qdrant.Index
}

// NewSearcher ranks courses against a query embedding. With a nil index the
// whole catalog table is scanned.
func NewSearcher(log *logger.Logger, courses repos.CourseRepo, ai llm.Client, index qdrant.Index) Searcher {
	return &searcher{log: log.With("service", "CourseSearcher"), courses: courses, ai: ai, index: index}
}

func (s *searcher) Match(ctx context.Context, query string, threshold float64, count int) ([]Match, error) {
	query = strings.TrimSpace(query)
	if query == "" || count <= 0 {
		return []Match{}, nil
	}
	vecs, err := s.ai.Embed(ctx, []string{query})
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	if len(vecs) != 1 {
		return nil, fmt.Errorf("embed query: got %d vectors", len(vecs))
	}
	q := vecs[0]

	if s.index != nil {
		out, err := s.matchIndex(ctx, q, threshold, count)
		if err == nil {
			return out, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		s.log.Warn("Course index search failed; scanning catalog", "error", err)
	}
	return s.matchScan(ctx, q, threshold, count)
}

func (s *searcher) matchIndex(ctx context.Context, q []float32, threshold float64, count int) ([]Match, error) {
	hits, err := s.index.Search(ctx, q, count, threshold)
	if err != nil {
		return nil, err
	}
	ids := make([]uuid.UUID, 0, len(hits))
	for _, h := range hits {
		if id, err := uuid.Parse(h.ID); err == nil {
			ids = append(ids, id)
		}
	}
	rows, err := s.courses.GetByIDs(ctx, nil, ids)
	if err != nil {
		return nil, fmt.Errorf("load indexed courses: %w", err)
	}
	byID := make(map[string]*types.Course, len(rows))
	for _, c := range rows {
		byID[c.ID.String()] = c
	}
	out := make([]Match, 0, len(hits))
	for _, h := range hits {
		// Points whose row was deleted are skipped.
		if c, ok := byID[h.ID]; ok && h.Score > threshold {
			out = append(out, Match{Course: c, Score: h.Score})
		}
		if len(out) == count {
			break
		}
	}
	s.log.Debug("Courses matched", "source", "index", "hits", len(hits), "matches", len(out))
	return out, nil
}

func (s *searcher) matchScan(ctx context.Context, q []float32, threshold float64, count int) ([]Match, error) {
	catalog, err := s.courses.ListWithEmbeddings(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	out := make([]Match, 0, count)
	for _, c := range catalog {
		v, err := c.EmbeddingVector()
		if err != nil || len(v) != len(q) {
			continue
		}
		score := Cosine(q, v)
		if score > threshold {
			out = append(out, Match{Course: c, Score: score})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	if len(out) > count {
		out = out[:count]
	}
	s.log.Debug("Courses matched", "source", "scan", "catalog", len(catalog), "matches", len(out))
	return out, nil
}

// Cosine returns the cosine similarity of a and b, or 0 when either is zero
// or their lengths differ.
func Cosine(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		na += x * x
		nb += y * y
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
