// Package courses loads the course catalog and matches catalog entries to
// free-text queries by embedding similarity.
package courses

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	types "github.com/yungbote/careercompass-backend/internal/domain"
	"github.com/yungbote/careercompass-backend/internal/data/repos"
	"github.com/yungbote/careercompass-backend/internal/platform/llm"
	"github.com/yungbote/careercompass-backend/internal/platform/logger"
	"github.com/yungbote/careercompass-backend/internal/platform/qdrant"
)

var ErrMissingColumn = errors.New("course csv missing required column")

var requiredColumns = []string{"title", "course_description"}

type ImportOptions struct {
	// Concurrency bounds in-flight embedding calls.
	Concurrency int
	// BatchSize is the number of descriptions per embedding call.
	BatchSize int
	// RequestsPerSecond throttles embedding calls; <= 0 disables throttling.
	RequestsPerSecond float64
	DryRun            bool
}

type ImportResult struct {
	Read     int
	Skipped  int
	Inserted int
}

type Importer struct {
	log     *logger.Logger
	courses repos.CourseRepo
	ai      llm.Client
	index   qdrant.Index
	opts    ImportOptions
}

// NewImporter builds a catalog importer. index may be nil.
func NewImporter(log *logger.Logger, courses repos.CourseRepo, ai llm.Client, index qdrant.Index, opts ImportOptions) *Importer {
	if opts.Concurrency <= 0 {
		opts.Concurrency = 4
	}
	if opts.BatchSize <= 0 {
		opts.BatchSize = 16
	}
	return &Importer{log: log.With("service", "CourseImporter"), courses: courses, ai: ai, index: index, opts: opts}
}

// ImportCSV reads catalog rows, embeds their descriptions and stores them.
// Rows without a description are skipped; an "id" column is ignored.
func (im *Importer) ImportCSV(ctx context.Context, r io.Reader) (ImportResult, error) {
	rows, skipped, err := parseCSV(r)
	if err != nil {
		return ImportResult{}, err
	}
	res := ImportResult{Read: len(rows) + skipped, Skipped: skipped}
	im.log.Info("Course CSV parsed", "rows", res.Read, "skipped", skipped, "dry_run", im.opts.DryRun)
	if im.opts.DryRun || len(rows) == 0 {
		return res, nil
	}

	if err := im.embed(ctx, rows); err != nil {
		return res, err
	}
	inserted, err := im.courses.Create(ctx, nil, rows)
	if err != nil {
		return res, err
	}
	res.Inserted = len(inserted)
	im.log.Info("Courses imported", "inserted", res.Inserted)
	if err := im.indexCourses(ctx, inserted); err != nil {
		return res, err
	}
	return res, nil
}

// Reindex pushes every stored embedding to the index. It returns the number
// of courses written.
func (im *Importer) Reindex(ctx context.Context) (int, error) {
	if im.index == nil {
		return 0, errors.New("no course index configured")
	}
	rows, err := im.courses.ListWithEmbeddings(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("list courses: %w", err)
	}
	if err := im.indexCourses(ctx, rows); err != nil {
		return 0, err
	}
	im.log.Info("Course index rebuilt", "courses", len(rows))
	return len(rows), nil
}

func (im *Importer) indexCourses(ctx context.Context, rows []*types.Course) error {
	if im.index == nil || len(rows) == 0 {
		return nil
	}
	for start := 0; start < len(rows); start += im.opts.BatchSize {
		batch := rows[start:min(start+im.opts.BatchSize, len(rows))]
		points := make([]qdrant.Point, 0, len(batch))
		for _, c := range batch {
			if c.ID == uuid.Nil {
				return fmt.Errorf("index courses: course %q has no id", c.Title)
			}
			vec, err := c.EmbeddingVector()
			if err != nil || len(vec) == 0 {
				continue
			}
			points = append(points, qdrant.Point{
				ID:     c.ID.String(),
				Vector: vec,
				Payload: map[string]any{
					"title":      c.Title,
					"course_url": c.CourseURL,
				},
			})
		}
		if err := im.index.Upsert(ctx, points); err != nil {
			return fmt.Errorf("index courses: %w", err)
		}
	}
	return nil
}

func (im *Importer) embed(ctx context.Context, rows []*types.Course) error {
	var limiter *rate.Limiter
	if im.opts.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(im.opts.RequestsPerSecond), 1)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(im.opts.Concurrency)

	var mu sync.Mutex
	done := 0
	for start := 0; start < len(rows); start += im.opts.BatchSize {
		batch := rows[start:min(start+im.opts.BatchSize, len(rows))]
		g.Go(func() error {
			if limiter != nil {
				if err := limiter.Wait(gctx); err != nil {
					return err
				}
			}
			inputs := make([]string, len(batch))
			for i, c := range batch {
				inputs[i] = c.Description
			}
			vecs, err := im.ai.Embed(gctx, inputs)
			if err != nil {
				return fmt.Errorf("embed courses: %w", err)
			}
			if len(vecs) != len(batch) {
				return fmt.Errorf("embed courses: got %d vectors for %d inputs", len(vecs), len(batch))
			}
			for i, c := range batch {
				if err := c.SetEmbedding(vecs[i]); err != nil {
					return err
				}
			}
			mu.Lock()
			done += len(batch)
			n := done
			mu.Unlock()
			im.log.Debug("Course batch embedded", "done", n, "total", len(rows))
			return nil
		})
	}
	return g.Wait()
}

func parseCSV(r io.Reader) ([]*types.Course, int, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	header, err := cr.Read()
	if err != nil {
		return nil, 0, fmt.Errorf("read csv header: %w", err)
	}
	idx := map[string]int{}
	for i, h := range header {
		idx[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}
	for _, col := range requiredColumns {
		if _, ok := idx[col]; !ok {
			return nil, 0, fmt.Errorf("%w: %s", ErrMissingColumn, col)
		}
	}
	field := func(rec []string, name string) string {
		i, ok := idx[name]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	var (
		out     []*types.Course
		skipped int
	)
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, 0, fmt.Errorf("read csv line %d: %w", line, err)
		}
		desc := field(rec, "course_description")
		if desc == "" {
			skipped++
			continue
		}
		out = append(out, &types.Course{
			Title:       field(rec, "title"),
			Description: desc,
			Rating:      field(rec, "rating"),
			Duration:    field(rec, "duration"),
			Difficulty:  field(rec, "difficulty"),
			CourseURL:   field(rec, "course_url"),
			Source:      field(rec, "source"),
			Type:        field(rec, "type"),
		})
	}
	return out, skipped, nil
}
