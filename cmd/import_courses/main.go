package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/yungbote/careercompass-backend/internal/app"
	"github.com/yungbote/careercompass-backend/internal/modules/courses"
	"github.com/yungbote/careercompass-backend/internal/platform/shutdown"
)

func main() {
	var (
		file        string
		concurrency int
		batchSize   int
		rps         float64
		dryRun      bool
		reindex     bool
	)
	flag.StringVar(&file, "file", "", "course catalog CSV (name, link, description)")
	flag.IntVar(&concurrency, "concurrency", 4, "parallel embedding calls")
	flag.IntVar(&batchSize, "batch", 32, "descriptions per embedding call")
	flag.Float64Var(&rps, "rps", 2, "embedding calls per second; 0 disables throttling")
	flag.BoolVar(&dryRun, "dry-run", false, "parse and embed without writing")
	flag.BoolVar(&reindex, "reindex", false, "push stored embeddings to the course index and exit")
	flag.Parse()

	if reindex {
		runReindex(batchSize)
		return
	}
	if file == "" {
		fmt.Println("-file or -reindex is required")
		os.Exit(2)
	}
	f, err := os.Open(file)
	if err != nil {
		fmt.Printf("open %s: %v\n", file, err)
		os.Exit(1)
	}
	defer f.Close()

	application, err := app.New()
	if err != nil {
		fmt.Printf("init app: %v\n", err)
		os.Exit(1)
	}
	defer application.Close()

	ctx, stop := shutdown.NotifyContext(context.Background())
	defer stop()

	im := courses.NewImporter(application.Log, application.Repos.Course, application.Clients.LLM, application.Clients.Courses, courses.ImportOptions{
		Concurrency:       concurrency,
		BatchSize:         batchSize,
		RequestsPerSecond: rps,
		DryRun:            dryRun,
	})
	res, err := im.ImportCSV(ctx, f)
	if err != nil {
		fmt.Printf("import: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("read=%d skipped=%d inserted=%d dry_run=%v\n", res.Read, res.Skipped, res.Inserted, dryRun)
}

func runReindex(batchSize int) {
	application, err := app.New()
	if err != nil {
		fmt.Printf("init app: %v\n", err)
		os.Exit(1)
	}
	defer application.Close()

	ctx, stop := shutdown.NotifyContext(context.Background())
	defer stop()

	im := courses.NewImporter(application.Log, application.Repos.Course, application.Clients.LLM, application.Clients.Courses, courses.ImportOptions{
		BatchSize: batchSize,
	})
	n, err := im.Reindex(ctx)
	if err != nil {
		fmt.Printf("reindex: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("indexed=%d\n", n)
}
