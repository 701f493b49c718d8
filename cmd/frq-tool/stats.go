package main

import (
	"flag"
	"fmt"
	"io"
	"sync"

	"github.com/cwbudde/algo-frq/analysis"
	"github.com/cwbudde/algo-frq/internal/wavio"
	"go.uber.org/zap"
)

type statsResult struct {
	Path    string            `json:"path"`
	Summary *analysis.Summary `json:"summary,omitempty"`
	Error   string            `json:"error,omitempty"`
}

func runStats(args []string, stdout io.Writer, log *zap.Logger) error {
	fs := flag.NewFlagSet("stats", flag.ContinueOnError)
	workersRaw := fs.String("workers", "auto", "Parallel workers (number or 'auto')")
	jsonOut := fs.Bool("json", false, "Print results as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return fmt.Errorf("%w: at least one frq file", errMissingFlag)
	}
	workers, err := wavio.ParseWorkers(*workersRaw)
	if err != nil {
		return fmt.Errorf("invalid -workers: %w", err)
	}

	results := summarizeFiles(fs.Args(), workers, log)
	if *jsonOut {
		return writeJSON(stdout, results)
	}
	failed := 0
	for _, r := range results {
		if r.Summary == nil {
			failed++
			fmt.Fprintf(stdout, "%-40s error: %s\n", r.Path, r.Error)
			continue
		}
		s := r.Summary
		fmt.Fprintf(stdout, "%-40s %6d frames  %5.1f%% voiced  mean %8.3f Hz  cached %8.3f Hz\n",
			r.Path, s.Frames, 100*s.VoicedRatio, s.MeanHz, s.CachedAverage)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(results))
	}
	return nil
}

// summarizeFiles reads and summarizes paths with a bounded worker pool.
// Results keep the order of paths.
func summarizeFiles(paths []string, workers int, log *zap.Logger) []statsResult {
	if workers < 1 {
		workers = 1
	}
	if workers > len(paths) {
		workers = len(paths)
	}
	results := make([]statsResult, len(paths))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for i := range jobs {
				path := paths[i]
				results[i].Path = path
				t, err := readTable(path)
				if err != nil {
					results[i].Error = err.Error()
					log.Warn("skipping file", zap.Int("worker", workerID), zap.String("path", path), zap.Error(err))
					continue
				}
				s := analysis.Summarize(t)
				results[i].Summary = &s
				log.Debug("summarized", zap.Int("worker", workerID), zap.String("path", path))
			}
		}(w)
	}
	for i := range paths {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
	return results
}
