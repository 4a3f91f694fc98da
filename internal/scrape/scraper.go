// Package scrape walks the chord catalog, fetches every diagram version and
// decodes it into a fingering code.
package scrape

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"fretcode/internal/catalog"
	"fretcode/internal/diagram"
	"fretcode/internal/fetch"
	"fretcode/internal/logging"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Options configures a Scraper.
type Options struct {
	BaseURL     string
	Concurrency int
}

// Scraper fetches and decodes diagrams for catalog keys.
type Scraper struct {
	fetcher fetch.Fetcher
	opts    Options
}

// New creates a Scraper backed by f.
func New(f fetch.Fetcher, opts Options) *Scraper {
	if opts.Concurrency < 1 {
		opts.Concurrency = 1
	}
	return &Scraper{fetcher: f, opts: opts}
}

// Result is the outcome for one (key, version). Exactly one of Code and Err is set.
type Result struct {
	Key     catalog.Key
	Version int
	Code    string
	Err     error
}

// Summary describes a finished run.
type Summary struct {
	RunID   string
	Keys    int
	Decoded int
	Skipped int
	Elapsed time.Duration
}

// Versions returns how many diagram versions exist for key, at least one.
func (s *Scraper) Versions(ctx context.Context, key catalog.Key) (int, error) {
	body, err := s.fetcher.Fetch(ctx, fetch.BuildURL(s.opts.BaseURL, key, 0))
	if err != nil {
		return 0, err
	}
	n, err := fetch.CountVersions(body)
	if err != nil {
		return 0, err
	}
	if n < 1 {
		n = 1
	}
	return n, nil
}

// Scrape fetches one diagram version and returns its fingering code.
func (s *Scraper) Scrape(ctx context.Context, key catalog.Key, version int) (string, error) {
	body, err := s.fetcher.Fetch(ctx, fetch.BuildURL(s.opts.BaseURL, key, version))
	if err != nil {
		return "", err
	}
	grid, err := diagram.ExtractPage(bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	logging.DecodeDebug("%s v%d: %d strings", key, version, len(grid))
	return diagram.Encode(grid)
}

func (s *Scraper) scrapeKey(ctx context.Context, key catalog.Key) []Result {
	n, err := s.Versions(ctx, key)
	if err != nil {
		return []Result{{Key: key, Err: fmt.Errorf("count versions: %w", err)}}
	}

	results := make([]Result, 0, n)
	for v := 1; v <= n; v++ {
		if ctx.Err() != nil {
			break
		}
		code, err := s.Scrape(ctx, key, v)
		results = append(results, Result{Key: key, Version: v, Code: code, Err: err})
	}
	return results
}

// Run scrapes keys concurrently and emits the decoded codes in catalog order.
// A diagram that fails to fetch or decode is logged and skipped; only
// cancellation or an emit failure aborts the run.
func (s *Scraper) Run(ctx context.Context, keys []catalog.Key, emitter *Emitter) (Summary, error) {
	start := time.Now()
	summary := Summary{RunID: uuid.NewString(), Keys: len(keys)}
	logging.Scrape("Run %s started: %d keys, concurrency %d", summary.RunID, len(keys), s.opts.Concurrency)

	results := make([][]Result, len(keys))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.Concurrency)
	for i, key := range keys {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = s.scrapeKey(gctx, key)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return summary, err
	}
	if err := ctx.Err(); err != nil {
		return summary, err
	}

	for _, keyResults := range results {
		for _, r := range keyResults {
			if r.Err != nil {
				summary.Skipped++
				logSkip(summary.RunID, r)
				continue
			}
			if err := emitter.Emit(r.Key, r.Code); err != nil {
				return summary, fmt.Errorf("emit %s: %w", r.Key, err)
			}
			summary.Decoded++
		}
	}
	if err := emitter.Flush(); err != nil {
		return summary, fmt.Errorf("flush output: %w", err)
	}

	summary.Elapsed = time.Since(start)
	logging.Scrape("Run %s finished: %d decoded, %d skipped in %v",
		summary.RunID, summary.Decoded, summary.Skipped, summary.Elapsed)
	return summary, nil
}

func logSkip(runID string, r Result) {
	var malformed *diagram.MalformedDiagramError
	var empty *diagram.EmptyStringError
	switch {
	case errors.As(r.Err, &malformed), errors.As(r.Err, &empty), errors.Is(r.Err, diagram.ErrDiagramNotFound):
		logging.DecodeWarn("[%s] skipping %s v%d: %v", runID, r.Key, r.Version, r.Err)
	default:
		logging.ScrapeWarn("[%s] skipping %s v%d: %v", runID, r.Key, r.Version, r.Err)
	}
}
