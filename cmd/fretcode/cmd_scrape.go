package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"fretcode/internal/catalog"
	"fretcode/internal/config"
	"fretcode/internal/fetch"
	"fretcode/internal/scrape"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	scrapeChords      []string
	scrapeVariations  []string
	scrapeFormat      string
	scrapeOut         string
	scrapeBackend     string
	scrapeConcurrency int
	scrapeCache       bool
)

// scrapeCmd fetches and decodes the catalog
var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Fetch chord diagrams and print their fingering codes",
	Long: `Walks the chord catalog (every root with every variation, then the
split chords), fetches each available diagram version and prints one line
per decoded diagram:

  <chord><variation>\t,<code>

Diagrams that cannot be fetched or decoded are logged and skipped.

Examples:
  fretcode scrape
  fretcode scrape --chord E --chord A --variation m --variation 7
  fretcode scrape --format json --out chords.json`,
	RunE: runScrape,
}

func init() {
	scrapeCmd.Flags().StringSliceVar(&scrapeChords, "chord", nil, "Only scrape these chords (repeatable)")
	scrapeCmd.Flags().StringArrayVar(&scrapeVariations, "variation", nil, "Only scrape these variations (repeatable, \"\" = plain)")
	scrapeCmd.Flags().StringVar(&scrapeFormat, "format", "", "Output format: tsv, json, yaml")
	scrapeCmd.Flags().StringVarP(&scrapeOut, "out", "o", "", "Output file (default: stdout)")
	scrapeCmd.Flags().StringVar(&scrapeBackend, "backend", "", "Fetch backend: http, browser")
	scrapeCmd.Flags().IntVar(&scrapeConcurrency, "concurrency", 0, "Parallel catalog lookups")
	scrapeCmd.Flags().BoolVar(&scrapeCache, "cache", false, "Cache fetched pages in sqlite")
}

func applyScrapeFlags(c *config.Config) {
	if scrapeFormat != "" {
		c.Output.Format = scrapeFormat
	}
	if scrapeOut != "" {
		c.Output.Path = scrapeOut
	}
	if scrapeBackend != "" {
		c.Fetch.Backend = scrapeBackend
	}
	if scrapeConcurrency > 0 {
		c.Fetch.Concurrency = scrapeConcurrency
	}
	if scrapeCache {
		c.Cache.Enabled = true
	}
}

func runScrape(cmd *cobra.Command, args []string) error {
	applyScrapeFlags(cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Handle graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			logger.Info("Received shutdown signal")
			cancel()
		case <-ctx.Done():
		}
	}()

	keys := catalog.FilterVariations(catalog.Filter(catalog.All(), scrapeChords), scrapeVariations)
	if len(keys) == 0 {
		return fmt.Errorf("no catalog entries match the given filters")
	}

	fetcher, closeFetcher, err := buildFetcher(cfg)
	if err != nil {
		return err
	}
	defer closeFetcher()

	var out io.Writer = cmd.OutOrStdout()
	if cfg.Output.Path != "" {
		f, err := os.Create(cfg.Output.Path)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	emitter, err := scrape.NewEmitter(out, cfg.Output.Format)
	if err != nil {
		return err
	}

	s := scrape.New(fetcher, scrape.Options{
		BaseURL:     cfg.Catalog.BaseURL,
		Concurrency: cfg.Fetch.Concurrency,
	})
	summary, err := s.Run(ctx, keys, emitter)
	if err != nil {
		return fmt.Errorf("scrape failed: %w", err)
	}

	logger.Info("Scrape finished",
		zap.String("run_id", summary.RunID),
		zap.Int("keys", summary.Keys),
		zap.Int("decoded", summary.Decoded),
		zap.Int("skipped", summary.Skipped),
		zap.Duration("elapsed", summary.Elapsed))
	fmt.Fprintf(cmd.ErrOrStderr(), "%d diagrams decoded, %d skipped\n", summary.Decoded, summary.Skipped)
	return nil
}

// buildFetcher assembles the configured fetch backend and optional page cache.
// The returned func releases whatever was opened.
func buildFetcher(c *config.Config) (fetch.Fetcher, func(), error) {
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	var f fetch.Fetcher
	switch c.Fetch.Backend {
	case "browser":
		bf := fetch.NewBrowserFetcher(fetch.BrowserOptions{
			Headless:    c.Browser.Headless,
			Bin:         c.Browser.Bin,
			DebuggerURL: c.Browser.Debugger,
			Timeout:     c.GetFetchTimeout(),
		})
		closers = append(closers, func() { _ = bf.Close() })
		f = bf
	default:
		f = fetch.NewHTTPFetcher(c.GetFetchTimeout(), c.Fetch.UserAgent, c.Fetch.MaxBodyBytes)
	}

	if c.Cache.Enabled {
		cache, err := fetch.OpenPageCache(c.Cache.Path, c.GetCacheTTL())
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("failed to open page cache: %w", err)
		}
		closers = append(closers, func() { _ = cache.Close() })
		if n, err := cache.Purge(context.Background()); err == nil && n > 0 {
			logger.Debug("Purged expired pages", zap.Int64("count", n))
		}
		f = fetch.NewCachingFetcher(f, cache)
	}

	return f, cleanup, nil
}
