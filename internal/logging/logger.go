// Package logging provides categorized logging for fretcode on top of zap.
// Every category is a named child of one root zap logger and can be switched
// off individually from the logging section of the config file.
package logging

import (
	"fmt"
	"sync"

	"fretcode/internal/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Category represents a log category/system
type Category string

const (
	CategoryBoot    Category = "boot"    // Startup, config loading
	CategoryFetch   Category = "fetch"   // HTTP requests to the chord site
	CategoryBrowser Category = "browser" // Headless browser fetches
	CategoryCache   Category = "cache"   // Page cache hits, misses, writes
	CategoryDecode  Category = "decode"  // Diagram extraction and encoding
	CategoryScrape  Category = "scrape"  // Catalog runs
)

var (
	mu       sync.RWMutex
	root     = zap.NewNop()
	settings config.LoggingConfig
	loggers  = make(map[Category]*zap.SugaredLogger)
)

// Initialize builds the root logger from the logging section of the config
// and installs it.
func Initialize(opts config.LoggingConfig) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Sampling = nil
	if opts.Format == "console" {
		cfg.Encoding = "console"
		cfg.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	}

	level := zapcore.InfoLevel
	if opts.Level != "" {
		parsed, err := zapcore.ParseLevel(opts.Level)
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", opts.Level, err)
		}
		level = parsed
	}
	cfg.Level = zap.NewAtomicLevelAt(level)

	if opts.File != "" {
		cfg.OutputPaths = []string{opts.File}
	} else {
		cfg.OutputPaths = []string{"stderr"}
	}

	l, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	SetLogger(l, opts.Categories)
	return l, nil
}

// SetLogger installs l as the root logger. Tests use it with an observer core.
func SetLogger(l *zap.Logger, cats map[string]bool) {
	mu.Lock()
	defer mu.Unlock()
	if l == nil {
		l = zap.NewNop()
	}
	root = l
	settings = config.LoggingConfig{Categories: cats}
	loggers = make(map[Category]*zap.SugaredLogger)
}

// L returns the root logger.
func L() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return root
}

// Sync flushes buffered log entries.
func Sync() {
	_ = L().Sync()
}

// IsCategoryEnabled returns whether a category logs at all.
func IsCategoryEnabled(category Category) bool {
	mu.RLock()
	defer mu.RUnlock()
	return settings.IsCategoryEnabled(string(category))
}

// Get returns the logger for a category, a no-op logger if it is disabled.
func Get(category Category) *zap.SugaredLogger {
	if !IsCategoryEnabled(category) {
		return zap.NewNop().Sugar()
	}

	mu.RLock()
	if l, ok := loggers[category]; ok {
		mu.RUnlock()
		return l
	}
	mu.RUnlock()

	mu.Lock()
	defer mu.Unlock()
	if l, ok := loggers[category]; ok {
		return l
	}
	l := root.Named(string(category)).Sugar()
	loggers[category] = l
	return l
}

// Convenience helpers, one set per category.

func Boot(format string, args ...interface{}) {
	Get(CategoryBoot).Infof(format, args...)
}

func BootDebug(format string, args ...interface{}) {
	Get(CategoryBoot).Debugf(format, args...)
}

func Fetch(format string, args ...interface{}) {
	Get(CategoryFetch).Infof(format, args...)
}

func FetchDebug(format string, args ...interface{}) {
	Get(CategoryFetch).Debugf(format, args...)
}

func FetchWarn(format string, args ...interface{}) {
	Get(CategoryFetch).Warnf(format, args...)
}

func Browser(format string, args ...interface{}) {
	Get(CategoryBrowser).Infof(format, args...)
}

func BrowserDebug(format string, args ...interface{}) {
	Get(CategoryBrowser).Debugf(format, args...)
}

func Cache(format string, args ...interface{}) {
	Get(CategoryCache).Infof(format, args...)
}

func CacheDebug(format string, args ...interface{}) {
	Get(CategoryCache).Debugf(format, args...)
}

func CacheWarn(format string, args ...interface{}) {
	Get(CategoryCache).Warnf(format, args...)
}

func DecodeDebug(format string, args ...interface{}) {
	Get(CategoryDecode).Debugf(format, args...)
}

func DecodeWarn(format string, args ...interface{}) {
	Get(CategoryDecode).Warnf(format, args...)
}

func Scrape(format string, args ...interface{}) {
	Get(CategoryScrape).Infof(format, args...)
}

func ScrapeDebug(format string, args ...interface{}) {
	Get(CategoryScrape).Debugf(format, args...)
}

func ScrapeWarn(format string, args ...interface{}) {
	Get(CategoryScrape).Warnf(format, args...)
}
