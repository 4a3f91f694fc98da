package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is looked up in the working directory when --config is not given.
const DefaultConfigFile = "fretcode.yaml"

// Config holds all fretcode configuration.
type Config struct {
	// Remote chord catalog
	Catalog CatalogConfig `yaml:"catalog"`

	// Page retrieval
	Fetch FetchConfig `yaml:"fetch"`

	// Headless browser backend
	Browser BrowserConfig `yaml:"browser"`

	// Fetched page cache
	Cache CacheConfig `yaml:"cache"`

	// Result emission
	Output OutputConfig `yaml:"output"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// CatalogConfig points at the chord diagram site.
type CatalogConfig struct {
	BaseURL string `yaml:"base_url"`
}

// FetchConfig configures page retrieval.
type FetchConfig struct {
	Backend      string `yaml:"backend"` // http, browser
	Timeout      string `yaml:"timeout"`
	UserAgent    string `yaml:"user_agent"`
	MaxBodyBytes int64  `yaml:"max_body_bytes"`
	Concurrency  int    `yaml:"concurrency"`
}

// BrowserConfig configures the go-rod backend.
type BrowserConfig struct {
	Headless bool   `yaml:"headless"`
	Bin      string `yaml:"bin"`          // Chrome binary, empty = auto-download
	Debugger string `yaml:"debugger_url"` // attach to a running Chrome instead of launching
}

// CacheConfig configures the sqlite page cache.
type CacheConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
	TTL     string `yaml:"ttl"`
}

// OutputConfig configures where and how codes are written.
type OutputConfig struct {
	Format string `yaml:"format"` // tsv, json, yaml
	Path   string `yaml:"path"`   // empty = stdout
}

// LoggingConfig configures the categorized zap logger.
type LoggingConfig struct {
	Level      string          `yaml:"level"`      // debug, info, warn, error
	Format     string          `yaml:"format"`     // json, console
	File       string          `yaml:"file"`       // empty = stderr
	Categories map[string]bool `yaml:"categories"` // fetch: false silences a category
}

// IsCategoryEnabled reports whether a category logs. Unlisted categories do.
func (c LoggingConfig) IsCategoryEnabled(category string) bool {
	enabled, listed := c.Categories[category]
	return !listed || enabled
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Catalog: CatalogConfig{
			BaseURL: "http://www.all-guitar-chords.com",
		},
		Fetch: FetchConfig{
			Backend:      "http",
			Timeout:      "30s",
			UserAgent:    "Mozilla/5.0 (compatible; fretcode/1.0)",
			MaxBodyBytes: 1 << 20,
			Concurrency:  4,
		},
		Browser: BrowserConfig{
			Headless: true,
		},
		Cache: CacheConfig{
			Enabled: false,
			Path:    filepath.Join(".fretcode", "pages.db"),
			TTL:     "168h",
		},
		Output: OutputConfig{
			Format: "tsv",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// Defaults if config file doesn't exist
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()

	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if url := os.Getenv("FRETCODE_BASE_URL"); url != "" {
		c.Catalog.BaseURL = url
	}
	if backend := os.Getenv("FRETCODE_FETCH_BACKEND"); backend != "" {
		c.Fetch.Backend = backend
	}
	if n := os.Getenv("FRETCODE_CONCURRENCY"); n != "" {
		if v, err := strconv.Atoi(n); err == nil {
			c.Fetch.Concurrency = v
		}
	}
	if path := os.Getenv("FRETCODE_CACHE_PATH"); path != "" {
		c.Cache.Path = path
		c.Cache.Enabled = true
	}
	if level := os.Getenv("FRETCODE_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
}

// GetFetchTimeout returns the per-request timeout as a duration.
func (c *Config) GetFetchTimeout() time.Duration {
	d, err := time.ParseDuration(c.Fetch.Timeout)
	if err != nil {
		return 30 * time.Second
	}
	return d
}

// GetCacheTTL returns how long cached pages stay fresh.
func (c *Config) GetCacheTTL() time.Duration {
	d, err := time.ParseDuration(c.Cache.TTL)
	if err != nil {
		return 7 * 24 * time.Hour
	}
	return d
}

// Valid choices for enumerated settings.
var (
	ValidBackends      = []string{"http", "browser"}
	ValidOutputFormats = []string{"tsv", "json", "yaml"}
)

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Catalog.BaseURL == "" {
		return fmt.Errorf("catalog.base_url must be set")
	}
	if !contains(ValidBackends, c.Fetch.Backend) {
		return fmt.Errorf("invalid fetch backend: %s (valid: %v)", c.Fetch.Backend, ValidBackends)
	}
	if c.Fetch.Concurrency < 1 {
		return fmt.Errorf("fetch.concurrency must be >= 1")
	}
	if c.Fetch.MaxBodyBytes <= 0 {
		return fmt.Errorf("fetch.max_body_bytes must be > 0")
	}
	if !contains(ValidOutputFormats, c.Output.Format) {
		return fmt.Errorf("invalid output format: %s (valid: %v)", c.Output.Format, ValidOutputFormats)
	}
	if c.Cache.Enabled && c.Cache.Path == "" {
		return fmt.Errorf("cache.path must be set when the cache is enabled")
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
