package logging

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"fretcode/internal/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func observe(t *testing.T, cats map[string]bool) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	SetLogger(zap.New(core), cats)
	t.Cleanup(func() { SetLogger(nil, nil) })
	return logs
}

func TestCategoryHelpersUseNamedLoggers(t *testing.T) {
	logs := observe(t, nil)

	Boot("boot %d", 1)
	Fetch("fetch %s", "url")
	FetchDebug("fetch debug")
	Browser("browser")
	Cache("cache")
	DecodeWarn("decode warn")
	Scrape("scrape")

	entries := logs.All()
	if len(entries) != 7 {
		t.Fatalf("expected 7 entries, got %d", len(entries))
	}

	wantNames := []string{"boot", "fetch", "fetch", "browser", "cache", "decode", "scrape"}
	for i, e := range entries {
		if e.LoggerName != wantNames[i] {
			t.Errorf("entry %d logger = %q, want %q", i, e.LoggerName, wantNames[i])
		}
	}
	if entries[0].Message != "boot 1" {
		t.Errorf("message = %q, want %q", entries[0].Message, "boot 1")
	}
	if entries[2].Level != zapcore.DebugLevel {
		t.Errorf("FetchDebug level = %v", entries[2].Level)
	}
	if entries[5].Level != zapcore.WarnLevel {
		t.Errorf("DecodeWarn level = %v", entries[5].Level)
	}
}

func TestDisabledCategoryIsSilent(t *testing.T) {
	logs := observe(t, map[string]bool{"cache": false, "fetch": true})

	Cache("should not appear")
	CacheWarn("should not appear either")
	Fetch("visible")
	Scrape("visible by default")

	if logs.FilterLoggerName("cache").Len() != 0 {
		t.Error("disabled category produced log entries")
	}
	if logs.Len() != 2 {
		t.Errorf("expected 2 entries, got %d", logs.Len())
	}
	if IsCategoryEnabled(CategoryCache) {
		t.Error("IsCategoryEnabled(cache) = true")
	}
	if !IsCategoryEnabled(CategoryDecode) {
		t.Error("unlisted category should be enabled")
	}
}

func TestConcurrentGet(t *testing.T) {
	logs := observe(t, nil)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			ScrapeDebug("worker %d", n)
		}(i)
	}
	wg.Wait()

	if logs.Len() != 20 {
		t.Errorf("expected 20 entries, got %d", logs.Len())
	}
}

func TestInitializeWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fretcode.log")
	t.Cleanup(func() { SetLogger(nil, nil) })

	if _, err := Initialize(config.LoggingConfig{Level: "info", Format: "json", File: path}); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	Fetch("fetched %s", "page")
	FetchDebug("hidden at info level")
	Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	content := string(data)
	if !strings.Contains(content, `"logger":"fetch"`) || !strings.Contains(content, "fetched page") {
		t.Errorf("log file missing entry: %s", content)
	}
	if strings.Contains(content, "hidden at info level") {
		t.Errorf("debug entry written at info level: %s", content)
	}
}

func TestInitializeRejectsBadLevel(t *testing.T) {
	if _, err := Initialize(config.LoggingConfig{Level: "loud"}); err == nil {
		t.Fatal("expected error for invalid level")
	}
}

func TestInitializeHonorsConfigCategories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fretcode.log")
	t.Cleanup(func() { SetLogger(nil, nil) })

	cfg := config.LoggingConfig{
		Level:      "info",
		Format:     "json",
		File:       path,
		Categories: map[string]bool{"cache": false},
	}
	if _, err := Initialize(cfg); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	Cache("cache line")
	Scrape("scrape line")
	Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	if strings.Contains(string(data), "cache line") {
		t.Errorf("disabled category written: %s", data)
	}
	if !strings.Contains(string(data), "scrape line") {
		t.Errorf("enabled category missing: %s", data)
	}
	for _, cat := range []Category{CategoryCache, CategoryScrape} {
		if IsCategoryEnabled(cat) != cfg.IsCategoryEnabled(string(cat)) {
			t.Errorf("IsCategoryEnabled(%s) disagrees with config", cat)
		}
	}
}
