package fetch

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"fretcode/internal/logging"

	_ "github.com/mattn/go-sqlite3"
)

// PageCache stores fetched page markup in sqlite, keyed by URL.
// Only raw markup is stored; decoded codes are never cached.
type PageCache struct {
	db   *sql.DB
	path string
	ttl  time.Duration
	now  func() time.Time
}

// OpenPageCache creates or opens the cache database at path.
func OpenPageCache(path string, ttl time.Duration) (*PageCache, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	c := &PageCache{db: db, path: path, ttl: ttl, now: time.Now}
	if err := c.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return c, nil
}

func (c *PageCache) initSchema() error {
	_, err := c.db.Exec(`
	CREATE TABLE IF NOT EXISTS pages (
		url TEXT PRIMARY KEY,
		body BLOB NOT NULL,
		fetched_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_pages_fetched_at ON pages(fetched_at);`)
	return err
}

// Path returns the database file path.
func (c *PageCache) Path() string {
	return c.path
}

// Close closes the database connection.
func (c *PageCache) Close() error {
	return c.db.Close()
}

// Get returns the cached body for url if present and fresh.
func (c *PageCache) Get(ctx context.Context, url string) ([]byte, bool, error) {
	var body []byte
	var fetchedAt int64
	err := c.db.QueryRowContext(ctx,
		`SELECT body, fetched_at FROM pages WHERE url = ?`, url).Scan(&body, &fetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read cache: %w", err)
	}
	if c.ttl > 0 && c.now().Sub(time.UnixMilli(fetchedAt)) > c.ttl {
		return nil, false, nil
	}
	return body, true, nil
}

// Put stores body for url, replacing any previous entry.
func (c *PageCache) Put(ctx context.Context, url string, body []byte) error {
	_, err := c.db.ExecContext(ctx, `
		INSERT INTO pages (url, body, fetched_at) VALUES (?, ?, ?)
		ON CONFLICT(url) DO UPDATE SET body = excluded.body, fetched_at = excluded.fetched_at`,
		url, body, c.now().UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to write cache: %w", err)
	}
	return nil
}

// Purge deletes expired entries and returns how many were removed.
func (c *PageCache) Purge(ctx context.Context) (int64, error) {
	if c.ttl <= 0 {
		return 0, nil
	}
	cutoff := c.now().Add(-c.ttl).UnixMilli()
	res, err := c.db.ExecContext(ctx, `DELETE FROM pages WHERE fetched_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to purge cache: %w", err)
	}
	return res.RowsAffected()
}

// Len returns the number of stored entries, fresh or not.
func (c *PageCache) Len(ctx context.Context) (int, error) {
	var n int
	if err := c.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM pages`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count cache entries: %w", err)
	}
	return n, nil
}

// CachingFetcher serves pages from a PageCache and fills it from next.
type CachingFetcher struct {
	next  Fetcher
	cache *PageCache
}

// NewCachingFetcher wraps next with cache.
func NewCachingFetcher(next Fetcher, cache *PageCache) *CachingFetcher {
	return &CachingFetcher{next: next, cache: cache}
}

// Fetch returns the cached page or fetches and stores it. Cache failures are
// logged and never fail the fetch.
func (f *CachingFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	body, ok, err := f.cache.Get(ctx, url)
	if err != nil {
		logging.CacheWarn("Cache read failed for %s: %v", url, err)
	} else if ok {
		logging.CacheDebug("Cache hit: %s", url)
		return body, nil
	}

	body, err = f.next.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	if err := f.cache.Put(ctx, url, body); err != nil {
		logging.CacheWarn("Cache write failed for %s: %v", url, err)
	}
	return body, nil
}
