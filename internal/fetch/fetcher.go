// Package fetch retrieves chord pages from the diagram site.
//
// Backends:
//   - HTTPFetcher: plain net/http GET
//   - BrowserFetcher: headless Chrome via Rod
//   - CachingFetcher: sqlite page cache in front of either
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"fretcode/internal/logging"
)

// Fetcher retrieves the raw markup behind a URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// ErrBodyTooLarge is returned when a response is longer than the configured
// limit. A truncated page could still decode into a code with missing strings.
var ErrBodyTooLarge = errors.New("response body too large")

// StatusError is returned for any non-200 response.
type StatusError struct {
	URL  string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.Code, e.URL)
}

// HTTPFetcher fetches pages with net/http.
type HTTPFetcher struct {
	client    *http.Client
	userAgent string
	maxBody   int64
}

// NewHTTPFetcher creates an HTTP fetcher. timeout applies per request.
func NewHTTPFetcher(timeout time.Duration, userAgent string, maxBody int64) *HTTPFetcher {
	return &HTTPFetcher{
		client:    &http.Client{Timeout: timeout},
		userAgent: userAgent,
		maxBody:   maxBody,
	}
}

// Fetch performs a GET and returns the body. Bodies over the configured limit
// fail with ErrBodyTooLarge.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	start := time.Now()
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{URL: url, Code: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBody+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if int64(len(body)) > f.maxBody {
		return nil, fmt.Errorf("%s exceeds %d bytes: %w", url, f.maxBody, ErrBodyTooLarge)
	}

	logging.FetchDebug("GET %s: %d bytes in %v", url, len(body), time.Since(start))
	return body, nil
}
