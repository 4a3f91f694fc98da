package fetch

import (
	"context"
	"fmt"
	"sync"
	"time"

	"fretcode/internal/logging"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// BrowserOptions configures the headless Chrome backend.
type BrowserOptions struct {
	Headless    bool
	Bin         string        // Chrome binary, empty = let the launcher find or download one
	DebuggerURL string        // attach to this instance instead of launching
	Timeout     time.Duration // per page load
}

// BrowserFetcher renders pages in Chrome and returns the resulting DOM.
// Chrome is started lazily on the first fetch and shared by all fetches.
type BrowserFetcher struct {
	opts     BrowserOptions
	mu       sync.Mutex
	launcher *launcher.Launcher
	browser  *rod.Browser
}

// NewBrowserFetcher creates a browser fetcher. Call Close to stop Chrome.
func NewBrowserFetcher(opts BrowserOptions) *BrowserFetcher {
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	return &BrowserFetcher{opts: opts}
}

func (f *BrowserFetcher) start() (*rod.Browser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.browser != nil {
		if _, err := f.browser.Version(); err == nil {
			return f.browser, nil
		}
		logging.Browser("Stale browser connection detected, reconnecting")
		_ = f.release()
	}

	controlURL := f.opts.DebuggerURL
	if controlURL == "" {
		l := launcher.New().Headless(f.opts.Headless)
		if f.opts.Bin != "" {
			l = l.Bin(f.opts.Bin)
		}
		u, err := l.Launch()
		if err != nil {
			return nil, fmt.Errorf("launch chrome: %w", err)
		}
		f.launcher = l
		controlURL = u
	}

	b := rod.New().ControlURL(controlURL)
	if err := b.Connect(); err != nil {
		return nil, fmt.Errorf("connect to chrome: %w", err)
	}
	logging.Browser("Connected to chrome at %s", controlURL)

	f.browser = b
	return b, nil
}

// Fetch opens url in a new tab, waits for the load event and returns the page HTML.
func (f *BrowserFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	b, err := f.start()
	if err != nil {
		return nil, err
	}

	tab, err := b.Context(ctx).Page(proto.TargetCreateTarget{URL: url})
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", url, err)
	}
	defer func() { _ = tab.Close() }()

	page := tab.Timeout(f.opts.Timeout)
	if err := page.WaitLoad(); err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", url, err)
	}

	content, err := page.HTML()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", url, err)
	}

	logging.BrowserDebug("Rendered %s: %d bytes", url, len(content))
	return []byte(content), nil
}

// Close shuts down the browser and, if it launched one, the Chrome process.
func (f *BrowserFetcher) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.release()
}

// release drops the connection and kills any Chrome this fetcher launched.
// Callers hold f.mu.
func (f *BrowserFetcher) release() error {
	var err error
	if f.browser != nil {
		err = f.browser.Close()
		f.browser = nil
	}
	if f.launcher != nil {
		f.launcher.Kill()
		f.launcher = nil
	}
	return err
}
