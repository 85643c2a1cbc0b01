package http

import (
	"context"
	"sync"
	"time"

	"github.com/siteglean/siteglean"
)

// Stylesheet fetch tuning.
const (
	stylesheetTimeout  = 7 * time.Second
	stylesheetAttempts = 3
)

// Ensure StylesheetCache implements siteglean.StylesheetLoader.
var _ siteglean.StylesheetLoader = (*StylesheetCache)(nil)

// StylesheetCache fetches stylesheets and caches them per URL for the
// lifetime of one crawl, including negative results. One cache instance
// belongs to one extraction invocation.
type StylesheetCache struct {
	fetcher siteglean.Fetcher

	mu    sync.Mutex
	cache map[string]cachedCSS
}

type cachedCSS struct {
	body string
	ok   bool
}

// NewStylesheetCache creates an empty per-crawl stylesheet cache.
func NewStylesheetCache(fetcher siteglean.Fetcher) *StylesheetCache {
	return &StylesheetCache{
		fetcher: fetcher,
		cache:   make(map[string]cachedCSS),
	}
}

// Load returns the stylesheet body for a URL, fetching on first use.
func (c *StylesheetCache) Load(ctx context.Context, url string) (string, bool) {
	c.mu.Lock()
	if hit, ok := c.cache[url]; ok {
		c.mu.Unlock()
		return hit.body, hit.ok
	}
	c.mu.Unlock()

	res := c.fetcher.Fetch(ctx, url, siteglean.FetchOptions{
		Timeout:    stylesheetTimeout,
		MaxRetries: stylesheetAttempts,
	})

	entry := cachedCSS{body: res.Body, ok: res.OK}
	c.mu.Lock()
	c.cache[url] = entry
	c.mu.Unlock()

	return entry.body, entry.ok
}
