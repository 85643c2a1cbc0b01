package siteglean

import (
	"context"
	"time"
)

// FetchOptions control a single resilient fetch.
type FetchOptions struct {
	Timeout        time.Duration
	MaxRetries     int  // total attempts; <=0 means 1
	AcceptHTMLOnly bool // non-HTML responses fail fast with CodeNonHTML
}

// FetchResult is the outcome of a resilient fetch. OK is true when a body
// was obtained, even if truncated (the truncation is noted in Warnings).
type FetchResult struct {
	URL         string
	OK          bool
	Status      int
	ContentType string
	Body        string
	Bytes       int
	DurationMs  int64
	Retries     int
	ErrorCode   string
	Warnings    []string
}

// Fetcher performs bounded, retried HTTP GETs.
type Fetcher interface {
	Fetch(ctx context.Context, url string, opts FetchOptions) *FetchResult
}

// HostLimiter paces requests per host and adapts to server pushback.
type HostLimiter interface {
	// Wait blocks until the host may be contacted again, honoring the
	// configured floor plus extraDelay (e.g. a robots crawl-delay).
	Wait(ctx context.Context, url string, extraDelay time.Duration) error

	// RegisterStatus feeds a response status back into the limiter's
	// adaptive cooldown.
	RegisterStatus(url string, status int)
}

// SeedResult is the outcome of sitemap seeding. Failures surface as
// warnings; seeding never fails the crawl.
type SeedResult struct {
	URLs         []string
	Warnings     []string
	FilesFetched int
}

// SitemapSeeder discovers seed URLs from a site's sitemaps.
type SitemapSeeder interface {
	// Seed traverses sitemaps starting from robots.txt hints plus the
	// default /sitemap.xml guess, bounded by file, URL and depth caps.
	Seed(ctx context.Context, origin string, hints []string) *SeedResult
}

// PageParser turns raw HTML into a ParsedPage.
type PageParser interface {
	Parse(pageURL, html string) (*ParsedPage, error)
}

// RobotsClient fetches and parses a site's robots.txt.
type RobotsClient interface {
	// Rules returns the parsed rules for the origin. On fetch failure it
	// returns allow-all rules and ok=false; robots failure is never fatal.
	Rules(ctx context.Context, origin string) (rules RobotsRules, ok bool)
}

// StylesheetLoader fetches same-origin stylesheets, cached per URL within
// one crawl.
type StylesheetLoader interface {
	Load(ctx context.Context, url string) (string, bool)
}
