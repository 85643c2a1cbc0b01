package siteglean

import (
	"context"
	"net/url"
	"time"
)

// SiteMapMode selects which parts of a site the crawl favors and caps.
type SiteMapMode string

// Supported crawl modes.
const (
	ModeTemplateSamples SiteMapMode = "template_samples"
	ModeMarketingOnly   SiteMapMode = "marketing_only"
	ModeAllURLs         SiteMapMode = "all_urls"
)

// Per-mode page ceilings. Explicit MaxPages values are clamped to these.
const (
	pageCapTemplateSamples = 16
	pageCapMarketingOnly   = 10
	pageCapAllURLs         = 40
)

// DefaultDepthLimit bounds link-following depth when none is given.
const DefaultDepthLimit = 3

// DefaultFetchTimeout is the default per-request timeout.
const DefaultFetchTimeout = 10 * time.Second

// ExtractInput describes one extraction invocation.
//
// The zero value of RespectRobots is false, which matches the default of
// ignoring robots.txt: extraction is an explicit, user-initiated analysis
// of a single site, not broad crawling.
type ExtractInput struct {
	URL           string        `json:"url"`
	MaxPages      int           `json:"maxPages,omitempty"`
	MaxDepth      int           `json:"maxDepth,omitempty"`
	Timeout       time.Duration `json:"timeout,omitempty"`
	RespectRobots bool          `json:"respectRobots,omitempty"`
	Mode          SiteMapMode   `json:"siteMapMode,omitempty"`
}

// Validate returns an error unless the root URL is an absolute http(s) URL.
// This is the only condition under which Extract fails instead of returning
// a partial result.
func (in *ExtractInput) Validate() error {
	if in.URL == "" {
		return Errorf(EINVALID, "root URL required")
	}
	u, err := url.Parse(in.URL)
	if err != nil {
		return Errorf(EINVALID, "root URL %q is not parseable", in.URL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return Errorf(EINVALID, "root URL %q is not http(s)", in.URL)
	}
	if u.Host == "" {
		return Errorf(EINVALID, "root URL %q has no host", in.URL)
	}
	return nil
}

// CrawlSettings are the effective, clamped settings for one crawl.
type CrawlSettings struct {
	PagesLimit    int           `json:"pagesLimit"`
	DepthLimit    int           `json:"depthLimit"`
	Timeout       time.Duration `json:"timeout"`
	RespectRobots bool          `json:"respectRobots"`
	Mode          SiteMapMode   `json:"siteMapMode"`
}

// Settings derives effective crawl limits from the input. Unknown modes
// fall back to template_samples. MaxPages may lower a mode's ceiling but
// never raise it.
func (in *ExtractInput) Settings() CrawlSettings {
	mode := in.Mode
	pageCap := pageCapTemplateSamples
	switch mode {
	case ModeAllURLs:
		pageCap = pageCapAllURLs
	case ModeMarketingOnly:
		pageCap = pageCapMarketingOnly
	case ModeTemplateSamples:
		pageCap = pageCapTemplateSamples
	default:
		mode = ModeTemplateSamples
	}

	pages := pageCap
	if in.MaxPages > 0 && in.MaxPages < pageCap {
		pages = in.MaxPages
	}

	depth := in.MaxDepth
	if depth <= 0 {
		depth = DefaultDepthLimit
	}

	timeout := in.Timeout
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}

	return CrawlSettings{
		PagesLimit:    pages,
		DepthLimit:    depth,
		Timeout:       timeout,
		RespectRobots: in.RespectRobots,
		Mode:          mode,
	}
}

// Warning and page-report codes. These strings are the sole error-reporting
// channel of a completed extraction.
const (
	CodeTimeout            = "timeout"
	CodeFetchError         = "fetch_error"
	CodeRedirectLimit      = "redirect_limit"
	CodeNonHTML            = "non_html"
	CodeBodyTooLargeHeader = "body_too_large_header"
	CodeBodyTruncated      = "body_truncated"
	CodeLowContent         = "low_content"
	CodeRetryableStatus    = "retryable_status"
	CodeRobotsBlockedPath  = "robots_blocked_path"
	CodeRobotsFetchFailed  = "robots_fetch_failed"
	CodeSitemapFetchFailed = "sitemap_fetch_failed"
	CodeSitemapParseFailed = "sitemap_parse_failed"
	CodeDuplicateContent   = "duplicate_content"
)

// PageSummary is the per-page slice of the extraction output.
type PageSummary struct {
	URL         string   `json:"url"`
	Type        PageType `json:"type"`
	Title       string   `json:"title,omitempty"`
	Description string   `json:"description,omitempty"`
	Depth       int      `json:"depth"`
	Contacts    Contacts `json:"contacts"`
}

// ContentProfile groups the content-level outputs.
type ContentProfile struct {
	Pages    []PageSummary       `json:"pages"`
	Sections []NormalizedSection `json:"sections"`
}

// ConfidenceReport carries per-field confidence scores in [0,1] plus a
// weighted overall score.
type ConfidenceReport struct {
	Fields  map[string]float64 `json:"fields"`
	Overall float64            `json:"overall"`
}

// ExtractionResult is the top-level aggregate returned by one extraction.
type ExtractionResult struct {
	ID         string           `json:"id"`
	URL        string           `json:"url"`
	StartedAt  time.Time        `json:"startedAt"`
	DurationMs int64            `json:"durationMs"`
	Settings   CrawlSettings    `json:"settings"`
	Brand      BrandProfile     `json:"brand"`
	Website    WebsiteStructure `json:"website"`
	Style      StyleProfile     `json:"style"`
	Content    ContentProfile   `json:"content"`
	Reports    []PageReport     `json:"pageReports"`
	Warnings   []string         `json:"warnings"`
	Confidence ConfidenceReport `json:"confidence"`
}

// Extractor runs the full crawl-and-extract pipeline for one site.
type Extractor interface {
	Extract(ctx context.Context, in ExtractInput) (*ExtractionResult, error)
}
