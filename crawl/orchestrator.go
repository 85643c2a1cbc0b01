package crawl

import (
	"context"
	"net/url"

	"github.com/siteglean/siteglean"
	"github.com/siteglean/siteglean/plan"
)

// Link-context score boosts for frontier ordering.
const (
	boostNav    = 3.0
	boostCTA    = 2.5
	boostFooter = 1.0

	// sitemapSeedBoost gives sitemap-discovered URLs a priority edge over
	// URLs only reachable by link-following.
	sitemapSeedBoost = 10.0

	// pageMaxRetries is the total fetch attempts per page.
	pageMaxRetries = 3

	// minContentLength is the raw-text floor below which a page is flagged
	// as low_content.
	minContentLength = 220
)

// frontierCapacity sizes the dedup filter; crawls are small, the slack
// keeps the false positive rate negligible.
const frontierCapacity = 4096

// Result is the raw outcome of one crawl: parsed pages in crawl order,
// per-fetch reports, accumulated warnings and every same-origin URL
// discovered along the way.
type Result struct {
	Pages      []*siteglean.ParsedPage
	Reports    []siteglean.PageReport
	Warnings   []string
	Discovered []string
	Robots     siteglean.RobotsRules
	RobotsOK   bool
}

// Crawler walks one site breadth-first by depth, best-scored first within
// a depth. All failures degrade to warnings; a crawl always produces a
// (possibly empty) result.
type Crawler struct {
	fetcher siteglean.Fetcher
	robots  siteglean.RobotsClient
	seeder  siteglean.SitemapSeeder
	limiter siteglean.HostLimiter
	parser  siteglean.PageParser
}

// NewCrawler wires a crawler from its collaborators.
func NewCrawler(
	fetcher siteglean.Fetcher,
	robots siteglean.RobotsClient,
	seeder siteglean.SitemapSeeder,
	limiter siteglean.HostLimiter,
	parser siteglean.PageParser,
) *Crawler {
	return &Crawler{
		fetcher: fetcher,
		robots:  robots,
		seeder:  seeder,
		limiter: limiter,
		parser:  parser,
	}
}

// Run crawls the site rooted at rootURL under the given settings. The
// plugin adjusts link priorities; pass a no-op plugin rather than nil.
func (c *Crawler) Run(ctx context.Context, rootURL string, settings siteglean.CrawlSettings, plugin siteglean.SitePlugin) *Result {
	result := &Result{}

	root, err := url.Parse(rootURL)
	if err != nil || root.Host == "" {
		return result
	}
	origin := originOf(root)

	// Robots is fetched even when it will not be enforced: it carries the
	// sitemap hints and the crawl-delay floor.
	rules, robotsOK := c.robots.Rules(ctx, origin)
	result.Robots = rules
	result.RobotsOK = robotsOK
	if !robotsOK {
		result.Warnings = append(result.Warnings, siteglean.CodeRobotsFetchFailed+": "+origin)
	}

	frontier := NewFrontier(frontierCapacity, 0.001)
	frontier.Push(Entry{URL: rootURL, Depth: 0, Score: sitemapSeedBoost})

	discovered := newURLSet()

	seed := c.seeder.Seed(ctx, origin, rules.Sitemaps)
	result.Warnings = append(result.Warnings, seed.Warnings...)
	for _, raw := range seed.URLs {
		norm, ok := NormalizeDiscoveredURL(raw, rootURL)
		if !ok || !IsSameOrigin(norm, rootURL) || LooksLikeNonHTMLAsset(norm) {
			continue
		}
		discovered.add(norm)
		frontier.Push(Entry{URL: norm, Depth: 1, Score: KeywordScore(norm) + sitemapSeedBoost})
	}

	visited := make(map[string]bool)
	seenContent := make(map[uint64]string)

	for len(result.Pages) < settings.PagesLimit {
		entry, ok := frontier.Pop()
		if !ok {
			break
		}
		if visited[entry.URL] {
			continue
		}
		visited[entry.URL] = true

		if settings.RespectRobots {
			if u, err := url.Parse(entry.URL); err == nil && !rules.Allows(u.Path) {
				result.Warnings = append(result.Warnings, siteglean.CodeRobotsBlockedPath+": "+entry.URL)
				continue
			}
		}

		if err := c.limiter.Wait(ctx, entry.URL, rules.CrawlDelay); err != nil {
			result.Warnings = append(result.Warnings, siteglean.CodeFetchError+": "+entry.URL)
			break
		}

		fetch := c.fetcher.Fetch(ctx, entry.URL, siteglean.FetchOptions{
			Timeout:        settings.Timeout,
			MaxRetries:     pageMaxRetries,
			AcceptHTMLOnly: true,
		})
		c.limiter.RegisterStatus(entry.URL, fetch.Status)

		report := siteglean.PageReport{
			URL:         entry.URL,
			Status:      fetch.Status,
			ContentType: fetch.ContentType,
			Bytes:       fetch.Bytes,
			DurationMs:  fetch.DurationMs,
			Retries:     fetch.Retries,
			ErrorCode:   fetch.ErrorCode,
			Notes:       fetch.Warnings,
		}

		if !fetch.OK {
			result.Reports = append(result.Reports, report)
			result.Warnings = append(result.Warnings, fetch.ErrorCode+": "+entry.URL)
			continue
		}

		page, err := c.parser.Parse(entry.URL, fetch.Body)
		if err != nil {
			report.ErrorCode = siteglean.CodeFetchError
			result.Reports = append(result.Reports, report)
			result.Warnings = append(result.Warnings, siteglean.CodeFetchError+": "+entry.URL)
			continue
		}
		page.Depth = entry.Depth

		if len(page.RawText) < minContentLength {
			report.Notes = append(report.Notes, siteglean.CodeLowContent)
			result.Warnings = append(result.Warnings, siteglean.CodeLowContent+": "+entry.URL)
		}
		if prev, dup := seenContent[page.ContentHash]; dup {
			report.Notes = append(report.Notes, siteglean.CodeDuplicateContent)
			result.Warnings = append(result.Warnings, siteglean.CodeDuplicateContent+": "+entry.URL+" duplicates "+prev)
		} else {
			seenContent[page.ContentHash] = entry.URL
		}

		result.Reports = append(result.Reports, report)
		result.Pages = append(result.Pages, page)

		c.enqueueLinks(frontier, discovered, page, entry.Depth, rootURL, settings, plugin)
	}

	result.Discovered = discovered.ordered
	return result
}

// enqueueLinks filters, scores and enqueues a page's outbound links.
func (c *Crawler) enqueueLinks(
	frontier *Frontier,
	discovered *urlSet,
	page *siteglean.ParsedPage,
	depth int,
	rootURL string,
	settings siteglean.CrawlSettings,
	plugin siteglean.SitePlugin,
) {
	for _, link := range page.Links {
		norm, ok := NormalizeDiscoveredURL(link.URL, rootURL)
		if !ok || !IsSameOrigin(norm, rootURL) || LooksLikeNonHTMLAsset(norm) {
			continue
		}
		discovered.add(norm)

		if settings.Mode == siteglean.ModeMarketingOnly && isTransactional(norm) {
			continue
		}
		if depth+1 > settings.DepthLimit {
			continue
		}

		score := KeywordScore(norm)
		switch link.Source {
		case siteglean.LinkSourceNav:
			score += boostNav
		case siteglean.LinkSourceCTA:
			score += boostCTA
		case siteglean.LinkSourceFooter:
			score += boostFooter
		}
		if plugin != nil {
			score = plugin.AdjustLinkPriority(link, score)
		}

		frontier.Push(Entry{URL: norm, Depth: depth + 1, Score: score})
	}
}

// isTransactional reports whether the URL leads into the shop funnel;
// marketing_only crawls skip those paths.
func isTransactional(rawURL string) bool {
	switch plan.ClassifyByPath(rawURL) {
	case siteglean.PageProduct, siteglean.PageCheckout, siteglean.PageAccount:
		return true
	}
	return false
}

// urlSet is an insertion-ordered string set.
type urlSet struct {
	seen    map[string]bool
	ordered []string
}

func newURLSet() *urlSet {
	return &urlSet{seen: make(map[string]bool)}
}

func (s *urlSet) add(u string) {
	if s.seen[u] {
		return
	}
	s.seen[u] = true
	s.ordered = append(s.ordered, u)
}
