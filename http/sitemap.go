package http

import (
	"context"
	"strings"
	"time"

	"github.com/beevik/etree"
	"github.com/siteglean/siteglean"
)

// Sitemap traversal bounds. Together they cap the wall-clock and memory
// cost of seeding regardless of how large the site's sitemap tree is.
const (
	sitemapMaxFiles = 8
	sitemapMaxURLs  = 120
	sitemapMaxDepth = 2
	sitemapTimeout  = 4 * time.Second
	sitemapAttempts = 2
)

// Ensure Seeder implements siteglean.SitemapSeeder at compile time.
var _ siteglean.SitemapSeeder = (*Seeder)(nil)

// Seeder discovers seed URLs by breadth-first traversal of a site's
// sitemap tree. Sitemap XML is parsed strictly; index files queue their
// children one level deeper. Any per-file failure becomes a warning and
// the traversal continues.
type Seeder struct {
	fetcher siteglean.Fetcher
}

// NewSeeder creates a sitemap seeder on top of a fetcher.
func NewSeeder(fetcher siteglean.Fetcher) *Seeder {
	return &Seeder{fetcher: fetcher}
}

type sitemapFile struct {
	url   string
	depth int
}

// Seed traverses sitemaps starting from the robots.txt hints plus the
// default /sitemap.xml guess.
func (s *Seeder) Seed(ctx context.Context, origin string, hints []string) *siteglean.SeedResult {
	result := &siteglean.SeedResult{}

	queue := make([]sitemapFile, 0, len(hints)+1)
	visited := make(map[string]bool)
	push := func(u string, depth int) {
		u = strings.TrimSpace(u)
		if u == "" || visited[u] {
			return
		}
		visited[u] = true
		queue = append(queue, sitemapFile{url: u, depth: depth})
	}

	for _, hint := range hints {
		push(hint, 0)
	}
	push(strings.TrimSuffix(origin, "/")+"/sitemap.xml", 0)

	seenURLs := make(map[string]bool)
	for len(queue) > 0 && result.FilesFetched < sitemapMaxFiles && len(result.URLs) < sitemapMaxURLs {
		file := queue[0]
		queue = queue[1:]

		res := s.fetcher.Fetch(ctx, file.url, siteglean.FetchOptions{
			Timeout:    sitemapTimeout,
			MaxRetries: sitemapAttempts,
		})
		result.FilesFetched++
		if !res.OK {
			result.Warnings = append(result.Warnings, siteglean.CodeSitemapFetchFailed+": "+file.url)
			continue
		}

		pageURLs, children, err := parseSitemap(res.Body)
		if err != nil {
			result.Warnings = append(result.Warnings, siteglean.CodeSitemapParseFailed+": "+file.url)
			continue
		}

		for _, u := range pageURLs {
			if len(result.URLs) >= sitemapMaxURLs {
				break
			}
			if seenURLs[u] {
				continue
			}
			seenURLs[u] = true
			result.URLs = append(result.URLs, u)
		}

		// Index recursion stops past the depth limit.
		if file.depth+1 > sitemapMaxDepth {
			continue
		}
		for _, child := range children {
			push(child, file.depth+1)
		}
	}

	return result
}

// parseSitemap parses one sitemap document and returns page URLs (from a
// urlset) and child sitemap URLs (from a sitemapindex).
func parseSitemap(body string) (pageURLs, children []string, err error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromString(body); err != nil {
		return nil, nil, err
	}
	root := doc.Root()
	if root == nil {
		return nil, nil, siteglean.Errorf(siteglean.EINVALID, "empty sitemap document")
	}

	switch root.Tag {
	case "sitemapindex":
		for _, el := range root.SelectElements("sitemap") {
			if loc := el.SelectElement("loc"); loc != nil {
				if u := strings.TrimSpace(loc.Text()); u != "" {
					children = append(children, u)
				}
			}
		}
	case "urlset":
		for _, el := range root.SelectElements("url") {
			if loc := el.SelectElement("loc"); loc != nil {
				if u := strings.TrimSpace(loc.Text()); u != "" {
					pageURLs = append(pageURLs, u)
				}
			}
		}
	default:
		return nil, nil, siteglean.Errorf(siteglean.EINVALID, "unknown sitemap root element %q", root.Tag)
	}

	return pageURLs, children, nil
}
