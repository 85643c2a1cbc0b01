package http_test

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/siteglean/siteglean"
	sghttp "github.com/siteglean/siteglean/http"
	"github.com/siteglean/siteglean/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func xmlFetcher(bodies map[string]string) *mock.Fetcher {
	return &mock.Fetcher{
		FetchFn: func(_ context.Context, url string, _ siteglean.FetchOptions) *siteglean.FetchResult {
			body, ok := bodies[url]
			if !ok {
				return &siteglean.FetchResult{URL: url, ErrorCode: siteglean.CodeFetchError}
			}
			return &siteglean.FetchResult{URL: url, OK: true, Status: 200, Body: body, Bytes: len(body)}
		},
	}
}

func urlset(urls ...string) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?><urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">`)
	for _, u := range urls {
		fmt.Fprintf(&b, "<url><loc>%s</loc></url>", u)
	}
	b.WriteString("</urlset>")
	return b.String()
}

func sitemapindex(urls ...string) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?><sitemapindex xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">`)
	for _, u := range urls {
		fmt.Fprintf(&b, "<sitemap><loc>%s</loc></sitemap>", u)
	}
	b.WriteString("</sitemapindex>")
	return b.String()
}

func TestSeeder_Seed(t *testing.T) {
	t.Parallel()

	t.Run("extracts URLs from a plain urlset via the default guess", func(t *testing.T) {
		t.Parallel()

		seeder := sghttp.NewSeeder(xmlFetcher(map[string]string{
			"https://example.com/sitemap.xml": urlset("https://example.com/", "https://example.com/about"),
		}))

		res := seeder.Seed(context.Background(), "https://example.com", nil)

		assert.Equal(t, []string{"https://example.com/", "https://example.com/about"}, res.URLs)
		assert.Empty(t, res.Warnings)
	})

	t.Run("follows a sitemap index one level deep", func(t *testing.T) {
		t.Parallel()

		seeder := sghttp.NewSeeder(xmlFetcher(map[string]string{
			"https://example.com/sitemap.xml":  sitemapindex("https://example.com/pages.xml", "https://example.com/posts.xml"),
			"https://example.com/pages.xml":    urlset("https://example.com/a"),
			"https://example.com/posts.xml":    urlset("https://example.com/b"),
			"https://example.com/from-robots.xml": urlset("https://example.com/c"),
		}))

		res := seeder.Seed(context.Background(), "https://example.com", []string{"https://example.com/from-robots.xml"})

		assert.ElementsMatch(t, []string{"https://example.com/a", "https://example.com/b", "https://example.com/c"}, res.URLs)
	})

	t.Run("stops recursing past the depth limit", func(t *testing.T) {
		t.Parallel()

		seeder := sghttp.NewSeeder(xmlFetcher(map[string]string{
			"https://example.com/sitemap.xml": sitemapindex("https://example.com/l1.xml"),
			"https://example.com/l1.xml":      sitemapindex("https://example.com/l2.xml"),
			"https://example.com/l2.xml":      sitemapindex("https://example.com/l3.xml"),
			"https://example.com/l3.xml":      urlset("https://example.com/too-deep"),
		}))

		res := seeder.Seed(context.Background(), "https://example.com", nil)

		assert.NotContains(t, res.URLs, "https://example.com/too-deep")
	})

	t.Run("caps the number of files fetched", func(t *testing.T) {
		t.Parallel()

		children := make([]string, 20)
		bodies := map[string]string{}
		for i := range children {
			children[i] = fmt.Sprintf("https://example.com/s%d.xml", i)
			bodies[children[i]] = urlset(fmt.Sprintf("https://example.com/p%d", i))
		}
		bodies["https://example.com/sitemap.xml"] = sitemapindex(children...)

		seeder := sghttp.NewSeeder(xmlFetcher(bodies))
		res := seeder.Seed(context.Background(), "https://example.com", nil)

		assert.Equal(t, 8, res.FilesFetched)
	})

	t.Run("caps the number of URLs collected", func(t *testing.T) {
		t.Parallel()

		urls := make([]string, 200)
		for i := range urls {
			urls[i] = fmt.Sprintf("https://example.com/p%d", i)
		}
		seeder := sghttp.NewSeeder(xmlFetcher(map[string]string{
			"https://example.com/sitemap.xml": urlset(urls...),
		}))

		res := seeder.Seed(context.Background(), "https://example.com", nil)

		assert.Len(t, res.URLs, 120)
	})

	t.Run("warns and continues on fetch and parse failures", func(t *testing.T) {
		t.Parallel()

		seeder := sghttp.NewSeeder(xmlFetcher(map[string]string{
			"https://example.com/broken.xml":  "<urlset><url><loc>unclosed",
			"https://example.com/sitemap.xml": urlset("https://example.com/ok"),
		}))

		res := seeder.Seed(context.Background(), "https://example.com",
			[]string{"https://example.com/missing.xml", "https://example.com/broken.xml"})

		assert.Equal(t, []string{"https://example.com/ok"}, res.URLs)
		require.Len(t, res.Warnings, 2)
		assert.Contains(t, res.Warnings[0], siteglean.CodeSitemapFetchFailed)
		assert.Contains(t, res.Warnings[1], siteglean.CodeSitemapParseFailed)
	})

	t.Run("deduplicates URLs across sitemap files", func(t *testing.T) {
		t.Parallel()

		seeder := sghttp.NewSeeder(xmlFetcher(map[string]string{
			"https://example.com/sitemap.xml": sitemapindex("https://example.com/a.xml", "https://example.com/b.xml"),
			"https://example.com/a.xml":       urlset("https://example.com/shared", "https://example.com/a-only"),
			"https://example.com/b.xml":       urlset("https://example.com/shared", "https://example.com/b-only"),
		}))

		res := seeder.Seed(context.Background(), "https://example.com", nil)

		assert.ElementsMatch(t, []string{
			"https://example.com/shared",
			"https://example.com/a-only",
			"https://example.com/b-only",
		}, res.URLs)
	})

	t.Run("visited set prevents sitemap cycles", func(t *testing.T) {
		t.Parallel()

		seeder := sghttp.NewSeeder(xmlFetcher(map[string]string{
			"https://example.com/sitemap.xml": sitemapindex("https://example.com/sitemap.xml", "https://example.com/a.xml"),
			"https://example.com/a.xml":       urlset("https://example.com/a"),
		}))

		res := seeder.Seed(context.Background(), "https://example.com", nil)

		assert.Equal(t, []string{"https://example.com/a"}, res.URLs)
		assert.Equal(t, 2, res.FilesFetched)
	})
}
