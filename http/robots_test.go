package http_test

import (
	"context"
	"testing"

	"github.com/siteglean/siteglean"
	sghttp "github.com/siteglean/siteglean/http"
	"github.com/siteglean/siteglean/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRobots_Rules(t *testing.T) {
	t.Parallel()

	t.Run("fetches and parses the origin robots file", func(t *testing.T) {
		t.Parallel()

		var requested string
		fetcher := &mock.Fetcher{
			FetchFn: func(_ context.Context, url string, opts siteglean.FetchOptions) *siteglean.FetchResult {
				requested = url
				assert.Equal(t, 2, opts.MaxRetries)
				return &siteglean.FetchResult{
					URL: url, OK: true, Status: 200,
					Body: "User-agent: *\nDisallow: /admin\nSitemap: https://example.com/sitemap.xml",
				}
			},
		}

		rules, ok := sghttp.NewRobots(fetcher).Rules(context.Background(), "https://example.com/")

		require.True(t, ok)
		assert.Equal(t, "https://example.com/robots.txt", requested)
		assert.False(t, rules.Allows("/admin/x"))
		assert.Equal(t, []string{"https://example.com/sitemap.xml"}, rules.Sitemaps)
	})

	t.Run("fails open on fetch failure", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(_ context.Context, url string, _ siteglean.FetchOptions) *siteglean.FetchResult {
				return &siteglean.FetchResult{URL: url, ErrorCode: siteglean.CodeTimeout}
			},
		}

		rules, ok := sghttp.NewRobots(fetcher).Rules(context.Background(), "https://example.com")

		assert.False(t, ok)
		assert.True(t, rules.Allows("/anything"))
	})

	t.Run("fails open on empty body", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(_ context.Context, url string, _ siteglean.FetchOptions) *siteglean.FetchResult {
				return &siteglean.FetchResult{URL: url, OK: true, Status: 200, Body: "  \n"}
			},
		}

		rules, ok := sghttp.NewRobots(fetcher).Rules(context.Background(), "https://example.com")

		assert.False(t, ok)
		assert.True(t, rules.Allows("/anything"))
	})
}
