package siteglean_test

import (
	"testing"
	"time"

	"github.com/siteglean/siteglean"
	"github.com/stretchr/testify/assert"
)

func TestParseRobots(t *testing.T) {
	t.Parallel()

	t.Run("collects directives from the wildcard block only", func(t *testing.T) {
		t.Parallel()

		body := `User-agent: googlebot
Disallow: /google-only

User-agent: *
Allow: /public
Disallow: /private
Crawl-delay: 2

Sitemap: https://example.com/sitemap.xml`

		rules := siteglean.ParseRobots(body)

		assert.Equal(t, []string{"/public"}, rules.Allow)
		assert.Equal(t, []string{"/private"}, rules.Disallow)
		assert.Equal(t, 2*time.Second, rules.CrawlDelay)
		assert.Equal(t, []string{"https://example.com/sitemap.xml"}, rules.Sitemaps)
	})

	t.Run("collects sitemaps outside the wildcard block", func(t *testing.T) {
		t.Parallel()

		body := `User-agent: googlebot
Sitemap: https://example.com/a.xml
Disallow: /x`

		rules := siteglean.ParseRobots(body)

		assert.Equal(t, []string{"https://example.com/a.xml"}, rules.Sitemaps)
		assert.Empty(t, rules.Disallow)
	})

	t.Run("empty body means allow all", func(t *testing.T) {
		t.Parallel()

		rules := siteglean.ParseRobots("")

		assert.True(t, rules.Allows("/anything"))
	})

	t.Run("ignores comments and malformed lines", func(t *testing.T) {
		t.Parallel()

		body := `# a comment
User-agent: *
Disallow: /secret # trailing comment
not a directive`

		rules := siteglean.ParseRobots(body)

		assert.Equal(t, []string{"/secret"}, rules.Disallow)
	})
}

func TestRobotsRules_Allows(t *testing.T) {
	t.Parallel()

	t.Run("no matching rule allows", func(t *testing.T) {
		t.Parallel()

		rules := siteglean.RobotsRules{Disallow: []string{"/admin"}}

		assert.True(t, rules.Allows("/blog/post"))
	})

	t.Run("disallowed prefix blocks", func(t *testing.T) {
		t.Parallel()

		rules := siteglean.RobotsRules{Disallow: []string{"/admin"}}

		assert.False(t, rules.Allows("/admin/settings"))
	})

	t.Run("equal match length tie goes to allow", func(t *testing.T) {
		t.Parallel()

		rules := siteglean.RobotsRules{
			Allow:    []string{"/same"},
			Disallow: []string{"/same"},
		}

		assert.True(t, rules.Allows("/same"))
	})

	t.Run("longer disallow beats shorter allow", func(t *testing.T) {
		t.Parallel()

		rules := siteglean.RobotsRules{
			Allow:    []string{"/shop"},
			Disallow: []string{"/shop/checkout"},
		}

		assert.True(t, rules.Allows("/shop/items"))
		assert.False(t, rules.Allows("/shop/checkout/step1"))
	})

	t.Run("wildcard matches any run of characters", func(t *testing.T) {
		t.Parallel()

		rules := siteglean.RobotsRules{Disallow: []string{"/*/private"}}

		assert.False(t, rules.Allows("/en/private"))
		assert.True(t, rules.Allows("/private"))
	})

	t.Run("dollar anchors to the end of the path", func(t *testing.T) {
		t.Parallel()

		rules := siteglean.RobotsRules{Disallow: []string{"/*.pdf$"}}

		assert.False(t, rules.Allows("/files/report.pdf"))
		assert.True(t, rules.Allows("/files/report.pdf.html"))
	})

	t.Run("metacharacters do not count toward match length", func(t *testing.T) {
		t.Parallel()

		// "/p*" has match length 2, "/pri" has match length 4:
		// the more specific allow wins.
		rules := siteglean.RobotsRules{
			Allow:    []string{"/pri"},
			Disallow: []string{"/p*"},
		}

		assert.True(t, rules.Allows("/pricing"))
	})

	t.Run("empty path is treated as root", func(t *testing.T) {
		t.Parallel()

		rules := siteglean.RobotsRules{Disallow: []string{"/"}}

		assert.False(t, rules.Allows(""))
	})
}
