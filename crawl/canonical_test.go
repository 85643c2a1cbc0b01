package crawl_test

import (
	"testing"

	"github.com/siteglean/siteglean/crawl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalKey(t *testing.T) {
	t.Parallel()

	t.Run("normalizes host, params, slash and fragment", func(t *testing.T) {
		t.Parallel()

		got := crawl.CanonicalKey("https://Example.com/a/?utm_source=x&b=2&a=1#f")
		assert.Equal(t, "https://example.com/a?a=1&b=2", got)
	})

	t.Run("is idempotent", func(t *testing.T) {
		t.Parallel()

		urls := []string{
			"https://Example.com/a/?utm_source=x&b=2&a=1#f",
			"http://example.com:80/path/",
			"https://example.com:443/",
			"https://example.com/x?z=1&y=2&y=1",
			"not a url at all",
		}
		for _, u := range urls {
			once := crawl.CanonicalKey(u)
			assert.Equal(t, once, crawl.CanonicalKey(once), "url %q", u)
		}
	})

	t.Run("strips default ports only", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "http://example.com/a", crawl.CanonicalKey("http://example.com:80/a"))
		assert.Equal(t, "https://example.com/a", crawl.CanonicalKey("https://example.com:443/a"))
		assert.Equal(t, "https://example.com:8443/a", crawl.CanonicalKey("https://example.com:8443/a"))
	})

	t.Run("keeps the root path slash", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "https://example.com/", crawl.CanonicalKey("https://example.com/"))
	})

	t.Run("strips tracking params case-insensitively", func(t *testing.T) {
		t.Parallel()

		got := crawl.CanonicalKey("https://example.com/p?UTM_Campaign=x&gclid=1&fbclid=2&ref=tw&source=nl&keep=1")
		assert.Equal(t, "https://example.com/p?keep=1", got)
	})

	t.Run("sorts duplicate keys by value", func(t *testing.T) {
		t.Parallel()

		got := crawl.CanonicalKey("https://example.com/p?a=2&a=1")
		assert.Equal(t, "https://example.com/p?a=1&a=2", got)
	})
}

func TestNormalizeDiscoveredURL(t *testing.T) {
	t.Parallel()

	base := "https://example.com/dir/page"

	t.Run("resolves relative hrefs", func(t *testing.T) {
		t.Parallel()

		got, ok := crawl.NormalizeDiscoveredURL("../about", base)
		require.True(t, ok)
		assert.Equal(t, "https://example.com/about", got)
	})

	t.Run("rejects non-navigational schemes", func(t *testing.T) {
		t.Parallel()

		for _, href := range []string{"mailto:x@example.com", "tel:+420123456789", "javascript:void(0)", "data:text/html,x", "#top", ""} {
			_, ok := crawl.NormalizeDiscoveredURL(href, base)
			assert.False(t, ok, "href %q", href)
		}
	})

	t.Run("strips fragments from resolved URLs", func(t *testing.T) {
		t.Parallel()

		got, ok := crawl.NormalizeDiscoveredURL("/pricing#plans", base)
		require.True(t, ok)
		assert.Equal(t, "https://example.com/pricing", got)
	})

	t.Run("returns false on malformed hrefs", func(t *testing.T) {
		t.Parallel()

		_, ok := crawl.NormalizeDiscoveredURL("http://%zz", base)
		assert.False(t, ok)
	})
}

func TestIsSameOrigin(t *testing.T) {
	t.Parallel()

	assert.True(t, crawl.IsSameOrigin("https://example.com/a", "https://EXAMPLE.com/b"))
	assert.True(t, crawl.IsSameOrigin("https://example.com:443/a", "https://example.com/b"))
	assert.False(t, crawl.IsSameOrigin("https://example.com/a", "http://example.com/a"))
	assert.False(t, crawl.IsSameOrigin("https://example.com/a", "https://sub.example.com/a"))
}

func TestLooksLikeNonHTMLAsset(t *testing.T) {
	t.Parallel()

	assert.True(t, crawl.LooksLikeNonHTMLAsset("https://example.com/logo.png"))
	assert.True(t, crawl.LooksLikeNonHTMLAsset("https://example.com/theme.CSS"))
	assert.True(t, crawl.LooksLikeNonHTMLAsset("https://example.com/doc.pdf?v=2"))
	assert.False(t, crawl.LooksLikeNonHTMLAsset("https://example.com/about"))
	assert.False(t, crawl.LooksLikeNonHTMLAsset("https://example.com/v1.2/about"))
}

func TestKeywordScore(t *testing.T) {
	t.Parallel()

	assert.Greater(t, crawl.KeywordScore("https://example.com/about"), 0.0)
	assert.Greater(t, crawl.KeywordScore("https://example.com/kontakt"), 0.0)
	assert.Equal(t, 0.0, crawl.KeywordScore("https://example.com/xyz"))
	assert.Greater(t,
		crawl.KeywordScore("https://example.com/o-nas"),
		crawl.KeywordScore("https://example.com/blog"),
		"about-style pages outrank blog pages")
}
