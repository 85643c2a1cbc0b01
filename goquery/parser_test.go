package goquery_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/siteglean/siteglean"
	sgq "github.com/siteglean/siteglean/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const baseURL = "https://example.com/"

func parse(t *testing.T, html string) *siteglean.ParsedPage {
	t.Helper()
	page, err := sgq.NewParser().Parse(baseURL, html)
	require.NoError(t, err)
	return page
}

func TestParser_Parse(t *testing.T) {
	t.Parallel()

	t.Run("rejects invalid page URLs", func(t *testing.T) {
		t.Parallel()

		_, err := sgq.NewParser().Parse(":/bad", "<html></html>")
		require.Error(t, err)
		assert.Equal(t, siteglean.EINVALID, siteglean.ErrorCode(err))
	})

	t.Run("extracts title and meta description", func(t *testing.T) {
		t.Parallel()

		page := parse(t, `<html><head>
			<title> Acme Corp | Home </title>
			<meta name="description" content="We make widgets.">
			<meta property="og:site_name" content="Acme Corp">
		</head><body></body></html>`)

		assert.Equal(t, "Acme Corp | Home", page.Title)
		assert.Equal(t, "We make widgets.", page.Description)
		assert.Equal(t, "Acme Corp", page.Meta["og:site_name"])
	})

	t.Run("deduplicates and caps headings", func(t *testing.T) {
		t.Parallel()

		var b strings.Builder
		b.WriteString("<html><body>")
		for i := range 12 {
			fmt.Fprintf(&b, "<h1>Heading %d</h1>", i)
		}
		b.WriteString("<h2>Same</h2><h2>same</h2><h2>Other</h2>")
		b.WriteString("</body></html>")

		page := parse(t, b.String())

		assert.Len(t, page.Headings.H1, 8)
		assert.Equal(t, []string{"Same", "Other"}, page.Headings.H2)
	})

	t.Run("collects text samples above the length floor", func(t *testing.T) {
		t.Parallel()

		long := strings.Repeat("word ", 80) // ~400 chars
		page := parse(t, `<html><body>
			<p>short</p>
			<p>`+long+`</p>
		</body></html>`)

		require.Len(t, page.TextSamples, 1)
		assert.LessOrEqual(t, len(page.TextSamples[0]), 280)
	})

	t.Run("classifies link contexts", func(t *testing.T) {
		t.Parallel()

		page := parse(t, `<html><body>
			<nav><a href="/about">About</a></nav>
			<main><a class="btn btn-primary" href="/demo">Get a demo</a>
				<a href="/blog/post">Read more</a></main>
			<footer><a href="/privacy">Privacy</a></footer>
		</body></html>`)

		bySource := map[string]string{}
		for _, l := range page.Links {
			bySource[l.Source] = l.URL
		}
		assert.Equal(t, "https://example.com/about", bySource[siteglean.LinkSourceNav])
		assert.Equal(t, "https://example.com/demo", bySource[siteglean.LinkSourceCTA])
		assert.Equal(t, "https://example.com/blog/post", bySource[siteglean.LinkSourceContent])
		assert.Equal(t, "https://example.com/privacy", bySource[siteglean.LinkSourceFooter])
	})

	t.Run("collects organization JSON-LD across nesting", func(t *testing.T) {
		t.Parallel()

		page := parse(t, `<html><head><script type="application/ld+json">
		{
			"@context": "https://schema.org",
			"@graph": [{
				"@type": "Organization",
				"name": "Acme Corp",
				"legalName": "Acme Corporation s.r.o.",
				"url": "https://example.com",
				"logo": {"@type": "ImageObject", "url": "https://example.com/logo.png"}
			}]
		}
		</script></head><body></body></html>`)

		assert.Equal(t, []string{"Acme Corp"}, page.Structured.Names)
		assert.Equal(t, []string{"Acme Corporation s.r.o."}, page.Structured.LegalNames)
		assert.Equal(t, []string{"https://example.com/logo.png"}, page.Structured.Logos)
	})

	t.Run("ignores malformed and non-organization JSON-LD", func(t *testing.T) {
		t.Parallel()

		page := parse(t, `<html><head>
			<script type="application/ld+json">{not json</script>
			<script type="application/ld+json">{"@type": "Article", "name": "Post"}</script>
		</head><body></body></html>`)

		assert.Empty(t, page.Structured.Names)
	})

	t.Run("finds favicons and logo candidates", func(t *testing.T) {
		t.Parallel()

		page := parse(t, `<html><head>
			<link rel="icon" href="/favicon.ico">
			<link rel="apple-touch-icon" href="/touch.png">
		</head><body>
			<img class="site-logo" src="/img/logo.svg">
			<img alt="decorative" src="/img/banner.jpg">
		</body></html>`)

		assert.Equal(t, []string{"https://example.com/favicon.ico", "https://example.com/touch.png"}, page.Favicons)
		assert.Equal(t, []string{"https://example.com/img/logo.svg"}, page.LogoCandidates)
	})

	t.Run("keeps the first link per social platform", func(t *testing.T) {
		t.Parallel()

		page := parse(t, `<html><body>
			<a href="https://www.facebook.com/acme">fb</a>
			<a href="https://www.facebook.com/acme-other">fb2</a>
			<a href="https://instagram.com/acme">ig</a>
		</body></html>`)

		assert.Equal(t, "https://www.facebook.com/acme", page.Social["facebook"])
		assert.Equal(t, "https://instagram.com/acme", page.Social["instagram"])
	})

	t.Run("collects style signals", func(t *testing.T) {
		t.Parallel()

		page := parse(t, `<html><head>
			<meta name="theme-color" content="#112233">
			<style>:root{--brand:#ff0000}</style>
			<link rel="stylesheet" href="/css/main.css">
			<link rel="stylesheet" href="https://cdn.other.com/lib.css">
			<link rel="stylesheet" href="https://fonts.googleapis.com/css2?family=Inter">
		</head><body><div style="color:#00ff00">x</div></body></html>`)

		assert.Equal(t, "#112233", page.Style.ThemeColor)
		assert.Equal(t, []string{":root{--brand:#ff0000}"}, page.Style.InlineCSS)
		assert.Equal(t, []string{"color:#00ff00"}, page.Style.InlineStyleAttr)
		assert.Equal(t, []string{"https://example.com/css/main.css"}, page.Style.StylesheetURLs,
			"cross-origin stylesheets are not queued for fetching")
		assert.Equal(t, []string{"https://fonts.googleapis.com/css2?family=Inter"}, page.Style.FontLinks)
	})

	t.Run("hashes normalized body text", func(t *testing.T) {
		t.Parallel()

		a := parse(t, "<html><body><p>Same   text</p></body></html>")
		b := parse(t, "<html><body><p>Same text</p></body></html>")
		c := parse(t, "<html><body><p>Different text</p></body></html>")

		assert.Equal(t, a.ContentHash, b.ContentHash)
		assert.NotEqual(t, a.ContentHash, c.ContentHash)
	})

	t.Run("detects trust tokens", func(t *testing.T) {
		t.Parallel()

		page := parse(t, `<html><body>
			<h2>Our partners</h2>
			<h2>Awards and certifications</h2>
		</body></html>`)

		assert.True(t, page.Trust.Partners)
		assert.True(t, page.Trust.Awards)
		assert.False(t, page.Trust.Press)
	})
}

func TestParser_Contacts(t *testing.T) {
	t.Parallel()

	t.Run("collects mailto and tel links plus body matches", func(t *testing.T) {
		t.Parallel()

		page := parse(t, `<html><body>
			<a href="mailto:test@example.com?subject=hi">Mail us</a>
			<a href="tel:+420 123 456 789">Call us</a>
			<p>Or write to sales@example.com directly.</p>
		</body></html>`)

		assert.Equal(t, []string{"test@example.com", "sales@example.com"}, page.Contacts.Emails)
		assert.Equal(t, []string{"+420123456789"}, page.Contacts.Phones)
	})

	t.Run("rejects size lists that look like phone numbers", func(t *testing.T) {
		t.Parallel()

		page := parse(t, `<html><body>
			<p>Available sizes: 36 38 40 42 44 46</p>
		</body></html>`)

		assert.Empty(t, page.Contacts.Phones)
	})

	t.Run("deduplicates case-insensitively", func(t *testing.T) {
		t.Parallel()

		page := parse(t, `<html><body>
			<a href="mailto:Info@Example.com">mail</a>
			<p>info@example.com</p>
		</body></html>`)

		assert.Equal(t, []string{"info@example.com"}, page.Contacts.Emails)
	})
}

func TestParser_SectionCandidates(t *testing.T) {
	t.Parallel()

	t.Run("top level hero block has depth zero and h1 flag", func(t *testing.T) {
		t.Parallel()

		page := parse(t, `<html><body>
			<section class="hero">
				<h1>Build faster</h1>
				<p>The platform for modern marketing teams everywhere.</p>
				<a class="btn" href="/signup">Start free</a>
			</section>
		</body></html>`)

		require.NotEmpty(t, page.SectionCandidates)
		hero := page.SectionCandidates[0]
		assert.Equal(t, 0, hero.Depth)
		assert.True(t, hero.HasH1)
		assert.Equal(t, "Build faster", hero.Title)
		assert.Equal(t, []string{"Start free"}, hero.CTAs)
	})

	t.Run("contact block flags form and map", func(t *testing.T) {
		t.Parallel()

		page := parse(t, `<html><body>
			<section>
				<h2>Contact us</h2>
				<form><input name="email"></form>
				<iframe src="https://www.google.com/maps/embed?pb=x"></iframe>
			</section>
		</body></html>`)

		require.NotEmpty(t, page.SectionCandidates)
		c := page.SectionCandidates[0]
		assert.True(t, c.HasForm)
		assert.True(t, c.HasMap)
	})

	t.Run("footer block counts legal links", func(t *testing.T) {
		t.Parallel()

		page := parse(t, `<html><body>
			<footer>
				<h2>Acme</h2>
				<a href="/privacy">Privacy policy</a>
				<a href="/terms">Terms of service</a>
				<a href="/blog">Blog</a>
			</footer>
		</body></html>`)

		require.NotEmpty(t, page.SectionCandidates)
		c := page.SectionCandidates[0]
		assert.Equal(t, "footer", c.Source)
		assert.Equal(t, 2, c.LegalLinkCount)
	})

	t.Run("faq block counts questions", func(t *testing.T) {
		t.Parallel()

		page := parse(t, `<html><body>
			<section>
				<h2>FAQ</h2>
				<h3>How does it work?</h3>
				<h3>What does it cost?</h3>
			</section>
		</body></html>`)

		require.NotEmpty(t, page.SectionCandidates)
		assert.Equal(t, 2, page.SectionCandidates[0].QuestionCount)
	})

	t.Run("blocks without signal are skipped", func(t *testing.T) {
		t.Parallel()

		page := parse(t, `<html><body><section><div></div></section></body></html>`)

		assert.Empty(t, page.SectionCandidates)
	})
}
