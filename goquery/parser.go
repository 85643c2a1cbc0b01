// Package goquery implements the HTML page parser on top of
// github.com/PuerkitoBio/goquery. It turns one fetched HTML document into
// a siteglean.ParsedPage: headings, text samples, contextualized links,
// structured data, contacts, assets, style signals and section candidates.
package goquery

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/cespare/xxhash/v2"
	"github.com/siteglean/siteglean"
)

// Extraction caps. Everything the parser emits is bounded so that one
// pathological page cannot blow up the crawl result.
const (
	maxH1          = 8
	maxH2          = 20
	maxH3          = 24
	maxTextSamples = 12
	minSampleLen   = 50
	maxSampleLen   = 280
)

// Ensure Parser implements siteglean.PageParser at compile time.
var _ siteglean.PageParser = (*Parser)(nil)

// Parser extracts structured page data from raw HTML.
type Parser struct{}

// NewParser creates a page parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse builds a ParsedPage from raw HTML. The pageURL is used to resolve
// relative references and must be absolute.
func (p *Parser) Parse(pageURL, html string) (*siteglean.ParsedPage, error) {
	base, err := url.Parse(pageURL)
	if err != nil || base.Host == "" {
		return nil, siteglean.Errorf(siteglean.EINVALID, "invalid page URL: %q", pageURL)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, siteglean.Errorf(siteglean.EINVALID, "failed to parse HTML: %v", err)
	}

	page := &siteglean.ParsedPage{
		URL:  pageURL,
		Meta: extractMeta(doc),
	}

	page.Title = strings.TrimSpace(doc.Find("title").First().Text())
	page.Description = page.Meta["description"]
	page.Headings = extractHeadings(doc)
	page.TextSamples = extractTextSamples(doc)
	page.Links = extractLinks(doc, base)
	page.Structured = extractStructuredData(doc)
	page.Favicons = extractFavicons(doc, base)
	page.LogoCandidates = extractLogoCandidates(doc, base)
	page.Social = extractSocialLinks(doc, base)
	page.Style = extractStyleSignals(doc, base, page.Meta)
	page.RawText = normalizeWhitespace(doc.Find("body").Text())
	page.ContentHash = xxhash.Sum64String(page.RawText)
	page.Contacts = extractContacts(doc, page.RawText)
	page.Trust = extractTrustTokens(page.RawText)
	page.SectionCandidates = extractSectionCandidates(doc, pageURL)

	return page, nil
}

// extractMeta collects meta tag name/property values into a flat map.
// property wins over name only when name is absent.
func extractMeta(doc *goquery.Document) map[string]string {
	meta := make(map[string]string)
	doc.Find("meta").Each(func(_ int, sel *goquery.Selection) {
		content, ok := sel.Attr("content")
		if !ok || strings.TrimSpace(content) == "" {
			return
		}
		key, _ := sel.Attr("name")
		if key == "" {
			key, _ = sel.Attr("property")
		}
		key = strings.ToLower(strings.TrimSpace(key))
		if key == "" {
			return
		}
		if _, exists := meta[key]; !exists {
			meta[key] = strings.TrimSpace(content)
		}
	})
	return meta
}

// extractHeadings collects deduplicated heading texts, capped per level.
func extractHeadings(doc *goquery.Document) siteglean.Headings {
	collect := func(selector string, limit int) []string {
		seen := make(map[string]bool)
		var out []string
		doc.Find(selector).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
			text := normalizeWhitespace(sel.Text())
			if text == "" || seen[strings.ToLower(text)] {
				return true
			}
			seen[strings.ToLower(text)] = true
			out = append(out, text)
			return len(out) < limit
		})
		return out
	}
	return siteglean.Headings{
		H1: collect("h1", maxH1),
		H2: collect("h2", maxH2),
		H3: collect("h3", maxH3),
	}
}

// extractTextSamples collects up to 12 paragraph-level samples longer than
// 50 characters, clamped to 280.
func extractTextSamples(doc *goquery.Document) []string {
	seen := make(map[string]bool)
	var samples []string
	doc.Find("p, li").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		text := normalizeWhitespace(sel.Text())
		if len(text) <= minSampleLen {
			return true
		}
		text = clampText(text, maxSampleLen)
		if seen[text] {
			return true
		}
		seen[text] = true
		samples = append(samples, text)
		return len(samples) < maxTextSamples
	})
	return samples
}

// ctaClassRe marks anchors styled as call-to-action buttons.
var ctaClassRe = regexp.MustCompile(`(?i)\b(btn|button|cta)\b|btn-|button-|--cta`)

// extractLinks collects same-document-resolvable anchors with their page
// context: nav, footer, cta or content. The orchestrator scores them for
// the frontier.
func extractLinks(doc *goquery.Document, base *url.URL) []siteglean.LinkContext {
	seen := make(map[string]bool)
	var links []siteglean.LinkContext

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		resolved, ok := resolveRef(base, href)
		if !ok {
			return
		}
		if seen[resolved] {
			return
		}
		seen[resolved] = true

		source := siteglean.LinkSourceContent
		class, _ := sel.Attr("class")
		switch {
		case ctaClassRe.MatchString(class):
			source = siteglean.LinkSourceCTA
		case sel.ParentsFiltered("footer, [class*=footer]").Length() > 0:
			source = siteglean.LinkSourceFooter
		case sel.ParentsFiltered("nav, header, [role=navigation], [class*=menu], [class*=navbar]").Length() > 0:
			source = siteglean.LinkSourceNav
		}

		links = append(links, siteglean.LinkContext{
			URL:    resolved,
			Text:   clampText(normalizeWhitespace(sel.Text()), 120),
			Source: source,
		})
	})

	return links
}

// extractFavicons resolves icon link hrefs.
func extractFavicons(doc *goquery.Document, base *url.URL) []string {
	seen := make(map[string]bool)
	var icons []string
	doc.Find(`link[rel*="icon"]`).Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		if resolved, ok := resolveRef(base, href); ok && !seen[resolved] {
			seen[resolved] = true
			icons = append(icons, resolved)
		}
	})
	return icons
}

// logoHintRe matches logo-ish attribute values.
var logoHintRe = regexp.MustCompile(`(?i)\blogo\b|logo[-_]|[-_]logo|\bbrand\b`)

// extractLogoCandidates finds img/svg elements whose alt, class, id or
// aria-label hint at a logo.
func extractLogoCandidates(doc *goquery.Document, base *url.URL) []string {
	seen := make(map[string]bool)
	var logos []string
	doc.Find("img, svg image, source").Each(func(_ int, sel *goquery.Selection) {
		hinted := false
		for _, attr := range []string{"alt", "class", "id", "aria-label"} {
			if v, ok := sel.Attr(attr); ok && logoHintRe.MatchString(v) {
				hinted = true
				break
			}
		}
		if !hinted {
			// An image inside a logo-classed wrapper counts too.
			if sel.ParentsFiltered(`[class*="logo"], [id*="logo"]`).Length() == 0 {
				return
			}
		}
		src, ok := sel.Attr("src")
		if !ok {
			src, ok = sel.Attr("srcset")
			if ok {
				src, _, _ = strings.Cut(src, " ")
			}
		}
		if !ok {
			return
		}
		if resolved, ok := resolveRef(base, src); ok && !seen[resolved] {
			seen[resolved] = true
			logos = append(logos, resolved)
		}
	})
	return logos
}

// socialPlatforms maps a platform key to its hostname fragment. The first
// link found per platform wins.
var socialPlatforms = []struct {
	key  string
	host string
}{
	{"facebook", "facebook.com"},
	{"instagram", "instagram.com"},
	{"linkedin", "linkedin.com"},
	{"twitter", "twitter.com"},
	{"x", "x.com"},
	{"youtube", "youtube.com"},
	{"tiktok", "tiktok.com"},
	{"pinterest", "pinterest."},
}

// extractSocialLinks finds the first outbound link per social platform.
func extractSocialLinks(doc *goquery.Document, base *url.URL) map[string]string {
	social := make(map[string]string)
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		resolved, ok := resolveRef(base, href)
		if !ok {
			return
		}
		u, err := url.Parse(resolved)
		if err != nil {
			return
		}
		host := strings.ToLower(u.Host)
		for _, platform := range socialPlatforms {
			if _, taken := social[platform.key]; taken {
				continue
			}
			if strings.Contains(host, platform.host) {
				social[platform.key] = resolved
				break
			}
		}
	})
	if len(social) == 0 {
		return nil
	}
	return social
}

// fontHostRe matches hosted font services.
var fontHostRe = regexp.MustCompile(`(?i)fonts\.googleapis\.com|use\.typekit\.net|fonts\.bunny\.net`)

// extractStyleSignals gathers the raw CSS material style inference feeds
// on: inline style blocks and attributes, same-origin stylesheet links,
// hosted font links, and the theme-color meta value.
func extractStyleSignals(doc *goquery.Document, base *url.URL, meta map[string]string) siteglean.StyleSignals {
	var signals siteglean.StyleSignals

	doc.Find("style").Each(func(_ int, sel *goquery.Selection) {
		if css := strings.TrimSpace(sel.Text()); css != "" {
			signals.InlineCSS = append(signals.InlineCSS, css)
		}
	})

	doc.Find("[style]").Each(func(_ int, sel *goquery.Selection) {
		if v, ok := sel.Attr("style"); ok && strings.TrimSpace(v) != "" {
			signals.InlineStyleAttr = append(signals.InlineStyleAttr, strings.TrimSpace(v))
		}
	})

	doc.Find(`link[rel="stylesheet"]`).Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		resolved, ok := resolveRef(base, href)
		if !ok {
			return
		}
		if fontHostRe.MatchString(resolved) {
			signals.FontLinks = append(signals.FontLinks, resolved)
			return
		}
		if sameHost(base, resolved) {
			signals.StylesheetURLs = append(signals.StylesheetURLs, resolved)
		}
	})

	// Preconnect/preload font hints carry family info in their URLs too.
	doc.Find(`link[href*="fonts.googleapis.com"], link[href*="use.typekit.net"]`).Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		if resolved, ok := resolveRef(base, href); ok && !contains(signals.FontLinks, resolved) {
			signals.FontLinks = append(signals.FontLinks, resolved)
		}
	})

	signals.ThemeColor = meta["theme-color"]
	return signals
}

// Trust token patterns, English and Czech.
var (
	trustPartnersRe     = regexp.MustCompile(`(?i)\bpartner|partneř|spolupracujeme`)
	trustTestimonialsRe = regexp.MustCompile(`(?i)testimonial|recenze|říkají o nás|our clients say|zkušenosti klientů`)
	trustAwardsRe       = regexp.MustCompile(`(?i)\baward|ocenění|certifik|vítěz`)
	trustPressRe        = regexp.MustCompile(`(?i)\bpress\b|\bmedia\b|napsali o nás|in the news`)
)

func extractTrustTokens(rawText string) siteglean.TrustTokens {
	return siteglean.TrustTokens{
		Partners:     trustPartnersRe.MatchString(rawText),
		Testimonials: trustTestimonialsRe.MatchString(rawText),
		Awards:       trustAwardsRe.MatchString(rawText),
		Press:        trustPressRe.MatchString(rawText),
	}
}

// resolveRef resolves an href/src against the base, rejecting
// non-navigational schemes and malformed values.
func resolveRef(base *url.URL, ref string) (string, bool) {
	ref = strings.TrimSpace(ref)
	if ref == "" || strings.HasPrefix(ref, "#") {
		return "", false
	}
	lower := strings.ToLower(ref)
	for _, scheme := range []string{"mailto:", "tel:", "javascript:", "data:"} {
		if strings.HasPrefix(lower, scheme) {
			return "", false
		}
	}
	parsed, err := url.Parse(ref)
	if err != nil {
		return "", false
	}
	resolved := base.ResolveReference(parsed)
	if resolved.Scheme != "http" && resolved.Scheme != "https" || resolved.Host == "" {
		return "", false
	}
	resolved.Fragment = ""
	return resolved.String(), true
}

func sameHost(base *url.URL, raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return strings.EqualFold(u.Host, base.Host)
}

var whitespaceRe = regexp.MustCompile(`\s+`)

func normalizeWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}

// clampText cuts a string to max bytes at a rune boundary.
func clampText(s string, max int) string {
	if len(s) <= max {
		return s
	}
	runes := []rune(s)
	out := make([]rune, 0, len(runes))
	size := 0
	for _, r := range runes {
		size += len(string(r))
		if size > max {
			break
		}
		out = append(out, r)
	}
	return strings.TrimSpace(string(out))
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
