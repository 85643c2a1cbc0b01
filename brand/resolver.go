// Package brand resolves a site's brand name from the signals the crawl
// collected: structured data, meta tags, titles, headers and the domain
// itself. Candidates are cleaned, scored, grouped and ranked; the top
// group becomes the canonical name.
package brand

import (
	"net/url"
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/siteglean/siteglean"
	"golang.org/x/net/publicsuffix"
)

// Source weights. The first value applies to homepage signals, the second
// to signals found on deeper pages.
const (
	weightDomain         = 1.4
	weightLegalNameHome  = 1.5
	weightLegalName      = 1.25
	weightJSONLDNameHome = 1.45
	weightJSONLDName     = 1.2
	weightOGSiteHome     = 1.35
	weightOGSite         = 1.15
	weightTitleHome      = 1.1
	weightTitle          = 0.75
	weightHeaderHome     = 0.95
	weightHeader         = 0.65
)

// Score adjustments applied after cleaning.
const (
	penaltyProductHint = -0.6
	penaltyLongNumeric = -0.3
	boostDomainToken   = 0.4
	boostHomepage      = 0.2
	discardThreshold   = 0.2
)

const maxAliases = 5

// Resolver aggregates brand signals across crawled pages.
type Resolver struct{}

func NewResolver() *Resolver {
	return &Resolver{}
}

// Resolve builds a BrandProfile from the crawled pages. rootURL anchors
// the homepage check and the domain-derived token.
func (r *Resolver) Resolve(rootURL string, pages []*siteglean.ParsedPage) siteglean.BrandProfile {
	profile := siteglean.BrandProfile{}

	root, err := url.Parse(rootURL)
	if err != nil || root.Host == "" {
		return profile
	}
	profile.Domain = root.Hostname()

	token := domainToken(root.Hostname())
	var candidates []siteglean.BrandCandidate
	if token != "" {
		candidates = append(candidates, siteglean.BrandCandidate{
			Value:   titleCase(token),
			Score:   weightDomain,
			Source:  siteglean.BrandSourceDomain,
			PageURL: rootURL,
		})
	}

	for _, page := range pages {
		candidates = append(candidates, harvestPage(page, root)...)
	}

	ranked := rank(clean(candidates, token, root))
	profile.Candidates = ranked
	if len(ranked) > 0 {
		profile.Name = ranked[0].Value
		for _, g := range ranked[1:] {
			if len(profile.Aliases) == maxAliases {
				break
			}
			profile.Aliases = append(profile.Aliases, g.Value)
		}
	}

	profile.Logos = collectFirst(pages, func(p *siteglean.ParsedPage) []string {
		return append(append([]string{}, p.Structured.Logos...), p.LogoCandidates...)
	})
	profile.Favicons = collectFirst(pages, func(p *siteglean.ParsedPage) []string {
		return p.Favicons
	})
	return profile
}

// harvestPage emits raw candidates from one page. Homepage signals score
// higher than deep-page signals.
func harvestPage(page *siteglean.ParsedPage, root *url.URL) []siteglean.BrandCandidate {
	home := isHomepage(page.URL, root)
	pick := func(homeWeight, deepWeight float64) float64 {
		if home {
			return homeWeight
		}
		return deepWeight
	}

	var out []siteglean.BrandCandidate
	add := func(value, source string, score float64) {
		value = strings.TrimSpace(value)
		if value == "" {
			return
		}
		out = append(out, siteglean.BrandCandidate{
			Value:   value,
			Score:   score,
			Source:  source,
			PageURL: page.URL,
		})
	}

	for _, v := range page.Structured.LegalNames {
		add(v, siteglean.BrandSourceLegalName, pick(weightLegalNameHome, weightLegalName))
	}
	for _, v := range page.Structured.Names {
		add(v, siteglean.BrandSourceJSONLDName, pick(weightJSONLDNameHome, weightJSONLDName))
	}
	if v := page.Meta["og:site_name"]; v != "" {
		add(v, siteglean.BrandSourceOGSiteName, pick(weightOGSiteHome, weightOGSite))
	}
	for _, chunk := range splitTitle(page.Title) {
		add(chunk, siteglean.BrandSourceTitle, pick(weightTitleHome, weightTitle))
	}
	for _, h := range page.Headings.H1 {
		add(h, siteglean.BrandSourceHeader, pick(weightHeaderHome, weightHeader))
	}
	return out
}

var (
	noiseWordRe   = regexp.MustCompile(`(?i)\b(shop|official|store|eshop|e-shop|online|website|web|home(?:page)?|welcome to)\b`)
	priceTokenRe  = regexp.MustCompile(`(?i)\d+[.,]?\d*\s*(?:kč|czk|eur|€|usd|\$|£)|\b(?:from|od)\s+\d+`)
	bySuffixRe    = regexp.MustCompile(`(?i)\s+by\s+\S.*$`)
	productHintRe = regexp.MustCompile(`(?i)\b(buy|sale|discount|price|cart|sleva|akce|koupit|cena)\b|\d+\s?(?:ml|mm|cm|kg|gb)\b`)
	longNumericRe = regexp.MustCompile(`\d{4,}`)
	separatorRe   = regexp.MustCompile(`\s*[|\x{2013}\x{2014}]\s*|\s+-\s+`)
	nonAlnumRe    = regexp.MustCompile(`[^a-z0-9]+`)
)

// clean normalizes each candidate's value and applies score adjustments.
// Candidates that end up empty or below the discard threshold are dropped.
func clean(candidates []siteglean.BrandCandidate, token string, root *url.URL) []siteglean.BrandCandidate {
	tokenKey := normalizeKey(token)
	var out []siteglean.BrandCandidate
	for _, c := range candidates {
		value := c.Value
		if chunks := separatorRe.Split(value, -1); len(chunks) > 0 {
			value = chunks[0]
		}
		value = bySuffixRe.ReplaceAllString(value, "")
		value = priceTokenRe.ReplaceAllString(value, "")
		if c.Source != siteglean.BrandSourceDomain {
			value = noiseWordRe.ReplaceAllString(value, "")
		}
		value = strings.Trim(normalizeSpace(value), "-|–—:, ")
		if value == "" {
			continue
		}

		score := c.Score
		var reasons []string
		if productHintRe.MatchString(c.Value) {
			score += penaltyProductHint
			reasons = append(reasons, "product_hint")
		}
		if longNumericRe.MatchString(value) {
			score += penaltyLongNumeric
			reasons = append(reasons, "long_numeric")
		}
		if tokenKey != "" && c.Source != siteglean.BrandSourceDomain &&
			strings.Contains(normalizeKey(value), tokenKey) {
			score += boostDomainToken
			reasons = append(reasons, "domain_token")
		}
		if isHomepage(c.PageURL, root) && c.Source != siteglean.BrandSourceDomain {
			score += boostHomepage
		}
		if score <= discardThreshold {
			continue
		}

		c.Value = value
		c.Score = score
		c.Reason = strings.Join(reasons, ",")
		out = append(out, c)
	}
	return out
}

// rank groups cleaned candidates by normalized key, sums scores and
// orders groups by summed score, then count, then shorter display value.
func rank(candidates []siteglean.BrandCandidate) []siteglean.RankedBrandName {
	type group struct {
		ranked siteglean.RankedBrandName
		best   siteglean.BrandCandidate
		order  int
	}
	groups := make(map[string]*group)
	var keys []string

	for _, c := range candidates {
		key := normalizeKey(c.Value)
		if key == "" {
			continue
		}
		g, ok := groups[key]
		if !ok {
			g = &group{best: c, order: len(keys)}
			groups[key] = g
			keys = append(keys, key)
		}
		g.ranked.Score += c.Score
		g.ranked.Count++
		if !contains(g.ranked.Sources, c.Source) {
			g.ranked.Sources = append(g.ranked.Sources, c.Source)
		}
		if c.PageURL != "" && !contains(g.ranked.PageURLs, c.PageURL) {
			g.ranked.PageURLs = append(g.ranked.PageURLs, c.PageURL)
		}
		if betterDisplay(c, g.best) {
			g.best = c
		}
	}

	out := make([]siteglean.RankedBrandName, 0, len(groups))
	for _, key := range keys {
		g := groups[key]
		g.ranked.Value = g.best.Value
		g.ranked.Reason = g.best.Reason
		out = append(out, g.ranked)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return len(out[i].Value) < len(out[j].Value)
	})
	return out
}

// betterDisplay prefers the higher-scored variant; at equal score a value
// containing uppercase letters beats an all-lowercase one.
func betterDisplay(c, best siteglean.BrandCandidate) bool {
	if c.Score != best.Score {
		return c.Score > best.Score
	}
	return hasUpper(c.Value) && !hasUpper(best.Value)
}

// domainToken derives the brand token from the registrable domain:
// "www.acme-corp.co.uk" yields "acme corp".
func domainToken(hostname string) string {
	hostname = strings.ToLower(hostname)
	etld1, err := publicsuffix.EffectiveTLDPlusOne(hostname)
	if err != nil {
		etld1 = hostname
	}
	label, _, _ := strings.Cut(etld1, ".")
	label = strings.ReplaceAll(label, "-", " ")
	return strings.TrimSpace(label)
}

func isHomepage(pageURL string, root *url.URL) bool {
	u, err := url.Parse(pageURL)
	if err != nil {
		return false
	}
	if !strings.EqualFold(u.Hostname(), root.Hostname()) {
		return false
	}
	return u.Path == "" || u.Path == "/"
}

// splitTitle breaks a page title on common separators into brand-name
// chunks, shortest chunks being likeliest to be the brand.
func splitTitle(title string) []string {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil
	}
	var out []string
	for _, chunk := range separatorRe.Split(title, -1) {
		chunk = strings.TrimSpace(chunk)
		if chunk != "" {
			out = append(out, chunk)
		}
	}
	return out
}

func normalizeKey(s string) string {
	return strings.Trim(nonAlnumRe.ReplaceAllString(strings.ToLower(s), ""), " ")
}

var spaceRe = regexp.MustCompile(`\s+`)

func normalizeSpace(s string) string {
	return strings.TrimSpace(spaceRe.ReplaceAllString(s, " "))
}

func hasUpper(s string) bool {
	for _, r := range s {
		if unicode.IsUpper(r) {
			return true
		}
	}
	return false
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// collectFirst gathers deduplicated values across pages in page order.
func collectFirst(pages []*siteglean.ParsedPage, pick func(*siteglean.ParsedPage) []string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, p := range pages {
		for _, v := range pick(p) {
			if v == "" || seen[v] {
				continue
			}
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}
