// Package crawl implements the crawl engine: URL canonicalization, the
// priority frontier, per-host rate limiting, and the orchestrator that
// drives the fetch loop.
package crawl

import (
	"net/url"
	"sort"
	"strings"
)

// trackingParams are query parameters stripped during canonicalization.
// utm_* is handled as a prefix.
var trackingParams = map[string]bool{
	"gclid":  true,
	"fbclid": true,
	"ref":    true,
	"source": true,
}

// CanonicalKey returns the normalized form of a URL used for crawl-time
// deduplication: lowercased host, no fragment, default ports removed,
// tracking params stripped, remaining query params sorted by key then
// value, and no trailing slash except on the root path.
//
// CanonicalKey is idempotent and never fails; a URL that cannot be parsed
// is returned trimmed but otherwise unchanged.
func CanonicalKey(raw string) string {
	raw = strings.TrimSpace(raw)
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return raw
	}

	u.Fragment = ""
	u.Scheme = strings.ToLower(u.Scheme)

	host := strings.ToLower(u.Host)
	if h, p, ok := strings.Cut(host, ":"); ok {
		if (u.Scheme == "http" && p == "80") || (u.Scheme == "https" && p == "443") {
			host = h
		}
	}
	u.Host = host

	u.RawQuery = canonicalQuery(u.Query())

	if u.Path != "/" {
		u.Path = strings.TrimSuffix(u.Path, "/")
	}

	return u.String()
}

// canonicalQuery drops tracking params and re-encodes the rest sorted by
// key, then by value within a key.
func canonicalQuery(q url.Values) string {
	keys := make([]string, 0, len(q))
	for k := range q {
		lk := strings.ToLower(k)
		if strings.HasPrefix(lk, "utm_") || trackingParams[lk] {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		values := append([]string(nil), q[k]...)
		sort.Strings(values)
		for _, v := range values {
			if b.Len() > 0 {
				b.WriteByte('&')
			}
			b.WriteString(url.QueryEscape(k))
			b.WriteByte('=')
			b.WriteString(url.QueryEscape(v))
		}
	}
	return b.String()
}

// NormalizeDiscoveredURL resolves href against base and returns the
// absolute URL. It returns ok=false for malformed URLs, fragment-only
// hrefs, and non-navigational schemes (mailto:, tel:, javascript:,
// data:). It never panics or errors.
func NormalizeDiscoveredURL(href, base string) (string, bool) {
	href = strings.TrimSpace(href)
	if href == "" || strings.HasPrefix(href, "#") {
		return "", false
	}

	lower := strings.ToLower(href)
	for _, scheme := range []string{"mailto:", "tel:", "javascript:", "data:"} {
		if strings.HasPrefix(lower, scheme) {
			return "", false
		}
	}

	baseURL, err := url.Parse(base)
	if err != nil {
		return "", false
	}
	ref, err := url.Parse(href)
	if err != nil {
		return "", false
	}

	resolved := baseURL.ResolveReference(ref)
	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return "", false
	}
	if resolved.Host == "" {
		return "", false
	}
	resolved.Fragment = ""
	return resolved.String(), true
}

// IsSameOrigin reports whether two URLs share a scheme and host, with
// hosts compared case-insensitively and default ports normalized away.
func IsSameOrigin(a, b string) bool {
	ua, err := url.Parse(a)
	if err != nil {
		return false
	}
	ub, err := url.Parse(b)
	if err != nil {
		return false
	}
	return originOf(ua) == originOf(ub)
}

func originOf(u *url.URL) string {
	scheme := strings.ToLower(u.Scheme)
	host := strings.ToLower(u.Host)
	if h, p, ok := strings.Cut(host, ":"); ok {
		if (scheme == "http" && p == "80") || (scheme == "https" && p == "443") {
			host = h
		}
	}
	return scheme + "://" + host
}

// nonHTMLExtensions are path extensions the crawler never fetches as pages.
var nonHTMLExtensions = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true,
	".svg": true, ".ico": true, ".avif": true, ".bmp": true,
	".css": true, ".js": true, ".mjs": true, ".map": true,
	".pdf": true, ".zip": true, ".rar": true, ".gz": true, ".tar": true,
	".mp3": true, ".mp4": true, ".avi": true, ".mov": true, ".webm": true,
	".woff": true, ".woff2": true, ".ttf": true, ".otf": true, ".eot": true,
	".doc": true, ".docx": true, ".xls": true, ".xlsx": true, ".ppt": true,
	".pptx": true, ".csv": true, ".xml": true, ".json": true, ".txt": true,
	".webmanifest": true,
}

// LooksLikeNonHTMLAsset reports whether the URL's path extension marks it
// as a static asset rather than a page.
func LooksLikeNonHTMLAsset(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	path := strings.ToLower(u.Path)
	idx := strings.LastIndex(path, ".")
	if idx == -1 || idx < strings.LastIndex(path, "/") {
		return false
	}
	return nonHTMLExtensions[path[idx:]]
}

// pathKeywords score URL paths for marketing relevance. Czech tokens sit
// alongside English ones; the corpus of target sites spans both.
var pathKeywords = []struct {
	token  string
	weight float64
}{
	{"about", 5}, {"o-nas", 5}, {"onas", 4}, {"o-spolecnosti", 5},
	{"contact", 5}, {"kontakt", 5},
	{"service", 4}, {"sluzby", 4},
	{"product", 3}, {"produkty", 3},
	{"portfolio", 4}, {"reference", 4}, {"projekty", 4}, {"project", 4},
	{"team", 3}, {"tym", 3},
	{"pricing", 4}, {"cenik", 4}, {"price", 3},
	{"faq", 3}, {"casto-kladene", 3},
	{"career", 2}, {"kariera", 2},
	{"blog", 2}, {"news", 2}, {"aktuality", 2}, {"clanky", 2},
	{"home", 3}, {"uvod", 3}, {"index", 2},
}

// KeywordScore sums keyword weights for substrings of the URL path.
func KeywordScore(raw string) float64 {
	u, err := url.Parse(raw)
	if err != nil {
		return 0
	}
	path := strings.ToLower(u.Path)
	var score float64
	for _, kw := range pathKeywords {
		if strings.Contains(path, kw.token) {
			score += kw.weight
		}
	}
	return score
}
