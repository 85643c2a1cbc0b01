package plan

import (
	"sort"

	"github.com/siteglean/siteglean"
)

// Caps on per-type sample URLs and key-page lists.
const (
	maxSampleURLs  = 6
	maxKeyPageURLs = 5
)

// typeOrder fixes the bucket order in the structure summary.
var typeOrder = []siteglean.PageType{
	siteglean.PageHome,
	siteglean.PageAbout,
	siteglean.PageContact,
	siteglean.PageCategory,
	siteglean.PageProduct,
	siteglean.PageBlog,
	siteglean.PageLegal,
	siteglean.PageAccount,
	siteglean.PageCheckout,
	siteglean.PageOther,
}

// BuildWebsiteStructure buckets every known URL by inferred type and
// assembles the key-page index. crawled maps URL to its parsed page;
// discovered lists URLs seen in links or sitemaps but never fetched.
func BuildWebsiteStructure(crawled map[string]*siteglean.ParsedPage, discovered []string) siteglean.WebsiteStructure {
	typed := make(map[siteglean.PageType][]string)
	seen := make(map[string]bool)

	add := func(rawURL string, page *siteglean.ParsedPage) {
		if rawURL == "" || seen[rawURL] {
			return
		}
		seen[rawURL] = true
		t := InferPageType(rawURL, page)
		typed[t] = append(typed[t], rawURL)
	}

	// Crawled pages first, in sorted URL order for determinism, then
	// discovered-only URLs in their original order.
	crawledURLs := make([]string, 0, len(crawled))
	for u := range crawled {
		crawledURLs = append(crawledURLs, u)
	}
	sort.Strings(crawledURLs)
	for _, u := range crawledURLs {
		add(u, crawled[u])
	}
	for _, u := range discovered {
		add(u, nil)
	}

	structure := siteglean.WebsiteStructure{TotalURLs: len(seen)}
	for _, t := range typeOrder {
		urls := typed[t]
		if len(urls) == 0 {
			continue
		}
		samples := urls
		if len(samples) > maxSampleURLs {
			samples = samples[:maxSampleURLs]
		}
		structure.Types = append(structure.Types, siteglean.PageTypeSummary{
			Type:       t,
			Count:      len(urls),
			SampleURLs: append([]string{}, samples...),
		})
	}
	structure.KeyPages = buildKeyPages(typed)
	return structure
}

func buildKeyPages(typed map[siteglean.PageType][]string) siteglean.KeyPages {
	first := func(t siteglean.PageType) string {
		if urls := typed[t]; len(urls) > 0 {
			return urls[0]
		}
		return ""
	}
	capped := func(t siteglean.PageType) []string {
		urls := typed[t]
		if len(urls) > maxKeyPageURLs {
			urls = urls[:maxKeyPageURLs]
		}
		return append([]string{}, urls...)
	}
	return siteglean.KeyPages{
		Home:     first(siteglean.PageHome),
		About:    first(siteglean.PageAbout),
		Contact:  first(siteglean.PageContact),
		Legal:    capped(siteglean.PageLegal),
		Blog:     capped(siteglean.PageBlog),
		Category: capped(siteglean.PageCategory),
		Product:  capped(siteglean.PageProduct),
		Account:  capped(siteglean.PageAccount),
		Checkout: capped(siteglean.PageCheckout),
	}
}
