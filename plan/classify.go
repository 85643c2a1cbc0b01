// Package plan classifies crawled and discovered URLs into page types and
// assembles the website structure summary. Path rules carry most of the
// weight; page content breaks ties and rescues unclassifiable paths.
package plan

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/siteglean/siteglean"
)

// pathRule maps a path pattern to a page type. Rules are evaluated in
// order; the first match wins.
type pathRule struct {
	re       *regexp.Regexp
	pageType siteglean.PageType
}

// Path rules, English and Czech tokens. Order matters: transactional and
// legal paths must be recognized before the broad product/category rules.
var pathRules = []pathRule{
	{regexp.MustCompile(`^/?$`), siteglean.PageHome},
	{regexp.MustCompile(`(?i)/(checkout|cart|kosik|košík|objednavka|pokladna)(/|$)`), siteglean.PageCheckout},
	{regexp.MustCompile(`(?i)/(account|login|register|signin|sign-in|signup|sign-up|my-account|ucet|prihlaseni|registrace)(/|$)`), siteglean.PageAccount},
	{regexp.MustCompile(`(?i)/(privacy|terms|cookies?|gdpr|impressum|legal|obchodni-podminky|ochrana-osobnich-udaju|podminky|reklamace)(/|$|-)`), siteglean.PageLegal},
	{regexp.MustCompile(`(?i)/(contact|contacts|kontakt|kontakty)(/|$)`), siteglean.PageContact},
	{regexp.MustCompile(`(?i)/(about|about-us|team|o-nas|o-spolecnosti|nas-tym|kdo-jsme)(/|$)`), siteglean.PageAbout},
	{regexp.MustCompile(`(?i)/(blog|news|clanky|novinky|aktuality|magazin|clanek|article|post)(/|$)`), siteglean.PageBlog},
	{regexp.MustCompile(`(?i)/(product|products|p|item|produkt|produkty|zbozi|detail)(/|$)`), siteglean.PageProduct},
	{regexp.MustCompile(`(?i)/(category|categories|collection|collections|shop|store|kategorie|c|katalog|sortiment|nabidka|sluzby|services)(/|$)`), siteglean.PageCategory},
}

// Positional fallbacks when no named rule matched: one short segment
// looks like a category listing, deeper slugged paths like a product
// detail.
var (
	slugSegmentRe = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+){2,}$`)
	shortPathRe   = regexp.MustCompile(`^/[a-z0-9-]{1,24}/?$`)
)

// ClassifyByPath types a URL from its path alone.
func ClassifyByPath(rawURL string) siteglean.PageType {
	u, err := url.Parse(rawURL)
	if err != nil {
		return siteglean.PageOther
	}
	path := u.EscapedPath()
	if path == "" {
		path = "/"
	}

	for _, rule := range pathRules {
		if rule.re.MatchString(path) {
			return rule.pageType
		}
	}

	segments := strings.Split(strings.Trim(path, "/"), "/")
	last := strings.ToLower(segments[len(segments)-1])
	if len(segments) >= 2 && slugSegmentRe.MatchString(last) {
		return siteglean.PageProduct
	}
	if shortPathRe.MatchString(strings.ToLower(path)) {
		return siteglean.PageCategory
	}
	return siteglean.PageOther
}

// contentRule maps keywords in title+h1+description to a page type.
type contentRule struct {
	re       *regexp.Regexp
	pageType siteglean.PageType
}

var contentRules = []contentRule{
	{regexp.MustCompile(`(?i)\b(checkout|your cart|shopping cart|pokladna|košík|kosik)\b`), siteglean.PageCheckout},
	{regexp.MustCompile(`(?i)\b(log ?in|sign ?in|sign ?up|my account|přihlášení|registrace|můj účet)\b`), siteglean.PageAccount},
	{regexp.MustCompile(`(?i)\b(privacy policy|terms|cookie policy|gdpr|obchodní podmínky|ochrana osobních)\b`), siteglean.PageLegal},
	{regexp.MustCompile(`(?i)\b(contact us|contact|get in touch|kontakt|kontaktujte)\b`), siteglean.PageContact},
	{regexp.MustCompile(`(?i)\b(about us|our story|our team|who we are|o nás|náš příběh|náš tým)\b`), siteglean.PageAbout},
	{regexp.MustCompile(`(?i)\b(blog|news|article|magazín|články|novinky|aktuality)\b`), siteglean.PageBlog},
}

// ClassifyByContent types a page from its title, first h1 and meta
// description. Returns PageOther when nothing matches.
func ClassifyByContent(page *siteglean.ParsedPage) siteglean.PageType {
	if page == nil {
		return siteglean.PageOther
	}
	var h1 string
	if len(page.Headings.H1) > 0 {
		h1 = page.Headings.H1[0]
	}
	text := page.Title + " " + h1 + " " + page.Description
	for _, rule := range contentRules {
		if rule.re.MatchString(text) {
			return rule.pageType
		}
	}
	return siteglean.PageOther
}

// strongContentTypes may override a weak path classification: a page
// whose content clearly says "checkout" or "privacy policy" is that page
// no matter what the path looks like.
var strongContentTypes = map[siteglean.PageType]bool{
	siteglean.PageContact:  true,
	siteglean.PageLegal:    true,
	siteglean.PageAccount:  true,
	siteglean.PageCheckout: true,
}

// InferPageType combines path and content classification. Product and
// category paths keep their path type even when the content suggests
// otherwise; footer boilerplate mentions "contact" and "about" on every
// page.
func InferPageType(rawURL string, page *siteglean.ParsedPage) siteglean.PageType {
	byPath := ClassifyByPath(rawURL)
	if byPath == siteglean.PageProduct || byPath == siteglean.PageCategory || byPath == siteglean.PageHome {
		return byPath
	}

	byContent := ClassifyByContent(page)
	if byPath == siteglean.PageOther && byContent != siteglean.PageOther {
		return byContent
	}
	if strongContentTypes[byContent] {
		return byContent
	}
	return byPath
}
