package goquery

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/siteglean/siteglean"
)

// Section candidate caps.
const (
	maxSectionCandidates = 30
	maxBullets           = 8
	maxCTAs              = 6
	maxSummaryLen        = 240
	maxBulletLen         = 120
)

// blockSelector picks the DOM blocks considered for marketing-section
// classification.
const blockSelector = `section, header, footer, article, [class*="section"], [class*="hero"], main > div`

var (
	legalLinkRe = regexp.MustCompile(`(?i)privacy|terms|cookie|gdpr|impressum|obchodn[íi][- ]podm[íi]nky|ochrana[- ]osobn[íi]ch|podm[íi]nky`)
	starsRe     = regexp.MustCompile(`(?i)\bstar|rating|hodnocen[íi]|[★⭐]`)
	peopleRe    = regexp.MustCompile(`(?i)\bteam\b|\bperson\b|avatar|portrait|\bt[ýy]m\b|staff|founder`)
	mapRe       = regexp.MustCompile(`(?i)maps\.google|google\.com/maps|mapy\.cz|openstreetmap|leaflet`)
)

// extractSectionCandidates walks the page's candidate blocks and reduces
// each to a SectionCandidate with the feature flags the classifier scores.
func extractSectionCandidates(doc *goquery.Document, pageURL string) []siteglean.SectionCandidate {
	var candidates []siteglean.SectionCandidate

	doc.Find(blockSelector).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		c := candidateFromBlock(sel, pageURL)
		if c == nil {
			return true
		}
		candidates = append(candidates, *c)
		return len(candidates) < maxSectionCandidates
	})

	return candidates
}

// candidateFromBlock reduces one DOM block. Blocks with no heading, text,
// bullets or CTAs carry no classifiable signal and yield nil.
func candidateFromBlock(sel *goquery.Selection, pageURL string) *siteglean.SectionCandidate {
	c := siteglean.SectionCandidate{
		PageURL: pageURL,
		Source:  blockSource(sel),
		Depth:   sel.ParentsFiltered(blockSelector).Length(),
	}

	c.Title = normalizeWhitespace(sel.Find("h1, h2, h3").First().Text())
	c.HasH1 = sel.Find("h1").Length() > 0 || goquery.NodeName(sel) == "h1"

	sel.Find("p").EachWithBreak(func(_ int, p *goquery.Selection) bool {
		text := normalizeWhitespace(p.Text())
		if len(text) < 30 {
			return true
		}
		c.Summary = clampText(text, maxSummaryLen)
		return false
	})

	sel.Find("li").EachWithBreak(func(_ int, li *goquery.Selection) bool {
		text := normalizeWhitespace(li.Text())
		if text == "" {
			return true
		}
		c.Bullets = append(c.Bullets, clampText(text, maxBulletLen))
		return len(c.Bullets) < maxBullets
	})

	sel.Find(`a, button`).EachWithBreak(func(_ int, a *goquery.Selection) bool {
		class, _ := a.Attr("class")
		if goquery.NodeName(a) != "button" && !ctaClassRe.MatchString(class) {
			return true
		}
		text := normalizeWhitespace(a.Text())
		if text == "" {
			return true
		}
		c.CTAs = append(c.CTAs, clampText(text, 80))
		return len(c.CTAs) < maxCTAs
	})

	c.HasForm = sel.Find("form").Length() > 0
	c.HasQuote = sel.Find("blockquote, q, [class*=quote], [class*=testimonial]").Length() > 0

	sel.Find("iframe[src], [class*=map]").EachWithBreak(func(_ int, m *goquery.Selection) bool {
		src, _ := m.Attr("src")
		class, _ := m.Attr("class")
		if mapRe.MatchString(src) || strings.Contains(strings.ToLower(class), "map") {
			c.HasMap = true
			return false
		}
		return true
	})

	blockText := normalizeWhitespace(sel.Text())
	c.HasStars = starsRe.MatchString(blockText) || sel.Find("[class*=star], [class*=rating]").Length() > 0
	c.HasPeople = sel.Find("[class*=team], [class*=person], [class*=avatar]").Length() > 0 ||
		(sel.Find("img").Length() >= 2 && peopleRe.MatchString(blockText))
	c.QuestionCount = strings.Count(blockText, "?")

	sel.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		if legalLinkRe.MatchString(href) || legalLinkRe.MatchString(a.Text()) {
			c.LegalLinkCount++
		}
	})

	if c.Title == "" && c.Summary == "" && len(c.Bullets) == 0 && len(c.CTAs) == 0 {
		return nil
	}
	return &c
}

// blockSource tags where the block sits in the page skeleton.
func blockSource(sel *goquery.Selection) string {
	name := goquery.NodeName(sel)
	if name == "footer" || sel.ParentsFiltered("footer").Length() > 0 {
		return "footer"
	}
	if name == "header" || sel.ParentsFiltered("header").Length() > 0 {
		return "header"
	}
	return "main"
}
