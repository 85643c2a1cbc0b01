// Package sections classifies page section candidates into marketing
// archetypes. Each candidate is scored against every archetype by a rule
// table of keyword and feature-flag signals; the best archetype wins only
// above a minimum score, and one instance per archetype survives the
// whole crawl.
package sections

import (
	"math"
	"regexp"
	"strings"

	"github.com/siteglean/siteglean"
)

const (
	// minWinningScore is the floor below which a candidate yields no
	// section at all.
	minWinningScore = 1.2
	// confidenceDivisor converts a winning score to confidence, capped at 1.
	confidenceDivisor = 4.2
)

// signal is one scoring rule for an archetype.
type signal struct {
	name  string
	score float64
	fires func(c *siteglean.SectionCandidate, text string) bool
}

func keyword(name string, score float64, re *regexp.Regexp) signal {
	return signal{name, score, func(_ *siteglean.SectionCandidate, text string) bool {
		return re.MatchString(text)
	}}
}

func flag(name string, score float64, fires func(c *siteglean.SectionCandidate) bool) signal {
	return signal{name, score, func(c *siteglean.SectionCandidate, _ string) bool {
		return fires(c)
	}}
}

// Keyword patterns, English and Czech.
var (
	heroRe         = regexp.MustCompile(`(?i)\bhero\b|welcome|vítejte|úvod`)
	featuresRe     = regexp.MustCompile(`(?i)features?|benefits?|why (us|choose)|výhody|proč`)
	servicesRe     = regexp.MustCompile(`(?i)services?|what we do|our offer|služby|nabízíme|co děláme`)
	projectsRe     = regexp.MustCompile(`(?i)projects?|portfolio|our work|case stud|gallery|reference|realizace|galerie`)
	testimonialsRe = regexp.MustCompile(`(?i)testimonial|reviews?|clients? say|recenze|říkají o nás|zkušenosti`)
	teamRe         = regexp.MustCompile(`(?i)\bteam\b|our people|founders?|\btým\b|náš tým|kdo jsme`)
	faqRe          = regexp.MustCompile(`(?i)\bfaq\b|frequently asked|questions|časté dotazy|otázky`)
	contactRe      = regexp.MustCompile(`(?i)contact|get in touch|reach (out|us)|kontakt|napište|ozvěte`)
	footerRe       = regexp.MustCompile(`(?i)all rights reserved|©|copyright|\bsitemap\b|všechna práva`)
)

// rules is the per-archetype signal table.
var rules = map[siteglean.SectionType][]signal{
	siteglean.SectionHero: {
		flag("h1_top_level", 3.0, func(c *siteglean.SectionCandidate) bool {
			return c.HasH1 && c.Depth == 0
		}),
		keyword("hero_keyword", 0.8, heroRe),
		flag("has_cta", 0.5, func(c *siteglean.SectionCandidate) bool { return len(c.CTAs) > 0 }),
		flag("header_source", 0.4, func(c *siteglean.SectionCandidate) bool { return c.Source == "header" }),
	},
	siteglean.SectionFeatures: {
		keyword("features_keyword", 1.5, featuresRe),
		flag("bullet_list", 1.0, func(c *siteglean.SectionCandidate) bool { return len(c.Bullets) >= 3 }),
		flag("has_bullets", 0.4, func(c *siteglean.SectionCandidate) bool { return len(c.Bullets) > 0 }),
	},
	siteglean.SectionServices: {
		keyword("services_keyword", 1.8, servicesRe),
		flag("has_bullets", 0.5, func(c *siteglean.SectionCandidate) bool { return len(c.Bullets) > 0 }),
		flag("has_cta", 0.3, func(c *siteglean.SectionCandidate) bool { return len(c.CTAs) > 0 }),
	},
	siteglean.SectionProjects: {
		keyword("projects_keyword", 1.8, projectsRe),
	},
	siteglean.SectionTestimonials: {
		keyword("testimonials_keyword", 1.3, testimonialsRe),
		flag("has_quote", 1.2, func(c *siteglean.SectionCandidate) bool { return c.HasQuote }),
		flag("has_stars", 0.9, func(c *siteglean.SectionCandidate) bool { return c.HasStars }),
	},
	siteglean.SectionTeam: {
		keyword("team_keyword", 1.4, teamRe),
		flag("has_people", 1.1, func(c *siteglean.SectionCandidate) bool { return c.HasPeople }),
	},
	siteglean.SectionFAQ: {
		keyword("faq_keyword", 1.5, faqRe),
		flag("many_questions", 1.4, func(c *siteglean.SectionCandidate) bool { return c.QuestionCount >= 2 }),
	},
	siteglean.SectionContact: {
		flag("has_form", 1.6, func(c *siteglean.SectionCandidate) bool { return c.HasForm }),
		keyword("contact_keyword", 1.6, contactRe),
		flag("has_map", 1.0, func(c *siteglean.SectionCandidate) bool { return c.HasMap }),
	},
	siteglean.SectionFooter: {
		flag("footer_source", 1.5, func(c *siteglean.SectionCandidate) bool { return c.Source == "footer" }),
		flag("legal_links", 1.0, func(c *siteglean.SectionCandidate) bool { return c.LegalLinkCount >= 1 }),
		keyword("footer_keyword", 0.5, footerRe),
	},
}

// Classifier reduces section candidates to at most one normalized section
// per archetype.
type Classifier struct{}

func NewClassifier() *Classifier {
	return &Classifier{}
}

// Classify scores every candidate, lets the plugin adjust, and keeps the
// best instance per archetype in the fixed archetype order. An earlier
// winner is replaced only by a strictly higher confidence.
func (cl *Classifier) Classify(candidates []siteglean.SectionCandidate, plugin siteglean.SitePlugin) []siteglean.NormalizedSection {
	best := make(map[siteglean.SectionType]siteglean.NormalizedSection)

	for i := range candidates {
		c := &candidates[i]
		scores, signals := scoreCandidate(c)
		if plugin != nil {
			plugin.AdjustSectionScores(*c, scores)
		}

		winner, winning := pickWinner(scores)
		if winning < minWinningScore {
			continue
		}

		section := siteglean.NormalizedSection{
			Type:       winner,
			Title:      c.Title,
			Summary:    c.Summary,
			Bullets:    c.Bullets,
			CTAs:       c.CTAs,
			Confidence: math.Min(1, winning/confidenceDivisor),
			Evidence: siteglean.SectionEvidence{
				PageURL: c.PageURL,
				Source:  c.Source,
				Signals: signals[winner],
			},
		}
		if prev, ok := best[winner]; !ok || section.Confidence > prev.Confidence {
			best[winner] = section
		}
	}

	var out []siteglean.NormalizedSection
	for _, t := range siteglean.SectionOrder {
		if s, ok := best[t]; ok {
			out = append(out, s)
		}
	}
	return out
}

// scoreCandidate evaluates the rule table, returning per-archetype scores
// and the names of the signals that fired.
func scoreCandidate(c *siteglean.SectionCandidate) (map[siteglean.SectionType]float64, map[siteglean.SectionType][]string) {
	text := candidateText(c)
	scores := make(map[siteglean.SectionType]float64, len(rules))
	signals := make(map[siteglean.SectionType][]string, len(rules))

	for t, sigs := range rules {
		for _, s := range sigs {
			if s.fires(c, text) {
				scores[t] += s.score
				signals[t] = append(signals[t], s.name)
			}
		}
	}
	return scores, signals
}

// pickWinner returns the highest-scoring archetype; equal scores resolve
// to the earlier entry in the fixed archetype order.
func pickWinner(scores map[siteglean.SectionType]float64) (siteglean.SectionType, float64) {
	var winner siteglean.SectionType
	winning := math.Inf(-1)
	for _, t := range siteglean.SectionOrder {
		if s, ok := scores[t]; ok && s > winning {
			winner = t
			winning = s
		}
	}
	if math.IsInf(winning, -1) {
		return "", 0
	}
	return winner, winning
}

func candidateText(c *siteglean.SectionCandidate) string {
	parts := append([]string{c.Title, c.Summary}, c.Bullets...)
	return strings.ToLower(strings.Join(parts, " "))
}
