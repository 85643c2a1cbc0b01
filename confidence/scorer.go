// Package confidence scores how complete and trustworthy an extraction
// result is. Every field gets a score in [0,1] from presence and list
// ratios; the overall score is a fixed-weight average emphasizing the
// brand name, the content sections and the website structure.
package confidence

import (
	"math"

	"github.com/siteglean/siteglean"
)

// Field weights. Higher weight means the field moves the overall score
// more.
var fieldWeights = map[string]float64{
	"brand.name":              1.35,
	"content.sections":        1.25,
	"website.structure":       1.2,
	"style.colors":            1.0,
	"content.contacts":        0.9,
	"style.typography":        0.9,
	"brand.logos":             0.85,
	"content.pages":           0.8,
	"brand.domain":            0.7,
	"diagnostics.cleanliness": 0.7,
}

const (
	// maxConsensusBoost caps the brand-name bonus for a clear winner among
	// the ranked candidates.
	maxConsensusBoost = 0.12
	consensusPerGap   = 0.06

	// maxWarningPenalty bounds how far warnings can push cleanliness down.
	maxWarningPenalty = 0.85
	warningPenalty    = 0.06
)

// Scorer computes the confidence report for an extraction result.
type Scorer struct{}

func NewScorer() *Scorer {
	return &Scorer{}
}

// Score fills in per-field scores and the weighted overall value. The
// result's own Confidence field is not consulted.
func (s *Scorer) Score(result *siteglean.ExtractionResult) siteglean.ConfidenceReport {
	fields := map[string]float64{
		"brand.name":              brandNameScore(result.Brand),
		"brand.logos":             ratio(len(result.Brand.Logos)+len(result.Brand.Favicons), 2),
		"brand.domain":            presence(result.Brand.Domain != ""),
		"style.colors":            ratio(len(result.Style.Colors), 6),
		"style.typography":        ratio(len(result.Style.Typography.PrimaryFonts)+len(result.Style.Typography.SecondaryFonts), 3),
		"content.sections":        ratio(len(result.Content.Sections), 5),
		"content.pages":           ratio(len(result.Content.Pages), 5),
		"content.contacts":        contactsScore(result.Content.Pages),
		"website.structure":       ratio(len(result.Website.Types), 4),
		"diagnostics.cleanliness": 1 - math.Min(maxWarningPenalty, float64(len(result.Warnings))*warningPenalty),
	}

	var sum, weightSum float64
	for name, score := range fields {
		score = clamp(score)
		fields[name] = round3(score)
		w := fieldWeights[name]
		sum += score * w
		weightSum += w
	}

	overall := 0.0
	if weightSum > 0 {
		overall = round3(clamp(sum / weightSum))
	}
	return siteglean.ConfidenceReport{Fields: fields, Overall: overall}
}

// brandNameScore scores name presence plus a consensus boost proportional
// to the score gap between the two top-ranked candidates. A lone
// candidate gets the full boost.
func brandNameScore(brand siteglean.BrandProfile) float64 {
	if brand.Name == "" {
		return 0
	}
	score := 0.8
	switch {
	case len(brand.Candidates) == 1:
		score += maxConsensusBoost
	case len(brand.Candidates) > 1:
		gap := brand.Candidates[0].Score - brand.Candidates[1].Score
		score += math.Min(maxConsensusBoost, gap*consensusPerGap)
	}
	return score
}

// contactsScore rewards finding an email, with phones as a secondary
// signal.
func contactsScore(pages []siteglean.PageSummary) float64 {
	var emails, phones bool
	for _, p := range pages {
		if len(p.Contacts.Emails) > 0 {
			emails = true
		}
		if len(p.Contacts.Phones) > 0 {
			phones = true
		}
	}
	switch {
	case emails && phones:
		return 1
	case emails:
		return 0.75
	case phones:
		return 0.5
	}
	return 0
}

func presence(ok bool) float64 {
	if ok {
		return 1
	}
	return 0
}

func ratio(n, full int) float64 {
	if full <= 0 {
		return 0
	}
	return math.Min(1, float64(n)/float64(full))
}

func clamp(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
