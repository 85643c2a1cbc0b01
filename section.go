package siteglean

// SectionType is a marketing-section archetype.
type SectionType string

// Section archetypes. SectionOrder below is the canonical priority order:
// it breaks classification ties and orders sections in the final output.
const (
	SectionHero         SectionType = "HERO"
	SectionFeatures     SectionType = "FEATURES"
	SectionServices     SectionType = "SERVICES"
	SectionProjects     SectionType = "PROJECTS"
	SectionTestimonials SectionType = "TESTIMONIALS"
	SectionTeam         SectionType = "TEAM"
	SectionFAQ          SectionType = "FAQ"
	SectionContact      SectionType = "CONTACT"
	SectionFooter       SectionType = "FOOTER"
)

// SectionOrder fixes the archetype priority.
var SectionOrder = []SectionType{
	SectionHero,
	SectionFeatures,
	SectionServices,
	SectionProjects,
	SectionTestimonials,
	SectionTeam,
	SectionFAQ,
	SectionContact,
	SectionFooter,
}

// SectionEvidence records where a normalized section came from and which
// signals fired for it.
type SectionEvidence struct {
	PageURL string   `json:"pageUrl"`
	Source  string   `json:"source,omitempty"`
	Signals []string `json:"signals,omitempty"`
}

// NormalizedSection is the classified form of a section candidate. At most
// one survives per type per crawl: the highest-confidence instance, with
// the first-seen winner kept unless a later one scores strictly higher.
type NormalizedSection struct {
	Type       SectionType     `json:"type"`
	Title      string          `json:"title,omitempty"`
	Summary    string          `json:"summary,omitempty"`
	Bullets    []string        `json:"bullets,omitempty"`
	CTAs       []string        `json:"ctas,omitempty"`
	Evidence   SectionEvidence `json:"evidence"`
	Confidence float64         `json:"confidence"`
}
