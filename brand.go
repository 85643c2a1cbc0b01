package siteglean

// Brand candidate sources, in rough order of reliability.
const (
	BrandSourceDomain     = "domain"
	BrandSourceLegalName  = "jsonld_legal_name"
	BrandSourceJSONLDName = "jsonld_name"
	BrandSourceOGSiteName = "og_site_name"
	BrandSourceTitle      = "title"
	BrandSourceHeader     = "header"
)

// BrandCandidate is one raw brand-name signal harvested from a page.
// Candidates are transient; they are aggregated into RankedBrandNames.
type BrandCandidate struct {
	Value   string  `json:"value"`
	Score   float64 `json:"score"`
	Source  string  `json:"source"`
	Reason  string  `json:"reason,omitempty"`
	PageURL string  `json:"pageUrl,omitempty"`
}

// RankedBrandName is an aggregated group of candidates sharing a
// normalized key, with summed score and provenance.
type RankedBrandName struct {
	Value    string   `json:"value"`
	Score    float64  `json:"score"`
	Count    int      `json:"count"`
	Reason   string   `json:"reason,omitempty"`
	Sources  []string `json:"sources,omitempty"`
	PageURLs []string `json:"pageUrls,omitempty"`
}

// BrandProfile is the brand slice of the extraction output. Name is the
// top-ranked candidate group's display value; Aliases are the next five.
type BrandProfile struct {
	Name       string            `json:"name,omitempty"`
	Aliases    []string          `json:"aliases,omitempty"`
	Domain     string            `json:"domain,omitempty"`
	Candidates []RankedBrandName `json:"candidates,omitempty"`
	Logos      []string          `json:"logos,omitempty"`
	Favicons   []string          `json:"favicons,omitempty"`
	Trust      []string          `json:"trustEvidence,omitempty"`
}
