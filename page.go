package siteglean

// Link source contexts recognized by the parser and scored by the frontier.
const (
	LinkSourceNav     = "nav"
	LinkSourceFooter  = "footer"
	LinkSourceCTA     = "cta"
	LinkSourceContent = "content"
)

// LinkContext is a discovered link together with where on the page it was
// found, used for frontier prioritization.
type LinkContext struct {
	URL    string `json:"url"`
	Text   string `json:"text,omitempty"`
	Source string `json:"source"`
}

// Headings holds deduplicated page headings, capped per level.
type Headings struct {
	H1 []string `json:"h1,omitempty"`
	H2 []string `json:"h2,omitempty"`
	H3 []string `json:"h3,omitempty"`
}

// SectionCandidate is a raw DOM block considered for marketing-section
// classification. Feature flags feed the section classifier's rule table.
type SectionCandidate struct {
	PageURL        string   `json:"pageUrl"`
	Source         string   `json:"source"` // header, main, footer
	Depth          int      `json:"depth"`  // nesting depth of the block, 0 = top level
	Title          string   `json:"title,omitempty"`
	Summary        string   `json:"summary,omitempty"`
	Bullets        []string `json:"bullets,omitempty"`
	CTAs           []string `json:"ctas,omitempty"`
	HasH1          bool     `json:"hasH1,omitempty"`
	HasForm        bool     `json:"hasForm,omitempty"`
	HasMap         bool     `json:"hasMap,omitempty"`
	HasQuote       bool     `json:"hasQuote,omitempty"`
	HasStars       bool     `json:"hasStars,omitempty"`
	HasPeople      bool     `json:"hasPeople,omitempty"`
	LegalLinkCount int      `json:"legalLinkCount,omitempty"`
	QuestionCount  int      `json:"questionCount,omitempty"`
}

// StructuredData aggregates organization-level values collected from
// JSON-LD nodes typed Organization/LocalBusiness/Brand/WebSite.
type StructuredData struct {
	Names          []string `json:"names,omitempty"`
	LegalNames     []string `json:"legalNames,omitempty"`
	AlternateNames []string `json:"alternateNames,omitempty"`
	URLs           []string `json:"urls,omitempty"`
	Logos          []string `json:"logos,omitempty"`
}

// Contacts holds validated, normalized contact candidates found on a page.
type Contacts struct {
	Emails []string `json:"emails,omitempty"`
	Phones []string `json:"phones,omitempty"`
}

// StyleSignals carries the raw CSS-adjacent material a page exposes; the
// style inference component mines it for colors and fonts.
type StyleSignals struct {
	InlineCSS       []string `json:"inlineCss,omitempty"`       // contents of <style> blocks
	InlineStyleAttr []string `json:"inlineStyleAttr,omitempty"` // style="" attribute values
	StylesheetURLs  []string `json:"stylesheetUrls,omitempty"`  // resolved <link rel=stylesheet> hrefs
	FontLinks       []string `json:"fontLinks,omitempty"`       // google fonts / typekit link hrefs
	ThemeColor      string   `json:"themeColor,omitempty"`      // <meta name=theme-color>
}

// TrustTokens are boolean trust signals inferred from page text.
type TrustTokens struct {
	Partners     bool `json:"partners,omitempty"`
	Testimonials bool `json:"testimonials,omitempty"`
	Awards       bool `json:"awards,omitempty"`
	Press        bool `json:"press,omitempty"`
}

// ParsedPage is the output of parsing one successfully fetched HTML page.
// It is created once per page and never mutated afterwards.
type ParsedPage struct {
	URL               string             `json:"url"`
	Depth             int                `json:"depth"`
	Title             string             `json:"title,omitempty"`
	Description       string             `json:"description,omitempty"`
	Headings          Headings           `json:"headings"`
	TextSamples       []string           `json:"textSamples,omitempty"`
	Links             []LinkContext      `json:"links,omitempty"`
	SectionCandidates []SectionCandidate `json:"sectionCandidates,omitempty"`
	Meta              map[string]string  `json:"meta,omitempty"`
	Structured        StructuredData     `json:"structuredData"`
	Favicons          []string           `json:"favicons,omitempty"`
	LogoCandidates    []string           `json:"logoCandidates,omitempty"`
	Social            map[string]string  `json:"socialLinks,omitempty"`
	Contacts          Contacts           `json:"contacts"`
	Style             StyleSignals       `json:"styleSignals"`
	RawText           string             `json:"-"`
	ContentHash       uint64             `json:"contentHash"`
	Trust             TrustTokens        `json:"trustTokens"`
}

// PageReport records the outcome of one fetch attempt. Reports are
// append-only and immutable once recorded.
type PageReport struct {
	URL         string   `json:"url"`
	Status      int      `json:"status,omitempty"`
	ContentType string   `json:"contentType,omitempty"`
	Bytes       int      `json:"bytes"`
	DurationMs  int64    `json:"durationMs"`
	Retries     int      `json:"retries"`
	Notes       []string `json:"notes,omitempty"`
	ErrorCode   string   `json:"errorCode,omitempty"`
}
