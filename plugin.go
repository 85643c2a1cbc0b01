package siteglean

// ExtraAssets are additional brand assets a site plugin contributes.
type ExtraAssets struct {
	Logos         []string `json:"logos,omitempty"`
	TrustEvidence []string `json:"trustEvidence,omitempty"`
}

// SitePlugin adjusts crawl and classification heuristics for a known site.
// Implementations must be stateless; the same plugin may serve concurrent
// extractions.
type SitePlugin interface {
	// Match reports whether the plugin handles the hostname.
	Match(hostname string) bool

	// AdjustLinkPriority can raise or lower a link's frontier score.
	AdjustLinkPriority(link LinkContext, base float64) float64

	// AdjustSectionScores can mutate per-archetype scores for a candidate.
	AdjustSectionScores(c SectionCandidate, scores map[SectionType]float64)

	// ExtractExtraAssets harvests site-specific assets from parsed pages.
	ExtractExtraAssets(pages []*ParsedPage) ExtraAssets
}

// PluginRegistry resolves a plugin for a hostname. Resolution walks an
// ordered registry, first match wins, and always falls back to a default;
// a panic raised by a plugin's Match is treated as a non-match.
type PluginRegistry interface {
	Resolve(hostname string) SitePlugin
}
