// Package plugins implements the site plugin registry. A plugin tunes
// crawl and classification heuristics for sites it recognizes; every
// extraction resolves exactly one plugin, falling back to a neutral
// default when nothing matches.
package plugins

import (
	"strings"

	"github.com/siteglean/siteglean"
)

// Ensure types implement the domain interfaces at compile time.
var (
	_ siteglean.PluginRegistry = (*Registry)(nil)
	_ siteglean.SitePlugin     = (*DefaultPlugin)(nil)
)

// Registry resolves plugins in registration order.
type Registry struct {
	plugins  []siteglean.SitePlugin
	fallback siteglean.SitePlugin
}

// NewRegistry creates a registry that resolves the given plugins in order
// and falls back to the neutral default plugin.
func NewRegistry(plugins ...siteglean.SitePlugin) *Registry {
	return &Registry{
		plugins:  plugins,
		fallback: &DefaultPlugin{},
	}
}

// Resolve returns the first plugin whose Match accepts the hostname, or
// the default plugin. A plugin that panics in Match is skipped; one
// misbehaving plugin must not take down the extraction.
func (r *Registry) Resolve(hostname string) siteglean.SitePlugin {
	hostname = strings.ToLower(strings.TrimSpace(hostname))
	for _, p := range r.plugins {
		if safeMatch(p, hostname) {
			return p
		}
	}
	return r.fallback
}

func safeMatch(p siteglean.SitePlugin, hostname string) (matched bool) {
	defer func() {
		if recover() != nil {
			matched = false
		}
	}()
	return p.Match(hostname)
}

// DefaultPlugin is the neutral fallback: it matches nothing, leaves
// scores untouched and contributes no assets.
type DefaultPlugin struct{}

func (*DefaultPlugin) Match(string) bool { return false }

func (*DefaultPlugin) AdjustLinkPriority(_ siteglean.LinkContext, base float64) float64 {
	return base
}

func (*DefaultPlugin) AdjustSectionScores(siteglean.SectionCandidate, map[siteglean.SectionType]float64) {
}

func (*DefaultPlugin) ExtractExtraAssets([]*siteglean.ParsedPage) siteglean.ExtraAssets {
	return siteglean.ExtraAssets{}
}
