// Package pipeline assembles the full extraction: crawl, brand
// resolution, style inference, IA planning, section classification and
// confidence scoring, reduced to one ExtractionResult.
package pipeline

import (
	"context"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/siteglean/siteglean"
	"github.com/siteglean/siteglean/brand"
	"github.com/siteglean/siteglean/confidence"
	"github.com/siteglean/siteglean/crawl"
	"github.com/siteglean/siteglean/plan"
	"github.com/siteglean/siteglean/sections"
	"github.com/siteglean/siteglean/style"
)

// maxStylesheets bounds how many same-origin stylesheets one extraction
// will fetch.
const maxStylesheets = 12

// Ensure Extractor implements siteglean.Extractor at compile time.
var _ siteglean.Extractor = (*Extractor)(nil)

// Crawler runs the crawl stage. *crawl.Crawler satisfies it.
type Crawler interface {
	Run(ctx context.Context, rootURL string, settings siteglean.CrawlSettings, plugin siteglean.SitePlugin) *crawl.Result
}

// Extractor is the production implementation of siteglean.Extractor.
type Extractor struct {
	crawler  Crawler
	registry siteglean.PluginRegistry
	css      siteglean.StylesheetLoader

	now   func() time.Time
	newID func() string
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithClock overrides the wall clock, for tests.
func WithClock(now func() time.Time) Option {
	return func(e *Extractor) { e.now = now }
}

// WithIDSource overrides result ID generation, for tests.
func WithIDSource(newID func() string) Option {
	return func(e *Extractor) { e.newID = newID }
}

// NewExtractor wires an extractor from its collaborators.
func NewExtractor(crawler Crawler, registry siteglean.PluginRegistry, css siteglean.StylesheetLoader, opts ...Option) *Extractor {
	e := &Extractor{
		crawler:  crawler,
		registry: registry,
		css:      css,
		now:      time.Now,
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract runs the whole pipeline. It fails only on an invalid input URL;
// every downstream problem degrades to warnings in the result.
func (e *Extractor) Extract(ctx context.Context, in siteglean.ExtractInput) (*siteglean.ExtractionResult, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	started := e.now().UTC()
	settings := in.Settings()

	rootURL, _ := url.Parse(in.URL)
	plugin := e.registry.Resolve(rootURL.Hostname())

	crawled := e.crawler.Run(ctx, in.URL, settings, plugin)
	pages := crawled.Pages

	result := &siteglean.ExtractionResult{
		ID:        e.newID(),
		URL:       in.URL,
		StartedAt: started,
		Settings:  settings,
		Reports:   crawled.Reports,
	}

	result.Brand = e.resolveBrand(in.URL, pages, plugin)
	result.Style = style.NewInferrer().Infer(pages, e.loadStylesheets(ctx, pages))
	result.Website = buildStructure(pages, crawled.Discovered)
	result.Content = siteglean.ContentProfile{
		Pages:    summarizePages(pages),
		Sections: classifySections(pages, plugin),
	}
	result.Warnings = dedupWarnings(crawled.Warnings)
	result.Confidence = confidence.NewScorer().Score(result)
	result.DurationMs = e.now().UTC().Sub(started).Milliseconds()

	return result, nil
}

// resolveBrand runs the brand resolver and merges in plugin assets and
// page-level trust signals.
func (e *Extractor) resolveBrand(rootURL string, pages []*siteglean.ParsedPage, plugin siteglean.SitePlugin) siteglean.BrandProfile {
	profile := brand.NewResolver().Resolve(rootURL, pages)

	extra := plugin.ExtractExtraAssets(pages)
	for _, logo := range extra.Logos {
		if !containsStr(profile.Logos, logo) {
			profile.Logos = append(profile.Logos, logo)
		}
	}
	profile.Trust = append(profile.Trust, extra.TrustEvidence...)

	var tokens siteglean.TrustTokens
	for _, p := range pages {
		tokens.Partners = tokens.Partners || p.Trust.Partners
		tokens.Testimonials = tokens.Testimonials || p.Trust.Testimonials
		tokens.Awards = tokens.Awards || p.Trust.Awards
		tokens.Press = tokens.Press || p.Trust.Press
	}
	for _, t := range []struct {
		on   bool
		name string
	}{
		{tokens.Partners, "partners"},
		{tokens.Testimonials, "testimonials"},
		{tokens.Awards, "awards"},
		{tokens.Press, "press"},
	} {
		if t.on && !containsStr(profile.Trust, t.name) {
			profile.Trust = append(profile.Trust, t.name)
		}
	}
	return profile
}

// loadStylesheets fetches the same-origin stylesheets referenced by the
// crawled pages, deduplicated and capped.
func (e *Extractor) loadStylesheets(ctx context.Context, pages []*siteglean.ParsedPage) map[string]string {
	out := make(map[string]string)
	seen := make(map[string]bool)
	for _, page := range pages {
		for _, u := range page.Style.StylesheetURLs {
			if seen[u] || len(seen) >= maxStylesheets {
				continue
			}
			seen[u] = true
			if body, ok := e.css.Load(ctx, u); ok {
				out[u] = body
			}
		}
	}
	return out
}

func buildStructure(pages []*siteglean.ParsedPage, discovered []string) siteglean.WebsiteStructure {
	crawledByURL := make(map[string]*siteglean.ParsedPage, len(pages))
	for _, p := range pages {
		crawledByURL[p.URL] = p
	}
	return plan.BuildWebsiteStructure(crawledByURL, discovered)
}

func summarizePages(pages []*siteglean.ParsedPage) []siteglean.PageSummary {
	out := make([]siteglean.PageSummary, 0, len(pages))
	for _, p := range pages {
		out = append(out, siteglean.PageSummary{
			URL:         p.URL,
			Type:        plan.InferPageType(p.URL, p),
			Title:       p.Title,
			Description: p.Description,
			Depth:       p.Depth,
			Contacts:    p.Contacts,
		})
	}
	return out
}

func classifySections(pages []*siteglean.ParsedPage, plugin siteglean.SitePlugin) []siteglean.NormalizedSection {
	var candidates []siteglean.SectionCandidate
	for _, p := range pages {
		candidates = append(candidates, p.SectionCandidates...)
	}
	return sections.NewClassifier().Classify(candidates, plugin)
}

// dedupWarnings keeps the first occurrence of each warning string.
func dedupWarnings(warnings []string) []string {
	seen := make(map[string]bool, len(warnings))
	var out []string
	for _, w := range warnings {
		if seen[w] {
			continue
		}
		seen[w] = true
		out = append(out, w)
	}
	return out
}

func containsStr(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
