// Package mock provides function-field mock implementations of the
// siteglean service interfaces for use in tests.
package mock

import (
	"context"
	"time"

	"github.com/siteglean/siteglean"
)

var _ siteglean.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of siteglean.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string, opts siteglean.FetchOptions) *siteglean.FetchResult
}

func (f *Fetcher) Fetch(ctx context.Context, url string, opts siteglean.FetchOptions) *siteglean.FetchResult {
	return f.FetchFn(ctx, url, opts)
}

var _ siteglean.HostLimiter = (*HostLimiter)(nil)

// HostLimiter is a mock implementation of siteglean.HostLimiter.
// The zero value never waits and records nothing.
type HostLimiter struct {
	WaitFn           func(ctx context.Context, url string, extraDelay time.Duration) error
	RegisterStatusFn func(url string, status int)
}

func (l *HostLimiter) Wait(ctx context.Context, url string, extraDelay time.Duration) error {
	if l.WaitFn == nil {
		return nil
	}
	return l.WaitFn(ctx, url, extraDelay)
}

func (l *HostLimiter) RegisterStatus(url string, status int) {
	if l.RegisterStatusFn != nil {
		l.RegisterStatusFn(url, status)
	}
}

var _ siteglean.SitemapSeeder = (*SitemapSeeder)(nil)

// SitemapSeeder is a mock implementation of siteglean.SitemapSeeder.
type SitemapSeeder struct {
	SeedFn func(ctx context.Context, origin string, hints []string) *siteglean.SeedResult
}

func (s *SitemapSeeder) Seed(ctx context.Context, origin string, hints []string) *siteglean.SeedResult {
	if s.SeedFn == nil {
		return &siteglean.SeedResult{}
	}
	return s.SeedFn(ctx, origin, hints)
}

var _ siteglean.RobotsClient = (*RobotsClient)(nil)

// RobotsClient is a mock implementation of siteglean.RobotsClient.
// The zero value reports allow-all rules.
type RobotsClient struct {
	RulesFn func(ctx context.Context, origin string) (siteglean.RobotsRules, bool)
}

func (r *RobotsClient) Rules(ctx context.Context, origin string) (siteglean.RobotsRules, bool) {
	if r.RulesFn == nil {
		return siteglean.RobotsRules{}, true
	}
	return r.RulesFn(ctx, origin)
}

var _ siteglean.PageParser = (*PageParser)(nil)

// PageParser is a mock implementation of siteglean.PageParser.
type PageParser struct {
	ParseFn func(pageURL, html string) (*siteglean.ParsedPage, error)
}

func (p *PageParser) Parse(pageURL, html string) (*siteglean.ParsedPage, error) {
	return p.ParseFn(pageURL, html)
}

var _ siteglean.StylesheetLoader = (*StylesheetLoader)(nil)

// StylesheetLoader is a mock implementation of siteglean.StylesheetLoader.
// The zero value misses on every URL.
type StylesheetLoader struct {
	LoadFn func(ctx context.Context, url string) (string, bool)
}

func (l *StylesheetLoader) Load(ctx context.Context, url string) (string, bool) {
	if l.LoadFn == nil {
		return "", false
	}
	return l.LoadFn(ctx, url)
}

var _ siteglean.SitePlugin = (*SitePlugin)(nil)

// SitePlugin is a mock implementation of siteglean.SitePlugin. Unset
// adjustment functions act as no-ops.
type SitePlugin struct {
	MatchFn               func(hostname string) bool
	AdjustLinkPriorityFn  func(link siteglean.LinkContext, base float64) float64
	AdjustSectionScoresFn func(c siteglean.SectionCandidate, scores map[siteglean.SectionType]float64)
	ExtractExtraAssetsFn  func(pages []*siteglean.ParsedPage) siteglean.ExtraAssets
}

func (p *SitePlugin) Match(hostname string) bool {
	if p.MatchFn == nil {
		return false
	}
	return p.MatchFn(hostname)
}

func (p *SitePlugin) AdjustLinkPriority(link siteglean.LinkContext, base float64) float64 {
	if p.AdjustLinkPriorityFn == nil {
		return base
	}
	return p.AdjustLinkPriorityFn(link, base)
}

func (p *SitePlugin) AdjustSectionScores(c siteglean.SectionCandidate, scores map[siteglean.SectionType]float64) {
	if p.AdjustSectionScoresFn != nil {
		p.AdjustSectionScoresFn(c, scores)
	}
}

func (p *SitePlugin) ExtractExtraAssets(pages []*siteglean.ParsedPage) siteglean.ExtraAssets {
	if p.ExtractExtraAssetsFn == nil {
		return siteglean.ExtraAssets{}
	}
	return p.ExtractExtraAssetsFn(pages)
}

var _ siteglean.PluginRegistry = (*PluginRegistry)(nil)

// PluginRegistry is a mock implementation of siteglean.PluginRegistry.
type PluginRegistry struct {
	ResolveFn func(hostname string) siteglean.SitePlugin
}

func (r *PluginRegistry) Resolve(hostname string) siteglean.SitePlugin {
	return r.ResolveFn(hostname)
}
