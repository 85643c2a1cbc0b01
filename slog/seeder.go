package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/siteglean/siteglean"
)

// Ensure LoggingSeeder implements siteglean.SitemapSeeder.
var _ siteglean.SitemapSeeder = (*LoggingSeeder)(nil)

// LoggingSeeder wraps a SitemapSeeder with operation logging.
type LoggingSeeder struct {
	next   siteglean.SitemapSeeder
	logger *slog.Logger
}

// NewLoggingSeeder creates a new LoggingSeeder.
func NewLoggingSeeder(next siteglean.SitemapSeeder, logger *slog.Logger) *LoggingSeeder {
	return &LoggingSeeder{next: next, logger: logger}
}

// Seed delegates to the wrapped seeder and logs the discovery outcome.
func (s *LoggingSeeder) Seed(ctx context.Context, origin string, hints []string) (res *siteglean.SeedResult) {
	defer func(begin time.Time) {
		s.logger.Info("sitemap seed",
			"origin", origin,
			"hints", len(hints),
			"urls", len(res.URLs),
			"files", res.FilesFetched,
			"warnings", len(res.Warnings),
			"duration", time.Since(begin),
		)
	}(time.Now())
	return s.next.Seed(ctx, origin, hints)
}
