// Package slog provides logging decorators for the siteglean service
// interfaces.
package slog

import (
	"context"
	"log/slog"

	"github.com/siteglean/siteglean"
)

// Ensure LoggingFetcher implements siteglean.Fetcher.
var _ siteglean.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with per-request logging.
type LoggingFetcher struct {
	next   siteglean.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next siteglean.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher and logs the outcome.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string, opts siteglean.FetchOptions) *siteglean.FetchResult {
	res := f.next.Fetch(ctx, url, opts)
	f.logger.Info("fetch",
		"url", url,
		"status", res.Status,
		"ok", res.OK,
		"bytes", res.Bytes,
		"retries", res.Retries,
		"duration_ms", res.DurationMs,
		"error_code", res.ErrorCode,
	)
	return res
}
