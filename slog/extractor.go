package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/siteglean/siteglean"
)

// Ensure LoggingExtractor implements siteglean.Extractor.
var _ siteglean.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an Extractor with per-run logging.
type LoggingExtractor struct {
	next   siteglean.Extractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next siteglean.Extractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor and logs the run summary.
func (e *LoggingExtractor) Extract(ctx context.Context, in siteglean.ExtractInput) (*siteglean.ExtractionResult, error) {
	begin := time.Now()
	result, err := e.next.Extract(ctx, in)
	if err != nil {
		e.logger.Error("extract failed", "url", in.URL, "err", err)
		return nil, err
	}
	e.logger.Info("extract",
		"url", in.URL,
		"pages", len(result.Content.Pages),
		"sections", len(result.Content.Sections),
		"warnings", len(result.Warnings),
		"confidence", result.Confidence.Overall,
		"duration", time.Since(begin),
	)
	return result, nil
}
