package http

import (
	"context"
	"strings"
	"time"

	"github.com/siteglean/siteglean"
)

// Robots fetch tuning: one retry, short timeout, any content type.
const (
	robotsTimeout  = 3 * time.Second
	robotsAttempts = 2
)

// Ensure Robots implements siteglean.RobotsClient at compile time.
var _ siteglean.RobotsClient = (*Robots)(nil)

// Robots fetches and parses {origin}/robots.txt. Failure is never fatal:
// unreachable or empty robots files yield allow-all rules.
type Robots struct {
	fetcher siteglean.Fetcher
}

// NewRobots creates a robots client on top of a fetcher.
func NewRobots(fetcher siteglean.Fetcher) *Robots {
	return &Robots{fetcher: fetcher}
}

// Rules fetches the origin's robots.txt and parses it for the wildcard
// agent. ok is false when the file could not be fetched or was empty, in
// which case the rules are allow-all.
func (r *Robots) Rules(ctx context.Context, origin string) (siteglean.RobotsRules, bool) {
	robotsURL := strings.TrimSuffix(origin, "/") + "/robots.txt"

	res := r.fetcher.Fetch(ctx, robotsURL, siteglean.FetchOptions{
		Timeout:    robotsTimeout,
		MaxRetries: robotsAttempts,
	})
	if !res.OK || strings.TrimSpace(res.Body) == "" {
		return siteglean.RobotsRules{}, false
	}

	return siteglean.ParseRobots(res.Body), true
}
