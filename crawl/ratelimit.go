package crawl

import (
	"context"
	"math/rand/v2"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/siteglean/siteglean"
	"golang.org/x/time/rate"
)

// Compile-time interface verification.
var _ siteglean.HostLimiter = (*HostLimiter)(nil)

// Default limiter tuning.
const (
	DefaultMinDelay    = 300 * time.Millisecond
	DefaultCooldownCap = 8 * time.Second
	DefaultMaxJitter   = 50 * time.Millisecond

	// cooldownFloor is where adaptive backoff starts after server pushback.
	cooldownFloor = 250 * time.Millisecond
)

// HostLimiter paces requests per host. A token-bucket limiter enforces the
// separation between consecutive requests to one host; the separation is
// raised per call to max(minDelay, extraDelay, cooldown) plus jitter.
// Cooldown adapts to server pushback via RegisterStatus.
//
// The maps are mutex-guarded: one crawl is sequential, but a single
// limiter may be shared by concurrent extraction invocations.
type HostLimiter struct {
	minDelay    time.Duration
	cooldownCap time.Duration
	maxJitter   time.Duration

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	cooldown map[string]time.Duration
}

// LimiterOption configures a HostLimiter.
type LimiterOption func(*HostLimiter)

// WithCooldownCap caps the adaptive cooldown.
func WithCooldownCap(d time.Duration) LimiterOption {
	return func(l *HostLimiter) { l.cooldownCap = d }
}

// WithMaxJitter bounds the random jitter added to each wait. Zero disables
// jitter, which tests rely on for exact timing.
func WithMaxJitter(d time.Duration) LimiterOption {
	return func(l *HostLimiter) { l.maxJitter = d }
}

// NewHostLimiter creates a limiter enforcing at least minDelay between
// requests to the same host.
func NewHostLimiter(minDelay time.Duration, opts ...LimiterOption) *HostLimiter {
	if minDelay <= 0 {
		minDelay = DefaultMinDelay
	}
	l := &HostLimiter{
		minDelay:    minDelay,
		cooldownCap: DefaultCooldownCap,
		maxJitter:   DefaultMaxJitter,
		limiters:    make(map[string]*rate.Limiter),
		cooldown:    make(map[string]time.Duration),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Wait blocks until the host may be contacted again. extraDelay raises the
// separation floor for this call (robots crawl-delay is passed here).
// Returns an error only if the context is canceled.
func (l *HostLimiter) Wait(ctx context.Context, rawURL string, extraDelay time.Duration) error {
	host := hostOf(rawURL)

	target := l.minDelay
	if extraDelay > target {
		target = extraDelay
	}

	l.mu.Lock()
	if cd := l.cooldown[host]; cd > target {
		target = cd
	}
	if l.maxJitter > 0 {
		target += time.Duration(rand.Int64N(int64(l.maxJitter)))
	}
	lim, ok := l.limiters[host]
	if !ok {
		lim = rate.NewLimiter(rate.Every(target), 1)
		l.limiters[host] = lim
	} else {
		lim.SetLimit(rate.Every(target))
	}
	l.mu.Unlock()

	return lim.Wait(ctx)
}

// RegisterStatus adapts the host's cooldown: 429 and 503 double it from a
// 250ms floor up to the cap; any other status below 500 clears it.
func (l *HostLimiter) RegisterStatus(rawURL string, status int) {
	host := hostOf(rawURL)

	l.mu.Lock()
	defer l.mu.Unlock()

	switch {
	case status == 429 || status == 503:
		cd := l.cooldown[host] * 2
		if cd < cooldownFloor {
			cd = cooldownFloor
		}
		if cd > l.cooldownCap {
			cd = l.cooldownCap
		}
		l.cooldown[host] = cd
	case status < 500:
		delete(l.cooldown, host)
	}
}

// Cooldown returns the host's current adaptive cooldown.
func (l *HostLimiter) Cooldown(rawURL string) time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.cooldown[hostOf(rawURL)]
}

func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return strings.ToLower(rawURL)
	}
	return strings.ToLower(u.Host)
}
