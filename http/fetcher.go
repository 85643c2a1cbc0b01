// Package http provides the network-facing implementations: the resilient
// fetch client, the robots.txt client, the sitemap seeder, and the
// stylesheet loader.
package http

import (
	"compress/flate"
	"compress/gzip"
	"context"
	"errors"
	"io"
	"math/rand/v2"
	"net/http"
	"strings"
	"time"

	"github.com/andybalholm/brotli"
	"github.com/siteglean/siteglean"
)

// DefaultUserAgent identifies the crawler to origin servers.
const DefaultUserAgent = "sitegleanbot/1.0 (+https://github.com/siteglean/siteglean; marketing site analyzer)"

// Decoded-body byte ceilings per content type.
const (
	ceilingHTML  = 2 * 1024 * 1024
	ceilingCSS   = 512 * 1024
	ceilingOther = 512 * 1024
)

// Retry backoff tuning: 250ms * 2^(attempt-1) plus up to 120ms of jitter.
const (
	backoffBase      = 250 * time.Millisecond
	backoffMaxJitter = 120 * time.Millisecond
)

// Ensure Fetcher implements siteglean.Fetcher at compile time.
var _ siteglean.Fetcher = (*Fetcher)(nil)

// Fetcher is a bounded, retried, timed-out HTTP GET client with streaming
// size caps. Transport-level compression is disabled so that gzip, deflate
// and brotli bodies are decoded explicitly and the caps apply to decoded
// bytes.
type Fetcher struct {
	client    *http.Client
	userAgent string
	sleep     func(ctx context.Context, d time.Duration) error
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithUserAgent overrides the request user agent.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) { f.userAgent = ua }
}

// WithSleep replaces the backoff sleep, letting tests retry instantly.
func WithSleep(fn func(ctx context.Context, d time.Duration) error) Option {
	return func(f *Fetcher) { f.sleep = fn }
}

// NewFetcher creates a resilient fetch client.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		userAgent: DefaultUserAgent,
		sleep:     sleepCtx,
	}
	for _, opt := range opts {
		opt(f)
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.DisableCompression = true
	f.client = &http.Client{Transport: transport}

	return f
}

// Fetch GETs a URL following redirects, retrying 429 and 5xx statuses and
// network failures with exponential backoff until the attempt budget is
// spent. See siteglean.FetchResult for the outcome contract.
func (f *Fetcher) Fetch(ctx context.Context, url string, opts siteglean.FetchOptions) *siteglean.FetchResult {
	start := time.Now()

	attempts := opts.MaxRetries
	if attempts <= 0 {
		attempts = 1
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = siteglean.DefaultFetchTimeout
	}

	var warnings []string
	var res *siteglean.FetchResult
	for attempt := 1; attempt <= attempts; attempt++ {
		var retryable bool
		res, retryable = f.attempt(ctx, url, timeout, opts.AcceptHTMLOnly)
		res.Retries = attempt - 1
		if res.OK || !retryable {
			break
		}
		if res.Status == 429 || res.Status >= 500 {
			warnings = append(warnings, siteglean.CodeRetryableStatus)
		}
		if attempt == attempts {
			break
		}

		backoff := backoffBase << (attempt - 1)
		backoff += time.Duration(rand.Int64N(int64(backoffMaxJitter)))
		if err := f.sleep(ctx, backoff); err != nil {
			break
		}
	}

	res.Warnings = append(warnings, res.Warnings...)
	res.DurationMs = time.Since(start).Milliseconds()
	return res
}

// attempt runs one GET. The bool result reports whether a failure is
// retryable.
func (f *Fetcher) attempt(ctx context.Context, url string, timeout time.Duration, htmlOnly bool) (*siteglean.FetchResult, bool) {
	res := &siteglean.FetchResult{URL: url}

	attemptCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(attemptCtx, http.MethodGet, url, nil)
	if err != nil {
		res.ErrorCode = siteglean.CodeFetchError
		return res, false
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.8,cs;q=0.6")
	req.Header.Set("Accept-Encoding", "gzip, deflate, br")

	resp, err := f.client.Do(req)
	if err != nil {
		res.ErrorCode = classifyNetworkError(err)
		return res, true
	}
	defer resp.Body.Close()

	res.Status = resp.StatusCode
	res.ContentType = resp.Header.Get("Content-Type")

	if resp.StatusCode == 429 || resp.StatusCode >= 500 {
		drain(resp.Body)
		res.ErrorCode = siteglean.CodeFetchError
		return res, true
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		drain(resp.Body)
		res.ErrorCode = siteglean.CodeFetchError
		return res, false
	}

	if htmlOnly && !strings.Contains(strings.ToLower(res.ContentType), "text/html") {
		drain(resp.Body)
		res.ErrorCode = siteglean.CodeNonHTML
		return res, false
	}

	ceiling := ceilingFor(res.ContentType)
	if resp.ContentLength > int64(ceiling) {
		res.ErrorCode = siteglean.CodeBodyTooLargeHeader
		return res, false
	}

	body, err := decodeBody(resp)
	if err != nil {
		res.ErrorCode = siteglean.CodeFetchError
		return res, true
	}

	buf, err := io.ReadAll(io.LimitReader(body, int64(ceiling)+1))
	if err != nil {
		if attemptCtx.Err() != nil {
			res.ErrorCode = siteglean.CodeTimeout
		} else {
			res.ErrorCode = siteglean.CodeFetchError
		}
		return res, true
	}
	if len(buf) > ceiling {
		buf = buf[:ceiling]
		res.Warnings = append(res.Warnings, siteglean.CodeBodyTruncated)
	}

	res.OK = true
	res.Body = string(buf)
	res.Bytes = len(buf)
	return res, false
}

// decodeBody wraps the response body with the decoder matching its
// Content-Encoding header.
func decodeBody(resp *http.Response) (io.Reader, error) {
	switch strings.ToLower(strings.TrimSpace(resp.Header.Get("Content-Encoding"))) {
	case "gzip":
		return gzip.NewReader(resp.Body)
	case "deflate":
		return flate.NewReader(resp.Body), nil
	case "br":
		return brotli.NewReader(resp.Body), nil
	default:
		return resp.Body, nil
	}
}

// classifyNetworkError maps transport failures onto the error taxonomy.
func classifyNetworkError(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return siteglean.CodeTimeout
	}
	if strings.Contains(err.Error(), "stopped after") {
		return siteglean.CodeRedirectLimit
	}
	return siteglean.CodeFetchError
}

// ceilingFor returns the decoded-body byte ceiling for a content type.
func ceilingFor(contentType string) int {
	ct := strings.ToLower(contentType)
	switch {
	case strings.Contains(ct, "text/html"):
		return ceilingHTML
	case strings.Contains(ct, "text/css"):
		return ceilingCSS
	default:
		return ceilingOther
	}
}

// drain discards a small prefix of the body so the connection can be
// reused, then lets Close cancel the rest.
func drain(body io.Reader) {
	_, _ = io.Copy(io.Discard, io.LimitReader(body, 4096))
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
