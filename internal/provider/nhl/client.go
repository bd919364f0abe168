// Package nhl provides the five external source adapters (§4.A): schedule,
// roster, game-log, advanced-stats, and injury. Each adapter is a pure I/O
// layer with retry+timeout and schema-projection to strongly-typed records,
// returning empty collections rather than an error when the source is
// transiently unavailable.
package nhl

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

const userAgent = "puckline-data/1.0 (+https://github.com/albapepper/puckline-data)"

// Client is the shared HTTP client for all NHL-facing adapters: a single
// http.Client with explicit timeout, a rate.Limiter for inter-call pacing,
// and a truncated-body error message on non-2xx responses.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewClient creates a client paced at one request per interval (burst 1),
// enforcing inter-call sleep bounds via a token bucket rather than a bare
// time.Sleep.
func NewClient(timeout time.Duration, interval time.Duration) *Client {
	limit := rate.Every(interval)
	if interval <= 0 {
		limit = rate.Inf
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		limiter:    rate.NewLimiter(limit, 1),
	}
}

// get performs a rate-limited, context-aware GET and returns the raw body.
// Transport errors, body-read errors and 5xx responses are retried, up to
// three attempts in all, each paced by the limiter; any other non-200
// response fails at once. Failures are returned as errors; it is the
// adapter's job to translate these into "no data this run" per §4.A.
func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	const maxAttempts = 3
	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit wait: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("User-Agent", userAgent)
		req.Header.Set("Accept", "*/*")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("request %s: %w", url, err)
			continue
		}
		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = fmt.Errorf("read body: %w", err)
			continue
		}

		if resp.StatusCode >= 500 {
			lastErr = fmt.Errorf("%s returned %d: %s", url, resp.StatusCode, truncate(body, 200))
			continue
		}
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("%s returned %d: %s", url, resp.StatusCode, truncate(body, 200))
		}
		return body, nil
	}
	return nil, lastErr
}

func truncate(b []byte, maxLen int) string {
	if len(b) <= maxLen {
		return string(b)
	}
	return string(b[:maxLen]) + "..."
}
