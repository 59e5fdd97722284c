package fetch

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

// ErrExhausted is returned once the retry budget is spent. Callers check for
// it at stage boundaries; it never unwinds more than one stage.
var ErrExhausted = errors.New("retries exhausted")

const (
	DefaultMaxRetries     = 5
	DefaultBaseDelay      = 5 * time.Second
	DefaultRateLimitDelay = 15 * time.Second
	DefaultTimeout        = 20 * time.Second
)

type Options struct {
	MaxRetries     int
	BaseDelay      time.Duration
	RateLimitDelay time.Duration
	Timeout        time.Duration

	// Headers are sent on every request, merged under call-specific ones.
	Headers map[string]string

	// Per-host pacing, applied before every attempt including retries.
	HostReqPerSec float64
	HostBurst     int
}

// Client is the single place in the engine that performs network I/O or
// sleeps. Every scraping stage calls through it.
//
// Retry is an explicit bounded loop, zero-based trial counter:
//   - 200 returns immediately, no sleep
//   - 429 waits RateLimitDelay*trial, anything else non-200 (and transport
//     errors) waits BaseDelay*trial, then retries
//   - past MaxRetries the call resolves to ErrExhausted
//
// The very first scheduled wait is therefore zero-length: a blip gets one
// immediate retry and escalation starts on the second.
type Client struct {
	maxRetries     int
	baseDelay      time.Duration
	rateLimitDelay time.Duration
	headers        map[string]string

	hc      *http.Client
	limiter *hostLimiter

	// swapped out in tests
	sleep func(ctx context.Context, d time.Duration) error
}

func New(opts Options) *Client {
	if opts.MaxRetries <= 0 {
		opts.MaxRetries = DefaultMaxRetries
	}
	if opts.BaseDelay <= 0 {
		opts.BaseDelay = DefaultBaseDelay
	}
	if opts.RateLimitDelay <= 0 {
		opts.RateLimitDelay = DefaultRateLimitDelay
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.HostReqPerSec <= 0 {
		opts.HostReqPerSec = 2
	}
	if opts.HostBurst <= 0 {
		opts.HostBurst = 1
	}

	headers := make(map[string]string, len(opts.Headers))
	for k, v := range opts.Headers {
		headers[k] = v
	}

	return &Client{
		maxRetries:     opts.MaxRetries,
		baseDelay:      opts.BaseDelay,
		rateLimitDelay: opts.RateLimitDelay,
		headers:        headers,
		hc:             &http.Client{Timeout: opts.Timeout},
		limiter:        newHostLimiter(opts.HostReqPerSec, opts.HostBurst),
		sleep:          sleepCtx,
	}
}

// Get fetches url and returns the response body.
func (c *Client) Get(ctx context.Context, url string, headers map[string]string) ([]byte, error) {
	return c.Do(ctx, http.MethodGet, url, headers, nil)
}

// Do issues the request with merged default + call headers and the bounded
// retry discipline above. body may be nil; it is replayed on every attempt.
func (c *Client) Do(ctx context.Context, method, url string, headers map[string]string, body []byte) ([]byte, error) {
	for trial := 0; ; trial++ {
		if err := c.limiter.waitURL(ctx, url); err != nil {
			return nil, err
		}

		status, respBody, err := c.attempt(ctx, method, url, headers, body)
		if err != nil {
			// transport-level failure: retryable under the same budget,
			// no rate-limit sub-case
			if trial >= c.maxRetries {
				return nil, fmt.Errorf("%s %s after %d trials: %w", method, url, trial+1, ErrExhausted)
			}
			log.Printf("[fetch] transport error url=%s trial=%d err=%v", url, trial, err)
			if serr := c.sleep(ctx, time.Duration(trial)*c.baseDelay); serr != nil {
				return nil, serr
			}
			continue
		}

		if status == http.StatusOK {
			return respBody, nil
		}

		if trial >= c.maxRetries {
			return nil, fmt.Errorf("%s %s status %d after %d trials: %w", method, url, status, trial+1, ErrExhausted)
		}

		delay := time.Duration(trial) * c.baseDelay
		if status == http.StatusTooManyRequests {
			delay = time.Duration(trial) * c.rateLimitDelay
			log.Printf("[fetch] rate limited url=%s trial=%d wait=%s", url, trial, delay)
		} else {
			log.Printf("[fetch] status=%d url=%s trial=%d wait=%s", status, url, trial, delay)
		}
		if serr := c.sleep(ctx, delay); serr != nil {
			return nil, serr
		}
	}
}

func (c *Client) attempt(ctx context.Context, method, url string, headers map[string]string, body []byte) (int, []byte, error) {
	var rd io.Reader
	if body != nil {
		rd = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, rd)
	if err != nil {
		return 0, nil, err
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	res, err := c.hc.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer res.Body.Close()

	b, err := io.ReadAll(res.Body)
	if err != nil {
		return 0, nil, err
	}
	return res.StatusCode, b, nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
