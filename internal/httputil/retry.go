// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers for the metadata provider client.
package httputil

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"
)

// RetryBaseDelay is the first backoff step when a Retrier has no BaseDelay.
// Tests override this to avoid real sleeps.
var RetryBaseDelay = 2 * time.Second

const (
	defaultMaxRetries = 5
	maxRetryAfter     = 2 * time.Minute
)

// Retrier retries throttled requests with exponential backoff.
type Retrier struct {
	Client *http.Client

	// MaxRetries is the number of retries after the first attempt.
	// Zero means 5.
	MaxRetries int

	// BaseDelay is the first backoff step. It doubles on each attempt.
	// Zero means RetryBaseDelay.
	BaseDelay time.Duration

	Logger zerolog.Logger
}

// Retryable reports whether a response status is worth retrying: 429 Too
// Many Requests and 503 Service Unavailable.
func Retryable(status int) bool {
	return status == http.StatusTooManyRequests || status == http.StatusServiceUnavailable
}

// Do executes req and retries retryable responses. A Retry-After header in
// seconds replaces the computed backoff, capped at two minutes. Each
// retried response body is drained and closed before waiting. If ctx is
// cancelled during a wait Do returns ctx.Err(). After the last retry the
// final response is returned as-is so the caller can inspect it.
func (r Retrier) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	client := r.Client
	if client == nil {
		client = http.DefaultClient
	}
	maxRetries := r.MaxRetries
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}
	base := r.BaseDelay
	if base <= 0 {
		base = RetryBaseDelay
	}

	for attempt := 0; ; attempt++ {
		resp, err := client.Do(req.Clone(ctx))
		if err != nil {
			return nil, err
		}
		if !Retryable(resp.StatusCode) || attempt >= maxRetries {
			return resp, nil
		}

		wait := base << attempt
		if ra, ok := retryAfter(resp.Header.Get("Retry-After")); ok {
			wait = ra
		}

		_, _ = io.Copy(io.Discard, resp.Body)
		resp.Body.Close()

		r.Logger.Debug().
			Int("status", resp.StatusCode).
			Dur("wait", wait).
			Int("attempt", attempt+1).
			Int("max_retries", maxRetries).
			Str("url", req.URL.Redacted()).
			Msg("provider throttled, retrying")

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(wait):
		}
	}
}

func retryAfter(v string) (time.Duration, bool) {
	if v == "" {
		return 0, false
	}
	secs, err := strconv.Atoi(v)
	if err != nil || secs < 0 {
		return 0, false
	}
	d := time.Duration(secs) * time.Second
	if d > maxRetryAfter {
		d = maxRetryAfter
	}
	return d, true
}
