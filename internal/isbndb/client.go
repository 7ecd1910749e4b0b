// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package isbndb is the ISBNdb v2 metadata provider client. It supports
// free-text search and point lookup, and it coerces the provider's loose
// payloads into types.Book at the boundary.
package isbndb

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/pdiddy/curated-reads/internal/httputil"
	"github.com/pdiddy/curated-reads/internal/metrics"
	"github.com/pdiddy/curated-reads/pkg/types"
)

// DefaultBaseURL is the ISBNdb v2 API root.
const DefaultBaseURL = "https://api2.isbndb.com"

const (
	defaultPageSize        = 20
	defaultTimeout         = 15 * time.Second
	defaultBreakerFailures = 5
	defaultBreakerCooldown = 30 * time.Second
	maxErrorBody           = 512
)

// ErrMissingAPIKey is returned by New when no API key is configured.
var ErrMissingAPIKey = errors.New("isbndb: API key is not set")

// errNotFound marks a 404 inside the breaker so it counts as a success.
var errNotFound = errors.New("isbndb: not found")

// StatusError is a non-2xx provider response.
type StatusError struct {
	Op         string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("isbndb %s: HTTP %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("isbndb %s: HTTP %d: %s", e.Op, e.StatusCode, e.Body)
}

// Client talks to ISBNdb. Requests are paced by a token bucket, guarded by a
// circuit breaker and retried on throttling. It is safe for concurrent use.
type Client struct {
	baseURL   string
	apiKey    string
	userAgent string
	pageSize  int

	retrier httputil.Retrier
	limiter *rate.Limiter
	breaker *gobreaker.CircuitBreaker[[]byte]
	logger  zerolog.Logger
}

// New builds a client from cfg. It fails with ErrMissingAPIKey when
// cfg.APIKey is empty.
func New(cfg types.ProviderConfig, logger zerolog.Logger) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, ErrMissingAPIKey
	}

	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}

	failures := cfg.BreakerFailures
	if failures == 0 {
		failures = defaultBreakerFailures
	}
	cooldown := cfg.BreakerCooldown
	if cooldown <= 0 {
		cooldown = defaultBreakerCooldown
	}

	c := &Client{
		baseURL:   baseURL,
		apiKey:    strings.TrimSpace(cfg.APIKey),
		userAgent: cfg.UserAgent,
		pageSize:  pageSize,
		retrier: httputil.Retrier{
			Client:     &http.Client{Timeout: timeout},
			MaxRetries: cfg.MaxRetries,
			Logger:     logger,
		},
		limiter: rate.NewLimiter(limit, 1),
		logger:  logger,
	}

	c.breaker = gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        "isbndb",
		MaxRequests: 1,
		Timeout:     cooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		IsSuccessful: func(err error) bool {
			return err == nil ||
				errors.Is(err, errNotFound) ||
				errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			metrics.BreakerState.Set(float64(to))
			logger.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("provider circuit breaker state change")
		},
	})
	metrics.BreakerState.Set(float64(gobreaker.StateClosed))

	return c, nil
}

// SearchBooks runs a free-text search. A 404 from the provider means no
// matches and yields an empty slice.
func (c *Client) SearchBooks(ctx context.Context, query string) ([]types.Book, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []types.Book{}, nil
	}

	params := url.Values{
		"page":     {"1"},
		"pageSize": {strconv.Itoa(c.pageSize)},
	}
	body, err := c.get(ctx, "search", "/books/"+url.PathEscape(query)+"?"+params.Encode())
	if errors.Is(err, errNotFound) {
		return []types.Book{}, nil
	}
	if err != nil {
		return nil, err
	}

	books, err := parseSearch(body)
	if err != nil {
		return nil, fmt.Errorf("parsing isbndb search response: %w", err)
	}
	return books, nil
}

// LookupBook fetches a single record by ISBN or provider id. Valid ISBNs
// are normalized before the request. A 404 or a response without a book
// reports found=false with no error.
func (c *Client) LookupBook(ctx context.Context, id string) (types.Book, bool, error) {
	_, normalized := Classify(id)
	if normalized == "" {
		return types.Book{}, false, nil
	}

	body, err := c.get(ctx, "lookup", "/book/"+url.PathEscape(normalized))
	if errors.Is(err, errNotFound) {
		return types.Book{}, false, nil
	}
	if err != nil {
		return types.Book{}, false, err
	}

	book, found, err := parseLookup(body)
	if err != nil {
		return types.Book{}, false, fmt.Errorf("parsing isbndb book response: %w", err)
	}
	return book, found, nil
}

// get performs one paced, breaker-guarded GET and returns the body of a
// 2xx response. A 404 returns errNotFound.
func (c *Client) get(ctx context.Context, op, pathAndQuery string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	start := time.Now()
	status := "error"
	defer func() { metrics.ObserveProvider(op, status, time.Since(start)) }()

	body, err := c.breaker.Execute(func() ([]byte, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+pathAndQuery, nil)
		if err != nil {
			return nil, fmt.Errorf("creating request: %w", err)
		}
		req.Header.Set("Authorization", c.apiKey)
		req.Header.Set("Accept", "application/json")
		if c.userAgent != "" {
			req.Header.Set("User-Agent", c.userAgent)
		}

		resp, err := c.retrier.Do(ctx, req)
		if err != nil {
			return nil, fmt.Errorf("isbndb %s request: %w", op, err)
		}
		defer resp.Body.Close()
		status = strconv.Itoa(resp.StatusCode)

		if resp.StatusCode == http.StatusNotFound {
			return nil, errNotFound
		}
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
			return nil, &StatusError{
				Op:         op,
				StatusCode: resp.StatusCode,
				Body:       strings.TrimSpace(string(snippet)),
			}
		}

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("reading isbndb %s response: %w", op, err)
		}
		return data, nil
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		status = "rejected"
		return nil, fmt.Errorf("isbndb %s: %w", op, err)
	}
	if err != nil && !errors.Is(err, errNotFound) {
		c.logger.Debug().Err(err).Str("op", op).Msg("provider request failed")
	}
	return body, err
}
