// Package omdb looks up movie records on the OMDb API.
package omdb

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/filmshelf/filmshelf/internal/ratelimit"
)

const (
	// Rate limit: 5 requests per second per host, burst of 5
	defaultRPS   = 5.0
	defaultBurst = 5

	defaultBaseURL = "https://www.omdbapi.com"
	defaultTimeout = 10 * time.Second

	// Breaker trips after this many consecutive transport failures and
	// stays open for defaultOpenTimeout.
	defaultFailureThreshold = 3
	defaultOpenTimeout      = 30 * time.Second

	maxBodyBytes = 1 << 20
)

// Config configures a Client. Zero values take the defaults above.
type Config struct {
	APIKey           string
	BaseURL          string
	Timeout          time.Duration
	RPS              float64
	Burst            int
	FailureThreshold uint32
	OpenTimeout      time.Duration
}

// Client is a rate-limited, circuit-broken OMDb API client.
type Client struct {
	http    *http.Client
	apiKey  string
	baseURL string
	host    string
	limiter *ratelimit.KeyedRateLimiter
	breaker *gobreaker.CircuitBreaker[*rawResponse]
	logger  *slog.Logger
}

// New creates a new OMDb client.
func New(cfg Config, logger *slog.Logger) (*Client, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.RPS <= 0 {
		cfg.RPS = defaultRPS
	}
	if cfg.Burst <= 0 {
		cfg.Burst = defaultBurst
	}
	if cfg.FailureThreshold == 0 {
		cfg.FailureThreshold = defaultFailureThreshold
	}
	if cfg.OpenTimeout <= 0 {
		cfg.OpenTimeout = defaultOpenTimeout
	}

	u, err := url.Parse(cfg.BaseURL)
	if err != nil || u.Host == "" {
		return nil, fmt.Errorf("invalid omdb base url %q", cfg.BaseURL)
	}

	c := &Client{
		http: &http.Client{
			Timeout: cfg.Timeout,
		},
		apiKey:  cfg.APIKey,
		baseURL: cfg.BaseURL,
		host:    u.Host,
		limiter: ratelimit.New(cfg.RPS, cfg.Burst),
		logger:  logger,
	}
	c.breaker = newBreaker(cfg, logger)

	return c, nil
}

func newBreaker(cfg Config, logger *slog.Logger) *gobreaker.CircuitBreaker[*rawResponse] {
	return gobreaker.NewCircuitBreaker[*rawResponse](gobreaker.Settings{
		Name:        "omdb",
		MaxRequests: 1,
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.FailureThreshold
		},
		// A cancelled lookup says nothing about OMDb's health.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state changed", "name", name, "from", from.String(), "to", to.String())
		},
	})
}

// Close releases resources held by the client.
func (c *Client) Close() {
	c.limiter.Stop()
}

// BreakerState returns the circuit breaker state ("closed", "open", "half-open").
func (c *Client) BreakerState() string {
	return c.breaker.State().String()
}

// Lookup fetches one title. It never returns a Go error: failures are
// reported through the Result's Kind and Err.
func (c *Client) Lookup(ctx context.Context, q Query) Result {
	if q.IsEmpty() {
		return transportError(wrapError(q, ErrEmptyQuery))
	}
	if c.apiKey == "" {
		return transportError(wrapError(q, ErrNoAPIKey))
	}

	raw, err := c.breaker.Execute(func() (*rawResponse, error) {
		return c.fetch(ctx, q)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			err = ErrCircuitOpen
		}
		c.logger.Debug("omdb lookup failed", "query", q.String(), "error", err)
		return transportError(wrapError(q, err))
	}

	if raw.Response != "True" {
		reason := ErrNotFound
		if raw.Error != "" {
			reason = fmt.Errorf("%w: %s", ErrNotFound, raw.Error)
		}
		return notFound(wrapError(q, reason))
	}

	rec := raw.record()
	c.logger.Debug("omdb lookup found", "query", q.String(), "title", rec.Title, "year", rec.Year)
	return found(rec)
}

// fetch performs one HTTP round trip. A "False" response is returned as a
// value, not an error, so the breaker does not count it as a failure.
func (c *Client) fetch(ctx context.Context, q Query) (*rawResponse, error) {
	// Wait for rate limit
	if err := c.limiter.Wait(ctx, c.host); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	query := url.Values{}
	query.Set("apikey", c.apiKey)
	if q.IMDbID != "" {
		query.Set("i", q.IMDbID)
	} else {
		query.Set("t", q.Title)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "filmshelf/1.0")

	c.logger.Debug("omdb request", "query", q.String())

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, ErrUnauthorized
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, ErrRateLimited
	case resp.StatusCode >= 500:
		return nil, fmt.Errorf("%w: status %d", ErrServer, resp.StatusCode)
	default:
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var raw rawResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	if raw.Response == "True" && raw.Title == nil {
		return nil, fmt.Errorf("%w: record has no Title", ErrMalformed)
	}

	return &raw, nil
}
