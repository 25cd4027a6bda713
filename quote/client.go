// Package quote fetches stock quotes from a Yahoo-style chart endpoint.
// The upstream is flaky: rate-limit failures are retried with doubling
// backoff, anything else fails fast.
package quote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	backoff "github.com/cenkalti/backoff/v4"
)

// ErrUnavailable is returned once all fetch attempts are spent or the
// failure is classified as permanent. Callers treat it as a skip, not a
// fatal condition.
var ErrUnavailable = errors.New("stock price unavailable")

const (
	// DefaultMaxAttempts bounds the retry loop for one fetch.
	DefaultMaxAttempts = 3
	// DefaultInitialWait is the backoff before the second attempt; it
	// doubles for each further rate-limited attempt.
	DefaultInitialWait = 5 * time.Second
)

// Client fetches quotes over HTTP with bounded retry.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	maxAttempts int
	initialWait time.Duration
}

// Option customizes a Client.
type Option func(*Client)

// WithMaxAttempts overrides the attempt cap.
func WithMaxAttempts(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.maxAttempts = n
		}
	}
}

// WithInitialWait overrides the first backoff interval.
func WithInitialWait(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.initialWait = d
		}
	}
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates a quote client against the given base URL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		httpClient:  &http.Client{Timeout: 15 * time.Second},
		baseURL:     strings.TrimRight(baseURL, "/"),
		maxAttempts: DefaultMaxAttempts,
		initialWait: DefaultInitialWait,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// chartResponse mirrors the subset of the chart JSON we read.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Symbol             string  `json:"symbol"`
				RegularMarketPrice float64 `json:"regularMarketPrice"`
			} `json:"meta"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// Fetch retrieves the current price for symbol. Rate-limited failures are
// retried up to the attempt cap with doubling backoff; other failures stop
// immediately. Either way exhaustion degrades to ErrUnavailable.
func (c *Client) Fetch(ctx context.Context, symbol string) (float64, error) {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = c.initialWait
	bo.Multiplier = 2
	bo.RandomizationFactor = 0
	bo.MaxElapsedTime = 0

	policy := backoff.WithContext(backoff.WithMaxRetries(bo, uint64(c.maxAttempts-1)), ctx)

	var price float64
	err := backoff.Retry(func() error {
		p, err := c.fetchOnce(ctx, symbol)
		if err == nil {
			price = p
			return nil
		}
		if IsRateLimited(err) {
			return err
		}
		// non-transient: do not retry
		return backoff.Permanent(err)
	}, policy)

	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return price, nil
}

func (c *Client) fetchOnce(ctx context.Context, symbol string) (float64, error) {
	url := fmt.Sprintf("%s/v8/finance/chart/%s?interval=1d&range=1d", c.baseURL, symbol)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("quote request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return 0, fmt.Errorf("quote endpoint returned %d %s: %s",
			resp.StatusCode, http.StatusText(resp.StatusCode), strings.TrimSpace(string(body)))
	}

	var chart chartResponse
	if err := json.NewDecoder(resp.Body).Decode(&chart); err != nil {
		return 0, fmt.Errorf("failed to decode quote response: %w", err)
	}

	if chart.Chart.Error != nil {
		return 0, fmt.Errorf("quote endpoint error: %s: %s", chart.Chart.Error.Code, chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 {
		return 0, fmt.Errorf("empty stock data returned for %s, check symbol or try later", symbol)
	}

	return chart.Chart.Result[0].Meta.RegularMarketPrice, nil
}

// IsRateLimited classifies a fetch failure as transient rate limiting by
// matching the keywords the upstream uses.
func IsRateLimited(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "rate limit") || strings.Contains(msg, "too many requests")
}
