// Package oddsapi is a thin client for The Odds API v4 event endpoints.
package oddsapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/time/rate"
)

const (
	// DefaultBaseURL is The Odds API v4 base URL
	DefaultBaseURL = "https://api.the-odds-api.com/v4"

	// Region is fixed: the product only prices European bookmakers
	Region = "eu"

	EndpointMarkets = "markets"
	EndpointOdds    = "odds"

	defaultRateLimit = 5.0 // requests per second
	defaultBurst     = 1
)

// ErrMissingAPIKey is returned before any network call when no API key is configured
var ErrMissingAPIKey = errors.New("odds api key missing")

// APIError is returned for a non-2xx provider response
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("odds api error %d", e.StatusCode)
}

// Recorder observes provider calls
type Recorder interface {
	ObserveRequest(endpoint string, statusCode int)
	ObserveQuota(remaining string)
}

// Client is an Odds API client
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	limiter    *rate.Limiter
	recorder   Recorder
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithBaseURL sets a custom base URL
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithRateLimit sets custom rate limiting
func WithRateLimit(rps float64, burst int) ClientOption {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// WithRecorder reports request outcomes and remaining quota
func WithRecorder(r Recorder) ClientOption {
	return func(c *Client) {
		c.recorder = r
	}
}

// NewClient creates a new Odds API client. An empty apiKey is accepted here and
// reported by every fetch.
func NewClient(apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{},
		limiter:    rate.NewLimiter(rate.Limit(defaultRateLimit), defaultBurst),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// FetchEventMarkets fetches the markets offered for one event
func (c *Client) FetchEventMarkets(ctx context.Context, sportKey, eventID string) (json.RawMessage, error) {
	if c.apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	params := url.Values{}
	params.Set("apiKey", c.apiKey)
	params.Set("regions", Region)

	return c.get(ctx, EndpointMarkets, sportKey, eventID, params)
}

// FetchEventOdds fetches decimal odds for the given market keys of one event
func (c *Client) FetchEventOdds(ctx context.Context, sportKey, eventID string, marketKeys []string) (json.RawMessage, error) {
	if c.apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	params := url.Values{}
	params.Set("apiKey", c.apiKey)
	params.Set("regions", Region)
	params.Set("markets", strings.Join(marketKeys, ","))
	params.Set("oddsFormat", "decimal")

	return c.get(ctx, EndpointOdds, sportKey, eventID, params)
}

// get performs one GET against /sports/{sport}/events/{event}/{endpoint}
func (c *Client) get(ctx context.Context, endpoint, sportKey, eventID string, params url.Values) (json.RawMessage, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	reqURL := fmt.Sprintf("%s/sports/%s/events/%s/%s?%s",
		c.baseURL, url.PathEscape(sportKey), url.PathEscape(eventID), endpoint, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if c.recorder != nil {
		c.recorder.ObserveRequest(endpoint, resp.StatusCode)
		if remaining := resp.Header.Get("X-Requests-Remaining"); remaining != "" {
			c.recorder.ObserveQuota(remaining)
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s response: %w", endpoint, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	if !json.Valid(body) {
		return nil, fmt.Errorf("failed to decode %s response: invalid JSON", endpoint)
	}

	return json.RawMessage(body), nil
}
