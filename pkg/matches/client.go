package matches

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	DefaultBaseURL = "https://v3.football.api-sports.io"

	// APIKeyHeader carries the api-sports key.
	APIKeyHeader = "x-apisports-key"

	// DefaultRequestsPerMinute matches the free api-sports plan.
	DefaultRequestsPerMinute = 10

	DefaultHTTPTimeout = 15 * time.Second
)

// ErrFetch wraps every failure to get a usable fixtures list.
var ErrFetch = errors.New("failed to fetch matches")

// Client reads fixtures. Every request first waits on Limiter.
type Client struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
	Limiter    *rate.Limiter
}

// NewClient creates a client for baseURL, or DefaultBaseURL when empty.
func NewClient(baseURL, apiKey string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		BaseURL:    strings.TrimSuffix(baseURL, "/"),
		APIKey:     apiKey,
		HTTPClient: &http.Client{Timeout: DefaultHTTPTimeout},
		Limiter:    rate.NewLimiter(rate.Every(time.Minute/DefaultRequestsPerMinute), 1),
	}
}

type fixturesResponse struct {
	Errors   json.RawMessage `json:"errors"`
	Response []Fixture       `json:"response"`
}

// LiveFixtures returns every match currently in play.
func (c *Client) LiveFixtures(ctx context.Context) ([]Fixture, error) {
	if c.Limiter != nil {
		if err := c.Limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrFetch, err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/fixtures?live=all", nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetch, err)
	}
	req.Header.Set(APIKeyHeader, c.APIKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("%w: status %d", ErrFetch, resp.StatusCode)
	}

	var out fixturesResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("%w: decode: %w", ErrFetch, err)
	}

	// api-sports reports key and quota problems with a 200 and a non-empty
	// "errors" value, either an object or an array.
	if hasErrors(out.Errors) {
		return nil, fmt.Errorf("%w: api errors: %s", ErrFetch, bytes.TrimSpace(out.Errors))
	}

	if out.Response == nil {
		out.Response = []Fixture{}
	}
	return out.Response, nil
}

func hasErrors(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	switch string(raw) {
	case "", "null", "[]", "{}":
		return false
	}
	return true
}
