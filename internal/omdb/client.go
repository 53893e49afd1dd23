package omdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const (
	defaultBaseURL = "https://www.omdbapi.com/"
	defaultTimeout = 10 * time.Second

	// maxBodyBytes caps how much of a response we are willing to read.
	maxBodyBytes = 4 << 20
)

// Client is an OMDb API client. It holds no cache; callers layer one on top.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	log        *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = u
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout sets the per-request timeout. A client passed to
// WithHTTPClient is copied, not modified.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithLogger sets a logger for debug output.
func WithLogger(log *slog.Logger) Option {
	return func(c *Client) {
		if log != nil {
			c.log = log.With("component", "omdb")
		}
	}
}

// NewClient creates a new OMDb client.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout > 0 && c.timeout != c.httpClient.Timeout {
		hc := *c.httpClient
		hc.Timeout = c.timeout
		c.httpClient = &hc
	}
	return c
}

// Search runs a title search and returns one page of results.
func (c *Client) Search(ctx context.Context, query string, page int) (*SearchResponse, error) {
	params := url.Values{}
	params.Set("s", query)
	params.Set("page", strconv.Itoa(page))

	var resp SearchResponse
	if err := c.get(ctx, params, &resp); err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}
	if failed(resp.Response) {
		return nil, newUpstreamError("search", resp.Error, defaultSearchError)
	}
	return &resp, nil
}

// Movie fetches full details, including the long plot, for an IMDb ID.
func (c *Client) Movie(ctx context.Context, imdbID string) (*Movie, error) {
	params := url.Values{}
	params.Set("i", imdbID)
	params.Set("plot", "full")

	var movie Movie
	if err := c.get(ctx, params, &movie); err != nil {
		return nil, fmt.Errorf("movie %q: %w", imdbID, err)
	}
	if failed(movie.Response) {
		return nil, newUpstreamError("movie", movie.Error, defaultDetailError)
	}
	return &movie, nil
}

// get performs the request and decodes the body into out.
//
// OMDb reports most failures as a JSON body with "Response": "False", even
// alongside a non-200 status (401 for a bad key). Such bodies are decoded and
// left for the caller to inspect; only non-JSON error responses become
// transport errors here.
func (c *Client) get(ctx context.Context, params url.Values, out any) error {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return fmt.Errorf("parse base url: %w", err)
	}
	q := u.Query()
	for k, v := range params {
		q[k] = v
	}
	q.Set("apikey", c.apiKey)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if c.log != nil {
		c.log.Debug("omdb request", "status", resp.StatusCode, "duration_ms", time.Since(start).Milliseconds())
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if err := json.Unmarshal(body, out); err != nil {
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("OMDb API error: %s", resp.Status)
		}
		return fmt.Errorf("decode response: %w", err)
	}

	if resp.StatusCode != http.StatusOK && !hasFailureFlag(out) {
		return fmt.Errorf("OMDb API error: %s", resp.Status)
	}
	return nil
}

func hasFailureFlag(out any) bool {
	switch v := out.(type) {
	case *SearchResponse:
		return failed(v.Response)
	case *Movie:
		return failed(v.Response)
	}
	return false
}
