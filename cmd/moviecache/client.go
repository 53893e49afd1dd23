package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/vmunix/moviecache/internal/omdb"
)

// Client wraps HTTP calls to the moviecached server.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new moviecached API client.
func NewClient(serverURL string) *Client {
	return &Client{
		baseURL: serverURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// APIError is a non-200 answer from the server.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("server error %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("%s (%s)", e.Message, e.Code)
}

func (c *Client) get(path string, query url.Values, result any) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	resp, err := c.httpClient.Get(target)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		apiErr := &APIError{Status: resp.StatusCode}
		var payload struct {
			Error string `json:"error"`
			Code  string `json:"code"`
		}
		if json.Unmarshal(body, &payload) == nil && payload.Error != "" {
			apiErr.Code, apiErr.Message = payload.Code, payload.Error
		} else {
			apiErr.Message = string(body)
		}
		return apiErr
	}

	return json.NewDecoder(resp.Body).Decode(result)
}

// Search fetches one page of search results.
func (c *Client) Search(query string, page int) (*omdb.SearchResponse, error) {
	var out omdb.SearchResponse
	q := url.Values{"q": {query}, "page": {strconv.Itoa(page)}}
	if err := c.get("/api/movies/search", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Movie fetches full details for an IMDb ID.
func (c *Client) Movie(imdbID string) (*omdb.Movie, error) {
	var out omdb.Movie
	if err := c.get("/api/movies/"+url.PathEscape(imdbID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// StatusResponse is the body of /healthz.
type StatusResponse struct {
	Status string `json:"status"`
}

// Health checks that the server is up.
func (c *Client) Health() (*StatusResponse, error) {
	var out StatusResponse
	if err := c.get("/healthz", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
