// Package sanity is a minimal client for a Sanity-compatible hosted content
// store: parameterized GROQ queries over the query API and document creation
// over the mutate API. Only the small surface this site needs is implemented.
package sanity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const apiVersion = "v2021-10-21"

// Config holds everything needed to construct a Client. Values come from the
// caller (main reads env vars); the package itself never touches the
// environment.
type Config struct {
	ProjectID string
	Dataset   string
	Token     string // required for mutations only

	// BaseURL overrides the derived https://<project>.api.sanity.io origin.
	// Tests point this at an httptest server.
	BaseURL string

	// CDNBaseURL overrides the asset CDN origin, also for tests.
	CDNBaseURL string

	// HTTPClient overrides the default client (10s timeout).
	HTTPClient *http.Client
}

// Client talks to one project/dataset pair.
type Client struct {
	cfg  Config
	base string
	http *http.Client
}

// NewClient creates a Client for the given config.
func NewClient(cfg Config) (*Client, error) {
	if cfg.ProjectID == "" || cfg.Dataset == "" {
		return nil, fmt.Errorf("sanity: ProjectID and Dataset are required")
	}
	base := cfg.BaseURL
	if base == "" {
		base = fmt.Sprintf("https://%s.api.sanity.io", cfg.ProjectID)
	}
	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{cfg: cfg, base: base, http: hc}, nil
}

// APIError is a non-2xx response from the store.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("sanity: api error %d: %s", e.StatusCode, e.Body)
}

// Fetch runs a GROQ query with the given parameters and decodes the result
// envelope into v. Parameter names are sent without the leading "$".
func (c *Client) Fetch(ctx context.Context, query string, params map[string]string, v any) error {
	q := url.Values{}
	q.Set("query", query)
	for name, val := range params {
		// Parameter values are JSON-encoded per the query API contract.
		enc, err := json.Marshal(val)
		if err != nil {
			return fmt.Errorf("sanity: encode param %s: %w", name, err)
		}
		q.Set("$"+name, string(enc))
	}
	u := fmt.Sprintf("%s/%s/data/query/%s?%s", c.base, apiVersion, url.PathEscape(c.cfg.Dataset), q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("sanity: build query request: %w", err)
	}
	c.authorize(req)

	var envelope struct {
		Result json.RawMessage `json:"result"`
	}
	if err := c.do(req, &envelope); err != nil {
		return err
	}
	// A query that matches nothing yields result null; leave v untouched so
	// callers see their zero value.
	if len(envelope.Result) == 0 || bytes.Equal(envelope.Result, []byte("null")) {
		return nil
	}
	if err := json.Unmarshal(envelope.Result, v); err != nil {
		return fmt.Errorf("sanity: decode result: %w", err)
	}
	return nil
}

// Create submits a single create mutation for doc. The store assigns _id and
// _createdAt. Requires a write token.
func (c *Client) Create(ctx context.Context, doc any) error {
	if c.cfg.Token == "" {
		return fmt.Errorf("sanity: create requires an API token")
	}
	body, err := json.Marshal(map[string]any{
		"mutations": []map[string]any{{"create": doc}},
	})
	if err != nil {
		return fmt.Errorf("sanity: encode mutation: %w", err)
	}
	u := fmt.Sprintf("%s/%s/data/mutate/%s", c.base, apiVersion, url.PathEscape(c.cfg.Dataset))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("sanity: build mutate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	c.authorize(req)
	return c.do(req, nil)
}

func (c *Client) authorize(req *http.Request) {
	if c.cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.Token)
	}
}

func (c *Client) do(req *http.Request, v any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("sanity: %s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Bounded read; error bodies are small JSON blobs.
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &APIError{StatusCode: resp.StatusCode, Body: string(b)}
	}
	if v == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("sanity: decode response: %w", err)
	}
	return nil
}
