// Package status proxies health, status, and uptime reads to the
// upstream monitoring service.
package status

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/nexisdev/mcp-cryptowallet-evm/internal/domain"
)

// DependencyStatus is one dependency probe result from the upstream
// status envelope.
type DependencyStatus struct {
	Status    string         `json:"status"`
	LatencyMs float64        `json:"latencyMs"`
	CheckedAt string         `json:"checkedAt"`
	Error     string         `json:"error,omitempty"`
	Details   map[string]any `json:"details,omitempty"`
}

// Envelope is the fixed JSON envelope the upstream status service
// returns. The service/system/sessions/tools sections are passed through
// without interpretation.
type Envelope struct {
	Service      map[string]any              `json:"service"`
	System       map[string]any              `json:"system"`
	Sessions     map[string]any              `json:"sessions"`
	Tools        map[string]any              `json:"tools"`
	Dependencies map[string]DependencyStatus `json:"dependencies"`
	GeneratedAt  string                      `json:"generatedAt"`
}

// ClientOption configures the client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// Client reads from the upstream status service, optionally presenting a
// bearer credential.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a new upstream status client.
func NewClient(baseURL, apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Health fetches the upstream /health body. Upstream 5xx maps to bad
// gateway; 4xx passes through with its body.
func (c *Client) Health(ctx context.Context) (string, error) {
	body, err := c.get(ctx, "/health", "")
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// Snapshot fetches the upstream /status envelope, optionally forcing a
// dependency refresh.
func (c *Client) Snapshot(ctx context.Context, refresh bool) (*Envelope, error) {
	query := ""
	if refresh {
		query = "refresh=1"
	}

	body, err := c.get(ctx, "/status", query)
	if err != nil {
		return nil, err
	}

	var envelope Envelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, domain.ErrBadGateway(fmt.Sprintf("invalid upstream status payload: %v", err))
	}
	return &envelope, nil
}

// Uptime fetches the upstream uptime in seconds. Any failure (network,
// non-2xx, malformed payload) degrades to absence: the second return is
// false and the caller reports the field as null.
func (c *Client) Uptime(ctx context.Context) (float64, bool) {
	body, err := c.get(ctx, "/uptime", "")
	if err != nil {
		return 0, false
	}

	var payload struct {
		UptimeSeconds float64 `json:"uptimeSeconds"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return 0, false
	}
	return payload.UptimeSeconds, true
}

func (c *Client) get(ctx context.Context, path, query string) ([]byte, error) {
	url := c.baseURL + path
	if query != "" {
		url += "?" + query
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, domain.ErrServer(fmt.Sprintf("create upstream request: %v", err))
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, domain.ErrBadGateway(fmt.Sprintf("failed to reach upstream status service: %v", err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, domain.ErrBadGateway(fmt.Sprintf("failed to read upstream response: %v", err))
	}

	if resp.StatusCode >= 500 {
		return nil, domain.ErrBadGateway("upstream status service error")
	}
	if resp.StatusCode >= 400 {
		return nil, domain.ErrUpstream(resp.StatusCode, string(body))
	}
	return body, nil
}
