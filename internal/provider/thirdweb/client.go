// Package thirdweb calls the thirdweb execution API and translates
// transaction intents into its request schema.
package thirdweb

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/nexisdev/mcp-cryptowallet-evm/internal/domain"
)

const defaultBaseURL = "https://api.thirdweb.com"

// SwapPath is the endpoint used for both bridge and swap execution. The
// provider distinguishes the two by payload contents, not by route.
const SwapPath = "/v1/bridge/swap"

// ClientOption configures the client.
type ClientOption func(*Client)

// WithBaseURL sets a custom base URL for the API.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(baseURL, "/")
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// Client is an HTTP client for the thirdweb API. At least one of the two
// credentials must be configured before any call succeeds.
type Client struct {
	baseURL    string
	clientID   string
	secretKey  string
	httpClient *http.Client
}

// NewClient creates a new thirdweb API client.
func NewClient(clientID, secretKey string, opts ...ClientOption) *Client {
	c := &Client{
		clientID:   clientID,
		secretKey:  secretKey,
		baseURL:    defaultBaseURL,
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Response is a decoded provider response plus the transaction id
// extracted from it, when present.
type Response struct {
	TransactionID string
	Body          map[string]any
}

// Call posts payload to path. It fails fast with a config error when no
// credential is configured, maps transport failures and provider 5xx to
// bad gateway, and passes provider 4xx statuses through verbatim with the
// response body as detail.
func (c *Client) Call(ctx context.Context, path string, payload any) (*Response, error) {
	if c.clientID == "" && c.secretKey == "" {
		return nil, domain.ErrConfig(
			"thirdweb credentials are not configured: set THIRDWEB_SECRET_KEY or THIRDWEB_CLIENT_ID")
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, domain.ErrServer(fmt.Sprintf("marshal thirdweb request: %v", err))
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, domain.ErrServer(fmt.Sprintf("create thirdweb request: %v", err))
	}

	httpReq.Header.Set("Content-Type", "application/json")
	if c.clientID != "" {
		httpReq.Header.Set("x-client-id", c.clientID)
	}
	if c.secretKey != "" {
		httpReq.Header.Set("x-secret-key", c.secretKey)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, domain.ErrBadGateway(fmt.Sprintf("failed to reach thirdweb API: %v", err))
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, domain.ErrBadGateway(fmt.Sprintf("failed to read thirdweb response: %v", err))
	}

	if resp.StatusCode >= 500 {
		return nil, domain.ErrBadGateway("thirdweb API returned an upstream error")
	}
	if resp.StatusCode >= 400 {
		detail := string(respBody)
		if detail == "" {
			detail = "thirdweb request rejected"
		}
		return nil, domain.ErrUpstream(resp.StatusCode, detail)
	}

	decoded := make(map[string]any)
	if len(respBody) > 0 {
		if err := json.Unmarshal(respBody, &decoded); err != nil {
			return nil, domain.ErrBadGateway(fmt.Sprintf("invalid thirdweb response: %v", err))
		}
	}

	return &Response{
		TransactionID: extractTransactionID(decoded),
		Body:          decoded,
	}, nil
}

// extractTransactionID digs result.transactionId out of the decoded
// response. Absence is not an error; the field is simply empty.
func extractTransactionID(body map[string]any) string {
	result, ok := body["result"].(map[string]any)
	if !ok {
		return ""
	}
	id, _ := result["transactionId"].(string)
	return id
}
