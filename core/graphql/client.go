package graphql

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
)

// maxErrorBody caps how much of a non-2xx body is kept in a StatusError.
const maxErrorBody = 512

// Error is one entry of a top-level GraphQL errors array.
type Error struct {
	Message string `json:"message"`
	Path    []any  `json:"path,omitempty"`
}

// Response is the decoded envelope of a GraphQL call.
type Response struct {
	Data   json.RawMessage `json:"data,omitempty"`
	Errors []Error         `json:"errors,omitempty"`
}

// Decode unmarshals the data payload into v.
func (r *Response) Decode(v any) error {
	if len(r.Data) == 0 || string(r.Data) == "null" {
		return errors.New("response carries no data")
	}
	if err := json.Unmarshal(r.Data, v); err != nil {
		return errors.Wrap(err, "failed to decode response data")
	}
	return nil
}

// Client issues GraphQL queries and mutations against one shop.
// A returned error always means the call did not produce a readable response;
// GraphQL-level errors are reported in Response.Errors.
type Client interface {
	Do(ctx context.Context, query string, variables map[string]any) (*Response, error)
}

// StatusError is returned for non-2xx HTTP responses.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("unexpected status %d", e.StatusCode)
	}
	return fmt.Sprintf("unexpected status %d: %s", e.StatusCode, e.Body)
}

// HTTPClient implements Client over the Admin API HTTP endpoint.
type HTTPClient struct {
	httpClient  *http.Client
	endpoint    string
	accessToken string
}

// NewHTTPClient builds the pooled HTTP client shared by every shop handle.
// Build it once per process; connections are reused across shops and requests.
func NewHTTPClient(cfg Config) *http.Client {
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   30 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:   true,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	}
	return &http.Client{
		Transport: transport,
		Timeout:   time.Duration(cfg.TimeoutSeconds) * time.Second,
	}
}

// NewClient creates a handle for one shop session on top of a shared HTTP client.
// shop is a bare domain ("demo.myshopify.com") or a full base URL ("http://127.0.0.1:8080").
func NewClient(httpClient *http.Client, cfg Config, shop, accessToken string) (*HTTPClient, error) {
	if httpClient == nil {
		return nil, errors.New("http client is required")
	}
	if shop == "" {
		return nil, errors.New("shop domain is required")
	}
	if accessToken == "" {
		return nil, errors.Newf("access token is required for %s", shop)
	}

	version := cfg.APIVersion
	if version == "" {
		version = "2024-10"
	}

	return &HTTPClient{
		httpClient:  httpClient,
		endpoint:    Endpoint(shop, version),
		accessToken: accessToken,
	}, nil
}

// Endpoint builds the Admin GraphQL URL for a shop.
func Endpoint(shop, version string) string {
	base := strings.TrimSuffix(shop, "/")
	if !strings.Contains(base, "://") {
		base = "https://" + base
	}
	return fmt.Sprintf("%s/admin/api/%s/graphql.json", base, version)
}

// Do posts a query with variables and decodes the response envelope.
func (c *HTTPClient) Do(ctx context.Context, query string, variables map[string]any) (*Response, error) {
	payload := map[string]any{"query": query}
	if len(variables) > 0 {
		payload["variables"] = variables
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(err, "failed to create request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Shopify-Access-Token", c.accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read response")
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		text := strings.TrimSpace(string(raw))
		if len(text) > maxErrorBody {
			text = text[:maxErrorBody]
		}
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: text}
	}

	var out Response
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, errors.Wrap(err, "failed to decode response")
	}
	return &out, nil
}
