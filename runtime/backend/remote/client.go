package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// DefaultBaseURL is the execution service used when none is configured.
const DefaultBaseURL = "https://api.riza.io"

// executePath is the endpoint that runs a snippet.
const executePath = "/v1/execute"

// maxErrorBody caps how much of an error response is read.
const maxErrorBody = 64 << 10

// HTTPClientConfig configures an HTTPClient.
type HTTPClientConfig struct {
	// BaseURL of the execution service. Default: DefaultBaseURL.
	BaseURL string

	// APIKey authenticates requests as a bearer token.
	// Required.
	APIKey string

	// HTTPClient performs the requests. Default: a client with no timeout,
	// so only the caller's context bounds a request.
	HTTPClient *http.Client

	// UserAgent is sent with every request when set.
	UserAgent string
}

// HTTPClient is a RemoteClient speaking JSON over HTTP.
type HTTPClient struct {
	baseURL   string
	apiKey    string
	http      *http.Client
	userAgent string
}

// NewHTTPClient creates an HTTPClient. Returns ErrClientNotConfigured when no
// API key is set.
func NewHTTPClient(cfg HTTPClientConfig) (*HTTPClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: API key is required", ErrClientNotConfigured)
	}
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{}
	}
	return &HTTPClient{
		baseURL:   baseURL,
		apiKey:    cfg.APIKey,
		http:      hc,
		userAgent: cfg.UserAgent,
	}, nil
}

// Endpoint returns the execute endpoint URL.
func (c *HTTPClient) Endpoint() string {
	return c.baseURL + executePath
}

// Execute posts the payload and decodes the service's reply.
func (c *HTTPClient) Execute(ctx context.Context, payload ExecutePayload) (ExecuteResultPayload, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return ExecuteResultPayload{}, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint(), bytes.NewReader(body))
	if err != nil {
		return ExecuteResultPayload{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ExecuteResultPayload{}, ctx.Err()
		}
		return ExecuteResultPayload{}, fmt.Errorf("%w: %v", ErrConnectionFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return ExecuteResultPayload{}, fmt.Errorf("%w: %s", ErrRemoteExecutionFailed, errorMessage(resp))
	}

	var result ExecuteResultPayload
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return ExecuteResultPayload{}, fmt.Errorf("%w: decode response: %v", ErrRemoteExecutionFailed, err)
	}
	return result, nil
}

// errorMessage extracts a readable message from a failed response.
func errorMessage(resp *http.Response) string {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	var ep ErrorPayload
	if err := json.Unmarshal(data, &ep); err == nil && ep.Message != "" {
		return fmt.Sprintf("status %d: %s", resp.StatusCode, ep.Message)
	}
	if text := strings.TrimSpace(string(data)); text != "" {
		return fmt.Sprintf("status %d: %s", resp.StatusCode, text)
	}
	return fmt.Sprintf("status %d", resp.StatusCode)
}

var (
	_ RemoteClient     = (*HTTPClient)(nil)
	_ EndpointProvider = (*HTTPClient)(nil)
)
