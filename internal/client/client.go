package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bobmcallan/restaurant-mcp/internal/common"
)

// maxResponseSize caps the backend response body to prevent OOM from unexpectedly large responses.
const maxResponseSize = 50 << 20 // 50MB

// CorrelationHeader carries the caller's correlation ID through to the backend.
const CorrelationHeader = "X-Correlation-ID"

// Client talks to the restaurant REST API. Every request carries the same
// basic-auth credentials. A Client holds no mutable state and is safe for
// concurrent use.
type Client struct {
	baseURL    string
	username   string
	password   string
	httpClient *http.Client
	logger     *common.Logger
}

// New creates a client bound to baseURL. A zero timeout leaves the
// net/http default in place.
func New(baseURL, username, password string, timeout time.Duration, logger *common.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		username:   username,
		password:   password,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// BaseURL returns the configured backend URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Get performs a GET and decodes the JSON response into out.
func (c *Client) Get(ctx context.Context, path string, out interface{}) error {
	body, err := c.do(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return err
	}
	return decode(http.MethodGet, path, body, out)
}

// Post sends data as a JSON body and decodes the JSON response into out.
func (c *Client) Post(ctx context.Context, path string, data, out interface{}) error {
	body, err := c.do(ctx, http.MethodPost, path, nil, data)
	if err != nil {
		return err
	}
	return decode(http.MethodPost, path, body, out)
}

// Put sends data as a JSON body and decodes the JSON response into out.
func (c *Client) Put(ctx context.Context, path string, data, out interface{}) error {
	body, err := c.do(ctx, http.MethodPut, path, nil, data)
	if err != nil {
		return err
	}
	return decode(http.MethodPut, path, body, out)
}

// Delete performs a DELETE with the given query parameters. The response body is discarded.
func (c *Client) Delete(ctx context.Context, path string, query url.Values) error {
	_, err := c.do(ctx, http.MethodDelete, path, query, nil)
	return err
}

// do executes one request and returns the body of a 2xx response.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, data interface{}) ([]byte, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	logger := c.logger
	if id, ok := CorrelationID(ctx); ok {
		logger = logger.WithCorrelationId(id)
	}
	logger.Debug().Str("method", method).Str("path", path).Str("query", query.Encode()).Msg("backend request")

	var bodyReader io.Reader
	if data != nil {
		jsonData, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.SetBasicAuth(c.username, c.password)
	req.Header.Set("Accept", "application/json")
	if data != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if id, ok := CorrelationID(ctx); ok {
		req.Header.Set(CorrelationHeader, id)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	duration := time.Since(start)
	if err != nil {
		logger.Error().Str("method", method).Str("path", path).Int64("duration_ms", duration.Milliseconds()).Str("error", err.Error()).Msg("backend request failed")
		return nil, fmt.Errorf("%w: %s %s: %w", ErrTransport, method, path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: failed to read response: %w", ErrTransport, method, path, err)
	}

	logger.Debug().Str("method", method).Str("path", path).Int("status", resp.StatusCode).Int64("duration_ms", duration.Milliseconds()).Msg("backend response")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := newAPIError(method, path, resp.StatusCode, body)
		logger.Warn().Str("method", method).Str("path", path).Int("status", resp.StatusCode).Str("message", apiErr.Message).Msg("backend rejected request")
		return nil, apiErr
	}

	return body, nil
}

// decode unmarshals a 2xx body into out. Unknown fields are ignored.
func decode(method, path string, body []byte, out interface{}) error {
	if out == nil {
		return nil
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return fmt.Errorf("%w: %s %s: empty body", ErrDecode, method, path)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: %s %s: %w", ErrDecode, method, path, err)
	}
	return nil
}
