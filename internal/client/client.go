// Package client is a typed façade over the tracker's HTTP API. It mirrors
// what the browser UI consumes: candidate payloads carry the currentStage
// alias, list calls accept the same filters the endpoints do, and failed
// requests come back as *HTTPError so callers can roll optimistic updates
// back.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hirepipe/hirepipe/internal/logger"
)

const defaultTimeout = 10 * time.Second

// Client talks to a running tracker API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     logger.Logger
}

// New creates a client for the API at baseURL. A nil log falls back to the
// no-op logger.
func New(baseURL string, log logger.Logger) *Client {
	if log == nil {
		log = logger.NewNopLogger()
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
		logger:     log,
	}
}

// WithHTTPClient swaps the underlying HTTP client, mainly for tests.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.httpClient = hc
	return c
}

// get issues a GET and decodes the body into out. A 404 is returned as an
// *HTTPError; callers with a null-result contract translate it themselves.
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

// send issues a request with a JSON body and decodes the response into out.
func (c *Client) send(ctx context.Context, method, path string, body, out any) error {
	return c.do(ctx, method, path, nil, body, out)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		httpErr := ParseHTTPError(resp)
		c.logger.Warn("Request failed",
			logger.String("method", method),
			logger.String("path", path),
			logger.Int("status", httpErr.StatusCode),
		)
		return httpErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// notFoundAsNil filters 404s out for calls whose contract is a null result.
func notFoundAsNil(err error) error {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) && httpErr.IsNotFound() {
		return nil
	}
	return err
}
