// Package client calls a remote keyplate server.
//
//	c := client.New("http://plates.local:8080")
//	resp, err := c.Build(ctx, api.BuildRequest{Layout: kle, HorizontalPad: "5"})
//
// Transient failures (connection errors, 429 and 5xx responses) are
// retried with backoff. Error responses come back as coded errors from
// pkg/errors, so callers handle them exactly like local build errors.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/matzehuels/keyplate/pkg/api"
	"github.com/matzehuels/keyplate/pkg/errors"
	"github.com/matzehuels/keyplate/pkg/httputil"
)

// Client talks to one server.
type Client struct {
	baseURL  string
	http     *http.Client
	attempts int
	delay    time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(h *http.Client) Option { return func(c *Client) { c.http = h } }

// WithRetry sets the attempt count and initial backoff.
func WithRetry(attempts int, delay time.Duration) Option {
	return func(c *Client) { c.attempts, c.delay = attempts, delay }
}

// New creates a client for baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		http:     &http.Client{Timeout: 3 * time.Minute},
		attempts: 3,
		delay:    time.Second,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Build posts req to /v1/plates.
func (c *Client) Build(ctx context.Context, req api.BuildRequest) (*api.BuildResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "encode request")
	}
	var out api.BuildResponse
	if err := c.do(ctx, http.MethodPost, "/v1/plates", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Health calls /healthz.
func (c *Client) Health(ctx context.Context) (*api.Health, error) {
	var out api.Health
	if err := c.do(ctx, http.MethodGet, "/healthz", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) do(ctx context.Context, method, path string, body []byte, out any) error {
	return httputil.Retry(ctx, c.attempts, c.delay, func() error {
		var rd io.Reader
		if body != nil {
			rd = bytes.NewReader(body)
		}
		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "build request")
		}
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.http.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return &httputil.RetryableError{Err: err}
		}
		defer resp.Body.Close()

		if err := httputil.CheckResponse(resp); err != nil {
			return err
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "decode %s response", path)
		}
		return nil
	})
}
