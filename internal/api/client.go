// Package api is a thin wrapper over the todoodoo REST service.
//
// Every failure, whether transport, non-2xx status or an undecodable body,
// matches ErrRequestFailed. Callers cannot tell an auth failure from a
// server error and are not meant to.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ErrRequestFailed is the only error class the wrapper produces.
var ErrRequestFailed = errors.New("request failed")

// DefaultBaseURL is the hosted service.
const DefaultBaseURL = "https://api.todoodoo.com"

type Client struct {
	baseURL string
	http    *http.Client
	log     zerolog.Logger
}

type Option func(*Client)

// WithHTTPClient replaces the underlying *http.Client (tests use the one
// from httptest.Server).
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) { c.log = l }
}

// New returns a client for baseURL. An empty baseURL means DefaultBaseURL.
func New(baseURL string, timeout time.Duration, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     zerolog.Nop(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// BaseURL is the origin every path is resolved against.
func (c *Client) BaseURL() string { return c.baseURL }

// Request issues method path against the base origin. It sends a JSON
// content type and, when token is set, a bearer Authorization header;
// entries in header replace either. On a 2xx response the body, if any,
// is decoded into out (when out is non-nil).
func (c *Client) Request(ctx context.Context, method, path string, body io.Reader, header http.Header, token string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("%w: build %s %s: %w", ErrRequestFailed, method, path, err)
	}

	reqID := uuid.NewString()
	req.Header.Set("X-Request-ID", reqID)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for k, vs := range header {
		req.Header.Del(k)
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug().Str("request_id", reqID).Str("method", method).Str("path", path).
			Err(err).Msg("api request failed")
		return fmt.Errorf("%w: %s %s: %w", ErrRequestFailed, method, path, err)
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	c.log.Debug().Str("request_id", reqID).Str("method", method).Str("path", path).
		Int("status", resp.StatusCode).Dur("took", time.Since(start)).Msg("api request")
	if err != nil {
		return fmt.Errorf("%w: read %s %s: %w", ErrRequestFailed, method, path, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: %s %s: status %d", ErrRequestFailed, method, path, resp.StatusCode)
	}

	if out == nil || len(bytes.TrimSpace(b)) == 0 {
		return nil
	}
	if err := json.Unmarshal(b, out); err != nil {
		return fmt.Errorf("%w: decode %s %s: %w", ErrRequestFailed, method, path, err)
	}
	return nil
}

func jsonBody(v any) (io.Reader, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("%w: marshal: %w", ErrRequestFailed, err)
	}
	return bytes.NewReader(b), nil
}
