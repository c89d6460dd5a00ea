package gateway

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

	"pdpconsole/internal/requestctx"
)

const maxResponseBytes = 8 << 20

// TokenSource supplies the bearer token for each call; an empty token sends
// no Authorization header.
type TokenSource interface {
	Token() (string, error)
}

// Observer receives one sample per API call.
type Observer interface {
	RecordUpstream(failed bool, duration time.Duration)
}

type Client struct {
	baseURL  *url.URL
	http     *http.Client
	tokens   TokenSource
	observer Observer
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) {
		c.tokens = ts
	}
}

func WithObserver(o Observer) Option {
	return func(c *Client) {
		c.observer = o
	}
}

func New(baseURL string, timeout time.Duration, opts ...Option) (*Client, error) {
	parsed, err := url.Parse(strings.TrimRight(strings.TrimSpace(baseURL), "/"))
	if err != nil {
		return nil, fmt.Errorf("parse api base url: %w", err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("api base url must be absolute: %q", baseURL)
	}
	c := &Client{baseURL: parsed, http: &http.Client{Timeout: timeout}}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *Client) endpoint(segments ...string) string {
	u := *c.baseURL
	path := strings.TrimRight(u.Path, "/")
	rawPath := strings.TrimRight(u.EscapedPath(), "/")
	for _, s := range segments {
		s = strings.Trim(s, "/")
		path += "/" + s
		rawPath += "/" + url.PathEscape(s)
	}
	u.Path = path
	u.RawPath = rawPath
	return u.String()
}

// do performs one call. Network faults, non-2xx statuses and undecodable
// bodies all come back as *UpstreamError.
func (c *Client) do(ctx context.Context, op, method, target string, body, out any) (err error) {
	start := time.Now()
	defer func() {
		if c.observer != nil {
			c.observer.RecordUpstream(err != nil, time.Since(start))
		}
	}()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return &UpstreamError{Op: op, Err: err}
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return &UpstreamError{Op: op, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if reqID := requestctx.GetRequestID(ctx); reqID != "" {
		req.Header.Set("X-Request-ID", reqID)
	}
	if c.tokens != nil {
		token, err := c.tokens.Token()
		if err != nil {
			return &UpstreamError{Op: op, Err: fmt.Errorf("service token: %w", err)}
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &UpstreamError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return &UpstreamError{Op: op, Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &UpstreamError{Op: op, Status: resp.StatusCode}
	}
	if out == nil {
		return nil
	}
	if err := decode(raw, out); err != nil {
		return &UpstreamError{Op: op, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

// decode accepts a bare JSON value or one wrapped in {"data": ...}.
func decode(raw []byte, out any) error {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return io.ErrUnexpectedEOF
	}
	if raw[0] == '{' {
		var envelope map[string]json.RawMessage
		if err := json.Unmarshal(raw, &envelope); err != nil {
			return err
		}
		_, hasID := envelope["id"]
		if data, ok := envelope["data"]; ok && !hasID {
			raw = data
		}
	}
	return json.Unmarshal(raw, out)
}
