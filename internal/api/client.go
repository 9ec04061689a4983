// Package api talks to the Backend API. A Client is an immutable value:
// authenticating returns a new Client rather than mutating a shared one.
package api

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

	"go.uber.org/zap"
)

// Observer is told about every completed backend call.
type Observer interface {
	ObserveRequest(method string, status int, d time.Duration)
}

type Client struct {
	base     *url.URL
	http     *http.Client
	log      *zap.Logger
	observer Observer

	token          string
	onUnauthorized func(context.Context)
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		hc := *c.http
		hc.Timeout = d
		c.http = &hc
	}
}

func WithLogger(log *zap.Logger) Option {
	return func(c *Client) { c.log = log }
}

func WithObserver(o Observer) Option {
	return func(c *Client) { c.observer = o }
}

func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, err
	}
	if !u.IsAbs() {
		return nil, fmt.Errorf("%w: %q", ErrBadBaseURL, baseURL)
	}
	u.Path = strings.TrimSuffix(u.Path, "/")

	c := &Client{
		base: u,
		http: &http.Client{},
		log:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *Client) BaseURL() string {
	return c.base.String()
}

func (c *Client) Token() string {
	return c.token
}

// WithToken returns a copy that sends "Authorization: Bearer <token>".
func (c *Client) WithToken(token string) *Client {
	cp := *c
	cp.token = token
	return &cp
}

// WithoutToken returns a copy that sends no credentials and has no
// unauthorized hook.
func (c *Client) WithoutToken() *Client {
	cp := *c
	cp.token = ""
	cp.onUnauthorized = nil
	return &cp
}

// OnUnauthorized returns a copy that calls fn whenever a request carrying a
// token is answered with 401.
func (c *Client) OnUnauthorized(fn func(context.Context)) *Client {
	cp := *c
	cp.onUnauthorized = fn
	return &cp
}

func (c *Client) Get(ctx context.Context, path string) (*Response, error) {
	return c.Do(ctx, http.MethodGet, path, nil)
}

func (c *Client) Post(ctx context.Context, path string, body any) (*Response, error) {
	return c.Do(ctx, http.MethodPost, path, body)
}

func (c *Client) Put(ctx context.Context, path string, body any) (*Response, error) {
	return c.Do(ctx, http.MethodPut, path, body)
}

func (c *Client) Delete(ctx context.Context, path string) (*Response, error) {
	return c.Do(ctx, http.MethodDelete, path, nil)
}

// Do sends body as JSON (when non-nil) and returns the decoded envelope, or a
// *RequestError for non-2xx statuses.
func (c *Client) Do(ctx context.Context, method, path string, body any) (*Response, error) {
	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	res, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("backend request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("%s %s: read body: %w", method, path, err)
	}

	if c.observer != nil {
		c.observer.ObserveRequest(method, res.StatusCode, time.Since(start))
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		if res.StatusCode == http.StatusUnauthorized && c.token != "" && c.onUnauthorized != nil {
			c.log.Info("backend rejected token", zap.String("path", path))
			c.onUnauthorized(ctx)
		}
		return nil, &RequestError{
			Method: method,
			Path:   path,
			Status: res.StatusCode,
			Body:   data,
		}
	}

	return &Response{Status: res.StatusCode, Data: data}, nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	u, err := c.resolve(path)
	if err != nil {
		return nil, err
	}

	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		r = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), r)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	return req, nil
}

// resolve appends path (and its query) to the base url path.
func (c *Client) resolve(path string) (*url.URL, error) {
	ref, err := url.Parse(path)
	if err != nil {
		return nil, err
	}
	u := *c.base
	u.Path = c.base.Path + "/" + strings.TrimPrefix(ref.Path, "/")
	u.RawQuery = ref.RawQuery
	return &u, nil
}
