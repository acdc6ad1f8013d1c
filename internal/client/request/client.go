package request

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/ontrail/internal/common"
	"github.com/dmitrijs2005/ontrail/internal/logging"
	"github.com/google/uuid"
)

// Doer executes HTTP requests. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client sends descriptors to one host. It is safe for concurrent use.
type Client struct {
	host  string
	http  Doer
	log   logging.Logger
	debug bool
}

type Option func(*Client)

// WithHTTPClient replaces the default http.Client (which has no timeout).
func WithHTTPClient(d Doer) Option {
	return func(c *Client) { c.http = d }
}

func WithLogger(l logging.Logger) Option {
	return func(c *Client) { c.log = l }
}

// WithDebug enables logging of response bodies at info level, so they show up
// without lowering the logger's level. Login responses stay redacted.
func WithDebug(debug bool) Option {
	return func(c *Client) { c.debug = debug }
}

func NewClient(host string, opts ...Option) *Client {
	c := &Client{
		host: strings.TrimRight(host, "/"),
		http: &http.Client{},
		log:  logging.Nop(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Host returns the origin all requests are sent to.
func (c *Client) Host() string { return c.host }

// Build returns the descriptor Do would send, without sending it.
func (c *Client) Build(method Method, path string, builders ...Builder) Descriptor {
	return Apply(New(method, path, c.host), builders...)
}

// Do builds a descriptor from the builders and sends it.
func (c *Client) Do(ctx context.Context, method Method, path string, builders ...Builder) (*Response, error) {
	return c.Send(ctx, c.Build(method, path, builders...))
}

func (c *Client) Get(ctx context.Context, path string, builders ...Builder) (*Response, error) {
	return c.Do(ctx, MethodGet, path, builders...)
}

func (c *Client) Post(ctx context.Context, path string, builders ...Builder) (*Response, error) {
	return c.Do(ctx, MethodPost, path, builders...)
}

func (c *Client) Put(ctx context.Context, path string, builders ...Builder) (*Response, error) {
	return c.Do(ctx, MethodPut, path, builders...)
}

func (c *Client) Patch(ctx context.Context, path string, builders ...Builder) (*Response, error) {
	return c.Do(ctx, MethodPatch, path, builders...)
}

func (c *Client) Delete(ctx context.Context, path string, builders ...Builder) (*Response, error) {
	return c.Do(ctx, MethodDelete, path, builders...)
}

func (c *Client) Options(ctx context.Context, path string, builders ...Builder) (*Response, error) {
	return c.Do(ctx, MethodOptions, path, builders...)
}

// Send executes d once. Transport problems yield *TransportError, non-2xx
// statuses yield *StatusError; the body is always read and closed.
func (c *Client) Send(ctx context.Context, d Descriptor) (*Response, error) {
	if d.bodyErr != nil {
		return nil, fmt.Errorf("encode request body: %w", d.bodyErr)
	}

	target := URL(d)

	var body io.Reader
	if d.Body != nil {
		body = strings.NewReader(*d.Body)
	}

	req, err := http.NewRequestWithContext(ctx, string(d.Method), target, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	var requestID string
	for k, v := range d.Headers {
		req.Header[k] = []string{v}
		if strings.EqualFold(k, common.HeaderRequestID) {
			requestID = v
			if v == "" {
				delete(req.Header, k)
			}
		}
	}
	if requestID == "" {
		requestID = uuid.NewString()
		req.Header.Set(common.HeaderRequestID, requestID)
	}

	log := c.log.With("request_id", requestID, "method", string(d.Method), "url", target)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		log.Warn(ctx, "request failed", "error", err)
		return nil, &TransportError{Method: d.Method, URL: target, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Warn(ctx, "reading response failed", "error", err)
		return nil, &TransportError{Method: d.Method, URL: target, Err: err}
	}

	log.Debug(ctx, "request sent", "status", resp.StatusCode, "duration", time.Since(start))
	if c.debug {
		shown := string(data)
		if d.Path == common.LoginPath {
			shown = logging.Redact(shown)
		}
		log.Info(ctx, "response body", "body", shown)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{
			Method:     d.Method,
			URL:        target,
			StatusCode: resp.StatusCode,
			Header:     resp.Header,
			Body:       data,
		}
	}

	return &Response{StatusCode: resp.StatusCode, Header: resp.Header, Body: data}, nil
}
