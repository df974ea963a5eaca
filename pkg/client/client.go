/*
Copyright 2026 the API Check Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package client fetches JSON documents from third party APIs for
// validation. It is deliberately small: a GET with path, query and header
// parameters, retries for transient failures, a client side rate limit and
// W3C trace context on every request so failures can be correlated with
// the remote side.
package client

import (
	"bytes"
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/go-logr/logr"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"

	"github.com/cbt-testing/apicheck/pkg/jsonvalue"
)

var (
	// ErrMissingPathParam is returned when a path template references a
	// parameter that was not supplied.
	ErrMissingPathParam = errors.New("missing path parameter")

	// ErrUnexpectedStatus is returned when Request.ExpectStatus is set and
	// the response has a different status.
	ErrUnexpectedStatus = errors.New("unexpected status code")

	// ErrInvalidBody is returned when a response declares JSON but the body
	// does not decode.
	ErrInvalidBody = errors.New("invalid response body")

	errServerStatus = errors.New("server error status")
)

// TransportError wraps failures below HTTP: DNS, TLS, connection resets,
// timeouts. The response, if any, is unusable.
type TransportError struct {
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: transport error: %v", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Config is the fixed configuration of a client.
type Config struct {
	// BaseURL is prefixed to every request path.
	BaseURL string
	// Timeout bounds a single attempt.
	Timeout time.Duration
	// MaxRetries is the number of additional attempts after a transport
	// error or 5xx response.
	MaxRetries uint64
	// RetryInterval is the initial backoff interval.
	RetryInterval time.Duration
	// RequestsPerSecond limits the request rate, zero disables limiting.
	RequestsPerSecond float64
	// UserAgent is sent with every request.
	UserAgent string
	// Header is sent with every request, request headers take precedence.
	Header http.Header
	// LogRequests logs every request line and status.
	LogRequests bool
	// LogResponses logs every response body.
	LogResponses bool
}

// Client performs requests against a single API.
type Client struct {
	config  Config
	baseURL *url.URL
	doer    Doer
	limiter *rate.Limiter
	logger  logr.Logger
}

// Option customizes a client.
type Option func(*Client)

// WithDoer replaces the underlying HTTP client.
func WithDoer(doer Doer) Option {
	return func(c *Client) {
		c.doer = doer
	}
}

// WithLogger sets the logger, the default discards everything.
func WithLogger(logger logr.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// New returns a client for the API rooted at config.BaseURL.
func New(config Config, options ...Option) (*Client, error) {
	baseURL, err := url.Parse(strings.TrimSuffix(config.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parsing base url: %w", err)
	}

	if baseURL.Scheme == "" || baseURL.Host == "" {
		return nil, fmt.Errorf("base url %q must be absolute", config.BaseURL) //nolint:err113
	}

	limit := rate.Inf
	if config.RequestsPerSecond > 0 {
		limit = rate.Limit(config.RequestsPerSecond)
	}

	if config.RetryInterval == 0 {
		config.RetryInterval = 500 * time.Millisecond
	}

	c := &Client{
		config:  config,
		baseURL: baseURL,
		doer: &http.Client{
			Timeout: config.Timeout,
		},
		limiter: rate.NewLimiter(limit, 1),
		logger:  logr.Discard(),
	}

	for _, option := range options {
		option(c)
	}

	return c, nil
}

// Request describes a GET. Path may contain {name} placeholders that are
// filled from PathParams.
type Request struct {
	Path        string
	PathParams  map[string]any
	QueryParams map[string]any
	Header      http.Header
	// ExpectStatus, when set, turns any other status into an error wrapping
	// ErrUnexpectedStatus. The response is still returned.
	ExpectStatus *int
}

// Response is a fetched document.
type Response struct {
	// StatusCode is the numeric status, e.g. 415.
	StatusCode int
	// Status is the status line, e.g. "415 Unsupported Media Type".
	Status      string
	ContentType string
	Header      http.Header
	// Body is the decoded document, null if the response was not JSON.
	Body jsonvalue.Value
	// Raw is the undecoded body.
	Raw []byte
	// TraceID identifies the request in remote logs.
	TraceID  string
	Duration time.Duration
}

// IsJSON reports whether the response declared a JSON media type.
func (r *Response) IsJSON() bool {
	return isJSON(r.ContentType)
}

func isJSON(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}

	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
}

// URL renders the request URL without sending anything.
func (c *Client) URL(r Request) (*url.URL, error) {
	path, err := expandPath(r.Path, r.PathParams)
	if err != nil {
		return nil, err
	}

	query, err := encodeQuery(r.QueryParams)
	if err != nil {
		return nil, err
	}

	u := *c.baseURL
	u.RawPath = ""
	u.Path = strings.TrimSuffix(u.Path, "/") + path
	u.RawQuery = query.Encode()

	if unescaped, err := url.PathUnescape(u.Path); err == nil {
		u.RawPath = u.Path
		u.Path = unescaped
	}

	return &u, nil
}

// Get fetches a document. Transport failures are retried and finally
// returned as *TransportError. A 5xx status is retried and, once retries are
// exhausted, returned as a normal response.
func (c *Client) Get(ctx context.Context, r Request) (*Response, error) {
	u, err := c.URL(r)
	if err != nil {
		return nil, err
	}

	var response *Response

	operation := func() error {
		if err := c.limiter.Wait(ctx); err != nil {
			return backoff.Permanent(err)
		}

		resp, err := c.do(ctx, http.MethodGet, u, r.Header)
		if err != nil {
			return err
		}

		response = resp

		if resp.StatusCode >= http.StatusInternalServerError {
			return fmt.Errorf("%w: %s", errServerStatus, resp.Status)
		}

		return nil
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = c.config.RetryInterval

	notify := func(err error, wait time.Duration) {
		c.logger.Info("retrying request", "path", u.Path, "error", err.Error(), "wait", wait.String())
	}

	err = backoff.RetryNotify(operation, backoff.WithContext(backoff.WithMaxRetries(policy, c.config.MaxRetries), ctx), notify)
	if err != nil && !errors.Is(err, errServerStatus) {
		return nil, err
	}

	if r.ExpectStatus != nil && response.StatusCode != *r.ExpectStatus {
		return response, fmt.Errorf("%w: expected %d, got %d, body: %s (trace ID: %s)", ErrUnexpectedStatus, *r.ExpectStatus, response.StatusCode, string(response.Raw), response.TraceID)
	}

	if response.IsJSON() && len(bytes.TrimSpace(response.Raw)) > 0 {
		body, err := jsonvalue.Parse(response.Raw)
		if err != nil {
			return response, fmt.Errorf("%w: %w (trace ID: %s)", ErrInvalidBody, err, response.TraceID)
		}

		response.Body = body
	}

	return response, nil
}

// do performs a single attempt.
func (c *Client) do(ctx context.Context, method string, u *url.URL, header http.Header) (*Response, error) {
	ctx, traceID := withTraceContext(ctx)

	req, err := http.NewRequestWithContext(ctx, method, u.String(), nil)
	if err != nil {
		return nil, backoff.Permanent(fmt.Errorf("creating request: %w", err))
	}

	req.Header.Set("Accept", "application/json")

	if c.config.UserAgent != "" {
		req.Header.Set("User-Agent", c.config.UserAgent)
	}

	for key, values := range c.config.Header {
		req.Header[http.CanonicalHeaderKey(key)] = values
	}

	for key, values := range header {
		req.Header[http.CanonicalHeaderKey(key)] = values
	}

	propagation.TraceContext{}.Inject(ctx, propagation.HeaderCarrier(req.Header))

	log := c.logger.WithValues("method", method, "path", u.Path, "traceID", traceID)

	start := time.Now()
	resp, err := c.doer.Do(req)
	duration := time.Since(start)

	if err != nil {
		log.Error(err, "http request failed", "duration", duration.String())

		return nil, &TransportError{Method: method, URL: u.Redacted(), Err: err}
	}

	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Error(err, "reading response body", "status", resp.StatusCode, "duration", duration.String())

		return nil, &TransportError{Method: method, URL: u.Redacted(), Err: fmt.Errorf("reading response body: %w", err)}
	}

	if c.config.LogRequests {
		log.Info("request", "status", resp.StatusCode, "duration", duration.String())
	} else {
		log.V(1).Info("request", "status", resp.StatusCode, "duration", duration.String())
	}

	if c.config.LogResponses && len(raw) > 0 {
		log.Info("response body", "body", string(raw))
	}

	return &Response{
		StatusCode:  resp.StatusCode,
		Status:      resp.Status,
		ContentType: resp.Header.Get("Content-Type"),
		Header:      resp.Header,
		Raw:         raw,
		TraceID:     traceID,
		Duration:    duration,
	}, nil
}

// withTraceContext returns a context carrying a span context, creating a
// random one unless the caller already has one.
func withTraceContext(ctx context.Context) (context.Context, string) {
	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		return ctx, sc.TraceID().String()
	}

	var (
		traceID trace.TraceID
		spanID  trace.SpanID
	)

	_, _ = rand.Read(traceID[:])
	_, _ = rand.Read(spanID[:])

	sc := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	})

	return trace.ContextWithSpanContext(ctx, sc), traceID.String()
}
