package clientrt

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/hashicorp/go-retryablehttp"
)

// Transport creates request builders.
type Transport interface {
	NewRequest() RequestBuilder
}

// RequestBuilder configures one request and executes it. Builders are not
// shared between goroutines.
type RequestBuilder interface {
	Path(path string) RequestBuilder
	Method(method string) RequestBuilder
	Header(key, value string) RequestBuilder
	Query(key, value string) RequestBuilder
	Body(body []byte) RequestBuilder
	// Execute sends the request and returns the response body.
	Execute(ctx context.Context) ([]byte, error)
}

// DefaultMaxResponseSize bounds the response bodies HTTPTransport reads.
const DefaultMaxResponseSize = 32 * 1024 * 1024

// LeveledSlog adapts slog to retryablehttp's leveled logger. Errors are
// logged at WARN because the request is usually retried.
type LeveledSlog struct {
	inner *slog.Logger
}

func (l LeveledSlog) Error(msg string, keysAndValues ...any) {
	l.inner.Warn(msg, keysAndValues...)
}

func (l LeveledSlog) Warn(msg string, keysAndValues ...any) {
	l.inner.Warn(msg, keysAndValues...)
}

func (l LeveledSlog) Info(msg string, keysAndValues ...any) {
	l.inner.Info(msg, keysAndValues...)
}

func (l LeveledSlog) Debug(msg string, keysAndValues ...any) {
	l.inner.Debug(msg, keysAndValues...)
}

// TransportOption configures an HTTPTransport.
type TransportOption func(*transportConfig)

type transportConfig struct {
	retry           *retryablehttp.Client
	client          *http.Client
	timeout         time.Duration
	userAgent       string
	maxResponseSize int64
}

// WithMaxRetries sets the maximum number of retries.
func WithMaxRetries(maxRetries int) TransportOption {
	return func(c *transportConfig) {
		c.retry.RetryMax = maxRetries
	}
}

// WithRetryWait sets the minimum and maximum wait between retries.
func WithRetryWait(waitMin, waitMax time.Duration) TransportOption {
	return func(c *transportConfig) {
		c.retry.RetryWaitMin = waitMin
		c.retry.RetryWaitMax = waitMax
	}
}

// WithRetryPolicy replaces DefaultRetryPolicy.
func WithRetryPolicy(policy retryablehttp.CheckRetry) TransportOption {
	return func(c *transportConfig) {
		c.retry.CheckRetry = policy
	}
}

// WithLogger logs retries to logger.
func WithLogger(logger *slog.Logger) TransportOption {
	return func(c *transportConfig) {
		c.retry.Logger = retryablehttp.LeveledLogger(LeveledSlog{inner: logger})
	}
}

// WithRoundTripper replaces the pooled base transport.
func WithRoundTripper(rt http.RoundTripper) TransportOption {
	return func(c *transportConfig) {
		c.retry.HTTPClient.Transport = rt
	}
}

// WithHTTPClient uses client as is, without the retry layer.
func WithHTTPClient(client *http.Client) TransportOption {
	return func(c *transportConfig) {
		c.client = client
	}
}

// WithTimeout sets the overall per-request timeout, retries included.
func WithTimeout(timeout time.Duration) TransportOption {
	return func(c *transportConfig) {
		c.timeout = timeout
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) TransportOption {
	return func(c *transportConfig) {
		c.userAgent = ua
	}
}

// WithMaxResponseSize bounds the response bodies read.
func WithMaxResponseSize(n int64) TransportOption {
	return func(c *transportConfig) {
		c.maxResponseSize = n
	}
}

// HTTPTransport is a Transport over net/http.
type HTTPTransport struct {
	baseURL         string
	client          *http.Client
	userAgent       string
	maxResponseSize int64
}

// NewHTTPTransport returns a transport sending requests relative to
// baseURL. By default it retries connection errors and 5xx responses
// (except 501) three times.
func NewHTTPTransport(baseURL string, opts ...TransportOption) *HTTPTransport {
	retry := retryablehttp.NewClient()
	retry.HTTPClient.Transport = cleanhttp.DefaultPooledTransport()
	retry.RetryMax = 3
	retry.RetryWaitMin = 500 * time.Millisecond
	retry.RetryWaitMax = 5 * time.Second
	retry.Logger = retryablehttp.LeveledLogger(LeveledSlog{inner: slog.Default().With("subsystem", "clientrt")})
	retry.CheckRetry = DefaultRetryPolicy
	// hand the last response back so it becomes a StatusError
	retry.ErrorHandler = retryablehttp.PassthroughErrorHandler

	cfg := &transportConfig{
		retry:           retry,
		timeout:         30 * time.Second,
		maxResponseSize: DefaultMaxResponseSize,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	client := cfg.client
	if client == nil {
		client = cfg.retry.StandardClient()
		client.Timeout = cfg.timeout
	}
	return &HTTPTransport{
		baseURL:         strings.TrimRight(baseURL, "/"),
		client:          client,
		userAgent:       cfg.userAgent,
		maxResponseSize: cfg.maxResponseSize,
	}
}

// DefaultRetryPolicy wraps retryablehttp.DefaultRetryPolicy. 429 is not
// retried, so callers decide how to handle rate limiting.
func DefaultRetryPolicy(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if err == nil && resp.StatusCode == http.StatusTooManyRequests {
		return false, nil
	}
	return retryablehttp.DefaultRetryPolicy(ctx, resp, err)
}

// BaseURL returns the base URL without a trailing slash.
func (t *HTTPTransport) BaseURL() string {
	return t.baseURL
}

// NewRequest implements Transport.
func (t *HTTPTransport) NewRequest() RequestBuilder {
	return &httpRequest{t: t, method: http.MethodGet, header: make(http.Header), query: make(url.Values)}
}

var _ Transport = (*HTTPTransport)(nil)

type httpRequest struct {
	t      *HTTPTransport
	method string
	path   string
	header http.Header
	query  url.Values
	body   []byte
}

func (r *httpRequest) Path(path string) RequestBuilder {
	r.path = path
	return r
}

func (r *httpRequest) Method(method string) RequestBuilder {
	r.method = strings.ToUpper(method)
	return r
}

func (r *httpRequest) Header(key, value string) RequestBuilder {
	r.header.Add(key, value)
	return r
}

func (r *httpRequest) Query(key, value string) RequestBuilder {
	r.query.Add(key, value)
	return r
}

func (r *httpRequest) Body(body []byte) RequestBuilder {
	r.body = body
	return r
}

func (r *httpRequest) url() string {
	u := r.t.baseURL + "/" + strings.TrimLeft(r.path, "/")
	if len(r.query) > 0 {
		u += "?" + r.query.Encode()
	}
	return u
}

func (r *httpRequest) Execute(ctx context.Context) ([]byte, error) {
	var body io.Reader
	if r.body != nil {
		body = bytes.NewReader(r.body)
	}
	target := r.url()
	req, err := http.NewRequestWithContext(ctx, r.method, target, body)
	if err != nil {
		return nil, fmt.Errorf("clientrt: build request: %w", err)
	}
	req.Header = r.header.Clone()
	if r.t.userAgent != "" && req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", r.t.userAgent)
	}

	resp, err := r.t.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("clientrt: %s %s: %w", r.method, target, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, r.t.maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("clientrt: read response: %w", err)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return nil, &StatusError{StatusCode: resp.StatusCode, Method: r.method, URL: target, Body: data}
	}
	return data, nil
}
