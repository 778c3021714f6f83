package transport

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// maxBodySize bounds how much of a response body is read (1MB).
const maxBodySize = 1 << 20

// DefaultTimeout is used when no timeout is configured.
const DefaultTimeout = 5 * time.Second

// Response is the raw outcome of a request that reached the server.
type Response struct {
	StatusCode int
	Body       []byte
}

// OK reports whether the status code is 2xx.
func (r Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Transport sends one HTTP request and returns the server's response.
// Implementations must not retry. A non-2xx status is not an error at this
// layer; callers inspect Response.OK.
type Transport interface {
	Send(ctx context.Context, method, url string, body []byte, header http.Header) (Response, error)
}

// Func adapts an ordinary function to the Transport interface.
type Func func(ctx context.Context, method, url string, body []byte, header http.Header) (Response, error)

func (f Func) Send(ctx context.Context, method, url string, body []byte, header http.Header) (Response, error) {
	return f(ctx, method, url, body, header)
}

// HTTP is a Transport backed by *http.Client.
// Zero value is not usable; use NewHTTP to create instances.
type HTTP struct {
	client  *http.Client
	timeout time.Duration
}

// Option configures HTTP.
type Option func(*HTTP)

// WithTimeout bounds both connection setup and the whole exchange.
func WithTimeout(d time.Duration) Option {
	return func(t *HTTP) {
		if d > 0 {
			t.timeout = d
		}
	}
}

// WithHTTPClient replaces the underlying client, e.g. for proxies or tests.
func WithHTTPClient(c *http.Client) Option {
	return func(t *HTTP) {
		if c != nil {
			t.client = c
		}
	}
}

// NewHTTP creates an HTTP transport. The default client dials with the same
// timeout that bounds the whole request, so connect and total timeouts match.
func NewHTTP(opts ...Option) *HTTP {
	t := &HTTP{timeout: DefaultTimeout}
	for _, opt := range opts {
		opt(t)
	}
	if t.client == nil {
		t.client = &http.Client{
			Timeout: t.timeout,
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				DialContext:         (&net.Dialer{Timeout: t.timeout}).DialContext,
				TLSHandshakeTimeout: t.timeout,
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		}
	}
	return t
}

// Timeout returns the configured request timeout.
func (t *HTTP) Timeout() time.Duration {
	return t.timeout
}

// Send performs a single request. Errors are returned only when no response
// was received; they wrap ErrTimeout or ErrRequestFailed.
func (t *HTTP) Send(ctx context.Context, method, rawURL string, body []byte, header http.Header) (Response, error) {
	if err := validateURL(rawURL); err != nil {
		return Response{}, err
	}

	reqCtx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(reqCtx, method, rawURL, reader)
	if err != nil {
		return Response{}, fmt.Errorf("%w: %w", ErrRequestFailed, err)
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	resp, err := t.client.Do(req)
	if err != nil {
		if errors.Is(reqCtx.Err(), context.DeadlineExceeded) || isTimeout(err) {
			return Response{}, fmt.Errorf("%w: %w", ErrTimeout, err)
		}
		return Response{}, fmt.Errorf("%w: %w", ErrRequestFailed, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return Response{StatusCode: resp.StatusCode}, fmt.Errorf("%w: read body: %w", ErrRequestFailed, err)
	}

	return Response{StatusCode: resp.StatusCode, Body: data}, nil
}

// StatusError describes a non-2xx response for logging.
// The body is flattened and truncated to keep log lines safe.
func StatusError(resp Response) error {
	msg := fmt.Sprintf("status %d", resp.StatusCode)
	if len(resp.Body) > 0 {
		body := strings.ReplaceAll(string(resp.Body), "\n", " ")
		if len(body) > 200 {
			body = body[:200] + "..."
		}
		msg += ": " + body
	}
	return fmt.Errorf("%w: %s", ErrUnexpectedStatus, msg)
}

func validateURL(rawURL string) error {
	if rawURL == "" {
		return fmt.Errorf("%w: URL is required", ErrInvalidURL)
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: only http and https schemes are supported", ErrInvalidURL)
	}
	if u.Host == "" {
		return fmt.Errorf("%w: host is required", ErrInvalidURL)
	}
	return nil
}

func isTimeout(err error) bool {
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
