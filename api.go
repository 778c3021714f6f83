package mbuzz

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/mbuzz/mbuzz-go/pkg/logger"
	"github.com/mbuzz/mbuzz-go/pkg/transport"
)

// Version is the SDK version reported in the User-Agent header.
const Version = "0.1.0"

// UserAgent identifies this SDK to the collection API.
const UserAgent = "mbuzz-go/" + Version

const (
	pathEvents      = "/events"
	pathConversions = "/conversions"
	pathIdentify    = "/identify"
	pathSessions    = "/sessions"
	pathValidate    = "/validate"
)

// timestampLayout is ISO-8601 UTC with a literal Z.
const timestampLayout = "2006-01-02T15:04:05Z"

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

func (c *Client) endpoint(path string) string {
	return c.cfg.APIURL + "/" + strings.TrimLeft(path, "/")
}

// post sends payload and reports whether the API answered 2xx.
func (c *Client) post(ctx context.Context, path string, payload any) bool {
	_, ok := c.request(ctx, http.MethodPost, path, payload)
	return ok
}

// postWithResponse sends payload and returns the body of a 2xx response.
func (c *Client) postWithResponse(ctx context.Context, path string, payload any) ([]byte, bool) {
	return c.request(ctx, http.MethodPost, path, payload)
}

func (c *Client) get(ctx context.Context, path string) ([]byte, bool) {
	return c.request(ctx, http.MethodGet, path, nil)
}

// request performs one API call. Every failure is logged in debug mode and
// reported as ok=false; nothing is retried.
func (c *Client) request(ctx context.Context, method, path string, payload any) ([]byte, bool) {
	if !c.cfg.IsEnabled() {
		return nil, false
	}

	url := c.endpoint(path)

	var body []byte
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			c.debug(ctx, "mbuzz: encode payload failed", logger.Endpoint(method, url), logger.Error(err))
			c.metrics.observeRequest(path, outcomeError, 0)
			return nil, false
		}
		body = data
	}

	header := http.Header{}
	header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	header.Set("Content-Type", "application/json")
	header.Set("Accept", "application/json")
	header.Set("User-Agent", UserAgent)

	c.debug(ctx, "mbuzz: request", logger.Endpoint(method, url), logger.Payload(body))

	start := time.Now()
	resp, err := c.transport.Send(ctx, method, url, body, header)
	elapsed := time.Since(start)
	if err != nil {
		c.debug(ctx, "mbuzz: request failed",
			logger.Endpoint(method, url), logger.Duration(elapsed), logger.Error(err))
		c.metrics.observeRequest(path, outcomeError, elapsed)
		return nil, false
	}

	c.debug(ctx, "mbuzz: response",
		logger.Endpoint(method, url), logger.Status(resp.StatusCode),
		logger.Duration(elapsed), logger.Payload(resp.Body))

	if !resp.OK() {
		c.debug(ctx, "mbuzz: unexpected response",
			logger.Endpoint(method, url), logger.Error(transport.StatusError(resp)))
		c.metrics.observeRequest(path, outcomeRejected, elapsed)
		return nil, false
	}

	c.metrics.observeRequest(path, outcomeSuccess, elapsed)
	return resp.Body, true
}

func (c *Client) debug(ctx context.Context, msg string, args ...any) {
	if !c.cfg.Debug {
		return
	}
	c.logger.DebugContext(ctx, msg, args...)
}

// reject records a call refused before reaching the network.
func (c *Client) reject(ctx context.Context, operation, reason string, args ...any) {
	c.metrics.observeValidation(operation, reason)
	c.debug(ctx, "mbuzz: "+operation+" skipped", append([]any{logger.Reason(reason)}, args...)...)
}

// flexibleID decodes identifiers the API may send as strings or numbers.
type flexibleID string

func (f *flexibleID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = flexibleID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = flexibleID(n.String())
	return nil
}
