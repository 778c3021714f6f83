package mbuzz_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mbuzz/mbuzz-go"
	"github.com/mbuzz/mbuzz-go/pkg/cookie"
	"github.com/mbuzz/mbuzz-go/pkg/transport"
)

const testAPIKey = "sk_test_abc123"

var fixedNow = time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

type sentRequest struct {
	Method string
	URL    string
	Body   []byte
	Header http.Header
}

func (s sentRequest) JSON(t *testing.T) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(s.Body, &out))
	return out
}

// recorder is a transport double that records requests and answers like the
// mbuzz API unless respond is set.
type recorder struct {
	mu      sync.Mutex
	sent    []sentRequest
	respond func(sentRequest) (transport.Response, error)
}

func (r *recorder) Send(_ context.Context, method, url string, body []byte, header http.Header) (transport.Response, error) {
	req := sentRequest{Method: method, URL: url, Body: body, Header: header.Clone()}

	r.mu.Lock()
	r.sent = append(r.sent, req)
	respond := r.respond
	r.mu.Unlock()

	if respond != nil {
		return respond(req)
	}
	return apiResponse(req), nil
}

func (r *recorder) Requests() []sentRequest {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]sentRequest(nil), r.sent...)
}

func (r *recorder) RequestsTo(path string) []sentRequest {
	var out []sentRequest
	for _, req := range r.Requests() {
		if strings.HasSuffix(req.URL, path) {
			out = append(out, req)
		}
	}
	return out
}

func apiResponse(req sentRequest) transport.Response {
	switch {
	case strings.HasSuffix(req.URL, "/events"):
		return transport.Response{StatusCode: http.StatusAccepted, Body: []byte(`{"accepted":1,"events":[{"id":"evt_123"}]}`)}
	case strings.HasSuffix(req.URL, "/conversions"):
		return transport.Response{StatusCode: http.StatusCreated, Body: []byte(`{"conversion":{"id":"conv_456"},"attribution":{"model":"last_touch","channel":"organic"}}`)}
	case strings.HasSuffix(req.URL, "/validate"):
		return transport.Response{StatusCode: http.StatusOK, Body: []byte(`{"valid":true}`)}
	default:
		return transport.Response{StatusCode: http.StatusOK, Body: []byte(`{"success":true}`)}
	}
}

func testConfig() mbuzz.Config {
	cfg := mbuzz.DefaultConfig()
	cfg.APIKey = testAPIKey
	cfg.APIURL = "https://api.mbuzz.test/v1"
	return cfg
}

func newTestClient(t *testing.T, rec *recorder, opts ...mbuzz.Option) *mbuzz.Client {
	t.Helper()
	return newTestClientWith(t, testConfig(), rec, opts...)
}

func newTestClientWith(t *testing.T, cfg mbuzz.Config, rec *recorder, opts ...mbuzz.Option) *mbuzz.Client {
	t.Helper()
	base := []mbuzz.Option{
		mbuzz.WithTransport(rec),
		mbuzz.WithClock(func() time.Time { return fixedNow }),
	}
	client, err := mbuzz.New(cfg, append(base, opts...)...)
	require.NoError(t, err)
	return client
}

func browserRequest(visitorID string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "https://shop.example/products?utm_source=news", nil)
	r.Header.Set("Referer", "https://google.com/")
	r.Header.Set("User-Agent", "Mozilla/5.0")
	r.RemoteAddr = "203.0.113.7:51234"
	if visitorID != "" {
		r.AddCookie(&http.Cookie{Name: mbuzz.VisitorCookieName, Value: visitorID})
	}
	return r
}

// visitorContext returns a context carrying a Visitor initialized from a
// browser request, plus the cookie store behind it.
func visitorContext(visitorID string) (context.Context, *mbuzz.Visitor, *cookie.MemoryStore) {
	initial := map[string]string{}
	if visitorID != "" {
		initial[mbuzz.VisitorCookieName] = visitorID
	}
	store := cookie.NewMemoryStore(initial)
	v := mbuzz.NewVisitor()
	v.Initialize(store, browserRequest(""))
	return mbuzz.WithVisitor(context.Background(), v), v, store
}

func navigationHeaders() http.Header {
	h := http.Header{}
	h.Set("Sec-Fetch-Mode", "navigate")
	h.Set("Sec-Fetch-Dest", "document")
	return h
}
