package clientip_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mbuzz/mbuzz-go/pkg/clientip"
)

func TestGetIP(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name       string
		headers    map[string]string
		remoteAddr string
		expected   string
	}{
		{
			name: "X-Forwarded-For first entry wins",
			headers: map[string]string{
				"X-Forwarded-For": "198.51.100.178, 203.0.113.195",
				"X-Real-IP":       "192.168.1.1",
			},
			remoteAddr: "10.0.0.1:54321",
			expected:   "198.51.100.178",
		},
		{
			name: "invalid first forwarded entry falls through to X-Real-IP",
			headers: map[string]string{
				"X-Forwarded-For": "garbage, 1.2.3.4",
				"X-Real-IP":       "192.168.1.1",
			},
			remoteAddr: "10.0.0.1:54321",
			expected:   "192.168.1.1",
		},
		{
			name: "proxy hops never replace the first forwarded entry",
			headers: map[string]string{
				"X-Forwarded-For": "unknown, 203.0.113.195",
			},
			remoteAddr: "10.0.0.1:54321",
			expected:   "10.0.0.1",
		},
		{
			name: "X-Real-IP when no forwarded header",
			headers: map[string]string{
				"X-Real-IP": "192.168.1.1",
			},
			remoteAddr: "10.0.0.1:54321",
			expected:   "192.168.1.1",
		},
		{
			name: "X-Real-IP when forwarded header is garbage",
			headers: map[string]string{
				"X-Forwarded-For": "not-an-ip",
				"X-Real-IP":       "192.168.1.1",
			},
			remoteAddr: "10.0.0.1:54321",
			expected:   "192.168.1.1",
		},
		{
			name:       "RemoteAddr fallback",
			remoteAddr: "10.0.0.1:54321",
			expected:   "10.0.0.1",
		},
		{
			name:       "RemoteAddr without port",
			remoteAddr: "10.0.0.2",
			expected:   "10.0.0.2",
		},
		{
			name:       "IPv6 RemoteAddr",
			remoteAddr: "[2001:db8::1]:443",
			expected:   "2001:db8::1",
		},
		{
			name:       "IPv6 is normalised",
			headers:    map[string]string{"X-Real-IP": "2001:0db8:0000:0000:0000:0000:0000:0001"},
			remoteAddr: "10.0.0.1:1",
			expected:   "2001:db8::1",
		},
		{
			name:       "nothing valid",
			remoteAddr: "garbage",
			expected:   "",
		},
		{
			name: "CF header is not trusted by default",
			headers: map[string]string{
				"CF-Connecting-IP": "203.0.113.195",
			},
			remoteAddr: "10.0.0.1:54321",
			expected:   "10.0.0.1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			assert.Equal(t, tt.expected, clientip.GetIP(req))
		})
	}
}

func TestExtractor_CustomHeaders(t *testing.T) {
	t.Parallel()

	e := clientip.NewExtractor("CF-Connecting-IP", clientip.HeaderForwardedFor)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.1:54321"
	req.Header.Set("CF-Connecting-IP", "203.0.113.195")
	req.Header.Set("X-Forwarded-For", "198.51.100.178")
	assert.Equal(t, "203.0.113.195", e.GetIP(req))

	req.Header.Del("CF-Connecting-IP")
	assert.Equal(t, "198.51.100.178", e.GetIP(req))

	// X-Real-IP is not part of this chain
	req.Header.Del("X-Forwarded-For")
	req.Header.Set("X-Real-IP", "192.168.1.1")
	assert.Equal(t, "10.0.0.1", e.GetIP(req))
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	var got string
	handler := clientip.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = clientip.GetIPFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.7")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, "203.0.113.7", got)
	assert.Empty(t, clientip.GetIPFromContext(context.Background()))
}
