package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbuzz/mbuzz-go"
	"github.com/mbuzz/mbuzz-go/pkg/logger"
	"github.com/mbuzz/mbuzz-go/pkg/transport"
)

type capture struct {
	mu   sync.Mutex
	urls []string
}

func (c *capture) send(_ context.Context, _, url string, _ []byte, _ http.Header) (transport.Response, error) {
	c.mu.Lock()
	c.urls = append(c.urls, url)
	c.mu.Unlock()
	switch {
	case strings.HasSuffix(url, "/events"):
		return transport.Response{StatusCode: http.StatusAccepted, Body: []byte(`{"events":[{"id":"e1"}]}`)}, nil
	case strings.HasSuffix(url, "/conversions"):
		return transport.Response{StatusCode: http.StatusCreated, Body: []byte(`{"conversion":{"id":"c1"}}`)}, nil
	}
	return transport.Response{StatusCode: http.StatusOK, Body: []byte(`{}`)}, nil
}

func (c *capture) count(suffix string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, u := range c.urls {
		if strings.HasSuffix(u, suffix) {
			n++
		}
	}
	return n
}

func newTestRouter(t *testing.T, c *capture) http.Handler {
	t.Helper()
	cfg := mbuzz.DefaultConfig()
	cfg.APIKey = "sk_test_demo"
	registry := prometheus.NewRegistry()
	client, err := mbuzz.New(cfg,
		mbuzz.WithTransport(transport.Func(c.send)),
		mbuzz.WithMetrics(mbuzz.NewMetrics(registry)),
	)
	require.NoError(t, err)
	return newRouter(client, registry, logger.Discard())
}

func TestRouter(t *testing.T) {
	t.Parallel()

	t.Run("home tracks page view for known visitors", func(t *testing.T) {
		t.Parallel()
		c := &capture{}
		router := newTestRouter(t, c)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: mbuzz.VisitorCookieName, Value: "vid<script>"})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "vid&lt;script&gt;")
		assert.Equal(t, 1, c.count("/events"))
	})

	t.Run("signup identifies and converts", func(t *testing.T) {
		t.Parallel()
		c := &capture{}
		router := newTestRouter(t, c)

		form := url.Values{"email": {"a@example.com"}}
		req := httptest.NewRequest(http.MethodPost, "/signup", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.Header.Set("Sec-Fetch-Mode", "cors")
		req.Header.Set("Sec-Fetch-Dest", "empty")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, 1, c.count("/identify"))
		assert.Equal(t, 1, c.count("/conversions"))
	})

	t.Run("signup requires email", func(t *testing.T) {
		t.Parallel()
		router := newTestRouter(t, &capture{})

		req := httptest.NewRequest(http.MethodPost, "/signup", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("health and metrics are not tracked", func(t *testing.T) {
		t.Parallel()
		c := &capture{}
		router := newTestRouter(t, c)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
		assert.Equal(t, "ok", w.Body.String())

		w = httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
		assert.Equal(t, http.StatusOK, w.Code)

		assert.Zero(t, c.count(""))
	})
}
