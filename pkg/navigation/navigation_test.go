package navigation_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mbuzz/mbuzz-go/pkg/navigation"
)

func headers(kv ...string) http.Header {
	h := make(http.Header)
	for i := 0; i+1 < len(kv); i += 2 {
		h.Set(kv[i], kv[i+1])
	}
	return h
}

func TestIsNavigation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		headers http.Header
		want    bool
	}{
		// Fetch Metadata present
		{"real navigation", headers("Sec-Fetch-Mode", "navigate", "Sec-Fetch-Dest", "document"), true},
		{"user activated navigation", headers("Sec-Fetch-Mode", "navigate", "Sec-Fetch-Dest", "document", "Sec-Fetch-User", "?1"), true},
		{"prefetch", headers("Sec-Fetch-Mode", "navigate", "Sec-Fetch-Dest", "document", "Sec-Purpose", "prefetch"), false},
		{"prerender", headers("Sec-Fetch-Mode", "navigate", "Sec-Fetch-Dest", "document", "Sec-Purpose", "prefetch;prerender"), false},
		{"legacy purpose prefetch", headers("Sec-Fetch-Mode", "navigate", "Sec-Fetch-Dest", "document", "Purpose", "prefetch"), false},
		{"legacy purpose preview", headers("Sec-Fetch-Mode", "navigate", "Sec-Fetch-Dest", "document", "Purpose", "preview"), false},
		{"iframe", headers("Sec-Fetch-Mode", "navigate", "Sec-Fetch-Dest", "iframe"), false},
		{"fetch xhr", headers("Sec-Fetch-Mode", "cors", "Sec-Fetch-Dest", "empty"), false},
		{"turbo frame with fetch metadata", headers("Sec-Fetch-Mode", "same-origin", "Sec-Fetch-Dest", "empty", "Turbo-Frame", "content_frame"), false},
		{"htmx with fetch metadata", headers("Sec-Fetch-Mode", "same-origin", "Sec-Fetch-Dest", "empty", "HX-Request", "true"), false},
		{"mode without dest", headers("Sec-Fetch-Mode", "navigate"), false},
		{"fetch metadata wins over absent markers", headers("Sec-Fetch-Mode", "no-cors", "Sec-Fetch-Dest", "image"), false},
		{"fetch metadata is authoritative over markers", headers("Sec-Fetch-Mode", "navigate", "Sec-Fetch-Dest", "document", "X-Requested-With", "XMLHttpRequest"), true},

		// legacy fallback
		{"no headers", http.Header{}, true},
		{"nil headers", nil, true},
		{"turbo frame", headers("Turbo-Frame", "lazy_banner"), false},
		{"htmx", headers("HX-Request", "true"), false},
		{"unpoly", headers("X-Up-Version", "3.0.0"), false},
		{"xhr", headers("X-Requested-With", "XMLHttpRequest"), false},
		{"xhr lowercase", headers("X-Requested-With", "xmlhttprequest"), false},
		{"other requested-with", headers("X-Requested-With", "com.example.app"), true},
		{"unrelated headers", headers("Accept", "text/html", "User-Agent", "curl/8.0"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, navigation.IsNavigation(tt.headers))
		})
	}
}

func TestClassifier_Options(t *testing.T) {
	t.Parallel()

	t.Run("custom marker extends denylist", func(t *testing.T) {
		t.Parallel()
		c := navigation.New(navigation.WithMarker("X-Inertia", ""))

		assert.False(t, c.IsNavigation(headers("X-Inertia", "true")))
		assert.False(t, c.IsNavigation(headers("Turbo-Frame", "x")), "defaults remain")
		assert.True(t, navigation.IsNavigation(headers("X-Inertia", "true")), "default classifier unaffected")
	})

	t.Run("value matched marker", func(t *testing.T) {
		t.Parallel()
		c := navigation.New(navigation.WithMarkers(navigation.Marker{Header: "X-Fragment", Value: "yes"}))

		assert.False(t, c.IsNavigation(headers("X-Fragment", "YES")))
		assert.True(t, c.IsNavigation(headers("X-Fragment", "no")))
	})

	t.Run("without defaults", func(t *testing.T) {
		t.Parallel()
		c := navigation.New(navigation.WithoutDefaults(), navigation.WithMarker("X-Inertia", ""))

		assert.True(t, c.IsNavigation(headers("Turbo-Frame", "x")))
		assert.False(t, c.IsNavigation(headers("X-Inertia", "1")))
		assert.Len(t, c.Markers(), 1)
	})

	t.Run("empty header name ignored", func(t *testing.T) {
		t.Parallel()
		c := navigation.New(navigation.WithMarker("", "x"))
		assert.Len(t, c.Markers(), len(navigation.DefaultMarkers))
	})

	t.Run("does not mutate defaults", func(t *testing.T) {
		t.Parallel()
		_ = navigation.New(navigation.WithoutDefaults(), navigation.WithMarker("X-A", ""))
		assert.Len(t, navigation.DefaultMarkers, 4)
		assert.Equal(t, "Turbo-Frame", navigation.DefaultMarkers[0].Header)
	})
}
