package navigation

import (
	"net/http"
	"strings"
)

// Fetch Metadata request headers.
const (
	HeaderFetchMode = "Sec-Fetch-Mode"
	HeaderFetchDest = "Sec-Fetch-Dest"
	HeaderFetchUser = "Sec-Fetch-User"
	HeaderPurpose   = "Sec-Purpose"

	// legacy prefetch hint still sent by some browsers and proxies
	headerLegacyPurpose = "Purpose"

	modeNavigate = "navigate"
	destDocument = "document"
)

// Marker identifies a sub-request by header. An empty Value matches any
// request carrying the header; otherwise the value must match case-insensitively.
type Marker struct {
	Header string
	Value  string
}

func (m Marker) matches(h http.Header) bool {
	values := h.Values(m.Header)
	if len(values) == 0 {
		return false
	}
	if m.Value == "" {
		return true
	}
	for _, v := range values {
		if strings.EqualFold(strings.TrimSpace(v), m.Value) {
			return true
		}
	}
	return false
}

// DefaultMarkers lists the partial-request markers of common frameworks.
var DefaultMarkers = []Marker{
	{Header: "Turbo-Frame"},
	{Header: "HX-Request"},
	{Header: "X-Up-Version"},
	{Header: "X-Requested-With", Value: "XMLHttpRequest"},
}

// Classifier decides whether requests are navigations. The zero value is not
// usable; create one with New. A Classifier is immutable and safe for
// concurrent use.
type Classifier struct {
	markers []Marker
}

// Option configures a Classifier.
type Option func(*Classifier)

// WithMarker adds a partial-request marker to the fallback denylist.
func WithMarker(header, value string) Option {
	return func(c *Classifier) {
		if header != "" {
			c.markers = append(c.markers, Marker{Header: header, Value: value})
		}
	}
}

// WithMarkers adds several markers to the fallback denylist.
func WithMarkers(markers ...Marker) Option {
	return func(c *Classifier) {
		for _, m := range markers {
			WithMarker(m.Header, m.Value)(c)
		}
	}
}

// WithoutDefaults drops DefaultMarkers. Apply it before WithMarker.
func WithoutDefaults() Option {
	return func(c *Classifier) {
		c.markers = c.markers[:0]
	}
}

// New creates a Classifier seeded with DefaultMarkers.
func New(opts ...Option) *Classifier {
	c := &Classifier{markers: append([]Marker(nil), DefaultMarkers...)}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Markers returns a copy of the fallback denylist.
func (c *Classifier) Markers() []Marker {
	return append([]Marker(nil), c.markers...)
}

// IsNavigation reports whether the headers describe a real page navigation.
func (c *Classifier) IsNavigation(h http.Header) bool {
	if len(h.Values(HeaderFetchMode)) > 0 {
		return h.Get(HeaderFetchMode) == modeNavigate &&
			h.Get(HeaderFetchDest) == destDocument &&
			!isPrefetch(h)
	}

	for _, m := range c.markers {
		if m.matches(h) {
			return false
		}
	}
	return true
}

func isPrefetch(h http.Header) bool {
	if len(h.Values(HeaderPurpose)) > 0 {
		return true
	}
	purpose := strings.ToLower(h.Get(headerLegacyPurpose))
	return strings.Contains(purpose, "prefetch") || strings.Contains(purpose, "preview")
}

var defaultClassifier = New()

// IsNavigation classifies headers with the default denylist.
func IsNavigation(h http.Header) bool {
	return defaultClassifier.IsNavigation(h)
}
