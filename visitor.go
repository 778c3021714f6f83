package mbuzz

import (
	"context"
	"maps"
	"net/http"

	"github.com/mbuzz/mbuzz-go/pkg/clientip"
	"github.com/mbuzz/mbuzz-go/pkg/cookie"
)

const (
	// VisitorCookieName holds the durable visitor identity.
	VisitorCookieName = "_mbuzz_vid"
	// VisitorCookieMaxAge is two years in seconds.
	VisitorCookieMaxAge = 63072000
)

// Visitor is the tracking state of one inbound request: the visitor identity
// read from the cookie store, the user id set by Identify, and facts captured
// from the request. A Visitor belongs to a single request and is not safe for
// concurrent mutation.
type Visitor struct {
	initialized bool
	store       cookie.Store

	visitorID string
	userID    string
	url       string
	referrer  string
	ip        string
	userAgent string
}

// NewVisitor returns an uninitialized Visitor.
func NewVisitor() *Visitor {
	return &Visitor{}
}

// Initialize reads the visitor cookie from store and captures request facts.
// Only the first call has an effect. It never writes a cookie: a request
// without one leaves the visitor id empty. Either argument may be nil.
func (v *Visitor) Initialize(store cookie.Store, r *http.Request) {
	if v.initialized {
		return
	}
	v.initialized = true
	v.store = store

	if store != nil {
		if id, ok := store.Get(VisitorCookieName); ok && id != "" {
			v.visitorID = id
		}
	}

	if r == nil {
		return
	}
	v.url = requestURL(r)
	v.referrer = r.Referer()
	v.userAgent = r.UserAgent()
	if ip := clientip.GetIPFromContext(r.Context()); ip != "" {
		v.ip = ip
	} else {
		v.ip = clientip.GetIP(r)
	}
}

// Initialized reports whether Initialize has run.
func (v *Visitor) Initialized() bool {
	return v.initialized
}

// Establish adopts id as the visitor identity and persists it in the cookie
// store, if there is one. The cookie lives for two years on path "/", HttpOnly
// and SameSite=Lax; HTTP stores add Secure on HTTPS requests.
func (v *Visitor) Establish(id string) error {
	if id == "" {
		return ErrEmptyVisitorID
	}
	v.visitorID = id
	if v.store == nil {
		return nil
	}
	return v.store.Set(VisitorCookieName, id,
		cookie.WithPath("/"),
		cookie.WithMaxAge(VisitorCookieMaxAge),
		cookie.WithHTTPOnly(true),
		cookie.WithSameSite(http.SameSiteLaxMode),
	)
}

// EnrichProperties returns a new map holding the request url and referrer
// merged with props. Keys present in props win. Empty context values are not
// added.
func (v *Visitor) EnrichProperties(props map[string]any) map[string]any {
	out := make(map[string]any, len(props)+2)
	if v.url != "" {
		out["url"] = v.url
	}
	if v.referrer != "" {
		out["referrer"] = v.referrer
	}
	maps.Copy(out, props)
	return out
}

func (v *Visitor) SetUserID(id string) {
	v.userID = id
}

func (v *Visitor) UserID() string    { return v.userID }
func (v *Visitor) VisitorID() string { return v.visitorID }
func (v *Visitor) URL() string       { return v.url }
func (v *Visitor) Referrer() string  { return v.referrer }
func (v *Visitor) IP() string        { return v.ip }
func (v *Visitor) UserAgent() string { return v.userAgent }

// SetURL overrides the captured url, for callers without an *http.Request.
func (v *Visitor) SetURL(url string) {
	v.url = url
}

// SetReferrer overrides the captured referrer.
func (v *Visitor) SetReferrer(referrer string) {
	v.referrer = referrer
}

// requestURL rebuilds the absolute url of r from scheme, host and request URI.
// It returns an empty string when the host is unknown.
func requestURL(r *http.Request) string {
	host := r.Host
	if host == "" && r.URL != nil {
		host = r.URL.Host
	}
	if host == "" {
		return ""
	}

	scheme := "http"
	if cookie.IsSecureRequest(r) {
		scheme = "https"
	}

	uri := "/"
	if r.URL != nil {
		if u := r.URL.RequestURI(); u != "" {
			uri = u
		}
	}
	return scheme + "://" + host + uri
}

type visitorContextKey struct{}

// WithVisitor returns a copy of ctx carrying v.
func WithVisitor(ctx context.Context, v *Visitor) context.Context {
	return context.WithValue(ctx, visitorContextKey{}, v)
}

// VisitorFromContext returns the Visitor stored by the middleware, or nil.
func VisitorFromContext(ctx context.Context) *Visitor {
	v, _ := ctx.Value(visitorContextKey{}).(*Visitor)
	return v
}
