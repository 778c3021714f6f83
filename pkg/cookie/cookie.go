package cookie

import (
	"errors"
	"net/http"
	"strings"
	"time"
)

// Store reads and writes cookies for a single request.
type Store interface {
	// Get returns the cookie value and whether it was present.
	Get(name string) (string, bool)
	Set(name, value string, opts ...Option) error
	Delete(name string)
}

// Manager holds cookie defaults shared by every request.
type Manager struct {
	defaults Options
}

// New creates a Manager. Defaults are Path "/", HttpOnly and SameSite=Lax.
func New(opts ...Option) *Manager {
	defaults := Options{
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	return &Manager{defaults: applyOptions(defaults, opts)}
}

// Defaults returns the manager's default options.
func (m *Manager) Defaults() Options {
	return m.defaults
}

func (m *Manager) Set(w http.ResponseWriter, name, value string, opts ...Option) error {
	if name == "" {
		return ErrInvalidName
	}
	options := applyOptions(m.defaults, opts)

	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     options.Path,
		Domain:   options.Domain,
		MaxAge:   options.MaxAge,
		Secure:   options.Secure,
		HttpOnly: options.HttpOnly,
		SameSite: options.SameSite,
	})
	return nil
}

func (m *Manager) Get(r *http.Request, name string) (string, error) {
	c, err := r.Cookie(name)
	if err != nil {
		if errors.Is(err, http.ErrNoCookie) {
			return "", ErrCookieNotFound
		}
		return "", err
	}
	return c.Value, nil
}

func (m *Manager) Delete(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     m.defaults.Path,
		Domain:   m.defaults.Domain,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: m.defaults.HttpOnly,
		SameSite: m.defaults.SameSite,
		Secure:   m.defaults.Secure,
	})
}

// Bind returns a Store for one request/response pair. The Secure attribute is
// set automatically when the request arrived over HTTPS.
func (m *Manager) Bind(w http.ResponseWriter, r *http.Request) *HTTPStore {
	secure := m.defaults.Secure || IsSecureRequest(r)
	return &HTTPStore{
		manager: m,
		w:       w,
		r:       r,
		secure:  secure,
		deleted: make(map[string]bool),
	}
}

// HTTPStore is a Store backed by an http.Request and http.ResponseWriter.
type HTTPStore struct {
	manager *Manager
	w       http.ResponseWriter
	r       *http.Request
	secure  bool
	// names deleted during this request read as absent
	deleted map[string]bool
}

func (s *HTTPStore) Get(name string) (string, bool) {
	if s.deleted[name] {
		return "", false
	}
	v, err := s.manager.Get(s.r, name)
	if err != nil {
		return "", false
	}
	return v, true
}

func (s *HTTPStore) Set(name, value string, opts ...Option) error {
	if s.secure {
		opts = append([]Option{WithSecure(true)}, opts...)
	}
	delete(s.deleted, name)
	return s.manager.Set(s.w, name, value, opts...)
}

func (s *HTTPStore) Delete(name string) {
	s.deleted[name] = true
	s.manager.Delete(s.w, name)
}

// Secure reports whether cookies written by this store get the Secure flag.
func (s *HTTPStore) Secure() bool {
	return s.secure
}

// IsSecureRequest reports whether the request reached the application over
// HTTPS, directly or through a TLS-terminating proxy.
func IsSecureRequest(r *http.Request) bool {
	if r.TLS != nil {
		return true
	}
	if strings.EqualFold(firstValue(r.Header.Get("X-Forwarded-Proto")), "https") {
		return true
	}
	if strings.EqualFold(r.Header.Get("X-Forwarded-Ssl"), "on") ||
		strings.EqualFold(r.Header.Get("Front-End-Https"), "on") {
		return true
	}
	if r.URL != nil && r.URL.Scheme == "https" {
		return true
	}
	return strings.HasSuffix(r.Host, ":443")
}

func firstValue(list string) string {
	first, _, _ := strings.Cut(list, ",")
	return strings.TrimSpace(first)
}
