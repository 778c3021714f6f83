package clientip

import (
	"net"
	"net/http"
	"strings"
)

// Standard proxy headers consulted by GetIP, in priority order.
const (
	HeaderForwardedFor = "X-Forwarded-For"
	HeaderRealIP       = "X-Real-IP"
)

// DefaultHeaders is the header chain used by GetIP.
var DefaultHeaders = []string{HeaderForwardedFor, HeaderRealIP}

// Extractor resolves the client IP from a configurable list of proxy headers
// before falling back to the connection address.
type Extractor struct {
	headers []string
}

// NewExtractor creates an Extractor that checks headers in the given order.
// With no headers it uses DefaultHeaders. Deployments behind a CDN can put
// their trusted header first, e.g. NewExtractor("CF-Connecting-IP", HeaderForwardedFor, HeaderRealIP).
func NewExtractor(headers ...string) *Extractor {
	if len(headers) == 0 {
		headers = DefaultHeaders
	}
	return &Extractor{headers: headers}
}

var defaultExtractor = NewExtractor()

// GetIP returns the client's IP address from HTTP request.
// Priority order:
// 1. X-Forwarded-For (first entry of the list only)
// 2. X-Real-IP
// 3. RemoteAddr
//
// An empty string is returned when none of them holds a valid address.
func GetIP(r *http.Request) string {
	return defaultExtractor.GetIP(r)
}

// GetIP resolves the client IP using the extractor's header chain.
func (e *Extractor) GetIP(r *http.Request) string {
	for _, name := range e.headers {
		value := r.Header.Get(name)
		if value == "" {
			continue
		}
		// List-valued headers carry the originating client first; later
		// entries are proxy hops and never stand in for it.
		first, _, _ := strings.Cut(value, ",")
		if parsed := parseIP(first); parsed != "" {
			return parsed
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		// RemoteAddr without a port
		return parseIP(r.RemoteAddr)
	}
	return parseIP(host)
}

// parseIP validates and normalizes an IP address string.
// Returns empty string if the IP is invalid.
func parseIP(ipStr string) string {
	ipStr = strings.TrimSpace(ipStr)
	if ipStr == "" {
		return ""
	}

	ip := net.ParseIP(ipStr)
	if ip == nil {
		return ""
	}
	return ip.String()
}
