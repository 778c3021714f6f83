package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
	"net/http"

	"github.com/mbuzz/mbuzz-go/pkg/clientip"
)

// Length is the number of hex characters in a device fingerprint.
const Length = 32

// Unknown substitutes for a missing IP or User-Agent.
const Unknown = "unknown"

// Compute returns the device fingerprint for the given IP and User-Agent:
// the first 32 hex characters of SHA-256(ip + "|" + userAgent).
// The same inputs produce the same output in every mbuzz SDK.
func Compute(ip, userAgent string) string {
	hash := sha256.Sum256([]byte(ip + "|" + userAgent))
	return hex.EncodeToString(hash[:Length/2])
}

// ComputeOrUnknown is Compute with Unknown substituted for an empty IP or
// User-Agent.
func ComputeOrUnknown(ip, userAgent string) string {
	return Compute(orUnknown(ip), orUnknown(userAgent))
}

// Generate computes the fingerprint of the request's client IP and User-Agent.
// Missing values are replaced with Unknown.
func Generate(r *http.Request) string {
	return ComputeOrUnknown(clientip.GetIP(r), r.UserAgent())
}

func orUnknown(s string) string {
	if s == "" {
		return Unknown
	}
	return s
}
