// Package fingerprint derives the mbuzz device fingerprint from a client IP
// address and User-Agent string.
//
// The fingerprint is SHA-256 over "ip|userAgent", truncated to the first 16
// bytes and hex-encoded, giving a 32-character lowercase string. The server and
// every mbuzz SDK compute it the same way, so a fingerprint produced here can be
// correlated with one computed anywhere else:
//
//	fingerprint.Compute("127.0.0.1", "Mozilla/5.0") // "ea687534a507e203bdef87cee3cc60c5"
//
// Generate extracts the inputs from an *http.Request using the sibling clientip
// package and substitutes "unknown" for absent values. Middleware places the
// value in the request context for GetFingerprintFromContext.
package fingerprint
