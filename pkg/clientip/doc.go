// Package clientip extracts the originating client's IP address from an
// *http.Request when the application runs behind one or more reverse proxies.
//
// The default resolution order is:
//
//  1. X-Forwarded-For – comma-separated list, only the first entry counts
//  2. X-Real-IP       – set by reverse proxies such as Nginx
//  3. RemoteAddr      – TCP peer address as a fallback
//
// Every candidate is validated with net.ParseIP and normalised, so spoofed
// garbage never leaks into downstream fingerprints. Use NewExtractor to trust a
// different header chain (for example CF-Connecting-IP behind Cloudflare).
//
// # Usage
//
//	ip := clientip.GetIP(r)
//
//	// or as middleware
//	http.ListenAndServe(":8080", clientip.Middleware(mux))
//	// ... later
//	ip := clientip.GetIPFromContext(r.Context())
//
// GetIP never returns an error. If no valid address is found an empty string
// is returned so callers can decide how to proceed.
package clientip
