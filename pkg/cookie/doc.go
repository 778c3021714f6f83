// Package cookie reads and writes the HTTP cookies mbuzz uses to persist
// visitor identity.
//
// A Manager carries default cookie attributes (Path "/", HttpOnly,
// SameSite=Lax unless overridden). Bind attaches it to one request/response
// pair and returns an HTTPStore, which implements the Store interface and
// turns on the Secure attribute automatically for HTTPS requests (direct TLS,
// X-Forwarded-Proto: https, X-Forwarded-Ssl: on or port 443).
//
//	man := cookie.New()
//	store := man.Bind(w, r)
//	if id, ok := store.Get("_mbuzz_vid"); ok { ... }
//	_ = store.Set("_mbuzz_vid", id, cookie.WithMaxAge(63072000))
//
// MemoryStore is a Store for code paths without an HTTP exchange and records
// every write, which makes it convenient in tests.
//
// # Configuration
//
// Config carries env and yaml tags so it can be loaded with pkg/config:
//
//	cfg := cookie.DefaultConfig()
//	_ = config.Load(&cfg)
//	man := cookie.NewFromConfig(cfg)
//
// Values are stored as-is; cookies hold opaque identifiers, not secrets.
package cookie
