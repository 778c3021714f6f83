package clientip

import "net/http"

// Middleware creates HTTP middleware that extracts and stores client IP in context
func Middleware(next http.Handler) http.Handler {
	return MiddlewareWith(defaultExtractor)(next)
}

// MiddlewareWith is Middleware using a custom Extractor.
func MiddlewareWith(e *Extractor) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := SetIPToContext(r.Context(), e.GetIP(r))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
