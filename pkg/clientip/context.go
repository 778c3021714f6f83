package clientip

import (
	"context"
)

type ipKey struct{}

// SetIPToContext stores the resolved client IP. Middleware calls it once per
// request so tracking code downstream reads the same address.
func SetIPToContext(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, ipKey{}, ip)
}

// GetIPFromContext returns the IP stored by SetIPToContext, or "" when the
// request did not pass through Middleware.
func GetIPFromContext(ctx context.Context) string {
	ip, _ := ctx.Value(ipKey{}).(string)
	return ip
}
