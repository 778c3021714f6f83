package fingerprint

import "context"

type fingerprintContextKey struct{}

// SetFingerprintToContext stores the device fingerprint computed by Middleware.
func SetFingerprintToContext(ctx context.Context, fingerprint string) context.Context {
	return context.WithValue(ctx, fingerprintContextKey{}, fingerprint)
}

// GetFingerprintFromContext returns the stored fingerprint, or "" when
// Middleware did not run.
func GetFingerprintFromContext(ctx context.Context) string {
	fingerprint, _ := ctx.Value(fingerprintContextKey{}).(string)
	return fingerprint
}
