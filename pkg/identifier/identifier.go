package identifier

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"strconv"

	"github.com/google/uuid"

	"github.com/mbuzz/mbuzz-go/pkg/fingerprint"
)

const (
	// DefaultBucketSeconds is the session time bucket (30 minutes).
	DefaultBucketSeconds int64 = 1800

	// Length of random and derived session identifiers in hex characters.
	Length = 64
)

// RandomID returns 64 lowercase hex characters read from crypto/rand.
func RandomID() string {
	var b [Length / 2]byte
	// crypto/rand.Read never returns an error and panics if the system
	// source is unavailable.
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}

// UUIDv4 returns a random RFC 4122 version 4 UUID in canonical form.
func UUIDv4() string {
	return uuid.New().String()
}

// DeterministicSessionID derives a session id for a visitor that already has
// an identity cookie. It uses the default 30-minute bucket.
func DeterministicSessionID(visitorID string, timestamp int64) string {
	return DeterministicSessionIDWithBucket(visitorID, timestamp, DefaultBucketSeconds)
}

// DeterministicSessionIDWithBucket is DeterministicSessionID with a custom
// bucket size. Non-positive buckets fall back to DefaultBucketSeconds.
func DeterministicSessionIDWithBucket(visitorID string, timestamp, bucketSeconds int64) string {
	return bucketHash(visitorID, timestamp, bucketSeconds)
}

// FingerprintSessionID derives a session id from the device fingerprint for
// visitors without an identity cookie. It uses the default 30-minute bucket.
func FingerprintSessionID(ip, userAgent string, timestamp int64) string {
	return FingerprintSessionIDWithBucket(ip, userAgent, timestamp, DefaultBucketSeconds)
}

// FingerprintSessionIDWithBucket is FingerprintSessionID with a custom bucket size.
func FingerprintSessionIDWithBucket(ip, userAgent string, timestamp, bucketSeconds int64) string {
	return bucketHash(fingerprint.Compute(ip, userAgent), timestamp, bucketSeconds)
}

// Bucket returns floor(timestamp / bucketSeconds).
func Bucket(timestamp, bucketSeconds int64) int64 {
	if bucketSeconds <= 0 {
		bucketSeconds = DefaultBucketSeconds
	}
	b := timestamp / bucketSeconds
	// Go division truncates toward zero; floor for pre-epoch timestamps
	if timestamp%bucketSeconds != 0 && timestamp < 0 {
		b--
	}
	return b
}

func bucketHash(key string, timestamp, bucketSeconds int64) string {
	raw := key + "_" + strconv.FormatInt(Bucket(timestamp, bucketSeconds), 10)
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
