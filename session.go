package mbuzz

import (
	"context"
	"net/http"
	"time"

	"github.com/mbuzz/mbuzz-go/pkg/async"
	"github.com/mbuzz/mbuzz-go/pkg/fingerprint"
	"github.com/mbuzz/mbuzz-go/pkg/identifier"
	"github.com/mbuzz/mbuzz-go/pkg/logger"
)

type sessionRecord struct {
	VisitorID         string  `json:"visitor_id"`
	SessionID         string  `json:"session_id"`
	URL               *string `json:"url"`
	Referrer          *string `json:"referrer"`
	DeviceFingerprint string  `json:"device_fingerprint"`
	UserAgent         *string `json:"user_agent"`
	StartedAt         string  `json:"started_at"`
}

type sessionPayload struct {
	Session sessionRecord `json:"session"`
}

// MaybeCreateSession records a new session when v has a visitor identity and
// headers describe a real page navigation. Otherwise it returns nil and makes
// no network call.
//
// The POST runs in its own goroutine, detached from ctx cancellation and
// bounded by the configured timeout. The returned future reports whether the
// API accepted the session; request handling is not expected to wait for it,
// and a failed or panicking dispatch never reaches the caller.
func (c *Client) MaybeCreateSession(ctx context.Context, v *Visitor, headers http.Header, now time.Time) *async.Future[bool] {
	if !c.cfg.IsEnabled() {
		return nil
	}
	if v == nil || v.VisitorID() == "" {
		c.metrics.observeSession(sessionNoVisitor)
		return nil
	}
	if !c.classifier.IsNavigation(headers) {
		c.metrics.observeSession(sessionNotNavigation)
		return nil
	}

	rec := sessionRecord{
		VisitorID:         v.VisitorID(),
		SessionID:         c.sessionID(v, now),
		URL:               nullable(v.URL()),
		Referrer:          nullable(v.Referrer()),
		DeviceFingerprint: fingerprint.ComputeOrUnknown(v.IP(), v.UserAgent()),
		UserAgent:         nullable(v.UserAgent()),
		StartedAt:         formatTimestamp(now),
	}
	c.metrics.observeSession(sessionDispatched)
	c.debug(ctx, "mbuzz: creating session", logger.VisitorID(rec.VisitorID), logger.SessionID(rec.SessionID))

	return async.Async(context.WithoutCancel(ctx), rec, func(ctx context.Context, rec sessionRecord) (bool, error) {
		ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
		defer cancel()
		return c.post(ctx, pathSessions, sessionPayload{Session: rec}), nil
	})
}

func (c *Client) sessionID(v *Visitor, now time.Time) string {
	switch c.cfg.SessionIDStrategy {
	case SessionIDDeterministic:
		return identifier.DeterministicSessionID(v.VisitorID(), now.Unix())
	case SessionIDFingerprint:
		return identifier.FingerprintSessionID(orUnknown(v.IP()), orUnknown(v.UserAgent()), now.Unix())
	default:
		return identifier.UUIDv4()
	}
}

// nullable maps an empty string to a JSON null.
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func orUnknown(s string) string {
	if s == "" {
		return fingerprint.Unknown
	}
	return s
}
