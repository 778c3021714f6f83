package logger_test

import (
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbuzz/mbuzz-go/pkg/logger"
)

func TestGroup(t *testing.T) {
	attr := logger.Group("req", slog.String("id", "1"), slog.Int("n", 2))
	require.Equal(t, "req", attr.Key)
	require.Equal(t, slog.KindGroup, attr.Value.Kind())
	g := attr.Value.Group()
	require.Len(t, g, 2)
	assert.Equal(t, "id", g[0].Key)
	assert.Equal(t, "n", g[1].Key)
}

func TestErrors(t *testing.T) {
	err1 := errors.New("first")
	err2 := errors.New("second")

	attr := logger.Errors(err1, nil, err2)
	require.Equal(t, "errors", attr.Key)
	g := attr.Value.Group()
	require.Len(t, g, 2)
	assert.Equal(t, err1, g[0].Value.Any())
	assert.Equal(t, err2, g[1].Value.Any())

	assert.True(t, logger.Errors(nil).Equal(slog.Attr{}))
}

func TestError(t *testing.T) {
	err := errors.New("boom")
	attr := logger.Error(err)
	require.Equal(t, "error", attr.Key)
	assert.Equal(t, err, attr.Value.Any())

	assert.True(t, logger.Error(nil).Equal(slog.Attr{}))
}

func TestOptionalIdentifiers(t *testing.T) {
	tests := []struct {
		name string
		fn   func(string) slog.Attr
		key  string
	}{
		{"visitor", logger.VisitorID, "visitor_id"},
		{"user", logger.UserID, "user_id"},
		{"session", logger.SessionID, "session_id"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			attr := tt.fn("abc")
			assert.Equal(t, tt.key, attr.Key)
			assert.Equal(t, "abc", attr.Value.String())
			assert.True(t, tt.fn("").Equal(slog.Attr{}))
		})
	}
}

func TestRequestAttrs(t *testing.T) {
	assert.Equal(t, "POST https://mbuzz.co/api/v1/events", logger.Endpoint("POST", "https://mbuzz.co/api/v1/events").Value.String())
	assert.Equal(t, int64(201), logger.Status(201).Value.Int64())
	assert.Equal(t, "missing_identifier", logger.Reason("missing_identifier").Value.String())
	assert.Equal(t, `{"a":1}`, logger.Payload([]byte(`{"a":1}`)).Value.String())
	assert.Equal(t, time.Second, logger.Duration(time.Second).Value.Duration())
	assert.Equal(t, "event_type", logger.EventType("signup").Key)
	assert.Equal(t, "component", logger.Component("mbuzz").Key)
	assert.Equal(t, "/health", logger.Path("/health").Value.String())
}
