package transport

import "errors"

// Transport failures. The mbuzz client never returns them to its callers;
// they are logged in debug mode and turned into a false result.
var (
	ErrRequestFailed    = errors.New("transport: request failed")
	ErrTimeout          = errors.New("transport: request timeout")
	ErrUnexpectedStatus = errors.New("transport: unexpected status")
	ErrInvalidURL       = errors.New("transport: invalid URL")
)
