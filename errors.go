package mbuzz

import "errors"

// Configuration errors are returned by New and Config.Validate, always joined
// with ErrInvalidConfig. They are the only errors the SDK surfaces; delivery
// and validation failures become false results instead.
var (
	ErrInvalidConfig            = errors.New("mbuzz: invalid configuration")
	ErrMissingAPIKey            = errors.New("mbuzz: api key is required")
	ErrInvalidAPIURL            = errors.New("mbuzz: api url must be an absolute http or https URL")
	ErrInvalidTimeout           = errors.New("mbuzz: timeout must not be negative")
	ErrInvalidSessionIDStrategy = errors.New("mbuzz: unknown session id strategy")
)

// ErrEmptyVisitorID is returned by Visitor.Establish for an empty identifier.
var ErrEmptyVisitorID = errors.New("mbuzz: visitor id is empty")
