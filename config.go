package mbuzz

import (
	"errors"
	"net/url"
	"strings"
	"time"
)

const (
	DefaultAPIURL  = "https://mbuzz.co/api/v1"
	DefaultTimeout = 5 * time.Second

	// TestKeyPrefix marks API keys that write to the test environment.
	TestKeyPrefix = "sk_test_"
)

// SessionIDStrategy selects how MaybeCreateSession derives session identifiers.
type SessionIDStrategy string

const (
	// SessionIDRandom uses a random UUID v4 per session.
	SessionIDRandom SessionIDStrategy = "random"
	// SessionIDDeterministic hashes the visitor id with a 30 minute time bucket,
	// so independent processes agree on the id.
	SessionIDDeterministic SessionIDStrategy = "deterministic"
	// SessionIDFingerprint hashes the device fingerprint with a 30 minute time bucket.
	SessionIDFingerprint SessionIDStrategy = "fingerprint"
)

// DefaultSkipPaths are path prefixes that never get tracked.
var DefaultSkipPaths = []string{
	"/health",
	"/healthz",
	"/ping",
	"/up",
	"/favicon.ico",
	"/robots.txt",
}

// DefaultSkipExtensions are static asset suffixes that never get tracked.
var DefaultSkipExtensions = []string{
	".js", ".css", ".map",
	".png", ".jpg", ".jpeg", ".gif", ".ico", ".svg", ".webp",
	".woff", ".woff2", ".ttf", ".eot",
}

// Config configures a Client. It can be filled from the environment with
// config.Load or from YAML with config.LoadFile.
//
// A nil Enabled means enabled; set it with Bool(false) to turn tracking off.
type Config struct {
	APIKey  string        `env:"MBUZZ_API_KEY" yaml:"api_key"`
	APIURL  string        `env:"MBUZZ_API_URL" envDefault:"https://mbuzz.co/api/v1" yaml:"api_url"`
	Enabled *bool         `env:"MBUZZ_ENABLED" yaml:"enabled"`
	Debug   bool          `env:"MBUZZ_DEBUG" envDefault:"false" yaml:"debug"`
	Timeout time.Duration `env:"MBUZZ_TIMEOUT" envDefault:"5s" yaml:"timeout"`

	// Extra entries, merged with DefaultSkipPaths and DefaultSkipExtensions.
	SkipPaths      []string `env:"MBUZZ_SKIP_PATHS" envSeparator:"," yaml:"skip_paths"`
	SkipExtensions []string `env:"MBUZZ_SKIP_EXTENSIONS" envSeparator:"," yaml:"skip_extensions"`

	SessionIDStrategy SessionIDStrategy `env:"MBUZZ_SESSION_ID_STRATEGY" envDefault:"random" yaml:"session_id_strategy"`

	// EstablishVisitors lets the middleware mint and persist a visitor id on
	// navigation requests that arrive without one.
	EstablishVisitors bool `env:"MBUZZ_ESTABLISH_VISITORS" envDefault:"false" yaml:"establish_visitors"`
}

// DefaultConfig returns a Config with every default applied except the API key.
func DefaultConfig() Config {
	return Config{
		APIURL:            DefaultAPIURL,
		Enabled:           Bool(true),
		Timeout:           DefaultTimeout,
		SessionIDStrategy: SessionIDRandom,
	}
}

// Validate reports every configuration problem at once.
func (c Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.APIKey) == "" {
		errs = append(errs, ErrMissingAPIKey)
	}
	if c.APIURL != "" {
		u, err := url.Parse(c.APIURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			errs = append(errs, ErrInvalidAPIURL)
		}
	}
	if c.Timeout < 0 {
		errs = append(errs, ErrInvalidTimeout)
	}
	switch c.SessionIDStrategy {
	case "", SessionIDRandom, SessionIDDeterministic, SessionIDFingerprint:
	default:
		errs = append(errs, ErrInvalidSessionIDStrategy)
	}

	if len(errs) == 0 {
		return nil
	}
	return errors.Join(append([]error{ErrInvalidConfig}, errs...)...)
}

// IsEnabled reports whether tracking is on. Unset means on.
func (c Config) IsEnabled() bool {
	return c.Enabled == nil || *c.Enabled
}

// Bool returns a pointer to v, for Config.Enabled.
func Bool(v bool) *bool {
	return &v
}

// IsTestKey reports whether the API key targets the test environment.
func (c Config) IsTestKey() bool {
	return strings.HasPrefix(c.APIKey, TestKeyPrefix)
}

// ShouldSkipPath reports whether a request path bypasses tracking: it starts
// with a skip path or ends with a skip extension.
func (c Config) ShouldSkipPath(path string) bool {
	for _, list := range [][]string{DefaultSkipPaths, c.SkipPaths} {
		for _, prefix := range list {
			if prefix != "" && strings.HasPrefix(path, prefix) {
				return true
			}
		}
	}
	for _, list := range [][]string{DefaultSkipExtensions, c.SkipExtensions} {
		for _, ext := range list {
			if ext != "" && strings.HasSuffix(path, ext) {
				return true
			}
		}
	}
	return false
}

// withDefaults fills unset values and normalizes the rest.
func (c Config) withDefaults() Config {
	c.APIKey = strings.TrimSpace(c.APIKey)
	c.APIURL = strings.TrimRight(strings.TrimSpace(c.APIURL), "/")
	if c.APIURL == "" {
		c.APIURL = DefaultAPIURL
	}
	c.Enabled = Bool(c.IsEnabled())
	if c.Timeout == 0 {
		c.Timeout = DefaultTimeout
	}
	if c.SessionIDStrategy == "" {
		c.SessionIDStrategy = SessionIDRandom
	}
	c.SkipPaths = cleanList(c.SkipPaths, "")
	c.SkipExtensions = cleanList(c.SkipExtensions, ".")
	return c
}

// cleanList trims entries, drops empty ones and ensures the given prefix.
func cleanList(list []string, prefix string) []string {
	if len(list) == 0 {
		return nil
	}
	out := make([]string, 0, len(list))
	for _, s := range list {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if prefix != "" && !strings.HasPrefix(s, prefix) {
			s = prefix + s
		}
		out = append(out, s)
	}
	return out
}
