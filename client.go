package mbuzz

import (
	"log/slog"
	"time"

	"github.com/mbuzz/mbuzz-go/pkg/cookie"
	"github.com/mbuzz/mbuzz-go/pkg/logger"
	"github.com/mbuzz/mbuzz-go/pkg/navigation"
	"github.com/mbuzz/mbuzz-go/pkg/transport"
)

// Client reports events, conversions, identities and sessions to mbuzz.
// It is immutable after New and safe for concurrent use. Per-request state
// lives in a Visitor, never in the Client.
type Client struct {
	cfg        Config
	transport  transport.Transport
	logger     *slog.Logger
	metrics    *Metrics
	classifier *navigation.Classifier
	cookies    *cookie.Manager
	now        func() time.Time
}

// Option configures a Client.
type Option func(*Client)

// WithTransport replaces the HTTP transport, typically with a test double.
func WithTransport(t transport.Transport) Option {
	return func(c *Client) {
		if t != nil {
			c.transport = t
		}
	}
}

// WithLogger sets the logger used for debug output. Request and response
// details are only logged when Config.Debug is true.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithMetrics records delivery metrics.
func WithMetrics(m *Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// WithClassifier replaces the navigation classifier, e.g. to add markers of
// a partial-page framework.
func WithClassifier(cl *navigation.Classifier) Option {
	return func(c *Client) {
		if cl != nil {
			c.classifier = cl
		}
	}
}

// WithCookieManager replaces the cookie defaults used by the middleware.
func WithCookieManager(m *cookie.Manager) Option {
	return func(c *Client) {
		if m != nil {
			c.cookies = m
		}
	}
}

// WithClock overrides the time source for timestamps and session buckets.
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		if now != nil {
			c.now = now
		}
	}
}

// New validates the configuration and creates a Client. Configuration
// problems are the only errors it returns.
func New(cfg Config, opts ...Option) (*Client, error) {
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Client{
		cfg:        cfg,
		classifier: navigation.New(),
		cookies:    cookie.New(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.logger == nil {
		if cfg.Debug {
			c.logger = logger.New(logger.WithDebug(true), logger.WithTextFormatter())
		} else {
			c.logger = logger.Discard()
		}
	}
	c.logger = c.logger.With(logger.Component("mbuzz"))

	if c.transport == nil {
		c.transport = transport.NewHTTP(transport.WithTimeout(cfg.Timeout))
	}

	return c, nil
}

// Config returns the normalized configuration.
func (c *Client) Config() Config {
	cfg := c.cfg
	cfg.Enabled = Bool(c.cfg.IsEnabled())
	return cfg
}

// Enabled reports whether the client sends anything at all.
func (c *Client) Enabled() bool {
	return c.cfg.IsEnabled()
}

// IsTestKey reports whether the client writes to the test environment.
func (c *Client) IsTestKey() bool {
	return c.cfg.IsTestKey()
}

// Classifier returns the navigation classifier used for session creation.
func (c *Client) Classifier() *navigation.Classifier {
	return c.classifier
}
