// Package logger builds the *slog.Logger used by mbuzz and its demo service.
//
// New assembles a text or JSON slog handler from functional options and wraps
// it in LogHandlerDecorator, which injects attributes pulled from the
// context.Context of each *Context logging call (for example the visitor id
// of the current request).
//
// Helper constructors in attr.go keep attribute names consistent across the
// SDK. Helpers for optional values return an empty slog.Attr when the value is
// missing, so they can be passed unconditionally:
//
//	log := logger.New(logger.WithDebug(cfg.Debug), logger.WithAttr(logger.Component("mbuzz")))
//	log.DebugContext(ctx, "request",
//	    logger.Endpoint(http.MethodPost, url),
//	    logger.VisitorID(visitorID),
//	    logger.Error(err),
//	)
//
// The SDK writes to stderr by default and never logs unless debug mode is on,
// apart from configuration problems surfaced at startup.
package logger
