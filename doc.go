// Package mbuzz is a server-side client for the mbuzz analytics API.
//
// It resolves a durable visitor identity from the _mbuzz_vid cookie, captures
// request facts (url, referrer, client IP, user agent), starts sessions for
// real page navigations, and reports events, conversions and identities.
//
// # Setup
//
//	cfg := mbuzz.DefaultConfig()
//	cfg.APIKey = os.Getenv("MBUZZ_API_KEY")
//
//	client, err := mbuzz.New(cfg, mbuzz.WithLogger(log))
//	if err != nil {
//		return err // configuration errors are the only errors returned
//	}
//
//	r := chi.NewRouter()
//	r.Use(mbuzz.Middleware(client))
//
// Configuration can also come from the environment (MBUZZ_API_KEY,
// MBUZZ_API_URL, MBUZZ_ENABLED, MBUZZ_DEBUG, MBUZZ_TIMEOUT, MBUZZ_SKIP_PATHS,
// MBUZZ_SKIP_EXTENSIONS, MBUZZ_SESSION_ID_STRATEGY) through config.Load.
//
// # Tracking
//
// Inside a handler behind the middleware, the request context carries the
// Visitor:
//
//	if res, ok := client.Track(r.Context(), "add_to_cart", map[string]any{"sku": "A-1"}); ok {
//		log.Info("tracked", "event_id", res.EventID)
//	}
//
//	client.Convert(r.Context(), "purchase", mbuzz.Conversion{Revenue: mbuzz.Float64(49.99)})
//	client.Identify(r.Context(), "user_42", map[string]any{"plan": "pro"})
//
// Background jobs have no Visitor and pass identifiers explicitly:
//
//	client.Track(ctx, "invoice_paid", nil, mbuzz.WithVisitorID(visitorID))
//
// Tracking calls never return errors and never panic on delivery problems.
// They report ok=false when a required identifier is missing, the client is
// disabled, or the API call fails. Nothing is retried or batched.
//
// # Visitors and sessions
//
// A request without the visitor cookie gets no visitor id; the SDK does not
// mint identities from passive traffic unless Config.EstablishVisitors is set.
// An identity is persisted by Visitor.Establish or by Track with WithVisitorID.
//
// Sessions are created only for visitors with an identity and only when the
// navigation classifier accepts the request headers. The session POST runs
// asynchronously and its outcome is not observed by request handling.
package mbuzz
