package mbuzz

import (
	"net/http"

	"github.com/mbuzz/mbuzz-go/pkg/identifier"
	"github.com/mbuzz/mbuzz-go/pkg/logger"
)

// Middleware attaches a Visitor to every tracked request and starts a session
// for real page navigations. It works with net/http and any router that
// accepts func(http.Handler) http.Handler, such as chi.
//
// Requests are passed through untouched when the client is disabled or the
// path matches a skip path or extension. Session creation never blocks the
// request.
func Middleware(c *Client) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !c.cfg.IsEnabled() || c.cfg.ShouldSkipPath(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			ctx := r.Context()
			v := NewVisitor()
			v.Initialize(c.cookies.Bind(w, r), r)

			if v.VisitorID() == "" && c.cfg.EstablishVisitors && c.classifier.IsNavigation(r.Header) {
				if err := v.Establish(identifier.RandomID()); err != nil {
					c.debug(ctx, "mbuzz: persisting visitor id failed", logger.Path(r.URL.Path), logger.Error(err))
				}
			}

			c.MaybeCreateSession(ctx, v, r.Header, c.now())

			next.ServeHTTP(w, r.WithContext(WithVisitor(ctx, v)))
		})
	}
}
