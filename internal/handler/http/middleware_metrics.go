package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// withMetrics records request counts and latencies labelled by route
// pattern, so wallet ids never become label values.
func (h *Handler) withMetrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		done := h.metrics.RequestStarted()
		mw := &responseWriter{ResponseWriter: w}

		next.ServeHTTP(mw, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		done(r.Method, route, mw.statusCode())
	})
}
