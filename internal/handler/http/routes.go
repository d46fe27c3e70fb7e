package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer, h.withTraceID, h.withLogging, h.withMetrics)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Get("/api/version", h.getServerVersion)
		r.Handle("/metrics", h.metrics.Handler())
	})

	// routes authorized by a platform token; auth is attached per route so
	// that unknown paths and methods are answered before authorization
	authorized := func(r chi.Router) chi.Router {
		return r.With(h.platformAuth, middleware.AllowContentType("application/json"))
	}

	router.Route("/api/wallets", func(r chi.Router) {
		r = authorized(r)
		r.Post("/", h.createWallet)
		r.Post("/recover", h.recoverWallet)
		r.Get("/balance", h.getWalletBalance)
		r.Post("/{walletID}/sign", h.signTransaction)
		r.Post("/{walletID}/convert", h.convertFromWallet)
	})

	authorized(router).Post("/api/conversions/estimate", h.estimateConversion)

	router.NotFound(notFound)
	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
