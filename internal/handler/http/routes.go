package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(withGZip)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/auth/register", h.register)
		r.Post("/api/auth/login", h.login)
	})

	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Route("/api/groups", func(r chi.Router) {
			r.Post("/", h.createGroup)
			r.Get("/{groupID}", h.getGroup)
			r.Post("/{groupID}/join", h.joinGroup)
			r.Post("/{groupID}/leave", h.leaveGroup)
		})

		r.Route("/api/transactions", func(r chi.Router) {
			r.Post("/", h.createTransaction)
			r.Get("/{transactionID}", h.getTransaction)
			r.Patch("/{transactionID}", h.updateTransaction)
			r.Delete("/{transactionID}", h.deleteTransaction)
		})

		r.Route("/api/sync/{groupID}", func(r chi.Router) {
			r.Get("/changelog", h.getChangelog)
			r.Get("/pending", h.getPending)
			r.Get("/reconcile", h.getReconcileFeed)
		})
	})

	router.Handle("/metrics", promhttp.Handler())

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
