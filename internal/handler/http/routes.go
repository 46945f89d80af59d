// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Init builds the router. Every response, errors included, goes through
// trace id, access log and password policy header middleware.
func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.RealIP)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(h.withPasswordPolicyHeaders)
	router.Use(middleware.Recoverer)
	if h.requestTimeout > 0 {
		router.Use(middleware.Timeout(h.requestTimeout))
	}

	router.NotFound(h.notFound)
	router.MethodNotAllowed(h.methodNotAllowed)

	router.Handle("/metrics", promhttp.Handler())
	router.Get("/api/version", h.getServerVersion)

	router.Route("/api/auth", func(r chi.Router) {
		// routes without authorization
		r.Get("/password-requirements", h.passwordRequirements)
		r.Post("/register", h.register)
		r.Post("/login", h.login)

		// routes with authorization
		r.Group(func(r chi.Router) {
			r.Use(h.auth)

			r.Post("/change-password", h.changePassword)
			r.Get("/protected", h.protected)
			r.Get("/check-auth", h.checkAuth)
		})
	})

	return router
}
