// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Init builds the router. Request timeout and compression apply to the
// REST routes only; the websocket endpoint lives as long as the device
// stays connected.
func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	router.Get("/notes", h.channel.ServeHTTP)

	router.Group(func(r chi.Router) {
		if h.cfg.RequestTimeout > 0 {
			r.Use(middleware.Timeout(h.cfg.RequestTimeout))
		}
		r.Use(middleware.Compress(5, "application/json"))

		// routes without authorization
		r.Group(func(r chi.Router) {
			r.Post("/api/auth/signup", h.signUp)
			r.Post("/api/auth/login", h.login)
			r.With(bearerOnly).Post("/api/auth/token/refresh", h.refresh)
			r.Get("/api/version", h.getServerVersion)
		})

		r.Group(func(r chi.Router) {
			r.Use(h.auth)

			r.Get("/api/auth/user", h.getUser)

			r.Route("/api/notes", func(r chi.Router) {
				r.Get("/", h.listNotes)
				r.Post("/", h.createNote)
				r.Get("/{id}", h.getNote)
				r.Put("/{id}", h.updateNote)
				r.Delete("/{id}", h.deleteNote)
			})
		})
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
