/**
 * @description
 * This file sets up the HTTP router for the auth service using the
 * go-chi/chi router. It applies middleware for logging, CORS and panic
 * recovery, and maps the auth routes to their handlers.
 */
package api

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a new Chi router and registers the auth routes.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	// Setup middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300, // Maximum value not ignored by any major browsers
	}))

	r.Get("/health", h.HandleHealth)
	r.Get("/api/ping", h.HandlePing)

	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/register", h.HandleRegister)
		r.Post("/login", h.HandleLogin)
		r.Post("/send-otp", h.HandleSendOTP)
		r.Post("/verify-otp", h.HandleVerifyOTP)
		r.Post("/google", h.HandleGoogleLogin)

		r.Group(func(r chi.Router) {
			r.Use(BearerToken)
			r.Get("/me", h.HandleWhoAmI)
		})
	})

	return r
}
