package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/wordvault/wordvault-api/internal/api"
	apiMiddleware "github.com/wordvault/wordvault-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	authHandler := api.NewAuthHandler(
		app.userStore,
		app.jwtService,
		app.passwordHasher,
		app.passwordVerifier,
	)
	cardHandler := api.NewCardHandler(app.cardService, app.progressService)
	legacyHandler := api.NewLegacyHandler(app.cardService, app.progressService)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	r.Route("/api", func(r chi.Router) {
		// Authentication endpoints (public)
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/refresh", authHandler.RefreshToken)

		// Public profile listing
		r.Get("/users/{username}/cards", cardHandler.ListUserPublicCards)

		// Token-less surface kept for old clients
		r.Route("/legacy", func(r chi.Router) {
			r.Post("/cards", legacyHandler.CreateCard)
			r.Post("/cards/{id}/review", legacyHandler.ReviewCard)
			r.Get("/stats", legacyHandler.GetStats)
		})

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Post("/cards", cardHandler.CreateCard)
			r.Get("/cards", cardHandler.ListCards)
			r.Get("/cards/due", cardHandler.ListDueCards)
			r.Get("/cards/{id}", cardHandler.GetCard)
			r.Put("/cards/{id}", cardHandler.UpdateCard)
			r.Delete("/cards/{id}", cardHandler.DeleteCard)
			r.Post("/cards/{id}/review", cardHandler.ReviewCard)

			r.Get("/stats", cardHandler.GetStats)
		})
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
