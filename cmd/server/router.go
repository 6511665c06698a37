package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/taskdeck/api/internal/api"
	apiMiddleware "github.com/taskdeck/api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	authEnabled := app.config.Auth.Enabled()
	authHandler := api.NewAuthHandler(app.tokens, authEnabled, app.logger)
	taskHandler := api.NewTaskHandler(app.taskStore, app.logger)
	authGate := apiMiddleware.NewAuthGate(
		app.tokens,
		authEnabled,
		app.config.Auth.ReadOnlyWithoutAuth,
	)

	r.Route("/api", func(r chi.Router) {
		// Login endpoint (always public)
		r.Post("/login", authHandler.Login)

		// Task endpoints, gated per the auth policy
		r.Group(func(r chi.Router) {
			r.Use(authGate.Authenticate)
			r.Post("/tasks", taskHandler.Create)
			r.Get("/tasks", taskHandler.List)
			r.Get("/tasks/{id}", taskHandler.Get)
			r.Put("/tasks/{id}", taskHandler.Update)
			r.Delete("/tasks/{id}", taskHandler.Delete)
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
