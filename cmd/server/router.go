package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/reciteapp/recite-api/internal/api"
	apiMiddleware "github.com/reciteapp/recite-api/internal/api/middleware"
	"github.com/reciteapp/recite-api/internal/ws"
)

// setupRouter creates and configures the application router with all routes
// and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	authHandler := api.NewAuthHandler(
		app.userStore,
		app.jwtService,
		app.passwordVerifier,
		app.logger,
	)
	setHandler := api.NewSetHandler(app.cardSetService, app.logger)
	statsHandler := api.NewStatsHandler(app.statsService, app.logger)
	studyHandler := ws.NewHandler(app.cardSetService, app.statsService, app.config.Study, app.logger)

	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	r.Route("/api", func(r chi.Router) {
		// Authentication endpoints (public)
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/refresh", authHandler.RefreshToken)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Get("/auth/me", authHandler.Me)

			// Card set management
			r.Post("/sets", setHandler.CreateSet)
			r.Get("/sets", setHandler.ListSets)
			r.Get("/sets/{id}", setHandler.GetSet)
			r.Put("/sets/{id}", setHandler.UpdateSet)
			r.Delete("/sets/{id}", setHandler.DeleteSet)

			// Study history and statistics
			r.Post("/stats/records", statsHandler.RecordSession)
			r.Get("/stats/records", statsHandler.ListRecords)
			r.Get("/stats/summary", statsHandler.GetSummary)

			// Live study session
			r.Get("/study/ws", studyHandler.ServeHTTP)
		})
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
