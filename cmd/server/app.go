package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/reciteapp/recite-api/internal/config"
	"github.com/reciteapp/recite-api/internal/platform/postgres"
	"github.com/reciteapp/recite-api/internal/service"
	"github.com/reciteapp/recite-api/internal/service/auth"
	"github.com/reciteapp/recite-api/internal/store"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	// Stores (using interfaces for proper abstraction)
	userStore        store.UserStore
	cardSetStore     store.CardSetStore
	studyRecordStore store.StudyRecordStore

	// Service interfaces
	jwtService       auth.JWTService
	passwordVerifier auth.PasswordVerifier
	cardSetService   service.CardSetService
	statsService     service.StatsService
}

// newApplication creates a new application instance with all dependencies
// initialized. Configuration, logger, and the database connection must be
// established before application initialization.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	app.passwordVerifier = auth.NewBcryptVerifier()

	app.userStore = postgres.NewPostgresUserStore(db, logger, cfg.Auth.BcryptCost)
	app.cardSetStore = postgres.NewPostgresCardSetStore(db, logger)
	app.studyRecordStore = postgres.NewPostgresStudyRecordStore(db, logger)

	cardSetRepo := service.NewCardSetRepositoryAdapter(app.cardSetStore, db)
	app.cardSetService, err = service.NewCardSetService(cardSetRepo, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create card set service: %w", err)
	}

	app.statsService, err = service.NewStatsService(app.studyRecordStore, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create stats service: %w", err)
	}

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}
