package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/tasktrack-api/internal/config"
	"github.com/phrazzld/tasktrack-api/internal/platform/memory"
	"github.com/phrazzld/tasktrack-api/internal/platform/postgres"
	"github.com/phrazzld/tasktrack-api/internal/platform/sqlite"
	"github.com/phrazzld/tasktrack-api/internal/service"
	"github.com/phrazzld/tasktrack-api/internal/service/auth"
	"github.com/phrazzld/tasktrack-api/internal/store"
)

// application holds the wired dependencies of one server process.
type application struct {
	config *config.Config
	logger *slog.Logger

	// db is nil for the memory backend.
	db *sql.DB

	userStore store.UserStore
	taskStore store.TaskStore

	userService   service.UserService
	taskService   service.TaskService
	authenticator *auth.Authenticator
}

// newApplication wires the selected storage backend, the auth primitives,
// and the services into a ready-to-serve application.
func newApplication(ctx context.Context, cfg *config.Config, log *slog.Logger) (*application, error) {
	app := &application{
		config: cfg,
		logger: log,
	}

	if err := app.setupStores(ctx); err != nil {
		return nil, err
	}

	jwtService, err := auth.NewJWTService(
		cfg.Auth.JWTSecret,
		time.Duration(cfg.Auth.TokenLifetimeMinutes)*time.Minute,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT service: %w", err)
	}

	hasher := auth.NewBcryptHasher(cfg.Auth.BcryptCost)

	app.userService = service.NewUserService(app.userStore, hasher, jwtService, log)
	app.taskService = service.NewTaskService(app.taskStore, log)
	app.authenticator = auth.NewAuthenticator(jwtService, app.userStore, log)

	return app, nil
}

// setupStores opens the configured backend and builds the store adapters.
func (app *application) setupStores(ctx context.Context) error {
	cfg := app.config

	switch cfg.Database.Backend {
	case config.BackendPostgres:
		db, err := postgres.Open(ctx, cfg.Database.URL)
		if err != nil {
			return fmt.Errorf("failed to connect to postgres: %w", err)
		}
		if err := postgres.RunMigrations(ctx, db); err != nil {
			_ = db.Close()
			return fmt.Errorf("failed to migrate postgres database: %w", err)
		}
		app.db = db
		app.userStore = postgres.NewUserStore(db, app.logger)
		app.taskStore = postgres.NewTaskStore(db, app.logger)

	case config.BackendSQLite:
		db, err := sqlite.Open(ctx, cfg.Database.Path)
		if err != nil {
			return fmt.Errorf("failed to open sqlite database: %w", err)
		}
		app.db = db
		app.userStore = sqlite.NewUserStore(db, app.logger)
		app.taskStore = sqlite.NewTaskStore(db, app.logger)

	case config.BackendMemory:
		app.userStore = memory.NewUserStore()
		app.taskStore = memory.NewTaskStore()

	default:
		return fmt.Errorf("unknown database backend %q", cfg.Database.Backend)
	}

	app.logger.Info("storage backend ready",
		slog.String("backend", cfg.Database.Backend))
	return nil
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("failed to close database", "error", err)
		}
	}
}
