package main

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/cardops/card-api/internal/config"
	"github.com/cardops/card-api/internal/platform/postgres"
	"github.com/cardops/card-api/internal/service"
)

// application holds the wired dependencies of the running server.
type application struct {
	config      *config.Config
	logger      *slog.Logger
	db          *sql.DB
	cardService service.CardService
}

// newApplication opens the database and wires store, service, and handler
// dependencies bottom-up.
func newApplication(cfg *config.Config, log *slog.Logger) (*application, error) {
	db, err := openDatabase(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	cardStore := postgres.NewPostgresCardStore(db, log)
	cardService, err := service.NewCardService(cardStore, log)
	if err != nil {
		if closeErr := db.Close(); closeErr != nil {
			log.Error("failed to close database", slog.String("error", closeErr.Error()))
		}
		return nil, fmt.Errorf("failed to create card service: %w", err)
	}

	return &application{
		config:      cfg,
		logger:      log,
		db:          db,
		cardService: cardService,
	}, nil
}

// cleanup releases resources held by the application. Safe to call more than
// once.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("failed to close database", slog.String("error", err.Error()))
		}
		app.db = nil
	}
}
