package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/cardops/card-api/internal/api"
	apiMiddleware "github.com/cardops/card-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.Trace)

	cardHandler := api.NewCardHandler(app.cardService, app.logger)

	r.Route("/api", func(r chi.Router) {
		r.Route("/cards", func(r chi.Router) {
			r.Get("/", cardHandler.ListCards)
			// /search must be registered before /{cardNumber} so it is not
			// swallowed by the path parameter.
			r.Get("/search", cardHandler.SearchCard)
			r.Get("/{cardNumber}", cardHandler.GetCardDetails)
			r.Put("/{cardNumber}", cardHandler.UpdateCard)
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
