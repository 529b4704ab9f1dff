package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vereinskasse/kassenbuch/internal/ledger"
)

// NewRouter assembles the HTTP surface over the engine.
func NewRouter(engine *ledger.Engine) *chi.Mux {
	eventsHandler := NewEventsHandler(engine)
	transactionsHandler := NewTransactionsHandler(engine)
	registersHandler := NewRegistersHandler(engine)

	r := chi.NewRouter()

	// Middleware.
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(MetricsMiddleware)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/events", func(r chi.Router) {
			r.Get("/", eventsHandler.List)
			r.Post("/", eventsHandler.Create)

			r.Route("/{id}", func(r chi.Router) {
				r.Delete("/", eventsHandler.Delete)
				r.Post("/reset", eventsHandler.Reset)
				r.Get("/balance", eventsHandler.Balance)
				r.Post("/recalculate", eventsHandler.Recalculate)

				r.Get("/transactions", transactionsHandler.List)
				r.Post("/deposits", transactionsHandler.Deposit)
				r.Post("/withdrawals", transactionsHandler.Withdraw)
				r.Put("/transactions/{txnID}", transactionsHandler.Update)
				r.Delete("/transactions/{txnID}", transactionsHandler.Delete)
				r.Post("/import", transactionsHandler.Import)
				r.Get("/export", transactionsHandler.Export)

				r.Route("/registers", func(r chi.Router) {
					r.Get("/", registersHandler.List)
					r.Post("/", registersHandler.Create)
					r.Put("/{rid}", registersHandler.Update)
					r.Delete("/{rid}", registersHandler.Delete)
				})
			})
		})
	})

	// Health check and metrics endpoints.
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	r.Handle("/metrics", promhttp.Handler())

	return r
}
