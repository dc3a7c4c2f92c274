package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"bookshelf/internal/config"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// NewRouter binds the HTTP surface: health probes plus the books
// resource under /api/books.
func NewRouter(cfg *config.Config, log *slog.Logger, books *BookHandler, db Pinger) http.Handler {
	r := chi.NewRouter()

	r.Use(RequestIDMiddleware)
	r.Use(AccessLogMiddleware(log))
	r.Use(RecoveryMiddleware(log))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", requestIDHeader},
		MaxAge:         300,
	}))

	rl := NewRateLimitMiddleware(cfg.RateLimitRPS, cfg.RateLimitBurst)
	r.Use(rl.Middleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
		defer cancel()
		if db == nil || db.Ping(ctx) != nil {
			JSONError(w, http.StatusServiceUnavailable, "Store not ready")
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	r.Route("/api/books", func(r chi.Router) {
		r.Get("/", books.List)
		r.Get("/{id}", books.GetByID)

		r.Group(func(r chi.Router) {
			// Mutations are guarded only when a token secret is configured.
			if cfg.JWTSecret != "" {
				r.Use(AuthMiddleware(cfg.JWTSecret))
			}
			r.Post("/", books.Create)
			r.Put("/{id}", books.Update)
			r.Delete("/{id}", books.Delete)
		})
	})

	return r
}
