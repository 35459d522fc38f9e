// Package handler exposes the gateway's HTTP surface: session lifecycle,
// server discovery, and the authenticated relay paths.
package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"github.com/rs/zerolog"

	"github.com/iamngoni/media-savant/internal/config"
)

// NewRouter constructs the chi router containing all endpoints.
func NewRouter(
	cfg *config.Config,
	logger *zerolog.Logger,
	auth *AuthHandler,
	relay *ProxyHandler,
	setup *SetupHandler,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(logger))
	r.Use(cors.New(cors.Options{
		AllowOriginFunc:  func(string) bool { return true },
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}).Handler)
	// Burst requests per burst-sized window keeps the sustained rate at
	// PerSecond while letting clients spend the burst at once.
	window := time.Second * time.Duration(cfg.RateLimit.Burst) / time.Duration(cfg.RateLimit.PerSecond)
	r.Use(httprate.Limit(cfg.RateLimit.Burst, window, httprate.WithKeyFuncs(httprate.KeyByIP)))

	r.Get("/health", Health)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/login", auth.Login)
		r.Post("/logout", auth.Logout)
		r.Get("/me", auth.Me)
	})

	r.Post("/setup/validate", setup.Validate)

	r.HandleFunc("/jellyfin", relay.Relay)
	r.HandleFunc("/jellyfin/*", relay.Relay)

	r.Get("/stream/{id}", relay.Stream)

	r.Handle("/metrics", promhttp.Handler())

	return r
}

func requestLogger(logger *zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			logger.Info().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Dur("duration", time.Since(start)).
				Str("request_id", middleware.GetReqID(r.Context())).
				Msg("request")
		})
	}
}
