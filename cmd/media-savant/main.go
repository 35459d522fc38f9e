package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/iamngoni/media-savant/internal/config"
	"github.com/iamngoni/media-savant/internal/handler"
	"github.com/iamngoni/media-savant/internal/jellyfin"
	"github.com/iamngoni/media-savant/internal/proxy"
	"github.com/iamngoni/media-savant/internal/repository"
	"github.com/iamngoni/media-savant/internal/usecase"
)

const shutdownTimeout = 10 * time.Second

func main() {
	_ = godotenv.Load()

	logger := zerolog.New(os.Stdout).With().Timestamp().Str("service", "media-savant").Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load configuration")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sessions := repository.NewSessionRedisRepository(ctx, &logger, cfg.Redis.URL, cfg.Auth.SessionTTL)

	// One pooled client shared by the login exchange, the discovery probe,
	// and the relay paths. No overall request timeout: media streams may
	// legitimately run for hours.
	httpClient := &http.Client{
		Transport: http.DefaultTransport.(*http.Transport).Clone(),
	}
	upstream := jellyfin.NewClient(httpClient)

	validate := validator.New()
	sessionUsecase := usecase.NewSessionUsecase(sessions, upstream, &logger, cfg)
	forwarder := proxy.NewForwarder(httpClient, &logger, cfg)

	router := handler.NewRouter(
		cfg,
		&logger,
		handler.NewAuthHandler(sessionUsecase, validate, &logger, cfg),
		handler.NewProxyHandler(sessionUsecase, forwarder, &logger, cfg),
		handler.NewSetupHandler(upstream, validate, &logger, cfg),
	)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port),
		Handler: router,
	}

	go func() {
		logger.Info().Str("addr", server.Addr).Msg("listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}
}
