package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fsociety/forum/internal/api"
	"github.com/fsociety/forum/internal/core/service"
	"github.com/fsociety/forum/internal/infrastructure/db"
	"github.com/fsociety/forum/internal/pkg/config"
	"github.com/fsociety/forum/pkg/logger"
)

// @title                       fsociety forum API
// @version                     1.0
// @description                 Users, posts and bulk export/import for the fsociety forum.
// @BasePath                    /api
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.IsDevelopment(),
	})

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET environment variable is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := db.Open(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("backend", cfg.Store.Backend).Msg("failed to open store")
	}
	defer func() {
		if err := store.Close(context.Background()); err != nil {
			log.Warn().Err(err).Msg("store close error")
		}
	}()

	forum, err := service.Open(ctx, store, service.Options{
		Prefix: cfg.Store.KeyPrefix,
		Log:    logger.Component("forum"),
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load forum state")
	}
	log.Info().
		Str("backend", cfg.Store.Backend).
		Int("users", forum.Users.Len()).
		Int("posts", forum.Posts.Len()).
		Msg("forum state loaded")

	e, err := api.NewRouter(api.Deps{
		Auth:      service.NewAuthService(forum.Users, cfg.JWTSecret, cfg.TokenTTL),
		Posts:     service.NewPostService(forum.Posts, forum.Users),
		Transfer:  forum.Transfer,
		Store:     store,
		StoreName: cfg.Store.Backend,
		JWTSecret: cfg.JWTSecret,
		Log:       logger.Component("http"),
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build router")
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           e,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server error")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown error")
		os.Exit(1)
	}
	log.Info().Msg("server stopped")
}
