package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/parik/salon-console/internal/api"
	"github.com/parik/salon-console/internal/infrastructure/backend"
	redisdb "github.com/parik/salon-console/internal/infrastructure/db/redis"
	"github.com/parik/salon-console/internal/pkg/config"
	"github.com/parik/salon-console/pkg/logger"
)

func main() {
	// .env is optional, real deployments set the environment directly
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	display, err := config.LoadDisplay(cfg.DisplayFile)
	if err != nil {
		log.Warn().Err(err).Str("file", cfg.DisplayFile).Msg("display config unusable, using defaults")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var guard *redisdb.SubmitGuard
	if cfg.Redis.Addr != "" {
		var err error
		guard, err = redisdb.Open(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			log.Fatal().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis connection failed")
		}
		defer guard.Close()
		log.Info().Str("addr", cfg.Redis.Addr).Msg("submit guard enabled")
	} else {
		log.Warn().Msg("redis not configured, duplicate submissions are not guarded")
	}

	client := backend.New(cfg.Backend.BaseURL, cfg.Backend.Timeout, log)

	e := api.NewRouter(ctx, cfg, display, client, guard, log)

	go func() {
		log.Info().Str("port", cfg.Port).Str("backend", cfg.Backend.BaseURL).Msg("console listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
