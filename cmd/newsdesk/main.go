package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/ozytarget/newsdesk/internal/api"
	"github.com/ozytarget/newsdesk/internal/app"
	"github.com/ozytarget/newsdesk/internal/config"
	"github.com/ozytarget/newsdesk/internal/storage"
)

func main() {
	mode := flag.String("mode", "serve", "Service mode (serve, once)")

	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := newLogger(cfg.AppEnv)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	backend, dsn := cfg.Backend()

	store, err := storage.Open(ctx, backend, dsn, &logger)
	if err != nil {
		logger.Fatal().Err(err).Str("backend", backend).Msg("failed to open store")
	}
	defer store.Close()

	if err := store.Migrate(ctx); err != nil {
		logger.Fatal().Err(err).Msg("failed to run migrations")
	}

	application := app.New(cfg, store, &logger)

	if *mode == "serve" {
		go func() {
			if err := api.NewServer(store, cfg.ListenAddr, &logger).Start(ctx); err != nil {
				logger.Error().Err(err).Msg("api server error")
			}
		}()
	}

	if err := runMode(ctx, application, *mode); err != nil {
		if errors.Is(err, context.Canceled) {
			logger.Info().Msg("application stopped")

			return
		}

		logger.Fatal().Err(err).Msg("application error")
	}
}

func newLogger(appEnv string) zerolog.Logger {
	if appEnv == "local" {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).With().Timestamp().Logger()
	}

	return zerolog.New(os.Stderr).With().Timestamp().Logger()
}

func runMode(ctx context.Context, application *app.App, mode string) error {
	switch mode {
	case "serve":
		return application.Run(ctx)
	case "once":
		return application.RunOnce(ctx)
	default:
		log.Fatalf("Usage: %s --mode=[serve|once]", os.Args[0])

		return nil
	}
}
