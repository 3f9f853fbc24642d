package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/Farmab/outgoing/internal/auth"
	"github.com/Farmab/outgoing/internal/config"
	"github.com/Farmab/outgoing/internal/server"
	"github.com/Farmab/outgoing/internal/storage"
	"github.com/Farmab/outgoing/internal/store"
)

func main() {
	cfg := config.Load()

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		Level(level).
		With().Timestamp().Logger()

	operator, err := auth.NewOperator(cfg.OperatorUsername, cfg.OperatorPassword)
	if err != nil {
		log.Fatal().Err(err).Msg("could not hash operator password")
	}

	adapter := storage.NewCSVAdapter(cfg.DataPath, log)
	records := store.NewRecordStore(log)
	records.Restore(adapter.Load())
	cat := store.NewCatalog(log)

	app := server.New(cfg, operator, cat, records, adapter, log)

	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("server listening")
		if err := app.Listen(":" + cfg.HTTPPort); err != nil {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}

	// Final flush so the data file matches the in-memory sequence exactly.
	if err := adapter.Flush(records.Snapshot()); err != nil {
		log.Error().Err(err).Msg("final flush failed")
	}
	log.Info().Msg("stopped")
}
