/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the agent insight server: loads configuration,
  reads the CSV exports into an immutable snapshot, and serves the metrics
  API over it.

STARTUP SEQUENCE:
  1. Load configuration (.env / environment, flags override)
  2. Configure structured logging
  3. Read presence, items, shifts (+ optional transcripts) CSVs
  4. Validate and freeze the snapshot
  5. Start HTTP server with graceful shutdown

COMMAND-LINE FLAGS:
  -port         HTTP server port (overrides PORT)
  -presence     Presence log CSV path (overrides PRESENCE_CSV)
  -items        Work-item log CSV path (overrides ITEMS_CSV)
  -shifts       Shift roster CSV path (overrides SHIFTS_CSV)
  -transcripts  Chat transcripts CSV path, optional (overrides TRANSCRIPTS_CSV)

FAILURE BEHAVIOR:
  A missing or empty required dataset (presence, items, shifts) is fatal:
  the process logs the condition and exits instead of serving partial data.

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Exit

SEE ALSO:
  - api/server.go: Router configuration
  - loader: CSV reading and snapshot assembly
*/
package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/goatcx/agent-insight/api"
	"github.com/goatcx/agent-insight/config"
	"github.com/goatcx/agent-insight/loader"
)

func main() {
	// Configure logger
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Flags override environment
	port := flag.String("port", cfg.Port, "HTTP server port")
	presence := flag.String("presence", cfg.PresencePath, "presence log CSV path")
	items := flag.String("items", cfg.ItemsPath, "work-item log CSV path")
	shifts := flag.String("shifts", cfg.ShiftsPath, "shift roster CSV path")
	transcripts := flag.String("transcripts", cfg.TranscriptsPath, "chat transcripts CSV path (optional)")
	flag.Parse()

	// Set log level
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Warn().Str("level", cfg.LogLevel).Msg("invalid log level, using info")
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	// Load the snapshot. Required datasets abort startup when missing.
	snap, err := loader.LoadSnapshot(loader.Paths{
		Presence:    *presence,
		Items:       *items,
		Shifts:      *shifts,
		Transcripts: *transcripts,
	}, log.Logger)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load datasets")
	}

	minDate, maxDate, _ := snap.DateBounds()
	log.Info().
		Int("agents", len(snap.Agents())).
		Int("presence", len(snap.Presence)).
		Int("items", len(snap.Items)).
		Int("transcripts", len(snap.Transcripts)).
		Str("from", minDate.String()).
		Str("to", maxDate.String()).
		Msg("snapshot loaded")

	// Wire handler and router
	handler := api.NewHandler(snap, log.Logger)
	router := api.NewRouter(handler, cfg.AllowedOrigins)

	server := &http.Server{
		Addr:         ":" + *port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("port", *port).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
