package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"mediaforge/internal/api"
	"mediaforge/internal/config"
	"mediaforge/internal/convert"
	"mediaforge/internal/fetch"
	"mediaforge/internal/jobs"
	"mediaforge/internal/models"
	"mediaforge/internal/store"
)

const version = "1.2.0"

func main() {
	godotenv.Load()
	cfg := config.Load()

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level)

	st, err := store.New(cfg.DataDir)
	if err != nil {
		log.Fatal().Err(err).Str("dir", cfg.DataDir).Msg("preparing artifact store failed")
	}

	registry := jobs.NewRegistry()

	converter := convert.New(st, cfg.FFmpegPath)
	fetcher := fetch.New(st, cfg.YtDlpPath, cfg.FFmpegPath)

	table := make(map[models.JobKind]convert.Strategy)
	for kind, s := range converter.Table() {
		table[kind] = s
	}
	for kind, s := range fetcher.Table() {
		table[kind] = s
	}

	dispatcher := jobs.NewDispatcher(registry, st, table, cfg.MaxConcurrentJobs)

	reaper := jobs.NewReaper(st, cfg.CleanupInterval)
	reaper.Start()

	handler := api.NewHandler(dispatcher, registry, st, fetcher, cfg, version)
	srv := &http.Server{
		Addr:    cfg.Port,
		Handler: api.NewRouter(handler),
	}

	go func() {
		log.Info().Str("port", cfg.Port).Str("version", version).Msg("server started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("http shutdown failed")
	}

	if !dispatcher.Wait(5 * time.Second) {
		log.Warn().Msg("in-flight jobs did not settle before shutdown")
	}

	// Final sweep so the temp directory does not accumulate across restarts.
	reaper.Stop()

	log.Info().Msg("bye")
}
