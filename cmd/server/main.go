package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/campuskit/catview/internal/api"
	"github.com/campuskit/catview/internal/catalog"
	"github.com/campuskit/catview/internal/config"
	"github.com/campuskit/catview/internal/render"
	"github.com/campuskit/catview/internal/rewrite"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	fetcher := catalog.NewFetcher(cfg.FetchTimeout, cfg.MaxFetchBytes, cfg.UserAgent)

	var sanitize *rewrite.Sanitize
	if cfg.SanitizeMarkup {
		sanitize = rewrite.NewSanitize()
	}
	renderer := render.New(fetcher, sanitize, log)

	srv := api.NewServer(renderer, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)
	}()

	log.Info("starting catview", "port", cfg.Port)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
