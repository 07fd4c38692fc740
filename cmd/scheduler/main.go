// Command scheduler runs the staffing scheduler as an HTTP service: one
// endpoint to solve a weekly schedule, one to describe the engine's own
// hard-constraint/soft-term catalog, plus health/version endpoints.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/careerdesk/staffsched/internal/config"
	"github.com/careerdesk/staffsched/internal/diagnosticslog"
	"github.com/careerdesk/staffsched/internal/handler"
	"github.com/careerdesk/staffsched/pkg/logger"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	cfg := config.Load()
	logger.Init(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		Output: "stdout",
	})

	logger.Info().
		Str("version", Version).
		Str("build_time", BuildTime).
		Str("git_commit", GitCommit).
		Msg("staffsched starting")

	sink, err := diagnosticslog.Open(cfg)
	if err != nil {
		logger.WithError(err).Msg("diagnostics sink unavailable, continuing without audit trail")
		sink = &diagnosticslog.Sink{}
	}
	defer sink.Close()

	if err := sink.EnsureSchema(context.Background()); err != nil {
		logger.WithError(err).Msg("diagnostics schema ensure failed")
	}

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	h := handler.NewScheduleHandler(cfg, sink)

	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok","service":"staffsched"}`))
	})
	mux.HandleFunc("/version", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"version":%q,"build_time":%q,"git_commit":%q}`, Version, BuildTime, GitCommit)
	})
	mux.HandleFunc("/v1/solve", h.Solve)
	mux.HandleFunc("/v1/catalog", h.Catalog)

	server := &http.Server{
		Addr:         ":" + port,
		Handler:      mux,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info().
			Str("port", port).
			Str("url", fmt.Sprintf("http://localhost:%s", port)).
			Msg("listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("server failed to start")
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
		os.Exit(1)
	}

	logger.Info().Msg("shutdown complete")
}
