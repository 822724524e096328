package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	"github.com/passforge/passforge-go/internal/config"
	"github.com/passforge/passforge-go/internal/handler"
	"github.com/passforge/passforge-go/internal/logging"
	"github.com/passforge/passforge-go/internal/metrics"
	"github.com/passforge/passforge-go/internal/middleware"
	"github.com/passforge/passforge-go/internal/model"
	"github.com/passforge/passforge-go/internal/repository"
	"github.com/passforge/passforge-go/internal/service"
)

func main() {
	envErr := godotenv.Load()

	cfg := config.Load()
	logging.New(cfg.LogLevel, cfg.LogFormat)
	if envErr != nil {
		slog.Debug("no .env file found, using environment variables")
	}

	m := metrics.New()
	genCfg := service.GeneratorConfig{
		Source:    model.SourceAPI,
		MaxLength: cfg.MaxLength,
		MaxBulk:   cfg.MaxBulk,
		Observer:  m,
	}

	// History is optional; generation works without a database.
	var historyHandler *handler.HistoryHandler
	if cfg.HistoryEnabled() {
		db, err := repository.NewDB(cfg.DatabaseDriver, cfg.DatabaseDSN)
		if err != nil {
			slog.Warn("database connection failed, history disabled", "driver", cfg.DatabaseDriver, "error", err)
		} else {
			defer db.Close()
			historyRepo := repository.NewHistoryRepository(db)
			if err := historyRepo.EnsureSchema(context.Background()); err != nil {
				slog.Warn("creating history schema failed, history disabled", "error", err)
			} else {
				genCfg.Recorder = historyRepo
				historyHandler = handler.NewHistoryHandler(service.NewHistoryService(historyRepo))
			}
		}
	}

	genHandler := handler.NewGeneratorHandler(service.NewGeneratorService(genCfg))

	bgCtx, stopBackground := context.WithCancel(context.Background())
	defer stopBackground()

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Metrics(m))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	r.Handle("/metrics", m.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/presets", genHandler.HandlePresets)
		r.Post("/strength", genHandler.HandleStrength)
		r.Post("/export", handler.HandleExport)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RateLimit(bgCtx, cfg.RateLimitRPS, cfg.RateLimitBurst))
			r.Post("/generate", genHandler.HandleGenerate)
			r.Post("/generate/bulk", genHandler.HandleGenerateBulk)
			r.Post("/generate/custom", genHandler.HandleGenerateCustom)
		})

		if historyHandler != nil {
			r.Get("/history/stats", historyHandler.HandleStats)
		}
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		slog.Info("server starting", "port", cfg.Port, "env", cfg.Env, "history", historyHandler != nil)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}
