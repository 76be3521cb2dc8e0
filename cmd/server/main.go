package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/prepmaster/prepmaster-backend/internal/ai"
	"github.com/prepmaster/prepmaster-backend/internal/config"
	"github.com/prepmaster/prepmaster-backend/internal/handler"
	"github.com/prepmaster/prepmaster-backend/internal/history"
	"github.com/prepmaster/prepmaster-backend/internal/kv"
	"github.com/prepmaster/prepmaster-backend/internal/logger"
	"github.com/prepmaster/prepmaster-backend/internal/router"
	"github.com/prepmaster/prepmaster-backend/internal/service"
	"github.com/prepmaster/prepmaster-backend/internal/store"
	"github.com/prepmaster/prepmaster-backend/internal/validator"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Msg("Starting PrepMaster Backend")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Open Flat-File Store ──────────────────────────────────────────
	st, err := store.New(cfg.DataDir, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open data directory")
	}
	if err := st.Seed(); err != nil {
		log.Fatal().Err(err).Msg("Failed to seed question banks")
	}

	// ─── Select History Backend ────────────────────────────────────────
	var historyKV kv.Store
	switch cfg.StorageBackend {
	case "redis":
		rdb, err := kv.NewRedisStore(ctx, cfg.RedisURL)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
		defer rdb.Close()
		historyKV = rdb
		log.Info().Str("url", cfg.RedisURL).Msg("History backed by Redis")
	default:
		fileKV, err := kv.NewFileStore(cfg.DataDir)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to open history directory")
		}
		historyKV = fileKV
	}
	historyStore := history.New(historyKV, log)
	_ = historyStore.Read(ctx) // seed the demo history on first boot

	// ─── Initialize AI Client ──────────────────────────────────────────
	aiClient, err := ai.New(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize AI client")
	}

	// ─── Initialize Services ──────────────────────────────────────────
	aiService := service.NewAIService(aiClient, st, log)
	authService := service.NewAuthService(st, cfg, log)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		System: handler.NewSystemHandler(cfg, aiService),
		Static: handler.NewStaticHandler(st, authService),
		Auth:   handler.NewAuthHandler(authService, log),
		AI:     handler.NewAIHandler(aiService, log),
	}

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(handlers, cfg)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
