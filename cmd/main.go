package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/opp-dev/polla-api/config"
	"github.com/opp-dev/polla-api/handlers"
	"github.com/opp-dev/polla-api/repositories"
	api "github.com/opp-dev/polla-api/routes"
	"github.com/opp-dev/polla-api/services"
)

func main() {
	// Настройка логгера
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	// Загрузка конфигурации
	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("configuration loaded",
		slog.Int("port", cfg.ServerPort),
		slog.String("data_dir", cfg.DataDir),
		slog.Duration("lock_timeout", cfg.LockTimeout),
	)

	// Инициализация репозиториев (плоские файлы в DATA_DIR)
	fixtureRepo := repositories.NewFileFixtureRepository(cfg.DataDir, cfg.LockTimeout)
	pickRepo := repositories.NewFilePickRepository(cfg.DataDir, cfg.LockTimeout)
	resultRepo := repositories.NewFileResultRepository(cfg.DataDir, cfg.LockTimeout)
	settingsRepo := repositories.NewFileSettingsRepository(cfg.DataDir, cfg.LockTimeout)
	logger.Info("repositories initialized")

	// Инициализация сервисов
	authService := services.NewAuthService(settingsRepo, cfg.AdminPassword, cfg.JWTSecretKey)
	fixtureService := services.NewFixtureService(fixtureRepo, settingsRepo)
	pickService := services.NewPickService(fixtureRepo, pickRepo, settingsRepo)
	resultService := services.NewResultService(fixtureRepo, resultRepo)
	scoringService := services.NewScoringService(fixtureRepo, pickRepo, resultRepo, settingsRepo)
	settingsService := services.NewSettingsService(settingsRepo)
	logger.Info("services initialized")

	// Инициализация обработчиков HTTP
	authHandler := handlers.NewAuthHandler(authService)
	fixtureHandler := handlers.NewFixtureHandler(fixtureService)
	pickHandler := handlers.NewPickHandler(pickService)
	rankingHandler := handlers.NewRankingHandler(scoringService)
	resultHandler := handlers.NewResultHandler(resultService)
	settingsHandler := handlers.NewSettingsHandler(settingsService)
	logger.Info("HTTP handlers initialized")

	// Настройка маршрутизатора
	router := chi.NewRouter()
	api.SetupRoutes(
		router,
		authHandler,
		fixtureHandler,
		pickHandler,
		rankingHandler,
		resultHandler,
		settingsHandler,
		[]byte(cfg.JWTSecretKey),
	)
	logger.Info("routes configured")

	// Настройка и запуск HTTP-сервера
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	// Ожидание сигнала завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("server stopped gracefully")
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancelShutdown()

		logger.Info("shutting down server", slog.Duration("timeout", 15*time.Second))
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			os.Exit(1)
		}
		logger.Info("server shutdown complete")
	}
	logger.Info("application exited")
}
