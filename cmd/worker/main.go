package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/octobees/leads-pipeline/internal/ai"
	"github.com/octobees/leads-pipeline/internal/auth"
	"github.com/octobees/leads-pipeline/internal/config"
	"github.com/octobees/leads-pipeline/internal/database"
	"github.com/octobees/leads-pipeline/internal/fetch"
	"github.com/octobees/leads-pipeline/internal/handler"
	middlewarepkg "github.com/octobees/leads-pipeline/internal/middleware"
	"github.com/octobees/leads-pipeline/internal/places"
	"github.com/octobees/leads-pipeline/internal/repository"
	"github.com/octobees/leads-pipeline/internal/router"
	"github.com/octobees/leads-pipeline/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("failed to connect database", zap.Error(err))
	}
	defer pool.Close()

	jwtManager := auth.NewJWTManager(cfg.ServiceJWTSecret, cfg.TokenTTL)

	jobsRepo := repository.NewPGXJobsRepository(pool)

	fetcher := fetch.NewClient(cfg.FetchBaseURL, cfg.FetchAPIKey)
	placesClient := places.NewClient(cfg.PlacesAPIKey, places.WithBaseURL(cfg.PlacesBaseURL))
	extractor := ai.NewExtractor(cfg.AnthropicAPIKey, logger, ai.WithModel(cfg.AIModel))

	notifier := service.NewNotifier(jobsRepo, logger)
	dialWebhook := service.NewDialWebhook(nil, cfg.DialWebhookURL)
	dialer := service.NewAutoDialer(jobsRepo, dialWebhook, notifier, logger)

	jobsService := service.NewJobsService(jobsRepo, fetcher, placesClient, extractor, dialer, notifier, logger, cfg.DefaultSearchLimit)
	jobsHandler := handler.NewJobsHandler(jobsService)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middlewarepkg.RequestID())
	e.Use(middlewarepkg.Logging(logger))
	e.Use(echoMiddleware.Recover())

	router.Register(e, cfg, jwtManager, router.Handlers{Jobs: jobsHandler})

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- e.Start(":" + cfg.Port)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		logger.Info("shutting down", zap.String("signal", sig.String()))
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
		return
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}
