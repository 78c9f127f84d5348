package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"repo-growth-service/internal/config"
	"repo-growth-service/internal/database"
	"repo-growth-service/internal/github"
	"repo-growth-service/internal/handler"
	"repo-growth-service/internal/ingest"
	"repo-growth-service/internal/repository"
	"repo-growth-service/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
)

func main() {
	// Логгер
	logger := logrus.New()
	logger.SetLevel(logrus.InfoLevel)
	logger.SetFormatter(&logrus.JSONFormatter{})

	// Конфиг
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Warnf(".env not found: %v", err)
	}

	// База данных (database/sql)
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		logger.Fatalf("Database connection failed: %v", err)
	}
	defer db.Close()
	logger.Info("Database connected")

	// Репозитории
	repositoryRepo := repository.NewRepositoryRepository(db)
	commitRepo := repository.NewCommitRepository(db)
	collectionRepo := repository.NewCollectionRepository(db)

	// Конвейер загрузки коммитов
	queue := ingest.NewQueue()
	source := github.NewClient(cfg.GitHubAPIURL, cfg.GitHubToken)
	fetcher := ingest.NewFetcher(source, commitRepo, logger, cfg.SyncMaxRetries)
	worker := ingest.NewWorker(queue, fetcher, repositoryRepo, logger, cfg.SyncPollInterval)

	workerCtx, stopWorker := context.WithCancel(context.Background())
	go worker.Run(workerCtx)
	logger.Info("Sync worker started")

	// Use Cases
	repositoryUC := usecase.NewRepositoryUseCase(repositoryRepo, queue, cfg.GitHubToken)
	collectionUC := usecase.NewCollectionUseCase(collectionRepo, repositoryUC)
	growthUC := usecase.NewGrowthUseCase(commitRepo, repositoryRepo, collectionRepo)

	// Echo + Handlers
	e := echo.New()
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(handler.LoggingMiddleware(logger))

	// Handlers
	apiHandler := handler.NewAPIHandler(repositoryUC, collectionUC, growthUC, logger)
	handler.RegisterRoutes(e, apiHandler)

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})

	// Запуск сервера
	go func() {
		if err := e.Start(":" + cfg.ServerPort); err != nil {
			logger.Infof("Server stopped: %v", err)
		}
	}()

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Info("Shutting down...")
	stopWorker()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Fatalf("Shutdown failed: %v", err)
	}

	logger.Info("Server exited")
}
