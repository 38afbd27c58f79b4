package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/Raymond9734/customer-manager/internal/config"
	"github.com/Raymond9734/customer-manager/internal/db"
	"github.com/Raymond9734/customer-manager/internal/queue"
	"github.com/Raymond9734/customer-manager/internal/repository"
	"github.com/Raymond9734/customer-manager/internal/worker"
)

func main() {
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	logger.Info("starting customer audit worker")

	if cfg.Queue.RedisURL == "" {
		logger.Error("REDIS_URL is required for the worker")
		os.Exit(1)
	}

	kind := repository.Kind(cfg.Database.DataAccessType)

	// Connect to database
	database, err := db.New(db.Config{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.DBName,
		SSLMode:  cfg.Database.SSLMode,
		Driver:   kind.DriverName(),
	})
	if err != nil {
		logger.Error("failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.Close()

	customerRepo, err := repository.New(kind, database, logger)
	if err != nil {
		logger.Error("failed to create customer repository", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Connect to Redis queue
	queueClient, err := queue.NewRedisClient(queue.RedisConfig{
		URL:       cfg.Queue.RedisURL,
		QueueName: cfg.Queue.QueueName,
	}, logger)
	if err != nil {
		logger.Error("failed to connect to Redis", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer queueClient.Close()

	processor := worker.NewAuditProcessor(customerRepo, queueClient, cfg.Worker.MaxRetryCount, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("starting event consumer",
		slog.Int("concurrency", cfg.Worker.Concurrency),
		slog.Int("max_retry_count", cfg.Worker.MaxRetryCount),
	)

	// Consume returns once in-flight events have drained
	err = queueClient.Consume(ctx, processor.Process, cfg.Worker.Concurrency)
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("consumer error", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("worker stopped gracefully")
}
