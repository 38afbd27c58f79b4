package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/Raymond9734/customer-manager/internal/config"
	"github.com/Raymond9734/customer-manager/internal/db"
	"github.com/Raymond9734/customer-manager/internal/diagnostics"
	"github.com/Raymond9734/customer-manager/internal/handler"
	"github.com/Raymond9734/customer-manager/internal/queue"
	"github.com/Raymond9734/customer-manager/internal/repository"
	"github.com/Raymond9734/customer-manager/internal/service"
	"github.com/Raymond9734/customer-manager/internal/tracing"
)

func main() {
	// A missing .env is fine, the environment may already be populated
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger := newLogger(cfg.LogLevel)
	slog.SetDefault(logger)

	logger.Info("starting customer manager API server",
		slog.String("data_access_type", cfg.Database.DataAccessType),
	)

	ctx := context.Background()

	tracer, err := tracing.New(ctx, tracing.Config{
		ServiceName: "customer-manager-api",
		Exporter:    cfg.Tracing.Exporter,
		Endpoint:    cfg.Tracing.Endpoint,
	})
	if err != nil {
		logger.Error("failed to create tracer", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// The backend is chosen once; its driver decides how the pool is opened
	kind := repository.Kind(cfg.Database.DataAccessType)

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

	logger.Info("connected to database", slog.String("driver", database.DriverName()))

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(ctx); err != nil {
			logger.Error("failed to apply migrations", slog.String("error", err.Error()))
			os.Exit(1)
		}
		logger.Info("database migrations applied")
	}

	customerRepo, err := repository.New(kind, database, logger)
	if err != nil {
		logger.Error("failed to create customer repository", slog.String("error", err.Error()))
		os.Exit(1)
	}

	queueClient, err := newQueueClient(cfg.Queue, logger)
	if err != nil {
		logger.Error("failed to connect to Redis", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer queueClient.Close()

	customerSvc := service.NewCustomerService(customerRepo, queueClient, tracer, logger)

	router := handler.NewRouter(handler.RouterConfig{
		CustomerService: customerSvc,
		DB:              database,
		Queue:           queueClient,
		Tracer:          tracer,
		AllowedOrigins:  cfg.API.AllowedOrigins,
		Logger:          logger,
	})

	// Create server
	addr := fmt.Sprintf(":%d", cfg.API.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErrors := make(chan error, 2)
	go func() {
		logger.Info("API server listening", slog.String("addr", addr))
		serverErrors <- server.ListenAndServe()
	}()

	var diag *diagnostics.Server
	if cfg.Diagnostics.Port > 0 {
		diag = diagnostics.NewServer(cfg.Diagnostics.Port)
		go func() {
			logger.Info("diagnostics server listening", slog.Int("port", cfg.Diagnostics.Port))
			if err := diag.Start(); err != nil {
				serverErrors <- fmt.Errorf("diagnostics server: %w", err)
			}
		}()
	}

	// Wait for interrupt signal or server error
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)

	case sig := <-quit:
		logger.Info("shutting down server", slog.String("signal", sig.String()))

		// Graceful shutdown with timeout
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			logger.Error("server shutdown failed", slog.String("error", err.Error()))
		}
		if diag != nil {
			if err := diag.Shutdown(ctx); err != nil {
				logger.Error("diagnostics shutdown failed", slog.String("error", err.Error()))
			}
		}
		if err := tracer.Shutdown(ctx); err != nil {
			logger.Error("tracer shutdown failed", slog.String("error", err.Error()))
		}

		logger.Info("server stopped gracefully")
	}
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
}

// newQueueClient connects to Redis, or drops events when no URL is configured
func newQueueClient(cfg config.QueueConfig, logger *slog.Logger) (queue.Client, error) {
	if cfg.RedisURL == "" {
		logger.Info("REDIS_URL not set, change events are disabled")
		return queue.NewNoopClient(logger), nil
	}
	return queue.NewRedisClient(queue.RedisConfig{
		URL:       cfg.RedisURL,
		QueueName: cfg.QueueName,
	}, logger)
}
