package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Raymond9734/customer-manager/internal/models"
)

// maxConcurrency caps the number of events handled at once
const maxConcurrency = 5

// redisClient implements Client using a Redis list
type redisClient struct {
	client    *redis.Client
	queueName string
	logger    *slog.Logger
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	URL       string
	QueueName string
}

// NewRedisClient creates a new Redis queue client
func NewRedisClient(cfg RedisConfig, logger *slog.Logger) (Client, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Info("connected to Redis",
		slog.String("addr", opts.Addr),
		slog.String("queue", cfg.QueueName),
	)

	return newRedisClient(client, cfg.QueueName, logger), nil
}

func newRedisClient(client *redis.Client, queueName string, logger *slog.Logger) *redisClient {
	return &redisClient{
		client:    client,
		queueName: queueName,
		logger:    logger,
	}
}

// Publish sends a customer event to the queue
func (c *redisClient) Publish(ctx context.Context, event *models.CustomerEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	// LPUSH + BRPOP gives FIFO order
	if err := c.client.LPush(ctx, c.queueName, data).Err(); err != nil {
		return fmt.Errorf("failed to push event to queue: %w", err)
	}

	c.logger.Debug("event published to queue",
		slog.String("type", event.Type),
		slog.Int64("customer_id", event.CustomerID),
	)

	return nil
}

// Consume receives events from the queue and processes them with the handler.
// concurrency is clamped to [1, 5].
func (c *redisClient) Consume(ctx context.Context, handler EventHandler, concurrency int) error {
	concurrency = clampConcurrency(concurrency)

	c.logger.Info("starting queue consumer",
		slog.String("queue", c.queueName),
		slog.Int("concurrency", concurrency),
	)

	semaphore := make(chan struct{}, concurrency)
	drain := func() {
		for i := 0; i < concurrency; i++ {
			semaphore <- struct{}{}
		}
	}

	for {
		select {
		case <-ctx.Done():
			c.logger.Info("consumer stopped by context, waiting for in-flight events")
			drain()
			return ctx.Err()
		default:
		}

		result, err := c.client.BRPop(ctx, time.Second, c.queueName).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				continue
			}
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				c.logger.Info("consumer stopped by context")
				drain()
				return err
			}
			c.logger.Error("failed to pop from queue", slog.String("error", err.Error()))
			time.Sleep(time.Second)
			continue
		}

		// BRPOP returns [queueName, value]
		if len(result) < 2 {
			c.logger.Error("unexpected BRPOP result format")
			continue
		}

		event, err := decodeEvent(result[1])
		if err != nil {
			c.logger.Error("failed to unmarshal event",
				slog.String("error", err.Error()),
				slog.String("data", result[1]),
			)
			continue
		}

		semaphore <- struct{}{}

		go func(event *models.CustomerEvent) {
			defer func() { <-semaphore }()

			if err := handler(ctx, event); err != nil {
				c.logger.Error("handler failed to process event",
					slog.String("type", event.Type),
					slog.Int64("customer_id", event.CustomerID),
					slog.String("error", err.Error()),
				)
			}
		}(event)
	}
}

// Close closes the Redis connection
func (c *redisClient) Close() error {
	c.logger.Info("closing Redis connection")
	return c.client.Close()
}

// Health checks if Redis is healthy
func (c *redisClient) Health(ctx context.Context) error {
	if err := c.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis health check failed: %w", err)
	}
	return nil
}

func decodeEvent(data string) (*models.CustomerEvent, error) {
	var event models.CustomerEvent
	if err := json.Unmarshal([]byte(data), &event); err != nil {
		return nil, err
	}
	if event.Type == "" || event.CustomerID == 0 {
		return nil, fmt.Errorf("incomplete event")
	}
	return &event, nil
}

func clampConcurrency(n int) int {
	if n < 1 {
		return 1
	}
	if n > maxConcurrency {
		return maxConcurrency
	}
	return n
}
