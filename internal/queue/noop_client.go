package queue

import (
	"context"
	"log/slog"

	"github.com/Raymond9734/customer-manager/internal/models"
)

// noopClient drops every event. It is used when no Redis URL is configured.
type noopClient struct {
	logger *slog.Logger
}

// NewNoopClient creates a queue client that publishes nowhere
func NewNoopClient(logger *slog.Logger) Client {
	return &noopClient{logger: logger}
}

func (c *noopClient) Publish(ctx context.Context, event *models.CustomerEvent) error {
	c.logger.Debug("queue disabled, dropping event",
		slog.String("type", event.Type),
		slog.Int64("customer_id", event.CustomerID),
	)
	return nil
}

// Consume blocks until the context is cancelled
func (c *noopClient) Consume(ctx context.Context, handler EventHandler, concurrency int) error {
	<-ctx.Done()
	return ctx.Err()
}

func (c *noopClient) Close() error {
	return nil
}

func (c *noopClient) Health(ctx context.Context) error {
	return nil
}
