package queue

import (
	"context"

	"github.com/Raymond9734/customer-manager/internal/models"
)

// Client defines the interface for queue operations
type Client interface {
	// Publish sends a customer event to the queue
	Publish(ctx context.Context, event *models.CustomerEvent) error

	// Consume receives events from the queue and processes them with the handler.
	// concurrency controls how many events can be processed simultaneously.
	Consume(ctx context.Context, handler EventHandler, concurrency int) error

	// Close closes the queue connection
	Close() error

	// Health checks if the queue is healthy
	Health(ctx context.Context) error
}

// EventHandler is a function that processes a customer event
type EventHandler func(ctx context.Context, event *models.CustomerEvent) error
