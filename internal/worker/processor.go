package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/Raymond9734/customer-manager/internal/models"
	"github.com/Raymond9734/customer-manager/internal/queue"
	"github.com/Raymond9734/customer-manager/internal/repository"
)

// Audit outcomes
const (
	OutcomeConsistent   = "consistent"
	OutcomeInconsistent = "inconsistent"
	OutcomeSuperseded   = "superseded"
	OutcomeRetried      = "retried"
	OutcomeFailed       = "failed"
)

var auditEventsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "customer_manager_audit_events_total",
	Help: "Customer change events audited by the worker, by event type and outcome.",
}, []string{"type", "outcome"})

// AuditProcessor checks that storage agrees with each customer change event
type AuditProcessor struct {
	customerRepo repository.CustomerRepository
	queueClient  queue.Client
	maxRetries   int
	logger       *slog.Logger
}

// NewAuditProcessor creates a new audit processor
func NewAuditProcessor(
	customerRepo repository.CustomerRepository,
	queueClient queue.Client,
	maxRetries int,
	logger *slog.Logger,
) *AuditProcessor {
	return &AuditProcessor{
		customerRepo: customerRepo,
		queueClient:  queueClient,
		maxRetries:   maxRetries,
		logger:       logger,
	}
}

// Process audits a single event. Only exhausted storage failures are returned.
func (p *AuditProcessor) Process(ctx context.Context, event *models.CustomerEvent) error {
	outcome, err := p.audit(ctx, event)
	auditEventsTotal.WithLabelValues(event.Type, outcome).Inc()
	return err
}

func (p *AuditProcessor) audit(ctx context.Context, event *models.CustomerEvent) (string, error) {
	record, err := p.customerRepo.GetByID(ctx, event.CustomerID)

	switch event.Type {
	case models.EventCustomerCreated, models.EventCustomerUpdated:
		if errors.Is(err, models.ErrNotFound) {
			// deleted after the event was published
			p.logger.Info("customer no longer exists",
				slog.String("type", event.Type),
				slog.Int64("customer_id", event.CustomerID),
			)
			return OutcomeSuperseded, nil
		}
		if err != nil {
			return p.handleFailure(ctx, event, err)
		}
		if !record.HasContactNumber() {
			p.logger.Error("stored customer has no contact number",
				slog.String("type", event.Type),
				slog.Int64("customer_id", event.CustomerID),
			)
			return OutcomeInconsistent, nil
		}

	case models.EventCustomerDeleted:
		if err == nil {
			p.logger.Error("deleted customer is still stored",
				slog.Int64("customer_id", event.CustomerID),
			)
			return OutcomeInconsistent, nil
		}
		if !errors.Is(err, models.ErrNotFound) {
			return p.handleFailure(ctx, event, err)
		}

	default:
		p.logger.Warn("ignoring unknown event type",
			slog.String("type", event.Type),
			slog.Int64("customer_id", event.CustomerID),
		)
		return OutcomeFailed, nil
	}

	p.logger.Debug("customer event audited",
		slog.String("type", event.Type),
		slog.Int64("customer_id", event.CustomerID),
	)
	return OutcomeConsistent, nil
}

// handleFailure republishes the event until maxRetries attempts have been made
func (p *AuditProcessor) handleFailure(ctx context.Context, event *models.CustomerEvent, cause error) (string, error) {
	if event.Attempt+1 >= p.maxRetries {
		p.logger.Error("customer event audit failed after max retries",
			slog.String("type", event.Type),
			slog.Int64("customer_id", event.CustomerID),
			slog.Int("attempt", event.Attempt+1),
			slog.Int("max_retries", p.maxRetries),
			slog.String("error", cause.Error()),
		)
		return OutcomeFailed, fmt.Errorf("audit failed after %d attempts: %w", event.Attempt+1, cause)
	}

	retry := *event
	retry.Attempt++

	p.logger.Warn("customer event audit will be retried",
		slog.String("type", event.Type),
		slog.Int64("customer_id", event.CustomerID),
		slog.Int("attempt", retry.Attempt),
		slog.String("error", cause.Error()),
	)

	if err := p.queueClient.Publish(ctx, &retry); err != nil {
		return OutcomeFailed, fmt.Errorf("failed to requeue event: %w", err)
	}

	return OutcomeRetried, nil
}
