package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	oteltrace "go.opentelemetry.io/otel/trace"

	"github.com/Raymond9734/customer-manager/internal/models"
	"github.com/Raymond9734/customer-manager/internal/queue"
	"github.com/Raymond9734/customer-manager/internal/repository"
	"github.com/Raymond9734/customer-manager/internal/tracing"
)

// CustomerService handles customer business logic
type CustomerService interface {
	List(ctx context.Context) ([]*models.CustomerRecord, error)
	GetByID(ctx context.Context, id int64) (*models.CustomerRecord, error)
	Create(ctx context.Context, record *models.CustomerRecord) (*models.CustomerRecord, error)
	Update(ctx context.Context, id int64, record *models.CustomerRecord) (*models.CustomerRecord, error)
	Delete(ctx context.Context, id int64) error
}

type customerService struct {
	customerRepo repository.CustomerRepository
	queueClient  queue.Client
	tracer       tracing.Tracer
	logger       *slog.Logger
}

// NewCustomerService creates a new customer service
func NewCustomerService(
	customerRepo repository.CustomerRepository,
	queueClient queue.Client,
	tracer tracing.Tracer,
	logger *slog.Logger,
) CustomerService {
	return &customerService{
		customerRepo: customerRepo,
		queueClient:  queueClient,
		tracer:       tracer,
		logger:       logger,
	}
}

// List retrieves every customer
func (s *customerService) List(ctx context.Context) ([]*models.CustomerRecord, error) {
	ctx, span := s.tracer.Start(ctx, "service.customer.List")
	defer span.End()

	records, err := s.customerRepo.List(ctx)
	if err != nil {
		recordSpanError(span, err)
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}

	span.SetAttributes(attribute.Int("customer.count", len(records)))
	return records, nil
}

// GetByID retrieves a customer by ID
func (s *customerService) GetByID(ctx context.Context, id int64) (*models.CustomerRecord, error) {
	ctx, span := s.tracer.Start(ctx, "service.customer.GetByID")
	defer span.End()
	span.SetAttributes(attribute.Int64("customer.id", id))

	record, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		recordSpanError(span, err)
		return nil, err
	}

	return record, nil
}

// Create validates and stores a new customer. Any id in the input is ignored.
func (s *customerService) Create(ctx context.Context, record *models.CustomerRecord) (*models.CustomerRecord, error) {
	ctx, span := s.tracer.Start(ctx, "service.customer.Create")
	defer span.End()

	if record == nil {
		return nil, models.ErrInvalidInput("customer is required")
	}

	candidate := *record
	candidate.ID = 0
	candidate.Normalize()

	if err := candidate.Validate(); err != nil {
		recordSpanError(span, err)
		return nil, err
	}

	created, err := s.customerRepo.Create(ctx, &candidate)
	if err != nil {
		recordSpanError(span, err)
		s.logFailure("failed to create customer", err)
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}

	span.SetAttributes(attribute.Int64("customer.id", created.ID))
	s.logger.Info("customer created",
		slog.Int64("customer_id", created.ID),
	)

	s.publish(ctx, models.EventCustomerCreated, created.ID)

	return created, nil
}

// Update validates and fully replaces an existing customer. The record id must
// equal id; an omitted body id counts as a mismatch.
func (s *customerService) Update(ctx context.Context, id int64, record *models.CustomerRecord) (*models.CustomerRecord, error) {
	ctx, span := s.tracer.Start(ctx, "service.customer.Update")
	defer span.End()
	span.SetAttributes(attribute.Int64("customer.id", id))

	if record == nil {
		return nil, models.ErrInvalidInput("customer is required")
	}

	if record.ID != id {
		err := models.ErrIDMismatchWithMsg(
			fmt.Sprintf("customer ID %d in body does not match ID %d in path", record.ID, id),
		)
		recordSpanError(span, err)
		return nil, err
	}

	candidate := *record
	candidate.Normalize()

	if err := candidate.Validate(); err != nil {
		recordSpanError(span, err)
		return nil, err
	}

	updated, err := s.customerRepo.Update(ctx, id, &candidate)
	if err != nil {
		recordSpanError(span, err)
		s.logFailure("failed to update customer", err, slog.Int64("customer_id", id))
		return nil, fmt.Errorf("failed to update customer: %w", err)
	}

	s.logger.Info("customer updated",
		slog.Int64("customer_id", id),
	)

	s.publish(ctx, models.EventCustomerUpdated, id)

	return updated, nil
}

// Delete removes a customer together with its contact numbers
func (s *customerService) Delete(ctx context.Context, id int64) error {
	ctx, span := s.tracer.Start(ctx, "service.customer.Delete")
	defer span.End()
	span.SetAttributes(attribute.Int64("customer.id", id))

	if err := s.customerRepo.Delete(ctx, id); err != nil {
		recordSpanError(span, err)
		s.logFailure("failed to delete customer", err, slog.Int64("customer_id", id))
		return fmt.Errorf("failed to delete customer: %w", err)
	}

	s.logger.Info("customer deleted",
		slog.Int64("customer_id", id),
	)

	s.publish(ctx, models.EventCustomerDeleted, id)

	return nil
}

// publish emits a change event. Failures are logged and never fail the caller.
func (s *customerService) publish(ctx context.Context, eventType string, customerID int64) {
	if err := s.queueClient.Publish(ctx, models.NewCustomerEvent(eventType, customerID)); err != nil {
		s.logger.Warn("failed to publish customer event",
			slog.String("type", eventType),
			slog.Int64("customer_id", customerID),
			slog.String("error", err.Error()),
		)
	}
}

// logFailure logs infrastructure errors at error level and expected domain
// outcomes such as NOT_FOUND or CONFLICT at info level.
func (s *customerService) logFailure(msg string, err error, attrs ...any) {
	attrs = append(attrs, slog.String("error", err.Error()))

	var appErr *models.AppError
	if errors.As(err, &appErr) {
		s.logger.Info(msg, append(attrs, slog.String("code", appErr.Code))...)
		return
	}
	s.logger.Error(msg, attrs...)
}

// recordSpanError marks the span failed for infrastructure errors and only
// annotates it for expected domain outcomes.
func recordSpanError(span oteltrace.Span, err error) {
	span.RecordError(err)

	var appErr *models.AppError
	if errors.As(err, &appErr) {
		span.SetAttributes(attribute.String("error.code", appErr.Code))
		return
	}
	span.SetStatus(codes.Error, err.Error())
}
