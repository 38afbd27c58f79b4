package repository

import (
	"context"

	"github.com/Raymond9734/customer-manager/internal/models"
)

// CustomerRepository defines the interface for customer data access.
// Implementations treat a customer and its contact numbers as one entity and
// trust that records were validated by the caller.
type CustomerRepository interface {
	List(ctx context.Context) ([]*models.CustomerRecord, error)
	GetByID(ctx context.Context, id int64) (*models.CustomerRecord, error)
	Create(ctx context.Context, record *models.CustomerRecord) (*models.CustomerRecord, error)
	Update(ctx context.Context, id int64, record *models.CustomerRecord) (*models.CustomerRecord, error)
	Delete(ctx context.Context, id int64) error
}
