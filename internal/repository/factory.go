package repository

import (
	"fmt"
	"log/slog"

	"github.com/Raymond9734/customer-manager/internal/db"
)

// Kind names a customer storage backend
type Kind string

const (
	// KindGorm stores customers through gorm entities
	KindGorm Kind = "gorm"
	// KindProcedure stores customers through stored functions
	KindProcedure Kind = "procedure"
)

// DriverName returns the database/sql driver the backend expects
func (k Kind) DriverName() string {
	if k == KindGorm {
		return db.DriverPGX
	}
	return db.DriverPQ
}

// New resolves the configured backend. It is called once at startup.
func New(kind Kind, database *db.DB, logger *slog.Logger) (CustomerRepository, error) {
	switch kind {
	case KindGorm:
		gormDB, err := database.Gorm(logger)
		if err != nil {
			return nil, err
		}
		return NewGormCustomerRepository(gormDB), nil

	case KindProcedure:
		return NewProcedureCustomerRepository(database.Sqlx()), nil

	default:
		return nil, fmt.Errorf("unknown data access type %q", kind)
	}
}
