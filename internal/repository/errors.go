package repository

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"

	"github.com/Raymond9734/customer-manager/internal/models"
)

// Postgres SQLSTATE codes reported as conflicts
const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
	checkViolation      = "23514"
)

// classifyError wraps a storage error. Constraint violations from either
// driver become CONFLICT errors, everything else stays an infrastructure error.
func classifyError(op string, err error) error {
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		return err
	}

	if code, detail, ok := constraintCode(err); ok {
		switch code {
		case uniqueViolation, foreignKeyViolation, checkViolation:
			return models.ErrConflictWithMsg(fmt.Sprintf("failed to %s: %s", op, detail))
		}
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}

func constraintCode(err error) (code, detail string, ok bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code, pgErr.Message, true
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code), pqErr.Message, true
	}

	return "", "", false
}

func notFound(id int64) error {
	return models.ErrNotFoundWithMsg(fmt.Sprintf("customer with ID %d not found", id))
}
