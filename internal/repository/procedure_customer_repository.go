package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/Raymond9734/customer-manager/internal/models"
)

// Stored functions installed by the schema migrations
const (
	queryGetCustomers    = `SELECT * FROM usp_get_customers()`
	queryGetCustomerByID = `SELECT * FROM usp_get_customer_by_id($1)`
	queryInsertCustomer  = `SELECT usp_insert_customer($1, $2, $3, $4, $5, $6, $7)`
	queryUpdateCustomer  = `SELECT usp_update_customer($1, $2, $3, $4, $5, $6, $7, $8)`
	queryDeleteCustomer  = `SELECT usp_delete_customer($1)`
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// procedureCustomerRepository implements CustomerRepository by calling stored
// functions. Each operation runs on its own pooled connection.
type procedureCustomerRepository struct {
	db *sqlx.DB
}

// NewProcedureCustomerRepository creates a customer repository backed by stored functions
func NewProcedureCustomerRepository(db *sqlx.DB) CustomerRepository {
	return &procedureCustomerRepository{db: db}
}

// List retrieves every customer with its contact numbers, ordered by id
func (r *procedureCustomerRepository) List(ctx context.Context) ([]*models.CustomerRecord, error) {
	records := []*models.CustomerRecord{}

	err := r.withConn(ctx, func(conn *sqlx.Conn) error {
		return conn.SelectContext(ctx, &records, queryGetCustomers)
	})
	if err != nil {
		return nil, classifyError("list customers", err)
	}

	return records, nil
}

// GetByID retrieves a customer by ID
func (r *procedureCustomerRepository) GetByID(ctx context.Context, id int64) (*models.CustomerRecord, error) {
	record := &models.CustomerRecord{}

	err := r.withConn(ctx, func(conn *sqlx.Conn) error {
		return conn.GetContext(ctx, record, queryGetCustomerByID, id)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound(id)
	}
	if err != nil {
		return nil, classifyError("get customer", err)
	}

	return record, nil
}

// Create inserts the customer and its contact numbers through usp_insert_customer
func (r *procedureCustomerRepository) Create(ctx context.Context, record *models.CustomerRecord) (*models.CustomerRecord, error) {
	var id int64

	err := r.withConn(ctx, func(conn *sqlx.Conn) error {
		return conn.QueryRowxContext(
			ctx,
			queryInsertCustomer,
			record.FirstName,
			record.LastName,
			record.Address,
			record.Email,
			record.HomeNumber,
			record.WorkNumber,
			record.MobileNumber,
		).Scan(&id)
	})
	if err != nil {
		return nil, classifyError("create customer", err)
	}

	created := *record
	created.ID = id
	return &created, nil
}

// Update replaces all mutable fields of the customer and its contact numbers
func (r *procedureCustomerRepository) Update(ctx context.Context, id int64, record *models.CustomerRecord) (*models.CustomerRecord, error) {
	err := r.withConn(ctx, func(conn *sqlx.Conn) error {
		if err := r.ensureExists(ctx, conn, id); err != nil {
			return err
		}

		_, err := conn.ExecContext(
			ctx,
			queryUpdateCustomer,
			id,
			record.FirstName,
			record.LastName,
			record.Address,
			record.Email,
			record.HomeNumber,
			record.WorkNumber,
			record.MobileNumber,
		)
		return err
	})
	if err != nil {
		return nil, classifyError("update customer", err)
	}

	updated := *record
	updated.ID = id
	return &updated, nil
}

// Delete removes the contact numbers and then the customer
func (r *procedureCustomerRepository) Delete(ctx context.Context, id int64) error {
	err := r.withConn(ctx, func(conn *sqlx.Conn) error {
		if err := r.ensureExists(ctx, conn, id); err != nil {
			return err
		}

		_, err := conn.ExecContext(ctx, queryDeleteCustomer, id)
		return err
	})
	if err != nil {
		return classifyError("delete customer", err)
	}

	return nil
}

// ensureExists returns a NOT_FOUND error when no customer has the given id
func (r *procedureCustomerRepository) ensureExists(ctx context.Context, conn *sqlx.Conn, id int64) error {
	query, args, err := psql.Select("COUNT(*)").
		From("customers").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build existence query: %w", err)
	}

	var count int
	if err := conn.QueryRowxContext(ctx, query, args...).Scan(&count); err != nil {
		return fmt.Errorf("failed to check customer existence: %w", err)
	}

	if count == 0 {
		return notFound(id)
	}

	return nil
}

// withConn runs fn on a dedicated connection and releases it afterwards
func (r *procedureCustomerRepository) withConn(ctx context.Context, fn func(conn *sqlx.Conn) error) error {
	conn, err := r.db.Connx(ctx)
	if err != nil {
		return fmt.Errorf("failed to acquire connection: %w", err)
	}
	defer conn.Close()

	return fn(conn)
}
