package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Raymond9734/customer-manager/internal/models"
)

var contactColumns = []string{"id", "home_number", "work_number", "mobile_number", "customer_id"}

func newGormRepo(t *testing.T) (CustomerRepository, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = mockDB.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: mockDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Discard,
	})
	require.NoError(t, err)

	return NewGormCustomerRepository(gormDB), mock
}

func TestGormRepository_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("found with contact numbers", func(t *testing.T) {
		repo, mock := newGormRepo(t)
		mock.ExpectQuery(`SELECT \* FROM "customers"`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "first_name", "last_name", "address", "email"}).
				AddRow(int64(1), "Ana", "Popescu", "1 Main St", "ana@example.com"))
		mock.ExpectQuery(`SELECT \* FROM "contact_numbers"`).
			WillReturnRows(sqlmock.NewRows(contactColumns).
				AddRow(int64(10), nil, nil, "555-1111", int64(1)))

		record, err := repo.GetByID(ctx, 1)

		require.NoError(t, err)
		want := anaPopescu()
		want.ID = 1
		assert.Equal(t, want, record)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		repo, mock := newGormRepo(t)
		mock.ExpectQuery(`SELECT \* FROM "customers"`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := repo.GetByID(ctx, 42)

		require.Error(t, err)
		assert.True(t, errors.Is(err, models.ErrNotFound))
	})
}

func TestGormRepository_List(t *testing.T) {
	repo, mock := newGormRepo(t)
	mock.ExpectQuery(`SELECT \* FROM "customers" ORDER BY id`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	records, err := repo.List(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func TestGormRepository_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("inserts both rows in one transaction", func(t *testing.T) {
		repo, mock := newGormRepo(t)
		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO "customers"`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))
		mock.ExpectQuery(`INSERT INTO "contact_numbers"`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(3)))
		mock.ExpectCommit()

		created, err := repo.Create(ctx, anaPopescu())

		require.NoError(t, err)
		assert.Equal(t, int64(7), created.ID)
		assert.Equal(t, "555-1111", *created.MobileNumber)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("failed contact insert rolls back the customer", func(t *testing.T) {
		repo, mock := newGormRepo(t)
		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO "customers"`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))
		mock.ExpectQuery(`INSERT INTO "contact_numbers"`).
			WillReturnError(&pgconn.PgError{Code: "23505", Message: "duplicate key value"})
		mock.ExpectRollback()

		_, err := repo.Create(ctx, anaPopescu())

		require.Error(t, err)
		assert.True(t, errors.Is(err, models.ErrConflict))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormRepository_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("missing customer is not found", func(t *testing.T) {
		repo, mock := newGormRepo(t)
		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT "id" FROM "customers"`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))
		mock.ExpectRollback()

		_, err := repo.Update(ctx, 5, anaPopescu())

		require.Error(t, err)
		assert.True(t, errors.Is(err, models.ErrNotFound))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("replaces customer and contact numbers", func(t *testing.T) {
		repo, mock := newGormRepo(t)
		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT "id" FROM "customers"`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(5)))
		mock.ExpectExec(`UPDATE "customers" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery(`SELECT \* FROM "contact_numbers" WHERE customer_id = \$1`).
			WillReturnRows(sqlmock.NewRows(contactColumns).
				AddRow(int64(10), "555-0000", nil, nil, int64(5)))
		mock.ExpectExec(`UPDATE "contact_numbers" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		updated, err := repo.Update(ctx, 5, anaPopescu())

		require.NoError(t, err)
		assert.Equal(t, int64(5), updated.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("recreates missing contact numbers", func(t *testing.T) {
		repo, mock := newGormRepo(t)
		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT "id" FROM "customers"`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(5)))
		mock.ExpectExec(`UPDATE "customers" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery(`SELECT \* FROM "contact_numbers" WHERE customer_id = \$1`).
			WillReturnRows(sqlmock.NewRows(contactColumns))
		mock.ExpectQuery(`INSERT INTO "contact_numbers"`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(11)))
		mock.ExpectCommit()

		_, err := repo.Update(ctx, 5, anaPopescu())

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormRepository_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("missing customer is not found", func(t *testing.T) {
		repo, mock := newGormRepo(t)
		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT "id" FROM "customers"`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))
		mock.ExpectRollback()

		err := repo.Delete(ctx, 3)

		require.Error(t, err)
		assert.True(t, errors.Is(err, models.ErrNotFound))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("removes contact numbers before the customer", func(t *testing.T) {
		repo, mock := newGormRepo(t)
		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT "id" FROM "customers"`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(3)))
		mock.ExpectExec(`DELETE FROM "contact_numbers"`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`DELETE FROM "customers"`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		require.NoError(t, repo.Delete(ctx, 3))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
