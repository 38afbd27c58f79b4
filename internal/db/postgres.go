package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"go.nhat.io/otelsql"
	semconv "go.opentelemetry.io/otel/semconv/v1.20.0"
)

// Supported database/sql drivers
const (
	DriverPQ  = "postgres"
	DriverPGX = "pgx"
)

// DB wraps the database connection
type DB struct {
	*sql.DB
	driver string
}

// Config holds database configuration
type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
	// Driver is the database/sql driver wrapped with tracing, DriverPQ or DriverPGX
	Driver string
}

// DSN returns the key/value connection string understood by both drivers
func (c Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

// New opens a traced connection pool and verifies it
func New(cfg Config) (*DB, error) {
	return Open(cfg.Driver, cfg.DSN(), cfg.DBName)
}

// Open is like New but takes a ready-made connection string
func Open(driver, dsn, dbName string) (*DB, error) {
	if driver == "" {
		driver = DriverPQ
	}

	driverName, err := otelsql.Register(driver,
		otelsql.AllowRoot(),
		otelsql.TraceQueryWithoutArgs(),
		otelsql.TraceRowsClose(),
		otelsql.TraceRowsAffected(),
		otelsql.WithDatabaseName(dbName),
		otelsql.WithSystem(semconv.DBSystemPostgreSQL),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to register traced driver: %w", err)
	}

	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Configure connection pool for production
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := otelsql.RecordStats(db,
		otelsql.WithDatabaseName(dbName),
		otelsql.WithSystem(semconv.DBSystemPostgreSQL),
	); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to record database stats: %w", err)
	}

	return &DB{DB: db, driver: driver}, nil
}

// DriverName returns the wrapped driver name
func (db *DB) DriverName() string {
	return db.driver
}

// Sqlx returns an sqlx handle sharing this pool
func (db *DB) Sqlx() *sqlx.DB {
	return sqlx.NewDb(db.DB, "postgres")
}

// Close closes the database connection gracefully
func (db *DB) Close() error {
	return db.DB.Close()
}

// Health performs a health check on the database
func (db *DB) Health(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	var result int
	err := db.QueryRowContext(ctx, "SELECT 1").Scan(&result)
	if err != nil {
		return fmt.Errorf("database health check failed: %w", err)
	}

	if result != 1 {
		return fmt.Errorf("unexpected health check result: %d", result)
	}

	return nil
}
