package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/marmos91/retrogg/pkg/models"
)

// Connection pool settings for PostgreSQL.
const (
	postgresMaxOpenConns = 25
	postgresMaxIdleConns = 5
)

// Config contains database configuration.
type Config struct {
	// DSN selects the backend: a postgres:// or postgresql:// URL opens a
	// PostgreSQL connection, anything else is treated as a SQLite file path.
	// Default: ./gg.db
	DSN string
}

// ApplyDefaults fills in missing configuration with default values.
func (c *Config) ApplyDefaults() {
	if c.DSN == "" {
		c.DSN = "./gg.db"
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.DSN == "" {
		return fmt.Errorf("database dsn is required")
	}
	return nil
}

// IsPostgres reports whether the DSN selects the PostgreSQL backend.
func (c *Config) IsPostgres() bool {
	return strings.HasPrefix(c.DSN, "postgres://") ||
		strings.HasPrefix(c.DSN, "postgresql://")
}

// GORMStore implements the Store interface using GORM.
// It supports both SQLite and PostgreSQL backends via the same codebase.
type GORMStore struct {
	db     *gorm.DB
	config *Config
}

// New creates a new store based on the configuration.
// It automatically creates the database schema via GORM AutoMigrate.
func New(config *Config) (*GORMStore, error) {
	if config == nil {
		config = &Config{}
	}

	// Apply defaults if not set
	config.ApplyDefaults()

	// Validate configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid database configuration: %w", err)
	}

	// Create the appropriate database connection
	var dialector gorm.Dialector
	if config.IsPostgres() {
		dialector = postgres.Open(config.DSN)
	} else {
		// Ensure parent directory exists for SQLite
		if err := os.MkdirAll(filepath.Dir(config.DSN), 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
		// SQLite pragmas for better concurrent access:
		// - journal_mode(WAL): Write-Ahead Logging for concurrent readers/single writer
		// - busy_timeout(5000): Wait up to 5 seconds when database is locked
		dsn := config.DSN + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
		dialector = sqlite.Open(dsn)
	}

	// Configure GORM
	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent), // Suppress GORM logs by default
	}

	// Open database connection
	db, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Configure connection pool for PostgreSQL
	if config.IsPostgres() {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get underlying database: %w", err)
		}
		sqlDB.SetMaxOpenConns(postgresMaxOpenConns)
		sqlDB.SetMaxIdleConns(postgresMaxIdleConns)
	}

	// Run auto-migration
	if err := db.AutoMigrate(models.AllModels()...); err != nil {
		return nil, fmt.Errorf("failed to run database migration: %w", err)
	}

	return &GORMStore{
		db:     db,
		config: config,
	}, nil
}

// DB returns the underlying GORM database connection.
// This is useful for advanced queries or testing.
func (s *GORMStore) DB() *gorm.DB {
	return s.db
}

// isUniqueConstraintError checks if the error is a unique constraint violation.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	// SQLite or PostgreSQL unique constraint errors
	return strings.Contains(errStr, "UNIQUE constraint failed") ||
		strings.Contains(errStr, "duplicate key value violates unique constraint")
}

// isEmailConstraintError checks if a unique constraint violation concerns the
// email column. Both SQLite and PostgreSQL name the offending column or index
// in the error text.
func isEmailConstraintError(err error) bool {
	return isUniqueConstraintError(err) && strings.Contains(err.Error(), "email")
}

// convertNotFoundError converts gorm.ErrRecordNotFound to the appropriate domain error.
func convertNotFoundError(err error, notFoundErr error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFoundErr
	}
	return err
}
