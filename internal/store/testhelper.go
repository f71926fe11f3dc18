package store

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"testing"

	"finecho-server/internal/observability"

	"github.com/jmoiron/sqlx"
)

// TestDB wraps a test database instance
type TestDB struct {
	db     *sqlx.DB
	logger *observability.Logger
	Store  Store
}

// SetupTestDB connects to the Postgres instance described by the TEST_DB_* variables
// and applies the embedded schema. The test is skipped when no database is reachable.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	db, err := setupPostgresDB(t)
	if err != nil {
		t.Skipf("postgres not available: %v", err)
	}

	if err := runMigrations(db); err != nil {
		t.Fatalf("failed to apply migrations: %v", err)
	}

	logger := observability.NewNopLogger()
	return &TestDB{
		db:     db,
		logger: logger,
		Store:  Store{db: db, logger: logger},
	}
}

func setupPostgresDB(t *testing.T) (*sqlx.DB, error) {
	t.Helper()

	connStr := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		envOr("TEST_DB_USER", "finecho"),
		envOr("TEST_DB_PASSWORD", "finecho"),
		envOr("TEST_DB_HOST", "localhost"),
		envOr("TEST_DB_PORT", "5432"),
		envOr("TEST_DB_NAME", "finecho_test"),
	)

	db, err := sqlx.Open("pgx", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	t.Cleanup(func() {
		db.Close()
	})

	return db, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// runMigrations applies every embedded up migration. The schema uses IF NOT EXISTS
// so repeated runs against the same database are harmless.
func runMigrations(db *sqlx.DB) error {
	files, err := fs.Glob(Migrations, "migrations/*.up.sql")
	if err != nil {
		return fmt.Errorf("failed to read migration files: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("no migration files embedded")
	}
	sort.Strings(files)

	for _, file := range files {
		content, err := fs.ReadFile(Migrations, file)
		if err != nil {
			return fmt.Errorf("failed to read migration file %s: %w", file, err)
		}
		if _, err := db.Exec(string(content)); err != nil {
			return fmt.Errorf("failed to execute migration %s: %w", file, err)
		}
	}
	return nil
}

// Truncate clears all data from tables while preserving schema
func (tdb *TestDB) Truncate(t *testing.T) {
	t.Helper()
	if _, err := tdb.db.Exec("TRUNCATE TABLE summaries, calls, clients, profiles CASCADE"); err != nil {
		t.Fatalf("failed to truncate tables: %v", err)
	}
}

// GetDB returns the underlying sqlx.DB for direct access if needed
func (tdb *TestDB) GetDB() *sqlx.DB {
	return tdb.db
}

// MustExec executes SQL and fails the test if there's an error
func (tdb *TestDB) MustExec(t *testing.T, query string, args ...interface{}) {
	t.Helper()
	if _, err := tdb.db.Exec(query, args...); err != nil {
		t.Fatalf("failed to execute SQL: %v", err)
	}
}

// WithContext returns a context for testing
func (tdb *TestDB) WithContext() context.Context {
	return context.Background()
}
