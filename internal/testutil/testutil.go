package testutil

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/xhrissun/rhrmpsb-system-sub000/internal/database"
)

// TestDatabase holds a migrated PostgreSQL container
type TestDatabase struct {
	Container *postgres.PostgresContainer
	DB        *sql.DB
	ConnStr   string
}

// SetupTestDatabase starts PostgreSQL, applies the migrations and registers
// cleanup. Tests are skipped under -short or without a container provider.
func SetupTestDatabase(t *testing.T) *TestDatabase {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()
	container, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("rhrmpsb_test"),
		postgres.WithUsername("rhrmpsb_test"),
		postgres.WithPassword("rhrmpsb_test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	if err != nil {
		t.Fatalf("Failed to start PostgreSQL container: %v", err)
	}

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("Failed to get connection string: %v", err)
	}

	db, err := database.Open(ctx, connStr, 0, 0, 0)
	if err != nil {
		t.Fatalf("Failed to connect to database: %v", err)
	}

	if _, err := database.NewMigrationExecutor(db.DB, MigrationsDir()).Up(ctx); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	tdb := &TestDatabase{Container: container, DB: db.DB, ConnStr: connStr}
	t.Cleanup(func() { tdb.Cleanup(t) })
	return tdb
}

// Cleanup closes the connection and terminates the container
func (tdb *TestDatabase) Cleanup(t *testing.T) {
	t.Helper()

	if tdb.DB != nil {
		tdb.DB.Close()
	}
	if tdb.Container != nil {
		if err := tdb.Container.Terminate(context.Background()); err != nil {
			t.Errorf("Failed to terminate PostgreSQL container: %v", err)
		}
	}
}

// MigrationsDir locates the migrations directory from a package test directory
func MigrationsDir() string {
	for _, dir := range []string{
		filepath.Join("..", "..", "migrations"),
		filepath.Join("..", "..", "..", "migrations"),
		"migrations",
	} {
		if _, err := os.Stat(dir); err == nil {
			return dir
		}
	}
	return filepath.Join("..", "..", "migrations")
}
