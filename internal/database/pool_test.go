package database

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

var (
	testDBConnString string
)

func TestMain(m *testing.M) {
	flag.Parse()

	var terminate func()

	if !testing.Short() {
		ctx := context.Background()
		var connStr string
		connStr, terminate = setupContainer(ctx)
		testDBConnString = connStr
	}

	code := m.Run()

	if terminate != nil {
		terminate()
	}

	os.Exit(code)
}

func setupContainer(ctx context.Context) (connStr string, terminate func()) {
	terminate = func() {}

	// Handle potential panics from testcontainers
	defer func() {
		if r := recover(); r != nil {
			fmt.Printf("Recovered from panic in setupContainer: %v\n", r)
		}
	}()

	pgContainer, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		fmt.Printf("WARNING: Failed to start postgres container: %v\n", err)
		return "", terminate
	}

	connStr, err = pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		fmt.Printf("WARNING: Failed to get connection string: %v\n", err)
		pgContainer.Terminate(ctx)
		return "", terminate
	}

	return connStr, func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			fmt.Printf("Failed to terminate container: %v\n", err)
		}
	}
}

func openMemory(t *testing.T) *DB {
	t.Helper()
	db, err := Open(context.Background(), DriverSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := Open(context.Background(), "mysql", "whatever")
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrMsgUnsupportedDriver)
}

func TestOpen_SQLiteFileCreatesDirectory(t *testing.T) {
	path := t.TempDir() + "/nested/dir/tracker.db"

	db, err := Open(context.Background(), DriverSQLite, path)
	require.NoError(t, err)
	defer db.Close()

	_, err = os.Stat(path)
	assert.NoError(t, err)
	assert.Equal(t, DriverSQLite, db.Dialect.Name())
}

func TestMigrate_SQLite(t *testing.T) {
	db := openMemory(t)
	ctx := context.Background()

	require.NoError(t, Migrate(ctx, db))
	// second run is a no-op
	require.NoError(t, Migrate(ctx, db))

	_, err := db.ExecContext(ctx,
		`INSERT INTO items (created_at, parts, line, reason, sequence, shift, notes, comments)
		 VALUES ('2024-01-01 08:00:00', 'Bolt', 'TRIM 1', 'Scratch', 1, 'BLUE', NULL, 'c')`)
	require.NoError(t, err)

	_, err = db.ExecContext(ctx, `INSERT INTO options (option_group, value) VALUES ('line', 'TRIM 1')`)
	require.NoError(t, err)
}

func TestMigrate_PropagatesGooseError(t *testing.T) {
	db := openMemory(t)

	orig := gooseUpContext
	defer func() { gooseUpContext = orig }()
	gooseUpContext = func(ctx context.Context, _ *sql.DB, dir string, _ ...goose.OptionsFunc) error {
		assert.Equal(t, "migrations/sqlite", dir)
		return errors.New("boom")
	}

	err := Migrate(context.Background(), db)
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrMsgFailedToRunMigrations)
}

func TestPostgresRebind(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"SELECT 1", "SELECT 1"},
		{"SELECT * FROM items WHERE id = ?", "SELECT * FROM items WHERE id = $1"},
		{"INSERT INTO t (a, b) VALUES (?, ?)", "INSERT INTO t (a, b) VALUES ($1, $2)"},
		{"SELECT '?' FROM t WHERE a = ?", "SELECT '?' FROM t WHERE a = $1"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Postgres.Rebind(tt.in))
		assert.Equal(t, tt.in, SQLite.Rebind(tt.in))
	}
}

func TestWithTx_CommitAndRollback(t *testing.T) {
	db := openMemory(t)
	ctx := context.Background()
	require.NoError(t, Migrate(ctx, db))

	insert := func(ctx context.Context, tx DBTX) error {
		_, err := tx.ExecContext(ctx, `INSERT INTO options (option_group, value) VALUES ('shift', 'BLUE')`)
		return err
	}

	require.NoError(t, WithTx(ctx, db.DB, insert))

	err := WithTx(ctx, db.DB, func(ctx context.Context, tx DBTX) error {
		if _, err := tx.ExecContext(ctx, `INSERT INTO options (option_group, value) VALUES ('shift', 'RED')`); err != nil {
			return err
		}
		return errors.New("abort")
	})
	require.Error(t, err)

	var n int
	require.NoError(t, db.QueryRowContext(ctx, `SELECT COUNT(*) FROM options`).Scan(&n))
	assert.Equal(t, 1, n, "rolled back insert must not persist")

	assert.Panics(t, func() {
		_ = WithTx(ctx, db.DB, func(ctx context.Context, tx DBTX) error { panic("kaboom") })
	})
	assert.Equal(t, 0, db.Stats().InUse, "connection must be released after panic")
}

// TestPostgres_OpenAndMigrate verifies the postgres migrations apply and
// connections are returned to the pool.
func TestPostgres_OpenAndMigrate(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	if testDBConnString == "" {
		t.Skip("Skipping integration test: database not available")
	}

	ctx := context.Background()
	db, err := Open(ctx, DriverPostgres, testDBConnString)
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, Migrate(ctx, db))

	for i := 0; i < 10; i++ {
		var result int
		require.NoError(t, db.QueryRowContext(ctx, db.Dialect.Rebind("SELECT ?::int"), i).Scan(&result))
		assert.Equal(t, i, result)
	}

	// Invalid SQL must not leak a connection
	_, err = db.QueryContext(ctx, "SELECT * FROM nonexistent_table_xyz")
	assert.Error(t, err)

	assert.Equal(t, 0, db.Stats().InUse, "All connections should be released")
}
