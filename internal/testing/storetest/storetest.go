// Package storetest provides a migrated in-memory store for package tests.
package storetest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/osse101/ScrapTracker_Go/internal/database"
	"github.com/osse101/ScrapTracker_Go/internal/database/sqlstore"
)

// NewSQLite opens a fresh in-memory SQLite database, applies every migration
// and closes it when the test finishes.
func NewSQLite(t testing.TB) *sqlstore.Store {
	t.Helper()
	ctx := context.Background()

	db, err := database.Open(ctx, database.DriverSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, database.Migrate(ctx, db))
	return sqlstore.New(db)
}
