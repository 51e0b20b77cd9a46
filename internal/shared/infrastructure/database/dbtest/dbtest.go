// Package dbtest opens migrated SQLite databases for repository tests.
package dbtest

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/felixgeelhaar/dayquest/internal/shared/infrastructure/database"
	_ "github.com/felixgeelhaar/dayquest/internal/shared/infrastructure/database/sqlite"
	"github.com/felixgeelhaar/dayquest/internal/shared/infrastructure/migrations"
	"github.com/stretchr/testify/require"
)

// NewSQLite returns a connection to a fresh, fully migrated database in the
// test's temp dir. It is closed when the test ends.
func NewSQLite(t testing.TB) database.Connection {
	t.Helper()

	ctx := context.Background()
	conn, err := database.NewConnection(ctx, database.Config{
		Driver:     database.DriverSQLite,
		SQLitePath: filepath.Join(t.TempDir(), "dayquest.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	require.NoError(t, migrations.Run(ctx, conn))
	return conn
}
