package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sharedApplication "github.com/felixgeelhaar/dayquest/internal/shared/application"
	"github.com/felixgeelhaar/dayquest/internal/shared/infrastructure/database"
)

func openTestConnection(t *testing.T) database.Connection {
	t.Helper()
	conn, err := database.NewConnection(context.Background(), database.Config{
		Driver:     database.DriverSQLite,
		SQLitePath: filepath.Join(t.TempDir(), "nested", "test.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func countRows(t *testing.T, exec database.Executor) int {
	t.Helper()
	var n int
	require.NoError(t, exec.QueryRow(context.Background(), `SELECT COUNT(*) FROM kv`).Scan(&n))
	return n
}

func TestNewConnection_RegisteredDriver(t *testing.T) {
	conn := openTestConnection(t)

	assert.Equal(t, database.DriverSQLite, conn.Driver())
	assert.NoError(t, conn.Ping(context.Background()))
}

func TestConnection_ExecAndQuery(t *testing.T) {
	ctx := context.Background()
	conn := openTestConnection(t)

	_, err := conn.Exec(ctx, `CREATE TABLE kv (k TEXT PRIMARY KEY, v INTEGER NOT NULL)`)
	require.NoError(t, err)

	result, err := conn.Exec(ctx, `INSERT INTO kv (k, v) VALUES (?, ?), (?, ?)`, "a", 1, "b", 2)
	require.NoError(t, err)
	affected, err := result.RowsAffected()
	require.NoError(t, err)
	assert.Equal(t, int64(2), affected)

	result, err = conn.Exec(ctx, `INSERT INTO kv (k, v) VALUES (?, ?) ON CONFLICT (k) DO NOTHING`, "a", 9)
	require.NoError(t, err)
	affected, _ = result.RowsAffected()
	assert.Equal(t, int64(0), affected)

	rows, err := conn.Query(ctx, `SELECT k, v FROM kv ORDER BY k`)
	require.NoError(t, err)
	defer rows.Close()

	got := map[string]int{}
	for rows.Next() {
		var k string
		var v int
		require.NoError(t, rows.Scan(&k, &v))
		got[k] = v
	}
	require.NoError(t, rows.Err())
	assert.Equal(t, map[string]int{"a": 1, "b": 2}, got)

	err = conn.QueryRow(ctx, `SELECT v FROM kv WHERE k = ?`, "zzz").Scan(new(int))
	assert.True(t, database.IsNoRows(err))
}

func TestGenericUnitOfWork(t *testing.T) {
	ctx := context.Background()
	conn := openTestConnection(t)
	_, err := conn.Exec(ctx, `CREATE TABLE kv (k TEXT PRIMARY KEY, v INTEGER NOT NULL)`)
	require.NoError(t, err)

	uow := database.NewUnitOfWork(conn)
	insert := func(ctx context.Context, k string) error {
		_, err := database.ExecutorFromContext(ctx, conn).Exec(ctx, `INSERT INTO kv (k, v) VALUES (?, 1)`, k)
		return err
	}

	t.Run("commits both statements", func(t *testing.T) {
		err := sharedApplication.WithUnitOfWork(ctx, uow, func(txCtx context.Context) error {
			if err := insert(txCtx, "first"); err != nil {
				return err
			}
			return insert(txCtx, "second")
		})
		require.NoError(t, err)
		assert.Equal(t, 2, countRows(t, conn))
	})

	t.Run("rolls back on error", func(t *testing.T) {
		err := sharedApplication.WithUnitOfWork(ctx, uow, func(txCtx context.Context) error {
			if err := insert(txCtx, "third"); err != nil {
				return err
			}
			return errors.New("abort")
		})
		require.Error(t, err)
		assert.Equal(t, 2, countRows(t, conn))
	})

	t.Run("nested unit joins outer transaction", func(t *testing.T) {
		err := sharedApplication.WithUnitOfWork(ctx, uow, func(outer context.Context) error {
			inner := sharedApplication.WithUnitOfWork(outer, uow, func(innerCtx context.Context) error {
				return insert(innerCtx, "nested")
			})
			require.NoError(t, inner)
			return errors.New("outer fails after inner committed")
		})
		require.Error(t, err)
		assert.Equal(t, 2, countRows(t, conn))
	})

	t.Run("commit without transaction fails", func(t *testing.T) {
		assert.Error(t, uow.Commit(ctx))
		assert.Error(t, uow.Rollback(ctx))
	})
}
