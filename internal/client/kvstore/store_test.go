package kvstore

import (
	"context"
	"database/sql"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// runStoreContract exercises the behaviour every Store backend must share.
func runStoreContract(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	t.Run("absent key is not an error", func(t *testing.T) {
		v, found, err := s.Get(ctx, "absent")
		require.NoError(t, err)
		require.False(t, found)
		require.Empty(t, v)
	})

	t.Run("set then get", func(t *testing.T) {
		require.NoError(t, s.Set(ctx, "k1", `{"email":"a@b.c"}`))
		v, found, err := s.Get(ctx, "k1")
		require.NoError(t, err)
		require.True(t, found)
		require.Equal(t, `{"email":"a@b.c"}`, v)
	})

	t.Run("set overwrites", func(t *testing.T) {
		require.NoError(t, s.Set(ctx, "k2", "old"))
		require.NoError(t, s.Set(ctx, "k2", "new"))
		v, _, err := s.Get(ctx, "k2")
		require.NoError(t, err)
		require.Equal(t, "new", v)
	})

	t.Run("empty value is present", func(t *testing.T) {
		require.NoError(t, s.Set(ctx, "empty", ""))
		_, found, err := s.Get(ctx, "empty")
		require.NoError(t, err)
		require.True(t, found)
	})

	t.Run("remove is idempotent", func(t *testing.T) {
		require.NoError(t, s.Set(ctx, "x", "1"))
		require.NoError(t, s.Remove(ctx, "x"))
		_, found, err := s.Get(ctx, "x")
		require.NoError(t, err)
		require.False(t, found)
		require.NoError(t, s.Remove(ctx, "x"))
	})

	t.Run("distinct keys do not interfere", func(t *testing.T) {
		require.NoError(t, s.Set(ctx, "@OnTrail:auth_token", "a"))
		require.NoError(t, s.Set(ctx, "@OnTrail:credentials", "c"))
		require.NoError(t, s.Remove(ctx, "@OnTrail:auth_token"))
		v, found, err := s.Get(ctx, "@OnTrail:credentials")
		require.NoError(t, err)
		require.True(t, found)
		require.Equal(t, "c", v)
	})
}

func TestMemory_Contract(t *testing.T) {
	runStoreContract(t, NewMemory())
}

func TestMemory_ConcurrentWriters(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = m.Set(ctx, "same", "v")
			_, _, _ = m.Get(ctx, "same")
		}()
	}
	wg.Wait()

	v, found, err := m.Get(ctx, "same")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "v", v)
}

func openTestSQLite(t *testing.T) (*SQLite, *sql.DB) {
	t.Helper()
	s, db, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "kv.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return s, db
}

func TestSQLite_Contract(t *testing.T) {
	s, _ := openTestSQLite(t)
	runStoreContract(t, s)
}

func TestSQLite_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "kv.db")

	s, db, err := OpenSQLite(ctx, dsn)
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, "k", "v"))
	require.NoError(t, db.Close())

	s2, db2, err := OpenSQLite(ctx, dsn)
	require.NoError(t, err)
	defer db2.Close()

	v, found, err := s2.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "v", v)
}

func TestMigrate_IsIdempotent(t *testing.T) {
	_, db := openTestSQLite(t)
	require.NoError(t, Migrate(context.Background(), db))
}

func TestSQLite_DBErrorWrapped(t *testing.T) {
	s, db := openTestSQLite(t)
	ctx := context.Background()

	require.NoError(t, db.Close())

	_, _, err := s.Get(ctx, "k")
	require.ErrorContains(t, err, "failed to get kv[k]")

	err = s.Set(ctx, "k", "v")
	require.ErrorContains(t, err, "failed to set kv[k]")

	err = s.Remove(ctx, "k")
	require.ErrorContains(t, err, "failed to remove kv[k]")
}

func TestSQLite_RunsInsideTransaction(t *testing.T) {
	_, db := openTestSQLite(t)
	ctx := context.Background()

	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err)

	inTx := NewSQLite(tx)
	require.NoError(t, inTx.Set(ctx, "k", "v"))
	require.NoError(t, tx.Rollback())

	_, found, err := NewSQLite(db).Get(ctx, "k")
	require.NoError(t, err)
	require.False(t, found, "rolled back write must not be visible")
}
