package storage

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := InitDatabase(context.Background(), "file:"+t.Name()+"?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestSQLiteRepository_SetGetDelete(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	repo := NewSQLiteRepository(db)

	got, err := repo.Get(ctx, "missing")
	require.NoError(t, err)
	require.Empty(t, got, "missing key reads as empty, not as an error")

	require.NoError(t, repo.Set(ctx, "k", "v1"))
	require.NoError(t, repo.Set(ctx, "k", "v2"), "set must upsert")

	got, err = repo.Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, "v2", got)

	require.NoError(t, repo.Delete(ctx, "k"))
	got, err = repo.Get(ctx, "k")
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestTokenStore_SaveLoadClear(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	store := NewTokenStore(db)

	tok, err := store.Load(ctx)
	require.NoError(t, err)
	require.Empty(t, tok)

	require.NoError(t, store.Save(ctx, "tok-1"))

	tok, err = store.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, "tok-1", tok)

	// the write timestamp rides along in the same transaction
	savedAt, err := NewSQLiteRepository(db).Get(ctx, keySavedAt)
	require.NoError(t, err)
	require.NotEmpty(t, savedAt)

	require.NoError(t, store.Clear(ctx))
	tok, err = store.Load(ctx)
	require.NoError(t, err)
	require.Empty(t, tok)
}

// stubRepo is a Repository with injectable results, for exercising the
// TokenStore seam without a database.
type stubRepo struct {
	getRet  string
	getErr  error
	cleared bool
}

func (r *stubRepo) Get(ctx context.Context, key string) (string, error) { return r.getRet, r.getErr }
func (r *stubRepo) Set(ctx context.Context, key, value string) error    { return nil }
func (r *stubRepo) Delete(ctx context.Context, key string) error        { return nil }
func (r *stubRepo) Clear(ctx context.Context) error                     { r.cleared = true; return nil }

func TestTokenStore_GoesThroughRepository(t *testing.T) {
	ctx := context.Background()

	stub := &stubRepo{getRet: "tok-1"}
	store := &TokenStore{repo: stub}

	tok, err := store.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, "tok-1", tok)

	require.NoError(t, store.Clear(ctx))
	require.True(t, stub.cleared)

	stub.getErr = errors.New("corrupt row")
	_, err = store.Load(ctx)
	require.Error(t, err)
}

func TestRunMigrations_Idempotent(t *testing.T) {
	db := setupDB(t)
	require.NoError(t, RunMigrations(context.Background(), db))
}
