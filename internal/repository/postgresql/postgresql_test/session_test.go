package postgresql_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/cmlabs-hris/absensi-backend-go/internal/domain/session"
	"github.com/cmlabs-hris/absensi-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/absensi-backend-go/internal/repository/postgresql"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestDB connects to TEST_DATABASE_URL and skips the test when it is unset.
func newTestDB(t *testing.T) *database.DB {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	db, err := database.NewPostgreSQLDB(context.Background(), dsn, database.DefaultPoolOptions())
	require.NoError(t, err)
	t.Cleanup(db.Close)
	return db
}

func newStore(t *testing.T) session.Store {
	db := newTestDB(t)
	store := postgresql.NewSessionStore(db)
	require.NoError(t, store.EnsureSchema(context.Background()))
	return store
}

func TestSessionStore_SetGet(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	id := uuid.NewString()
	t.Cleanup(func() { store.Clear(ctx, id) })

	_, err := store.Get(ctx, id, session.KeyIdentity)
	assert.ErrorIs(t, err, session.ErrKeyNotFound)

	require.NoError(t, store.Set(ctx, id, session.KeyIdentity, []byte(`{"email":"siti@example.com"}`)))
	require.NoError(t, store.Set(ctx, id, session.KeyIdentity, []byte(`{"email":"budi@example.com"}`)))

	got, err := store.Get(ctx, id, session.KeyIdentity)
	require.NoError(t, err)
	assert.JSONEq(t, `{"email":"budi@example.com"}`, string(got))
}

func TestSessionStore_SetManyAndClear(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	id := uuid.NewString()

	require.NoError(t, store.SetMany(ctx, id, map[string][]byte{
		session.KeyTypeFilter: []byte(`"Masuk"`),
		session.KeyDateFilter: []byte(`"2026-01-12"`),
	}))

	got, err := store.Get(ctx, id, session.KeyDateFilter)
	require.NoError(t, err)
	assert.Equal(t, `"2026-01-12"`, string(got))

	require.NoError(t, store.Delete(ctx, id, session.KeyDateFilter))
	_, err = store.Get(ctx, id, session.KeyDateFilter)
	assert.ErrorIs(t, err, session.ErrKeyNotFound)

	require.NoError(t, store.Clear(ctx, id))
	_, err = store.Get(ctx, id, session.KeyTypeFilter)
	assert.ErrorIs(t, err, session.ErrKeyNotFound)
}

func TestSessionStore_PurgeStale(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	store := postgresql.NewSessionStore(db)
	require.NoError(t, store.EnsureSchema(ctx))

	stale, fresh := uuid.NewString(), uuid.NewString()
	t.Cleanup(func() { store.Clear(ctx, fresh) })
	require.NoError(t, store.Set(ctx, stale, session.KeyIdentity, []byte(`{}`)))
	require.NoError(t, store.Set(ctx, fresh, session.KeyIdentity, []byte(`{}`)))
	_, err := db.Exec(ctx, `UPDATE session_values SET updated_at = NOW() - INTERVAL '2 days' WHERE session_id = $1`, stale)
	require.NoError(t, err)

	n, err := store.PurgeStale(ctx, 24*time.Hour)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, n, int64(1))

	_, err = store.Get(ctx, stale, session.KeyIdentity)
	assert.ErrorIs(t, err, session.ErrKeyNotFound)
	_, err = store.Get(ctx, fresh, session.KeyIdentity)
	assert.NoError(t, err)
}

func TestSessionStore_Touch(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	store := postgresql.NewSessionStore(db)
	require.NoError(t, store.EnsureSchema(ctx))

	id := uuid.NewString()
	t.Cleanup(func() { store.Clear(ctx, id) })
	require.NoError(t, store.Set(ctx, id, session.KeyIdentity, []byte(`{}`)))
	_, err := db.Exec(ctx, `UPDATE session_values SET updated_at = NOW() - INTERVAL '2 days' WHERE session_id = $1`, id)
	require.NoError(t, err)

	require.NoError(t, store.Touch(ctx, id))
	_, err = store.PurgeStale(ctx, 24*time.Hour)
	require.NoError(t, err)

	_, err = store.Get(ctx, id, session.KeyIdentity)
	assert.NoError(t, err)
}
