package redis

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/cmlabs-hris/absensi-backend-go/internal/domain/session"
	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestClient connects to TEST_REDIS_ADDR and skips the test when it is unset.
func newTestClient(t *testing.T) *goredis.Client {
	t.Helper()
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}

	client := goredis.NewClient(&goredis.Options{Addr: addr})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, client.Ping(ctx).Err())
	t.Cleanup(func() { client.Close() })
	return client
}

func TestSessionStore(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t)
	store := NewSessionStore(client, time.Hour)
	id := uuid.NewString()
	t.Cleanup(func() { store.Clear(ctx, id) })

	_, err := store.Get(ctx, id, session.KeyRecords)
	assert.ErrorIs(t, err, session.ErrKeyNotFound)

	require.NoError(t, store.SetMany(ctx, id, map[string][]byte{
		session.KeyRecords:    []byte(`[]`),
		session.KeyTypeFilter: []byte(`"semua"`),
	}))
	got, err := store.Get(ctx, id, session.KeyTypeFilter)
	require.NoError(t, err)
	assert.Equal(t, `"semua"`, string(got))

	ttl, err := client.TTL(ctx, sessionKey(id)).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))

	require.NoError(t, client.Expire(ctx, sessionKey(id), time.Minute).Err())
	require.NoError(t, store.Touch(ctx, id))
	ttl, err = client.TTL(ctx, sessionKey(id)).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Minute)

	require.NoError(t, store.Delete(ctx, id, session.KeyTypeFilter))
	_, err = store.Get(ctx, id, session.KeyTypeFilter)
	assert.ErrorIs(t, err, session.ErrKeyNotFound)

	require.NoError(t, store.Clear(ctx, id))
	_, err = store.Get(ctx, id, session.KeyRecords)
	assert.ErrorIs(t, err, session.ErrKeyNotFound)
}
