package session

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisStoreTest(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		rdb.Close()
		mr.Close()
	})
	return NewRedisStore(rdb, "ih:"), mr
}

func TestRedisStore_CommitFindDelete(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	store, mr := newRedisStoreTest(t)

	require.NoError(store.Commit("tok", []byte("payload"), time.Now().Add(time.Hour)))
	assert.True(mr.Exists("ih:tok"))

	b, found, err := store.Find("tok")
	require.NoError(err)
	assert.True(found)
	assert.Equal([]byte("payload"), b)

	require.NoError(store.Delete("tok"))
	_, found, err = store.Find("tok")
	require.NoError(err)
	assert.False(found)

	// deleting twice is fine
	require.NoError(store.Delete("tok"))
}

func TestRedisStore_Expiry(t *testing.T) {
	require := require.New(t)

	store, mr := newRedisStoreTest(t)
	require.NoError(store.Commit("tok", []byte("payload"), time.Now().Add(time.Minute)))

	mr.FastForward(2 * time.Minute)

	_, found, err := store.Find("tok")
	require.NoError(err)
	assert.False(t, found)
}

func TestRedisStore_CommitPastExpiryDeletes(t *testing.T) {
	require := require.New(t)

	store, mr := newRedisStoreTest(t)
	require.NoError(store.Commit("tok", []byte("payload"), time.Now().Add(time.Hour)))
	require.NoError(store.Commit("tok", []byte("payload"), time.Now().Add(-time.Second)))

	assert.False(t, mr.Exists("ih:tok"))
}
