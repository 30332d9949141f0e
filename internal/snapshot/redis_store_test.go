package snapshot

import (
	"context"
	"errors"
	"testing"
	"time"

	"fjacquet/pdn-calc/internal/apperror"
	"fjacquet/pdn-calc/internal/wagetable"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRedis is an in-memory key/value client with injectable Get and Set errors.
type fakeRedis struct {
	data   map[string]string
	getErr error
	setErr error
	closed bool
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{data: make(map[string]string)}
}

func (f *fakeRedis) Get(_ context.Context, key string) *redis.StringCmd {
	if f.getErr != nil {
		return redis.NewStringResult("", f.getErr)
	}
	val, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(val, nil)
}

func (f *fakeRedis) Set(_ context.Context, key string, value interface{}, _ time.Duration) *redis.StatusCmd {
	if f.setErr != nil {
		return redis.NewStatusResult("", f.setErr)
	}
	f.data[key] = value.(string)
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Close() error {
	f.closed = true
	return nil
}

func TestRedisStore_RoundTrip(t *testing.T) {
	client := newFakeRedis()
	store := newRedisStore(client, "", nil)

	require.NoError(t, store.Save(context.Background(), sampleTable()))
	assert.Contains(t, client.data[DefaultRedisKey], "Белгородская область")

	loaded, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.True(t, sampleTable().Equal(loaded))
	assert.Equal(t, "redis:"+DefaultRedisKey, store.Location())
}

func TestRedisStore_Missing(t *testing.T) {
	store := newRedisStore(newFakeRedis(), "custom", nil)
	_, err := store.Load(context.Background())
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestRedisStore_Errors(t *testing.T) {
	client := newFakeRedis()
	client.getErr = errors.New("connection refused")
	client.setErr = errors.New("READONLY")
	store := newRedisStore(client, "k", nil)

	_, err := store.Load(context.Background())
	var storageErr *apperror.StorageError
	require.True(t, errors.As(err, &storageErr))
	assert.Equal(t, "load", storageErr.Op)

	err = store.Save(context.Background(), wagetable.New(map[string]float64{"a": 1}))
	require.True(t, errors.As(err, &storageErr))
	assert.Equal(t, "save", storageErr.Op)
}

func TestRedisStore_Malformed(t *testing.T) {
	client := newFakeRedis()
	client.data["k"] = "not json"
	_, err := newRedisStore(client, "k", nil).Load(context.Background())
	var storageErr *apperror.StorageError
	assert.True(t, errors.As(err, &storageErr))
}

func TestRedisStore_Close(t *testing.T) {
	client := newFakeRedis()
	require.NoError(t, newRedisStore(client, "", nil).Close())
	assert.True(t, client.closed)
}
