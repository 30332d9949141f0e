package snapshot

import (
	"context"
	"errors"
	"io"
	"time"

	"fjacquet/pdn-calc/internal/apperror"
	"fjacquet/pdn-calc/internal/logging"
	"fjacquet/pdn-calc/internal/wagetable"

	"github.com/redis/go-redis/v9"
)

// DefaultRedisKey is the key holding the snapshot document.
const DefaultRedisKey = "pdn:regions_wages"

// redisClient is the subset of *redis.Client used by RedisStore.
type redisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// RedisStore keeps the snapshot as a JSON document under a single Redis key.
type RedisStore struct {
	client redisClient
	key    string
	logger logging.Logger
}

// NewRedisStore connects to the Redis server at addr.
func NewRedisStore(addr, key string, logger logging.Logger) *RedisStore {
	client := redis.NewClient(&redis.Options{Addr: addr})
	return newRedisStore(client, key, logger)
}

func newRedisStore(client redisClient, key string, logger logging.Logger) *RedisStore {
	if key == "" {
		key = DefaultRedisKey
	}
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &RedisStore{client: client, key: key, logger: logger}
}

// Location returns the Redis key.
func (s *RedisStore) Location() string {
	return "redis:" + s.key
}

// Load reads the snapshot document from Redis.
func (s *RedisStore) Load(ctx context.Context) (wagetable.Table, error) {
	val, err := s.client.Get(ctx, s.key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return wagetable.Table{}, &apperror.StorageError{Op: "load", Path: s.Location(), Err: apperror.ErrNotFound}
		}
		return wagetable.Table{}, &apperror.StorageError{Op: "load", Path: s.Location(), Err: err}
	}

	table, err := Decode([]byte(val), FormatJSON)
	if err != nil {
		return wagetable.Table{}, &apperror.StorageError{Op: "load", Path: s.Location(), Err: err}
	}
	return table, nil
}

// Save overwrites the snapshot key. The key never expires.
func (s *RedisStore) Save(ctx context.Context, table wagetable.Table) error {
	data, err := Encode(table, FormatJSON)
	if err != nil {
		return &apperror.StorageError{Op: "save", Path: s.Location(), Err: err}
	}
	if err := s.client.Set(ctx, s.key, string(data), 0).Err(); err != nil {
		return &apperror.StorageError{Op: "save", Path: s.Location(), Err: err}
	}
	s.logger.Debug("Saved snapshot",
		logging.F(logging.FieldBackend, "redis"),
		logging.F(logging.FieldCount, table.Len()))
	return nil
}

// Close releases the underlying connection pool.
func (s *RedisStore) Close() error {
	if c, ok := s.client.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
