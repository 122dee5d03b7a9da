package replay

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Counters are stored zero-padded to 20 digits so the script's string
// comparison orders them exactly across the full uint64 range.
//
//go:embed accept.lua
var acceptLua string

var acceptScript = redis.NewScript(acceptLua)

// RedisStore implements Store on Redis so every instance of a service shares
// one replay history.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
}

// RedisStoreOption configures a RedisStore.
type RedisStoreOption func(*RedisStore)

// WithKeyPrefix sets the namespace prepended to every key.
func WithKeyPrefix(prefix string) RedisStoreOption {
	return func(rs *RedisStore) {
		rs.prefix = prefix
	}
}

// NewRedisStore wraps a connected client.
func NewRedisStore(client redis.UniversalClient, opts ...RedisStoreOption) *RedisStore {
	rs := &RedisStore{
		client: client,
		prefix: "otp:replay:",
	}
	for _, opt := range opts {
		opt(rs)
	}
	return rs
}

// Accept implements Store.
func (rs *RedisStore) Accept(ctx context.Context, key string, counter uint64, ttl time.Duration) (bool, error) {
	if key == "" {
		return false, ErrEmptyKey
	}

	n, err := acceptScript.Run(ctx, rs.client,
		[]string{rs.prefix + key},
		fmt.Sprintf("%020d", counter),
		ttl.Milliseconds(),
	).Int()
	if err != nil {
		return false, errors.Join(ErrStoreFailed, err)
	}

	switch n {
	case 1:
		return true, nil
	case 0:
		return false, nil
	default:
		return false, ErrUnexpectedReply
	}
}

// Reset implements Store.
func (rs *RedisStore) Reset(ctx context.Context, key string) error {
	if err := rs.client.Del(ctx, rs.prefix+key).Err(); err != nil {
		return errors.Join(ErrStoreFailed, err)
	}
	return nil
}
