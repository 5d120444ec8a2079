package translator

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultMemoPrefix = "polyglot-faq:tr:"

// RedisMemo stores translations in Redis so they survive restarts and are shared across instances.
type RedisMemo struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
}

// NewRedisMemo builds a memo on an existing client. ttl <= 0 keeps entries forever.
func NewRedisMemo(client *redis.Client, ttl time.Duration, prefix string) *RedisMemo {
	if prefix == "" {
		prefix = defaultMemoPrefix
	}
	if ttl < 0 {
		ttl = 0
	}
	return &RedisMemo{client: client, ttl: ttl, prefix: prefix}
}

// DialRedisMemo parses url, pings the server and returns a memo on the new client.
func DialRedisMemo(ctx context.Context, url string, ttl time.Duration) (*RedisMemo, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, err
	}
	return NewRedisMemo(client, ttl, ""), nil
}

func (m *RedisMemo) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := m.client.Get(ctx, m.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

func (m *RedisMemo) Set(ctx context.Context, key, value string) error {
	return m.client.Set(ctx, m.prefix+key, value, m.ttl).Err()
}

// Close closes the Redis connection.
func (m *RedisMemo) Close() error {
	return m.client.Close()
}

var _ Memo = (*RedisMemo)(nil)
