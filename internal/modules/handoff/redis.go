// README: Redis-backed mailbox: survives API restarts, GETDEL gives the single read.
package handoff

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "handoff:"

type RedisMailbox struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisMailbox(client *redis.Client, ttl time.Duration) *RedisMailbox {
	return &RedisMailbox{client: client, ttl: ttl}
}

func (m *RedisMailbox) Put(ctx context.Context, key string, raw []byte) error {
	if err := m.client.Set(ctx, keyPrefix+key, raw, m.ttl).Err(); err != nil {
		return fmt.Errorf("handoff put: %w", err)
	}
	return nil
}

// Take reads and clears in one round trip, so two concurrent readers cannot
// both hydrate from the same payload.
func (m *RedisMailbox) Take(ctx context.Context, key string) ([]byte, error) {
	raw, err := m.client.GetDel(ctx, keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrEmpty
	}
	if err != nil {
		return nil, fmt.Errorf("handoff take: %w", err)
	}
	return raw, nil
}
