package bot

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const offsetKey = "bot:offset"

// OffsetStore remembers the next update id to ask Telegram for.
type OffsetStore interface {
	Load(ctx context.Context) (int, error)
	Save(ctx context.Context, offset int) error
}

type RedisOffsetStore struct {
	redis *redis.Client
}

func NewRedisOffsetStore(client *redis.Client) *RedisOffsetStore {
	return &RedisOffsetStore{redis: client}
}

// Load returns 0 when no offset has been stored yet.
func (s *RedisOffsetStore) Load(ctx context.Context) (int, error) {
	offset, err := s.redis.Get(ctx, offsetKey).Int()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("load bot offset: %w", err)
	}
	return offset, nil
}

func (s *RedisOffsetStore) Save(ctx context.Context, offset int) error {
	if err := s.redis.Set(ctx, offsetKey, offset, 0).Err(); err != nil {
		return fmt.Errorf("save bot offset: %w", err)
	}
	return nil
}
