package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/opticscart/lens-shop/internal/service"
)

// RedisIdempotencyStore хранит в Redis соответствие ключа идемпотентности
// идентификатору уже созданного заказа. Запись живёт ограниченное время.
type RedisIdempotencyStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisIdempotencyStore(rdb *redis.Client, ttl time.Duration) *RedisIdempotencyStore {
	return &RedisIdempotencyStore{rdb: rdb, ttl: ttl}
}

func (s *RedisIdempotencyStore) Recall(ctx context.Context, key string) (int64, bool, error) {
	val, err := s.rdb.Get(ctx, "idem:checkout:"+key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, false, nil
		}
		return 0, false, err
	}
	orderID, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("corrupt idempotency record: %w", err)
	}
	return orderID, true, nil
}

func (s *RedisIdempotencyStore) Remember(ctx context.Context, key string, orderID int64) error {
	return s.rdb.Set(ctx, "idem:checkout:"+key, strconv.FormatInt(orderID, 10), s.ttl).Err()
}

var _ service.IdempotencyStore = (*RedisIdempotencyStore)(nil)
