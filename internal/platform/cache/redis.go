package cache

import (
	"context"
	"time"

	"github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/redis/go-redis/v9"

	"github.com/riskibarqy/football-scout/internal/platform/resilience"
)

// RedisStore shares JSON values between instances. Every call goes through
// the circuit breaker.
type RedisStore struct {
	client  redis.Cmdable
	prefix  string
	ttl     time.Duration
	breaker *resilience.CircuitBreaker
}

func NewRedisStore(client redis.Cmdable, prefix string, ttl time.Duration, breaker *resilience.CircuitBreaker) *RedisStore {
	return &RedisStore{
		client:  client,
		prefix:  prefix,
		ttl:     ttl,
		breaker: breaker,
	}
}

func (s *RedisStore) key(k string) string {
	return Key(s.prefix, k)
}

// GetJSON decodes the value under key into dst. found is false on a miss.
func (s *RedisStore) GetJSON(ctx context.Context, key string, dst any) (found bool, err error) {
	var raw []byte
	err = s.breaker.Execute(ctx, func(ctx context.Context) error {
		v, getErr := s.client.Get(ctx, s.key(key)).Bytes()
		if crerr.Is(getErr, redis.Nil) {
			return nil
		}
		raw = v
		return getErr
	})
	if err != nil {
		return false, crerr.Wrapf(err, "redis get %s", key)
	}
	if raw == nil {
		return false, nil
	}
	if err := sonic.Unmarshal(raw, dst); err != nil {
		return false, crerr.Wrapf(err, "decode cached %s", key)
	}
	return true, nil
}

func (s *RedisStore) SetJSON(ctx context.Context, key string, value any) error {
	raw, err := sonic.Marshal(value)
	if err != nil {
		return crerr.Wrapf(err, "encode %s", key)
	}
	err = s.breaker.Execute(ctx, func(ctx context.Context) error {
		return s.client.Set(ctx, s.key(key), raw, s.ttl).Err()
	})
	if err != nil {
		return crerr.Wrapf(err, "redis set %s", key)
	}
	return nil
}

// DeletePrefix removes every key under prefix with SCAN, never KEYS.
func (s *RedisStore) DeletePrefix(ctx context.Context, prefix string) error {
	pattern := s.key(prefix) + "*"
	err := s.breaker.Execute(ctx, func(ctx context.Context) error {
		var cursor uint64
		for {
			keys, next, err := s.client.Scan(ctx, cursor, pattern, 100).Result()
			if err != nil {
				return err
			}
			if len(keys) > 0 {
				if err := s.client.Del(ctx, keys...).Err(); err != nil {
					return err
				}
			}
			if next == 0 {
				return nil
			}
			cursor = next
		}
	})
	if err != nil {
		return crerr.Wrapf(err, "redis delete prefix %s", prefix)
	}
	return nil
}

// Ping checks connectivity at startup.
func Ping(ctx context.Context, client *redis.Client) error {
	if err := client.Ping(ctx).Err(); err != nil {
		return crerr.Wrap(err, "redis ping")
	}
	return nil
}
