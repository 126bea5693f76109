package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/weiawesome/stream-service/internal/config"
	"github.com/weiawesome/stream-service/internal/domain"
	"github.com/weiawesome/stream-service/pkg/log"
)

var replaceScript = redis.NewScript(`
if redis.call("HEXISTS", KEYS[1], ARGV[1]) == 1 then
	redis.call("HSET", KEYS[1], ARGV[1], ARGV[2])
	return 1
end
return 0
`)

// RedisGateway implements Gateway on go-redis. Client-level retries are
// disabled; RetryPolicy owns them so every command gets the same budget.
type RedisGateway struct {
	client *redis.Client
	retry  RetryPolicy
}

// NewRedisGateway connects to Redis and verifies the connection.
func NewRedisGateway(ctx context.Context, cfg config.RedisConfig) (*RedisGateway, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Address,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.CommandTimeout,
		WriteTimeout: cfg.CommandTimeout,
		MaxRetries:   -1,
	})

	g := NewRedisGatewayFromClient(client, RetryPolicy{
		MaxAttempts: cfg.MaxAttempts,
		Backoff:     cfg.RetryBackoff,
		MaxBackoff:  cfg.MaxRetryBackoff,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := g.Ping(pingCtx); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return g, nil
}

// NewRedisGatewayFromClient wraps an existing client.
func NewRedisGatewayFromClient(client *redis.Client, retry RetryPolicy) *RedisGateway {
	return &RedisGateway{client: client, retry: retry}
}

// Client exposes the underlying client for components sharing the
// connection (relay pub/sub).
func (g *RedisGateway) Client() *redis.Client {
	return g.client
}

func (g *RedisGateway) do(ctx context.Context, op, key string, fn func(context.Context) error) error {
	err := g.retry.run(ctx, fn)
	if err == nil || errors.Is(err, redis.Nil) {
		return err
	}
	l := log.Ctx(ctx)
	l.Error().Err(err).Str("op", op).Str("key", key).Msg("redis command failed")
	return fmt.Errorf("%w: %s %s: %w", domain.ErrPersistence, op, key, err)
}

func (g *RedisGateway) HashSet(ctx context.Context, key, field, value string) error {
	return g.do(ctx, "HSET", key, func(ctx context.Context) error {
		return g.client.HSet(ctx, key, field, value).Err()
	})
}

func (g *RedisGateway) HashGet(ctx context.Context, key, field string) (string, error) {
	var value string
	err := g.do(ctx, "HGET", key, func(ctx context.Context) error {
		var err error
		value, err = g.client.HGet(ctx, key, field).Result()
		return err
	})
	if errors.Is(err, redis.Nil) {
		return "", ErrKeyNotFound
	}
	return value, err
}

func (g *RedisGateway) HashExists(ctx context.Context, key, field string) (bool, error) {
	var ok bool
	err := g.do(ctx, "HEXISTS", key, func(ctx context.Context) error {
		var err error
		ok, err = g.client.HExists(ctx, key, field).Result()
		return err
	})
	return ok, err
}

func (g *RedisGateway) HashGetAll(ctx context.Context, key string) (map[string]string, error) {
	var values map[string]string
	err := g.do(ctx, "HGETALL", key, func(ctx context.Context) error {
		var err error
		values, err = g.client.HGetAll(ctx, key).Result()
		return err
	})
	return values, err
}

func (g *RedisGateway) HashDelete(ctx context.Context, key, field string) error {
	return g.do(ctx, "HDEL", key, func(ctx context.Context) error {
		return g.client.HDel(ctx, key, field).Err()
	})
}

func (g *RedisGateway) HashReplace(ctx context.Context, key, field, value string) (bool, error) {
	var n int
	err := g.do(ctx, "HREPLACE", key, func(ctx context.Context) error {
		var err error
		n, err = replaceScript.Run(ctx, g.client, []string{key}, field, value).Int()
		return err
	})
	return n == 1, err
}

func (g *RedisGateway) ListPushFront(ctx context.Context, key, value string) error {
	return g.do(ctx, "LPUSH", key, func(ctx context.Context) error {
		return g.client.LPush(ctx, key, value).Err()
	})
}

func (g *RedisGateway) ListTrim(ctx context.Context, key string, start, stop int64) error {
	return g.do(ctx, "LTRIM", key, func(ctx context.Context) error {
		return g.client.LTrim(ctx, key, start, stop).Err()
	})
}

func (g *RedisGateway) ListRange(ctx context.Context, key string, start, stop int64) ([]string, error) {
	var values []string
	err := g.do(ctx, "LRANGE", key, func(ctx context.Context) error {
		var err error
		values, err = g.client.LRange(ctx, key, start, stop).Result()
		return err
	})
	return values, err
}

func (g *RedisGateway) SetAdd(ctx context.Context, key, member string) error {
	return g.do(ctx, "SADD", key, func(ctx context.Context) error {
		return g.client.SAdd(ctx, key, member).Err()
	})
}

func (g *RedisGateway) SetRemove(ctx context.Context, key, member string) error {
	return g.do(ctx, "SREM", key, func(ctx context.Context) error {
		return g.client.SRem(ctx, key, member).Err()
	})
}

func (g *RedisGateway) SetMembers(ctx context.Context, key string) ([]string, error) {
	var members []string
	err := g.do(ctx, "SMEMBERS", key, func(ctx context.Context) error {
		var err error
		members, err = g.client.SMembers(ctx, key).Result()
		return err
	})
	return members, err
}

func (g *RedisGateway) SetCount(ctx context.Context, key string) (int, error) {
	var n int64
	err := g.do(ctx, "SCARD", key, func(ctx context.Context) error {
		var err error
		n, err = g.client.SCard(ctx, key).Result()
		return err
	})
	return int(n), err
}

func (g *RedisGateway) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return g.do(ctx, "DEL", keys[0], func(ctx context.Context) error {
		return g.client.Del(ctx, keys...).Err()
	})
}

// Batch runs the queued writes inside MULTI/EXEC. A retried batch may
// apply twice if the first EXEC succeeded but its reply was lost.
func (g *RedisGateway) Batch(ctx context.Context, fn func(Batch)) error {
	var ops []func(context.Context, redis.Pipeliner)
	fn(&pipeBatch{add: func(op func(context.Context, redis.Pipeliner)) { ops = append(ops, op) }})
	if len(ops) == 0 {
		return nil
	}

	return g.do(ctx, "MULTI", "batch", func(ctx context.Context) error {
		_, err := g.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			for _, op := range ops {
				op(ctx, pipe)
			}
			return nil
		})
		return err
	})
}

func (g *RedisGateway) Ping(ctx context.Context) error {
	return g.do(ctx, "PING", "", func(ctx context.Context) error {
		return g.client.Ping(ctx).Err()
	})
}

func (g *RedisGateway) Close() error {
	return g.client.Close()
}

// pipeBatch records writes so the whole batch can be replayed on retry.
type pipeBatch struct {
	add func(func(context.Context, redis.Pipeliner))
}

func (b *pipeBatch) HashSet(key, field, value string) {
	b.add(func(ctx context.Context, p redis.Pipeliner) { p.HSet(ctx, key, field, value) })
}

func (b *pipeBatch) HashDelete(key, field string) {
	b.add(func(ctx context.Context, p redis.Pipeliner) { p.HDel(ctx, key, field) })
}

func (b *pipeBatch) ListPushFront(key, value string) {
	b.add(func(ctx context.Context, p redis.Pipeliner) { p.LPush(ctx, key, value) })
}

func (b *pipeBatch) ListTrim(key string, start, stop int64) {
	b.add(func(ctx context.Context, p redis.Pipeliner) { p.LTrim(ctx, key, start, stop) })
}

func (b *pipeBatch) Delete(keys ...string) {
	if len(keys) == 0 {
		return
	}
	b.add(func(ctx context.Context, p redis.Pipeliner) { p.Del(ctx, keys...) })
}
