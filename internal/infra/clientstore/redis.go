package clientstore

import (
	"context"
	"errors"
	"time"

	"fahasa-storefront/internal/infra"
	"fahasa-storefront/internal/pkg/config"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "fahasa"

type cmdable interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// RedisKV relies on native key expiry, so it has nothing to purge.
type RedisKV struct {
	store cmdable
}

func NewRedisKV(client *redis.Client) *RedisKV {
	return &RedisKV{store: client}
}

// NewRedisClient builds a pooled client from cfg and verifies connectivity.
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	opts, err := redisOptions(cfg)
	if err != nil {
		return nil, err
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, infra.WrapRepoErr("ping redis", err, infra.KindStoreFailure)
	}
	return client, nil
}

func redisOptions(cfg config.RedisConfig) (*redis.Options, error) {
	if cfg.URL == "" && cfg.Address == "" {
		return nil, errors.New("redis url or address is required")
	}
	var opts *redis.Options
	if cfg.URL != "" {
		parsed, err := redis.ParseURL(cfg.URL)
		if err != nil {
			return nil, infra.WrapRepoErr("parse redis url", err, infra.KindStoreFailure)
		}
		opts = parsed
	} else {
		opts = &redis.Options{
			Addr:     cfg.Address,
			Password: cfg.Password,
			DB:       cfg.DB,
		}
	}
	if opts.PoolSize == 0 {
		opts.PoolSize = cfg.PoolSize
	}
	if opts.DialTimeout == 0 {
		opts.DialTimeout = cfg.DialTimeout
	}
	if opts.ReadTimeout == 0 {
		opts.ReadTimeout = cfg.ReadTimeout
	}
	if opts.WriteTimeout == 0 {
		opts.WriteTimeout = cfg.WriteTimeout
	}
	return opts, nil
}

func redisKey(namespace, key string) string {
	return keyPrefix + ":" + namespace + ":" + key
}

func (r *RedisKV) Get(ctx context.Context, namespace, key string) ([]byte, error) {
	val, err := r.store.Get(ctx, redisKey(namespace, key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, infra.WrapRepoErr("redis get", err, infra.KindStoreFailure)
	}
	return val, nil
}

func (r *RedisKV) Put(ctx context.Context, namespace, key string, value []byte, ttl time.Duration) error {
	if ttl < 0 {
		ttl = 0
	}
	if err := r.store.Set(ctx, redisKey(namespace, key), value, ttl).Err(); err != nil {
		return infra.WrapRepoErr("redis set", err, infra.KindStoreFailure)
	}
	return nil
}

func (r *RedisKV) Delete(ctx context.Context, namespace, key string) error {
	if err := r.store.Del(ctx, redisKey(namespace, key)).Err(); err != nil {
		return infra.WrapRepoErr("redis del", err, infra.KindStoreFailure)
	}
	return nil
}
