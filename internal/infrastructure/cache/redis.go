package cache

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"sync/atomic"
	"time"

	"learnmatch/internal/config"
	"learnmatch/internal/logger"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	defaultTTL  = 600 * time.Second
	pingTimeout = 2 * time.Second
)

var ErrUnavailable = errors.New("redis unavailable")

// Redis is a JSON cache that degrades to a no-op when the server cannot be
// reached at startup. Runtime failures are returned to the caller and logged once.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger

	warnedUnavailable atomic.Bool
}

func NewRedis(cfg config.RedisConfig, log *zap.Logger) *Redis {
	log = logger.Component(log, "cache")
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = defaultTTL
	}

	client := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn("redis unavailable, bypassing cache", zap.Error(err))
		_ = client.Close()
		return &Redis{ttl: ttl, logger: log}
	}

	return &Redis{client: client, ttl: ttl, logger: log}
}

func (r *Redis) isUnavailable() bool {
	return r == nil || r.client == nil
}

func (r *Redis) warnUnavailableOnce(err error) {
	if r == nil || r.logger == nil {
		return
	}
	if r.warnedUnavailable.CompareAndSwap(false, true) {
		r.logger.Warn("redis command failed, cache degraded", zap.Error(err))
	}
}

func (r *Redis) Ping(ctx context.Context) error {
	if r.isUnavailable() {
		return ErrUnavailable
	}
	return r.client.Ping(ctx).Err()
}

func (r *Redis) Close() error {
	if r.isUnavailable() {
		return nil
	}
	return r.client.Close()
}

func (r *Redis) GetJSON(ctx context.Context, key string, out any) (bool, error) {
	if r.isUnavailable() {
		return false, nil
	}
	b, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		r.warnUnavailableOnce(err)
		return false, err
	}
	if len(b) == 0 {
		return false, nil
	}
	if err := json.Unmarshal(b, out); err != nil {
		return false, err
	}
	return true, nil
}

// SetJSON stores value under key. A non-positive ttl uses the configured TTL.
func (r *Redis) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	if r.isUnavailable() {
		return nil
	}
	if ttl <= 0 {
		ttl = r.ttl
	}
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if err := r.client.Set(ctx, key, b, ttl).Err(); err != nil {
		r.warnUnavailableOnce(err)
		return err
	}
	return nil
}

func (r *Redis) DeleteByPattern(ctx context.Context, pattern string) error {
	if r.isUnavailable() || pattern == "" {
		return nil
	}

	iter := r.client.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		k := iter.Val()
		if err := r.client.Del(ctx, k).Err(); err != nil {
			r.logger.Warn("redis delete failed", zap.String("key", k), zap.String("pattern", pattern), zap.Error(err))
		}
	}
	if err := iter.Err(); err != nil {
		r.warnUnavailableOnce(err)
		return err
	}
	return nil
}
