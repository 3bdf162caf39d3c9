// ShopSense - Marketplace Recommendations and Merchant Advisor
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopsense

package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/shopsense/internal/logging"
	"github.com/tomtom215/shopsense/internal/metrics"
)

// ErrMiss is returned when a key is absent from a cache backend.
var ErrMiss = errors.New("cache miss")

// RedisConfig configures a RedisStore.
type RedisConfig struct {
	Addr      string
	Password  string
	DB        int
	KeyPrefix string
	TTL       time.Duration

	// DialTimeout bounds connection setup. Zero uses the go-redis default.
	DialTimeout time.Duration

	// MaxRetries is passed to go-redis; -1 disables retries.
	MaxRetries int

	// BreakerFailures is the number of consecutive failures that opens the
	// circuit. Defaults to 5.
	BreakerFailures uint32

	// BreakerTimeout is how long the circuit stays open before a probe.
	// Defaults to 30s.
	BreakerTimeout time.Duration
}

// RedisStore is a byte-oriented key/value cache on Redis.
//
// Every call goes through a circuit breaker so an unavailable Redis degrades
// to fast failures instead of stalling requests. A missing key is reported
// as ErrMiss and does not count as a breaker failure.
type RedisStore struct {
	client *redis.Client
	cb     *gobreaker.CircuitBreaker[[]byte]
	prefix string
	ttl    time.Duration
	name   string
}

// NewRedisStore creates a RedisStore. It does not connect eagerly; use Ping
// to verify connectivity at startup.
func NewRedisStore(cfg RedisConfig) *RedisStore {
	client := redis.NewClient(&redis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: cfg.DialTimeout,
		MaxRetries:  cfg.MaxRetries,
	})
	return newRedisStore(client, cfg)
}

func newRedisStore(client *redis.Client, cfg RedisConfig) *RedisStore {
	failures := cfg.BreakerFailures
	if failures == 0 {
		failures = 5
	}
	timeout := cfg.BreakerTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	name := "redis-cache"
	metrics.CircuitBreakerState.WithLabelValues(name).Set(0)

	cb := gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrMiss)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Info().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("circuit breaker state transition")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, from.String(), to.String()).Inc()
		},
	})

	return &RedisStore{
		client: client,
		cb:     cb,
		prefix: cfg.KeyPrefix,
		ttl:    cfg.TTL,
		name:   name,
	}
}

// Ping verifies the server is reachable.
func (r *RedisStore) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("ping redis: %w", err)
	}
	return nil
}

// Get returns the value stored under key, or ErrMiss.
func (r *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	return r.execute(func() ([]byte, error) {
		val, err := r.client.Get(ctx, r.prefix+key).Bytes()
		if errors.Is(err, redis.Nil) {
			return nil, ErrMiss
		}
		if err != nil {
			return nil, fmt.Errorf("redis get: %w", err)
		}
		return val, nil
	})
}

// Set stores value under key with the configured TTL.
func (r *RedisStore) Set(ctx context.Context, key string, value []byte) error {
	_, err := r.execute(func() ([]byte, error) {
		if err := r.client.Set(ctx, r.prefix+key, value, r.ttl).Err(); err != nil {
			return nil, fmt.Errorf("redis set: %w", err)
		}
		return nil, nil
	})
	return err
}

// Delete removes key. Deleting a missing key is not an error.
func (r *RedisStore) Delete(ctx context.Context, key string) error {
	_, err := r.execute(func() ([]byte, error) {
		if err := r.client.Del(ctx, r.prefix+key).Err(); err != nil {
			return nil, fmt.Errorf("redis del: %w", err)
		}
		return nil, nil
	})
	return err
}

// State returns the current circuit breaker state.
func (r *RedisStore) State() gobreaker.State {
	return r.cb.State()
}

// Close releases the underlying connection pool.
func (r *RedisStore) Close() error {
	return r.client.Close()
}

func (r *RedisStore) execute(fn func() ([]byte, error)) ([]byte, error) {
	val, err := r.cb.Execute(fn)
	switch {
	case err == nil:
		metrics.CircuitBreakerRequests.WithLabelValues(r.name, "success").Inc()
	case errors.Is(err, ErrMiss):
		metrics.CircuitBreakerRequests.WithLabelValues(r.name, "success").Inc()
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		metrics.CircuitBreakerRequests.WithLabelValues(r.name, "rejected").Inc()
	default:
		metrics.CircuitBreakerRequests.WithLabelValues(r.name, "failure").Inc()
	}
	return val, err
}

func stateToFloat(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}
