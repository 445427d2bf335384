// Copyright 2026 The Rumbo Authors
// SPDX-License-Identifier: Apache-2.0

package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis is the shared backing Store. Entries are visible to every process
// pointed at the same server, which makes it the durable tier of the
// two-tier cache.
type Redis struct {
	client *redis.Client
	prefix string
}

// NewRedis creates a Redis-backed store. All keys are namespaced under
// prefix so several deployments can share one server.
func NewRedis(client *redis.Client, prefix string) *Redis {
	return &Redis{client: client, prefix: prefix}
}

func (r *Redis) key(key string) string {
	if r.prefix == "" {
		return key
	}

	return r.prefix + ":" + key
}

// Get implements Store. The remaining TTL is read alongside the value so
// the tiered cache can cap the local copy's lifetime.
func (r *Redis) Get(ctx context.Context, key string) ([]byte, time.Duration, error) {
	k := r.key(key)

	value, err := r.client.Get(ctx, k).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, 0, ErrNotFound
	}

	if err != nil {
		return nil, 0, fmt.Errorf("redis get %q: %w", k, err)
	}

	ttl, err := r.client.TTL(ctx, k).Result()
	if err != nil || ttl < 0 {
		// The value is good even if the TTL read failed or the key has
		// no expiry; report an unknown TTL.
		ttl = 0
	}

	return value, ttl, nil
}

// Set implements Store.
func (r *Redis) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := r.client.Set(ctx, r.key(key), value, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %q: %w", key, err)
	}

	return nil
}

// Remove implements Store.
func (r *Redis) Remove(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, r.key(key)).Err(); err != nil {
		return fmt.Errorf("redis del %q: %w", key, err)
	}

	return nil
}

// Exists implements Store.
func (r *Redis) Exists(ctx context.Context, key string) (bool, error) {
	n, err := r.client.Exists(ctx, r.key(key)).Result()
	if err != nil {
		return false, fmt.Errorf("redis exists %q: %w", key, err)
	}

	return n > 0, nil
}
