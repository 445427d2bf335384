// Copyright 2026 The Rumbo Authors
// SPDX-License-Identifier: Apache-2.0

// Package cache provides the two-tier cache used by the query orchestrator:
// a fast in-process tier backed by a shared tier, with read-through and
// write-through semantics.
package cache

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by a Store when the key is absent or expired.
// Callers should check for it to tell a miss apart from a backend fault.
var ErrNotFound = errors.New("cache: key not found")

// Store is a single cache tier. All implementations must be safe for
// concurrent use.
type Store interface {
	// Get returns the value stored under key and its remaining TTL.
	// It returns ErrNotFound when the key is absent or expired. A zero
	// TTL means the store does not track expiry for the entry.
	Get(ctx context.Context, key string) ([]byte, time.Duration, error)

	// Set stores value under key for ttl. A zero ttl stores the entry
	// without expiry.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Remove deletes key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error

	// Exists reports whether key holds an unexpired entry.
	Exists(ctx context.Context, key string) (bool, error)
}
