// Copyright 2026 The Rumbo Authors
// SPDX-License-Identifier: Apache-2.0

package cache

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

type memoryEntry struct {
	value   []byte
	expires time.Time // zero means no expiry
}

// Memory is an in-process Store built on an expirable LRU. The LRU bounds
// both the number of entries and their maximum lifetime; entries written
// with a shorter TTL carry their own expiry, enforced on read.
type Memory struct {
	lru *expirable.LRU[string, memoryEntry]
	now func() time.Time
}

// NewMemory creates an in-process store holding at most size entries, each
// living at most maxTTL regardless of the TTL it was written with.
func NewMemory(size int, maxTTL time.Duration) *Memory {
	return &Memory{
		lru: expirable.NewLRU[string, memoryEntry](size, nil, maxTTL),
		now: time.Now,
	}
}

// Get implements Store.
func (m *Memory) Get(_ context.Context, key string) ([]byte, time.Duration, error) {
	entry, ok := m.lru.Get(key)
	if !ok {
		return nil, 0, ErrNotFound
	}

	if entry.expires.IsZero() {
		return entry.value, 0, nil
	}

	remaining := entry.expires.Sub(m.now())
	if remaining <= 0 {
		m.lru.Remove(key)

		return nil, 0, ErrNotFound
	}

	return entry.value, remaining, nil
}

// Set implements Store.
func (m *Memory) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	entry := memoryEntry{value: value}
	if ttl > 0 {
		entry.expires = m.now().Add(ttl)
	}

	m.lru.Add(key, entry)

	return nil
}

// Remove implements Store.
func (m *Memory) Remove(_ context.Context, key string) error {
	m.lru.Remove(key)

	return nil
}

// Exists implements Store.
func (m *Memory) Exists(ctx context.Context, key string) (bool, error) {
	_, _, err := m.Get(ctx, key)
	if err != nil {
		return false, nil
	}

	return true, nil
}
