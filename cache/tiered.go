// Copyright 2026 The Rumbo Authors
// SPDX-License-Identifier: Apache-2.0

package cache

import (
	"context"
	"errors"
	"log"
	"time"
)

// DefaultLocalCap bounds how long an entry may live in the local tier,
// no matter what TTL it was written with. It keeps local copies from
// outliving an entry that another process already replaced in the
// backing tier.
const DefaultLocalCap = 5 * time.Minute

// Tiered composes a fast local Store with a shared backing Store.
//
// Reads go through the local tier first, then the backing tier; a backing
// hit repopulates the local tier with TTL = min(remaining backing TTL,
// local cap). Writes go to both tiers independently: a failure in one
// tier never blocks the other, and no tier failure is surfaced to the
// caller. A backing fault on read degrades to a miss.
type Tiered struct {
	local    Store
	backing  Store
	localCap time.Duration
}

// NewTiered composes the two tiers. localCap caps local-tier TTLs; when
// zero, DefaultLocalCap is used. backing may be nil, in which case the
// cache runs on the local tier alone.
func NewTiered(local, backing Store, localCap time.Duration) *Tiered {
	if localCap <= 0 {
		localCap = DefaultLocalCap
	}

	return &Tiered{local: local, backing: backing, localCap: localCap}
}

func (t *Tiered) capLocal(ttl time.Duration) time.Duration {
	if ttl <= 0 || ttl > t.localCap {
		return t.localCap
	}

	return ttl
}

// Get returns the cached value for key, checking the local tier first and
// falling back to the backing tier. Any backend fault is logged and
// treated as a miss.
func (t *Tiered) Get(ctx context.Context, key string) ([]byte, bool) {
	value, _, err := t.local.Get(ctx, key)
	if err == nil {
		return value, true
	}

	if !errors.Is(err, ErrNotFound) {
		log.Printf("cache: local get %q: %v", key, err)
	}

	if t.backing == nil {
		return nil, false
	}

	value, remaining, err := t.backing.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			log.Printf("cache: backing get %q: %v", key, err)
		}

		return nil, false
	}

	if err := t.local.Set(ctx, key, value, t.capLocal(remaining)); err != nil {
		log.Printf("cache: local backfill %q: %v", key, err)
	}

	return value, true
}

// Set writes key to both tiers: the local tier capped at the local cap,
// the backing tier with the full requested TTL. Tier failures are logged,
// never returned.
func (t *Tiered) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if err := t.local.Set(ctx, key, value, t.capLocal(ttl)); err != nil {
		log.Printf("cache: local set %q: %v", key, err)
	}

	if t.backing == nil {
		return
	}

	if err := t.backing.Set(ctx, key, value, ttl); err != nil {
		log.Printf("cache: backing set %q: %v", key, err)
	}
}

// Remove deletes key from both tiers. Absence in either tier is fine.
func (t *Tiered) Remove(ctx context.Context, key string) {
	if err := t.local.Remove(ctx, key); err != nil {
		log.Printf("cache: local remove %q: %v", key, err)
	}

	if t.backing == nil {
		return
	}

	if err := t.backing.Remove(ctx, key); err != nil {
		log.Printf("cache: backing remove %q: %v", key, err)
	}
}

// Exists reports whether key is present and unexpired in either tier.
func (t *Tiered) Exists(ctx context.Context, key string) bool {
	ok, err := t.local.Exists(ctx, key)
	if err != nil {
		log.Printf("cache: local exists %q: %v", key, err)
	}

	if ok {
		return true
	}

	if t.backing == nil {
		return false
	}

	ok, err = t.backing.Exists(ctx, key)
	if err != nil {
		log.Printf("cache: backing exists %q: %v", key, err)

		return false
	}

	return ok
}
