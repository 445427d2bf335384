// Copyright 2026 The Rumbo Authors
// SPDX-License-Identifier: Apache-2.0

package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// faultyStore simulates an unreachable backend on selected operations.
type faultyStore struct {
	Store
	failGet    bool
	failSet    bool
	failRemove bool
	failExists bool
}

var errUnreachable = errors.New("backend unreachable")

func (f *faultyStore) Get(ctx context.Context, key string) ([]byte, time.Duration, error) {
	if f.failGet {
		return nil, 0, errUnreachable
	}

	return f.Store.Get(ctx, key)
}

func (f *faultyStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if f.failSet {
		return errUnreachable
	}

	return f.Store.Set(ctx, key, value, ttl)
}

func (f *faultyStore) Remove(ctx context.Context, key string) error {
	if f.failRemove {
		return errUnreachable
	}

	return f.Store.Remove(ctx, key)
}

func (f *faultyStore) Exists(ctx context.Context, key string) (bool, error) {
	if f.failExists {
		return false, errUnreachable
	}

	return f.Store.Exists(ctx, key)
}

func TestTieredSetWritesBothTiers(t *testing.T) {
	local, _ := newTestMemory(16)
	backing, _ := newTestMemory(16)
	tiered := NewTiered(local, backing, 5*time.Minute)
	ctx := context.Background()

	tiered.Set(ctx, "k", []byte("v"), 6*time.Hour)

	// The local tier is capped; the backing tier keeps the full TTL.
	_, remaining, err := local.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, 5*time.Minute, remaining)

	_, remaining, err = backing.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, 6*time.Hour, remaining)
}

func TestTieredGetLocalFirst(t *testing.T) {
	local, _ := newTestMemory(16)
	backing, _ := newTestMemory(16)
	tiered := NewTiered(local, backing, 5*time.Minute)
	ctx := context.Background()

	require.NoError(t, local.Set(ctx, "k", []byte("local"), time.Minute))
	require.NoError(t, backing.Set(ctx, "k", []byte("backing"), time.Hour))

	value, ok := tiered.Get(ctx, "k")
	require.True(t, ok)
	assert.Equal(t, []byte("local"), value)
}

func TestTieredBackingHitRepopulatesLocal(t *testing.T) {
	local, _ := newTestMemory(16)
	backing, _ := newTestMemory(16)
	tiered := NewTiered(local, backing, 5*time.Minute)
	ctx := context.Background()

	require.NoError(t, backing.Set(ctx, "k", []byte("v"), time.Hour))

	value, ok := tiered.Get(ctx, "k")
	require.True(t, ok)
	assert.Equal(t, []byte("v"), value)

	// Local copy exists now, capped at the local cap.
	_, remaining, err := local.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, 5*time.Minute, remaining)
}

func TestTieredBackingHitShortRemainingTTLWins(t *testing.T) {
	local, _ := newTestMemory(16)
	backing, _ := newTestMemory(16)
	tiered := NewTiered(local, backing, 5*time.Minute)
	ctx := context.Background()

	// Backing entry is about to expire; the local copy must not outlive it.
	require.NoError(t, backing.Set(ctx, "k", []byte("v"), 30*time.Second))

	_, ok := tiered.Get(ctx, "k")
	require.True(t, ok)

	_, remaining, err := local.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, remaining)
}

func TestTieredMiss(t *testing.T) {
	local, _ := newTestMemory(16)
	backing, _ := newTestMemory(16)
	tiered := NewTiered(local, backing, 5*time.Minute)

	_, ok := tiered.Get(context.Background(), "absent")
	assert.False(t, ok)
}

func TestTieredBackingReadFaultDegradesToMiss(t *testing.T) {
	local, _ := newTestMemory(16)
	backingMem, _ := newTestMemory(16)
	backing := &faultyStore{Store: backingMem, failGet: true}
	tiered := NewTiered(local, backing, 5*time.Minute)
	ctx := context.Background()

	require.NoError(t, backingMem.Set(ctx, "k", []byte("v"), time.Hour))

	_, ok := tiered.Get(ctx, "k")
	assert.False(t, ok)
}

func TestTieredBackingWriteFaultKeepsLocalWrite(t *testing.T) {
	local, _ := newTestMemory(16)
	backingMem, _ := newTestMemory(16)
	backing := &faultyStore{Store: backingMem, failSet: true}
	tiered := NewTiered(local, backing, 5*time.Minute)
	ctx := context.Background()

	tiered.Set(ctx, "k", []byte("v"), time.Hour)

	value, _, err := local.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), value)
}

func TestTieredLocalWriteFaultKeepsBackingWrite(t *testing.T) {
	localMem, _ := newTestMemory(16)
	local := &faultyStore{Store: localMem, failSet: true}
	backing, _ := newTestMemory(16)
	tiered := NewTiered(local, backing, 5*time.Minute)
	ctx := context.Background()

	tiered.Set(ctx, "k", []byte("v"), time.Hour)

	value, _, err := backing.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), value)
}

func TestTieredRemoveBothTiers(t *testing.T) {
	local, _ := newTestMemory(16)
	backing, _ := newTestMemory(16)
	tiered := NewTiered(local, backing, 5*time.Minute)
	ctx := context.Background()

	tiered.Set(ctx, "k", []byte("v"), time.Hour)
	tiered.Remove(ctx, "k")

	assert.False(t, tiered.Exists(ctx, "k"))

	_, _, err := backing.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrNotFound)

	// Removing again tolerates absence.
	tiered.Remove(ctx, "k")
}

func TestTieredExistsEitherTier(t *testing.T) {
	local, _ := newTestMemory(16)
	backing, _ := newTestMemory(16)
	tiered := NewTiered(local, backing, 5*time.Minute)
	ctx := context.Background()

	assert.False(t, tiered.Exists(ctx, "k"))

	require.NoError(t, backing.Set(ctx, "k", []byte("v"), time.Hour))
	assert.True(t, tiered.Exists(ctx, "k"))

	require.NoError(t, backing.Remove(ctx, "k"))
	require.NoError(t, local.Set(ctx, "k", []byte("v"), time.Minute))
	assert.True(t, tiered.Exists(ctx, "k"))
}

func TestTieredWithoutBacking(t *testing.T) {
	local, _ := newTestMemory(16)
	tiered := NewTiered(local, nil, 5*time.Minute)
	ctx := context.Background()

	tiered.Set(ctx, "k", []byte("v"), time.Hour)

	value, ok := tiered.Get(ctx, "k")
	require.True(t, ok)
	assert.Equal(t, []byte("v"), value)

	assert.True(t, tiered.Exists(ctx, "k"))

	tiered.Remove(ctx, "k")
	assert.False(t, tiered.Exists(ctx, "k"))
}
