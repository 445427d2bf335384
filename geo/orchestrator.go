// Copyright 2026 The Rumbo Authors
// SPDX-License-Identifier: Apache-2.0

package geo

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jcodagnone/rumbo/cache"
	"github.com/jcodagnone/rumbo/spatial"
)

// DefaultCacheTTL applies when a caching provider does not configure its
// own preferred TTL.
const DefaultCacheTTL = 6 * time.Hour

// Metrics are the orchestrator's running counters, read through Snapshot.
type Metrics struct {
	cacheHits      atomic.Int64
	cacheMisses    atomic.Int64
	providerErrors atomic.Int64
	emptyResults   atomic.Int64
	exhausted      atomic.Int64
}

// MetricsSnapshot is a point-in-time copy of the orchestrator counters.
type MetricsSnapshot struct {
	CacheHits      int64 `json:"cache_hits"`
	CacheMisses    int64 `json:"cache_misses"`
	ProviderErrors int64 `json:"provider_errors"`
	EmptyResults   int64 `json:"empty_results"`
	Exhausted      int64 `json:"exhausted"`
}

// Orchestrator mediates location queries between callers and the external
// providers: it derives a cache key, serves cache hits, and on a miss
// walks the registry in priority order until one provider yields a usable
// result, populating the cache when the serving provider permits it.
//
// Provider attempts within one request are strictly sequential. Failures
// and empty answers fall through to the next provider; when the chain is
// exhausted the caller gets a sentinel result named NoProvider, never an
// error. Only context cancellation propagates out.
//
// Concurrent callers missing on the same key each walk the provider chain
// independently; there is no per-key in-flight deduplication.
type Orchestrator struct {
	cache      *cache.Tiered
	registry   *Registry
	defaultTTL time.Duration
	metrics    Metrics
}

// NewOrchestrator wires the orchestrator to its cache and its ordered
// provider registry. defaultTTL, when positive, overrides DefaultCacheTTL
// for providers without a configured TTL.
func NewOrchestrator(c *cache.Tiered, registry *Registry, defaultTTL time.Duration) *Orchestrator {
	if defaultTTL <= 0 {
		defaultTTL = DefaultCacheTTL
	}

	return &Orchestrator{
		cache:      c,
		registry:   registry,
		defaultTTL: defaultTTL,
	}
}

// Geocode resolves an address to coordinates. Inputs are assumed already
// validated by the boundary layer.
func (o *Orchestrator) Geocode(ctx context.Context, address string) (*GeocodeResult, error) {
	key := DeriveKey(OpGeocode, CanonicalAddress(address))

	var cached GeocodeResult
	if o.lookup(ctx, key, &cached) {
		return &cached, nil
	}

	result, err := attempt(ctx, o, key,
		func(ctx context.Context, p Provider) (*GeocodeResult, error) {
			return p.Geocode(ctx, address)
		},
		(*GeocodeResult).HasCoordinates,
	)
	if err != nil {
		return nil, err
	}

	if result == nil {
		return &GeocodeResult{Provider: NoProvider, Timestamp: time.Now()}, nil
	}

	return result, nil
}

// ReverseGeocode resolves coordinates to a formatted address.
func (o *Orchestrator) ReverseGeocode(ctx context.Context, p spatial.Point) (*GeocodeResult, error) {
	key := DeriveKey(OpReverse, CanonicalPoint(p))

	var cached GeocodeResult
	if o.lookup(ctx, key, &cached) {
		return &cached, nil
	}

	result, err := attempt(ctx, o, key,
		func(ctx context.Context, prov Provider) (*GeocodeResult, error) {
			return prov.ReverseGeocode(ctx, p)
		},
		(*GeocodeResult).HasAddress,
	)
	if err != nil {
		return nil, err
	}

	if result == nil {
		return &GeocodeResult{Point: p, Provider: NoProvider, Timestamp: time.Now()}, nil
	}

	return result, nil
}

// Route computes distance and travel time between two points.
func (o *Orchestrator) Route(ctx context.Context, from, to spatial.Point) (*RouteResult, error) {
	key := DeriveKey(OpRoute, CanonicalPoint(from), CanonicalPoint(to))

	var cached RouteResult
	if o.lookup(ctx, key, &cached) {
		return &cached, nil
	}

	result, err := attempt(ctx, o, key,
		func(ctx context.Context, prov Provider) (*RouteResult, error) {
			return prov.Route(ctx, from, to)
		},
		func(r *RouteResult) bool {
			return r.HasDistance() && plausibleDistance(from, to, r.DistanceMeters)
		},
	)
	if err != nil {
		return nil, err
	}

	if result == nil {
		return &RouteResult{From: from, To: to, Provider: NoProvider, Timestamp: time.Now()}, nil
	}

	return result, nil
}

// routeDistanceSlack tolerates vendor rounding when checking a reported
// road distance against the straight-line floor between the endpoints.
const routeDistanceSlack = 0.99

// plausibleDistance rejects a vendor-reported road distance shorter than
// the straight-line distance between the endpoints. No road beats the
// great circle; such an answer is a vendor fault and falls through to
// the next provider like an empty one.
func plausibleDistance(from, to spatial.Point, meters float64) bool {
	return meters >= from.HaversineDistance(to)*routeDistanceSlack
}

// attempt walks the registry in order, invoking call on each provider
// until one returns a usable result. It returns (nil, nil) when the chain
// is exhausted, and an error only for context cancellation.
func attempt[T any](
	ctx context.Context,
	o *Orchestrator,
	key string,
	call func(context.Context, Provider) (*T, error),
	usable func(*T) bool,
) (*T, error) {
	for _, p := range o.registry.Providers() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		result, err := call(ctx, p)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}

			o.metrics.providerErrors.Add(1)
			log.Printf("geo: provider %s failed: %v", p.Name(), err)

			continue
		}

		if !usable(result) {
			o.metrics.emptyResults.Add(1)
			log.Printf("geo: provider %s returned an unusable result", p.Name())

			continue
		}

		o.store(ctx, key, p, result)

		return result, nil
	}

	o.metrics.exhausted.Add(1)

	return nil, nil
}

// lookup deserializes a cache hit into out. A corrupt entry is evicted
// and counted as a miss.
func (o *Orchestrator) lookup(ctx context.Context, key string, out any) bool {
	data, ok := o.cache.Get(ctx, key)
	if !ok {
		o.metrics.cacheMisses.Add(1)

		return false
	}

	if err := json.Unmarshal(data, out); err != nil {
		log.Printf("geo: evicting corrupt cache entry %s: %v", key, err)
		o.cache.Remove(ctx, key)
		o.metrics.cacheMisses.Add(1)

		return false
	}

	o.metrics.cacheHits.Add(1)

	return true
}

// store writes a fresh result to the cache, honoring the serving
// provider's caching policy. Nothing is ever written before a provider
// call succeeded.
func (o *Orchestrator) store(ctx context.Context, key string, p Provider, result any) {
	if !p.AllowsCaching() {
		return
	}

	data, err := json.Marshal(result)
	if err != nil {
		log.Printf("geo: marshaling result for %s: %v", key, err)

		return
	}

	ttl := p.CacheTTL()
	if ttl <= 0 {
		ttl = o.defaultTTL
	}

	o.cache.Set(ctx, key, data, ttl)
}

// ProvidersHealth probes every registered provider concurrently and
// returns one entry per provider. A failed probe records false; it never
// aborts the others.
func (o *Orchestrator) ProvidersHealth(ctx context.Context) map[string]bool {
	var (
		mu     sync.Mutex
		health = make(map[string]bool, o.registry.Len())
	)

	g := new(errgroup.Group)

	for _, p := range o.registry.Providers() {
		g.Go(func() error {
			ok := p.Healthy(ctx)

			mu.Lock()
			health[p.Name()] = ok
			mu.Unlock()

			return nil
		})
	}

	// Probes report failure through the map, never through an error.
	_ = g.Wait()

	return health
}

// Metrics returns a snapshot of the orchestrator counters.
func (o *Orchestrator) Metrics() MetricsSnapshot {
	return MetricsSnapshot{
		CacheHits:      o.metrics.cacheHits.Load(),
		CacheMisses:    o.metrics.cacheMisses.Load(),
		ProviderErrors: o.metrics.providerErrors.Load(),
		EmptyResults:   o.metrics.emptyResults.Load(),
		Exhausted:      o.metrics.exhausted.Load(),
	}
}
