// Copyright 2026 The Rumbo Authors
// SPDX-License-Identifier: Apache-2.0

// Package geo contains the query aggregation core: the provider contract,
// the ordered provider registry, deterministic cache-key derivation, and
// the orchestrator that mediates between callers, the cache tiers and the
// external location providers.
package geo

import (
	"context"
	"time"

	"github.com/jcodagnone/rumbo/spatial"
)

// NoProvider is the provider name carried by the sentinel result returned
// when every registered provider failed or came back empty. Exhaustion is
// a reportable outcome, not an error.
const NoProvider = "None"

// GeocodeResult is the normalized answer to a geocode or reverse-geocode
// query. Immutable once produced by a provider client.
type GeocodeResult struct {
	Address    string        `json:"address"`
	Point      spatial.Point `json:"point"`
	Confidence string        `json:"confidence"` // high, medium, low
	Provider   string        `json:"provider"`
	Timestamp  time.Time     `json:"timestamp"`
}

// HasCoordinates reports whether the result carries usable coordinates.
// A geocode answer without them is treated as empty by the orchestrator.
// The zero point (0, 0) counts as "no coordinates", so a genuine hit at
// Null Island is indistinguishable from an empty answer.
func (r *GeocodeResult) HasCoordinates() bool {
	return r != nil && !r.Point.IsZero()
}

// HasAddress reports whether the result carries a formatted address. A
// reverse-geocode answer without one is treated as empty.
func (r *GeocodeResult) HasAddress() bool {
	return r != nil && r.Address != ""
}

// RouteResult is the normalized answer to a routing query.
type RouteResult struct {
	From           spatial.Point `json:"from"`
	To             spatial.Point `json:"to"`
	DistanceMeters float64       `json:"distance_meters"`
	Duration       time.Duration `json:"duration"`
	Provider       string        `json:"provider"`
	Timestamp      time.Time     `json:"timestamp"`
}

// HasDistance reports whether the route carries a positive distance,
// the usability bar for a routing answer.
func (r *RouteResult) HasDistance() bool {
	return r != nil && r.DistanceMeters > 0
}

// Descriptor captures a provider's configured capabilities. It is built
// once at startup from configuration and never changes afterwards.
type Descriptor struct {
	// Name identifies the provider; unique within a registry.
	Name string

	// AllowsCaching is false for vendors whose terms forbid storing
	// their responses. Such providers still serve queries; only the
	// cache write is skipped.
	AllowsCaching bool

	// CacheTTL is the vendor's preferred entry lifetime. Zero means the
	// orchestrator's default applies.
	CacheTTL time.Duration
}

// Provider is the contract every vendor client implements. The Name,
// AllowsCaching and CacheTTL methods expose the client's Descriptor.
type Provider interface {
	Name() string
	AllowsCaching() bool
	CacheTTL() time.Duration

	Geocode(ctx context.Context, address string) (*GeocodeResult, error)
	ReverseGeocode(ctx context.Context, p spatial.Point) (*GeocodeResult, error)
	Route(ctx context.Context, from, to spatial.Point) (*RouteResult, error)

	// Healthy probes the vendor's reachability. It reports false on any
	// failure instead of returning an error.
	Healthy(ctx context.Context) bool
}
