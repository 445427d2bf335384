// Copyright 2026 The Rumbo Authors
// SPDX-License-Identifier: Apache-2.0

package geo

import (
	"fmt"
	"sort"
)

// Entry pairs a live provider client with its configured priority.
type Entry struct {
	Provider Provider
	Priority int
}

// Registry holds the ordered set of providers the orchestrator iterates
// over. The order is fixed here, at construction, from the configured
// priorities; there is no runtime reordering based on health or latency.
type Registry struct {
	providers []Provider
}

// NewRegistry builds a registry from entries, sorted by ascending priority.
// Entries with equal priority keep their given relative order. Provider
// names must be unique.
func NewRegistry(entries []Entry) (*Registry, error) {
	sorted := make([]Entry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Priority < sorted[j].Priority
	})

	seen := make(map[string]bool, len(sorted))
	providers := make([]Provider, 0, len(sorted))

	for _, e := range sorted {
		name := e.Provider.Name()
		if seen[name] {
			return nil, fmt.Errorf("duplicate provider name %q", name)
		}

		seen[name] = true

		providers = append(providers, e.Provider)
	}

	return &Registry{providers: providers}, nil
}

// Providers returns the providers in iteration order. Callers must not
// mutate the returned slice.
func (r *Registry) Providers() []Provider {
	return r.providers
}

// Names returns the provider names in iteration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.providers))
	for i, p := range r.providers {
		names[i] = p.Name()
	}

	return names
}

// Len returns the number of registered providers.
func (r *Registry) Len() int {
	return len(r.providers)
}
