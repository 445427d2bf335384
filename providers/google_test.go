// Copyright 2026 The Rumbo Authors
// SPDX-License-Identifier: Apache-2.0

package providers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jcodagnone/rumbo/geo"
	"github.com/jcodagnone/rumbo/spatial"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDescriptor(name string) geo.Descriptor {
	return geo.Descriptor{
		Name:          name,
		AllowsCaching: true,
		CacheTTL:      time.Hour,
	}
}

func newTestGoogle(serverURL string) *Google {
	g := NewGoogle(testDescriptor("GoogleTest"), "test-key", &http.Client{})
	g.baseURL = serverURL

	return g
}

func TestGoogleGeocode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/maps/api/geocode/json", r.URL.Path)
		assert.Equal(t, "Av. 18 de Julio 1234, Montevideo", r.URL.Query().Get("address"))
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))

		_, _ = w.Write([]byte(`{
			"status": "OK",
			"results": [{
				"formatted_address": "Av. 18 de Julio 1234, 11100 Montevideo, Uruguay",
				"geometry": {
					"location": {"lat": -34.9055, "lng": -56.1875},
					"location_type": "ROOFTOP"
				}
			}]
		}`))
	}))
	defer server.Close()

	g := newTestGoogle(server.URL)

	result, err := g.Geocode(context.Background(), "Av. 18 de Julio 1234, Montevideo")
	require.NoError(t, err)
	assert.Equal(t, "Av. 18 de Julio 1234, 11100 Montevideo, Uruguay", result.Address)
	assert.InDelta(t, -34.9055, result.Point.Lat, 1e-9)
	assert.InDelta(t, -56.1875, result.Point.Lng, 1e-9)
	assert.Equal(t, "high", result.Confidence)
	assert.Equal(t, "GoogleTest", result.Provider)
	assert.True(t, result.HasCoordinates())
}

func TestGoogleGeocodeZeroResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"status": "ZERO_RESULTS", "results": []}`))
	}))
	defer server.Close()

	g := newTestGoogle(server.URL)

	// An empty vendor answer is not a fault.
	result, err := g.Geocode(context.Background(), "xyzzy nowhere")
	require.NoError(t, err)
	assert.False(t, result.HasCoordinates())
	assert.Equal(t, "GoogleTest", result.Provider)
}

func TestGoogleGeocodeVendorStatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"status": "REQUEST_DENIED", "results": []}`))
	}))
	defer server.Close()

	g := newTestGoogle(server.URL)

	_, err := g.Geocode(context.Background(), "somewhere")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "REQUEST_DENIED")
}

func TestGoogleGeocodeRateLimited(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	g := newTestGoogle(server.URL)

	_, err := g.Geocode(context.Background(), "somewhere")
	require.Error(t, err)
	assert.True(t, geo.IsRateLimitError(err))
}

func TestGoogleGeocodeNetworkFault(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	server.Close() // connection refused from here on

	g := newTestGoogle(server.URL)

	_, err := g.Geocode(context.Background(), "somewhere")
	require.Error(t, err)

	var perr *geo.ProviderError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, geo.KindNetwork, perr.Kind)
	assert.Equal(t, "GoogleTest", perr.Provider)
}

func TestGoogleReverseGeocode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NotEmpty(t, r.URL.Query().Get("latlng"))
		assert.Empty(t, r.URL.Query().Get("address"))

		_, _ = w.Write([]byte(`{
			"status": "OK",
			"results": [{
				"formatted_address": "Bulevar Artigas 500, Montevideo, Uruguay",
				"geometry": {
					"location": {"lat": -34.8941, "lng": -56.1731},
					"location_type": "GEOMETRIC_CENTER"
				}
			}]
		}`))
	}))
	defer server.Close()

	g := newTestGoogle(server.URL)

	result, err := g.ReverseGeocode(context.Background(), spatial.Point{Lat: -34.8941, Lng: -56.1731})
	require.NoError(t, err)
	assert.Equal(t, "Bulevar Artigas 500, Montevideo, Uruguay", result.Address)
	assert.Equal(t, "medium", result.Confidence)
	assert.True(t, result.HasAddress())
}

func TestGoogleRouteSumsLegs(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/maps/api/directions/json", r.URL.Path)
		assert.NotEmpty(t, r.URL.Query().Get("origin"))
		assert.NotEmpty(t, r.URL.Query().Get("destination"))

		_, _ = w.Write([]byte(`{
			"status": "OK",
			"routes": [{
				"legs": [
					{"distance": {"value": 1200}, "duration": {"value": 180}},
					{"distance": {"value": 800}, "duration": {"value": 120}}
				]
			}]
		}`))
	}))
	defer server.Close()

	g := newTestGoogle(server.URL)

	from := spatial.Point{Lat: -34.9055, Lng: -56.1875}
	to := spatial.Point{Lat: -34.8941, Lng: -56.1731}

	result, err := g.Route(context.Background(), from, to)
	require.NoError(t, err)
	assert.InDelta(t, 2000, result.DistanceMeters, 1e-9)
	assert.Equal(t, 5*time.Minute, result.Duration)
	assert.Equal(t, from, result.From)
	assert.Equal(t, to, result.To)
	assert.True(t, result.HasDistance())
}

func TestGoogleRouteZeroResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"status": "ZERO_RESULTS", "routes": []}`))
	}))
	defer server.Close()

	g := newTestGoogle(server.URL)

	result, err := g.Route(context.Background(),
		spatial.Point{Lat: -34.9, Lng: -56.1}, spatial.Point{Lat: 40.4, Lng: -3.7})
	require.NoError(t, err)
	assert.False(t, result.HasDistance())
}

func TestGoogleHealthy(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		// Even an error status means the vendor is reachable.
		w.WriteHeader(http.StatusBadRequest)
	}))

	g := newTestGoogle(server.URL)
	assert.True(t, g.Healthy(context.Background()))

	server.Close()
	assert.False(t, g.Healthy(context.Background()))
}
