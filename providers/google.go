// Copyright 2026 The Rumbo Authors
// SPDX-License-Identifier: Apache-2.0

package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/jcodagnone/rumbo/geo"
	"github.com/jcodagnone/rumbo/spatial"
)

const googleBaseURL = "https://maps.googleapis.com"

// Google uses the Google Maps Geocoding and Directions APIs.
type Google struct {
	client
	apiKey  string
	baseURL string
}

// NewGoogle creates a Google Maps client.
func NewGoogle(desc geo.Descriptor, apiKey string, httpClient *http.Client) *Google {
	return &Google{
		client:  client{desc: desc, httpClient: httpClient},
		apiKey:  apiKey,
		baseURL: googleBaseURL,
	}
}

type googleGeocodeResponse struct {
	Results []struct {
		Geometry struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
			LocationType string `json:"location_type"` // ROOFTOP, RANGE_INTERPOLATED, GEOMETRIC_CENTER, APPROXIMATE
		} `json:"geometry"`
		FormattedAddress string `json:"formatted_address"`
	} `json:"results"`
	Status string `json:"status"` // OK, ZERO_RESULTS, etc.
}

// googleConfidence maps Google's location_type to the service's
// confidence scale. Interpolated matches are still strong: Google handles
// intersections and address ranges well.
func googleConfidence(locationType string) string {
	switch locationType {
	case "ROOFTOP", "RANGE_INTERPOLATED":
		return "high"
	case "GEOMETRIC_CENTER":
		return "medium"
	default:
		return "low"
	}
}

func (g *Google) geocodeQuery(ctx context.Context, params url.Values) (*geo.GeocodeResult, error) {
	params.Set("key", g.apiKey)

	var gr googleGeocodeResponse

	reqURL := g.baseURL + "/maps/api/geocode/json?" + params.Encode()
	if err := g.get(ctx, reqURL, func(body io.Reader) error {
		return json.NewDecoder(body).Decode(&gr)
	}); err != nil {
		return nil, err
	}

	if gr.Status == "ZERO_RESULTS" || (gr.Status == "OK" && len(gr.Results) == 0) {
		// Not a fault: the vendor answered and has nothing.
		return &geo.GeocodeResult{Provider: g.desc.Name, Timestamp: time.Now()}, nil
	}

	if gr.Status != "OK" {
		return nil, fmt.Errorf("google maps status: %s", gr.Status)
	}

	first := gr.Results[0]

	return &geo.GeocodeResult{
		Address: first.FormattedAddress,
		Point: spatial.Point{
			Lat: first.Geometry.Location.Lat,
			Lng: first.Geometry.Location.Lng,
		},
		Confidence: googleConfidence(first.Geometry.LocationType),
		Provider:   g.desc.Name,
		Timestamp:  time.Now(),
	}, nil
}

// Geocode implements geo.Provider.
func (g *Google) Geocode(ctx context.Context, address string) (*geo.GeocodeResult, error) {
	params := url.Values{}
	params.Set("address", address)

	return g.geocodeQuery(ctx, params)
}

// ReverseGeocode implements geo.Provider.
func (g *Google) ReverseGeocode(ctx context.Context, p spatial.Point) (*geo.GeocodeResult, error) {
	params := url.Values{}
	params.Set("latlng", fmt.Sprintf("%f,%f", p.Lat, p.Lng))

	return g.geocodeQuery(ctx, params)
}

type googleDirectionsResponse struct {
	Routes []struct {
		Legs []struct {
			Distance struct {
				Value float64 `json:"value"` // meters
			} `json:"distance"`
			Duration struct {
				Value float64 `json:"value"` // seconds
			} `json:"duration"`
		} `json:"legs"`
	} `json:"routes"`
	Status string `json:"status"`
}

// Route implements geo.Provider using the Directions API.
func (g *Google) Route(ctx context.Context, from, to spatial.Point) (*geo.RouteResult, error) {
	params := url.Values{}
	params.Set("origin", fmt.Sprintf("%f,%f", from.Lat, from.Lng))
	params.Set("destination", fmt.Sprintf("%f,%f", to.Lat, to.Lng))
	params.Set("key", g.apiKey)

	var dr googleDirectionsResponse

	reqURL := g.baseURL + "/maps/api/directions/json?" + params.Encode()
	if err := g.get(ctx, reqURL, func(body io.Reader) error {
		return json.NewDecoder(body).Decode(&dr)
	}); err != nil {
		return nil, err
	}

	if dr.Status == "ZERO_RESULTS" || (dr.Status == "OK" && len(dr.Routes) == 0) {
		return &geo.RouteResult{From: from, To: to, Provider: g.desc.Name, Timestamp: time.Now()}, nil
	}

	if dr.Status != "OK" {
		return nil, fmt.Errorf("google directions status: %s", dr.Status)
	}

	result := &geo.RouteResult{
		From:      from,
		To:        to,
		Provider:  g.desc.Name,
		Timestamp: time.Now(),
	}

	for _, leg := range dr.Routes[0].Legs {
		result.DistanceMeters += leg.Distance.Value
		result.Duration += time.Duration(leg.Duration.Value * float64(time.Second))
	}

	return result, nil
}

// Healthy implements geo.Provider with a plain reachability probe.
func (g *Google) Healthy(ctx context.Context) bool {
	return g.reachable(ctx, g.baseURL+"/maps/api/geocode/json")
}
