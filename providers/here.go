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

// HERE serves each product from its own host.
const (
	hereGeocodeBaseURL = "https://geocode.search.hereapi.com"
	hereReverseBaseURL = "https://revgeocode.search.hereapi.com"
	hereRouterBaseURL  = "https://router.hereapi.com"
)

// HERE uses the HERE Geocoding & Search and Routing v8 APIs.
type HERE struct {
	client
	apiKey      string
	geocodeBase string
	reverseBase string
	routerBase  string
}

// NewHERE creates a HERE client.
func NewHERE(desc geo.Descriptor, apiKey string, httpClient *http.Client) *HERE {
	return &HERE{
		client:      client{desc: desc, httpClient: httpClient},
		apiKey:      apiKey,
		geocodeBase: hereGeocodeBaseURL,
		reverseBase: hereReverseBaseURL,
		routerBase:  hereRouterBaseURL,
	}
}

type hereGeocodeResponse struct {
	Items []struct {
		Title   string `json:"title"`
		Address struct {
			Label string `json:"label"`
		} `json:"address"`
		Position struct {
			Lat float64 `json:"lat"`
			Lng float64 `json:"lng"`
		} `json:"position"`
		Scoring struct {
			QueryScore float64 `json:"queryScore"` // 0..1
		} `json:"scoring"`
	} `json:"items"`
}

func hereConfidence(queryScore float64) string {
	switch {
	case queryScore >= 0.9:
		return "high"
	case queryScore >= 0.6:
		return "medium"
	default:
		return "low"
	}
}

func (h *HERE) search(ctx context.Context, reqURL string) (*geo.GeocodeResult, error) {
	var hr hereGeocodeResponse
	if err := h.get(ctx, reqURL, func(body io.Reader) error {
		return json.NewDecoder(body).Decode(&hr)
	}); err != nil {
		return nil, err
	}

	if len(hr.Items) == 0 {
		return &geo.GeocodeResult{Provider: h.desc.Name, Timestamp: time.Now()}, nil
	}

	item := hr.Items[0]

	address := item.Address.Label
	if address == "" {
		address = item.Title
	}

	return &geo.GeocodeResult{
		Address:    address,
		Point:      spatial.Point{Lat: item.Position.Lat, Lng: item.Position.Lng},
		Confidence: hereConfidence(item.Scoring.QueryScore),
		Provider:   h.desc.Name,
		Timestamp:  time.Now(),
	}, nil
}

// Geocode implements geo.Provider.
func (h *HERE) Geocode(ctx context.Context, address string) (*geo.GeocodeResult, error) {
	params := url.Values{}
	params.Set("q", address)
	params.Set("apiKey", h.apiKey)

	return h.search(ctx, h.geocodeBase+"/v1/geocode?"+params.Encode())
}

// ReverseGeocode implements geo.Provider. Reverse results carry no query
// score; HERE matched exact coordinates, so confidence is high whenever
// an address comes back.
func (h *HERE) ReverseGeocode(ctx context.Context, p spatial.Point) (*geo.GeocodeResult, error) {
	params := url.Values{}
	params.Set("at", fmt.Sprintf("%f,%f", p.Lat, p.Lng))
	params.Set("apiKey", h.apiKey)

	result, err := h.search(ctx, h.reverseBase+"/v1/revgeocode?"+params.Encode())
	if err != nil {
		return nil, err
	}

	if result.HasAddress() {
		result.Confidence = "high"
	}

	return result, nil
}

type hereRouteResponse struct {
	Routes []struct {
		Sections []struct {
			Summary struct {
				Length   float64 `json:"length"`   // meters
				Duration float64 `json:"duration"` // seconds
			} `json:"summary"`
		} `json:"sections"`
	} `json:"routes"`
}

// Route implements geo.Provider using Routing v8.
func (h *HERE) Route(ctx context.Context, from, to spatial.Point) (*geo.RouteResult, error) {
	params := url.Values{}
	params.Set("transportMode", "car")
	params.Set("origin", fmt.Sprintf("%f,%f", from.Lat, from.Lng))
	params.Set("destination", fmt.Sprintf("%f,%f", to.Lat, to.Lng))
	params.Set("return", "summary")
	params.Set("apiKey", h.apiKey)

	var rr hereRouteResponse

	reqURL := h.routerBase + "/v8/routes?" + params.Encode()
	if err := h.get(ctx, reqURL, func(body io.Reader) error {
		return json.NewDecoder(body).Decode(&rr)
	}); err != nil {
		return nil, err
	}

	result := &geo.RouteResult{
		From:      from,
		To:        to,
		Provider:  h.desc.Name,
		Timestamp: time.Now(),
	}

	if len(rr.Routes) == 0 {
		return result, nil
	}

	for _, section := range rr.Routes[0].Sections {
		result.DistanceMeters += section.Summary.Length
		result.Duration += time.Duration(section.Summary.Duration * float64(time.Second))
	}

	return result, nil
}

// Healthy implements geo.Provider with a plain reachability probe.
func (h *HERE) Healthy(ctx context.Context) bool {
	return h.reachable(ctx, h.geocodeBase+"/v1/geocode")
}
