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

const tomtomBaseURL = "https://api.tomtom.com"

// TomTom uses the TomTom Search and Routing APIs.
type TomTom struct {
	client
	apiKey  string
	baseURL string
}

// NewTomTom creates a TomTom client.
func NewTomTom(desc geo.Descriptor, apiKey string, httpClient *http.Client) *TomTom {
	return &TomTom{
		client:  client{desc: desc, httpClient: httpClient},
		apiKey:  apiKey,
		baseURL: tomtomBaseURL,
	}
}

type tomtomGeocodeResponse struct {
	Results []struct {
		Score    float64 `json:"score"`
		Position struct {
			Lat float64 `json:"lat"`
			Lon float64 `json:"lon"`
		} `json:"position"`
		Address struct {
			FreeformAddress string `json:"freeformAddress"`
		} `json:"address"`
	} `json:"results"`
}

// tomtomConfidence buckets TomTom's fuzzy-match score. Anything above ~10
// is an exact-ish match in practice.
func tomtomConfidence(score float64) string {
	switch {
	case score >= 10:
		return "high"
	case score >= 5:
		return "medium"
	default:
		return "low"
	}
}

// Geocode implements geo.Provider.
func (t *TomTom) Geocode(ctx context.Context, address string) (*geo.GeocodeResult, error) {
	params := url.Values{}
	params.Set("key", t.apiKey)

	var tr tomtomGeocodeResponse

	reqURL := t.baseURL + "/search/2/geocode/" + url.PathEscape(address) + ".json?" + params.Encode()
	if err := t.get(ctx, reqURL, func(body io.Reader) error {
		return json.NewDecoder(body).Decode(&tr)
	}); err != nil {
		return nil, err
	}

	if len(tr.Results) == 0 {
		return &geo.GeocodeResult{Provider: t.desc.Name, Timestamp: time.Now()}, nil
	}

	first := tr.Results[0]

	return &geo.GeocodeResult{
		Address:    first.Address.FreeformAddress,
		Point:      spatial.Point{Lat: first.Position.Lat, Lng: first.Position.Lon},
		Confidence: tomtomConfidence(first.Score),
		Provider:   t.desc.Name,
		Timestamp:  time.Now(),
	}, nil
}

type tomtomReverseResponse struct {
	Addresses []struct {
		Address struct {
			FreeformAddress string `json:"freeformAddress"`
		} `json:"address"`
	} `json:"addresses"`
}

// ReverseGeocode implements geo.Provider.
func (t *TomTom) ReverseGeocode(ctx context.Context, p spatial.Point) (*geo.GeocodeResult, error) {
	params := url.Values{}
	params.Set("key", t.apiKey)

	var tr tomtomReverseResponse

	reqURL := fmt.Sprintf("%s/search/2/reverseGeocode/%f,%f.json?%s",
		t.baseURL, p.Lat, p.Lng, params.Encode())
	if err := t.get(ctx, reqURL, func(body io.Reader) error {
		return json.NewDecoder(body).Decode(&tr)
	}); err != nil {
		return nil, err
	}

	result := &geo.GeocodeResult{
		Point:     p,
		Provider:  t.desc.Name,
		Timestamp: time.Now(),
	}

	if len(tr.Addresses) > 0 {
		result.Address = tr.Addresses[0].Address.FreeformAddress
		result.Confidence = "high"
	}

	return result, nil
}

type tomtomRouteResponse struct {
	Routes []struct {
		Summary struct {
			LengthInMeters      float64 `json:"lengthInMeters"`
			TravelTimeInSeconds float64 `json:"travelTimeInSeconds"`
		} `json:"summary"`
	} `json:"routes"`
}

// Route implements geo.Provider.
func (t *TomTom) Route(ctx context.Context, from, to spatial.Point) (*geo.RouteResult, error) {
	params := url.Values{}
	params.Set("key", t.apiKey)

	var rr tomtomRouteResponse

	reqURL := fmt.Sprintf("%s/routing/1/calculateRoute/%f,%f:%f,%f/json?%s",
		t.baseURL, from.Lat, from.Lng, to.Lat, to.Lng, params.Encode())
	if err := t.get(ctx, reqURL, func(body io.Reader) error {
		return json.NewDecoder(body).Decode(&rr)
	}); err != nil {
		return nil, err
	}

	result := &geo.RouteResult{
		From:      from,
		To:        to,
		Provider:  t.desc.Name,
		Timestamp: time.Now(),
	}

	if len(rr.Routes) == 0 {
		return result, nil
	}

	result.DistanceMeters = rr.Routes[0].Summary.LengthInMeters
	result.Duration = time.Duration(rr.Routes[0].Summary.TravelTimeInSeconds * float64(time.Second))

	return result, nil
}

// Healthy implements geo.Provider with a plain reachability probe.
func (t *TomTom) Healthy(ctx context.Context) bool {
	return t.reachable(ctx, t.baseURL+"/search/2/geocode/.json")
}
