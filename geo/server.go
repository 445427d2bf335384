// Copyright 2026 The Rumbo Authors
// SPDX-License-Identifier: Apache-2.0

package geo

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jcodagnone/rumbo/spatial"
)

// Server is the HTTP gateway in front of the orchestrator. It owns input
// validation: coordinate bounds and address sanity are checked here, before
// anything reaches the core.
type Server struct {
	orchestrator *Orchestrator
}

// NewServer creates the HTTP gateway.
func NewServer(orchestrator *Orchestrator) *Server {
	return &Server{orchestrator: orchestrator}
}

// Routes registers the API endpoints on r.
func (s *Server) Routes(r *gin.Engine) {
	r.GET("/api/geocode", s.geocode)
	r.GET("/api/reverse", s.reverseGeocode)
	r.GET("/api/route", s.route)
	r.GET("/api/providers/health", s.providersHealth)
}

// Run serves the API on addr until the listener fails.
func (s *Server) Run(addr string) error {
	r := gin.Default()
	s.Routes(r)

	return r.Run(addr)
}

func (s *Server) geocode(ctx *gin.Context) {
	address := ctx.Query("address")
	if err := validateAddress(address); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

		return
	}

	result, err := s.orchestrator.Geocode(ctx.Request.Context(), address)
	if err != nil {
		ctx.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})

		return
	}

	ctx.JSON(http.StatusOK, result)
}

func (s *Server) reverseGeocode(ctx *gin.Context) {
	point, ok := parsePoint(ctx, "lat", "lng")
	if !ok {
		return
	}

	result, err := s.orchestrator.ReverseGeocode(ctx.Request.Context(), point)
	if err != nil {
		ctx.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})

		return
	}

	ctx.JSON(http.StatusOK, result)
}

func (s *Server) route(ctx *gin.Context) {
	from, ok := parsePoint(ctx, "from_lat", "from_lng")
	if !ok {
		return
	}

	to, ok := parsePoint(ctx, "to_lat", "to_lng")
	if !ok {
		return
	}

	result, err := s.orchestrator.Route(ctx.Request.Context(), from, to)
	if err != nil {
		ctx.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})

		return
	}

	ctx.JSON(http.StatusOK, result)
}

// HealthResponse is the payload of the provider health endpoint.
type HealthResponse struct {
	Providers map[string]bool `json:"providers"`
	Metrics   MetricsSnapshot `json:"metrics"`
}

func (s *Server) providersHealth(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, HealthResponse{
		Providers: s.orchestrator.ProvidersHealth(ctx.Request.Context()),
		Metrics:   s.orchestrator.Metrics(),
	})
}

// parsePoint reads and validates a coordinate pair from query parameters,
// answering 400 itself when they are missing or out of bounds.
func parsePoint(ctx *gin.Context, latParam, lngParam string) (spatial.Point, bool) {
	lat, err := strconv.ParseFloat(ctx.Query(latParam), 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + latParam + " parameter"})

		return spatial.Point{}, false
	}

	lng, err := strconv.ParseFloat(ctx.Query(lngParam), 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + lngParam + " parameter"})

		return spatial.Point{}, false
	}

	if err := validateCoordinates(lat, lng); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

		return spatial.Point{}, false
	}

	return spatial.Point{Lat: lat, Lng: lng}, true
}
