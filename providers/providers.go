// Copyright 2026 The Rumbo Authors
// SPDX-License-Identifier: Apache-2.0

// Package providers contains the vendor clients implementing the
// geo.Provider contract: Google Maps, HERE and TomTom. Each client wraps
// the vendor's HTTP API, normalizes responses into geo result values and
// classifies failures with the geo error taxonomy.
package providers

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/jcodagnone/rumbo/geo"
	"github.com/jcodagnone/rumbo/utils/httputils"
)

const defaultTimeout = 10 * time.Second

// Options tunes the HTTP behavior shared by all vendor clients.
type Options struct {
	// UserAgent is sent on every request. Nominally required by most
	// vendor terms of service.
	UserAgent string

	// Timeout bounds each vendor call. Zero means a 10 second default.
	Timeout time.Duration

	// EnableHTTPTrace dumps requests and responses to stderr.
	EnableHTTPTrace bool

	// EnableHTTPBodyTrace also dumps response bodies.
	EnableHTTPBodyTrace bool
}

// New builds a vendor client by its configured type name.
func New(kind string, desc geo.Descriptor, apiKey string, opts Options) (geo.Provider, error) {
	hc := newHTTPClient(opts)

	switch kind {
	case "google":
		return NewGoogle(desc, apiKey, hc), nil
	case "here":
		return NewHERE(desc, apiKey, hc), nil
	case "tomtom":
		return NewTomTom(desc, apiKey, hc), nil
	default:
		return nil, fmt.Errorf("unknown provider type %q", kind)
	}
}

func newHTTPClient(opts Options) *http.Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	var transport http.RoundTripper = http.DefaultTransport

	if opts.EnableHTTPTrace {
		transport = &httputils.LoggingRoundTripper{
			Transport: transport,
			Writer:    os.Stderr,
			DumpBody:  opts.EnableHTTPBodyTrace,
		}
	}

	if opts.UserAgent != "" {
		transport = &httputils.AppendRequestHeadersRoundTripper{
			Transport: transport,
			Headers:   map[string]string{"User-Agent": opts.UserAgent},
		}
	}

	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}
}

// client carries what every vendor client shares: its configured
// descriptor and the HTTP client. It implements the capability half of
// the geo.Provider contract.
type client struct {
	desc       geo.Descriptor
	httpClient *http.Client
}

// Name implements geo.Provider.
func (c *client) Name() string { return c.desc.Name }

// AllowsCaching implements geo.Provider.
func (c *client) AllowsCaching() bool { return c.desc.AllowsCaching }

// CacheTTL implements geo.Provider.
func (c *client) CacheTTL() time.Duration { return c.desc.CacheTTL }

// get issues a GET and hands the body to parse, mapping HTTP failures to
// the geo error taxonomy.
func (c *client) get(ctx context.Context, url string, parse func(io.Reader) error) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &geo.ProviderError{
			Provider: c.desc.Name,
			Kind:     geo.KindNetwork,
			Message:  "request failed",
			Err:      err,
		}
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return geo.ClassifyHTTPError(c.desc.Name, resp.StatusCode)
	}

	if err := parse(resp.Body); err != nil {
		return fmt.Errorf("%s: decoding response: %w", c.desc.Name, err)
	}

	return nil
}

// reachable probes url and reports whether the vendor answered at all.
// Any HTTP status counts as reachable; only transport failures do not.
func (c *client) reachable(ctx context.Context, url string) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false
	}

	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	return true
}
