// Copyright 2026 The Rumbo Authors
// SPDX-License-Identifier: Apache-2.0

package geo

import (
	"errors"
	"fmt"
	"strings"
)

const maxAddressLength = 500

// validateCoordinates checks global coordinate bounds. This runs at the
// HTTP boundary; the orchestrator assumes inputs already passed it.
func validateCoordinates(lat, lng float64) error {
	if lat < -90 || lat > 90 {
		return fmt.Errorf("latitude must be between -90 and 90 (got: %f)", lat)
	}

	if lng < -180 || lng > 180 {
		return fmt.Errorf("longitude must be between -180 and 180 (got: %f)", lng)
	}

	return nil
}

// validateAddress checks that an address is non-empty and of sane length.
func validateAddress(address string) error {
	if strings.TrimSpace(address) == "" {
		return errors.New("address must not be empty")
	}

	if len(address) > maxAddressLength {
		return fmt.Errorf("address too long (maximum %d characters)", maxAddressLength)
	}

	return nil
}
