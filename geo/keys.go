// Copyright 2026 The Rumbo Authors
// SPDX-License-Identifier: Apache-2.0

package geo

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"

	"golang.org/x/text/cases"

	"github.com/jcodagnone/rumbo/spatial"
)

// Operation identifies one of the orchestrator's query kinds. It prefixes
// every derived cache key, so the three operations can never collide.
type Operation string

// Operations known to the orchestrator.
const (
	OpGeocode Operation = "geocode"
	OpReverse Operation = "reverse"
	OpRoute   Operation = "route"
)

const (
	keySeparator = "|"

	// keyDigestBytes is how much of the sha-256 digest survives in a key.
	// 8 bytes keep keys compact while leaving collisions implausible for
	// any realistic working set.
	keyDigestBytes = 8

	// coordinatePrecision is the number of fractional digits coordinates
	// are rendered with before hashing. Two points that print the same at
	// this precision collide on purpose: they are the same query.
	coordinatePrecision = 6
)

// CanonicalAddress normalizes an address for key derivation: surrounding
// whitespace is dropped, internal runs collapse to a single space, and the
// result is Unicode case-folded.
func CanonicalAddress(address string) string {
	return cases.Fold().String(strings.Join(strings.Fields(address), " "))
}

// CanonicalPoint renders a point at the fixed key precision.
func CanonicalPoint(p spatial.Point) string {
	return strconv.FormatFloat(p.Lat, 'f', coordinatePrecision, 64) +
		"," +
		strconv.FormatFloat(p.Lng, 'f', coordinatePrecision, 64)
}

// DeriveKey produces the cache key for an operation over already
// canonicalized parameters. It is pure: equal canonical inputs always map
// to equal keys, regardless of how the caller originally formatted them.
func DeriveKey(op Operation, params ...string) string {
	sum := sha256.Sum256([]byte(string(op) + keySeparator + strings.Join(params, keySeparator)))

	return string(op) + ":" + hex.EncodeToString(sum[:keyDigestBytes])
}
