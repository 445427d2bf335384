// Copyright 2026 The Rumbo Authors
// SPDX-License-Identifier: Apache-2.0

package geo

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ProviderError represents a failure talking to an external provider.
// The orchestrator never surfaces it to callers; it logs it and moves on
// to the next provider in the chain.
type ProviderError struct {
	Provider string
	Kind     ErrorKind
	Message  string
	Err      error
}

// ErrorKind classifies provider failures.
type ErrorKind int

const (
	// KindUnknown unclassified failure.
	KindUnknown ErrorKind = iota
	// KindRateLimit the vendor throttled us.
	KindRateLimit
	// KindQuotaExceeded the billing quota ran out.
	KindQuotaExceeded
	// KindTimeout the call timed out.
	KindTimeout
	// KindNotFound the vendor has no answer for the query.
	KindNotFound
	// KindInvalidRequest the vendor rejected the request.
	KindInvalidRequest
	// KindNetwork transport-level failure.
	KindNetwork
)

func (e *ProviderError) Error() string {
	msg := e.Message
	if e.Provider != "" {
		msg = e.Provider + ": " + msg
	}

	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}

	return msg
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// IsRateLimitError checks whether the failure was the vendor throttling.
func IsRateLimitError(err error) bool {
	var provErr *ProviderError
	if errors.As(err, &provErr) {
		return provErr.Kind == KindRateLimit
	}

	// Fall back to common error message patterns
	errStr := strings.ToLower(err.Error())

	return strings.Contains(errStr, "rate limit") ||
		strings.Contains(errStr, "too many requests") ||
		strings.Contains(errStr, "429")
}

// IsQuotaExceededError checks whether the failure was an exhausted quota.
func IsQuotaExceededError(err error) bool {
	var provErr *ProviderError
	if errors.As(err, &provErr) {
		return provErr.Kind == KindQuotaExceeded
	}

	errStr := strings.ToLower(err.Error())

	return strings.Contains(errStr, "over_query_limit") ||
		strings.Contains(errStr, "quota exceeded")
}

// IsTimeoutError checks whether the failure was a timeout.
func IsTimeoutError(err error) bool {
	var provErr *ProviderError
	if errors.As(err, &provErr) {
		return provErr.Kind == KindTimeout
	}

	errStr := strings.ToLower(err.Error())

	return strings.Contains(errStr, "timeout") ||
		strings.Contains(errStr, "deadline exceeded")
}

// ClassifyHTTPError maps a vendor's HTTP status code to a ProviderError.
func ClassifyHTTPError(provider string, statusCode int) *ProviderError {
	switch statusCode {
	case http.StatusTooManyRequests: // 429
		return &ProviderError{
			Provider: provider,
			Kind:     KindRateLimit,
			Message:  "rate limit reached",
		}
	case http.StatusForbidden, http.StatusPaymentRequired: // 403, 402
		return &ProviderError{
			Provider: provider,
			Kind:     KindQuotaExceeded,
			Message:  "quota exceeded or access denied",
		}
	case http.StatusBadRequest: // 400
		return &ProviderError{
			Provider: provider,
			Kind:     KindInvalidRequest,
			Message:  "invalid request",
		}
	case http.StatusNotFound: // 404
		return &ProviderError{
			Provider: provider,
			Kind:     KindNotFound,
			Message:  "no result for query",
		}
	case http.StatusServiceUnavailable, http.StatusBadGateway, http.StatusGatewayTimeout:
		return &ProviderError{
			Provider: provider,
			Kind:     KindNetwork,
			Message:  fmt.Sprintf("service unavailable (status %d)", statusCode),
		}
	default:
		return &ProviderError{
			Provider: provider,
			Kind:     KindUnknown,
			Message:  fmt.Sprintf("HTTP error %d", statusCode),
		}
	}
}
