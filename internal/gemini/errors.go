// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package gemini

import (
	"errors"
	"fmt"
)

var (
	// ErrNotConfigured indicates the API key is not set.
	ErrNotConfigured = errors.New("gemini API key not configured")

	// ErrHTTPStatus indicates a non-2xx response.
	ErrHTTPStatus = errors.New("gemini returned an error status")

	// ErrMalformedResponse indicates the body could not be decoded into
	// candidates[0].content.parts.
	ErrMalformedResponse = errors.New("malformed gemini response")

	// ErrEmptyAnswer indicates the first candidate carried no parts.
	ErrEmptyAnswer = errors.New("gemini response has no answer text")
)

// APIError is a non-2xx response. The Gemini error envelope is decoded into
// it when present.
type APIError struct {
	StatusCode int
	Code       int
	Status     string
	Message    string
}

// Error implements error.
func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("gemini API error: HTTP %d", e.StatusCode)
	}
	if e.Status != "" {
		return fmt.Sprintf("gemini API error: HTTP %d %s: %s", e.StatusCode, e.Status, e.Message)
	}
	return fmt.Sprintf("gemini API error: HTTP %d: %s", e.StatusCode, e.Message)
}

// Is matches ErrHTTPStatus.
func (e *APIError) Is(target error) bool {
	return target == ErrHTTPStatus
}
