// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package gemini is a minimal client for the Gemini generateContent API.
//
// Only single-turn text questions are supported. The request body is
//
//	{"contents":[{"parts":[{"text":"<question>"}]}]}
//
// and the answer is the text of the first part of the first candidate.
//
// # Errors
//
// Every failure wraps one of the package sentinels so callers can use
// errors.Is:
//
//   - ErrNotConfigured: no API key
//   - ErrHTTPStatus: non-2xx response, detail in *APIError
//   - ErrMalformedResponse: body is not the expected shape
//   - ErrEmptyAnswer: the first candidate has no parts
//
// Network failures and context cancellation are returned wrapped as-is.
package gemini
