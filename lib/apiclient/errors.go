// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package apiclient

import (
	"errors"
	"fmt"
)

// Kind classifies a failed API call by how the caller should react.
type Kind int

const (
	// KindApplication is a request the backend processed and refused:
	// a success:false envelope or any non-2xx status other than 401
	// and 409. The server's message, if any, is shown to the user.
	KindApplication Kind = iota

	// KindUnauthorized is a 401. The token is missing, expired, or
	// revoked; the caller sends the user back to login.
	KindUnauthorized

	// KindConflict is a 409. On create it means the ticket duplicates
	// an existing listing.
	KindConflict

	// KindNetwork means the request never produced an HTTP response:
	// connection refused, DNS failure, timeout, or an unreadable body.
	KindNetwork
)

// String returns the kind's name as used in logs and metric labels.
func (kind Kind) String() string {
	switch kind {
	case KindApplication:
		return "application"
	case KindUnauthorized:
		return "unauthorized"
	case KindConflict:
		return "conflict"
	case KindNetwork:
		return "network"
	default:
		return fmt.Sprintf("kind(%d)", int(kind))
	}
}

// NetworkMessage is the fixed user-facing text for network failures.
const NetworkMessage = "Network error"

// Error is returned by every Client method that fails after the
// request was built. Callers use errors.As to branch on Kind:
//
//	var apiErr *apiclient.Error
//	if errors.As(err, &apiErr) && apiErr.Kind == apiclient.KindConflict { ... }
//
// or the [IsUnauthorized], [IsConflict], and [IsNetwork] shorthands.
type Error struct {
	// Operation names the client method ("list tickets").
	Operation string

	// Kind classifies the failure.
	Kind Kind

	// StatusCode is the HTTP status, or 0 for KindNetwork.
	StatusCode int

	// Message is the backend's "message" field, possibly empty.
	Message string

	// Err is the underlying transport error for KindNetwork.
	Err error
}

func (e *Error) Error() string {
	switch {
	case e.Kind == KindNetwork:
		return fmt.Sprintf("tripswap: %s: network error: %v", e.Operation, e.Err)
	case e.Message != "":
		return fmt.Sprintf("tripswap: %s: %s (%d): %s", e.Operation, e.Kind, e.StatusCode, e.Message)
	default:
		return fmt.Sprintf("tripswap: %s: %s (%d)", e.Operation, e.Kind, e.StatusCode)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// UserMessage returns the text to show the user: "Network error" for
// network failures, otherwise the server's message, otherwise
// fallback.
func (e *Error) UserMessage(fallback string) string {
	if e.Kind == KindNetwork {
		return NetworkMessage
	}
	if e.Message != "" {
		return e.Message
	}
	return fallback
}

// UserMessage extracts a user-facing message from any error. Errors
// that are not an *Error yield fallback.
func UserMessage(err error, fallback string) string {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.UserMessage(fallback)
	}
	return fallback
}

// KindOf returns the Kind of err and whether err carries one.
func KindOf(err error) (Kind, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind, true
	}
	return 0, false
}

// IsUnauthorized reports whether err is a 401 from the backend.
func IsUnauthorized(err error) bool {
	kind, ok := KindOf(err)
	return ok && kind == KindUnauthorized
}

// IsConflict reports whether err is a 409 from the backend.
func IsConflict(err error) bool {
	kind, ok := KindOf(err)
	return ok && kind == KindConflict
}

// IsNetwork reports whether err is a request that never completed.
func IsNetwork(err error) bool {
	kind, ok := KindOf(err)
	return ok && kind == KindNetwork
}
