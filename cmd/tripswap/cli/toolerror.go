// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/bureau-foundation/tripswap/lib/apiclient"
)

// ErrorCategory classifies a command failure for scripts.
type ErrorCategory string

const (
	// CategoryValidation: bad input. Fix it and retry.
	CategoryValidation ErrorCategory = "validation"

	// CategoryUnauthorized: no session, or the backend rejected the
	// token. Run "tripswap login".
	CategoryUnauthorized ErrorCategory = "unauthorized"

	// CategoryNotFound: the referenced ticket does not exist.
	CategoryNotFound ErrorCategory = "not_found"

	// CategoryForbidden: the ticket belongs to someone else.
	CategoryForbidden ErrorCategory = "forbidden"

	// CategoryConflict: the listing duplicates an existing one.
	CategoryConflict ErrorCategory = "conflict"

	// CategoryTransient: the backend could not be reached. Retrying
	// may help.
	CategoryTransient ErrorCategory = "transient"

	// CategoryInternal: anything else.
	CategoryInternal ErrorCategory = "internal"
)

// ToolError is a categorized command error. Error() is the message
// alone; main prints the hint on its own line.
type ToolError struct {
	Category ErrorCategory
	Err      error

	// Hint is an optional next step ("run 'tripswap login'").
	Hint string
}

func (e *ToolError) Error() string { return e.Err.Error() }

func (e *ToolError) Unwrap() error { return e.Err }

// WithHint sets the hint and returns e.
func (e *ToolError) WithHint(hint string) *ToolError {
	e.Hint = hint
	return e
}

// ExitCode maps the category to the process exit status.
func (e *ToolError) ExitCode() int {
	switch e.Category {
	case CategoryValidation:
		return 2
	case CategoryUnauthorized:
		return 3
	case CategoryConflict:
		return 4
	case CategoryTransient:
		return 5
	default:
		return 1
	}
}

func newToolError(category ErrorCategory, format string, args ...any) *ToolError {
	return &ToolError{Category: category, Err: fmt.Errorf(format, args...)}
}

// Validation reports bad input.
func Validation(format string, args ...any) *ToolError {
	return newToolError(CategoryValidation, format, args...)
}

// Unauthorized reports a missing or rejected session.
func Unauthorized(format string, args ...any) *ToolError {
	return newToolError(CategoryUnauthorized, format, args...).WithHint("run 'tripswap login' and try again")
}

// NotFound reports a missing resource.
func NotFound(format string, args ...any) *ToolError {
	return newToolError(CategoryNotFound, format, args...)
}

// Forbidden reports an operation on someone else's resource.
func Forbidden(format string, args ...any) *ToolError {
	return newToolError(CategoryForbidden, format, args...)
}

// Conflict reports a duplicate.
func Conflict(format string, args ...any) *ToolError {
	return newToolError(CategoryConflict, format, args...)
}

// Transient reports a failure that may go away on retry.
func Transient(format string, args ...any) *ToolError {
	return newToolError(CategoryTransient, format, args...)
}

// Internal reports anything else.
func Internal(format string, args ...any) *ToolError {
	return newToolError(CategoryInternal, format, args...)
}

// FromAPI categorizes a marketplace client error. The message is what
// the backend said, or fallback when it said nothing; a conflict is
// always reported as a duplicate listing. The original error stays in
// the chain. Non-API errors become internal.
func FromAPI(err error, fallback string) *ToolError {
	var apiErr *apiclient.Error
	if !errors.As(err, &apiErr) {
		return &ToolError{Category: CategoryInternal, Err: err}
	}

	message := apiErr.UserMessage(fallback)
	if apiErr.Kind == apiclient.KindConflict {
		message = apiclient.DuplicateTicketMessage
	}
	wrap := func(category ErrorCategory) *ToolError {
		return &ToolError{Category: category, Err: &messageError{message: message, err: err}}
	}
	switch apiErr.Kind {
	case apiclient.KindUnauthorized:
		return wrap(CategoryUnauthorized).WithHint("run 'tripswap login' and try again")
	case apiclient.KindConflict:
		return wrap(CategoryConflict)
	case apiclient.KindNetwork:
		return wrap(CategoryTransient).WithHint("check api.base_url and that the backend is running")
	}
	switch apiErr.StatusCode {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return wrap(CategoryValidation)
	case http.StatusForbidden:
		return wrap(CategoryForbidden)
	case http.StatusNotFound:
		return wrap(CategoryNotFound)
	case http.StatusTooManyRequests, http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return wrap(CategoryTransient)
	}
	return wrap(CategoryInternal)
}

// messageError shows the user-facing message while keeping the client
// error reachable through errors.As.
type messageError struct {
	message string
	err     error
}

func (e *messageError) Error() string { return e.message }

func (e *messageError) Unwrap() error { return e.err }
