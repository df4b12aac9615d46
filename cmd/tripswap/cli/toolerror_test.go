// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/bureau-foundation/tripswap/lib/apiclient"
)

func TestFromAPI(t *testing.T) {
	tests := []struct {
		name     string
		err      *apiclient.Error
		category ErrorCategory
		message  string
	}{
		{"unauthorized", &apiclient.Error{Kind: apiclient.KindUnauthorized, StatusCode: 401, Message: "Unauthorized"}, CategoryUnauthorized, "Unauthorized"},
		{"conflict", &apiclient.Error{Kind: apiclient.KindConflict, StatusCode: 409, Message: "Ticket already exists"}, CategoryConflict, apiclient.DuplicateTicketMessage},
		{"network", &apiclient.Error{Kind: apiclient.KindNetwork, Err: errors.New("connection refused")}, CategoryTransient, apiclient.NetworkMessage},
		{"bad request", &apiclient.Error{Kind: apiclient.KindApplication, StatusCode: 400, Message: "seat is required"}, CategoryValidation, "seat is required"},
		{"forbidden", &apiclient.Error{Kind: apiclient.KindApplication, StatusCode: 403, Message: "Not your ticket"}, CategoryForbidden, "Not your ticket"},
		{"not found", &apiclient.Error{Kind: apiclient.KindApplication, StatusCode: 404}, CategoryNotFound, "fallback"},
		{"server", &apiclient.Error{Kind: apiclient.KindApplication, StatusCode: 500, Message: "boom"}, CategoryInternal, "boom"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			toolErr := FromAPI(test.err, "fallback")
			if toolErr.Category != test.category {
				t.Errorf("Category = %s, want %s", toolErr.Category, test.category)
			}
			if toolErr.Error() != test.message {
				t.Errorf("Error() = %q, want %q", toolErr.Error(), test.message)
			}
			var apiErr *apiclient.Error
			if !errors.As(toolErr, &apiErr) {
				t.Error("client error not reachable through the chain")
			}
		})
	}
}

func TestFromAPIPassesThroughOtherErrors(t *testing.T) {
	toolErr := FromAPI(errors.New("disk full"), "fallback")
	if toolErr.Category != CategoryInternal || toolErr.Error() != "disk full" {
		t.Errorf("got (%s, %q)", toolErr.Category, toolErr.Error())
	}
}

func TestToolErrorExitCodes(t *testing.T) {
	if code := Validation("x").ExitCode(); code != 2 {
		t.Errorf("validation exit = %d, want 2", code)
	}
	unauthorized := Unauthorized("not signed in")
	if code := unauthorized.ExitCode(); code != 3 {
		t.Errorf("unauthorized exit = %d, want 3", code)
	}
	if !strings.Contains(unauthorized.Hint, "tripswap login") {
		t.Errorf("Hint = %q", unauthorized.Hint)
	}
	if code := Internal("x").ExitCode(); code != 1 {
		t.Errorf("internal exit = %d, want 1", code)
	}
}

func TestWriteJSONNormalizesNilSlice(t *testing.T) {
	var buffer bytes.Buffer
	var tickets []string
	if err := WriteJSON(&buffer, tickets); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	if got := strings.TrimSpace(buffer.String()); got != "[]" {
		t.Errorf("WriteJSON(nil slice) = %q, want []", got)
	}
}

func TestNewLoggerFormat(t *testing.T) {
	var buffer bytes.Buffer
	newLogger(&buffer, false, "debug", "auto").Debug("hello", "k", "v")
	if !strings.HasPrefix(buffer.String(), "{") {
		t.Errorf("auto on a pipe should be JSON, got %q", buffer.String())
	}

	buffer.Reset()
	newLogger(&buffer, false, "warn", "text").Info("hidden")
	if buffer.Len() != 0 {
		t.Errorf("info logged at warn level: %q", buffer.String())
	}
	newLogger(&buffer, false, "warn", "text").Warn("shown")
	if !strings.Contains(buffer.String(), "msg=shown") {
		t.Errorf("text output = %q", buffer.String())
	}
}
