// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"errors"
	"fmt"
	"testing"

	"github.com/bureau-foundation/tripswap/cmd/tripswap/cli"
)

func TestReportExitCodes(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"plain error", errors.New("boom"), 1},
		{"silent exit", &cli.ExitError{Code: 7}, 7},
		{"validation", cli.Validation("bad flag"), 2},
		{"unauthorized", cli.Unauthorized("not signed in"), 3},
		{"wrapped conflict", fmt.Errorf("create: %w", cli.Conflict("duplicate")), 4},
		{"transient", cli.Transient("offline"), 5},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := report(test.err); got != test.want {
				t.Errorf("report(%v) = %d, want %d", test.err, got, test.want)
			}
		})
	}
}
