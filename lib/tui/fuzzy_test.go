// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import "testing"

func TestFuzzyMatch(t *testing.T) {
	slab := NewSlab()
	tests := []struct {
		text    string
		query   string
		matched bool
	}{
		{"Mumbai Delhi", "mdl", true},
		{"Mumbai Delhi", "DEL", true},
		{"Mumbai Delhi", "goa", false},
		{"anything", "", true},
	}
	for _, test := range tests {
		result := FuzzyMatch(test.text, FuzzyPattern(test.query), slab)
		if result.Matched != test.matched {
			t.Errorf("FuzzyMatch(%q, %q).Matched = %v, want %v", test.text, test.query, result.Matched, test.matched)
		}
	}
}

func TestFuzzyMatchPositions(t *testing.T) {
	result := FuzzyMatch("Pune Goa", FuzzyPattern("goa"), NewSlab())
	if !result.Matched {
		t.Fatal("expected match")
	}
	if len(result.Positions) != 3 {
		t.Fatalf("positions = %v, want 3 entries", result.Positions)
	}
	for _, position := range result.Positions {
		if position < 5 {
			t.Errorf("position %d falls outside \"Goa\"", position)
		}
	}
}
