// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package market

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		input string
		want  Date
	}{
		{"2024-03-20", Date{2024, time.March, 20}},
		{" 2024-03-20 ", Date{2024, time.March, 20}},
		{"2024-03-20T00:00:00.000Z", Date{2024, time.March, 20}},
		// Reduced to the UTC day, not the local one.
		{"2024-03-20T23:30:00-05:00", Date{2024, time.March, 21}},
		{"", Date{}},
	}
	for _, test := range tests {
		got, err := ParseDate(test.input)
		if err != nil {
			t.Errorf("ParseDate(%q): %v", test.input, err)
			continue
		}
		if got != test.want {
			t.Errorf("ParseDate(%q) = %v, want %v", test.input, got, test.want)
		}
	}

	if _, err := ParseDate("20/03/2024"); err == nil {
		t.Error("ParseDate(20/03/2024) succeeded, want error")
	}
}

func TestDateJSON(t *testing.T) {
	date := Date{2025, time.December, 1}
	data, err := json.Marshal(date)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(data) != `"2025-12-01"` {
		t.Errorf("Marshal = %s, want \"2025-12-01\"", data)
	}

	var decoded Date
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if decoded != date {
		t.Errorf("round trip = %v, want %v", decoded, date)
	}

	if err := json.Unmarshal([]byte("null"), &decoded); err != nil || !decoded.IsZero() {
		t.Errorf("Unmarshal(null) = %v, %v; want zero date", decoded, err)
	}
}

func TestParseClass(t *testing.T) {
	for _, input := range []string{"economy", "Business", " FIRST "} {
		if _, err := ParseClass(input); err != nil {
			t.Errorf("ParseClass(%q): %v", input, err)
		}
	}
	if _, err := ParseClass("premium"); err == nil {
		t.Error("ParseClass(premium) succeeded, want error")
	}
	if ClassFirst.Label() != "First Class" {
		t.Errorf("ClassFirst.Label() = %q", ClassFirst.Label())
	}
}
