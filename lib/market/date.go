// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package market

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// dateLayout is the canonical wire and display form of a [Date].
const dateLayout = "2006-01-02"

// Date is a calendar day with no time-of-day or zone. The zero value
// means "no date".
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// ParseDate accepts either a bare "YYYY-MM-DD" day or a full RFC 3339
// timestamp. Timestamps are reduced to their UTC calendar day, which
// is how the backend serializes stored dates ("2024-03-20T00:00:00.000Z").
func ParseDate(text string) (Date, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Date{}, nil
	}

	if parsed, err := time.Parse(dateLayout, text); err == nil {
		return DateOf(parsed), nil
	}

	parsed, err := time.Parse(time.RFC3339Nano, text)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD)", text)
	}
	return DateOf(parsed.UTC()), nil
}

// MustParseDate is ParseDate for literals in tests and defaults.
// Panics on malformed input.
func MustParseDate(text string) Date {
	date, err := ParseDate(text)
	if err != nil {
		panic(err)
	}
	return date
}

// DateOf returns the calendar day of t in t's own location.
func DateOf(t time.Time) Date {
	year, month, day := t.Date()
	return Date{Year: year, Month: month, Day: day}
}

// IsZero reports whether the date is unset.
func (date Date) IsZero() bool {
	return date == Date{}
}

// String returns the date as YYYY-MM-DD, or "" for the zero date.
func (date Date) String() string {
	if date.IsZero() {
		return ""
	}
	return fmt.Sprintf("%04d-%02d-%02d", date.Year, date.Month, date.Day)
}

// Display returns a short human form such as "Mar 20, 2024".
func (date Date) Display() string {
	if date.IsZero() {
		return ""
	}
	return time.Date(date.Year, date.Month, date.Day, 0, 0, 0, 0, time.UTC).Format("Jan 2, 2006")
}

// MarshalJSON writes the date as "YYYY-MM-DD", or null when unset.
func (date Date) MarshalJSON() ([]byte, error) {
	if date.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(date.String())
}

// UnmarshalJSON accepts null, "", a bare day, or an RFC 3339 timestamp.
func (date *Date) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*date = Date{}
		return nil
	}
	var text string
	if err := json.Unmarshal(data, &text); err != nil {
		return fmt.Errorf("date: %w", err)
	}
	parsed, err := ParseDate(text)
	if err != nil {
		return err
	}
	*date = parsed
	return nil
}
