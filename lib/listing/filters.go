// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package listing

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/bureau-foundation/tripswap/lib/market"
)

// All is the selector value that disables the class, gender, and
// time-of-day filters.
const All = "all"

// MaxPriceCeiling is the upper bound of the price slider. The floor
// is fixed at zero.
var MaxPriceCeiling = decimal.NewFromInt(1000)

// TimeOfDay is the departure-window selector. It is carried through
// the filter state and shown in the UI but is not part of the
// predicate.
type TimeOfDay string

const (
	AnyTime   TimeOfDay = All
	Morning   TimeOfDay = "morning"
	Afternoon TimeOfDay = "afternoon"
	Evening   TimeOfDay = "evening"
)

// TimesOfDay lists the selector values in display order.
var TimesOfDay = []TimeOfDay{AnyTime, Morning, Afternoon, Evening}

// ParseTimeOfDay validates a selector value. "" is treated as all.
func ParseTimeOfDay(text string) (TimeOfDay, error) {
	value := TimeOfDay(strings.ToLower(strings.TrimSpace(text)))
	switch value {
	case "":
		return AnyTime, nil
	case AnyTime, Morning, Afternoon, Evening:
		return value, nil
	}
	return "", fmt.Errorf("unknown time of day %q (want all, morning, afternoon, or evening)", text)
}

// Filters is the listing view's filter panel. It lives only as long
// as the view and is never persisted.
type Filters struct {
	// PriceCeiling is the maximum price shown, in [0, MaxPriceCeiling].
	PriceCeiling decimal.Decimal

	// Class is a ticket class or All.
	Class market.Class

	// Gender is "male", "female", or All.
	Gender market.Gender

	// TimeOfDay is carried but never applied.
	TimeOfDay TimeOfDay
}

// DefaultFilters returns the filter state a listing view starts with:
// everything allowed up to the maximum price.
func DefaultFilters() Filters {
	return Filters{
		PriceCeiling: MaxPriceCeiling,
		Class:        All,
		Gender:       All,
		TimeOfDay:    AnyTime,
	}
}

// WithPriceCeiling returns a copy of filters with the ceiling clamped
// into [0, MaxPriceCeiling].
func (filters Filters) WithPriceCeiling(ceiling decimal.Decimal) Filters {
	switch {
	case ceiling.IsNegative():
		ceiling = decimal.Zero
	case ceiling.GreaterThan(MaxPriceCeiling):
		ceiling = MaxPriceCeiling
	}
	filters.PriceCeiling = ceiling
	return filters
}

// ParseClassFilter accepts a class name or "all".
func ParseClassFilter(text string) (market.Class, error) {
	if isAll(text) {
		return All, nil
	}
	return market.ParseClass(text)
}

// ParseGenderFilter accepts "male", "female", or "all".
func ParseGenderFilter(text string) (market.Gender, error) {
	if isAll(text) {
		return All, nil
	}
	gender, err := market.ParseGender(text)
	if err != nil {
		return "", err
	}
	if gender == market.GenderOther {
		return "", fmt.Errorf("gender filter %q is not offered (want male, female, or all)", text)
	}
	return gender, nil
}

func isAll(text string) bool {
	text = strings.TrimSpace(text)
	return text == "" || strings.EqualFold(text, All)
}

// SearchParams is what the home search form hands to the listing view.
// Empty fields do not constrain the result.
type SearchParams struct {
	// From matches as a case-insensitive substring of departure.
	From string

	// To matches as a case-insensitive substring of destination.
	To string

	// Date matches the ticket's calendar day exactly.
	Date market.Date
}

// IsZero reports whether no search field is set.
func (search SearchParams) IsZero() bool {
	return strings.TrimSpace(search.From) == "" && strings.TrimSpace(search.To) == "" && search.Date.IsZero()
}

// Matches reports whether ticket passes every filter and every
// present search field. TimeOfDay is ignored.
func Matches(ticket market.Ticket, filters Filters, search SearchParams) bool {
	if ticket.Price.IsNegative() || ticket.Price.GreaterThan(filters.PriceCeiling) {
		return false
	}
	if !isAll(string(filters.Class)) && ticket.Class != filters.Class {
		return false
	}
	if !isAll(string(filters.Gender)) && ticket.Gender != filters.Gender {
		return false
	}
	if from := strings.TrimSpace(search.From); from != "" && !containsFold(ticket.Departure, from) {
		return false
	}
	if to := strings.TrimSpace(search.To); to != "" && !containsFold(ticket.Destination, to) {
		return false
	}
	if !search.Date.IsZero() && ticket.Date != search.Date {
		return false
	}
	return true
}

// Apply returns the tickets that pass [Matches], in their original
// order. The input is not modified and the result is never nil.
func Apply(tickets []market.Ticket, filters Filters, search SearchParams) []market.Ticket {
	visible := make([]market.Ticket, 0, len(tickets))
	for _, ticket := range tickets {
		if Matches(ticket, filters, search) {
			visible = append(visible, ticket)
		}
	}
	return visible
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
