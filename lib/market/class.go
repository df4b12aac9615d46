// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package market

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Class is the travel class of a ticket. Exactly three values are
// valid; see [Classes].
type Class string

const (
	ClassEconomy  Class = "economy"
	ClassBusiness Class = "business"
	ClassFirst    Class = "first"
)

// Classes lists every valid class in display order.
var Classes = []Class{ClassEconomy, ClassBusiness, ClassFirst}

// ParseClass normalizes and validates a class name. Matching is
// case-insensitive and ignores surrounding whitespace.
func ParseClass(text string) (Class, error) {
	class := Class(strings.ToLower(strings.TrimSpace(text)))
	if !class.Valid() {
		return "", fmt.Errorf("unknown class %q (want economy, business, or first)", text)
	}
	return class, nil
}

// Valid reports whether the class is one of the three known values.
func (class Class) Valid() bool {
	switch class {
	case ClassEconomy, ClassBusiness, ClassFirst:
		return true
	}
	return false
}

// Label returns the human-readable class name.
func (class Class) Label() string {
	switch class {
	case ClassEconomy:
		return "Economy"
	case ClassBusiness:
		return "Business"
	case ClassFirst:
		return "First Class"
	default:
		return string(class)
	}
}

// UnmarshalJSON lowercases the wire value. Some listing revisions
// capitalize the class ("Business"); validation happens separately in
// [TicketInput.Validate] so that one malformed record does not fail
// decoding of a whole collection.
func (class *Class) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err != nil {
		return fmt.Errorf("class: %w", err)
	}
	*class = Class(strings.ToLower(strings.TrimSpace(text)))
	return nil
}

// Gender is the seller's gender as recorded on the listing.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// Genders lists every gender value the signup and profile forms offer.
var Genders = []Gender{GenderMale, GenderFemale, GenderOther}

// ParseGender normalizes and validates a gender value.
func ParseGender(text string) (Gender, error) {
	gender := Gender(strings.ToLower(strings.TrimSpace(text)))
	switch gender {
	case GenderMale, GenderFemale, GenderOther:
		return gender, nil
	}
	return "", fmt.Errorf("unknown gender %q (want male, female, or other)", text)
}

// Label returns the capitalized gender name for display.
func (gender Gender) Label() string {
	if gender == "" {
		return ""
	}
	return strings.ToUpper(string(gender[:1])) + string(gender[1:])
}

// UnmarshalJSON lowercases the wire value.
func (gender *Gender) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err != nil {
		return fmt.Errorf("gender: %w", err)
	}
	*gender = Gender(strings.ToLower(strings.TrimSpace(text)))
	return nil
}
