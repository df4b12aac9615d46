// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package market

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TicketInput is the create and update payload: every field of a
// listing except the server-assigned id.
type TicketInput struct {
	// Seller contact.
	Name   string `json:"name"`
	Email  string `json:"email"`
	Phone  string `json:"phone"`
	Gender Gender `json:"gender"`
	Age    Age    `json:"age"`

	// Trip.
	Departure   string `json:"departure"`
	Destination string `json:"destination"`
	Date        Date   `json:"date"`
	// Time is the local departure time as "HH:MM". It is kept as the
	// backend's string; [TicketInput.TimeOfDay] parses it.
	Time  string `json:"time"`
	Seat  string `json:"seat"`
	Class Class  `json:"class"`

	// Price is transported as a decimal string and compared as a number.
	Price decimal.Decimal `json:"price"`

	// Media and contact links. Any of these may be empty.
	Screenshot string `json:"ticketScreenshot"`
	WhatsApp   string `json:"whatappno"`
	Instagram  string `json:"instalink"`
	Facebook   string `json:"facebooklink"`
}

// Ticket is one listing as returned by the backend. The client holds a
// read-only copy for the lifetime of a view.
type Ticket struct {
	ID string `json:"_id"`
	TicketInput
}

// Input returns the editable portion of the ticket.
func (ticket Ticket) Input() TicketInput {
	return ticket.TicketInput
}

// Route returns "departure → destination" for list rows and headers.
func (ticket Ticket) Route() string {
	return ticket.Departure + " → " + ticket.Destination
}

// UnmarshalJSON decodes a listing, accepting "id" when "_id" is absent
// and the legacy "classType" field when "class" is absent. An empty or
// null price reads as zero.
func (ticket *Ticket) UnmarshalJSON(data []byte) error {
	var wire struct {
		ID        string          `json:"_id"`
		AltID     string          `json:"id"`
		ClassType *Class          `json:"classType"`
		Price     json.RawMessage `json:"price"`
		TicketInput
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	price, err := decodePrice(wire.Price)
	if err != nil {
		return err
	}
	ticket.ID = wire.ID
	if ticket.ID == "" {
		ticket.ID = wire.AltID
	}
	ticket.TicketInput = wire.TicketInput
	ticket.Price = price
	if ticket.Class == "" && wire.ClassType != nil {
		ticket.Class = *wire.ClassType
	}
	return nil
}

// decodePrice accepts a JSON number, a numeric string, "", or null.
// Listings created by older clients carry "" for a price left blank.
func decodePrice(raw json.RawMessage) (decimal.Decimal, error) {
	text := strings.TrimSpace(string(raw))
	if text == "" || text == "null" {
		return decimal.Zero, nil
	}
	if strings.HasPrefix(text, `"`) {
		if err := json.Unmarshal(raw, &text); err != nil {
			return decimal.Zero, fmt.Errorf("price: %w", err)
		}
		text = strings.TrimSpace(text)
		if text == "" {
			return decimal.Zero, nil
		}
	}
	price, err := decimal.NewFromString(text)
	if err != nil {
		return decimal.Zero, fmt.Errorf("price: invalid value %q", text)
	}
	return price, nil
}

// TimeOfDay parses [TicketInput.Time] as "HH:MM" (24-hour). The
// returned time carries only hour and minute.
func (input TicketInput) TimeOfDay() (time.Time, error) {
	parsed, err := time.Parse("15:04", strings.TrimSpace(input.Time))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q (want HH:MM)", input.Time)
	}
	return parsed, nil
}

// Validate checks an outgoing payload before it is sent. Every problem
// is reported, joined into one error.
func (input TicketInput) Validate() error {
	var problems []error

	required := []struct {
		field string
		value string
	}{
		{"name", input.Name},
		{"email", input.Email},
		{"phone", input.Phone},
		{"departure", input.Departure},
		{"destination", input.Destination},
		{"time", input.Time},
		{"seat", input.Seat},
	}
	for _, entry := range required {
		if strings.TrimSpace(entry.value) == "" {
			problems = append(problems, fmt.Errorf("%s is required", entry.field))
		}
	}

	if input.Date.IsZero() {
		problems = append(problems, errors.New("date is required"))
	}
	if strings.TrimSpace(input.Time) != "" {
		if _, err := input.TimeOfDay(); err != nil {
			problems = append(problems, err)
		}
	}
	if !input.Class.Valid() {
		problems = append(problems, fmt.Errorf("class %q is not one of economy, business, first", input.Class))
	}
	if input.Price.IsNegative() {
		problems = append(problems, fmt.Errorf("price %s is negative", input.Price))
	}
	if input.Age < 0 {
		problems = append(problems, fmt.Errorf("age %d is negative", input.Age))
	}

	return errors.Join(problems...)
}

// Age is the seller's age in years. The backend has stored it both as
// a number and as a numeric string; both decode.
type Age int

// UnmarshalJSON accepts a JSON number, a numeric string, "", or null.
func (age *Age) UnmarshalJSON(data []byte) error {
	text := string(data)
	if text == "null" {
		*age = 0
		return nil
	}
	if strings.HasPrefix(text, `"`) {
		if err := json.Unmarshal(data, &text); err != nil {
			return fmt.Errorf("age: %w", err)
		}
		text = strings.TrimSpace(text)
		if text == "" {
			*age = 0
			return nil
		}
	}
	value, err := strconv.Atoi(text)
	if err != nil {
		return fmt.Errorf("age: invalid value %q", text)
	}
	*age = Age(value)
	return nil
}

// String returns the age in decimal, or "" when unset.
func (age Age) String() string {
	if age == 0 {
		return ""
	}
	return strconv.Itoa(int(age))
}
