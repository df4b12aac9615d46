// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package marketui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"github.com/bureau-foundation/tripswap/lib/apiclient"
	"github.com/bureau-foundation/tripswap/lib/clock"
	"github.com/bureau-foundation/tripswap/lib/listing"
	"github.com/bureau-foundation/tripswap/lib/market"
)

// ticketFields are the form indexes of every ticket field.
type ticketFields struct {
	name, email, phone, gender, age                 int
	departure, destination, date, time, seat, class int
	price                                           int
	screenshot, whatsApp, instagram, facebook       int
}

// ticketFormScreen creates a ticket, or edits one when editing is set.
type ticketFormScreen struct {
	env    *env
	form   *form
	fields ticketFields

	// editing is the id of the ticket being edited, or "" to create.
	editing string

	// parent is the my-tickets screen that opened an edit. It is
	// patched on success and marked stale on conflict.
	parent *myTicketsScreen
}

func newCreateScreen(environment *env) *ticketFormScreen {
	input := environment.defaults
	if input.Email == "" {
		input.Email = environment.client.Session().Email()
	}
	if input.Date.IsZero() {
		input.Date = market.DateOf(clock.Today(environment.clock))
	}
	return newTicketFormScreen(environment, "Sell a ticket", input)
}

func newEditScreen(environment *env, ticket market.Ticket, parent *myTicketsScreen) *ticketFormScreen {
	screen := newTicketFormScreen(environment, "Edit "+ticket.Route(), ticket.Input())
	screen.editing = ticket.ID
	screen.parent = parent
	return screen
}

func newTicketFormScreen(environment *env, title string, input market.TicketInput) *ticketFormScreen {
	screen := &ticketFormScreen{env: environment, form: newForm(title, environment.keys, environment.theme)}
	f := screen.form

	priceText := ""
	if !input.Price.IsZero() {
		priceText = input.Price.String()
	}
	class := input.Class
	if class == "" {
		class = market.ClassEconomy
	}
	gender := input.Gender
	if gender == "" {
		gender = market.GenderMale
	}

	screen.fields = ticketFields{
		name:        f.addText("Name", input.Name, "seller name"),
		email:       f.addText("Email", input.Email, "contact email"),
		phone:       f.addText("Phone", input.Phone, "contact phone"),
		gender:      f.addChoice("Gender", genderOptions(), genderLabels(), string(gender)),
		age:         f.addText("Age", input.Age.String(), "optional"),
		departure:   f.addText("From", input.Departure, "departure city"),
		destination: f.addText("To", input.Destination, "destination city"),
		date:        f.addText("Date", dateText(input.Date), "YYYY-MM-DD"),
		time:        f.addText("Time", input.Time, "HH:MM"),
		seat:        f.addText("Seat", input.Seat, "seat or berth"),
		class:       f.addChoice("Class", classOptions(), classLabels(), string(class)),
		price:       f.addText("Price", priceText, "asking price"),
		screenshot:  f.addText("Screenshot", input.Screenshot, "image URL"),
		whatsApp:    f.addText("WhatsApp", input.WhatsApp, "number"),
		instagram:   f.addText("Instagram", input.Instagram, "profile URL"),
		facebook:    f.addText("Facebook", input.Facebook, "profile URL"),
	}
	return screen
}

func dateText(date market.Date) string {
	if date.IsZero() {
		return ""
	}
	return date.String()
}

func (screen *ticketFormScreen) init() tea.Cmd {
	return screen.form.start()
}

// input reads the form into a payload. Parse problems for the typed
// fields (date, age, price) are joined with the rest of validation.
func (screen *ticketFormScreen) input() (market.TicketInput, error) {
	f, fields := screen.form, screen.fields
	input := market.TicketInput{
		Name:        f.value(fields.name),
		Email:       f.value(fields.email),
		Phone:       f.value(fields.phone),
		Gender:      market.Gender(f.value(fields.gender)),
		Departure:   f.value(fields.departure),
		Destination: f.value(fields.destination),
		Time:        f.value(fields.time),
		Seat:        f.value(fields.seat),
		Class:       market.Class(f.value(fields.class)),
		Screenshot:  f.value(fields.screenshot),
		WhatsApp:    f.value(fields.whatsApp),
		Instagram:   f.value(fields.instagram),
		Facebook:    f.value(fields.facebook),
	}

	var problems []error
	if date, err := market.ParseDate(f.value(fields.date)); err != nil {
		problems = append(problems, fmt.Errorf("date: %w", err))
	} else {
		input.Date = date
	}
	if text := f.value(fields.age); text != "" {
		age, err := strconv.Atoi(text)
		if err != nil {
			problems = append(problems, fmt.Errorf("age %q is not a number", text))
		} else {
			input.Age = market.Age(age)
		}
	}
	if text := strings.TrimPrefix(f.value(fields.price), "$"); text == "" {
		problems = append(problems, errors.New("price is required"))
	} else if price, err := decimal.NewFromString(text); err != nil {
		problems = append(problems, fmt.Errorf("price %q is not a number", text))
	} else {
		input.Price = price
	}

	if err := input.Validate(); err != nil {
		problems = append(problems, err)
	}
	return input, errors.Join(problems...)
}

func (screen *ticketFormScreen) update(message tea.Msg) tea.Cmd {
	switch message := message.(type) {
	case ticketSavedMsg:
		return screen.saved(message)
	case tea.KeyMsg:
		if key.Matches(message, screen.env.keys.Close) && !screen.form.busy {
			return screen.leave("")
		}
	}

	submit, cmd := screen.form.update(message)
	if !submit {
		return cmd
	}
	return screen.submit()
}

func (screen *ticketFormScreen) submit() tea.Cmd {
	input, err := screen.input()
	if err != nil {
		screen.form.err = err.Error()
		return nil
	}
	screen.form.err = ""
	screen.form.busy = true

	environment, id := screen.env, screen.editing
	return func() tea.Msg {
		var ticket market.Ticket
		var err error
		if id == "" {
			ticket, err = environment.client.CreateTicket(environment.ctx, input)
		} else {
			ticket, err = environment.client.UpdateTicket(environment.ctx, id, input)
		}
		return ticketSavedMsg{ticket: ticket, err: err}
	}
}

// saved applies a create or update result. Every failure keeps the
// form populated.
func (screen *ticketFormScreen) saved(message ticketSavedMsg) tea.Cmd {
	screen.form.busy = false
	err := message.err
	switch {
	case err == nil:
		screen.form.err = ""
		if screen.editing == "" {
			screen.env.logger.Info("ticket listed", "ticket", message.ticket.ID)
			return navigate(navigateMsg{to: routeTickets, notice: "Ticket listed."})
		}
		if screen.parent != nil {
			screen.parent.state.ApplyUpdate(message.ticket)
		}
		return screen.leave("Ticket updated.")

	case apiclient.IsConflict(err):
		screen.form.err = apiclient.DuplicateTicketMessage
		if screen.editing != "" && screen.parent != nil {
			screen.parent.state.Collection().Invalidate()
		}
		return nil

	case apiclient.IsUnauthorized(err):
		screen.form.err = listing.RedirectingMessage
		return redirectToLogin(screen.env.clock, screen.env.redirectDelay)

	default:
		fallback := apiclient.CreateFailedMessage
		if screen.editing != "" {
			fallback = apiclient.UpdateFailedMessage
		}
		screen.form.err = apiclient.UserMessage(err, fallback)
		screen.env.logger.Warn("saving ticket failed", "error", err)
		return nil
	}
}

// leave returns to where the form was opened from.
func (screen *ticketFormScreen) leave(notice string) tea.Cmd {
	if screen.editing != "" {
		return navigate(navigateMsg{to: routeMyTickets, resume: true, notice: notice})
	}
	return navigate(navigateMsg{to: routeHome, notice: notice})
}

func (screen *ticketFormScreen) view(width, height int) string {
	return centered(screen.form.view(), width, height)
}

func (screen *ticketFormScreen) help() string {
	return "Tab next  ←→ choose  C-s save  Esc cancel"
}

func (screen *ticketFormScreen) capturesText() bool { return true }
