// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package marketui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/bureau-foundation/tripswap/lib/clock"
	"github.com/bureau-foundation/tripswap/lib/listing"
	"github.com/bureau-foundation/tripswap/lib/market"
)

// route names a screen.
type route int

const (
	routeLogin route = iota
	routeSignup
	routeHome
	routeTickets
	routeMyTickets
	routeCreate
	routeEdit
	routeProfile
	routeProfileEdit
)

// String returns the route name used in logs and tests.
func (r route) String() string {
	switch r {
	case routeLogin:
		return "login"
	case routeSignup:
		return "signup"
	case routeHome:
		return "home"
	case routeTickets:
		return "tickets"
	case routeMyTickets:
		return "my-tickets"
	case routeCreate:
		return "create-ticket"
	case routeEdit:
		return "edit-ticket"
	case routeProfile:
		return "profile"
	case routeProfileEdit:
		return "edit-profile"
	default:
		return "unknown"
	}
}

// navigateMsg asks the router to show another screen.
type navigateMsg struct {
	to route

	// search is the listing view's search parameters (routeTickets).
	search listing.SearchParams

	// ticket is the record being edited (routeEdit).
	ticket market.Ticket

	// profile pre-fills the edit form (routeProfileEdit).
	profile market.Profile

	// resume returns to the retained my-tickets screen instead of
	// mounting a new one (routeMyTickets).
	resume bool

	// notice is shown in the status bar after the switch.
	notice string
}

func navigate(message navigateMsg) tea.Cmd {
	return func() tea.Msg { return message }
}

// redirectToLogin waits delay on clk, then navigates to login. The
// wait runs in the command goroutine; the event loop keeps drawing
// the "Redirecting to login..." state meanwhile.
func redirectToLogin(clk clock.Clock, delay time.Duration) tea.Cmd {
	return func() tea.Msg {
		<-clk.After(delay)
		return navigateMsg{to: routeLogin}
	}
}

// noticeMsg shows a transient message in the status bar.
type noticeMsg struct {
	text    string
	isError bool
}

// noticeFadeMsg clears the notice set at the given generation.
type noticeFadeMsg struct {
	generation int
}

// noticeFadeDelay is how long notices stay in the status bar.
const noticeFadeDelay = 5 * time.Second

// Results of API calls. Every command reports exactly one of these.
type (
	ticketsLoadedMsg struct {
		tag     uint64
		tickets []market.Ticket
		err     error
	}

	myTicketsLoadedMsg struct {
		tag     uint64
		tickets []market.Ticket
		err     error
	}

	loginResultMsg struct {
		email string
		token string
		err   error
	}

	signupResultMsg struct {
		err error
	}

	logoutResultMsg struct {
		err error
	}

	profileLoadedMsg struct {
		profile market.Profile
		err     error
	}

	profileSavedMsg struct {
		profile market.Profile
		err     error
	}

	ticketSavedMsg struct {
		ticket market.Ticket
		err    error
	}

	ticketDeletedMsg struct {
		id  string
		err error
	}
)
