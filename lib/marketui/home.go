// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package marketui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bureau-foundation/tripswap/lib/clock"
	"github.com/bureau-foundation/tripswap/lib/listing"
	"github.com/bureau-foundation/tripswap/lib/market"
)

// homeScreen is the search form. Submitting it opens the listing view
// with the entered search parameters.
type homeScreen struct {
	env  *env
	form *form

	from, to, date int
}

func newHomeScreen(environment *env) *homeScreen {
	screen := &homeScreen{env: environment, form: newForm("Find a ticket", environment.keys, environment.theme)}
	today := market.DateOf(clock.Today(environment.clock))
	screen.from = screen.form.addText("From", "", "departure city")
	screen.to = screen.form.addText("To", "", "destination city")
	screen.date = screen.form.addText("Date", today.String(), "YYYY-MM-DD, blank for any day")
	return screen
}

func (screen *homeScreen) init() tea.Cmd {
	return screen.form.start()
}

func (screen *homeScreen) update(message tea.Msg) tea.Cmd {
	submit, cmd := screen.form.update(message)
	if !submit {
		return cmd
	}
	search, err := screen.search()
	if err != nil {
		screen.form.err = err.Error()
		return nil
	}
	screen.form.err = ""
	return navigate(navigateMsg{to: routeTickets, search: search})
}

// search builds the listing search from the form.
func (screen *homeScreen) search() (listing.SearchParams, error) {
	date, err := market.ParseDate(screen.form.value(screen.date))
	if err != nil {
		return listing.SearchParams{}, fmt.Errorf("date: %w", err)
	}
	return listing.SearchParams{
		From: screen.form.value(screen.from),
		To:   screen.form.value(screen.to),
		Date: date,
	}, nil
}

func (screen *homeScreen) view(width, height int) string {
	theme := screen.env.theme
	tagline := lipgloss.NewStyle().Foreground(theme.FaintText).
		Render("Buy and sell travel tickets you can no longer use.")
	hints := lipgloss.NewStyle().Foreground(theme.HelpText).Render(strings.Join([]string{
		"F2 browse every listing",
		"F4 sell a ticket",
	}, "   "))
	block := lipgloss.JoinVertical(lipgloss.Left, tagline, "", screen.form.view(), "", hints)
	return centered(block, width, height)
}

func (screen *homeScreen) help() string {
	return "Tab next  Enter search"
}

func (screen *homeScreen) capturesText() bool { return true }
