// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package marketui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/bureau-foundation/tripswap/lib/listing"
	"github.com/bureau-foundation/tripswap/lib/market"
	"github.com/bureau-foundation/tripswap/lib/tui"
)

// listingChromeLines is the number of lines above the ticket table:
// search summary, filter bar, quick search, and a blank line.
const listingChromeLines = 4

// ceilingStep is how much one key press moves the price ceiling.
var ceilingStep = decimal.NewFromInt(50)

// Filter cycles, in the order the keys step through them.
var (
	classCycle  = []market.Class{listing.All, market.ClassEconomy, market.ClassBusiness, market.ClassFirst}
	genderCycle = []market.Gender{listing.All, market.GenderMale, market.GenderFemale}
)

// listingScreen shows every ticket that passes the filter predicate
// and the search parameters, with a detail modal and quick search.
type listingScreen struct {
	env    *env
	state  *listing.View
	list   rowList
	search quickSearch
}

func newListingScreen(environment *env, search listing.SearchParams) *listingScreen {
	state := listing.NewViewWithSequencer(search, &environment.listingTags)
	state.SetFilters(listing.DefaultFilters().WithPriceCeiling(environment.priceCeiling))
	return &listingScreen{env: environment, state: state, search: newQuickSearch()}
}

func (screen *listingScreen) init() tea.Cmd {
	return screen.fetch(screen.state.Begin())
}

// fetch performs one tagged listing request.
func (screen *listingScreen) fetch(request listing.Request) tea.Cmd {
	environment := screen.env
	return func() tea.Msg {
		tickets, err := environment.client.ListTickets(environment.ctx)
		return ticketsLoadedMsg{tag: request.Tag, tickets: tickets, err: err}
	}
}

// visible is the filtered list narrowed by quick search.
func (screen *listingScreen) visible() []market.Ticket {
	return screen.search.narrow(screen.state.Visible())
}

func (screen *listingScreen) tableHeight() int {
	return max(screen.env.bodyHeight-listingChromeLines-1, 1)
}

func (screen *listingScreen) update(message tea.Msg) tea.Cmd {
	switch message := message.(type) {
	case ticketsLoadedMsg:
		return screen.resolve(message)
	case tea.KeyMsg:
		return screen.handleKey(message)
	}
	if screen.search.active {
		return screen.search.update(message)
	}
	return nil
}

func (screen *listingScreen) resolve(message ticketsLoadedMsg) tea.Cmd {
	switch screen.state.Resolve(message.tag, message.tickets, message.err) {
	case listing.OutcomeStale:
		screen.env.logger.Debug("dropped superseded listing response", "tag", message.tag)
	case listing.OutcomeRedirect:
		screen.env.logger.Info("session rejected, returning to login")
		return redirectToLogin(screen.env.clock, screen.env.redirectDelay)
	case listing.OutcomeFailed:
		screen.env.logger.Warn("listing fetch failed", "error", message.err)
	case listing.OutcomeReady:
		screen.list.clamp(len(screen.visible()), screen.tableHeight())
	}
	return nil
}

func (screen *listingScreen) handleKey(message tea.KeyMsg) tea.Cmd {
	keys := screen.env.keys

	if screen.search.active {
		switch message.Type {
		case tea.KeyEsc:
			screen.search.clear()
		case tea.KeyEnter:
			screen.search.confirm()
		default:
			cmd := screen.search.update(message)
			screen.list = rowList{}
			return cmd
		}
		screen.list.clamp(len(screen.visible()), screen.tableHeight())
		return nil
	}

	if _, open := screen.state.Selected(); open {
		if key.Matches(message, keys.Close) || key.Matches(message, keys.Open) {
			screen.state.ClearSelection()
		}
		return nil
	}

	visible := screen.visible()
	switch {
	case key.Matches(message, keys.Up):
		screen.list.move(-1, len(visible))
	case key.Matches(message, keys.Down):
		screen.list.move(1, len(visible))
	case key.Matches(message, keys.PageUp):
		screen.list.move(-screen.tableHeight(), len(visible))
	case key.Matches(message, keys.PageDown):
		screen.list.move(screen.tableHeight(), len(visible))
	case key.Matches(message, keys.Top):
		screen.list.move(-len(visible), len(visible))
	case key.Matches(message, keys.Bottom):
		screen.list.move(len(visible), len(visible))

	case key.Matches(message, keys.Open):
		if screen.state.Empty() {
			return screen.exploreAll()
		}
		if len(visible) > 0 {
			screen.state.Select(visible[screen.list.cursor].ID)
		}
	case key.Matches(message, keys.ExploreAll):
		if screen.state.Empty() {
			return screen.exploreAll()
		}
	case key.Matches(message, keys.Close):
		if screen.search.query() != "" {
			screen.search.clear()
		}
	case key.Matches(message, keys.QuickSearch):
		return screen.search.activate()
	case key.Matches(message, keys.Refresh):
		return screen.fetch(screen.state.Begin())

	case key.Matches(message, keys.CycleClass):
		filters := screen.state.Filters()
		filters.Class = nextInCycle(classCycle, filters.Class)
		screen.setFilters(filters)
	case key.Matches(message, keys.CycleGender):
		filters := screen.state.Filters()
		filters.Gender = nextInCycle(genderCycle, filters.Gender)
		screen.setFilters(filters)
	case key.Matches(message, keys.CycleTime):
		filters := screen.state.Filters()
		filters.TimeOfDay = nextInCycle(listing.TimesOfDay, filters.TimeOfDay)
		screen.setFilters(filters)
	case key.Matches(message, keys.RaiseCeiling):
		filters := screen.state.Filters()
		screen.setFilters(filters.WithPriceCeiling(filters.PriceCeiling.Add(ceilingStep)))
	case key.Matches(message, keys.LowerCeiling):
		filters := screen.state.Filters()
		screen.setFilters(filters.WithPriceCeiling(filters.PriceCeiling.Sub(ceilingStep)))
	case key.Matches(message, keys.ResetFilters):
		screen.setFilters(listing.DefaultFilters().WithPriceCeiling(screen.env.priceCeiling))
	}
	screen.list.clamp(len(screen.visible()), screen.tableHeight())
	return nil
}

// exploreAll is the empty state's reset: search parameters are
// cleared, filters are kept, and the listing is fetched again.
func (screen *listingScreen) exploreAll() tea.Cmd {
	screen.list = rowList{}
	return screen.fetch(screen.state.ResetSearch())
}

func (screen *listingScreen) setFilters(filters listing.Filters) {
	screen.state.SetFilters(filters)
	screen.list = rowList{}
}

// nextInCycle returns the value after current, wrapping around. An
// unknown current value yields the first element.
func nextInCycle[T comparable](cycle []T, current T) T {
	for index, value := range cycle {
		if value == current {
			return cycle[(index+1)%len(cycle)]
		}
	}
	return cycle[0]
}

func (screen *listingScreen) view(width, height int) string {
	theme := screen.env.theme
	faint := lipgloss.NewStyle().Foreground(theme.FaintText)

	lines := []string{
		screen.renderSearchSummary(),
		screen.renderFilterBar(),
	}
	if screen.search.active || screen.search.query() != "" {
		lines = append(lines, screen.search.view())
	} else {
		lines = append(lines, faint.Render("/ quick search"))
	}
	lines = append(lines, "")

	tableHeight := max(height-listingChromeLines, 1)
	lines = append(lines, screen.renderBody(width, tableHeight))
	output := strings.Join(lines, "\n")

	if ticket, open := screen.state.Selected(); open {
		output = tui.CenterOverlay(tui.FitHeight(output, height),
			renderDetailModal(theme, ticket, width), width, height)
	}
	return output
}

func (screen *listingScreen) renderSearchSummary() string {
	theme := screen.env.theme
	title := lipgloss.NewStyle().Bold(true).Foreground(theme.HeaderForeground)
	search := screen.state.Search()
	if search.IsZero() {
		return title.Render("All tickets")
	}
	var parts []string
	if search.From != "" {
		parts = append(parts, "from "+search.From)
	}
	if search.To != "" {
		parts = append(parts, "to "+search.To)
	}
	if !search.Date.IsZero() {
		parts = append(parts, "on "+search.Date.Display())
	}
	return title.Render("Tickets " + strings.Join(parts, " "))
}

func (screen *listingScreen) renderFilterBar() string {
	theme := screen.env.theme
	label := lipgloss.NewStyle().Foreground(theme.FaintText)
	value := lipgloss.NewStyle().Foreground(theme.AccentForeground)
	filters := screen.state.Filters()

	class := "All"
	if filters.Class != listing.All {
		class = filters.Class.Label()
	}
	gender := "All"
	if filters.Gender != listing.All {
		gender = filters.Gender.Label()
	}
	timeOfDay := "Any"
	if filters.TimeOfDay != listing.AnyTime {
		timeOfDay = strings.ToUpper(string(filters.TimeOfDay[:1])) + string(filters.TimeOfDay[1:])
	}

	bar := label.Render("Max price ") + value.Render("$"+filters.PriceCeiling.StringFixed(0)) +
		label.Render("  Class ") + value.Render(class) +
		label.Render("  Seller ") + value.Render(gender) +
		label.Render("  Time ") + value.Render(timeOfDay)
	if screen.state.Phase() == listing.Ready {
		bar += label.Render(fmt.Sprintf("  (%d of %d)", len(screen.visible()), screen.state.Total()))
	}
	return bar
}

func (screen *listingScreen) renderBody(width, height int) string {
	theme := screen.env.theme
	switch screen.state.Phase() {
	case listing.Idle, listing.Loading:
		return lipgloss.NewStyle().Foreground(theme.FaintText).Render("Loading tickets...")
	case listing.Redirecting:
		return lipgloss.NewStyle().Foreground(theme.WarningForeground).Render(screen.state.Message())
	case listing.Failed:
		return lipgloss.NewStyle().Foreground(theme.ErrorForeground).Render(screen.state.Message())
	}

	if screen.state.Empty() {
		message := lipgloss.NewStyle().Foreground(theme.NormalText).Render(listing.EmptyMessage)
		control := lipgloss.NewStyle().Bold(true).
			Foreground(theme.SelectedForeground).
			Background(theme.SelectedBackground).
			Render(" " + listing.ResetSearchLabel + " ")
		hint := lipgloss.NewStyle().Foreground(theme.HelpText).Render("Enter or x")
		return message + "\n\n" + control + "  " + hint
	}

	visible := screen.visible()
	if len(visible) == 0 {
		return lipgloss.NewStyle().Foreground(theme.FaintText).
			Render(fmt.Sprintf("No tickets match %q.", screen.search.query()))
	}
	return renderTicketTable(theme, visible, screen.list, width, height)
}

func (screen *listingScreen) help() string {
	if screen.search.active {
		return "type to narrow  Enter keep  Esc clear"
	}
	if _, open := screen.state.Selected(); open {
		return "Esc close"
	}
	return "↑↓ move  Enter details  / search  c class  s seller  t time  [ ] max price  0 reset  r refresh"
}

func (screen *listingScreen) capturesText() bool {
	return screen.search.active
}
