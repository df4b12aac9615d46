// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package marketui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/junegunn/fzf/src/util"

	"github.com/bureau-foundation/tripswap/lib/market"
	"github.com/bureau-foundation/tripswap/lib/tui"
)

// quickSearch fuzzy-narrows the rows the filter predicate already
// passed. It never widens the set and never reorders it: backend order
// is kept, and the fuzzy score only decides membership.
type quickSearch struct {
	input  textinput.Model
	active bool
	slab   *util.Slab
}

func newQuickSearch() quickSearch {
	input := textinput.New()
	input.Prompt = "/ "
	input.Placeholder = "route, seller, seat..."
	input.Width = 30
	return quickSearch{input: input, slab: tui.NewSlab()}
}

// activate gives the search input keyboard focus.
func (search *quickSearch) activate() tea.Cmd {
	search.active = true
	return search.input.Focus()
}

// confirm keeps the query and returns focus to the list.
func (search *quickSearch) confirm() {
	search.active = false
	search.input.Blur()
}

// clear drops the query and returns focus to the list.
func (search *quickSearch) clear() {
	search.input.SetValue("")
	search.confirm()
}

func (search *quickSearch) query() string {
	return strings.TrimSpace(search.input.Value())
}

func (search *quickSearch) update(message tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	search.input, cmd = search.input.Update(message)
	return cmd
}

// narrow returns the tickets whose search text fuzzy-matches the
// query, in their original order. An empty query returns tickets
// unchanged.
func (search *quickSearch) narrow(tickets []market.Ticket) []market.Ticket {
	pattern := tui.FuzzyPattern(search.query())
	if len(pattern) == 0 {
		return tickets
	}
	matched := make([]market.Ticket, 0, len(tickets))
	for _, ticket := range tickets {
		if tui.FuzzyMatch(searchText(ticket), pattern, search.slab).Matched {
			matched = append(matched, ticket)
		}
	}
	return matched
}

// searchText is the haystack quick search matches against.
func searchText(ticket market.Ticket) string {
	return strings.Join([]string{
		ticket.Departure,
		ticket.Destination,
		ticket.Name,
		ticket.Seat,
		string(ticket.Class),
		ticket.Date.String(),
	}, " ")
}

func (search *quickSearch) view() string {
	return search.input.View()
}
