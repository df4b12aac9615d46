// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package listing

import (
	"github.com/bureau-foundation/tripswap/lib/apiclient"
	"github.com/bureau-foundation/tripswap/lib/market"
)

// Phase is where a [View] is in its fetch lifecycle.
type Phase int

const (
	// Idle: no fetch has been started.
	Idle Phase = iota
	// Loading: a fetch is in flight.
	Loading
	// Ready: the last fetch succeeded. The visible list may be empty.
	Ready
	// Failed: the last fetch failed; Message says why.
	Failed
	// Redirecting: the backend rejected the token. The owner navigates
	// to login after the redirect delay.
	Redirecting
)

// String returns the phase name.
func (phase Phase) String() string {
	switch phase {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	case Redirecting:
		return "redirecting"
	default:
		return "unknown"
	}
}

// User-visible status text.
const (
	RedirectingMessage = "Redirecting to login..."
	EmptyMessage       = "No tickets found for your search."
	ResetSearchLabel   = "Explore All Tickets"
)

// Request is a fetch the owner must perform, identified by its tag.
type Request struct {
	Tag    uint64
	Search SearchParams
}

// Outcome tells the owner what Resolve did.
type Outcome int

const (
	// OutcomeStale: the response belonged to a superseded request and
	// was ignored.
	OutcomeStale Outcome = iota
	// OutcomeReady: the collection was replaced.
	OutcomeReady
	// OutcomeFailed: the fetch failed; the list is empty.
	OutcomeFailed
	// OutcomeRedirect: the token was rejected; schedule the redirect.
	OutcomeRedirect
)

// View is the listing screen's state, independent of how it is drawn.
// The owner calls Begin when the view mounts or its search changes,
// performs the returned Request, and feeds the result to Resolve.
//
// A View is confined to the owner's event loop.
type View struct {
	sequencer  *Sequencer
	collection Collection

	filters Filters
	search  SearchParams

	phase    Phase
	message  string
	selected string
}

// NewView returns an idle view with the given search and default
// filters.
func NewView(search SearchParams) *View {
	return NewViewWithSequencer(search, new(Sequencer))
}

// NewViewWithSequencer returns a view that tags its fetches from
// sequencer. A screen that builds a new view on every mount passes the
// same sequencer each time, so a response to an earlier mount is stale
// for every later one.
func NewViewWithSequencer(search SearchParams, sequencer *Sequencer) *View {
	return &View{sequencer: sequencer, filters: DefaultFilters(), search: search}
}

// Begin starts a fetch for the current search. Any earlier fetch still
// in flight is superseded.
func (view *View) Begin() Request {
	view.phase = Loading
	view.message = ""
	return Request{Tag: view.sequencer.Next(), Search: view.search}
}

// Resolve applies the result of the fetch tagged tag. Responses to
// superseded fetches are dropped without touching any state.
func (view *View) Resolve(tag uint64, tickets []market.Ticket, err error) Outcome {
	if !view.sequencer.IsLatest(tag) {
		return OutcomeStale
	}

	if err == nil {
		view.collection.Replace(tickets)
		view.phase = Ready
		view.message = ""
		view.dropMissingSelection()
		return OutcomeReady
	}

	view.collection.Clear()
	view.selected = ""
	if apiclient.IsUnauthorized(err) {
		view.phase = Redirecting
		view.message = RedirectingMessage
		return OutcomeRedirect
	}
	view.phase = Failed
	view.message = apiclient.UserMessage(err, apiclient.FetchFailedMessage)
	return OutcomeFailed
}

// Phase returns the current phase.
func (view *View) Phase() Phase {
	return view.phase
}

// Message returns the error or redirect text for Failed and
// Redirecting, and "" otherwise.
func (view *View) Message() string {
	return view.message
}

// Filters returns the current filter state.
func (view *View) Filters() Filters {
	return view.filters
}

// SetFilters replaces the filter state. Filtering is local; no fetch
// is needed.
func (view *View) SetFilters(filters Filters) {
	view.filters = filters
}

// Search returns the current search parameters.
func (view *View) Search() SearchParams {
	return view.search
}

// SetSearch changes the search (a navigation change) and begins a new
// fetch.
func (view *View) SetSearch(search SearchParams) Request {
	view.search = search
	return view.Begin()
}

// ResetSearch clears the search parameters, keeps the filters, and
// begins a new fetch. This is the empty-state "Explore All Tickets"
// action.
func (view *View) ResetSearch() Request {
	return view.SetSearch(SearchParams{})
}

// Visible returns the tickets that pass the current filters and
// search, in backend order.
func (view *View) Visible() []market.Ticket {
	return Apply(view.collection.tickets, view.filters, view.search)
}

// Total returns the number of fetched tickets before filtering.
func (view *View) Total() int {
	return view.collection.Len()
}

// Empty reports whether a successful fetch left nothing to show.
func (view *View) Empty() bool {
	return view.phase == Ready && len(view.Visible()) == 0
}

// Select opens the detail of the ticket with the given id. Returns
// false, leaving the selection unchanged, when no such ticket exists.
func (view *View) Select(id string) bool {
	if _, ok := view.collection.Get(id); !ok {
		return false
	}
	view.selected = id
	return true
}

// Selected returns the ticket whose detail is open.
func (view *View) Selected() (market.Ticket, bool) {
	if view.selected == "" {
		return market.Ticket{}, false
	}
	return view.collection.Get(view.selected)
}

// ClearSelection closes the detail.
func (view *View) ClearSelection() {
	view.selected = ""
}

// ApplyDelete removes a ticket the backend has confirmed deleted.
func (view *View) ApplyDelete(id string) bool {
	removed := view.collection.Remove(id)
	if removed && view.selected == id {
		view.selected = ""
	}
	return removed
}

// ApplyUpdate replaces a ticket with the backend's updated copy.
func (view *View) ApplyUpdate(ticket market.Ticket) bool {
	return view.collection.Update(ticket)
}

// Collection exposes the underlying collection for owners that patch
// or invalidate it directly.
func (view *View) Collection() *Collection {
	return &view.collection
}

func (view *View) dropMissingSelection() {
	if view.selected == "" {
		return
	}
	if _, ok := view.collection.Get(view.selected); !ok {
		view.selected = ""
	}
}
