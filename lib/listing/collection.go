// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package listing

import (
	"slices"

	"github.com/bureau-foundation/tripswap/lib/market"
)

// Collection is a view's local copy of the backend's tickets, keyed by
// id and kept in backend order. It is owned by one view and is not
// safe for concurrent use.
//
// Edits and deletes patch the collection in place rather than
// refetching. When a patch cannot be trusted (the server rejected an
// edit with a conflict) the owner calls Invalidate and refetches on
// its next opportunity.
type Collection struct {
	tickets []market.Ticket
	index   map[string]int
	stale   bool
}

// Replace discards the current contents and takes tickets in the order
// given. A ticket with no id, or whose id repeats an earlier one, is
// dropped. Replace clears the stale mark.
func (collection *Collection) Replace(tickets []market.Ticket) {
	collection.tickets = make([]market.Ticket, 0, len(tickets))
	collection.index = make(map[string]int, len(tickets))
	for _, ticket := range tickets {
		if ticket.ID == "" {
			continue
		}
		if _, duplicate := collection.index[ticket.ID]; duplicate {
			continue
		}
		collection.index[ticket.ID] = len(collection.tickets)
		collection.tickets = append(collection.tickets, ticket)
	}
	collection.stale = false
}

// Clear empties the collection.
func (collection *Collection) Clear() {
	collection.Replace(nil)
}

// All returns the tickets in backend order. The returned slice is a
// copy.
func (collection *Collection) All() []market.Ticket {
	return slices.Clone(collection.tickets)
}

// Len returns the number of tickets.
func (collection *Collection) Len() int {
	return len(collection.tickets)
}

// Get returns the ticket with the given id.
func (collection *Collection) Get(id string) (market.Ticket, bool) {
	position, ok := collection.index[id]
	if !ok {
		return market.Ticket{}, false
	}
	return collection.tickets[position], true
}

// Update replaces the ticket with the same id in place, keeping its
// position. Returns false when no ticket has that id.
func (collection *Collection) Update(ticket market.Ticket) bool {
	position, ok := collection.index[ticket.ID]
	if !ok {
		return false
	}
	collection.tickets[position] = ticket
	return true
}

// Remove deletes the ticket with the given id. The relative order of
// the remaining tickets is unchanged. Returns false when no ticket has
// that id.
func (collection *Collection) Remove(id string) bool {
	position, ok := collection.index[id]
	if !ok {
		return false
	}
	collection.tickets = slices.Delete(collection.tickets, position, position+1)
	delete(collection.index, id)
	for index := position; index < len(collection.tickets); index++ {
		collection.index[collection.tickets[index].ID] = index
	}
	return true
}

// Invalidate marks the collection as no longer matching the backend.
func (collection *Collection) Invalidate() {
	collection.stale = true
}

// Stale reports whether Invalidate was called since the last Replace.
func (collection *Collection) Stale() bool {
	return collection.stale
}
