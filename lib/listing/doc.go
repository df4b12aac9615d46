// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package listing holds the client-side logic of the ticket listing:
// the filter predicate, the local ticket collection, and the fetch
// state machine that the terminal UI and the CLI share.
//
// Filtering is a pure function of the fetched tickets, the [Filters]
// panel, and the [SearchParams] handed over by the search form. A
// ticket is visible iff its price lies in [0, ceiling], its class and
// seller gender match the selectors (or the selector is "all"), the
// from and to search strings are case-insensitive substrings of its
// departure and destination, and the search date equals its calendar
// day. Order is always the backend's. The time-of-day selector is part
// of the filter state but not of the predicate.
//
// [View] sequences fetches with a [Sequencer] so that a slow response
// to an old search can never overwrite the result of a newer one.
package listing
