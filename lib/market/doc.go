// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package market defines the wire types of the ticket exchange API:
// [Ticket] and its create/update payload [TicketInput], the seller
// [Profile], account requests, and the [Envelope] every authenticated
// endpoint wraps its payload in.
//
// The backend owns these records. The client holds read-only copies
// for the lifetime of a view and sends [TicketInput] values back on
// create and update. Two transport quirks are absorbed here so that
// nothing above this package sees them:
//
//   - Prices travel as strings ("899") and are held as
//     [decimal.Decimal]. Comparisons and rendering never go through
//     float64.
//   - Older listing records name the class field "classType" instead
//     of "class". Decoding accepts both; encoding always writes
//     "class".
//
// Calendar dates are a dedicated [Date] type so that a ticket's date
// compares by day, independent of any time-of-day component the
// backend attaches.
package market
