// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers for tripswap packages.
//
// [Backend] is an in-memory stand-in for the ticket exchange API,
// served over httptest. It implements every /api/v1 endpoint the
// client calls, checks bearer tokens, detects duplicate listings, and
// can be told to fail the next request to a route with a chosen status
// so tests can drive the unauthorized, conflict, and server-error
// paths without a real backend.
//
// [RequireReceive] and [RequireClosed] encapsulate the timeout safety
// valve pattern (select with time.After fallback) so that individual
// tests do not need direct time.After calls.
//
// All helpers call t.Fatalf on failure rather than returning errors,
// since test setup failures are not recoverable.
package testutil
