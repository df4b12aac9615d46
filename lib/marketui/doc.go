// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package marketui is the interactive terminal client for the ticket
// exchange. It runs as a single bubbletea program: a router [Model]
// owns one screen at a time (login, signup, home search, ticket
// listing, my tickets, the create and edit form, profile) and swaps
// screens in response to navigation messages.
//
// Every network call runs as a tea.Cmd and reports back as a message,
// so all state changes happen on the bubbletea event loop. Listing
// fetches are tagged through [listing.View] so a slow response to a
// superseded search is dropped instead of overwriting newer results.
//
// Time enters only through a [clock.Clock]: the home form's default
// date and the pause before a rejected token sends the user back to
// login. Tests drive both with a fake clock.
//
// Background log records at or above the configured level reach the
// status bar through [TUILogHandler]; the alt screen is never written
// to directly.
package marketui
