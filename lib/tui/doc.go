// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package tui provides shared terminal user interface pieces for the
// tripswap browser: the color theme, ANSI-aware overlay splicing for
// modals, the list scrollbar, fuzzy matching for quick search, and
// OSC 8 hyperlinks.
//
// Screens in lib/marketui own their layout and state; this package
// holds only rendering helpers with no marketplace state of their own.
package tui
