// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/bureau-foundation/tripswap/lib/market"
)

// Theme defines the color palette for the tripswap terminal UI. All
// colors use lipgloss ANSI 256-color codes for broad terminal
// compatibility.
type Theme struct {
	// Text colors.
	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	// Selected row.
	SelectedBackground lipgloss.Color
	SelectedForeground lipgloss.Color

	// Travel class accents.
	ClassEconomy  lipgloss.Color
	ClassBusiness lipgloss.Color
	ClassFirst    lipgloss.Color

	// Price column.
	PriceForeground lipgloss.Color

	// Feedback.
	ErrorForeground   lipgloss.Color
	WarningForeground lipgloss.Color
	SuccessForeground lipgloss.Color

	// UI chrome.
	HeaderForeground lipgloss.Color
	BorderColor      lipgloss.Color
	HelpText         lipgloss.Color
	AccentForeground lipgloss.Color // Focused form fields and active filters.

	// Quick search match highlighting.
	SearchHighlightBackground lipgloss.Color

	// Hyperlinks in the detail modal.
	LinkForeground lipgloss.Color

	// Modal boxes.
	ModalForeground lipgloss.Color
	ModalBackground lipgloss.Color
}

// ClassColor returns the accent for a travel class. Unknown classes
// use FaintText.
func (theme Theme) ClassColor(class market.Class) lipgloss.Color {
	switch class {
	case market.ClassEconomy:
		return theme.ClassEconomy
	case market.ClassBusiness:
		return theme.ClassBusiness
	case market.ClassFirst:
		return theme.ClassFirst
	default:
		return theme.FaintText
	}
}

// DefaultTheme is the built-in dark-terminal color scheme.
var DefaultTheme = Theme{
	NormalText: lipgloss.Color("252"),
	FaintText:  lipgloss.Color("245"),

	SelectedBackground: lipgloss.Color("236"),
	SelectedForeground: lipgloss.Color("255"),

	ClassEconomy:  lipgloss.Color("114"), // green
	ClassBusiness: lipgloss.Color("75"),  // blue
	ClassFirst:    lipgloss.Color("220"), // amber

	PriceForeground: lipgloss.Color("255"),

	ErrorForeground:   lipgloss.Color("196"),
	WarningForeground: lipgloss.Color("208"),
	SuccessForeground: lipgloss.Color("114"),

	HeaderForeground: lipgloss.Color("255"),
	BorderColor:      lipgloss.Color("240"),
	HelpText:         lipgloss.Color("241"),
	AccentForeground: lipgloss.Color("141"),

	SearchHighlightBackground: lipgloss.Color("58"),

	LinkForeground: lipgloss.Color("75"),

	ModalForeground: lipgloss.Color("252"),
	ModalBackground: lipgloss.Color("237"),
}
