// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package marketui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the marketplace TUI. Letter
// bindings only fire on screens that are not taking text input; the
// function-key alternatives work everywhere.
type KeyMap struct {
	// List movement.
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Top      key.Binding
	Bottom   key.Binding

	// Form focus.
	NextField key.Binding
	PrevField key.Binding
	CycleNext key.Binding // Choice fields: next option.
	CyclePrev key.Binding // Choice fields: previous option.
	Submit    key.Binding // Forms: submit from any field.

	// Listing.
	Open          key.Binding // Open the detail modal for the cursor row.
	Close         key.Binding // Close a modal, clear quick search, or go back.
	Refresh       key.Binding
	QuickSearch   key.Binding
	CycleClass    key.Binding
	CycleGender   key.Binding
	CycleTime     key.Binding
	RaiseCeiling  key.Binding
	LowerCeiling  key.Binding
	ResetFilters  key.Binding
	ExploreAll    key.Binding // Empty state: reset search, keep filters.
	Edit          key.Binding
	Delete        key.Binding
	Confirm       key.Binding
	SwitchAccount key.Binding // Login and signup: switch to the other form.

	// Navigation between screens.
	GoHome    key.Binding
	GoBrowse  key.Binding
	GoMine    key.Binding
	GoSell    key.Binding
	GoProfile key.Binding
	Logout    key.Binding
	Quit      key.Binding
	ForceQuit key.Binding
}

// DefaultKeyMap is the built-in key binding set.
var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	PageUp: key.NewBinding(
		key.WithKeys("ctrl+u", "pgup"),
		key.WithHelp("C-u", "page up"),
	),
	PageDown: key.NewBinding(
		key.WithKeys("ctrl+d", "pgdown"),
		key.WithHelp("C-d", "page down"),
	),
	Top: key.NewBinding(
		key.WithKeys("g", "home"),
		key.WithHelp("g", "top"),
	),
	Bottom: key.NewBinding(
		key.WithKeys("G", "end"),
		key.WithHelp("G", "bottom"),
	),
	NextField: key.NewBinding(
		key.WithKeys("tab", "down"),
		key.WithHelp("Tab", "next field"),
	),
	PrevField: key.NewBinding(
		key.WithKeys("shift+tab", "up"),
		key.WithHelp("S-Tab", "previous field"),
	),
	CycleNext: key.NewBinding(
		key.WithKeys("right", " "),
		key.WithHelp("→", "next option"),
	),
	CyclePrev: key.NewBinding(
		key.WithKeys("left"),
		key.WithHelp("←", "previous option"),
	),
	Submit: key.NewBinding(
		key.WithKeys("ctrl+s"),
		key.WithHelp("C-s", "submit"),
	),
	Open: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("Enter", "details"),
	),
	Close: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("Esc", "close"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("r", "ctrl+r"),
		key.WithHelp("r", "refresh"),
	),
	QuickSearch: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "search"),
	),
	CycleClass: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "class"),
	),
	CycleGender: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "seller gender"),
	),
	CycleTime: key.NewBinding(
		key.WithKeys("t"),
		key.WithHelp("t", "time"),
	),
	RaiseCeiling: key.NewBinding(
		key.WithKeys("]", "+"),
		key.WithHelp("]", "max price +50"),
	),
	LowerCeiling: key.NewBinding(
		key.WithKeys("[", "-"),
		key.WithHelp("[", "max price -50"),
	),
	ResetFilters: key.NewBinding(
		key.WithKeys("0"),
		key.WithHelp("0", "reset filters"),
	),
	ExploreAll: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "explore all"),
	),
	Edit: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "edit"),
	),
	Delete: key.NewBinding(
		key.WithKeys("d", "delete"),
		key.WithHelp("d", "delete"),
	),
	Confirm: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "confirm"),
	),
	SwitchAccount: key.NewBinding(
		key.WithKeys("ctrl+n"),
		key.WithHelp("C-n", "login/signup"),
	),
	GoHome: key.NewBinding(
		key.WithKeys("f1", "h"),
		key.WithHelp("F1", "home"),
	),
	GoBrowse: key.NewBinding(
		key.WithKeys("f2", "b"),
		key.WithHelp("F2", "browse"),
	),
	GoMine: key.NewBinding(
		key.WithKeys("f3", "m"),
		key.WithHelp("F3", "my tickets"),
	),
	GoSell: key.NewBinding(
		key.WithKeys("f4", "n"),
		key.WithHelp("F4", "sell"),
	),
	GoProfile: key.NewBinding(
		key.WithKeys("f5", "p"),
		key.WithHelp("F5", "profile"),
	),
	Logout: key.NewBinding(
		key.WithKeys("f10", "L"),
		key.WithHelp("F10", "logout"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q"),
		key.WithHelp("q", "quit"),
	),
	ForceQuit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("C-c", "quit"),
	),
}
