// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package marketui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/bureau-foundation/tripswap/lib/tui"
)

func newTestForm() (*form, int, int, int) {
	f := newForm("Test", DefaultKeyMap, tui.DefaultTheme)
	name := f.addText("Name", "", "")
	class := f.addChoice("Class", classOptions(), classLabels(), "business")
	password := f.addPassword("Password")
	f.start()
	return f, name, class, password
}

func TestFormTypingAndFocus(t *testing.T) {
	f, name, class, password := newTestForm()

	f.update(runes("  Asha  "))
	if got := f.value(name); got != "Asha" {
		t.Errorf("value(name) = %q, want trimmed %q", got, "Asha")
	}

	f.update(tea.KeyMsg{Type: tea.KeyTab})
	if f.focus != class {
		t.Fatalf("focus = %d, want %d", f.focus, class)
	}
	f.update(tea.KeyMsg{Type: tea.KeyShiftTab})
	if f.focus != name {
		t.Fatalf("shift+tab focus = %d, want %d", f.focus, name)
	}

	f.setFocus(password)
	f.update(runes(" secret "))
	if got := f.value(password); got != " secret " {
		t.Errorf("password = %q, want untrimmed", got)
	}
}

func TestFormChoiceCycles(t *testing.T) {
	f, _, class, _ := newTestForm()
	if got := f.value(class); got != "business" {
		t.Fatalf("initial choice = %q, want business", got)
	}
	f.setFocus(class)
	f.update(tea.KeyMsg{Type: tea.KeyRight})
	if got := f.value(class); got != "first" {
		t.Errorf("after right = %q, want first", got)
	}
	f.update(tea.KeyMsg{Type: tea.KeyRight})
	if got := f.value(class); got != "economy" {
		t.Errorf("choice should wrap, got %q", got)
	}
	f.update(tea.KeyMsg{Type: tea.KeyLeft})
	if got := f.value(class); got != "first" {
		t.Errorf("after left = %q, want first", got)
	}
}

func TestFormEnterSubmitsOnLastField(t *testing.T) {
	f, _, class, password := newTestForm()

	if submit, _ := f.update(tea.KeyMsg{Type: tea.KeyEnter}); submit {
		t.Fatal("Enter on the first field should advance, not submit")
	}
	if f.focus != class {
		t.Fatalf("focus = %d after Enter, want %d", f.focus, class)
	}
	f.setFocus(password)
	if submit, _ := f.update(tea.KeyMsg{Type: tea.KeyEnter}); !submit {
		t.Error("Enter on the last field should submit")
	}
	if submit, _ := f.update(tea.KeyMsg{Type: tea.KeyCtrlS}); !submit {
		t.Error("ctrl+s should submit from any field")
	}
}

func TestFormBusyIgnoresKeys(t *testing.T) {
	f, name, _, _ := newTestForm()
	f.busy = true
	if submit, _ := f.update(tea.KeyMsg{Type: tea.KeyCtrlS}); submit {
		t.Error("busy form submitted")
	}
	f.update(runes("x"))
	if got := f.value(name); got != "" {
		t.Errorf("busy form accepted input %q", got)
	}
	if !strings.Contains(f.view(), "Working...") {
		t.Error("busy line not rendered")
	}
}

func TestFormViewShowsMultilineError(t *testing.T) {
	f, _, _, _ := newTestForm()
	f.err = "name is required\nseat is required"
	view := f.view()
	for _, want := range []string{"name is required", "seat is required", "Business"} {
		if !strings.Contains(view, want) {
			t.Errorf("view lacks %q:\n%s", want, view)
		}
	}
}
