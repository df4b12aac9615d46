// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package marketui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bureau-foundation/tripswap/lib/tui"
)

type fieldKind int

const (
	textField fieldKind = iota
	passwordField
	choiceField
)

// formField is one labeled input. Text and password fields wrap a
// textinput; choice fields cycle through a fixed option list.
type formField struct {
	label string
	kind  fieldKind
	input textinput.Model

	options  []string
	labels   []string
	selected int
}

// form is a vertical stack of fields with one focused at a time.
// Enter on the last field or the Submit binding anywhere submits.
type form struct {
	title  string
	fields []formField
	focus  int

	// err is the inline error under the fields. The form keeps every
	// value when err is set.
	err string

	// busy is true while the submitted request is in flight; keys are
	// ignored until the result arrives.
	busy bool

	keys  KeyMap
	theme tui.Theme
}

// formInputWidth is the visible width of text inputs.
const formInputWidth = 40

func newForm(title string, keys KeyMap, theme tui.Theme) *form {
	return &form{title: title, keys: keys, theme: theme}
}

func (f *form) addText(label, value, placeholder string) int {
	input := textinput.New()
	input.Prompt = ""
	input.Width = formInputWidth
	input.Placeholder = placeholder
	input.SetValue(value)
	f.fields = append(f.fields, formField{label: label, kind: textField, input: input})
	return len(f.fields) - 1
}

func (f *form) addPassword(label string) int {
	index := f.addText(label, "", "")
	f.fields[index].kind = passwordField
	f.fields[index].input.EchoMode = textinput.EchoPassword
	f.fields[index].input.EchoCharacter = '•'
	return index
}

// addChoice adds a field selecting one of options, shown as labels.
// An unknown value selects the first option.
func (f *form) addChoice(label string, options, labels []string, value string) int {
	field := formField{label: label, kind: choiceField, options: options, labels: labels}
	for index, option := range options {
		if strings.EqualFold(option, value) {
			field.selected = index
		}
	}
	f.fields = append(f.fields, field)
	return len(f.fields) - 1
}

// value returns the trimmed text of a field, or the selected option.
func (f *form) value(index int) string {
	field := f.fields[index]
	switch field.kind {
	case choiceField:
		if len(field.options) == 0 {
			return ""
		}
		return field.options[field.selected]
	case passwordField:
		return field.input.Value()
	default:
		return strings.TrimSpace(field.input.Value())
	}
}

func (f *form) set(index int, value string) {
	field := &f.fields[index]
	if field.kind == choiceField {
		for optionIndex, option := range field.options {
			if strings.EqualFold(option, value) {
				field.selected = optionIndex
			}
		}
		return
	}
	field.input.SetValue(value)
}

// start focuses the first field.
func (f *form) start() tea.Cmd {
	return f.setFocus(0)
}

func (f *form) setFocus(index int) tea.Cmd {
	if len(f.fields) == 0 {
		return nil
	}
	index = (index + len(f.fields)) % len(f.fields)
	if f.fields[f.focus].kind != choiceField {
		f.fields[f.focus].input.Blur()
	}
	f.focus = index
	if f.fields[index].kind != choiceField {
		return f.fields[index].input.Focus()
	}
	return nil
}

// update routes a message to the focused field. It reports true when
// the user asked to submit.
func (f *form) update(message tea.Msg) (bool, tea.Cmd) {
	keyMessage, isKey := message.(tea.KeyMsg)
	if !isKey {
		if len(f.fields) == 0 || f.fields[f.focus].kind == choiceField {
			return false, nil
		}
		var cmd tea.Cmd
		f.fields[f.focus].input, cmd = f.fields[f.focus].input.Update(message)
		return false, cmd
	}
	if f.busy || len(f.fields) == 0 {
		return false, nil
	}

	focused := &f.fields[f.focus]
	switch {
	case key.Matches(keyMessage, f.keys.Submit):
		return true, nil
	case keyMessage.Type == tea.KeyEnter:
		if f.focus == len(f.fields)-1 {
			return true, nil
		}
		return false, f.setFocus(f.focus + 1)
	case key.Matches(keyMessage, f.keys.NextField):
		return false, f.setFocus(f.focus + 1)
	case key.Matches(keyMessage, f.keys.PrevField):
		return false, f.setFocus(f.focus - 1)
	}

	if focused.kind == choiceField {
		switch {
		case key.Matches(keyMessage, f.keys.CycleNext):
			focused.selected = (focused.selected + 1) % len(focused.options)
		case key.Matches(keyMessage, f.keys.CyclePrev):
			focused.selected = (focused.selected - 1 + len(focused.options)) % len(focused.options)
		}
		return false, nil
	}

	var cmd tea.Cmd
	focused.input, cmd = focused.input.Update(message)
	return false, cmd
}

// view renders the title, the fields, and the error or busy line.
func (f *form) view() string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(f.theme.HeaderForeground)
	labelStyle := lipgloss.NewStyle().Foreground(f.theme.FaintText)
	focusedLabelStyle := lipgloss.NewStyle().Foreground(f.theme.AccentForeground).Bold(true)
	choiceStyle := lipgloss.NewStyle().Foreground(f.theme.NormalText)

	labelWidth := 0
	for _, field := range f.fields {
		labelWidth = max(labelWidth, lipgloss.Width(field.label))
	}

	var lines []string
	if f.title != "" {
		lines = append(lines, titleStyle.Render(f.title), "")
	}
	for index, field := range f.fields {
		style := labelStyle
		marker := "  "
		if index == f.focus {
			style = focusedLabelStyle
			marker = "› "
		}
		label := style.Render(marker + padRight(field.label, labelWidth))

		var control string
		if field.kind == choiceField {
			text := field.options[field.selected]
			if field.selected < len(field.labels) {
				text = field.labels[field.selected]
			}
			if index == f.focus {
				control = choiceStyle.Render("‹ " + text + " ›")
			} else {
				control = choiceStyle.Render("  " + text)
			}
		} else {
			control = field.input.View()
		}
		lines = append(lines, label+"  "+control)
	}

	lines = append(lines, "")
	switch {
	case f.busy:
		lines = append(lines, labelStyle.Render("Working..."))
	case f.err != "":
		errorStyle := lipgloss.NewStyle().Foreground(f.theme.ErrorForeground)
		for _, line := range strings.Split(f.err, "\n") {
			lines = append(lines, errorStyle.Render(line))
		}
	}
	return strings.Join(lines, "\n")
}

func padRight(text string, width int) string {
	if gap := width - lipgloss.Width(text); gap > 0 {
		return text + strings.Repeat(" ", gap)
	}
	return text
}
