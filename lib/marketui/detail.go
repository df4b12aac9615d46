// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package marketui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/bureau-foundation/tripswap/lib/market"
	"github.com/bureau-foundation/tripswap/lib/tui"
)

// detailModalWidth is the modal's inner width when the screen allows.
const detailModalWidth = 60

// renderDetailModal renders every field of a ticket as a bordered box
// for splicing over the list. Contact and media links are OSC 8
// hyperlinks.
func renderDetailModal(theme tui.Theme, ticket market.Ticket, screenWidth int) string {
	innerWidth := min(detailModalWidth, max(screenWidth-6, 20))

	background := lipgloss.NewStyle().Background(theme.ModalBackground)
	titleStyle := background.Bold(true).Foreground(theme.HeaderForeground)
	labelStyle := background.Foreground(theme.FaintText)
	valueStyle := background.Foreground(theme.ModalForeground)
	linkStyle := background.Foreground(theme.LinkForeground).Underline(true)
	footerStyle := background.Foreground(theme.HelpText)

	const labelWidth = 12
	row := func(label, value string) string {
		return labelStyle.Render(padRight(label+":", labelWidth)) + value
	}
	text := func(value string) string {
		if value == "" {
			return labelStyle.Render("-")
		}
		return valueStyle.Render(ansi.Truncate(value, innerWidth-labelWidth, "…"))
	}
	link := func(target, label string) string {
		if target == "" {
			return labelStyle.Render("-")
		}
		if label == "" {
			label = target
		}
		label = ansi.Truncate(label, innerWidth-labelWidth, "…")
		if !tui.IsWebURL(target) {
			return valueStyle.Render(label)
		}
		return tui.Hyperlink(target, linkStyle.Render(label))
	}

	lines := []string{
		titleStyle.Render(ansi.Truncate(ticket.Route(), innerWidth, "…")),
		"",
		row("Name", text(ticket.Name)),
		row("Email", text(ticket.Email)),
		row("Phone", text(ticket.Phone)),
		row("Gender", text(ticket.Gender.Label())),
		row("Age", text(ticket.Age.String())),
		row("Departure", text(ticket.Departure)),
		row("Destination", text(ticket.Destination)),
		row("Date", text(ticket.Date.Display())),
		row("Time", text(ticket.Time)),
		row("Seat", text(ticket.Seat)),
		row("Class", text(ticket.Class.Label())),
		row("Price", text(formatPrice(ticket))),
		"",
		row("Screenshot", link(ticket.Screenshot, "")),
		row("WhatsApp", link(tui.WhatsAppURL(ticket.WhatsApp), ticket.WhatsApp)),
		row("Instagram", link(ticket.Instagram, "")),
		row("Facebook", link(ticket.Facebook, "")),
		"",
		footerStyle.Render("Esc close"),
	}
	for index, line := range lines {
		lines[index] = tui.PadLine(line, innerWidth, background)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.BorderColor).
		Background(theme.ModalBackground).
		Padding(0, 1).
		Render(strings.Join(lines, "\n"))
}
