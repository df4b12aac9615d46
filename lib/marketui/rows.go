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

// Fixed column widths for ticket rows. The route column takes the
// remaining width.
const (
	columnWidthDate   = 13
	columnWidthTime   = 6
	columnWidthClass  = 12
	columnWidthSeat   = 6
	columnWidthPrice  = 10
	columnWidthSeller = 16
	minRouteWidth     = 16
)

// rowList is the cursor and scroll position of a ticket table.
type rowList struct {
	cursor int
	offset int
}

func (list *rowList) clamp(count, height int) {
	if count == 0 {
		list.cursor, list.offset = 0, 0
		return
	}
	list.cursor = min(max(list.cursor, 0), count-1)
	if height <= 0 {
		return
	}
	if list.cursor < list.offset {
		list.offset = list.cursor
	}
	if list.cursor >= list.offset+height {
		list.offset = list.cursor - height + 1
	}
	list.offset = min(max(list.offset, 0), max(count-height, 0))
}

// move shifts the cursor by delta rows.
func (list *rowList) move(delta, count int) {
	list.cursor += delta
	list.clamp(count, 0)
}

// formatPrice renders a price the way listings show it.
func formatPrice(ticket market.Ticket) string {
	return "$" + ticket.Price.StringFixed(2)
}

// renderHeaderRow renders the column titles.
func renderHeaderRow(theme tui.Theme, width int) string {
	routeWidth := routeColumnWidth(width)
	row := padRight("Route", routeWidth) +
		padRight("Date", columnWidthDate) +
		padRight("Time", columnWidthTime) +
		padRight("Class", columnWidthClass) +
		padRight("Seat", columnWidthSeat) +
		padLeft("Price", columnWidthPrice-1) + "  Seller"
	return lipgloss.NewStyle().Bold(true).Foreground(theme.FaintText).MaxWidth(width).Render(row)
}

func routeColumnWidth(width int) int {
	fixed := columnWidthDate + columnWidthTime + columnWidthClass +
		columnWidthSeat + columnWidthPrice + columnWidthSeller + 1
	return max(width-fixed, minRouteWidth)
}

// renderTicketRow renders one ticket as a table row.
func renderTicketRow(theme tui.Theme, ticket market.Ticket, width int, selected bool) string {
	routeWidth := routeColumnWidth(width)
	base := lipgloss.NewStyle().Foreground(theme.NormalText)
	if selected {
		base = base.Background(theme.SelectedBackground).Foreground(theme.SelectedForeground).Bold(true)
	}
	classStyle := base.Foreground(theme.ClassColor(ticket.Class))
	priceStyle := base.Foreground(theme.PriceForeground)
	faint := base.Foreground(theme.FaintText)

	route := ansi.Truncate(ticket.Route(), routeWidth-1, "…")
	row := base.Render(padRight(route, routeWidth)) +
		base.Render(padRight(ticket.Date.Display(), columnWidthDate)) +
		base.Render(padRight(ticket.Time, columnWidthTime)) +
		classStyle.Render(padRight(ticket.Class.Label(), columnWidthClass)) +
		base.Render(padRight(ansi.Truncate(ticket.Seat, columnWidthSeat-1, "…"), columnWidthSeat)) +
		priceStyle.Render(padLeft(formatPrice(ticket), columnWidthPrice-1)) + base.Render("  ") +
		faint.Render(ansi.Truncate(ticket.Name, columnWidthSeller-1, "…"))
	return tui.PadLine(row, width, base)
}

// renderTicketTable renders the visible window of tickets plus a
// scrollbar in the last column.
func renderTicketTable(theme tui.Theme, tickets []market.Ticket, list rowList, width, height int) string {
	if height <= 1 {
		return ""
	}
	rowsHeight := height - 1
	list.clamp(len(tickets), rowsHeight)

	rowWidth := max(width-1, 1)
	lines := []string{renderHeaderRow(theme, rowWidth)}
	end := min(list.offset+rowsHeight, len(tickets))
	for index := list.offset; index < end; index++ {
		lines = append(lines, renderTicketRow(theme, tickets[index], rowWidth, index == list.cursor))
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", rowWidth))
	}

	scrollbar := " \n" + tui.RenderScrollbar(theme, rowsHeight, len(tickets), rowsHeight, list.offset)
	return lipgloss.JoinHorizontal(lipgloss.Top, strings.Join(lines, "\n"), scrollbar)
}

func padLeft(text string, width int) string {
	if gap := width - lipgloss.Width(text); gap > 0 {
		return strings.Repeat(" ", gap) + text
	}
	return text
}
