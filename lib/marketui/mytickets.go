// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package marketui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bureau-foundation/tripswap/lib/apiclient"
	"github.com/bureau-foundation/tripswap/lib/listing"
	"github.com/bureau-foundation/tripswap/lib/market"
	"github.com/bureau-foundation/tripswap/lib/tui"
)

// myTicketsChromeLines is the title line plus a blank line.
const myTicketsChromeLines = 2

// myTicketsScreen lists the signed-in user's own tickets with edit
// and delete. It shows the whole collection: the browse filters do
// not apply to one's own listings.
type myTicketsScreen struct {
	env   *env
	state *listing.View
	list  rowList

	// confirmDelete is the id awaiting y/Esc, or "".
	confirmDelete string
	// deleting is the id of the delete request in flight, or "".
	deleting string
}

func newMyTicketsScreen(environment *env) *myTicketsScreen {
	return &myTicketsScreen{env: environment, state: listing.NewViewWithSequencer(listing.SearchParams{}, &environment.myTicketsTags)}
}

func (screen *myTicketsScreen) init() tea.Cmd {
	return screen.fetch(screen.state.Begin())
}

// resume is called when an edit returns to this screen. A conflict
// during the edit left the collection stale, which forces a refetch.
func (screen *myTicketsScreen) resume() tea.Cmd {
	if screen.state.Collection().Stale() {
		screen.env.logger.Debug("my tickets stale, refetching")
		return screen.fetch(screen.state.Begin())
	}
	return nil
}

func (screen *myTicketsScreen) fetch(request listing.Request) tea.Cmd {
	environment := screen.env
	return func() tea.Msg {
		tickets, err := environment.client.MyTickets(environment.ctx)
		return myTicketsLoadedMsg{tag: request.Tag, tickets: tickets, err: err}
	}
}

func (screen *myTicketsScreen) tickets() []market.Ticket {
	return screen.state.Collection().All()
}

func (screen *myTicketsScreen) tableHeight() int {
	return max(screen.env.bodyHeight-myTicketsChromeLines-1, 1)
}

func (screen *myTicketsScreen) update(message tea.Msg) tea.Cmd {
	switch message := message.(type) {
	case myTicketsLoadedMsg:
		switch screen.state.Resolve(message.tag, message.tickets, message.err) {
		case listing.OutcomeRedirect:
			return redirectToLogin(screen.env.clock, screen.env.redirectDelay)
		case listing.OutcomeFailed:
			screen.env.logger.Warn("my tickets fetch failed", "error", message.err)
		}
		screen.list.clamp(len(screen.tickets()), screen.tableHeight())
		return nil

	case ticketDeletedMsg:
		return screen.deleted(message)

	case tea.KeyMsg:
		return screen.handleKey(message)
	}
	return nil
}

// deleted applies a delete result. Local state changes only when the
// backend confirmed the delete.
func (screen *myTicketsScreen) deleted(message ticketDeletedMsg) tea.Cmd {
	screen.deleting = ""
	if message.err != nil {
		if apiclient.IsUnauthorized(message.err) {
			return tea.Batch(
				showNotice(listing.RedirectingMessage, true),
				redirectToLogin(screen.env.clock, screen.env.redirectDelay),
			)
		}
		screen.env.logger.Warn("delete failed", "ticket", message.id, "error", message.err)
		return showNotice(apiclient.UserMessage(message.err, apiclient.DeleteFailedMessage), true)
	}
	screen.state.ApplyDelete(message.id)
	screen.list.clamp(len(screen.tickets()), screen.tableHeight())
	return showNotice("Ticket deleted.", false)
}

func (screen *myTicketsScreen) handleKey(message tea.KeyMsg) tea.Cmd {
	keys := screen.env.keys

	if screen.confirmDelete != "" {
		id := screen.confirmDelete
		screen.confirmDelete = ""
		if key.Matches(message, keys.Confirm) {
			return screen.delete(id)
		}
		return nil
	}

	if _, open := screen.state.Selected(); open {
		if key.Matches(message, keys.Close) || key.Matches(message, keys.Open) {
			screen.state.ClearSelection()
		}
		return nil
	}

	tickets := screen.tickets()
	current, hasCurrent := market.Ticket{}, false
	if len(tickets) > 0 {
		current, hasCurrent = tickets[min(screen.list.cursor, len(tickets)-1)], true
	}

	switch {
	case key.Matches(message, keys.Up):
		screen.list.move(-1, len(tickets))
	case key.Matches(message, keys.Down):
		screen.list.move(1, len(tickets))
	case key.Matches(message, keys.PageUp):
		screen.list.move(-screen.tableHeight(), len(tickets))
	case key.Matches(message, keys.PageDown):
		screen.list.move(screen.tableHeight(), len(tickets))
	case key.Matches(message, keys.Top):
		screen.list.move(-len(tickets), len(tickets))
	case key.Matches(message, keys.Bottom):
		screen.list.move(len(tickets), len(tickets))
	case key.Matches(message, keys.Refresh):
		return screen.fetch(screen.state.Begin())
	case key.Matches(message, keys.Open):
		if hasCurrent {
			screen.state.Select(current.ID)
		}
	case key.Matches(message, keys.Edit):
		if hasCurrent && current.ID != screen.deleting {
			return navigate(navigateMsg{to: routeEdit, ticket: current})
		}
	case key.Matches(message, keys.Delete):
		if hasCurrent && screen.deleting == "" {
			screen.confirmDelete = current.ID
		}
	}
	screen.list.clamp(len(screen.tickets()), screen.tableHeight())
	return nil
}

func (screen *myTicketsScreen) delete(id string) tea.Cmd {
	screen.deleting = id
	environment := screen.env
	return func() tea.Msg {
		return ticketDeletedMsg{id: id, err: environment.client.DeleteTicket(environment.ctx, id)}
	}
}

func (screen *myTicketsScreen) view(width, height int) string {
	theme := screen.env.theme
	title := lipgloss.NewStyle().Bold(true).Foreground(theme.HeaderForeground)
	faint := lipgloss.NewStyle().Foreground(theme.FaintText)

	heading := title.Render("My tickets")
	if screen.state.Phase() == listing.Ready {
		heading += faint.Render(fmt.Sprintf("  (%d listed)", screen.state.Total()))
	}
	if screen.deleting != "" {
		heading += faint.Render("  deleting...")
	}
	lines := []string{heading, ""}

	tableHeight := max(height-myTicketsChromeLines, 1)
	switch screen.state.Phase() {
	case listing.Idle, listing.Loading:
		lines = append(lines, faint.Render("Loading your tickets..."))
	case listing.Redirecting:
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.WarningForeground).Render(screen.state.Message()))
	case listing.Failed:
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.ErrorForeground).Render(screen.state.Message()))
	default:
		tickets := screen.tickets()
		if len(tickets) == 0 {
			lines = append(lines, faint.Render("You have not listed any tickets yet. Press F4 to sell one."))
		} else {
			lines = append(lines, renderTicketTable(theme, tickets, screen.list, width, tableHeight))
		}
	}
	output := strings.Join(lines, "\n")

	if ticket, open := screen.state.Selected(); open {
		output = tui.CenterOverlay(tui.FitHeight(output, height),
			renderDetailModal(theme, ticket, width), width, height)
	}
	if screen.confirmDelete != "" {
		if ticket, ok := screen.state.Collection().Get(screen.confirmDelete); ok {
			output = tui.CenterOverlay(tui.FitHeight(output, height),
				renderConfirm(theme, "Delete "+ticket.Route()+" on "+ticket.Date.Display()+"?"), width, height)
		}
	}
	return output
}

// renderConfirm renders a yes/no prompt box.
func renderConfirm(theme tui.Theme, question string) string {
	background := lipgloss.NewStyle().Background(theme.ModalBackground)
	body := background.Foreground(theme.ModalForeground).Bold(true).Render(question) + "\n\n" +
		background.Foreground(theme.HelpText).Render("y confirm  any other key cancels")
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.WarningForeground).
		Background(theme.ModalBackground).
		Padding(0, 2).
		Render(body)
}

func (screen *myTicketsScreen) help() string {
	if screen.confirmDelete != "" {
		return "y delete  any other key cancels"
	}
	if _, open := screen.state.Selected(); open {
		return "Esc close"
	}
	return "↑↓ move  Enter details  e edit  d delete  r refresh"
}

func (screen *myTicketsScreen) capturesText() bool { return false }

// showNotice puts text in the status bar.
func showNotice(text string, isError bool) tea.Cmd {
	return func() tea.Msg { return noticeMsg{text: text, isError: isError} }
}
