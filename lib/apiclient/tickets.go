// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package apiclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/bureau-foundation/tripswap/lib/market"
)

// Fallback messages for ticket operations.
const (
	FetchFailedMessage     = "Failed to fetch tickets"
	DuplicateTicketMessage = "This ticket has already been listed."
	CreateFailedMessage    = "Failed to create ticket"
	UpdateFailedMessage    = "Failed to update ticket"
	DeleteFailedMessage    = "Failed to delete ticket"
)

// ListTickets fetches every ticket visible to the signed-in user, in
// backend order.
func (c *Client) ListTickets(ctx context.Context) ([]market.Ticket, error) {
	return c.listTickets(ctx, "list tickets", "/api/v1/tickets/all")
}

// MyTickets fetches the tickets the signed-in user has listed.
func (c *Client) MyTickets(ctx context.Context) ([]market.Ticket, error) {
	return c.listTickets(ctx, "list my tickets", "/api/v1/user/tickets")
}

func (c *Client) listTickets(ctx context.Context, operation, path string) ([]market.Ticket, error) {
	body, err := c.do(ctx, call{
		operation:     operation,
		method:        http.MethodGet,
		path:          path,
		authenticated: true,
	})
	if err != nil {
		return nil, err
	}
	tickets, err := decodeEnvelope[[]market.Ticket](operation, body)
	if err != nil {
		return nil, err
	}
	if tickets == nil {
		tickets = []market.Ticket{}
	}
	return tickets, nil
}

// CreateTicket lists a new ticket. A duplicate listing fails with
// KindConflict. The returned ticket carries the server-assigned id
// when the backend echoes the record back.
func (c *Client) CreateTicket(ctx context.Context, input market.TicketInput) (market.Ticket, error) {
	body, err := c.do(ctx, call{
		operation:     "create ticket",
		method:        http.MethodPost,
		path:          "/api/v1/tickets",
		body:          input,
		authenticated: true,
	})
	if err != nil {
		return market.Ticket{}, err
	}
	return decodeEnvelope[market.Ticket]("create ticket", body)
}

// UpdateTicket replaces the ticket with the given id and returns the
// server's copy of the record.
func (c *Client) UpdateTicket(ctx context.Context, id string, input market.TicketInput) (market.Ticket, error) {
	if id == "" {
		return market.Ticket{}, fmt.Errorf("apiclient: update ticket: empty id")
	}
	body, err := c.do(ctx, call{
		operation:     "update ticket",
		method:        http.MethodPut,
		path:          "/api/v1/update/tickets/" + url.PathEscape(id),
		body:          input,
		authenticated: true,
	})
	if err != nil {
		return market.Ticket{}, err
	}
	ticket, err := decodeEnvelope[market.Ticket]("update ticket", body)
	if err != nil {
		return market.Ticket{}, err
	}
	if ticket.ID == "" {
		ticket.ID = id
	}
	return ticket, nil
}

// DeleteTicket removes the ticket with the given id.
func (c *Client) DeleteTicket(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("apiclient: delete ticket: empty id")
	}
	body, err := c.do(ctx, call{
		operation:     "delete ticket",
		method:        http.MethodDelete,
		path:          "/api/v1/remove/tickets/" + url.PathEscape(id),
		authenticated: true,
	})
	if err != nil {
		return err
	}
	_, err = decodeEnvelope[struct{}]("delete ticket", body)
	return err
}
