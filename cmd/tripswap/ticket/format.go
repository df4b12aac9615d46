// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package ticket

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/bureau-foundation/tripswap/lib/market"
	"github.com/bureau-foundation/tripswap/lib/tui"
)

func formatPrice(ticket market.Ticket) string {
	return "$" + ticket.Price.StringFixed(2)
}

func writeTable(w io.Writer, tickets []market.Ticket) error {
	writer := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(writer, "ID\tROUTE\tDATE\tTIME\tCLASS\tSEAT\tPRICE\tSELLER")
	for _, ticket := range tickets {
		fmt.Fprintf(writer, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			ticket.ID,
			ticket.Route(),
			ticket.Date,
			ticket.Time,
			ticket.Class.Label(),
			ticket.Seat,
			formatPrice(ticket),
			ticket.Name,
		)
	}
	return writer.Flush()
}

// writeDetail prints every field of ticket. Empty values print as "-".
func writeDetail(w io.Writer, ticket market.Ticket) error {
	writer := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	row := func(label, value string) {
		if value == "" {
			value = "-"
		}
		fmt.Fprintf(writer, "%s:\t%s\n", label, value)
	}

	fmt.Fprintln(writer, ticket.Route())
	row("ID", ticket.ID)
	row("Name", ticket.Name)
	row("Email", ticket.Email)
	row("Phone", ticket.Phone)
	row("Gender", ticket.Gender.Label())
	row("Age", ticket.Age.String())
	row("Date", ticket.Date.Display())
	row("Time", ticket.Time)
	row("Seat", ticket.Seat)
	row("Class", ticket.Class.Label())
	row("Price", formatPrice(ticket))
	row("Screenshot", ticket.Screenshot)
	row("WhatsApp", tui.WhatsAppURL(ticket.WhatsApp))
	row("Instagram", ticket.Instagram)
	row("Facebook", ticket.Facebook)
	return writer.Flush()
}
