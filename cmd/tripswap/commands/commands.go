// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands builds the complete tripswap CLI command tree.
package commands

import (
	"context"
	"fmt"
	"log/slog"

	accountcmd "github.com/bureau-foundation/tripswap/cmd/tripswap/account"
	"github.com/bureau-foundation/tripswap/cmd/tripswap/cli"
	ticketcmd "github.com/bureau-foundation/tripswap/cmd/tripswap/ticket"
	"github.com/bureau-foundation/tripswap/lib/version"
)

// Root builds and returns the complete tripswap command tree.
func Root() *cli.Command {
	return &cli.Command{
		Name: "tripswap",
		Description: `tripswap: buy and sell unused travel tickets.

Browse the marketplace interactively with 'tripswap browse', or script
it with the tickets and profile commands. Sign in first with
'tripswap login'.`,
		Subcommands: []*cli.Command{
			accountcmd.LoginCommand(),
			accountcmd.LogoutCommand(),
			accountcmd.SignupCommand(),
			accountcmd.ProfileCommand(),
			ticketcmd.Command(),
			BrowseCommand(),
			{
				Name:    "version",
				Summary: "Print version information",
				Run: func(ctx context.Context, args []string, _ *slog.Logger) error {
					fmt.Fprintf(cli.Output(ctx), "tripswap %s\n", version.Full())
					return nil
				},
			},
		},
		Examples: []cli.Example{
			{Description: "Create an account", Command: "tripswap signup --name 'Asha Rao' --email asha@example.com --phone 5551234 --gender female"},
			{Description: "Sign in (saves the session locally)", Command: "tripswap login asha@example.com"},
			{Description: "Open the marketplace browser", Command: "tripswap browse"},
			{Description: "Search from a script", Command: "tripswap tickets list --from paris --to rome --json"},
			{Description: "Sell a ticket", Command: "tripswap tickets create --from Paris --to Rome --date 2026-11-02 --seat 14C --price 120 --name 'Asha Rao' --phone 5551234"},
		},
	}
}
