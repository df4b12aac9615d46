// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package ticket implements the "tickets" command group: browsing the
// marketplace from scripts and managing your own listings.
package ticket

import "github.com/bureau-foundation/tripswap/cmd/tripswap/cli"

// Command returns the "tickets" subcommand group.
func Command() *cli.Command {
	return &cli.Command{
		Name:    "tickets",
		Summary: "List, search, and manage ticket listings",
		Description: `List marketplace tickets and manage the ones you are selling.

"list" applies the same filters as the interactive browser: price
ceiling, class, gender, and a case-insensitive departure/destination
search with an optional exact date. Every subcommand accepts --json.`,
		Subcommands: []*cli.Command{
			listCommand(),
			mineCommand(),
			showCommand(),
			createCommand(),
			updateCommand(),
			deleteCommand(),
		},
		Examples: []cli.Example{
			{Description: "Economy tickets to Rome under $150", Command: "tripswap tickets list --to rome --class economy --max-price 150"},
			{Description: "Your listings as JSON", Command: "tripswap tickets mine --json"},
		},
	}
}
