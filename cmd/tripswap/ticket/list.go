// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package ticket

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/bureau-foundation/tripswap/cmd/tripswap/cli"
	"github.com/bureau-foundation/tripswap/lib/apiclient"
	"github.com/bureau-foundation/tripswap/lib/listing"
	"github.com/bureau-foundation/tripswap/lib/market"
)

type listParams struct {
	cli.ConfigFlag
	cli.JSONOutput
	From      string  `json:"from" flag:"from" desc:"departure city contains this text"`
	To        string  `json:"to" flag:"to" desc:"destination city contains this text"`
	Date      string  `json:"date" flag:"date" desc:"travel date (YYYY-MM-DD)"`
	MaxPrice  float64 `json:"max_price" flag:"max-price" desc:"price ceiling, 0 to 1000 (default: ui.price_ceiling)" default:"-1"`
	Class     string  `json:"class" flag:"class" desc:"economy, business, first, or all" default:"all"`
	Gender    string  `json:"gender" flag:"gender" desc:"seller gender: male, female, or all" default:"all"`
	TimeOfDay string  `json:"time" flag:"time" desc:"morning, afternoon, evening, or all (accepted, not yet applied)" default:"all"`
}

// query turns the flags into the listing view's filters and search.
// A negative --max-price means the configured ceiling, and an unset
// (zero) configured ceiling means the maximum.
func (params *listParams) query(configuredCeiling float64) (listing.Filters, listing.SearchParams, error) {
	var problems []error

	filters := listing.DefaultFilters()
	switch {
	case params.MaxPrice >= 0:
		filters = filters.WithPriceCeiling(decimal.NewFromFloat(params.MaxPrice))
	case configuredCeiling > 0:
		filters = filters.WithPriceCeiling(decimal.NewFromFloat(configuredCeiling))
	}

	class, err := listing.ParseClassFilter(params.Class)
	problems = append(problems, err)
	filters.Class = class

	gender, err := listing.ParseGenderFilter(params.Gender)
	problems = append(problems, err)
	filters.Gender = gender

	timeOfDay, err := listing.ParseTimeOfDay(params.TimeOfDay)
	problems = append(problems, err)
	filters.TimeOfDay = timeOfDay

	search := listing.SearchParams{From: params.From, To: params.To}
	if params.Date != "" {
		date, err := market.ParseDate(params.Date)
		problems = append(problems, err)
		search.Date = date
	}

	if err := errors.Join(problems...); err != nil {
		return listing.Filters{}, listing.SearchParams{}, cli.Validation("%w", err)
	}
	return filters, search, nil
}

func listCommand() *cli.Command {
	var params listParams
	return &cli.Command{
		Name:    "list",
		Summary: "List marketplace tickets",
		Description: `Fetch every listing and show the ones that pass the filters, in the
order the backend returned them.`,
		Examples: []cli.Example{
			{Description: "Everything from Paris on a date", Command: "tripswap tickets list --from paris --date 2026-11-02"},
			{Description: "First class, female sellers", Command: "tripswap tickets list --class first --gender female"},
		},
		Params: func() any { return &params },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) > 0 {
				return cli.Validation("unexpected argument: %s", args[0])
			}
			environment, err := cli.Connect(params.ConfigPath, logger)
			if err != nil {
				return err
			}
			defer environment.Close()

			filters, search, err := params.query(environment.Config.UI.PriceCeiling)
			if err != nil {
				return err
			}
			if err := environment.RequireSession(); err != nil {
				return err
			}

			tickets, err := environment.Client.ListTickets(ctx)
			if err != nil {
				return cli.FromAPI(err, apiclient.FetchFailedMessage)
			}
			visible := listing.Apply(tickets, filters, search)
			logger.Debug("tickets filtered", "total", len(tickets), "visible", len(visible))

			if done, err := params.EmitJSON(cli.Output(ctx), visible); done {
				return err
			}
			if len(visible) == 0 {
				fmt.Fprintln(cli.Output(ctx), listing.EmptyMessage)
				return nil
			}
			return writeTable(cli.Output(ctx), visible)
		},
	}
}

type mineParams struct {
	cli.ConfigFlag
	cli.JSONOutput
}

func mineCommand() *cli.Command {
	var params mineParams
	return &cli.Command{
		Name:    "mine",
		Summary: "List the tickets you are selling",
		Params:  func() any { return &params },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) > 0 {
				return cli.Validation("unexpected argument: %s", args[0])
			}
			environment, err := cli.Connect(params.ConfigPath, logger)
			if err != nil {
				return err
			}
			defer environment.Close()
			if err := environment.RequireSession(); err != nil {
				return err
			}

			tickets, err := environment.Client.MyTickets(ctx)
			if err != nil {
				return cli.FromAPI(err, apiclient.FetchFailedMessage)
			}
			if done, err := params.EmitJSON(cli.Output(ctx), tickets); done {
				return err
			}
			if len(tickets) == 0 {
				fmt.Fprintln(cli.Output(ctx), "You have not listed any tickets. Run 'tripswap tickets create' to sell one.")
				return nil
			}
			return writeTable(cli.Output(ctx), tickets)
		},
	}
}

type showParams struct {
	cli.ConfigFlag
	cli.JSONOutput
}

func showCommand() *cli.Command {
	var params showParams
	return &cli.Command{
		Name:    "show",
		Summary: "Show one listing with its seller contacts",
		Usage:   "tripswap tickets show <id> [flags]",
		Params:  func() any { return &params },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) != 1 {
				return cli.Validation("usage: tripswap tickets show <id>")
			}
			environment, err := cli.Connect(params.ConfigPath, logger)
			if err != nil {
				return err
			}
			defer environment.Close()
			if err := environment.RequireSession(); err != nil {
				return err
			}

			tickets, err := environment.Client.ListTickets(ctx)
			if err != nil {
				return cli.FromAPI(err, apiclient.FetchFailedMessage)
			}
			var collection listing.Collection
			collection.Replace(tickets)
			found, ok := collection.Get(args[0])
			if !ok {
				return cli.NotFound("no ticket %q", args[0])
			}
			if done, err := params.EmitJSON(cli.Output(ctx), found); done {
				return err
			}
			return writeDetail(cli.Output(ctx), found)
		},
	}
}
