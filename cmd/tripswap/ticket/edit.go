// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package ticket

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/bureau-foundation/tripswap/cmd/tripswap/cli"
	"github.com/bureau-foundation/tripswap/lib/apiclient"
	"github.com/bureau-foundation/tripswap/lib/clock"
	"github.com/bureau-foundation/tripswap/lib/listing"
	"github.com/bureau-foundation/tripswap/lib/market"
)

// TicketFlags are the listing fields settable from flags. It is
// exported because flag binding reflects into embedded structs. Every
// field is a string so that "not given" is distinguishable from a zero
// value: only non-empty fields are applied.
type TicketFlags struct {
	Name        string `json:"name" flag:"name" desc:"seller name"`
	Email       string `json:"email" flag:"email" desc:"seller email"`
	Phone       string `json:"phone" flag:"phone" desc:"seller phone"`
	Gender      string `json:"gender" flag:"gender" desc:"seller gender: male, female, or other"`
	Age         string `json:"age" flag:"age" desc:"seller age"`
	Departure   string `json:"from" flag:"from" desc:"departure city"`
	Destination string `json:"to" flag:"to" desc:"destination city"`
	Date        string `json:"date" flag:"date" desc:"travel date (YYYY-MM-DD)"`
	Time        string `json:"time" flag:"time" desc:"departure time (HH:MM)"`
	Seat        string `json:"seat" flag:"seat" desc:"seat number"`
	Class       string `json:"class" flag:"class" desc:"economy, business, or first"`
	Price       string `json:"price" flag:"price" desc:"asking price (\"120\" or \"$120.50\")"`
	Screenshot  string `json:"screenshot" flag:"screenshot" desc:"ticket screenshot URL"`
	WhatsApp    string `json:"whatsapp" flag:"whatsapp" desc:"WhatsApp number"`
	Instagram   string `json:"instagram" flag:"instagram" desc:"Instagram profile URL"`
	Facebook    string `json:"facebook" flag:"facebook" desc:"Facebook profile URL"`
}

// empty reports whether no field was given.
func (fields *TicketFlags) empty() bool {
	return *fields == TicketFlags{}
}

// apply overwrites input with every given field, reporting all parse
// errors together.
func (fields *TicketFlags) apply(input *market.TicketInput) error {
	var problems []error
	set := func(target *string, value string) {
		if value != "" {
			*target = strings.TrimSpace(value)
		}
	}

	set(&input.Name, fields.Name)
	set(&input.Email, fields.Email)
	set(&input.Phone, fields.Phone)
	set(&input.Departure, fields.Departure)
	set(&input.Destination, fields.Destination)
	set(&input.Time, fields.Time)
	set(&input.Seat, fields.Seat)
	set(&input.Screenshot, fields.Screenshot)
	set(&input.WhatsApp, fields.WhatsApp)
	set(&input.Instagram, fields.Instagram)
	set(&input.Facebook, fields.Facebook)

	if fields.Gender != "" {
		gender, err := market.ParseGender(fields.Gender)
		problems = append(problems, err)
		input.Gender = gender
	}
	if fields.Age != "" {
		age, err := strconv.Atoi(strings.TrimSpace(fields.Age))
		if err != nil {
			problems = append(problems, fmt.Errorf("invalid age %q", fields.Age))
		}
		input.Age = market.Age(age)
	}
	if fields.Date != "" {
		date, err := market.ParseDate(fields.Date)
		problems = append(problems, err)
		input.Date = date
	}
	if fields.Class != "" {
		class, err := market.ParseClass(fields.Class)
		problems = append(problems, err)
		input.Class = class
	}
	if fields.Price != "" {
		price, err := decimal.NewFromString(strings.TrimPrefix(strings.TrimSpace(fields.Price), "$"))
		if err != nil {
			problems = append(problems, fmt.Errorf("invalid price %q", fields.Price))
		}
		input.Price = price
	}
	return errors.Join(problems...)
}

// prepare applies fields to input and validates the result, so that a
// bad listing never reaches the backend.
func (fields *TicketFlags) prepare(input market.TicketInput) (market.TicketInput, error) {
	parseErr := fields.apply(&input)
	if err := errors.Join(parseErr, input.Validate()); err != nil {
		return market.TicketInput{}, cli.Validation("%w", err)
	}
	return input, nil
}

type createParams struct {
	cli.ConfigFlag
	cli.JSONOutput
	TicketFlags
}

func createCommand() *cli.Command {
	var params createParams
	return &cli.Command{
		Name:    "create",
		Summary: "List a ticket for sale",
		Description: `List a ticket. Seat, time, class, and the contact links default to
the "defaults" section of the config file; the seller email defaults
to the signed-in account and the date to today. A listing that
duplicates one of yours is rejected.`,
		Examples: []cli.Example{
			{
				Description: "Sell an economy seat to Rome",
				Command:     "tripswap tickets create --name 'Asha Rao' --phone 5551234 --from Paris --to Rome --date 2026-11-02 --time 08:15 --seat 14C --price 120",
			},
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
			if err := environment.RequireSession(); err != nil {
				return err
			}

			base := environment.Config.Defaults.Input()
			base.Email = environment.Session.Email()
			base.Date = market.DateOf(clock.Today(clock.Real()))
			input, err := params.prepare(base)
			if err != nil {
				return err
			}

			created, err := environment.Client.CreateTicket(ctx, input)
			if err != nil {
				return cli.FromAPI(err, apiclient.CreateFailedMessage)
			}
			logger.Info("ticket listed", "id", created.ID, "route", created.Route())
			if done, err := params.EmitJSON(cli.Output(ctx), created); done {
				return err
			}
			fmt.Fprintf(cli.Output(ctx), "Listed %s on %s as %s.\n", created.Route(), created.Date.Display(), created.ID)
			return nil
		},
	}
}

type updateParams struct {
	cli.ConfigFlag
	cli.JSONOutput
	TicketFlags
}

func updateCommand() *cli.Command {
	var params updateParams
	return &cli.Command{
		Name:    "update",
		Summary: "Change one of your listings",
		Usage:   "tripswap tickets update <id> [flags]",
		Description: `Change the given fields of one of your listings; the rest keep
their current values.`,
		Examples: []cli.Example{
			{Description: "Drop the price", Command: "tripswap tickets update 6650f1c2 --price 95"},
		},
		Params: func() any { return &params },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) != 1 {
				return cli.Validation("usage: tripswap tickets update <id> [flags]")
			}
			id := args[0]
			if params.TicketFlags.empty() {
				return cli.Validation("nothing to change").WithHint("run 'tripswap tickets update --help' for the settable fields")
			}

			environment, err := cli.Connect(params.ConfigPath, logger)
			if err != nil {
				return err
			}
			defer environment.Close()
			if err := environment.RequireSession(); err != nil {
				return err
			}

			mine, err := environment.Client.MyTickets(ctx)
			if err != nil {
				return cli.FromAPI(err, apiclient.FetchFailedMessage)
			}
			var collection listing.Collection
			collection.Replace(mine)
			current, ok := collection.Get(id)
			if !ok {
				return cli.NotFound("you have no ticket %q", id).WithHint("run 'tripswap tickets mine' to see your listings")
			}

			input, err := params.prepare(current.Input())
			if err != nil {
				return err
			}
			updated, err := environment.Client.UpdateTicket(ctx, id, input)
			if err != nil {
				return cli.FromAPI(err, apiclient.UpdateFailedMessage)
			}
			logger.Info("ticket updated", "id", updated.ID)
			if done, err := params.EmitJSON(cli.Output(ctx), updated); done {
				return err
			}
			fmt.Fprintf(cli.Output(ctx), "Updated %s.\n", updated.ID)
			return nil
		},
	}
}

type deleteParams struct {
	cli.ConfigFlag
}

func deleteCommand() *cli.Command {
	var params deleteParams
	return &cli.Command{
		Name:    "delete",
		Summary: "Remove one of your listings",
		Usage:   "tripswap tickets delete <id> [flags]",
		Params:  func() any { return &params },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) != 1 {
				return cli.Validation("usage: tripswap tickets delete <id>")
			}
			environment, err := cli.Connect(params.ConfigPath, logger)
			if err != nil {
				return err
			}
			defer environment.Close()
			if err := environment.RequireSession(); err != nil {
				return err
			}

			if err := environment.Client.DeleteTicket(ctx, args[0]); err != nil {
				return cli.FromAPI(err, apiclient.DeleteFailedMessage)
			}
			logger.Info("ticket deleted", "id", args[0])
			fmt.Fprintf(cli.Output(ctx), "Deleted %s.\n", args[0])
			return nil
		},
	}
}
