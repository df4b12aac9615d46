// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package account

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"text/tabwriter"

	"github.com/bureau-foundation/tripswap/cmd/tripswap/cli"
	"github.com/bureau-foundation/tripswap/lib/market"
)

const (
	profileLoadFailedMessage = "Failed to load profile."
	profileSaveFailedMessage = "Failed to update profile."
)

// ProfileCommand returns the "profile" subcommand group.
func ProfileCommand() *cli.Command {
	return &cli.Command{
		Name:    "profile",
		Summary: "Show or edit your profile",
		Subcommands: []*cli.Command{
			profileShowCommand(),
			profileEditCommand(),
		},
	}
}

type profileShowParams struct {
	cli.ConfigFlag
	cli.JSONOutput
}

func profileShowCommand() *cli.Command {
	var params profileShowParams
	return &cli.Command{
		Name:    "show",
		Summary: "Show the signed-in account",
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

			profile, err := environment.Client.Profile(ctx)
			if err != nil {
				return cli.FromAPI(err, profileLoadFailedMessage)
			}
			if done, err := params.EmitJSON(cli.Output(ctx), profile); done {
				return err
			}
			return writeProfile(cli.Output(ctx), profile)
		},
	}
}

type profileEditParams struct {
	cli.ConfigFlag
	cli.JSONOutput
	Name   string `json:"name" flag:"name" desc:"new display name"`
	Phone  string `json:"phone" flag:"phone" desc:"new phone number"`
	Gender string `json:"gender" flag:"gender" desc:"male, female, or other"`
	Image  string `json:"image" flag:"image" desc:"profile picture URL"`
}

func profileEditCommand() *cli.Command {
	var params profileEditParams
	return &cli.Command{
		Name:    "edit",
		Summary: "Change name, phone, gender, or picture",
		Description: `Update the signed-in account. Only the flags given are changed; the
rest keep their current values. The email address cannot be changed.`,
		Examples: []cli.Example{
			{Description: "Change the phone number", Command: "tripswap profile edit --phone 5559876"},
		},
		Params: func() any { return &params },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) > 0 {
				return cli.Validation("unexpected argument: %s", args[0])
			}
			if params.Name == "" && params.Phone == "" && params.Gender == "" && params.Image == "" {
				return cli.Validation("nothing to change").WithHint("pass at least one of --name, --phone, --gender, --image")
			}

			environment, err := cli.Connect(params.ConfigPath, logger)
			if err != nil {
				return err
			}
			defer environment.Close()
			if err := environment.RequireSession(); err != nil {
				return err
			}

			current, err := environment.Client.Profile(ctx)
			if err != nil {
				return cli.FromAPI(err, profileLoadFailedMessage)
			}
			update := current.Update()
			if params.Name != "" {
				update.Name = params.Name
			}
			if params.Phone != "" {
				update.Phone = params.Phone
			}
			if params.Gender != "" {
				gender, err := market.ParseGender(params.Gender)
				if err != nil {
					return cli.Validation("%w", err)
				}
				update.Gender = gender
			}
			if params.Image != "" {
				update.ProfileImage = params.Image
			}
			if err := update.Validate(); err != nil {
				return cli.Validation("%w", err)
			}

			updated, err := environment.Client.EditProfile(ctx, update)
			if err != nil {
				return cli.FromAPI(err, profileSaveFailedMessage)
			}
			logger.Info("profile updated")
			if done, err := params.EmitJSON(cli.Output(ctx), updated); done {
				return err
			}
			fmt.Fprintln(cli.Output(ctx), "Profile updated.")
			return writeProfile(cli.Output(ctx), updated)
		},
	}
}

func writeProfile(w io.Writer, profile market.Profile) error {
	writer := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(writer, "Name:\t%s\n", profile.Name)
	fmt.Fprintf(writer, "Email:\t%s\n", profile.Email)
	fmt.Fprintf(writer, "Phone:\t%s\n", profile.Phone)
	if profile.Gender != "" {
		fmt.Fprintf(writer, "Gender:\t%s\n", profile.Gender.Label())
	}
	if since := profile.MemberSince(); since != "" {
		fmt.Fprintf(writer, "Member since:\t%s\n", since)
	}
	fmt.Fprintf(writer, "Tickets sold:\t%d\n", profile.TicketsSold)
	fmt.Fprintf(writer, "Tickets bought:\t%d\n", profile.TicketsBought)
	if profile.ProfileImage != "" {
		fmt.Fprintf(writer, "Picture:\t%s\n", profile.ProfileImage)
	}
	return writer.Flush()
}
