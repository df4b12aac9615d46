// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package account

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bureau-foundation/tripswap/cmd/tripswap/cli"
	"github.com/bureau-foundation/tripswap/lib/apiclient"
	"github.com/bureau-foundation/tripswap/lib/market"
)

const signupFailedHint = "the email may already be registered; try 'tripswap login'"

type signupParams struct {
	cli.ConfigFlag
	Name         string `json:"name" flag:"name" desc:"display name (required)"`
	Email        string `json:"email" flag:"email" desc:"account email (required)"`
	Phone        string `json:"phone" flag:"phone" desc:"contact phone number (required)"`
	Gender       string `json:"gender" flag:"gender" desc:"male, female, or other (required)"`
	PasswordFile string `json:"-" flag:"password-file" desc:"read the password from this file instead of prompting"`
}

// SignupCommand returns the "signup" command.
func SignupCommand() *cli.Command {
	var params signupParams
	return &cli.Command{
		Name:    "signup",
		Summary: "Create an account",
		Description: `Create a marketplace account. On a terminal the password is
prompted for twice; with --password-file it is read once and used for
both fields. Sign in afterwards with 'tripswap login'.`,
		Examples: []cli.Example{
			{
				Description: "Create an account",
				Command:     "tripswap signup --name 'Asha Rao' --email asha@example.com --phone 5551234 --gender female",
			},
		},
		Params: func() any { return &params },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) > 0 {
				return cli.Validation("unexpected argument: %s", args[0])
			}

			password, err := cli.ReadPassword("Password: ", params.PasswordFile)
			if err != nil {
				return err
			}
			defer password.Close()

			confirm := password.String()
			if params.PasswordFile == "" && cli.Interactive() {
				confirmation, err := cli.ReadPassword("Confirm password: ", "")
				if err != nil {
					return err
				}
				defer confirmation.Close()
				confirm = confirmation.String()
			}

			request := market.SignupRequest{
				Name:            params.Name,
				Email:           params.Email,
				Phone:           params.Phone,
				Gender:          market.Gender(params.Gender),
				Password:        password.String(),
				ConfirmPassword: confirm,
			}
			if gender, err := market.ParseGender(params.Gender); err == nil {
				request.Gender = gender
			}
			if err := request.Validate(); err != nil {
				return cli.Validation("%w", err)
			}

			environment, err := cli.Connect(params.ConfigPath, logger)
			if err != nil {
				return err
			}
			defer environment.Close()

			if err := environment.Client.Signup(ctx, request); err != nil {
				toolErr := cli.FromAPI(err, apiclient.SignupFailedMessage)
				if toolErr.Category == cli.CategoryValidation || toolErr.Category == cli.CategoryInternal {
					toolErr.WithHint(signupFailedHint)
				}
				return toolErr
			}
			logger.Info("account created", "email", request.Email)
			fmt.Fprintf(cli.Output(ctx), "Account created for %s. Run 'tripswap login %s' to sign in.\n", request.Email, request.Email)
			return nil
		},
	}
}
