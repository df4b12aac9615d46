// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package account implements the sign-in, sign-up, and profile
// commands.
package account

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/bureau-foundation/tripswap/cmd/tripswap/cli"
	"github.com/bureau-foundation/tripswap/lib/apiclient"
	"github.com/bureau-foundation/tripswap/lib/market"
)

type loginParams struct {
	cli.ConfigFlag
	PasswordFile string `json:"-" flag:"password-file" desc:"read the password from this file (\"-\" for stdin) instead of prompting"`
}

// LoginCommand returns the "login" command.
func LoginCommand() *cli.Command {
	var params loginParams
	return &cli.Command{
		Name:    "login",
		Summary: "Sign in and save the session",
		Description: `Sign in with an email and password. The bearer token is saved to
the session file (session.file, TRIPSWAP_SESSION_FILE, or the XDG
config directory) and used by every other command.

The password is prompted for with echo off. In scripts, pass
--password-file or pipe the password on stdin.`,
		Usage: "tripswap login <email> [flags]",
		Examples: []cli.Example{
			{Description: "Sign in interactively", Command: "tripswap login asha@example.com"},
			{Description: "Sign in from a script", Command: "tripswap login asha@example.com --password-file ~/.tripswap-password"},
		},
		Params: func() any { return &params },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) != 1 {
				return cli.Validation("usage: tripswap login <email>")
			}
			email := strings.TrimSpace(args[0])

			password, err := cli.ReadPassword("Password: ", params.PasswordFile)
			if err != nil {
				return err
			}
			defer password.Close()

			credentials := market.Credentials{Email: email, Password: password.String()}
			if err := credentials.Validate(); err != nil {
				return cli.Validation("%w", err)
			}

			environment, err := cli.Connect(params.ConfigPath, logger)
			if err != nil {
				return err
			}
			defer environment.Close()

			response, err := environment.Client.Login(ctx, credentials)
			if err != nil {
				return cli.FromAPI(err, apiclient.LoginFailedMessage)
			}
			if err := environment.Session.SignIn(response.Token, email); err != nil {
				return cli.Internal("%w", err)
			}
			logger.Info("signed in", "email", email)
			fmt.Fprintf(cli.Output(ctx), "Signed in as %s.\n", email)
			return nil
		},
	}
}

// LogoutCommand returns the "logout" command.
func LogoutCommand() *cli.Command {
	var params cli.ConfigFlag
	return &cli.Command{
		Name:    "logout",
		Summary: "Sign out and clear the saved session",
		Description: `Tell the backend to end the session and remove the saved token.
The local session is cleared even when the backend cannot be reached.`,
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

			if !environment.Session.Authenticated() {
				fmt.Fprintln(cli.Output(ctx), "Not signed in.")
				return nil
			}
			if err := environment.Client.Logout(ctx); err != nil {
				logger.Warn("backend logout failed; local session cleared anyway", "error", err)
			}
			fmt.Fprintln(cli.Output(ctx), "Signed out.")
			return nil
		},
	}
}
