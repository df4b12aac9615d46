// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"log/slog"
	"os"

	"github.com/shopspring/decimal"

	"github.com/bureau-foundation/tripswap/cmd/tripswap/cli"
	"github.com/bureau-foundation/tripswap/lib/marketui"
)

type browseParams struct {
	cli.ConfigFlag
	LogOutput string `json:"-" flag:"log-output" desc:"write JSON log records to this file (default: log.file)"`
}

// BrowseCommand returns the "browse" command, which runs the
// interactive marketplace.
func BrowseCommand() *cli.Command {
	var params browseParams
	return &cli.Command{
		Name:    "browse",
		Summary: "Open the interactive marketplace",
		Description: `Open the full-screen marketplace: search trips, filter by price,
class, and seller gender, open a listing's details and contact links,
sell a ticket, manage your listings, and edit your profile.

Starts on the login screen when no session is saved. Warnings and
errors appear in the status bar; --log-output (or log.file) also
captures every record as JSON lines.`,
		Params: func() any { return &params },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) > 0 {
				return cli.Validation("unexpected argument: %s", args[0])
			}

			cfg, err := cli.LoadConfig(params.ConfigPath)
			if err != nil {
				return err
			}

			// Nothing may write to stderr while the alternate screen is
			// up, so the client and the screens log through the TUI
			// handler and the optional file.
			tuiHandler := marketui.NewTUILogHandler(slog.LevelWarn)
			backgroundLogger := slog.New(tuiHandler)
			logOutput := params.LogOutput
			if logOutput == "" {
				logOutput = cfg.Log.File
			}
			if logOutput != "" {
				fileHandler, closeFile, err := openFileLogHandler(logOutput, cli.ParseLevel(cfg.Log.Level))
				if err != nil {
					return cli.Validation("cannot open log file %s: %w", logOutput, err)
				}
				defer closeFile()
				backgroundLogger = slog.New(fanoutHandler{tuiHandler, fileHandler})
			}

			environment, err := cli.Open(cfg, backgroundLogger)
			if err != nil {
				return err
			}
			defer environment.Close()

			return marketui.Run(marketui.Options{
				Client:        environment.Client,
				Context:       ctx,
				RedirectDelay: cfg.UI.RedirectDelay.Std(),
				PriceCeiling:  decimal.NewFromFloat(cfg.UI.PriceCeiling),
				Defaults:      cfg.Defaults.Input(),
				Logger:        backgroundLogger,
			}, tuiHandler)
		},
	}
}

func openFileLogHandler(path string, level slog.Level) (slog.Handler, func(), error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, err
	}
	handler := slog.NewJSONHandler(file, &slog.HandlerOptions{Level: level})
	return handler, func() { file.Close() }, nil
}

// fanoutHandler sends each record to every handler enabled for its
// level.
type fanoutHandler []slog.Handler

func (handlers fanoutHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, handler := range handlers {
		if handler.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (handlers fanoutHandler) Handle(ctx context.Context, record slog.Record) error {
	for _, handler := range handlers {
		if handler.Enabled(ctx, record.Level) {
			if err := handler.Handle(ctx, record.Clone()); err != nil {
				return err
			}
		}
	}
	return nil
}

func (handlers fanoutHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	derived := make(fanoutHandler, len(handlers))
	for index, handler := range handlers {
		derived[index] = handler.WithAttrs(attrs)
	}
	return derived
}

func (handlers fanoutHandler) WithGroup(name string) slog.Handler {
	derived := make(fanoutHandler, len(handlers))
	for index, handler := range handlers {
		derived[index] = handler.WithGroup(name)
	}
	return derived
}
