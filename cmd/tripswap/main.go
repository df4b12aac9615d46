// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bureau-foundation/tripswap/cmd/tripswap/cli"
	"github.com/bureau-foundation/tripswap/cmd/tripswap/commands"
	"github.com/bureau-foundation/tripswap/lib/config"
)

func main() {
	if err := run(); err != nil {
		os.Exit(report(err))
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// The command logger is built before any command has parsed
	// --config, so it follows TRIPSWAP_CONFIG and falls back to the
	// defaults when that cannot be read.
	level, format := "info", "auto"
	if err := config.LoadDotEnv(); err == nil {
		if cfg, err := config.Load(""); err == nil {
			level, format = cfg.Log.Level, cfg.Log.Format
		}
	}
	logger := cli.NewCommandLogger(level, format)

	return commands.Root().Execute(ctx, os.Args[1:], logger)
}

// report prints err and returns the exit status. Commands that already
// wrote their output return an ExitError, which is not printed.
func report(err error) int {
	var exitErr *cli.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	var toolErr *cli.ToolError
	if errors.As(err, &toolErr) {
		if toolErr.Hint != "" {
			fmt.Fprintf(os.Stderr, "hint: %s\n", toolErr.Hint)
		}
		return toolErr.ExitCode()
	}
	return 1
}
