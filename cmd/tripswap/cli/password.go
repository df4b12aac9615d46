// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/bureau-foundation/tripswap/lib/secret"
)

// ReadPassword reads a password from passwordFile, or prompts on the
// terminal with echo off when passwordFile is "" or "-". The caller
// closes the returned buffer.
func ReadPassword(prompt, passwordFile string) (*secret.Buffer, error) {
	if passwordFile != "" && passwordFile != "-" {
		buffer, err := secret.ReadFromPath(passwordFile)
		if err != nil {
			return nil, Validation("reading %s: %w", passwordFile, err)
		}
		return buffer, nil
	}

	if !Interactive() {
		buffer, err := secret.ReadLine(os.Stdin)
		if err != nil {
			return nil, Validation("no terminal for a password prompt and nothing on stdin (use --password-file)")
		}
		return buffer, nil
	}

	fmt.Fprint(os.Stderr, prompt)
	passwordBytes, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return nil, Internal("reading password: %w", err)
	}
	buffer, err := secret.NewFromBytes(passwordBytes)
	secret.Zero(passwordBytes)
	if err != nil {
		return nil, Validation("password is required")
	}
	return buffer, nil
}

// Interactive reports whether stdin is a terminal.
func Interactive() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}
