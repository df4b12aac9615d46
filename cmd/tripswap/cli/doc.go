// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli is the command framework behind the tripswap binary.
//
// A [Command] is a named node with optional [Command.Subcommands], a
// flag set built either by hand ([Command.Flags]) or from a tagged
// params struct ([Command.Params], see [BindFlags]), and a Run
// function that receives a context and a logger. [Command.Execute]
// parses flags, routes to subcommands, prints help with examples, and
// suggests the nearest command or flag name on a typo (Levenshtein
// distance of at most 3).
//
// Commands report failures as [ToolError] values carrying an
// [ErrorCategory]. [FromAPI] maps marketplace client errors onto those
// categories so scripts can tell "fix your input" from "try again".
// Commands that already printed their own output return [ExitError]
// to set the exit status silently.
package cli
