// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config loads the tripswap client configuration.
//
// Configuration comes from one file named by the --config flag or the
// TRIPSWAP_CONFIG environment variable. Without either, [Default]
// applies unchanged. Files ending in .json or .jsonc are parsed as
// JSON with comments and trailing commas; anything else is YAML.
//
// The file may carry development, staging, and production sections
// that override base values when [Config].Environment matches.
//
// After loading, ${VAR} and ${VAR:-default} patterns in string fields
// are expanded from the process environment. [LoadDotEnv] can seed the
// environment from a .env file first, so a checkout can point the
// client at a local backend without editing the config file. No
// environment variable overrides a config value except through this
// expansion.
package config
