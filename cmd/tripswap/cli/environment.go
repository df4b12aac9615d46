// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/bureau-foundation/tripswap/lib/apiclient"
	"github.com/bureau-foundation/tripswap/lib/config"
	"github.com/bureau-foundation/tripswap/lib/session"
)

// ConfigFlag adds --config to a params struct by embedding.
type ConfigFlag struct {
	ConfigPath string `json:"-" flag:"config" desc:"config file (default: $TRIPSWAP_CONFIG, then built-in defaults)"`
}

// Environment is everything a command needs to talk to the
// marketplace: the loaded configuration, the persisted session, and a
// client bound to both. Close it when the command finishes so request
// metrics reach the configured textfile.
type Environment struct {
	Config  *config.Config
	Session *session.Session
	Client  *apiclient.Client
	Logger  *slog.Logger

	registry *prometheus.Registry
}

// Connect loads configuration from configPath (or TRIPSWAP_CONFIG),
// opens the session file, and builds the API client.
func Connect(configPath string, logger *slog.Logger) (*Environment, error) {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	return Open(cfg, logger)
}

// Open builds an Environment from an already loaded configuration.
// The client logs through logger.
func Open(cfg *config.Config, logger *slog.Logger) (*Environment, error) {
	sess, err := session.Open(session.NewFileStore(cfg.Session.File))
	if err != nil {
		return nil, Internal("opening session: %w", err)
	}

	registry := prometheus.NewRegistry()
	client, err := apiclient.New(apiclient.Config{
		BaseURL: cfg.API.BaseURL,
		Session: sess,
		Timeout: cfg.API.Timeout.Std(),
		Logger:  logger,
		Metrics: apiclient.NewMetrics(registry),
	})
	if err != nil {
		return nil, Validation("%w", err)
	}

	return &Environment{
		Config:   cfg,
		Session:  sess,
		Client:   client,
		Logger:   logger,
		registry: registry,
	}, nil
}

// LoadConfig reads ./.env, then the config file, and validates the
// result.
func LoadConfig(configPath string) (*config.Config, error) {
	if err := config.LoadDotEnv(); err != nil {
		return nil, Validation("%w", err)
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, Validation("%w", err).WithHint("check --config or TRIPSWAP_CONFIG")
	}
	if err := cfg.Validate(); err != nil {
		return nil, Validation("invalid configuration: %w", err)
	}
	return cfg, nil
}

// RequireSession fails with an unauthorized error when no one is
// signed in, before any request is made.
func (environment *Environment) RequireSession() error {
	if !environment.Session.Authenticated() {
		return Unauthorized("not signed in")
	}
	return nil
}

// Close writes the request metrics to metrics.textfile when one is
// configured. A failed export is logged, not returned.
func (environment *Environment) Close() {
	path := environment.Config.Metrics.Textfile
	if path == "" {
		return
	}
	if err := prometheus.WriteToTextfile(path, environment.registry); err != nil {
		environment.Logger.Warn("metrics export failed", "path", path, "error", err)
	}
}
