// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/bureau-foundation/tripswap/lib/market"
)

// Environment represents the deployment the client talks to.
type Environment string

const (
	// Development is a local backend.
	Development Environment = "development"
	// Staging is a pre-production backend.
	Staging Environment = "staging"
	// Production is the live marketplace.
	Production Environment = "production"
)

// Config is the master configuration for the tripswap client.
type Config struct {
	// Environment selects which override section applies.
	Environment Environment `yaml:"environment" json:"environment"`

	// API configures the backend connection.
	API APIConfig `yaml:"api" json:"api"`

	// Session configures token persistence.
	Session SessionConfig `yaml:"session" json:"session"`

	// UI configures the terminal interface.
	UI UIConfig `yaml:"ui" json:"ui"`

	// Log configures structured logging.
	Log LogConfig `yaml:"log" json:"log"`

	// Metrics configures the Prometheus textfile export.
	Metrics MetricsConfig `yaml:"metrics" json:"metrics"`

	// Defaults pre-fill optional fields of the create-ticket form.
	Defaults TicketDefaults `yaml:"defaults" json:"defaults"`

	// Per-environment overrides, applied after the base file is read.
	Development *Overrides `yaml:"development,omitempty" json:"development,omitempty"`
	Staging     *Overrides `yaml:"staging,omitempty" json:"staging,omitempty"`
	Production  *Overrides `yaml:"production,omitempty" json:"production,omitempty"`
}

// Overrides contains the sections that can differ per environment.
type Overrides struct {
	API     *APIConfig     `yaml:"api,omitempty" json:"api,omitempty"`
	UI      *UIConfig      `yaml:"ui,omitempty" json:"ui,omitempty"`
	Log     *LogConfig     `yaml:"log,omitempty" json:"log,omitempty"`
	Metrics *MetricsConfig `yaml:"metrics,omitempty" json:"metrics,omitempty"`
}

// APIConfig configures the backend connection.
type APIConfig struct {
	// BaseURL is the backend origin.
	// Default: ${TRIPSWAP_API_URL:-http://localhost:3000}
	BaseURL string `yaml:"base_url" json:"base_url"`

	// Timeout bounds each request.
	// Default: 15s
	Timeout Duration `yaml:"timeout" json:"timeout"`
}

// SessionConfig configures token persistence.
type SessionConfig struct {
	// File is the session file path. Empty means the standard
	// location (TRIPSWAP_SESSION_FILE, then the XDG config directory).
	File string `yaml:"file" json:"file"`
}

// UIConfig configures the terminal interface.
type UIConfig struct {
	// RedirectDelay is how long the "Redirecting to login..." notice
	// stays up after the backend rejects the token.
	// Default: 1.5s
	RedirectDelay Duration `yaml:"redirect_delay" json:"redirect_delay"`

	// PriceCeiling is the initial position of the price filter,
	// between 0 and 1000.
	// Default: 1000
	PriceCeiling float64 `yaml:"price_ceiling" json:"price_ceiling"`
}

// LogConfig configures structured logging.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	// Default: info
	Level string `yaml:"level" json:"level"`

	// Format is text, json, or auto (text on a terminal, json
	// otherwise).
	// Default: auto
	Format string `yaml:"format" json:"format"`

	// File receives TUI logs as JSON lines. The terminal UI cannot
	// write logs to stderr without corrupting the screen.
	File string `yaml:"file" json:"file"`
}

// MetricsConfig configures the Prometheus textfile export.
type MetricsConfig struct {
	// Textfile, when set, receives the client's request metrics in
	// Prometheus text format when each command exits (the
	// node-exporter textfile collector pattern).
	Textfile string `yaml:"textfile" json:"textfile"`
}

// TicketDefaults are the placeholder values of optional create-form
// fields.
type TicketDefaults struct {
	Seat       string `yaml:"seat" json:"seat"`
	Time       string `yaml:"time" json:"time"`
	Class      string `yaml:"class" json:"class"`
	Screenshot string `yaml:"screenshot" json:"screenshot"`
	WhatsApp   string `yaml:"whatsapp" json:"whatsapp"`
	Instagram  string `yaml:"instagram" json:"instagram"`
	Facebook   string `yaml:"facebook" json:"facebook"`
}

// Default returns the configuration used when no file is given, and
// the base that a file is merged into.
func Default() *Config {
	return &Config{
		Environment: Development,
		API: APIConfig{
			BaseURL: "${TRIPSWAP_API_URL:-http://localhost:3000}",
			Timeout: Duration(15 * time.Second),
		},
		UI: UIConfig{
			RedirectDelay: Duration(1500 * time.Millisecond),
			PriceCeiling:  1000,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "auto",
		},
		Defaults: TicketDefaults{
			Seat:  "Any",
			Time:  "09:00",
			Class: "economy",
		},
	}
}

// Load resolves the config path (explicit path, then TRIPSWAP_CONFIG)
// and loads it. With neither set, the expanded defaults are returned.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv("TRIPSWAP_CONFIG")
	}
	if path == "" {
		cfg := Default()
		cfg.applyEnvironmentOverrides()
		cfg.expandVariables()
		return cfg, nil
	}
	return LoadFile(path)
}

// LoadFile loads configuration from a specific file path.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	if err := cfg.loadFile(path); err != nil {
		return nil, err
	}

	cfg.applyEnvironmentOverrides()
	cfg.expandVariables()

	return cfg, nil
}

// loadFile merges one file into the current config.
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		if err := json.Unmarshal(jsonc.ToJSON(data), c); err != nil {
			return fmt.Errorf("parsing config %s: %w", path, err)
		}
	default:
		if err := yaml.Unmarshal(data, c); err != nil {
			return fmt.Errorf("parsing config %s: %w", path, err)
		}
	}
	return nil
}

// applyEnvironmentOverrides applies the section for c.Environment.
// Non-zero override fields replace base values.
func (c *Config) applyEnvironmentOverrides() {
	var overrides *Overrides
	switch c.Environment {
	case Development:
		overrides = c.Development
	case Staging:
		overrides = c.Staging
	case Production:
		overrides = c.Production
	}
	if overrides == nil {
		return
	}

	if overrides.API != nil {
		setString(&c.API.BaseURL, overrides.API.BaseURL)
		if overrides.API.Timeout != 0 {
			c.API.Timeout = overrides.API.Timeout
		}
	}
	if overrides.UI != nil {
		if overrides.UI.RedirectDelay != 0 {
			c.UI.RedirectDelay = overrides.UI.RedirectDelay
		}
		if overrides.UI.PriceCeiling != 0 {
			c.UI.PriceCeiling = overrides.UI.PriceCeiling
		}
	}
	if overrides.Log != nil {
		setString(&c.Log.Level, overrides.Log.Level)
		setString(&c.Log.Format, overrides.Log.Format)
		setString(&c.Log.File, overrides.Log.File)
	}
	if overrides.Metrics != nil {
		setString(&c.Metrics.Textfile, overrides.Metrics.Textfile)
	}
}

func setString(target *string, value string) {
	if value != "" {
		*target = value
	}
}

// expandVariables expands ${VAR} and ${VAR:-default} in string fields.
func (c *Config) expandVariables() {
	for _, field := range []*string{
		&c.API.BaseURL,
		&c.Session.File,
		&c.Log.File,
		&c.Metrics.Textfile,
		&c.Defaults.Screenshot,
		&c.Defaults.WhatsApp,
		&c.Defaults.Instagram,
		&c.Defaults.Facebook,
	} {
		*field = expandVars(*field)
	}
}

var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

// expandVars expands ${VAR} and ${VAR:-default} from the environment.
// An unset or empty variable yields the default (or "").
func expandVars(s string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if value := os.Getenv(parts[1]); value != "" {
			return value
		}
		return parts[2]
	})
}

// LoadDotEnv sets environment variables from the given .env files (or
// ./.env when none are given). Missing files are skipped. Variables
// already present in the environment are not overwritten.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, path := range paths {
		if err := godotenv.Load(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("loading %s: %w", path, err)
		}
	}
	return nil
}

var (
	logLevels  = []string{"debug", "info", "warn", "error"}
	logFormats = []string{"auto", "text", "json"}
)

// Validate checks the configuration, reporting every problem.
func (c *Config) Validate() error {
	var errs []error

	if c.Environment != Development && c.Environment != Staging && c.Environment != Production {
		errs = append(errs, fmt.Errorf("invalid environment: %s", c.Environment))
	}

	if c.API.BaseURL == "" {
		errs = append(errs, fmt.Errorf("api.base_url is required"))
	} else if parsed, err := url.Parse(c.API.BaseURL); err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		errs = append(errs, fmt.Errorf("api.base_url %q must be an http or https URL", c.API.BaseURL))
	}
	if c.API.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("api.timeout must be positive"))
	}

	if c.UI.RedirectDelay < 0 {
		errs = append(errs, fmt.Errorf("ui.redirect_delay must not be negative"))
	}
	if c.UI.PriceCeiling < 0 || c.UI.PriceCeiling > 1000 {
		errs = append(errs, fmt.Errorf("ui.price_ceiling must be between 0 and 1000, got %v", c.UI.PriceCeiling))
	}

	if !slices.Contains(logLevels, c.Log.Level) {
		errs = append(errs, fmt.Errorf("log.level must be one of: %v", logLevels))
	}
	if !slices.Contains(logFormats, c.Log.Format) {
		errs = append(errs, fmt.Errorf("log.format must be one of: %v", logFormats))
	}

	switch strings.ToLower(c.Defaults.Class) {
	case "", "economy", "business", "first":
	default:
		errs = append(errs, fmt.Errorf("defaults.class must be economy, business, or first"))
	}
	if c.Defaults.Time != "" {
		if _, err := time.Parse("15:04", c.Defaults.Time); err != nil {
			errs = append(errs, fmt.Errorf("defaults.time %q must be HH:MM", c.Defaults.Time))
		}
	}

	return errors.Join(errs...)
}

// Input returns the defaults as a partial ticket for pre-filling a
// create form. Contact and trip fields are left empty.
func (defaults TicketDefaults) Input() market.TicketInput {
	return market.TicketInput{
		Seat:       defaults.Seat,
		Time:       defaults.Time,
		Class:      market.Class(strings.ToLower(defaults.Class)),
		Screenshot: defaults.Screenshot,
		WhatsApp:   defaults.WhatsApp,
		Instagram:  defaults.Instagram,
		Facebook:   defaults.Facebook,
	}
}
