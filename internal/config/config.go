// Package config manages environment variables.
//
// It reads variables from the process environment (optionally seeded
// from a `.env` file), loads them into structured Go types, validates
// that required values are present so the app fails fast on bad config,
// and provides sane defaults for optional blocks.
//
// Env vars use the FITLOG_ prefix with "__" as the nesting delimiter:
//
//	FITLOG_SERVER__PORT   -> server.port   -> Config.Server.Port
//	FITLOG_DATABASE__PATH -> database.path -> Config.Database.Path
package config

import (
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	// Side-effect import: loads a `.env` file into the process env, if
	// one exists, before any env vars are read.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog"
)

// envPrefix is the prefix all fitlog environment variables carry.
const envPrefix = "FITLOG_"

// Config is the root configuration object for the application.
//
// The `koanf:"..."` tags specify where koanf maps values from; the
// `validate:"required"` tags enforce presence via go-playground/validator.
// Observability is a pointer because it is optional; defaults are
// injected at load time when it is absent.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Database      DatabaseConfig       `koanf:"database"`
	Tracker       TrackerConfig        `koanf:"tracker"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds top-level information about the runtime environment,
// used to tag logs/traces and switch behavior based on env.
type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// ServerConfig groups settings for the HTTP server runtime.
// Timeouts are in seconds.
type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"required"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"required"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"required"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins"`
}

// DatabaseConfig contains document store settings.
//
// The store is an embedded badger database; Path is its directory on
// disk. InMemory runs without any files (used by tests). GCInterval is
// how often, in seconds, the value-log garbage collector runs.
type DatabaseConfig struct {
	Path       string `koanf:"path"`
	InMemory   bool   `koanf:"in_memory"`
	GCInterval int    `koanf:"gc_interval"`
}

// TrackerConfig holds behavior switches for the exercise tracker itself.
type TrackerConfig struct {
	// UpsertMissingUsers selects lenient add-exercise semantics: when
	// true, logging an exercise against an unknown user id creates a
	// recordless user with that id instead of failing with not-found.
	// Off by default; the lenient mode exists for compatibility with
	// clients that depend on the historical upsert behavior.
	UpsertMissingUsers bool `koanf:"upsert_missing_users"`

	// StoreTimeout bounds each store operation, in seconds, so a stuck
	// store call fails the request instead of hanging it indefinitely.
	StoreTimeout int `koanf:"store_timeout"`
}

// Load reads configuration from environment variables, unmarshals it
// into Config, validates it, and applies defaults.
//
// Missing or invalid required values are fatal: the process exits
// immediately rather than running half-configured.
func Load() (*Config, error) {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	k := koanf.New(".")

	// Env keys are normalized to koanf's dotted paths: the prefix is
	// stripped, the name lowercased, and "__" becomes the nesting
	// separator so single underscores survive inside key names
	// (FITLOG_TRACKER__UPSERT_MISSING_USERS -> tracker.upsert_missing_users).
	err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, envPrefix)), "__", ".")
	}), nil)
	if err != nil {
		logger.Fatal().Err(err).Msg("Could not load initial env variables.")
	}

	mainConfig := &Config{}

	if err := k.Unmarshal("", mainConfig); err != nil {
		logger.Fatal().Err(err).Msg("Could not unmarshal main config.")
	}

	validate := validator.New()

	if err := validate.Struct(mainConfig); err != nil {
		logger.Fatal().Err(err).Msg("Config validation failed.")
	}

	mainConfig.applyDefaults()

	// Service name and environment are forced so telemetry naming stays
	// consistent regardless of what the env provides.
	mainConfig.Observability.ServiceName = "fitlog"
	mainConfig.Observability.Environment = mainConfig.Primary.Env

	if err := mainConfig.Observability.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid observability config")
	}

	return mainConfig, nil
}

// applyDefaults fills in optional config blocks that were not provided.
func (c *Config) applyDefaults() {
	if c.Database.Path == "" {
		c.Database.Path = "data/fitlog"
	}
	if c.Database.GCInterval <= 0 {
		c.Database.GCInterval = 300
	}
	if c.Tracker.StoreTimeout <= 0 {
		c.Tracker.StoreTimeout = 5
	}
	if c.Observability == nil {
		c.Observability = DefaultObservabilityConfig()
	}
}
