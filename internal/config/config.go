// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Boletapp Labs

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the gastify
// sync engine. It aggregates all sub-configurations and is populated by
// merging values from environment variables, command-line flags, and an
// optional JSON file.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// Auth holds JWT token parameters used for actor authentication.
	Auth Auth `envPrefix:"AUTH_"`

	// Storage holds configuration for the server-side persistence backend.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds network address and timeout settings for the HTTP server.
	Server Server `envPrefix:"SERVER_"`

	// Sync holds the protocol knobs: retention window, page cap, lookback
	// window, and the client cooldown policy.
	Sync Sync `envPrefix:"SYNC_"`

	// Adapter holds settings for the client-side server adapter.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Workers holds configuration for background worker processes.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// Auth holds JWT token lifecycle settings.
type Auth struct {
	// TokenSignKey is the secret key used to sign and verify JWT tokens.
	// Must be kept confidential.
	// Env: AUTH_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the "iss" claim embedded in every issued JWT token.
	// Env: AUTH_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// TokenDuration specifies how long a JWT token remains valid after
	// issuance (e.g. "1h", "30m").
	// Env: AUTH_TOKEN_DURATION
	TokenDuration time.Duration `env:"TOKEN_DURATION"`
}

// Storage groups the configuration for the server persistence backend.
type Storage struct {
	// DB holds the relational database connection settings.
	DB DBConfig `envPrefix:"DB_"`
}

// DBConfig contains database connection settings.
type DBConfig struct {
	// DSN is the PostgreSQL connection string.
	// Env: STORAGE_DB_DSN
	DSN string `env:"DSN"`
}

// Server holds network settings for the HTTP server.
type Server struct {
	// HTTPAddress is the host:port the HTTP server listens on.
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds the handling time of a single request.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Sync carries the protocol parameters shared by server and client.
type Sync struct {
	// RetentionWindow is how long changelog entries are kept before the
	// pruning worker deletes them. Incremental sync from a checkpoint older
	// than this window is refused.
	// Env: SYNC_RETENTION_WINDOW
	RetentionWindow time.Duration `env:"RETENTION_WINDOW"`

	// PageLimit caps how many changelog entries one incremental sync run
	// fetches. Exceeding it yields a partial-truncated outcome.
	// Env: SYNC_PAGE_LIMIT
	PageLimit int `env:"PAGE_LIMIT"`

	// LookbackWindow bounds how far back a full reconciliation queries the
	// transaction store. Older history is permanently out of reach by design.
	// Env: SYNC_LOOKBACK_WINDOW
	LookbackWindow time.Duration `env:"LOOKBACK_WINDOW"`

	// CooldownSteps is the escalating wait imposed between repeated
	// user-triggered syncs of the same group.
	// Env: SYNC_COOLDOWN_STEPS (comma-separated durations)
	CooldownSteps []time.Duration `env:"COOLDOWN_STEPS" envSeparator:","`

	// CooldownReset is the quiet period after which the escalation level
	// drops back to zero.
	// Env: SYNC_COOLDOWN_RESET
	CooldownReset time.Duration `env:"COOLDOWN_RESET"`
}

// Adapter holds client transport settings.
type Adapter struct {
	// HTTPAddress is the base URL of the sync server.
	// Env: ADAPTER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout is the default timeout for outbound client requests.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Workers holds background worker settings.
type Workers struct {
	// PruneInterval defines how often the retention worker deletes expired
	// changelog entries.
	// Env: WORKERS_PRUNE_INTERVAL
	PruneInterval time.Duration `env:"PRUNE_INTERVAL"`

	// PollInterval defines how often the client poll job checks groups for
	// pending entries.
	// Env: WORKERS_POLL_INTERVAL
	PollInterval time.Duration `env:"POLL_INTERVAL"`
}

// Protocol defaults, applied by normalize when a knob is left unset.
const (
	DefaultRetentionWindow = 30 * 24 * time.Hour
	DefaultPageLimit       = 10_000
	DefaultLookbackWindow  = 2 * 365 * 24 * time.Hour
	DefaultCooldownReset   = time.Hour
	DefaultPruneInterval   = time.Hour
	DefaultPollInterval    = time.Minute
)

// DefaultCooldownSteps is the escalation ladder for rapid repeated syncs.
func DefaultCooldownSteps() []time.Duration {
	return []time.Duration{30 * time.Second, 2 * time.Minute, 10 * time.Minute}
}

// normalize fills unset sync/worker knobs with their defaults.
func (cfg *StructuredConfig) normalize() {
	if cfg.Sync.RetentionWindow <= 0 {
		cfg.Sync.RetentionWindow = DefaultRetentionWindow
	}
	if cfg.Sync.PageLimit <= 0 {
		cfg.Sync.PageLimit = DefaultPageLimit
	}
	if cfg.Sync.LookbackWindow <= 0 {
		cfg.Sync.LookbackWindow = DefaultLookbackWindow
	}
	if len(cfg.Sync.CooldownSteps) == 0 {
		cfg.Sync.CooldownSteps = DefaultCooldownSteps()
	}
	if cfg.Sync.CooldownReset <= 0 {
		cfg.Sync.CooldownReset = DefaultCooldownReset
	}
	if cfg.Workers.PruneInterval <= 0 {
		cfg.Workers.PruneInterval = DefaultPruneInterval
	}
	if cfg.Workers.PollInterval <= 0 {
		cfg.Workers.PollInterval = DefaultPollInterval
	}
}

// GetStructuredConfig loads, merges, normalizes and validates the full
// configuration from all sources.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		build()
}
