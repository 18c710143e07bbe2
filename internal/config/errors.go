package config

import "errors"

// Validation errors returned when required configuration groups are
// incomplete or invalid.
var (
	// ErrInvalidSyncConfigs indicates sync protocol knobs that would corrupt
	// the protocol (zero page limit, retention longer than lookback, etc.).
	ErrInvalidSyncConfigs = errors.New("invalid sync configuration")
	// ErrInvalidAdapterConfigs indicates invalid client adapter settings
	// (for example, missing server URL or request timeout).
	ErrInvalidAdapterConfigs = errors.New("invalid adapter configuration")
	// ErrInvalidStorageConfigs indicates invalid client storage settings
	// (for example, empty cache path or unsupported in-memory path).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidWorkerConfigs indicates invalid background worker settings
	// (for example, zero poll interval).
	ErrInvalidWorkerConfigs = errors.New("invalid worker configuration")
)
