// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Boletapp Labs

package config

import "strings"

// validate checks that the final merged [StructuredConfig] satisfies the
// protocol invariants before it is used at startup.
//
// Server-required fields (DSN, token keys) are checked by the binaries that
// actually need them; here we only reject values that would corrupt the sync
// protocol regardless of role.
func (cfg *StructuredConfig) validate() error {
	if cfg.Sync.PageLimit < 1 {
		return ErrInvalidSyncConfigs
	}
	if cfg.Sync.RetentionWindow <= 0 || cfg.Sync.LookbackWindow <= 0 {
		return ErrInvalidSyncConfigs
	}
	if cfg.Sync.LookbackWindow < cfg.Sync.RetentionWindow {
		// A reconciliation that sees less history than the changelog keeps
		// could not restore what incremental sync would have replayed.
		return ErrInvalidSyncConfigs
	}

	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.Storage.CacheDBPath == "" || strings.Contains(cfg.Storage.CacheDBPath, "memory") {
		return ErrInvalidStorageConfigs
	}

	if cfg.Adapter.HTTPAddress == "" || cfg.Adapter.RequestTimeout == 0 {
		return ErrInvalidAdapterConfigs
	}

	if cfg.Workers.PollInterval == 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}
