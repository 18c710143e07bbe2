// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Boletapp Labs

package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// parseEnv fills cfg from the process environment. The mapping follows the
// `env` and `envPrefix` tags declared on [StructuredConfig] and its nested
// types.
func parseEnv(cfg any) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("parse env config: %w", err)
	}

	return nil
}
