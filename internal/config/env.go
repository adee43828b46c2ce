// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// envPrefix namespaces every variable read by [parseEnv].
const envPrefix = "LOWBOY_"

// parseEnv populates cfg from LOWBOY_* environment variables using the
// caarlos0/env library, e.g. LOWBOY_DATABASE_URL and LOWBOY_SESSION_KEY.
func parseEnv(cfg any) error {
	err := env.ParseWithOptions(cfg, env.Options{Prefix: envPrefix})
	if err != nil {
		return fmt.Errorf("error getting env configs: %w", err)
	}

	return nil
}
