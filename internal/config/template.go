// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const template = `# lowboy configuration
#
# Every value can be overridden from the environment, e.g. LOWBOY_DATABASE_URL.

# sqlite path, sqlite:// url or postgres:// url.
database_url: "sqlite://lowboy.db"
database_pool_size: 16

# Base64 encoded cookie signing key of at least 64 bytes. Prefer setting
# LOWBOY_SESSION_KEY. A random key is generated on each start when empty,
# which logs every user out on restart.
session_key: ""
# Set to true when served over https.
session_secure: false

http_address: "127.0.0.1:3000"

oauth_providers: []
#  - name: github
#    client_id: ""
#    client_secret: ""
#    redirect_url: "http://localhost:3000/login/oauth"
#  - name: discord
#    client_id: ""
#    client_secret: ""
#    redirect_url: "http://localhost:3000/login/oauth"

# mailer:
#   smtp_relay: ""
#   smtp_username: ""
#   smtp_password: ""
`

// Template returns the default configuration file.
func Template() string {
	return template
}

// DefaultPath returns $XDG_CONFIG_HOME/lowboy/config.yml (or the platform
// equivalent).
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("error resolving user config dir: %w", err)
	}
	return filepath.Join(dir, "lowboy", "config.yml"), nil
}

// Init writes the default configuration to path, or to [DefaultPath] when
// path is empty, and returns the path written. An existing file is never
// overwritten.
func Init(path string) (string, error) {
	if path == "" {
		var err error
		if path, err = DefaultPath(); err != nil {
			return "", err
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("error creating config dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return "", fmt.Errorf("%w: %s", ErrConfigExists, path)
		}
		return "", fmt.Errorf("error creating config file: %w", err)
	}
	defer f.Close()

	if _, err = f.WriteString(template); err != nil {
		return "", fmt.Errorf("error writing config file: %w", err)
	}
	return path, nil
}
