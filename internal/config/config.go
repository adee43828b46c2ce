// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/base64"
	"strings"
)

// StructuredConfig is the top-level configuration of a lowboy application.
//
// Struct tags:
//   - envPrefix is the prefix applied to nested env lookups (caarlos0/env), on
//     top of the global LOWBOY_ prefix.
//   - env       is the environment variable name for scalar fields.
type StructuredConfig struct {
	// Database selects and sizes the connection pool.
	Database Database `envPrefix:"DATABASE_"`

	// Session holds the cookie signing key and cookie flags.
	Session Session `envPrefix:"SESSION_"`

	// Server holds the listen address.
	Server Server

	// OAuthProviders lists the identity providers offered on the login page.
	// They are only read from the YAML file.
	OAuthProviders []OAuthProvider

	// Mailer is a stub: it is carried into the application context but no
	// mail is sent.
	Mailer Mailer `envPrefix:"MAILER_"`

	// FilePath is the YAML file the configuration was read from.
	FilePath string `env:"CONFIG"`
}

// Database configures the relational store.
type Database struct {
	// URL is a sqlite path or sqlite:// url, or a postgres:// url.
	URL string `env:"URL"`

	// PoolSize caps the number of open connections.
	PoolSize int `env:"POOL_SIZE"`
}

// Session configures the session cookie.
type Session struct {
	// Key is the base64 encoded cookie signing key.
	Key string `env:"KEY"`

	// Secure sets the Secure attribute on the session cookie.
	Secure bool `env:"SECURE"`
}

// Server configures the HTTP listener.
type Server struct {
	HTTPAddress string `env:"HTTP_ADDRESS"`
}

// OAuthProvider describes one authorization-code identity provider. Known
// provider names (github, discord) fill in missing urls and scopes.
type OAuthProvider struct {
	Name         string   `yaml:"name"`
	ClientID     string   `yaml:"client_id"`
	ClientSecret string   `yaml:"client_secret"`
	AuthURL      string   `yaml:"auth_url,omitempty"`
	TokenURL     string   `yaml:"token_url,omitempty"`
	UserInfoURL  string   `yaml:"user_info_url,omitempty"`
	RedirectURL  string   `yaml:"redirect_url,omitempty"`
	Scopes       []string `yaml:"scopes,omitempty"`
}

// Mailer holds SMTP credentials.
type Mailer struct {
	SMTPRelay    string `env:"SMTP_RELAY" yaml:"smtp_relay"`
	SMTPUsername string `env:"SMTP_USERNAME" yaml:"smtp_username"`
	SMTPPassword string `env:"SMTP_PASSWORD" yaml:"smtp_password"`
}

// Enabled reports whether a relay is configured.
func (m Mailer) Enabled() bool {
	return m.SMTPRelay != ""
}

// SessionKey decodes the configured signing key. It returns nil when no key
// is configured.
func (cfg *StructuredConfig) SessionKey() ([]byte, error) {
	if cfg.Session.Key == "" {
		return nil, nil
	}

	key, err := base64.StdEncoding.DecodeString(strings.TrimSpace(cfg.Session.Key))
	if err != nil {
		return nil, err
	}
	return key, nil
}

// Load assembles the configuration from the environment, the parsed command
// line flags and the YAML file, then fills defaults and validates the result.
func Load(flags *StructuredConfig) (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withConfig(flags).
		withYAML().
		withDefaults().
		build()
}
