// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// StructuredYAMLConfig is the on-disk shape of the configuration file.
type StructuredYAMLConfig struct {
	DatabaseURL      string          `yaml:"database_url"`
	DatabasePoolSize int             `yaml:"database_pool_size,omitempty"`
	SessionKey       string          `yaml:"session_key,omitempty"`
	SessionSecure    bool            `yaml:"session_secure,omitempty"`
	HTTPAddress      string          `yaml:"http_address,omitempty"`
	OAuthProviders   []OAuthProvider `yaml:"oauth_providers,omitempty"`
	Mailer           *Mailer         `yaml:"mailer,omitempty"`
}

func parseYAML(path string) (*StructuredConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading a yaml file: %w", err)
	}

	var yamlCfg StructuredYAMLConfig
	if err = yaml.Unmarshal(data, &yamlCfg); err != nil {
		return nil, fmt.Errorf("error decoding yaml configs: %w", err)
	}

	cfg := &StructuredConfig{
		Database: Database{
			URL:      yamlCfg.DatabaseURL,
			PoolSize: yamlCfg.DatabasePoolSize,
		},
		Session: Session{
			Key:    yamlCfg.SessionKey,
			Secure: yamlCfg.SessionSecure,
		},
		Server: Server{
			HTTPAddress: yamlCfg.HTTPAddress,
		},
		OAuthProviders: yamlCfg.OAuthProviders,
		FilePath:       path,
	}
	if yamlCfg.Mailer != nil {
		cfg.Mailer = *yamlCfg.Mailer
	}

	return cfg, nil
}
