// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

func writeTempYAMLConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

// isolateConfigDir points the default config path at an empty directory so
// a developer's own config file never leaks into a test.
func isolateConfigDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("HOME", dir)
	return dir
}

func validSessionKey() string {
	return base64.StdEncoding.EncodeToString([]byte(strings.Repeat("k", 64)))
}

// ─────────────────────────────────────────────
// build
// ─────────────────────────────────────────────

func TestNewConfigBuilder_InitialState(t *testing.T) {
	b := newConfigBuilder()
	require.NotNil(t, b)
	assert.NoError(t, b.err)
	assert.Empty(t, b.configs)
}

func TestBuild_PropagatesBuilderError(t *testing.T) {
	b := newConfigBuilder()
	b.err = assert.AnError

	cfg, err := b.build()
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}

func TestBuild_EarlierSourceWins(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{Database: Database{URL: "env.db"}},
		&StructuredConfig{Database: Database{URL: "file.db", PoolSize: 4}},
	)

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, "env.db", cfg.Database.URL)
	assert.Equal(t, 4, cfg.Database.PoolSize)
}

func TestBuild_FillsProviderDefaults(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{
		Database:       Database{URL: "lowboy.db", PoolSize: 1},
		OAuthProviders: []OAuthProvider{{Name: "github", ClientID: "id", ClientSecret: "secret"}},
	})

	cfg, err := b.build()
	require.NoError(t, err)
	require.Len(t, cfg.OAuthProviders, 1)
	assert.Equal(t, "https://github.com/login/oauth/authorize", cfg.OAuthProviders[0].AuthURL)
	assert.Equal(t, "https://api.github.com/user", cfg.OAuthProviders[0].UserInfoURL)
}

// ─────────────────────────────────────────────
// Load
// ─────────────────────────────────────────────

func TestLoad_DefaultsApplied(t *testing.T) {
	isolateConfigDir(t)
	t.Setenv("LOWBOY_DATABASE_URL", "sqlite://lowboy.db")

	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, "sqlite://lowboy.db", cfg.Database.URL)
	assert.Equal(t, defaultPoolSize, cfg.Database.PoolSize)
	assert.Equal(t, defaultHTTPAddress, cfg.Server.HTTPAddress)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	isolateConfigDir(t)
	path := writeTempYAMLConfig(t, `
database_url: "file.db"
database_pool_size: 8
http_address: "0.0.0.0:8080"
`)
	t.Setenv("LOWBOY_DATABASE_URL", "env.db")
	t.Setenv("LOWBOY_SESSION_KEY", validSessionKey())

	cfg, err := Load(&StructuredConfig{FilePath: path})
	require.NoError(t, err)
	assert.Equal(t, "env.db", cfg.Database.URL)
	assert.Equal(t, 8, cfg.Database.PoolSize)
	assert.Equal(t, "0.0.0.0:8080", cfg.Server.HTTPAddress)
	assert.Equal(t, validSessionKey(), cfg.Session.Key)
}

func TestLoad_ReadsDefaultPathWhenPresent(t *testing.T) {
	dir := isolateConfigDir(t)
	defaultPath, err := DefaultPath()
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(defaultPath, dir))
	require.NoError(t, os.MkdirAll(filepath.Dir(defaultPath), 0o755))
	require.NoError(t, os.WriteFile(defaultPath, []byte(`database_url: "xdg.db"`), 0o600))

	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, "xdg.db", cfg.Database.URL)
	assert.Equal(t, defaultPath, cfg.FilePath)
}

func TestLoad_MissingDatabaseURL(t *testing.T) {
	isolateConfigDir(t)

	_, err := Load(nil)
	require.ErrorIs(t, err, ErrInvalidDatabaseConfigs)
}

func TestLoad_MissingNamedFile(t *testing.T) {
	isolateConfigDir(t)

	_, err := Load(&StructuredConfig{FilePath: "/nonexistent/lowboy.yml"})
	require.Error(t, err)
}
