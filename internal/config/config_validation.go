// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "fmt"

// minSessionKeyLen is the shortest accepted cookie signing key.
const minSessionKeyLen = 64

var knownProviders = map[string]OAuthProvider{
	"github": {
		AuthURL:     "https://github.com/login/oauth/authorize",
		TokenURL:    "https://github.com/login/oauth/access_token",
		UserInfoURL: "https://api.github.com/user",
		Scopes:      []string{"read:user", "user:email"},
	},
	"discord": {
		AuthURL:     "https://discord.com/oauth2/authorize",
		TokenURL:    "https://discord.com/api/oauth2/token",
		UserInfoURL: "https://discord.com/api/users/@me",
		Scopes:      []string{"identify", "email"},
	},
}

// withDefaults fills unset urls and scopes of a known provider.
func (p OAuthProvider) withDefaults() OAuthProvider {
	known, ok := knownProviders[p.Name]
	if !ok {
		return p
	}
	if p.AuthURL == "" {
		p.AuthURL = known.AuthURL
	}
	if p.TokenURL == "" {
		p.TokenURL = known.TokenURL
	}
	if p.UserInfoURL == "" {
		p.UserInfoURL = known.UserInfoURL
	}
	if len(p.Scopes) == 0 {
		p.Scopes = known.Scopes
	}
	return p
}

// validate checks that the final merged [StructuredConfig] can boot an
// application.
func (cfg *StructuredConfig) validate() error {
	if cfg.Database.URL == "" {
		return fmt.Errorf("%w: database_url is required", ErrInvalidDatabaseConfigs)
	}
	if cfg.Database.PoolSize < 1 {
		return fmt.Errorf("%w: database_pool_size must be positive", ErrInvalidDatabaseConfigs)
	}

	key, err := cfg.SessionKey()
	if err != nil {
		return fmt.Errorf("%w: session_key is not valid base64: %w", ErrInvalidSessionConfigs, err)
	}
	if key != nil && len(key) < minSessionKeyLen {
		return fmt.Errorf("%w: session_key must decode to at least %d bytes", ErrInvalidSessionConfigs, minSessionKeyLen)
	}

	seen := make(map[string]struct{}, len(cfg.OAuthProviders))
	for _, p := range cfg.OAuthProviders {
		if p.Name == "" || p.ClientID == "" || p.AuthURL == "" || p.TokenURL == "" || p.UserInfoURL == "" {
			return fmt.Errorf("%w: provider %q needs name, client_id, auth_url, token_url and user_info_url", ErrInvalidOAuthConfigs, p.Name)
		}
		if _, dup := seen[p.Name]; dup {
			return fmt.Errorf("%w: provider %q listed twice", ErrInvalidOAuthConfigs, p.Name)
		}
		seen[p.Name] = struct{}{}
	}

	return nil
}
