// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"github.com/MKhiriev/lowboy/internal/adapter"
	"github.com/MKhiriev/lowboy/internal/config"
	"github.com/MKhiriev/lowboy/internal/logger"
	"github.com/MKhiriev/lowboy/internal/utils"
)

// Provider is one configured OAuth identity provider.
type Provider struct {
	name       string
	config     *oauth2.Config
	userInfo   adapter.UserInfoAdapter
	httpClient *http.Client
}

// NewProvider builds a provider from its configuration. The user-info
// endpoint and the token exchange both go through client.
func NewProvider(cfg config.OAuthProvider, client *utils.HTTPClient, log *logger.Logger) (*Provider, error) {
	userInfo, err := adapter.NewHTTPUserInfoAdapter(cfg.UserInfoURL, adapter.ShapeFor(cfg.Name), client, log)
	if err != nil {
		return nil, fmt.Errorf("provider %q: %w", cfg.Name, err)
	}

	return &Provider{
		name: cfg.Name,
		config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			Endpoint: oauth2.Endpoint{
				AuthURL:  cfg.AuthURL,
				TokenURL: cfg.TokenURL,
			},
			RedirectURL: cfg.RedirectURL,
			Scopes:      cfg.Scopes,
		},
		userInfo:   userInfo,
		httpClient: client.GetClient(),
	}, nil
}

// Name returns the configured provider name.
func (p *Provider) Name() string {
	return p.name
}

// AuthorizeURL returns the provider's consent page url together with the
// fresh CSRF state embedded in it.
func (p *Provider) AuthorizeURL() (string, string) {
	state := uuid.NewString()
	return p.config.AuthCodeURL(state), state
}

// identify exchanges code for an access token and fetches the identity
// behind it.
func (p *Provider) identify(ctx context.Context, code string) (adapter.Identity, *oauth2.Token, error) {
	if p.httpClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, p.httpClient)
	}

	token, err := p.config.Exchange(ctx, code)
	if err != nil {
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) {
			return adapter.Identity{}, nil, fmt.Errorf("%w: %w", ErrOAuth2, err)
		}
		return adapter.Identity{}, nil, fmt.Errorf("%w: exchanging code: %w", ErrHTTP, err)
	}

	identity, err := p.userInfo.UserInfo(ctx, token.AccessToken)
	if errors.Is(err, adapter.ErrMissingEmail) {
		return adapter.Identity{}, nil, fmt.Errorf("%w: %w", ErrMissingEmail, err)
	}
	if err != nil {
		return adapter.Identity{}, nil, fmt.Errorf("%w: %w", ErrHTTP, err)
	}
	return identity, token, nil
}

// Providers is the ordered set of configured providers.
type Providers struct {
	order  []*Provider
	byName map[string]*Provider
}

// NewProviders builds every configured provider, keeping the configuration
// order for the login page.
func NewProviders(cfgs []config.OAuthProvider, client *utils.HTTPClient, log *logger.Logger) (*Providers, error) {
	ps := &Providers{byName: make(map[string]*Provider, len(cfgs))}
	for _, cfg := range cfgs {
		p, err := NewProvider(cfg, client, log)
		if err != nil {
			return nil, err
		}
		ps.add(p)
	}
	return ps, nil
}

func (ps *Providers) add(p *Provider) {
	ps.order = append(ps.order, p)
	ps.byName[p.name] = p
}

// Get returns the provider called name.
func (ps *Providers) Get(name string) (*Provider, bool) {
	if ps == nil {
		return nil, false
	}
	p, ok := ps.byName[name]
	return p, ok
}

// Names lists the provider names in configuration order.
func (ps *Providers) Names() []string {
	if ps == nil {
		return nil
	}
	names := make([]string, len(ps.order))
	for i, p := range ps.order {
		names[i] = p.name
	}
	return names
}
