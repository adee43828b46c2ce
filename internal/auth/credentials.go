// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package auth

import (
	"context"

	"github.com/MKhiriev/lowboy/internal/model"
	"github.com/MKhiriev/lowboy/internal/store"
)

// Session keys owned by this package.
const (
	KeyUserID           = "auth.user-id"
	KeyAuthHash         = "auth.hash"
	KeyNextURL          = "auth.next-url"
	KeyCSRFState        = "oauth.csrf-state"
	KeyProvider         = "oauth.provider"
	KeyRegistrationForm = "auth.registration-form"
	KeyLoginForm        = "auth.login-form"
)

// ProviderLocal names password registrations in [RegistrationDetails].
const ProviderLocal = "local"

// Credentials is what a visitor logs in with: [PasswordCredentials] or
// [OAuthCredentials].
type Credentials interface {
	// NextURL is where to send the visitor after a successful login.
	NextURL() string

	credentials()
}

// PasswordCredentials is a username and a plain text password.
type PasswordCredentials struct {
	Username string
	Password string
	Next     string
}

func (c PasswordCredentials) NextURL() string { return c.Next }
func (PasswordCredentials) credentials()      {}

// OAuthCredentials is the provider callback: the authorization code and the
// CSRF state stored in the session (OldState) next to the one the provider
// echoed back (NewState).
type OAuthCredentials struct {
	Provider string
	Code     string
	OldState string
	NewState string
	Next     string
}

func (c OAuthCredentials) NextURL() string { return c.Next }
func (OAuthCredentials) credentials()      {}

// RegistrationDetails describes how a new user signed up.
type RegistrationDetails struct {
	// Provider is ProviderLocal or the name of an OAuth provider.
	Provider string
	Name     string
	// AvatarURL is the provider's picture of the user, if any.
	AvatarURL *string
}

// NewUserHook is called once for every user created by a registration or a
// first OAuth login. Its errors are logged and do not undo the login.
type NewUserHook func(ctx context.Context, q store.Querier, user model.LowboyUserRecord, details RegistrationDetails) error
