// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter talks to the user-info endpoints of OAuth identity
// providers.
//
// The primary abstraction is [UserInfoAdapter], which hides the JSON shape a
// provider answers with behind a common [Identity]. The package ships an
// HTTP implementation ([NewHTTPUserInfoAdapter]) for the GitHub and Discord
// shapes.
//
// Non-2xx answers are classified by status code, so callers can use
// [errors.Is] (e.g. [ErrUnauthorized] for 401 when the access token was
// rejected).
package adapter

import "context"

//go:generate mockgen -source=interfaces.go -destination=../mock/user_info_adapter_mock.go -package=mock

// UserInfoAdapter fetches the identity behind an OAuth access token.
type UserInfoAdapter interface {
	// UserInfo calls the provider's user-info endpoint with accessToken as
	// bearer credential. Returns [ErrMissingEmail] when the provider does not
	// disclose an email address.
	UserInfo(ctx context.Context, accessToken string) (Identity, error)
}

// Identity is the provider-independent view of an OAuth user.
type Identity struct {
	// Login is the provider's unique handle, used as the lowboy username.
	Login string
	Email string
	// Name is the display name, falling back to Login.
	Name      string
	AvatarURL string
}

// Shape names the JSON layout of a provider's user-info response.
type Shape string

const (
	// ShapeGitHub is {login, email, avatar_url, name}.
	ShapeGitHub Shape = "github"
	// ShapeDiscord is {id, username, email, global_name, avatar}.
	ShapeDiscord Shape = "discord"
)

// ShapeFor returns the shape of a provider by its configured name. Unknown
// providers are assumed to answer like GitHub.
func ShapeFor(provider string) Shape {
	if provider == string(ShapeDiscord) {
		return ShapeDiscord
	}
	return ShapeGitHub
}
