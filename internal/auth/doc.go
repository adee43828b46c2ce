// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package auth verifies credentials and keeps the logged-in user on the
// session.
//
// A [Backend] accepts two kinds of [Credentials]: a username and password
// checked against an Argon2id hash, or an OAuth authorization code that is
// exchanged at a configured [Provider] and resolved to a user through the
// provider's user-info endpoint. Users logging in through OAuth for the first
// time are provisioned on the spot and handed to the application's
// [NewUserHook].
//
// [Backend.Middleware] resolves the user id stored on the session on every
// request and attaches the user record to the request context.
// [LoginRequired] redirects anonymous visitors to the login page.
package auth
