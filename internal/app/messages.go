// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains the user-facing message strings shared by lowboy's
// controllers, middleware and error pages.
//
// All Msg* constants are human-readable strings that are flashed to the
// visitor or rendered on error pages. Keeping them in one place ensures
// consistent wording throughout the application.
package app

const (
	// MsgRegistrationSuccessful is flashed after a password registration
	// created the account.
	MsgRegistrationSuccessful = "Registration successful!"

	// MsgUserAlreadyExists is flashed when the username or email of a
	// registration is taken.
	MsgUserAlreadyExists = "A user with the same username or email already exists"

	// MsgInvalidCredentials is flashed for a wrong password and for an
	// unknown username alike.
	MsgInvalidCredentials = "Invalid credentials"

	// MsgInvalidCSRFState is the error page message of an OAuth callback whose
	// state does not match the one stored in the session.
	MsgInvalidCSRFState = "Invalid CSRF state"

	// MsgUnknownProvider is shown when a login names an identity provider that
	// is not configured.
	MsgUnknownProvider = "Unknown login provider"

	// MsgMissingProviderEmail is flashed when the identity provider did not
	// disclose an email address.
	MsgMissingProviderEmail = "Your account at the login provider has no public email address"

	// MsgLoginFailed is flashed when the login provider could not be reached
	// or answered with an error.
	MsgLoginFailed = "Login failed, please try again"

	// MsgLoggedOut is flashed after logout.
	MsgLoggedOut = "You have been logged out"

	// MsgEmailVerified is flashed after a successful email verification.
	MsgEmailVerified = "Your email address has been verified. You may now login."

	// MsgInvalidVerificationLink is flashed for a wrong or expired email
	// verification token.
	MsgInvalidVerificationLink = "Invalid or expired verification link"

	// MsgInternalServerError replaces the details of internal errors on error
	// pages.
	MsgInternalServerError = "Internal Server Error"

	// MsgInvalidForm is the error page message of a form that could not be
	// parsed at all.
	MsgInvalidForm = "The submitted form could not be read"
)
