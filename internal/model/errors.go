// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package model

import "errors"

var (
	// ErrNotFound is returned by finders when no row matches.
	ErrNotFound = errors.New("model: not found")

	// ErrUserConflict is returned by CreateOrUpdate when the username and the
	// email address belong to two different users.
	ErrUserConflict = errors.New("model: username and email belong to different users")

	// ErrTokenVerification is returned when a verification secret does not
	// match or the token has expired.
	ErrTokenVerification = errors.New("model: there was an error verifying the token")
)
