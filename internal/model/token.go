// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package model

//go:generate go run github.com/MKhiriev/lowboy/cmd/recordgen -in $GOFILE

import (
	"crypto/subtle"
	"time"

	"github.com/google/uuid"
)

// TokenLifetime is how long a freshly issued token stays valid.
const TokenLifetime = 24 * time.Hour

// Token is a single-use secret issued to a user, e.g. for email
// verification.
//
//lowboy:record
type Token struct {
	ID         int64
	UserID     int64
	Secret     string
	Expiration time.Time
}

// NewTokenSecret returns a random secret for a new token.
func NewTokenSecret() string {
	return uuid.NewString()
}

// Verify reports whether secret matches the token and the token has not
// expired at now. The comparison runs in constant time.
func (t Token) Verify(secret string, now time.Time) bool {
	if !now.Before(t.Expiration) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(t.Secret), []byte(secret)) == 1
}
