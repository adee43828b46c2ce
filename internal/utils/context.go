// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package utils provides general-purpose helper utilities
// used across different parts of the application.
// Includes typed context keys, HMAC signing of cookie values,
// id generation, HTTP response helpers and the outbound HTTP client.
package utils

import (
	"context"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

var (
	// UserIDCtxKey is the key used to store the id of the logged-in user in the
	// context. It is set by the auth middleware.
	//
	// Example of writing a value to the context:
	//
	//	ctx := context.WithValue(ctx, utils.UserIDCtxKey, int64(42))
	UserIDCtxKey = contextKey("userID")

	// SessionCtxKey holds the request's *session.Session.
	SessionCtxKey = contextKey("session")

	// AuthUserCtxKey holds the record of the logged-in user.
	AuthUserCtxKey = contextKey("authUser")

	// AppCtxKey holds the shared application context.
	AppCtxKey = contextKey("app")

	// ViewSlotCtxKey holds the per-request slot a handler stashes its view in.
	ViewSlotCtxKey = contextKey("viewSlot")

	// ErrorSlotCtxKey holds the per-request slot a handler stashes its typed
	// error in.
	ErrorSlotCtxKey = contextKey("errorSlot")

	// FlashCtxKey holds the request's flash message store.
	FlashCtxKey = contextKey("flash")
)

// GetUserIDFromContext retrieves the id of the logged-in user from the
// context.
//
// Returns the user ID of type int64 and an ok flag:
//   - ok == true : value is found and has the correct int64 type
//   - ok == false: value is missing or has an unexpected type
//
// Example usage:
//
//	userID, ok := utils.GetUserIDFromContext(ctx)
//	if !ok {
//	    // anonymous request
//	}
func GetUserIDFromContext(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(UserIDCtxKey).(int64)
	return userID, ok
}
