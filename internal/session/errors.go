// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package session

import "errors"

var (
	// ErrNotFound is returned by Load for unknown and expired ids.
	ErrNotFound = errors.New("session not found")
	// ErrDecoding wraps failures to decode stored session data.
	ErrDecoding = errors.New("error decoding session data")
	// ErrEncoding wraps failures to encode a session value.
	ErrEncoding = errors.New("error encoding session data")
	// ErrCreatingSession is returned when no free session id could be
	// claimed.
	ErrCreatingSession = errors.New("error creating session")
)
