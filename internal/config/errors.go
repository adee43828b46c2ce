// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "errors"

// Validation errors returned by [StructuredConfig.validate].
var (
	// ErrInvalidDatabaseConfigs indicates a missing database url or a
	// non-positive pool size.
	ErrInvalidDatabaseConfigs = errors.New("invalid database configuration")
	// ErrInvalidSessionConfigs indicates an undecodable or short session key.
	ErrInvalidSessionConfigs = errors.New("invalid session configuration")
	// ErrInvalidOAuthConfigs indicates an incomplete or duplicated provider.
	ErrInvalidOAuthConfigs = errors.New("invalid oauth provider configuration")
	// ErrConfigExists is returned by [Init] when the target file exists.
	ErrConfigExists = errors.New("config file already exists")
)
