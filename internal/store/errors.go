// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import "errors"

var (
	// ErrEmptyDatabaseURL is returned when no database url is configured.
	ErrEmptyDatabaseURL = errors.New("database url is empty")
	// ErrUnsupportedDatabaseURL is returned for url schemes no driver handles.
	ErrUnsupportedDatabaseURL = errors.New("unsupported database url scheme")
	// ErrOpeningDatabase wraps driver failures while opening or pinging the pool.
	ErrOpeningDatabase = errors.New("error opening database")
	// ErrPoolCheckout wraps failures to take a connection from the pool.
	ErrPoolCheckout = errors.New("error checking out database connection")

	ErrBuildingSQLQuery      = errors.New("error building SQL query")
	ErrBeginningTransaction  = errors.New("error beginning transaction")
	ErrCommittingTransaction = errors.New("error committing transaction")
)
