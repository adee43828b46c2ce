// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package record

import "errors"

var (
	// ErrParse wraps Go syntax errors in the input file.
	ErrParse = errors.New("record: cannot parse source")
	// ErrNoModels is returned when a file declares no //lowboy:record struct.
	ErrNoModels = errors.New("record: no models found")
	// ErrInvalidModel reports a model the generator cannot derive a record for.
	ErrInvalidModel = errors.New("record: invalid model")
	// ErrUnknownImport is returned when a related type's package is not
	// imported by the model file.
	ErrUnknownImport = errors.New("record: related type from unknown package")
)
