// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators provides abstractions for input validation of the
// forms lowboy controllers accept.
//
// Core concepts:
//   - Validator: generic interface to validate arbitrary values or structures.
//     Supports optional field-level scoping for targeted validation.
//   - FieldErrors: the per-field messages a failed validation produces, in
//     declaration order, ready to be flashed to the visitor.
//
// Usage patterns:
//  1. Tag form structs with `form`, `validate` and `msg` struct tags.
//  2. Inject a Validator into the controllers.
//  3. Call Validate with context, value, and optional field names to enforce
//     rules, then flash every FieldError.Message on failure.
package validators

import "context"

// Validator defines a generic validation interface for arbitrary input values.
type Validator interface {

	// Validate validates the provided input and optionally
	// restricts validation to specific named fields.
	Validate(context.Context, any, ...string) error
}
