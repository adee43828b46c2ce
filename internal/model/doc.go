// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package model holds the identity models every Lowboy application shares:
// users, their email addresses and verification tokens, roles and
// permissions.
//
// Each model is a nested Go struct marked with a //lowboy:record directive.
// The flat row types, insert and update builders and relation loaders in the
// *_record.go files are generated from those declarations by
// cmd/recordgen; the hand-written files add the queries and multi-statement
// operations the generated code does not cover.
package model
