// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package lowboy boots an application on the framework.
//
// An application implements [App]: its routes, its schema, its layout and
// how to turn the logged-in user record into its own user type. [Boot]
// connects the database, applies the core and application migrations,
// prepares the session table and its sweeper, builds the shared
// [appctx.Context] and assembles the router. [Instance.Serve] then runs the
// event broker, the scheduler and the HTTP server until SIGINT or SIGTERM,
// and tears everything down in reverse order.
package lowboy
