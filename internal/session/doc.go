// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package session keeps per-visitor state on the server.
//
// A [Record] is the persisted form of a session: an opaque id, the encoded
// values and an absolute expiry. [SQLStore] persists records in the
// tower_session table and sweeps expired rows. [Manager] is the HTTP
// middleware that loads the session named by the signed "id" cookie, exposes
// it to handlers as a [*Session], and writes it back before the response
// headers go out.
package session
