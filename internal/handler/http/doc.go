// Package http implements the HTTP transport layer of lowboy.
//
// It wires the router and its middleware stack, and serves the framework's
// own pages: registration, password and OAuth login, logout, email
// verification and the server-sent event stream. Application routes are
// mounted into the same stack, behind the session, flash, auth and view
// layers.
package http
