// Package server runs the application's HTTP server.
//
// It owns the listener lifecycle: startup, signal handling (SIGINT, SIGTERM
// and SIGQUIT) and graceful shutdown, during which in-flight requests are
// given ShutdownTimeout to finish.
package server
