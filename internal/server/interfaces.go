package server

import (
	"context"
	"net"
)

// Server defines the lifecycle contract of the HTTP server.
//
// RunServer blocks until the context is cancelled or a stop signal arrives,
// then shuts the server down gracefully.
type Server interface {
	// RunServer starts serving requests and blocks until the server stops.
	// It returns nil after a graceful shutdown.
	RunServer(ctx context.Context) error

	// Shutdown gracefully stops the server.
	Shutdown(ctx context.Context) error

	// Addr is the address the server listens on once RunServer started it.
	Addr() net.Addr
}
