package server

import "context"

// Server defines the lifecycle contract of the transport server.
//
// RunServer blocks until ctx is cancelled or a termination signal arrives,
// then shuts the server down gracefully.
type Server interface {
	RunServer(ctx context.Context) error

	// Shutdown gracefully stops the server and frees associated resources.
	Shutdown(ctx context.Context) error
}

// Drainer waits for background work started while serving.
type Drainer interface {
	Wait()
}
