// Package server runs the HTTP transport of the invisible wallet.
//
// It owns the server lifecycle: startup, signal handling and graceful
// shutdown. Background tasks started while serving (testnet funding) are
// drained before the process exits.
package server
