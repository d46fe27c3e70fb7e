// Package workers runs best-effort background tasks of the application:
// work whose failure is logged but never reported to the request that
// triggered it.
package workers

import "context"

// Task is a unit of best-effort work. The context carries the deadline
// configured on the [Runner] and the logger of the triggering request.
//
// Example implementation:
//
//	task := func(ctx context.Context) error {
//	    return client.FundTestAccount(ctx, publicKey)
//	}
type Task func(ctx context.Context) error

// Launcher starts tasks without waiting for them.
type Launcher interface {
	Go(ctx context.Context, name string, task Task)
}
