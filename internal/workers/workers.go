// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/invisible-wallet/internal/logger"
)

// Runner launches fire-and-forget tasks, each bounded by its own timeout and
// detached from the cancellation of the triggering context.
type Runner struct {
	wg      sync.WaitGroup
	timeout time.Duration
}

// NewRunner constructs a [Runner] whose tasks are cancelled after timeout.
func NewRunner(timeout time.Duration) *Runner {
	return &Runner{timeout: timeout}
}

// Go starts task in its own goroutine. Errors and panics are logged with the
// logger found in ctx.
func (r *Runner) Go(ctx context.Context, name string, task Task) {
	r.wg.Add(1)

	taskCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.timeout)
	go func() {
		defer r.wg.Done()
		defer cancel()

		log := logger.FromContext(taskCtx)
		start := time.Now()

		err := runSafely(taskCtx, task)
		if err != nil {
			log.Warn().Err(err).
				Str("func", "Runner.Go").
				Str("task", name).
				Dur("elapsed", time.Since(start)).
				Msg("background task failed")
			return
		}

		log.Debug().
			Str("func", "Runner.Go").
			Str("task", name).
			Dur("elapsed", time.Since(start)).
			Msg("background task finished")
	}()
}

// Wait blocks until every started task has returned. It is used on shutdown
// and in tests.
func (r *Runner) Wait() {
	r.wg.Wait()
}

func runSafely(ctx context.Context, task Task) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("task panicked: %v", p)
		}
	}()
	return task(ctx)
}
