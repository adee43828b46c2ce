// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package workers runs the application's periodic background jobs, such as
// the session sweeper or application heartbeats.
//
// A [Scheduler] owns a set of named [Job]s, each running on its own ticker
// until the scheduler is stopped or its context is cancelled.
package workers

import (
	"context"
	"time"
)

// Worker is implemented by anything that wants to run as a periodic job.
//
// Example implementation:
//
//	type heartbeat struct{}
//
//	func (heartbeat) Run(ctx context.Context) error {
//	    // do one unit of work
//	    return nil
//	}
type Worker interface {
	Run(ctx context.Context) error
}

// WorkerFunc adapts a plain function to [Worker].
type WorkerFunc func(ctx context.Context) error

// Run implements [Worker].
func (f WorkerFunc) Run(ctx context.Context) error {
	return f(ctx)
}

// Job is a named [Worker] run every Interval.
type Job struct {
	Name     string
	Interval time.Duration
	Worker   Worker
	// Immediate runs the worker once as soon as the job starts, before the
	// first tick.
	Immediate bool
}
