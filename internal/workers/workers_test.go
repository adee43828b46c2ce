// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/lowboy/internal/logger"
)

// countingWorker is a test implementation of the Worker interface
// that tracks how many times Run was called.
type countingWorker struct {
	runs atomic.Int32
	err  error
}

func (w *countingWorker) Run(context.Context) error {
	w.runs.Add(1)
	return w.err
}

func TestScheduler_RunsJobsUntilStopped(t *testing.T) {
	s := NewScheduler(logger.Nop())
	w := &countingWorker{}
	require.NoError(t, s.Add(Job{Name: "count", Interval: 5 * time.Millisecond, Worker: w}))

	s.Start(context.Background())
	assert.Eventually(t, func() bool { return w.runs.Load() >= 3 }, time.Second, time.Millisecond)

	s.Stop()
	after := w.runs.Load()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, after, w.runs.Load(), "no runs after Stop returned")
}

func TestScheduler_AddWhileRunning(t *testing.T) {
	s := NewScheduler(logger.Nop())
	s.Start(context.Background())
	defer s.Stop()

	w := &countingWorker{}
	require.NoError(t, s.Add(Job{Name: "late", Interval: time.Hour, Worker: w, Immediate: true}))
	assert.Eventually(t, func() bool { return w.runs.Load() == 1 }, time.Second, time.Millisecond)
}

func TestScheduler_ContextCancelStopsJobs(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := NewScheduler(logger.Nop())

	var seen atomic.Bool
	require.NoError(t, s.Add(Job{Name: "ctx", Interval: time.Millisecond, Worker: WorkerFunc(func(ctx context.Context) error {
		seen.Store(true)
		return nil
	})}))
	s.Start(ctx)
	assert.Eventually(t, seen.Load, time.Second, time.Millisecond)

	cancel()
	done := make(chan struct{})
	go func() {
		s.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop did not return after the context was cancelled")
	}
}

func TestScheduler_FailingAndPanickingJobsKeepRunning(t *testing.T) {
	s := NewScheduler(logger.Nop())
	failing := &countingWorker{err: errors.New("boom")}

	var panics atomic.Int32
	require.NoError(t, s.Add(Job{Name: "failing", Interval: 2 * time.Millisecond, Worker: failing}))
	require.NoError(t, s.Add(Job{Name: "panicking", Interval: 2 * time.Millisecond, Worker: WorkerFunc(func(context.Context) error {
		panics.Add(1)
		panic("job exploded")
	})}))

	s.Start(context.Background())
	defer s.Stop()

	assert.Eventually(t, func() bool { return failing.runs.Load() >= 2 && panics.Load() >= 2 }, time.Second, time.Millisecond)
}

func TestScheduler_Add_Validation(t *testing.T) {
	s := NewScheduler(logger.Nop())
	w := &countingWorker{}

	tests := []struct {
		name string
		job  Job
	}{
		{name: "no name", job: Job{Interval: time.Second, Worker: w}},
		{name: "no worker", job: Job{Name: "x", Interval: time.Second}},
		{name: "zero interval", job: Job{Name: "x", Worker: w}},
		{name: "negative interval", job: Job{Name: "x", Interval: -time.Second, Worker: w}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, s.Add(tt.job), ErrInvalidJob)
		})
	}
}

func TestScheduler_StopBeforeStart(t *testing.T) {
	s := NewScheduler(logger.Nop())

	// Should not block or panic when never started
	s.Stop()

	assert.ErrorIs(t, s.Add(Job{Name: "x", Interval: time.Second, Worker: &countingWorker{}}), ErrSchedulerStopped)
	s.Start(context.Background())
}
