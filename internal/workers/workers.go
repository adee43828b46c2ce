// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/lowboy/internal/logger"
)

var (
	// ErrInvalidJob is returned by Add for a job without a name, worker or
	// positive interval.
	ErrInvalidJob = errors.New("invalid job")
	// ErrSchedulerStopped is returned by Add after Stop.
	ErrSchedulerStopped = errors.New("scheduler stopped")
)

// Scheduler runs periodic jobs. Jobs added before Start begin with Start;
// jobs added later begin immediately. The zero value is not usable, use
// NewScheduler.
type Scheduler struct {
	logger *logger.Logger

	mu      sync.Mutex
	pending []Job
	ctx     context.Context
	cancel  context.CancelFunc
	stopped bool
	wg      sync.WaitGroup
}

// NewScheduler returns an idle scheduler.
func NewScheduler(log *logger.Logger) *Scheduler {
	return &Scheduler{logger: log.Component("scheduler")}
}

// Add registers job. If the scheduler is running, the job starts right away.
func (s *Scheduler) Add(job Job) error {
	if job.Name == "" || job.Worker == nil || job.Interval <= 0 {
		return fmt.Errorf("%w: %q", ErrInvalidJob, job.Name)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return ErrSchedulerStopped
	}
	if s.ctx == nil {
		s.pending = append(s.pending, job)
		return nil
	}
	s.spawn(job)
	return nil
}

// Start launches every registered job. The jobs exit when ctx is cancelled
// or Stop is called. Calling Start twice is a no-op.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ctx != nil || s.stopped {
		return
	}
	s.ctx, s.cancel = context.WithCancel(ctx)
	for _, job := range s.pending {
		s.spawn(job)
	}
	s.pending = nil
}

// Stop cancels all jobs and blocks until they have exited. Safe to call
// when the scheduler was never started.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	cancel := s.cancel
	s.stopped = true
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	s.wg.Wait()
}

// spawn must be called with s.mu held.
func (s *Scheduler) spawn(job Job) {
	s.wg.Add(1)
	ctx := s.ctx
	log := &logger.Logger{Logger: s.logger.With().Str("job", job.Name).Logger()}

	go func() {
		defer s.wg.Done()
		log.Debug().Dur("interval", job.Interval).Msg("job started")

		t := time.NewTicker(job.Interval)
		defer t.Stop()

		if job.Immediate {
			s.runOnce(ctx, job, log)
		}
		for {
			select {
			case <-ctx.Done():
				log.Debug().Msg("job stopped")
				return
			case <-t.C:
				s.runOnce(ctx, job, log)
			}
		}
	}()
}

func (s *Scheduler) runOnce(ctx context.Context, job Job, log *logger.Logger) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("job panicked")
		}
	}()

	if err := job.Worker.Run(ctx); err != nil && ctx.Err() == nil {
		log.Err(err).Msg("job failed")
	}
}
