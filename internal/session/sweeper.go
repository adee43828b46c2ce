// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package session

import (
	"context"
	"time"

	"github.com/MKhiriev/lowboy/internal/logger"
	"github.com/MKhiriev/lowboy/internal/workers"
)

// SweepInterval is how often expired sessions are deleted.
const SweepInterval = time.Minute

// SweeperJob returns the scheduler job that deletes expired records from st
// every interval.
func SweeperJob(st Store, interval time.Duration, log *logger.Logger) workers.Job {
	log = log.Component("session-sweeper")
	return workers.Job{
		Name:     "session-sweeper",
		Interval: interval,
		Worker: workers.WorkerFunc(func(ctx context.Context) error {
			n, err := st.DeleteExpired(ctx)
			if err != nil {
				return err
			}
			if n > 0 {
				log.Debug().Int64("deleted", n).Msg("deleted expired sessions")
			}
			return nil
		}),
	}
}
