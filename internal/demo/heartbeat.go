package demo

import (
	"context"
	"time"

	"github.com/MKhiriev/lowboy/internal/logger"
	"github.com/MKhiriev/lowboy/internal/store"
	"github.com/MKhiriev/lowboy/internal/workers"
)

// HeartbeatInterval is how often the heartbeat job logs.
const HeartbeatInterval = time.Minute

// HeartbeatJob logs the number of posts every interval.
func HeartbeatJob(q store.Querier, interval time.Duration, log *logger.Logger) workers.Job {
	log = log.Component("heartbeat")
	return workers.Job{
		Name:     "heartbeat",
		Interval: interval,
		Worker: workers.WorkerFunc(func(ctx context.Context) error {
			n, err := CountPosts(ctx, q)
			if err != nil {
				return err
			}
			log.Info().Int64("posts", n).Msg("heartbeat")
			return nil
		}),
	}
}
