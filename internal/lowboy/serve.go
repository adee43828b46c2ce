package lowboy

import (
	"context"
	"os/signal"
	"sync"
	"syscall"

	"github.com/MKhiriev/lowboy/internal/config"
	"github.com/MKhiriev/lowboy/internal/logger"
	"github.com/MKhiriev/lowboy/internal/server"
)

// Serve runs the instance until ctx is cancelled or the process receives
// SIGINT, SIGTERM or SIGQUIT. The event broker and the scheduler are
// stopped and the database is closed before it returns.
func (i *Instance) Serve(ctx context.Context) error {
	i.mu.Lock()
	if i.serving {
		i.mu.Unlock()
		return ErrAlreadyServing
	}
	i.serving = true
	i.mu.Unlock()

	srv, err := server.NewServer(i.Router, i.cfg.Server, i.logger)
	if err != nil {
		return err
	}

	// open event streams only end when the broker shuts down, so the broker
	// has to see the stop signal no later than the server does
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		i.Context.Events.Run(ctx)
	}()
	i.Context.Scheduler.Start(ctx)

	err = srv.RunServer(ctx)

	// the server is down; stop the background work that feeds it
	cancel()
	i.Context.Scheduler.Stop()
	wg.Wait()

	if closeErr := i.Context.DB.Close(); closeErr != nil {
		i.logger.Err(closeErr).Str("func", "*Instance.Serve").Msg("error closing the database")
	}

	i.logger.Info().Msg("lowboy stopped")
	return err
}

// Run boots app and serves it.
func Run(ctx context.Context, app App, cfg *config.StructuredConfig, log *logger.Logger, opts ...Option) error {
	inst, err := Boot(ctx, app, cfg, log, opts...)
	if err != nil {
		return err
	}
	return inst.Serve(ctx)
}
