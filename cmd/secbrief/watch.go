package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/robfig/cron/v3"
)

// runWatch runs reconciliation passes on the configured schedule until
// interrupted. One pass runs immediately on startup so a restart never
// waits a full interval to repair the store.
func runWatch(args []string) error {
	fs := flag.NewFlagSet("watch", flag.ExitOnError)
	schedule := fs.String("schedule", "", "Cron schedule override (default from config)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *schedule != "" {
		config.Reconcile.Schedule = *schedule
	}

	a, err := newApp(config.Reconcile.LiveRegeneration)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Overlapping passes would double-write; skip a tick while one runs.
	var passMu sync.Mutex
	pass := func() {
		if !passMu.TryLock() {
			logger.Warn().Msg("Previous reconciliation pass still running, skipping this tick")
			return
		}
		defer passMu.Unlock()

		if _, err := a.engine.Run(ctx); err != nil {
			logger.Error().Err(err).Msg("Reconciliation pass failed")
		}
	}

	scheduler := cron.New()
	if _, err := scheduler.AddFunc(config.Reconcile.Schedule, pass); err != nil {
		return err
	}

	logger.Info().
		Str("schedule", config.Reconcile.Schedule).
		Bool("live", config.Reconcile.LiveRegeneration).
		Msg("Watch mode started")

	pass()
	scheduler.Start()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan

	logger.Info().Str("signal", sig.String()).Msg("Shutting down watch mode")
	cancel()
	stopCtx := scheduler.Stop()
	<-stopCtx.Done()
	return nil
}
