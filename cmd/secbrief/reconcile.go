package main

import (
	"context"
	"flag"
)

// runReconcile performs one reconciliation pass over the derived
// collections.
func runReconcile(args []string) error {
	fs := flag.NewFlagSet("reconcile", flag.ExitOnError)
	noLive := fs.Bool("no-live", false, "Disable live regeneration for this pass (placeholders are filled, not regenerated)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *noLive {
		config.Reconcile.LiveRegeneration = false
	}

	a, err := newApp(config.Reconcile.LiveRegeneration)
	if err != nil {
		return err
	}
	defer a.Close()

	report, err := a.engine.Run(context.Background())
	if err != nil {
		return err
	}

	if report.PlaceholdersRemaining > 0 {
		logger.Warn().
			Int("placeholders_remaining", report.PlaceholdersRemaining).
			Msg("Some records are still placeholders; run again with live regeneration to replace them")
	}
	return nil
}
