package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathplay/internal/app"
	"github.com/abhisek/mathplay/internal/catalog"
	"github.com/abhisek/mathplay/internal/topic"
)

// runApp opens the environment and launches the TUI, optionally straight
// into one topic.
func runApp(cmd *cobra.Command, start topic.Engine, ephemeral bool) error {
	e, err := openEnv(cmd, ephemeral)
	if err != nil {
		return err
	}
	defer func() {
		if err := e.Close(); err != nil {
			fmt.Fprintln(os.Stderr, "close:", err)
		}
	}()

	e.logger.Info("starting tui", "seed", e.cfg.Seed, "timer", e.cfg.Timer, "ephemeral", ephemeral)
	return app.Run(app.Options{
		Tracker: e.tracker,
		Engines: catalog.All(),
		Start:   start,
		Timer:   e.cfg.Timer,
		Seed:    e.cfg.Seed,
		Logger:  e.logger,
	})
}
