package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathplay/internal/arith"
	"github.com/abhisek/mathplay/internal/catalog"
	"github.com/abhisek/mathplay/internal/session"
	"github.com/abhisek/mathplay/internal/topic"
)

var playCmd = &cobra.Command{
	Use:   "play <topic>",
	Short: "Start a practice session for one topic",
	Long: `Open one topic directly. Topics: ` + idList() + `.

With --plain the questions are asked line by line on stdin/stdout instead
of in the full-screen interface.`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: idStrings(),
	RunE:      runPlay,
}

func init() {
	playCmd.Flags().Bool("ephemeral", false, "Keep progress in memory only")
	playCmd.Flags().Bool("plain", false, "Line-by-line mode without the full-screen UI")
}

func runPlay(cmd *cobra.Command, args []string) error {
	engine, err := catalog.Get(topic.ID(args[0]))
	if err != nil {
		return fmt.Errorf("%w (known topics: %s)", err, idList())
	}
	ephemeral, _ := cmd.Flags().GetBool("ephemeral")
	plain, _ := cmd.Flags().GetBool("plain")

	if !plain {
		return runApp(cmd, engine, ephemeral)
	}

	e, err := openEnv(cmd, ephemeral)
	if err != nil {
		return err
	}
	defer e.Close()

	if err := e.tracker.MarkStarted(cmd.Context(), engine.Info().ID); err != nil {
		e.logger.Warn("mark topic started", "topic", engine.Info().ID, "error", err)
	}

	opts := []session.Option{
		session.WithSource(arith.NewSource(e.cfg.Seed)),
		session.WithLogger(e.logger),
	}
	if !e.cfg.Timer {
		opts = append(opts, session.WithScheduler(nil))
	}
	return runPlain(cmd.Context(), os.Stdin, cmd.OutOrStdout(), engine, e.tracker, opts...)
}
