package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"

	"github.com/abhisek/mathplay/internal/catalog"
	"github.com/abhisek/mathplay/internal/topic"
)

var resetCmd = &cobra.Command{
	Use:       "reset [topic]",
	Short:     "Reset progress for one topic or all of them",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: idStrings(),
	RunE:      runReset,
}

func init() {
	resetCmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")
}

func runReset(cmd *cobra.Command, args []string) error {
	var id topic.ID
	what := "all progress"
	if len(args) == 1 {
		id = topic.ID(args[0])
		eng, err := catalog.Get(id)
		if err != nil {
			return fmt.Errorf("%w (known topics: %s)", err, idList())
		}
		what = "progress for " + eng.Info().Title
	}

	yes, _ := cmd.Flags().GetBool("yes")
	if !yes {
		if !term.IsTerminal(os.Stdin.Fd()) {
			return fmt.Errorf("refusing to reset %s without --yes when stdin is not a terminal", what)
		}
		if !confirm(cmd.InOrStdin(), cmd.OutOrStdout(), "Reset "+what+"?") {
			fmt.Fprintln(cmd.OutOrStdout(), "Nothing changed.")
			return nil
		}
	}

	e, err := openEnv(cmd, false)
	if err != nil {
		return err
	}
	defer e.Close()

	if id == "" {
		err = e.tracker.ResetAll(cmd.Context())
	} else {
		err = e.tracker.Reset(cmd.Context(), id)
	}
	if err != nil {
		return fmt.Errorf("reset: %w", err)
	}
	e.logger.Info("progress reset", "topic", id)
	fmt.Fprintf(cmd.OutOrStdout(), "Reset %s.\n", what)
	return nil
}

// confirm asks a yes/no question; only y or yes counts as yes.
func confirm(in io.Reader, out io.Writer, question string) bool {
	fmt.Fprintf(out, "%s [y/N] ", question)
	line, _ := bufio.NewReader(in).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}
