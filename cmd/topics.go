package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathplay/internal/catalog"
)

var topicsCmd = &cobra.Command{
	Use:   "topics",
	Short: "List the practice topics",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		for _, e := range catalog.All() {
			info := e.Info()
			ladder := e.Ladder()
			fmt.Fprintf(out, "%-24s %-30s %s, %s, levels %s to %s\n",
				info.ID, info.Title, info.Grade, info.Duration,
				e.LevelLabel(ladder.Min()), e.LevelLabel(ladder.Max()))
		}
	},
}

func idStrings() []string {
	ids := catalog.IDs()
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = string(id)
	}
	return out
}

func idList() string {
	return strings.Join(idStrings(), ", ")
}
