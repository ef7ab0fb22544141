package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "mathplay",
	Short: "Fraction and average practice for kids",
	Long: `Mathplay is a terminal practice game for grade 5 arithmetic: common
denominators, reducing fractions, averages and fractions on the number line.
Every answer moves a difficulty ladder up or down; progress is kept per topic.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, nil, false)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "Config file (default $XDG_CONFIG_HOME/mathplay/config.yaml)")
	pf.String("db", "", "Path to SQLite database file (overrides MATHPLAY_DB env var)")
	pf.Int64("seed", 0, "Seed for reproducible questions (0 = random)")
	pf.Bool("no-timer", false, "Disable per-question deadlines")
	pf.String("log-level", "", "Log level: debug, info, warn or error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(topicsCmd)
	rootCmd.AddCommand(versionCmd)
}
