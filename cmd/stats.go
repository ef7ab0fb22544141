package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/abhisek/mathplay/internal/catalog"
	"github.com/abhisek/mathplay/internal/stats"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show per-topic progress",
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

func init() {
	statsCmd.Flags().String("format", "table", "Output format: table, json or yaml")
}

// topicStats is one row of the stats report.
type topicStats struct {
	Topic     string     `json:"topic" yaml:"topic"`
	Title     string     `json:"title" yaml:"title"`
	Asked     int        `json:"asked" yaml:"asked"`
	Correct   int        `json:"correct" yaml:"correct"`
	Accuracy  float64    `json:"accuracy" yaml:"accuracy"`
	StartedAt *time.Time `json:"startedAt,omitempty" yaml:"startedAt,omitempty"`
}

func runStats(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	switch format {
	case "table", "json", "yaml":
	default:
		return fmt.Errorf("invalid format %q: must be table, json or yaml", format)
	}

	e, err := openEnv(cmd, false)
	if err != nil {
		return err
	}
	defer e.Close()

	doc, err := e.tracker.Load(cmd.Context())
	if err != nil {
		return fmt.Errorf("load progress: %w", err)
	}
	return writeStats(cmd.OutOrStdout(), format, buildReport(doc), time.Now())
}

// buildReport lists every catalog topic in menu order.
func buildReport(doc stats.Document) []topicStats {
	rows := make([]topicStats, 0, len(catalog.IDs()))
	for _, eng := range catalog.All() {
		info := eng.Info()
		row := topicStats{Topic: string(info.ID), Title: info.Title}
		if rec, ok := doc.Lookup(info.ID); ok {
			row.Asked = rec.Stats.Asked
			row.Correct = rec.Stats.Correct
			row.Accuracy = rec.Stats.Accuracy()
			if rec.Started() {
				t := rec.StartedTime().UTC()
				row.StartedAt = &t
			}
		}
		rows = append(rows, row)
	}
	return rows
}

func writeStats(w io.Writer, format string, rows []topicStats, now time.Time) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(rows); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("TOPIC", "ASKED", "CORRECT", "ACCURACY", "STARTED")
	for _, r := range rows {
		started := "never"
		if r.StartedAt != nil {
			started = humanize.RelTime(*r.StartedAt, now, "ago", "from now")
		}
		t.Row(r.Title, fmt.Sprint(r.Asked), fmt.Sprint(r.Correct),
			fmt.Sprintf("%.0f%%", r.Accuracy*100), started)
	}
	_, err := fmt.Fprintln(w, t.String())
	return err
}
