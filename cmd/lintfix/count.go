package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"lintfix/internal/lintlog"
	"lintfix/internal/report"
	"lintfix/internal/stats"
	"lintfix/internal/strategy"
)

var countCmd = &cobra.Command{
	Use:   "count [flags] <lint.log>...",
	Short: "Count error lines per category",
	Args:  usageArgs(cobra.MinimumNArgs(1)),
	RunE:  runCount,
}

func init() {
	countCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	countCmd.Flags().Int("jobs", 0, "logs parsed in parallel (0 = GOMAXPROCS)")
	countCmd.Flags().String("suffix", "", "source suffix marking block terminators")
}

func runCount(cmd *cobra.Command, args []string) error {
	formatValue, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	format, err := report.ParseFormat(formatValue)
	if err != nil {
		return fmt.Errorf("%w: %w", errUsage, err)
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return err
	}
	suffix, err := cmd.Flags().GetString("suffix")
	if err != nil {
		return err
	}

	env, err := loadEnv(cmd)
	if err != nil {
		return err
	}
	defer env.finish()

	cfg, err := env.config()
	if err != nil {
		return err
	}
	if suffix == "" {
		suffix = cfg.Log.Suffix
	}
	registry, err := cfg.Registry()
	if err != nil {
		return err
	}

	phase := env.timer.Begin("count")
	counts, err := stats.CountLogs(cmd.Context(), lintlog.NewParser(suffix), args, jobs)
	env.timer.End(phase, fmt.Sprintf("%d logs", len(args)))
	if err != nil {
		return err
	}

	if format == report.FormatJSON {
		return writeCountsJSON(cmd.OutOrStdout(), counts, registry)
	}
	return writeCountsPretty(cmd.OutOrStdout(), counts, registry)
}

type countRow struct {
	stats.CategoryCount
	Fix string `json:"fix"`
}

func countRows(counts stats.Counts, registry *strategy.Registry) []countRow {
	sorted := counts.Sorted()
	rows := make([]countRow, len(sorted))
	for i, c := range sorted {
		rows[i] = countRow{CategoryCount: c, Fix: fixKind(registry, c.Category)}
	}
	return rows
}

func fixKind(registry *strategy.Registry, category string) string {
	switch {
	case !registry.Known(category):
		return "none"
	case registry.Resolve(category).Automated:
		return "auto"
	default:
		return "manual"
	}
}

func writeCountsPretty(w io.Writer, counts stats.Counts, registry *strategy.Registry) error {
	for _, r := range countRows(counts, registry) {
		if _, err := fmt.Fprintf(w, "%-32s %6d  %s\n", r.Category, r.Count, r.Fix); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "%-32s %6d\n", "total", counts.Total())
	return err
}

func writeCountsJSON(w io.Writer, counts stats.Counts, registry *strategy.Registry) error {
	payload := struct {
		Categories []countRow `json:"categories"`
		Total      int        `json:"total"`
	}{Categories: countRows(counts, registry), Total: counts.Total()}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}
