package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"lintfix/internal/diag"
	"lintfix/internal/lintlog"
	"lintfix/internal/stats"
)

var exportCmd = &cobra.Command{
	Use:   "export [flags] <lint.log>",
	Short: "Write the error lines of a log as spreadsheet rows (CSV)",
	Args:  usageArgs(cobra.ExactArgs(1)),
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringP("output", "o", "lint-report.csv", "CSV file to write")
	exportCmd.Flags().String("owner", "", "value of the Owner column")
	exportCmd.Flags().String("recorded", "", "value of the Recorded column: a YYYY-MM-DD date or \"today\"")
	exportCmd.Flags().String("suffix", "", "source suffix marking block terminators")
}

func runExport(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	output, err := flags.GetString("output")
	if err != nil {
		return err
	}
	owner, err := flags.GetString("owner")
	if err != nil {
		return err
	}
	recordedValue, err := flags.GetString("recorded")
	if err != nil {
		return err
	}
	suffix, err := flags.GetString("suffix")
	if err != nil {
		return err
	}
	recorded, err := parseRecorded(recordedValue, time.Now)
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

	group, err := lintlog.NewParser(suffix).ParseFile(args[0])
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(output), ".lintfix-export-*")
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	err = stats.Export(tmp, group, stats.ExportOptions{Owner: owner, Recorded: recorded, Resolver: registry})
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return err
	}
	if err := os.Rename(tmp.Name(), output); err != nil {
		return err
	}
	diag.Infof(env.reporter, output, "wrote %d rows for %d files", group.Total(), group.Len())
	return nil
}

func parseRecorded(value string, now func() time.Time) (time.Time, error) {
	switch value {
	case "":
		return time.Time{}, nil
	case "today":
		return now(), nil
	}
	t, err := time.Parse(time.DateOnly, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: --recorded: %w", errUsage, err)
	}
	return t, nil
}
