package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"lintfix/internal/diag"
	"lintfix/internal/driver"
	"lintfix/internal/fix"
	"lintfix/internal/report"
)

var fixCmd = &cobra.Command{
	Use:   "fix [flags] [-f] <lint.log>",
	Short: "Apply fixes for every error line in a lint log",
	Long: `Read the lint log, then rewrite each flagged line of each listed source file
with the strategy registered for its category. Unknown categories are left alone.`,
	Args: usageArgs(cobra.MaximumNArgs(1)),
	RunE: runFix,
}

func init() {
	fixCmd.Flags().StringP("file", "f", "", "path of the lint log")
	fixCmd.Flags().Bool("dry-run", false, "show what would change without writing files")
	fixCmd.Flags().String("backup", "", "save original file contents to this journal (see `lintfix restore`)")
	fixCmd.Flags().String("format", "pretty", "summary format (pretty|json)")
	fixCmd.Flags().String("ui", "auto", "live progress view (auto|on|off)")
	fixCmd.Flags().String("suffix", "", "source suffix marking block terminators (default from config, \".js\")")
}

// fixParams is the parsed form of the fix command line.
type fixParams struct {
	logPath string
	dryRun  bool
	backup  string
	format  report.Format
	ui      toggleMode
	suffix  string
}

func readFixParams(cmd *cobra.Command, args []string) (fixParams, error) {
	var p fixParams
	var err error
	flags := cmd.Flags()

	if p.logPath, err = flags.GetString("file"); err != nil {
		return p, err
	}
	if len(args) == 1 {
		if p.logPath != "" && p.logPath != args[0] {
			return p, fmt.Errorf("%w: log given both as --file and as an argument", errUsage)
		}
		p.logPath = args[0]
	}
	if p.logPath == "" {
		return p, fmt.Errorf("%w: no lint log given; pass it as an argument or with -f", errUsage)
	}
	if p.dryRun, err = flags.GetBool("dry-run"); err != nil {
		return p, err
	}
	if p.backup, err = flags.GetString("backup"); err != nil {
		return p, err
	}
	if p.suffix, err = flags.GetString("suffix"); err != nil {
		return p, err
	}
	formatValue, err := flags.GetString("format")
	if err != nil {
		return p, err
	}
	if p.format, err = report.ParseFormat(formatValue); err != nil {
		return p, fmt.Errorf("%w: %w", errUsage, err)
	}
	uiValue, err := flags.GetString("ui")
	if err != nil {
		return p, err
	}
	if p.ui, err = readToggle("ui", uiValue); err != nil {
		return p, err
	}
	return p, nil
}

func runFix(cmd *cobra.Command, args []string) error {
	params, err := readFixParams(cmd, args)
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
	registry, err := cfg.Registry()
	if err != nil {
		return err
	}

	opts := driver.Options{
		LogPath:  params.logPath,
		Suffix:   cfg.Log.Suffix,
		Resolver: registry,
		DryRun:   params.dryRun,
		Reporter: env.reporter,
		Timer:    env.timer,
	}
	if params.suffix != "" {
		opts.Suffix = params.suffix
	}
	backup := params.backup
	if backup == "" {
		backup = cfg.Fix.Backup
	}
	if backup != "" && !params.dryRun {
		opts.Journal = fix.NewJournal(backup)
	}

	res, err := runDriver(cmd.Context(), opts, params.ui, env)
	if err != nil {
		return err
	}

	if err := report.Write(cmd.OutOrStdout(), params.format, res, report.Options{Color: env.color}); err != nil {
		return err
	}
	if opts.Journal != nil && opts.Journal.Len() > 0 {
		diag.Infof(env.reporter, opts.Journal.Path(), "saved originals of %d files; undo with `lintfix restore %s`", opts.Journal.Len(), opts.Journal.Path())
	}
	if failed := res.Failed(); len(failed) > 0 {
		diag.Errorf(env.reporter, "", "%d of %d files could not be fixed", len(failed), len(res.Files))
		return fmt.Errorf("%w: %d of %d", errFilesFailed, len(failed), len(res.Files))
	}
	return nil
}

func runDriver(ctx context.Context, opts driver.Options, mode toggleMode, env *cliEnv) (*driver.Result, error) {
	if mode.enabled(stdout()) {
		// the TUI owns the terminal; console messages would tear it
		opts.Reporter = env.fileReporter
		return runFixWithUI(ctx, "lintfix "+opts.LogPath, opts)
	}
	return driver.Run(ctx, opts)
}
