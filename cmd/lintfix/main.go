package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"lintfix/internal/lintlog"
	"lintfix/internal/version"
)

// Exit statuses.
const (
	exitOK          = 0
	exitFileFailed  = 1
	exitConfigError = 2
	exitParseError  = 3
)

var (
	// errUsage marks command line mistakes; they exit like configuration errors.
	errUsage = errors.New("usage")
	// errFilesFailed is returned when at least one source file could not be fixed.
	errFilesFailed = errors.New("some files could not be fixed")
)

var rootCmd = &cobra.Command{
	Use:           "lintfix",
	Short:         "Apply mechanical fixes from a linter log",
	Long:          `lintfix reads an ESLint-style log and rewrites the flagged lines in place.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(fixCmd)
	rootCmd.AddCommand(countCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(restoreCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	rootCmd.PersistentFlags().String("config", "", "path to lintfix.toml (default: search upwards from the working directory)")
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "only report warnings and errors")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().String("log-file", "", "also append log messages to this file")
	rootCmd.PersistentFlags().String("trace", "", "write trace events to this file (\"-\" for stderr)")
	rootCmd.PersistentFlags().String("trace-level", "off", "trace level (off|run|file|record)")

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %w", errUsage, err)
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil && !errors.Is(err, errFilesFailed) {
		// errFilesFailed was already reported file by file
		fmt.Fprintln(os.Stderr, color.New(color.FgRed).Sprint("lintfix: ", err))
	}
	os.Exit(exitCode(err))
}

func exitCode(err error) int {
	var parseErr *lintlog.ParseError
	var configErr *lintlog.ConfigError
	switch {
	case err == nil:
		return exitOK
	case errors.As(err, &parseErr):
		return exitParseError
	case errors.As(err, &configErr), errors.Is(err, errUsage):
		return exitConfigError
	default:
		return exitFileFailed
	}
}

// usageArgs wraps a cobra argument validator so its errors count as usage errors.
func usageArgs(check cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := check(cmd, args); err != nil {
			return fmt.Errorf("%w: %w", errUsage, err)
		}
		return nil
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
