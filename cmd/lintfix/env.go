package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"lintfix/internal/config"
	"lintfix/internal/diag"
	"lintfix/internal/observ"
)

// cliEnv bundles what every command derives from the persistent flags.
type cliEnv struct {
	reporter diag.Reporter
	// fileReporter is the --log-file part of reporter alone, used while the TUI owns the terminal.
	fileReporter diag.Reporter
	color        bool
	timer        *observ.Timer
	stderr       io.Writer

	configPath string
	closers    []func()
}

func loadEnv(cmd *cobra.Command) (*cliEnv, error) {
	flags := cmd.Root().PersistentFlags()
	colorValue, err := flags.GetString("color")
	if err != nil {
		return nil, err
	}
	quiet, err := flags.GetBool("quiet")
	if err != nil {
		return nil, err
	}
	timings, err := flags.GetBool("timings")
	if err != nil {
		return nil, err
	}
	logFile, err := flags.GetString("log-file")
	if err != nil {
		return nil, err
	}
	configPath, err := flags.GetString("config")
	if err != nil {
		return nil, err
	}

	colorMode, err := readToggle("color", colorValue)
	if err != nil {
		return nil, err
	}

	env := &cliEnv{
		color:        colorMode.enabled(os.Stderr),
		stderr:       cmd.ErrOrStderr(),
		configPath:   configPath,
		fileReporter: diag.Nop,
	}
	minSev := diag.SevInfo
	if quiet {
		minSev = diag.SevWarning
	}
	console := diag.NewStreamReporter(env.stderr, diag.StreamOptions{Color: env.color, Min: minSev})
	env.reporter = console

	if logFile != "" {
		// #nosec G304 -- user-provided log path
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("%w: open log file: %w", errUsage, err)
		}
		env.closers = append(env.closers, func() { _ = f.Close() })
		env.fileReporter = diag.NewStreamReporter(f, diag.StreamOptions{})
		env.reporter = diag.MultiReporter{console, env.fileReporter}
	}

	if timings {
		env.timer = observ.NewTimer()
	}

	cleanup, err := setupTracing(cmd)
	if err != nil {
		env.close()
		return nil, err
	}
	env.closers = append(env.closers, cleanup)
	return env, nil
}

// config loads --config, or the nearest lintfix.toml.
func (e *cliEnv) config() (config.Config, error) {
	if e.configPath != "" {
		return config.Load(e.configPath)
	}
	return config.Discover(".")
}

// finish prints timings and releases resources.
func (e *cliEnv) finish() {
	if e.timer != nil {
		fmt.Fprint(e.stderr, e.timer.Summary())
	}
	e.close()
}

func (e *cliEnv) close() {
	for i := len(e.closers) - 1; i >= 0; i-- {
		e.closers[i]()
	}
	e.closers = nil
}
