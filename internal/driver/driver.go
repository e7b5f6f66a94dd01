// Package driver runs a lint log through the parser and the file editor.
package driver

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"lintfix/internal/diag"
	"lintfix/internal/fix"
	"lintfix/internal/lintlog"
	"lintfix/internal/observ"
	"lintfix/internal/strategy"
	"lintfix/internal/trace"
)

// ErrLogNotFound is wrapped in a *lintlog.ConfigError when the log path is unusable.
var ErrLogNotFound = errors.New("lint log not found")

// Options configures Run.
type Options struct {
	LogPath string
	// Parser reads the log; nil means lintlog.NewParser(Suffix).
	Parser *lintlog.Parser
	Suffix string

	Resolver fix.Resolver
	DryRun   bool
	Journal  *fix.Journal

	Reporter diag.Reporter
	Progress ProgressSink
	Timer    *observ.Timer
}

// FileOutcome pairs an editor result with the error that stopped it, if any.
type FileOutcome struct {
	fix.FileResult
	Err error
}

// Result is the outcome of a run.
type Result struct {
	Group *lintlog.Group
	Files []FileOutcome
	Total fix.Tally
}

// Failed returns the files whose edit failed.
func (r *Result) Failed() []FileOutcome {
	if r == nil {
		return nil
	}
	var out []FileOutcome
	for _, f := range r.Files {
		if f.Err != nil {
			out = append(out, f)
		}
	}
	return out
}

// Run validates the log path, parses the log and fixes every file it names.
//
// Configuration and parse errors are returned before any source file is
// opened. A failure on one file is recorded in its FileOutcome and the run
// moves on to the next file.
func Run(ctx context.Context, opts Options) (*Result, error) {
	reporter := opts.Reporter
	if reporter == nil {
		reporter = diag.Nop
	}
	resolver := opts.Resolver
	if resolver == nil {
		resolver = strategy.NewDefault(strategy.Options{})
	}
	tracer := trace.FromContext(ctx)

	if err := checkLog(opts.LogPath); err != nil {
		return nil, err
	}

	parser := opts.Parser
	if parser == nil {
		parser = lintlog.NewParser(opts.Suffix)
	}

	parseSpan := trace.Begin(tracer, trace.ScopeRun, "parse", trace.CurrentSpan(ctx).SpanID)
	phase := opts.Timer.Begin("parse")
	emit(opts.Progress, Event{Stage: StageParse, Status: StatusWorking})
	group, err := parser.ParseFile(opts.LogPath)
	if err != nil {
		opts.Timer.End(phase, "failed")
		parseSpan.End(err.Error())
		emit(opts.Progress, Event{Stage: StageParse, Status: StatusError})
		return nil, err
	}
	note := fmt.Sprintf("%d files, %d records", group.Len(), group.Total())
	opts.Timer.End(phase, note)
	parseSpan.WithExtra("files", strconv.Itoa(group.Len())).End("")
	emit(opts.Progress, Event{Stage: StageParse, Status: StatusDone})
	diag.Infof(reporter, opts.LogPath, "parsed %s", note)

	for _, path := range group.Files() {
		emit(opts.Progress, Event{Stage: StageFix, Status: StatusQueued, File: path})
	}

	res := &Result{Group: group, Files: make([]FileOutcome, 0, group.Len())}
	editor := fix.NewEditor(resolver, fix.Options{DryRun: opts.DryRun, Journal: opts.Journal})

	fixSpan := trace.Begin(tracer, trace.ScopeRun, "fix", trace.CurrentSpan(ctx).SpanID)
	fixCtx := trace.WithSpan(ctx, fixSpan)
	phase = opts.Timer.Begin("fix")
	defer func() {
		opts.Timer.End(phase, fmt.Sprintf("%d fixed, %d unfixed", res.Total.Fixed, res.Total.Unfixed))
		fixSpan.WithExtra("fixed", strconv.Itoa(res.Total.Fixed)).
			WithExtra("unfixed", strconv.Itoa(res.Total.Unfixed)).
			End("")
	}()

	for _, path := range group.Files() {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		emit(opts.Progress, Event{Stage: StageFix, Status: StatusWorking, File: path})
		diag.Infof(reporter, path, "fixing %d records", len(group.Records(path)))

		fr, err := editor.ApplyFile(fixCtx, path, group.Records(path))
		res.Files = append(res.Files, FileOutcome{FileResult: fr, Err: err})
		if err != nil {
			diag.Errorf(reporter, path, "%v", err)
			emit(opts.Progress, Event{Stage: StageFix, Status: StatusError, File: path})
			continue
		}
		res.Total.Add(fr.Tally)

		switch {
		case opts.DryRun && fr.Tally.Fixed > 0:
			diag.Infof(reporter, path, "would fix %d lines, %d left unfixed", fr.Tally.Fixed, fr.Tally.Unfixed)
		case fr.Tally.Unfixed > 0:
			diag.Warnf(reporter, path, "fixed %d lines, %d left unfixed", fr.Tally.Fixed, fr.Tally.Unfixed)
		default:
			diag.Infof(reporter, path, "fixed %d lines", fr.Tally.Fixed)
		}
		emit(opts.Progress, Event{
			Stage:   StageFix,
			Status:  StatusDone,
			File:    path,
			Fixed:   fr.Tally.Fixed,
			Unfixed: fr.Tally.Unfixed,
		})
	}
	return res, nil
}

func checkLog(path string) error {
	info, err := os.Stat(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return &lintlog.ConfigError{Path: path, Err: ErrLogNotFound}
	case err != nil:
		return &lintlog.ConfigError{Path: path, Err: fmt.Errorf("%w: %w", ErrLogNotFound, err)}
	case info.IsDir():
		return &lintlog.ConfigError{Path: path, Err: fmt.Errorf("%w: is a directory", ErrLogNotFound)}
	}
	return nil
}
