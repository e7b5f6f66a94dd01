package fix

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"

	"lintfix/internal/lintlog"
	"lintfix/internal/strategy"
	"lintfix/internal/trace"
)

// ErrLineOutOfRange is returned when a record targets a line the file does not have.
var ErrLineOutOfRange = errors.New("record line is outside the file")

// Resolver picks the strategy for a category.
type Resolver interface {
	Resolve(category string) strategy.Strategy
}

// Tally counts lines changed versus left identical.
type Tally struct {
	Fixed   int
	Unfixed int
}

// Total returns the number of records counted.
func (t Tally) Total() int { return t.Fixed + t.Unfixed }

// Add accumulates o into t.
func (t *Tally) Add(o Tally) {
	t.Fixed += o.Fixed
	t.Unfixed += o.Unfixed
}

// LineChange records one line rewritten by a strategy.
type LineChange struct {
	Line     int
	Category string
	Before   string
	After    string
}

// FileResult summarises what happened to one file.
type FileResult struct {
	Path    string
	Tally   Tally
	Changes []LineChange
	Written bool
	Diff    string // filled in dry-run mode
}

// Options configures an Editor.
type Options struct {
	// DryRun computes the result and a diff preview without touching the file.
	DryRun bool
	// Journal, when set, receives the original bytes before a file is overwritten.
	Journal *Journal
}

// Editor applies records to source files.
type Editor struct {
	resolver Resolver
	opts     Options
}

// NewEditor creates an Editor that resolves strategies through r.
func NewEditor(r Resolver, opts Options) *Editor {
	return &Editor{resolver: r, opts: opts}
}

// ApplyFile applies records, in order, to the file at path and rewrites it in place.
//
// Each record rewrites lines[Line-1]; records that target the same line
// compose, so the second one sees the output of the first. The file is written
// only when at least one line changed, and not at all when a record points
// outside the file: a partially fixed file would be worse than either version.
func (e *Editor) ApplyFile(ctx context.Context, path string, records []lintlog.Record) (FileResult, error) {
	res := FileResult{Path: path}
	if err := ctx.Err(); err != nil {
		return res, err
	}

	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopeFile, "fix:"+path, trace.CurrentSpan(ctx).SpanID)
	defer func() {
		span.WithExtra("fixed", strconv.Itoa(res.Tally.Fixed)).
			WithExtra("unfixed", strconv.Itoa(res.Tally.Unfixed)).
			End("")
	}()

	info, err := os.Stat(path)
	if err != nil {
		return res, fmt.Errorf("stat %s: %w", path, err)
	}
	// #nosec G304 -- path comes from the lint log
	content, err := os.ReadFile(path)
	if err != nil {
		return res, fmt.Errorf("read %s: %w", path, err)
	}

	doc := splitLines(content)
	for _, rec := range records {
		idx := rec.Index()
		if idx < 0 || idx >= len(doc.lines) {
			return res, fmt.Errorf("%s:%d: %w (file has %d lines)", path, rec.Line, ErrLineOutOfRange, len(doc.lines))
		}
		before := doc.lines[idx]
		after := e.resolver.Resolve(rec.Category).Apply(before, rec.Message)
		doc.lines[idx] = after
		if after == before {
			res.Tally.Unfixed++
			trace.Point(tracer, trace.ScopeRecord, rec.Category, "line "+strconv.Itoa(rec.Line)+" unchanged", span.ID())
			continue
		}
		trace.Point(tracer, trace.ScopeRecord, rec.Category, "line "+strconv.Itoa(rec.Line)+" fixed", span.ID())
		res.Tally.Fixed++
		res.Changes = append(res.Changes, LineChange{
			Line:     rec.Line,
			Category: rec.Category,
			Before:   before,
			After:    after,
		})
	}

	if res.Tally.Fixed == 0 {
		return res, nil
	}

	out := doc.bytes()
	if e.opts.DryRun {
		res.Diff = Preview(path, content, out)
		return res, nil
	}

	if e.opts.Journal != nil {
		if err := e.opts.Journal.Record(path, content, info.Mode()); err != nil {
			return res, fmt.Errorf("backup %s: %w", path, err)
		}
	}
	if err := os.WriteFile(path, out, info.Mode()); err != nil {
		return res, fmt.Errorf("write %s: %w", path, err)
	}
	res.Written = true
	return res, nil
}
