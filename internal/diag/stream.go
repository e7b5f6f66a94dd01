package diag

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/fatih/color"
)

// StreamReporter writes one line per message:
//
//	[2006-01-02 15:04:05 INFO lintfix]: path: message
//
// With Color enabled the whole line is green, yellow or red by severity.
type StreamReporter struct {
	mu    sync.Mutex
	w     io.Writer
	name  string
	min   Severity
	now   func() time.Time
	color map[Severity]*color.Color
}

// StreamOptions configures a StreamReporter.
type StreamOptions struct {
	Name  string   // logger name shown in every line
	Color bool     // force colors on (true) or off (false)
	Min   Severity // drop messages below this severity
	Now   func() time.Time
}

// NewStreamReporter creates a reporter writing to w.
func NewStreamReporter(w io.Writer, opts StreamOptions) *StreamReporter {
	name := opts.Name
	if name == "" {
		name = "lintfix"
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	palette := map[Severity]*color.Color{
		SevInfo:    color.New(color.FgGreen),
		SevWarning: color.New(color.FgYellow),
		SevError:   color.New(color.FgRed),
	}
	for _, c := range palette {
		if opts.Color {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return &StreamReporter{
		w:     w,
		name:  name,
		min:   opts.Min,
		now:   now,
		color: palette,
	}
}

func (r *StreamReporter) Report(sev Severity, path, msg string) {
	if r == nil || r.w == nil || sev < r.min {
		return
	}
	line := fmt.Sprintf("[%s %s %s]: ", r.now().Format("2006-01-02 15:04:05"), sev, r.name)
	if path != "" {
		line += path + ": "
	}
	line += msg

	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.color[sev]; ok {
		line = c.Sprint(line)
	}
	// Best-effort write - a broken console must not abort the run
	_, _ = fmt.Fprintln(r.w, line)
}
