// Package report renders the outcome of a fix run.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"lintfix/internal/driver"
)

// Format selects the output encoding.
type Format string

const (
	FormatPretty Format = "pretty"
	FormatJSON   Format = "json"
)

// ParseFormat validates a --format value.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case "", FormatPretty:
		return FormatPretty, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unknown format %q (expected pretty|json)", s)
	}
}

// Options tune the pretty renderer.
type Options struct {
	Color bool
	Width int // max width of a path inside a box; 0 means 60
}

// Write renders res in the requested format.
func Write(w io.Writer, format Format, res *driver.Result, opts Options) error {
	if format == FormatJSON {
		return JSON(w, res)
	}
	return Pretty(w, res, opts)
}

// Pretty draws one box per file with its fixed/unfixed tally, any dry-run
// diff under it, and a totals box at the end.
func Pretty(w io.Writer, res *driver.Result, opts Options) error {
	if res == nil {
		return nil
	}
	width := opts.Width
	if width <= 0 {
		width = 60
	}
	st := newStyles(w, opts.Color)

	var b strings.Builder
	for _, f := range res.Files {
		title := truncate(f.Path, width)
		var body string
		if f.Err != nil {
			body = st.title.Render(title) + "\n" + st.failed.Render("failed: "+f.Err.Error())
		} else {
			body = st.title.Render(title) + "\n" + tallyLines(st, f.Tally.Fixed, f.Tally.Unfixed)
		}
		b.WriteString(st.box.Render(body))
		b.WriteString("\n")
		if f.Diff != "" {
			b.WriteString(f.Diff)
		}
	}

	total := st.title.Render(fmt.Sprintf("%d files", len(res.Files)))
	total += "\n" + tallyLines(st, res.Total.Fixed, res.Total.Unfixed)
	if n := len(res.Failed()); n > 0 {
		total += "\n" + st.failed.Render(fmt.Sprintf("failed   %4d", n))
	}
	b.WriteString(st.box.Render(total))
	b.WriteString("\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func tallyLines(st styles, fixed, unfixed int) string {
	return st.fixed.Render(fmt.Sprintf("fixed    %4d", fixed)) + "\n" +
		st.unfixed.Render(fmt.Sprintf("unfixed  %4d", unfixed))
}

type styles struct {
	box     lipgloss.Style
	title   lipgloss.Style
	fixed   lipgloss.Style
	unfixed lipgloss.Style
	failed  lipgloss.Style
}

func newStyles(w io.Writer, color bool) styles {
	r := lipgloss.NewRenderer(w)
	st := styles{
		box:     r.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1),
		title:   r.NewStyle(),
		fixed:   r.NewStyle(),
		unfixed: r.NewStyle(),
		failed:  r.NewStyle(),
	}
	if color {
		st.title = st.title.Bold(true)
		st.fixed = st.fixed.Foreground(lipgloss.Color("2"))
		st.unfixed = st.unfixed.Foreground(lipgloss.Color("3"))
		st.failed = st.failed.Foreground(lipgloss.Color("1"))
	}
	return st
}

type jsonChange struct {
	Line     int    `json:"line"`
	Category string `json:"category"`
	Before   string `json:"before"`
	After    string `json:"after"`
}

type jsonFile struct {
	Path    string       `json:"path"`
	Fixed   int          `json:"fixed"`
	Unfixed int          `json:"unfixed"`
	Written bool         `json:"written"`
	Error   string       `json:"error,omitempty"`
	Changes []jsonChange `json:"changes,omitempty"`
	Diff    string       `json:"diff,omitempty"`
}

type jsonReport struct {
	Files   []jsonFile `json:"files"`
	Fixed   int        `json:"fixed"`
	Unfixed int        `json:"unfixed"`
	Failed  int        `json:"failed"`
}

// JSON writes res as one indented JSON document.
func JSON(w io.Writer, res *driver.Result) error {
	out := jsonReport{Files: []jsonFile{}}
	if res != nil {
		for _, f := range res.Files {
			jf := jsonFile{
				Path:    f.Path,
				Fixed:   f.Tally.Fixed,
				Unfixed: f.Tally.Unfixed,
				Written: f.Written,
				Diff:    f.Diff,
			}
			if f.Err != nil {
				jf.Error = f.Err.Error()
			}
			for _, c := range f.Changes {
				jf.Changes = append(jf.Changes, jsonChange(c))
			}
			out.Files = append(out.Files, jf)
		}
		out.Fixed = res.Total.Fixed
		out.Unfixed = res.Total.Unfixed
		out.Failed = len(res.Failed())
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// truncate shortens value from the left so the file name stays visible.
func truncate(value string, width int) string {
	if runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	rs := []rune(value)
	for i := range rs {
		tail := string(rs[i:])
		if runewidth.StringWidth(tail) <= width-3 {
			return "..." + tail
		}
	}
	return "..."
}
