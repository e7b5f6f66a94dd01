package lintlog

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func fakeExists(paths ...string) func(string) bool {
	set := make(map[string]bool, len(paths))
	for _, p := range paths {
		set[p] = true
	}
	return func(p string) bool { return set[p] }
}

func TestParseGroupsRecordsPerFile(t *testing.T) {
	log := strings.Join([]string{
		"/src/widget.js",
		"  3:5  error  Expected indentation of 4 spaces  indentation",
		"  7:1  error  Missing semicolon  missing-semicolon   ",
		"",
		"/src/other.js",
		"  1:10  warning  Strings must use singlequote  quote-style",
		"",
		"/src/dist/bundle.js",
		"✖ 3 problems (2 errors, 1 warning)",
	}, "\n")

	p := &Parser{Exists: fakeExists("/src/widget.js", "/src/other.js")}
	group, err := p.Parse(strings.NewReader(log))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	files := group.Files()
	if len(files) != 2 || files[0] != "/src/widget.js" || files[1] != "/src/other.js" {
		t.Fatalf("unexpected files: %v", files)
	}

	widget := group.Records("/src/widget.js")
	if len(widget) != 2 {
		t.Fatalf("expected 2 records for widget.js, got %d", len(widget))
	}
	first := widget[0]
	if first.Line != 3 || first.Column != 5 {
		t.Fatalf("position = %s, want 3:5", first.Position())
	}
	if first.Severity != "error" {
		t.Fatalf("severity = %q, want error", first.Severity)
	}
	if first.Message != "Expected indentation of 4 spaces" {
		t.Fatalf("message = %q", first.Message)
	}
	if first.Category != "indentation" {
		t.Fatalf("category = %q", first.Category)
	}
	if first.Source != "/src/widget.js" {
		t.Fatalf("source = %q", first.Source)
	}
	if first.LogLine != 2 {
		t.Fatalf("log line = %d, want 2", first.LogLine)
	}
	if widget[1].Category != "missing-semicolon" {
		t.Fatalf("trailing whitespace should be stripped, got category %q", widget[1].Category)
	}
	if group.Total() != 3 {
		t.Fatalf("total = %d, want 3", group.Total())
	}
}

func TestParseKeepsEmptyGroups(t *testing.T) {
	log := "/src/clean.js\n\n/src/dirty.js\n1:1 error Missing semicolon semi\n"
	p := &Parser{Exists: fakeExists("/src/clean.js", "/src/dirty.js")}
	group, err := p.Parse(strings.NewReader(log))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !group.Has("/src/clean.js") {
		t.Fatalf("header without records must still produce a group")
	}
	if got := len(group.Records("/src/clean.js")); got != 0 {
		t.Fatalf("expected empty group, got %d records", got)
	}
	if group.Len() != 2 {
		t.Fatalf("expected 2 files, got %d", group.Len())
	}
}

func TestParseTerminatorClosesBlock(t *testing.T) {
	log := strings.Join([]string{
		"/src/a.js",
		"1:1 error Missing semicolon semi",
		"summary-for-a.js",
		"2:1 this line is outside of any block and not a record",
	}, "\n")
	// The last line is record shaped, but the terminator names no file on
	// disk, so it must be reported rather than ignored.
	p := &Parser{Exists: fakeExists("/src/a.js")}
	_, err := p.Parse(strings.NewReader(log))
	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigError, got %v", err)
	}
	if !errors.Is(err, ErrSourceMissing) {
		t.Fatalf("expected ErrSourceMissing, got %v", err)
	}
	if cfgErr.Path != "summary-for-a.js" || cfgErr.LogLine != 4 {
		t.Fatalf("unexpected error details: %+v", cfgErr)
	}
}

func TestParseSummaryInsideOpenBlockIsParseError(t *testing.T) {
	// blank lines do not close a block
	log := strings.Join([]string{
		"/src/a.js",
		"1:1 error Missing semicolon semi",
		"",
		"✖ 1 problem (1 error, 0 warnings)",
	}, "\n")
	p := &Parser{Exists: fakeExists("/src/a.js")}
	_, err := p.Parse(strings.NewReader(log))
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected ParseError, got %v", err)
	}
	if pe.LogLine != 4 {
		t.Fatalf("log line = %d, want 4", pe.LogLine)
	}
}

func TestParseMissingHeaderEdgeCases(t *testing.T) {
	t.Run("without suffix inside block", func(t *testing.T) {
		// a missing path without the source suffix reads as an error line
		log := "/src/a.js\n1:1 error Missing semicolon semi\n/src/gone\n"
		p := &Parser{Exists: fakeExists("/src/a.js")}
		_, err := p.Parse(strings.NewReader(log))
		var pe *ParseError
		if !errors.As(err, &pe) {
			t.Fatalf("expected ParseError, got %v", err)
		}
		if errors.Is(err, ErrSourceMissing) {
			t.Fatalf("unexpected ErrSourceMissing: %v", err)
		}
		if pe.LogLine != 3 {
			t.Fatalf("log line = %d, want 3", pe.LogLine)
		}
	})
	t.Run("with suffix and no records", func(t *testing.T) {
		log := "/src/gone.js\n\n/src/a.js\n1:1 error Missing semicolon semi\n/src/gone.js\n"
		p := &Parser{Exists: fakeExists("/src/a.js")}
		group, err := p.Parse(strings.NewReader(log))
		if err != nil {
			t.Fatalf("Parse: %v", err)
		}
		if group.Has("/src/gone.js") {
			t.Fatalf("missing file must not get a group")
		}
		if files := group.Files(); len(files) != 1 || files[0] != "/src/a.js" {
			t.Fatalf("unexpected files: %v", files)
		}
	})
}

func TestParseIgnoresNoiseOutsideBlocks(t *testing.T) {
	log := strings.Join([]string{
		"> eslint src",
		"",
		"/src/a.js",
		"1:1 error Missing semicolon semi",
		"/src/a.js.bak.js",
		"",
		"✖ 1 problem (1 error, 0 warnings)",
	}, "\n")
	p := &Parser{Exists: fakeExists("/src/a.js")}
	group, err := p.Parse(strings.NewReader(log))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if group.Total() != 1 {
		t.Fatalf("expected 1 record, got %d", group.Total())
	}
}

func TestParseMissingHeaderFileIsConfigError(t *testing.T) {
	log := "/src/gone.js\n3:5  error  Expected indentation of 4 spaces  indentation\n"
	p := &Parser{Exists: fakeExists()}
	_, err := p.Parse(strings.NewReader(log))
	if !errors.Is(err, ErrSourceMissing) {
		t.Fatalf("expected ErrSourceMissing, got %v", err)
	}
}

func TestParseMalformedLineFailsRun(t *testing.T) {
	cases := []struct {
		name string
		line string
	}{
		{"too few tokens", "3:5 indent"},
		{"no colon", "35 error Missing semicolon semi"},
		{"non numeric", "x:5 error Missing semicolon semi"},
		{"zero line", "0:5 error Missing semicolon semi"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := &Parser{Exists: fakeExists("/src/a.js")}
			_, err := p.Parse(strings.NewReader("/src/a.js\n" + tc.line + "\n"))
			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("expected ParseError, got %v", err)
			}
			if pe.LogLine != 2 {
				t.Fatalf("log line = %d, want 2", pe.LogLine)
			}
		})
	}
}

func TestParseReopenedHeaderContinuesGroup(t *testing.T) {
	log := "/src/a.js\n1:1 error Missing semicolon semi\n/src/b.js\n/src/a.js\n2:1 error Missing semicolon semi\n"
	p := &Parser{Exists: fakeExists("/src/a.js", "/src/b.js")}
	group, err := p.Parse(strings.NewReader(log))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	recs := group.Records("/src/a.js")
	if len(recs) != 2 || recs[0].Line != 1 || recs[1].Line != 2 {
		t.Fatalf("unexpected records: %+v", recs)
	}
	if files := group.Files(); files[0] != "/src/a.js" || files[1] != "/src/b.js" {
		t.Fatalf("file order changed: %v", files)
	}
}

func TestParseRecordWithoutSeverity(t *testing.T) {
	rec, err := ParseRecord("12:3 Unexpected console statement no-console")
	if err != nil {
		t.Fatalf("ParseRecord: %v", err)
	}
	if rec.Severity != "" {
		t.Fatalf("severity = %q, want empty", rec.Severity)
	}
	if rec.Message != "Unexpected console statement" {
		t.Fatalf("message = %q", rec.Message)
	}
	if rec.Index() != 11 {
		t.Fatalf("index = %d, want 11", rec.Index())
	}
}

func TestParseFileUsesFilesystem(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "widget.js")
	if err := os.WriteFile(src, []byte("const a = 1\n"), 0o600); err != nil {
		t.Fatalf("write source: %v", err)
	}
	logPath := filepath.Join(dir, "lint.txt")
	content := src + "\n  1:12  error  Missing semicolon  semi\n"
	if err := os.WriteFile(logPath, []byte(content), 0o600); err != nil {
		t.Fatalf("write log: %v", err)
	}

	group, err := NewParser("").ParseFile(logPath)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	recs := group.Records(src)
	if len(recs) != 1 || recs[0].Category != "semi" {
		t.Fatalf("unexpected records: %+v", recs)
	}
}

func TestClassify(t *testing.T) {
	p := &Parser{Suffix: ".ts", Exists: fakeExists("/src/a.ts")}
	cases := []struct {
		line  string
		state State
		want  LineKind
	}{
		{"", StateInBlock, KindBlank},
		{"/src/a.ts", StateIdle, KindHeader},
		{"/src/missing.ts", StateInBlock, KindTerminator},
		{"1:1 error x semi", StateInBlock, KindRecord},
		{"1:1 error x semi", StateIdle, KindNoise},
	}
	for _, tc := range cases {
		if got := p.Classify(tc.line, tc.state); got != tc.want {
			t.Errorf("Classify(%q, %s) = %s, want %s", tc.line, tc.state, got, tc.want)
		}
	}
}
