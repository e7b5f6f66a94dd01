package diag

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func fixedNow() time.Time {
	return time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)
}

func TestStreamReporterFormat(t *testing.T) {
	var buf bytes.Buffer
	r := NewStreamReporter(&buf, StreamOptions{Name: "fixer", Now: fixedNow})

	Infof(r, "/src/a.js", "fixed %d lines", 3)
	Errorf(r, "", "log not found")

	want := "[2024-03-01 12:30:00 INFO fixer]: /src/a.js: fixed 3 lines\n" +
		"[2024-03-01 12:30:00 ERROR fixer]: log not found\n"
	if buf.String() != want {
		t.Fatalf("unexpected output:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestStreamReporterMinSeverity(t *testing.T) {
	var buf bytes.Buffer
	r := NewStreamReporter(&buf, StreamOptions{Min: SevWarning, Now: fixedNow})
	Infof(r, "", "hidden")
	Warnf(r, "", "shown")
	if strings.Contains(buf.String(), "hidden") {
		t.Fatalf("info should be filtered: %q", buf.String())
	}
	if !strings.Contains(buf.String(), "WARNING lintfix]: shown") {
		t.Fatalf("warning missing: %q", buf.String())
	}
}

func TestStreamReporterColor(t *testing.T) {
	var buf bytes.Buffer
	r := NewStreamReporter(&buf, StreamOptions{Color: true, Now: fixedNow})
	Errorf(r, "", "boom")
	if !strings.Contains(buf.String(), "\x1b[31m") {
		t.Fatalf("expected red escape sequence, got %q", buf.String())
	}
}

func TestBagAndMulti(t *testing.T) {
	a, b := NewBag(), NewBag()
	multi := MultiReporter{BagReporter{Bag: a}, BagReporter{Bag: b}, nil}
	Infof(multi, "x.js", "ok")
	Errorf(multi, "y.js", "bad")

	for _, bag := range []*Bag{a, b} {
		if bag.Len() != 2 {
			t.Fatalf("expected 2 entries, got %d", bag.Len())
		}
		if !bag.HasErrors() {
			t.Fatalf("expected errors")
		}
		if bag.Count(SevWarning) != 1 {
			t.Fatalf("expected 1 entry >= warning, got %d", bag.Count(SevWarning))
		}
	}
	errs := a.Filter(func(e Entry) bool { return e.Path == "y.js" })
	if len(errs) != 1 || errs[0].Message != "bad" {
		t.Fatalf("unexpected filter result: %+v", errs)
	}
}

func TestParseSeverity(t *testing.T) {
	cases := map[string]Severity{"": SevInfo, "info": SevInfo, "WARN": SevWarning, "error": SevError}
	for in, want := range cases {
		got, err := ParseSeverity(in)
		if err != nil || got != want {
			t.Errorf("ParseSeverity(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseSeverity("loud"); err == nil {
		t.Errorf("expected error for unknown severity")
	}
}
