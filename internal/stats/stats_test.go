package stats

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"lintfix/internal/lintlog"
	"lintfix/internal/strategy"
)

func sampleGroup() *lintlog.Group {
	g := lintlog.NewGroup()
	g.Open("src/userProfileCard.js")
	g.Append("src/userProfileCard.js", lintlog.Record{Line: 3, Column: 5, Message: "Expected indentation of 4 spaces", Category: "indentation"})
	g.Append("src/userProfileCard.js", lintlog.Record{Line: 9, Column: 1, Message: "Missing semicolon", Category: "missing-semicolon"})
	g.Open("src/empty.js")
	g.Open("src/api_client.js")
	g.Append("src/api_client.js", lintlog.Record{Line: 1, Column: 7, Message: "Identifier 'my_var' is not in camel case", Category: "camelcase"})
	g.Append("src/api_client.js", lintlog.Record{Line: 2, Column: 1, Message: "Missing semicolon", Category: "missing-semicolon"})
	return g
}

func TestCount(t *testing.T) {
	c := Count(sampleGroup())
	if c.Total() != 4 {
		t.Fatalf("total = %d, want 4", c.Total())
	}
	rows := c.Sorted()
	if rows[0] != (CategoryCount{Category: "missing-semicolon", Count: 2}) {
		t.Fatalf("unexpected first row: %+v", rows[0])
	}
	if rows[1].Category != "camelcase" || rows[2].Category != "indentation" {
		t.Fatalf("ties must sort by name: %+v", rows)
	}
}

func TestCountLogs(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.js")
	if err := os.WriteFile(src, []byte("x\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	var paths []string
	for i, body := range []string{
		"  1:1  error  Missing semicolon  semi\n",
		"  1:1  error  Missing semicolon  semi\n  1:2  error  Strings must use singlequote  quotes\n",
	} {
		p := filepath.Join(dir, "lint"+string(rune('a'+i))+".log")
		if err := os.WriteFile(p, []byte(src+"\n"+body), 0o644); err != nil {
			t.Fatal(err)
		}
		paths = append(paths, p)
	}

	got, err := CountLogs(context.Background(), lintlog.NewParser(""), paths, 2)
	if err != nil {
		t.Fatalf("CountLogs: %v", err)
	}
	if got["semi"] != 2 || got["quotes"] != 1 {
		t.Fatalf("unexpected counts: %v", got)
	}

	_, err = CountLogs(context.Background(), lintlog.NewParser(""), append(paths, filepath.Join(dir, "missing.log")), 2)
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestExport(t *testing.T) {
	var buf bytes.Buffer
	err := Export(&buf, sampleGroup(), ExportOptions{
		Owner:    "frontend",
		Recorded: time.Date(2024, 5, 2, 10, 0, 0, 0, time.UTC),
		Resolver: strategy.NewDefault(strategy.Options{}),
	})
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("csv: %v", err)
	}
	if len(rows) != 5 {
		t.Fatalf("expected header + 4 rows, got %d", len(rows))
	}
	if strings.Join(rows[0], ",") != strings.Join(Columns, ",") {
		t.Fatalf("unexpected header %v", rows[0])
	}
	want := []string{"src/userProfileCard.js", "User Profile Card", "indentation", "3", "Expected indentation of 4 spaces", "frontend", "2024-05-02", "auto", ""}
	if strings.Join(rows[1], "|") != strings.Join(want, "|") {
		t.Fatalf("row 1 = %v, want %v", rows[1], want)
	}
	if rows[3][1] != "Api Client" || rows[3][7] != "manual" {
		t.Fatalf("unexpected camelcase row: %v", rows[3])
	}
}

func TestExportEmpty(t *testing.T) {
	g := lintlog.NewGroup()
	g.Open("a.js")
	if err := Export(&bytes.Buffer{}, g, ExportOptions{}); !errors.Is(err, ErrNoRecords) {
		t.Fatalf("expected ErrNoRecords, got %v", err)
	}
}

func TestFeatureName(t *testing.T) {
	cases := map[string]string{
		"src/userProfileCard.js": "User Profile Card",
		"/a/b/api_client.js":     "Api Client",
		"index.js":               "Index",
		"date-picker.test.js":    "Date Picker Test",
	}
	for in, want := range cases {
		if got := FeatureName(in); got != want {
			t.Errorf("FeatureName(%q) = %q, want %q", in, got, want)
		}
	}
}
