package observ

import (
	"strings"
	"testing"
	"time"
)

func TestTimerReport(t *testing.T) {
	clock := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	tm := NewTimer()
	tm.now = func() time.Time { return clock }

	parse := tm.Begin("parse")
	clock = clock.Add(5 * time.Millisecond)
	tm.End(parse, "2 files")
	fix := tm.Begin("fix")
	clock = clock.Add(10 * time.Millisecond)
	tm.End(fix, "")

	r := tm.Report()
	if len(r.Phases) != 2 {
		t.Fatalf("expected 2 phases, got %d", len(r.Phases))
	}
	if r.TotalMS != 15 {
		t.Fatalf("total = %v, want 15", r.TotalMS)
	}
	if !strings.Contains(tm.Summary(), "// 2 files") {
		t.Fatalf("note missing from summary:\n%s", tm.Summary())
	}
}

func TestNilTimer(t *testing.T) {
	var tm *Timer
	idx := tm.Begin("parse")
	tm.End(idx, "ignored")
	if len(tm.Report().Phases) != 0 {
		t.Fatalf("nil timer must report nothing")
	}
}
