package diag

import (
	"fmt"
	"time"
)

// Entry is one reported message.
type Entry struct {
	Time     time.Time
	Severity Severity
	Path     string // file the message is about, may be empty
	Message  string
}

// Reporter — минимальный контракт получения сообщений от driver и fix.
// Реализации: StreamReporter, BagReporter, MultiReporter, Nop.
type Reporter interface {
	Report(sev Severity, path, msg string)
}

// Infof reports an informational message.
func Infof(r Reporter, path, format string, args ...any) {
	report(r, SevInfo, path, format, args...)
}

// Warnf reports a warning.
func Warnf(r Reporter, path, format string, args ...any) {
	report(r, SevWarning, path, format, args...)
}

// Errorf reports an error.
func Errorf(r Reporter, path, format string, args ...any) {
	report(r, SevError, path, format, args...)
}

func report(r Reporter, sev Severity, path, format string, args ...any) {
	if r == nil {
		return
	}
	r.Report(sev, path, fmt.Sprintf(format, args...))
}

type nopReporter struct{}

func (nopReporter) Report(Severity, string, string) {}

// Nop drops every message.
var Nop Reporter = nopReporter{}

// MultiReporter fans out messages to several reporters.
type MultiReporter []Reporter

func (m MultiReporter) Report(sev Severity, path, msg string) {
	for _, r := range m {
		if r != nil {
			r.Report(sev, path, msg)
		}
	}
}

// BagReporter — адаптер, который пишет в *Bag.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(sev Severity, path, msg string) {
	if r.Bag == nil {
		return
	}
	r.Bag.Add(Entry{Time: time.Now(), Severity: sev, Path: path, Message: msg})
}
