package lintlog

import (
	"errors"
	"fmt"
)

// ErrSourceMissing is returned when error lines follow a path that does not
// exist on disk.
var ErrSourceMissing = errors.New("log references a source file that does not exist")

// ParseError describes an error line that cannot be tokenized.
// It is fatal for the run: continuing would shift unrelated line indices.
type ParseError struct {
	LogLine int
	Text    string
	Reason  string
}

func (e *ParseError) Error() string {
	if e.LogLine > 0 {
		return fmt.Sprintf("log line %d: %s: %q", e.LogLine, e.Reason, e.Text)
	}
	return fmt.Sprintf("%s: %q", e.Reason, e.Text)
}

// ConfigError reports a problem with the inputs of a run (missing log file,
// dangling source reference, bad configuration).
type ConfigError struct {
	Path    string
	LogLine int
	Err     error
}

func (e *ConfigError) Error() string {
	if e.LogLine > 0 {
		return fmt.Sprintf("%s (log line %d): %v", e.Path, e.LogLine, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }
