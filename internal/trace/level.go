package trace

import (
	"fmt"
	"strings"
)

// Level controls tracing verbosity.
type Level uint8

const (
	LevelOff    Level = iota // no tracing
	LevelRun                 // run phases
	LevelFile                // per-file spans
	LevelRecord              // everything
)

// String returns the string representation of Level.
func (l Level) String() string {
	switch l {
	case LevelOff:
		return "off"
	case LevelRun:
		return "run"
	case LevelFile:
		return "file"
	case LevelRecord:
		return "record"
	default:
		return "unknown"
	}
}

// ParseLevel converts a string to a Level.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(s) {
	case "off":
		return LevelOff, nil
	case "run":
		return LevelRun, nil
	case "file":
		return LevelFile, nil
	case "record":
		return LevelRecord, nil
	default:
		return LevelOff, fmt.Errorf("invalid trace level: %q (expected: off|run|file|record)", s)
	}
}

// ShouldEmit returns true if the given scope should emit at this level.
func (l Level) ShouldEmit(scope Scope) bool {
	switch l {
	case LevelRun:
		return scope <= ScopeRun
	case LevelFile:
		return scope <= ScopeFile
	case LevelRecord:
		return true
	}
	return false
}
