package lintlog

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"
)

// DefaultSuffix is the source file suffix that marks block terminators.
const DefaultSuffix = ".js"

const maxLogLine = 1 << 20

// State is the parser state between two log lines.
type State uint8

const (
	// StateIdle accepts no records until the next header line.
	StateIdle State = iota
	// StateInBlock appends error lines to the current file.
	StateInBlock
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateInBlock:
		return "in-block"
	default:
		return "unknown"
	}
}

// LineKind is the classification of one log line.
type LineKind uint8

const (
	KindBlank LineKind = iota
	KindHeader
	KindTerminator
	KindRecord
	KindNoise // out-of-block text such as "✖ 3 problems"
)

func (k LineKind) String() string {
	switch k {
	case KindBlank:
		return "blank"
	case KindHeader:
		return "header"
	case KindTerminator:
		return "terminator"
	case KindRecord:
		return "record"
	case KindNoise:
		return "noise"
	default:
		return "unknown"
	}
}

// Parser turns linter output into a Group.
//
// Header lines are recognised by checking that the line names an existing
// file. This conflates "valid path" with "block separator": a log that names a
// file which was deleted since the lint run is read as a terminator instead.
type Parser struct {
	// Suffix marks terminator lines (DefaultSuffix when empty).
	Suffix string
	// Exists reports whether a path names an existing regular file.
	// Defaults to an os.Stat check.
	Exists func(path string) bool
}

// NewParser creates a parser for logs about files with the given suffix.
func NewParser(suffix string) *Parser {
	return &Parser{Suffix: suffix}
}

// scan keeps the state machine between lines.
type scan struct {
	state    State
	current  string // file of the open block
	dangling string // last terminator path
	lineNo   int
}

// ParseFile reads and parses the log at path.
func (p *Parser) ParseFile(path string) (*Group, error) {
	// #nosec G304 -- path is provided by the caller
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return p.Parse(f)
}

// Parse reads the whole log and groups its records per file.
// A malformed error line aborts parsing with *ParseError; error lines that
// follow a path missing on disk abort with *ConfigError wrapping ErrSourceMissing.
func (p *Parser) Parse(r io.Reader) (*Group, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLogLine)

	group := NewGroup()
	st := &scan{state: StateIdle}
	for sc.Scan() {
		st.lineNo++
		if err := p.step(st, group, sc.Text()); err != nil {
			return nil, err
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}
	return group, nil
}

func (p *Parser) step(st *scan, group *Group, raw string) error {
	line := strings.TrimRightFunc(raw, unicode.IsSpace)

	switch p.Classify(line, st.state) {
	case KindHeader:
		st.state = StateInBlock
		st.current = line
		st.dangling = ""
		group.Open(line)
	case KindTerminator:
		st.state = StateIdle
		st.current = ""
		st.dangling = line
	case KindRecord:
		rec, err := ParseRecord(line)
		if err != nil {
			if pe, ok := err.(*ParseError); ok {
				pe.LogLine = st.lineNo
			}
			return err
		}
		rec.LogLine = st.lineNo
		group.Append(st.current, rec)
	case KindNoise:
		if st.dangling != "" && looksLikeRecord(line) {
			return &ConfigError{Path: st.dangling, LogLine: st.lineNo, Err: ErrSourceMissing}
		}
	}
	return nil
}

// Classify decides what a trailing-whitespace-stripped line is, given the
// current state.
func (p *Parser) Classify(line string, state State) LineKind {
	switch {
	case line == "":
		return KindBlank
	case p.exists(line):
		return KindHeader
	case strings.HasSuffix(line, p.suffix()):
		return KindTerminator
	case state == StateInBlock:
		return KindRecord
	default:
		return KindNoise
	}
}

func (p *Parser) suffix() string {
	if p.Suffix == "" {
		return DefaultSuffix
	}
	return p.Suffix
}

func (p *Parser) exists(path string) bool {
	if p.Exists != nil {
		return p.Exists(path)
	}
	return isRegularFile(path)
}

func isRegularFile(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}
