package lintlog

import (
	"fmt"
	"strconv"
	"strings"

	"fortio.org/safecast"
)

// Record is one parsed linter violation.
// Records are values: the parser fills them once and nothing mutates them later.
type Record struct {
	Source   string // owning file, set by the block the record was found in
	Line     int    // 1-based line in Source
	Column   int    // 1-based column, informational
	Severity string // "error", "warning"... empty when the log omits it
	Message  string
	Category string // rule identifier, used as the strategy key
	LogLine  int    // 1-based line inside the log
}

// Index returns the zero-based line index targeted by the record.
func (r Record) Index() int { return r.Line - 1 }

// Position formats the record position as "line:column".
func (r Record) Position() string {
	return fmt.Sprintf("%d:%d", r.Line, r.Column)
}

func (r Record) String() string {
	if r.Source == "" {
		return fmt.Sprintf("%s %s (%s)", r.Position(), r.Message, r.Category)
	}
	return fmt.Sprintf("%s:%s %s (%s)", r.Source, r.Position(), r.Message, r.Category)
}

var severityWords = map[string]struct{}{
	"error":   {},
	"warning": {},
	"warn":    {},
	"info":    {},
}

// ParseRecord tokenizes a single error line of the form
//
//	<line>:<column>  <severity>  <message...>  <category>
//
// The severity word is optional; when the second token is not a known severity
// it stays part of the message. Source and LogLine are left for the caller.
func ParseRecord(line string) (Record, error) {
	fields := strings.Fields(line)
	if len(fields) < 3 {
		return Record{}, &ParseError{Text: line, Reason: "expected <line>:<column> <message> <category>"}
	}

	lineStr, colStr, ok := strings.Cut(fields[0], ":")
	if !ok {
		return Record{}, &ParseError{Text: line, Reason: fmt.Sprintf("position %q has no ':'", fields[0])}
	}
	ln, err := parsePosition(lineStr)
	if err != nil {
		return Record{}, &ParseError{Text: line, Reason: fmt.Sprintf("bad line number %q: %v", lineStr, err)}
	}
	col, err := parsePosition(colStr)
	if err != nil {
		return Record{}, &ParseError{Text: line, Reason: fmt.Sprintf("bad column %q: %v", colStr, err)}
	}

	rec := Record{
		Line:     ln,
		Column:   col,
		Category: fields[len(fields)-1],
	}
	body := fields[1 : len(fields)-1]
	if _, isSev := severityWords[strings.ToLower(body[0])]; isSev {
		rec.Severity = strings.ToLower(body[0])
		body = body[1:]
	}
	rec.Message = strings.Join(body, " ")
	return rec, nil
}

func parsePosition(s string) (int, error) {
	u, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, err
	}
	if u == 0 {
		return 0, fmt.Errorf("positions are 1-based")
	}
	return safecast.Conv[int](u)
}

// looksLikeRecord reports whether line starts with a "<digits>:<digits>" token.
func looksLikeRecord(line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}
	lineStr, colStr, ok := strings.Cut(fields[0], ":")
	if !ok {
		return false
	}
	return isDigits(lineStr) && isDigits(colStr)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
