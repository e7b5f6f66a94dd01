package fix

import "strings"

// document is a file split into lines without their terminators.
type document struct {
	lines []string
	eol   string
}

// splitLines splits content on '\n'. A CRLF file is detected by its first line
// ending; '\r' is stripped so strategies see plain text and put back on write.
func splitLines(content []byte) document {
	text := string(content)
	doc := document{eol: "\n"}
	if text == "" {
		return doc
	}
	if i := strings.IndexByte(text, '\n'); i > 0 && text[i-1] == '\r' {
		doc.eol = "\r\n"
	}
	lines := strings.Split(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	if doc.eol == "\r\n" {
		for i, l := range lines {
			lines[i] = strings.TrimSuffix(l, "\r")
		}
	}
	doc.lines = lines
	return doc
}

// bytes joins the lines back, each terminated by one line ending. Newlines
// inserted by strategies get the file's line ending too.
func (d document) bytes() []byte {
	var b strings.Builder
	for _, l := range d.lines {
		if d.eol != "\n" {
			l = strings.ReplaceAll(l, "\n", d.eol)
		}
		b.WriteString(l)
		b.WriteString(d.eol)
	}
	return []byte(b.String())
}
