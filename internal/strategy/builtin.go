package strategy

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// Canonical categories.
const (
	Indentation             = "indentation"
	KeySpacing              = "key-spacing"
	ArrayBracketSpacing     = "array-bracket-spacing"
	CommaSpacing            = "comma-spacing"
	QuoteStyle              = "quote-style"
	SpaceInParens           = "space-in-parens"
	MissingSemicolon        = "missing-semicolon"
	InfixOpSpacing          = "infix-op-spacing"
	SemicolonFollowedByCode = "semicolon-followed-by-code"
	CommentSpacing          = "comment-spacing"
	CyclomaticComplexity    = "cyclomatic-complexity"
	NamingConvention        = "naming-convention"
)

// DefaultSuppressComment is inserted above functions flagged for complexity.
const DefaultSuppressComment = "// eslint-disable-next-line complexity"

// eslintAliases maps ESLint rule ids to the categories above.
var eslintAliases = map[string]string{
	"indent":               Indentation,
	"quotes":               QuoteStyle,
	"semi":                 MissingSemicolon,
	"space-infix-ops":      InfixOpSpacing,
	"semi-spacing":         SemicolonFollowedByCode,
	"lines-around-comment": CommentSpacing,
	"complexity":           CyclomaticComplexity,
	"camelcase":            NamingConvention,
}

// Options tweaks the built-in strategies.
type Options struct {
	// SuppressComment replaces DefaultSuppressComment when set.
	SuppressComment string
}

// Builtin returns the built-in strategies.
func Builtin(opts Options) []Strategy {
	comment := opts.SuppressComment
	if comment == "" {
		comment = DefaultSuppressComment
	}
	return []Strategy{
		{Category: Indentation, Fix: fixIndentation, Automated: true},
		{Category: KeySpacing, Fix: fixKeySpacing, Automated: true},
		{Category: ArrayBracketSpacing, Fix: fixArrayBracketSpacing, Automated: true},
		{Category: CommaSpacing, Fix: fixCommaSpacing, Automated: true},
		{Category: QuoteStyle, Fix: fixQuoteStyle, Automated: true},
		{Category: SpaceInParens, Fix: fixSpaceInParens, Automated: true},
		{Category: MissingSemicolon, Fix: fixMissingSemicolon, Automated: true},
		{Category: InfixOpSpacing, Fix: fixInfixOpSpacing, Automated: true},
		{Category: SemicolonFollowedByCode, Fix: fixSemicolonFollowedByCode, Automated: true},
		{Category: CommentSpacing, Fix: fixCommentSpacing, Automated: true},
		{Category: CyclomaticComplexity, Fix: suppressAbove(comment), Automated: true},
		// renaming needs to know every use of the identifier
		{Category: NamingConvention, Fix: identity, Automated: false},
	}
}

// NewDefault returns a registry with the built-in strategies and the ESLint
// rule id aliases.
func NewDefault(opts Options) *Registry {
	r := NewRegistry()
	for _, s := range Builtin(opts) {
		if err := r.Register(s); err != nil {
			panic(err)
		}
	}
	for alias, category := range eslintAliases {
		if err := r.Alias(alias, category); err != nil {
			panic(err)
		}
	}
	return r
}

var indentWidthRe = regexp.MustCompile(`Expected indentation of (\d+) spaces?`)

func fixIndentation(line, message string) string {
	m := indentWidthRe.FindStringSubmatch(message)
	if m == nil {
		return line
	}
	width, err := strconv.Atoi(m[1])
	if err != nil {
		return line
	}
	return strings.Repeat(" ", width) + strings.TrimLeftFunc(line, unicode.IsSpace)
}

var (
	spaceBeforeColonRe = regexp.MustCompile(`([^ \t])[ \t]+:`)
	colonSpacingRe     = regexp.MustCompile(`:[ \t]*([^ \t])`)
)

func fixKeySpacing(line, _ string) string {
	line = spaceBeforeColonRe.ReplaceAllString(line, "${1}:")
	return colonSpacingRe.ReplaceAllString(line, ": ${1}")
}

var (
	braceBracketRe = regexp.MustCompile(`\{[ \t]*\[`)
	bracketBraceRe = regexp.MustCompile(`\][ \t]*\}`)
)

func fixArrayBracketSpacing(line, message string) string {
	switch {
	case strings.Contains(message, "A space is required"):
		line = bracketSpacing(line, true)
		line = braceBracketRe.ReplaceAllString(line, "{ [")
		return bracketBraceRe.ReplaceAllString(line, "] }")
	case strings.Contains(message, "There should be no space"):
		return bracketSpacing(line, false)
	default:
		return line
	}
}

// bracketSpacing normalizes the whitespace just inside '[' and ']' to one space
// (required) or none. Empty brackets stay "[]", a bracket that ends the line
// gets no trailing space and indentation before a leading ']' is kept.
func bracketSpacing(line string, required bool) string {
	out := make([]byte, 0, len(line)+8)
	for i := 0; i < len(line); i++ {
		c := line[i]
		switch c {
		case '[':
			out = append(out, '[')
			j := i + 1
			for j < len(line) && isBlank(line[j]) {
				j++
			}
			if required && j < len(line) && line[j] != ']' {
				out = append(out, ' ')
			}
			i = j - 1
		case ']':
			k := len(out)
			for k > 0 && isBlank(out[k-1]) {
				k--
			}
			if k > 0 {
				out = out[:k]
				if required && out[k-1] != '[' {
					out = append(out, ' ')
				}
			}
			out = append(out, ']')
		default:
			out = append(out, c)
		}
	}
	return string(out)
}

func isBlank(c byte) bool { return c == ' ' || c == '\t' }

var (
	commaAfterRe  = regexp.MustCompile(`,[ \t]*([^ \t)\]}])`)
	commaBeforeRe = regexp.MustCompile(`([^ \t])[ \t]+,`)
)

func fixCommaSpacing(line, message string) string {
	switch {
	case strings.Contains(message, "after"):
		return commaAfterRe.ReplaceAllString(line, ", ${1}")
	case strings.Contains(message, "before"):
		return commaBeforeRe.ReplaceAllString(line, "${1},")
	default:
		return line
	}
}

var quoteReplacer = strings.NewReplacer(`"`, "'", "`", "'")

func fixQuoteStyle(line, _ string) string {
	return quoteReplacer.Replace(line)
}

var (
	parenOpenRe  = regexp.MustCompile(`\([ \t]+`)
	parenCloseRe = regexp.MustCompile(`([^ \t])[ \t]+\)`)
)

func fixSpaceInParens(line, _ string) string {
	line = parenOpenRe.ReplaceAllString(line, "(")
	return parenCloseRe.ReplaceAllString(line, "${1})")
}

// fixMissingSemicolon is not idempotent: a line that already ends with ';'
// gets a second one.
func fixMissingSemicolon(line, _ string) string {
	return line + ";"
}

var infixOpRe = regexp.MustCompile(`[ \t]*(!?[<>=]+)[ \t]*`)

func fixInfixOpSpacing(line, _ string) string {
	matches := infixOpRe.FindAllStringSubmatchIndex(line, -1)
	if matches == nil {
		return line
	}
	var b strings.Builder
	b.Grow(len(line) + 2*len(matches))
	last := 0
	for _, m := range matches {
		start, end := m[0], m[1]
		op := line[m[2]:m[3]]
		prefix := line[last:start]
		b.WriteString(prefix)
		if strings.TrimSpace(line[:start]) == "" {
			// operator opens the line: keep the indentation
			b.WriteString(line[start:m[2]])
		} else {
			b.WriteByte(' ')
		}
		b.WriteString(op)
		if end < len(line) {
			b.WriteByte(' ')
		}
		last = end
	}
	b.WriteString(line[last:])
	return b.String()
}

var semicolonCodeRe = regexp.MustCompile(`;([^ \t])`)

func fixSemicolonFollowedByCode(line, _ string) string {
	indent := leadingWhitespace(line)
	return semicolonCodeRe.ReplaceAllString(line, ";\n"+indent+"${1}")
}

func fixCommentSpacing(line, _ string) string {
	if strings.HasPrefix(strings.TrimSpace(line), "//") {
		return "\n" + line
	}
	return line
}

func suppressAbove(comment string) Func {
	return func(line, _ string) string {
		return leadingWhitespace(line) + comment + "\n" + line
	}
}

func leadingWhitespace(line string) string {
	return line[:len(line)-len(strings.TrimLeftFunc(line, unicode.IsSpace))]
}
