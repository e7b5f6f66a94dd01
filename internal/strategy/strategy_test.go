package strategy

import (
	"strings"
	"testing"
)

func TestBuiltinStrategies(t *testing.T) {
	reg := NewDefault(Options{})
	cases := []struct {
		name     string
		category string
		message  string
		in       string
		want     string
	}{
		{"indent grows", Indentation, "Expected indentation of 4 spaces but found 2", "  return x;", "    return x;"},
		{"indent shrinks", Indentation, "Expected indentation of 2 spaces but found 6", "      foo();", "  foo();"},
		{"indent tabs replaced", "indent", "Expected indentation of 2 spaces but found 1 tab", "\tfoo();", "  foo();"},
		{"indent unknown message", Indentation, "Expected indentation of 1 tab", "  foo();", "  foo();"},

		{"key spacing after", KeySpacing, "Missing space before value for key 'a'", "const o = {a:1};", "const o = {a: 1};"},
		{"key spacing collapse", KeySpacing, "Extra space before value for key 'b'", "  b :   2,", "  b: 2,"},

		{"brackets required", ArrayBracketSpacing, "A space is required after '['", "const a = [1, 2];", "const a = [ 1, 2 ];"},
		{"brackets nested", ArrayBracketSpacing, "A space is required before ']'", "const m = [[1],[2]];", "const m = [ [ 1 ],[ 2 ] ];"},
		{"brackets around object", ArrayBracketSpacing, "A space is required after '['", "f({[1]})", "f({ [ 1 ] })"},
		{"brackets empty", ArrayBracketSpacing, "A space is required after '['", "const a = [];", "const a = [];"},
		{"brackets forbidden", ArrayBracketSpacing, "There should be no space after '['", "const a = [  1, 2 ];", "const a = [1, 2];"},
		{"brackets open at end", ArrayBracketSpacing, "A space is required after '['", "const a = [", "const a = ["},
		{"brackets keep indent", ArrayBracketSpacing, "There should be no space before ']'", "    ];", "    ];"},
		{"brackets other message", ArrayBracketSpacing, "Something else", "[ 1 ]", "[ 1 ]"},

		{"comma after", CommaSpacing, "A space is required after ','", "f(a,b,  c)", "f(a, b, c)"},
		{"comma before", CommaSpacing, "There should be no space before ','", "f(a , b ,c)", "f(a, b,c)"},
		{"comma before closer", CommaSpacing, "A space is required after ','", "f(a,b,)", "f(a, b,)"},
		{"comma in literals", CommaSpacing, "A space is required after ','", "[1,2,]; {a: 1,}", "[1, 2,]; {a: 1,}"},
		{"comma unrelated", CommaSpacing, "odd", "f(a ,b)", "f(a ,b)"},

		{"quotes double", QuoteStyle, "Strings must use singlequote", `const s = "hi";`, `const s = 'hi';`},
		{"quotes backtick", "quotes", "Strings must use singlequote", "const s = `hi`;", "const s = 'hi';"},

		{"parens", SpaceInParens, "There should be no spaces inside this paren", "foo( a, b )", "foo(a, b)"},
		{"parens keep indent", SpaceInParens, "There should be no spaces inside this paren", "    )", "    )"},

		{"semicolon", MissingSemicolon, "Missing semicolon", "const a = 1", "const a = 1;"},

		{"infix assignment", InfixOpSpacing, "Operator '=' must be spaced", "let a=1", "let a = 1"},
		{"infix comparison", InfixOpSpacing, "Operator '===' must be spaced", "if (a===b) {", "if (a === b) {"},
		{"infix strict inequality", "space-infix-ops", "Operator '!==' must be spaced", "if (a!==b) {", "if (a !== b) {"},
		{"infix collapses", InfixOpSpacing, "Operator '<=' must be spaced", "x   <=    y", "x <= y"},

		{"semi spacing", SemicolonFollowedByCode, "Missing whitespace after semicolon", "  a();b();", "  a();\n  b();"},
		{"semi spacing tabs", "semi-spacing", "Missing whitespace after semicolon", "\tx = 1;y = 2;", "\tx = 1;\n\ty = 2;"},

		{"comment spacing", CommentSpacing, "Expected line before comment", "  // note", "\n  // note"},
		{"comment spacing code", CommentSpacing, "Expected line before comment", "  x(); // note", "  x(); // note"},

		{"complexity", CyclomaticComplexity, "Function 'f' has a complexity of 25", "  function f() {", "  // eslint-disable-next-line complexity\n  function f() {"},
		{"camelcase", "camelcase", "Identifier 'my_var' is not in camel case", "let my_var = 1;", "let my_var = 1;"},
		{"unknown", "no-such-rule", "whatever", "let a = 1;", "let a = 1;"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := reg.Resolve(tc.category).Apply(tc.in, tc.message)
			if got != tc.want {
				t.Fatalf("%s(%q) = %q, want %q", tc.category, tc.in, got, tc.want)
			}
		})
	}
}

func TestStrategiesAreDeterministic(t *testing.T) {
	reg := NewDefault(Options{})
	line := `  const o = {a:1 , b:[1,2]}; if (x==y) {"q"}`
	for _, cat := range reg.Categories() {
		s := reg.Resolve(cat)
		for _, msg := range []string{"Expected indentation of 6 spaces", "A space is required after ','", "There should be no space before ','"} {
			first := s.Apply(line, msg)
			second := s.Apply(line, msg)
			if first != second {
				t.Fatalf("%s is not deterministic: %q vs %q", cat, first, second)
			}
		}
	}
}

func TestQuoteStyleIsIdempotent(t *testing.T) {
	s := NewDefault(Options{}).Resolve(QuoteStyle)
	once := s.Apply("const s = \"a\" + `b`;", "")
	twice := s.Apply(once, "")
	if once != twice {
		t.Fatalf("quote-style not idempotent: %q then %q", once, twice)
	}
	if strings.ContainsAny(twice, "\"`") {
		t.Fatalf("quotes left behind: %q", twice)
	}
}

// Appending is blind: a second pass adds a second semicolon.
func TestMissingSemicolonIsNotIdempotent(t *testing.T) {
	s := NewDefault(Options{}).Resolve(MissingSemicolon)
	got := s.Apply("const a = 1;", "Missing semicolon")
	if got != "const a = 1;;" {
		t.Fatalf("got %q, want two semicolons", got)
	}
}

func TestUnknownCategoryResolvesToIdentity(t *testing.T) {
	reg := NewDefault(Options{})
	s := reg.Resolve("no-such-rule")
	if s.Category != Identity.Category {
		t.Fatalf("expected identity, got %q", s.Category)
	}
	if reg.Known("no-such-rule") {
		t.Fatalf("no-such-rule should not be known")
	}
	if !reg.Known("semi") || !reg.Known(MissingSemicolon) {
		t.Fatalf("aliases and categories should be known")
	}
}

func TestNamingConventionIsManual(t *testing.T) {
	s := NewDefault(Options{}).Resolve(NamingConvention)
	if s.Automated {
		t.Fatalf("naming-convention must not claim an automated fix")
	}
}

func TestRegistryRejectsDuplicates(t *testing.T) {
	reg := NewRegistry()
	if err := reg.Register(Strategy{Category: "x", Fix: identity}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := reg.Register(Strategy{Category: "x", Fix: identity}); err == nil {
		t.Fatalf("expected duplicate registration to fail")
	}
	if err := reg.Alias("y", "missing"); err == nil {
		t.Fatalf("expected alias to unknown category to fail")
	}
	if err := reg.Alias("x", "x"); err == nil {
		t.Fatalf("expected alias shadowing a category to fail")
	}
}

func TestDisableFallsBackToIdentity(t *testing.T) {
	reg := NewDefault(Options{})
	if err := reg.Disable("semi"); err != nil {
		t.Fatalf("Disable: %v", err)
	}
	if got := reg.Resolve(MissingSemicolon).Apply("a()", ""); got != "a()" {
		t.Fatalf("disabled strategy still applied: %q", got)
	}
	if err := reg.Disable("nope"); err == nil {
		t.Fatalf("expected error for unknown category")
	}
}

func TestCustomSuppressComment(t *testing.T) {
	reg := NewDefault(Options{SuppressComment: "/* istanbul ignore next */"})
	got := reg.Resolve("complexity").Apply("function f() {", "")
	if got != "/* istanbul ignore next */\nfunction f() {" {
		t.Fatalf("got %q", got)
	}
}
