package brewin

import (
	"testing"
)

func TestLexerTokens(t *testing.T) {
	l := newLexer("(print \"hi there\" x) # trailing\n(-5)")
	want := []struct {
		typ     TokenType
		literal string
		pos     Position
	}{
		{tokenLParen, "(", Position{1, 1}},
		{tokenAtom, "print", Position{1, 2}},
		{tokenString, "hi there", Position{1, 8}},
		{tokenAtom, "x", Position{1, 19}},
		{tokenRParen, ")", Position{1, 20}},
		{tokenLParen, "(", Position{2, 1}},
		{tokenAtom, "-5", Position{2, 2}},
		{tokenRParen, ")", Position{2, 4}},
		{tokenEOF, "", Position{2, 5}},
	}
	for i, w := range want {
		tok := l.NextToken()
		if tok.Type != w.typ || tok.Literal != w.literal {
			t.Fatalf("token %d: expected %s %q, got %s %q", i, w.typ, w.literal, tok.Type, tok.Literal)
		}
		if w.typ != tokenEOF && tok.Pos != w.pos {
			t.Fatalf("token %d (%q): expected position %+v, got %+v", i, w.literal, w.pos, tok.Pos)
		}
	}
}

func TestParseSourceNesting(t *testing.T) {
	trees, err := ParseSource(`
# a comment line
(class main
  (method void main () (print "a # not a comment")))
`)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(trees) != 1 {
		t.Fatalf("expected 1 top-level list, got %d", len(trees))
	}
	class := trees[0]
	if class.Head() != "class" || len(class.List) != 3 {
		t.Fatalf("unexpected class tree: %s", class)
	}
	method := class.List[2]
	if method.Pos != (Position{Line: 4, Column: 3}) {
		t.Fatalf("unexpected method position: %+v", method.Pos)
	}
	printStmt := method.List[4]
	if !printStmt.List[1].IsString || printStmt.List[1].Atom != "a # not a comment" {
		t.Fatalf("string literal mangled: %#v", printStmt.List[1])
	}
	if got := class.String(); got != `(class main (method void main () (print "a # not a comment")))` {
		t.Fatalf("unexpected rendering: %s", got)
	}
}

func TestParseSourceErrors(t *testing.T) {
	cases := []struct {
		name   string
		source string
		want   string
	}{
		{"unclosed list", "(class main (method void main () (print 1))", "never closed"},
		{"extra close", "(class main))", "unexpected )"},
		{"unterminated string", "(class main (field string s \"oops))", "unterminated string"},
		{"string across lines", "(class main (field string s \"a\nb\"))", "unterminated string"},
		{"bare top-level atom", "main", "outside of a declaration"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseSource(tc.source)
			requireErrorKind(t, err, SyntaxError)
			requireErrorContains(t, err, tc.want)
		})
	}
}

func TestSExprCloneIsDeep(t *testing.T) {
	trees, err := ParseSource(`(a (b c) "d")`)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	orig := trees[0]
	copied := orig.clone()
	copied.List[1].List[0].Atom = "z"
	if orig.List[1].List[0].Atom != "b" {
		t.Fatalf("clone shares nested nodes")
	}
	if !copied.List[2].IsString {
		t.Fatalf("clone lost string flag")
	}
}
