package brewin

import (
	"unicode/utf8"
)

type lexer struct {
	input string

	offset int
	width  int

	line   int
	column int

	ch rune
}

func newLexer(input string) *lexer {
	l := &lexer{input: input, line: 1, column: 0}
	l.readRune()
	return l
}

func (l *lexer) readRune() {
	if l.offset >= len(l.input) {
		l.width = 0
		l.ch = 0
		return
	}

	r, w := utf8.DecodeRuneInString(l.input[l.offset:])
	l.width = w
	l.offset += w

	if r == '\n' {
		l.line++
		l.column = 0
	} else {
		l.column++
	}

	l.ch = r
}

func (l *lexer) currentOffset() int {
	return l.offset - l.width
}

// NextToken returns the next token. Unterminated strings come back as
// tokenIllegal with the problem in Literal.
func (l *lexer) NextToken() Token {
	l.skipWhitespaceAndComments()

	tok := Token{Pos: Position{Line: l.line, Column: l.column}}

	switch l.ch {
	case 0:
		if l.width == 0 {
			tok.Type = tokenEOF
			return tok
		}
		tok.Type = tokenIllegal
		tok.Literal = "unexpected NUL byte"
		l.readRune()
	case '(':
		tok.Type = tokenLParen
		tok.Literal = "("
		l.readRune()
	case ')':
		tok.Type = tokenRParen
		tok.Literal = ")"
		l.readRune()
	case '"':
		literal, ok := l.readString()
		if !ok {
			tok.Type = tokenIllegal
			tok.Literal = "unterminated string"
			return tok
		}
		tok.Type = tokenString
		tok.Literal = literal
	default:
		tok.Type = tokenAtom
		tok.Literal = l.readAtom()
	}
	return tok
}

func (l *lexer) skipWhitespaceAndComments() {
	for {
		switch l.ch {
		case ' ', '\t', '\r', '\n':
			l.readRune()
			continue
		case '#':
			l.skipComment()
			continue
		default:
			return
		}
	}
}

func (l *lexer) skipComment() {
	for l.width != 0 && l.ch != '\n' {
		l.readRune()
	}
}

func (l *lexer) readAtom() string {
	start := l.currentOffset()
	for l.width != 0 && isAtomRune(l.ch) {
		l.readRune()
	}
	end := l.currentOffset()
	if l.width == 0 {
		end = len(l.input)
	}
	return l.input[start:end]
}

// readString consumes a quoted literal. Brewin strings have no escapes and
// may not span lines.
func (l *lexer) readString() (string, bool) {
	l.readRune()
	start := l.currentOffset()
	for {
		switch {
		case l.width == 0, l.ch == '\n':
			return "", false
		case l.ch == '"':
			literal := l.input[start:l.currentOffset()]
			l.readRune()
			return literal, true
		}
		l.readRune()
	}
}

func isAtomRune(r rune) bool {
	switch r {
	case ' ', '\t', '\r', '\n', '(', ')', '"', '#', 0:
		return false
	}
	return true
}
