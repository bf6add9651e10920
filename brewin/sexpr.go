package brewin

import (
	"strings"
)

// SExpr is one node of the raw syntax tree: an atom, a string literal, or a
// parenthesized list.
type SExpr struct {
	Atom     string
	IsString bool
	List     []*SExpr
	Pos      Position

	list bool
}

// NewAtom builds a bare atom node.
func NewAtom(atom string) *SExpr { return &SExpr{Atom: atom} }

// NewStringAtom builds a string literal node. The value excludes quotes.
func NewStringAtom(value string) *SExpr { return &SExpr{Atom: value, IsString: true} }

// NewList builds a list node.
func NewList(items ...*SExpr) *SExpr { return &SExpr{List: items, list: true} }

func (s *SExpr) IsList() bool { return s != nil && s.list }

// IsSymbol reports whether s is a bare (unquoted) atom.
func (s *SExpr) IsSymbol() bool { return s != nil && !s.list && !s.IsString }

// Head returns the leading symbol of a list, or "" when there is none.
func (s *SExpr) Head() string {
	if !s.IsList() || len(s.List) == 0 || !s.List[0].IsSymbol() {
		return ""
	}
	return s.List[0].Atom
}

func (s *SExpr) clone() *SExpr {
	out := *s
	if s.list {
		out.List = make([]*SExpr, len(s.List))
		for i, item := range s.List {
			out.List[i] = item.clone()
		}
	}
	return &out
}

func (s *SExpr) String() string {
	var b strings.Builder
	s.write(&b)
	return b.String()
}

func (s *SExpr) write(b *strings.Builder) {
	switch {
	case s.list:
		b.WriteByte('(')
		for i, item := range s.List {
			if i > 0 {
				b.WriteByte(' ')
			}
			item.write(b)
		}
		b.WriteByte(')')
	case s.IsString:
		b.WriteByte('"')
		b.WriteString(s.Atom)
		b.WriteByte('"')
	default:
		b.WriteString(s.Atom)
	}
}

// ParseSource reads Brewin source text into its top-level lists.
func ParseSource(source string) ([]*SExpr, error) {
	l := newLexer(source)
	var (
		top   []*SExpr
		stack []*SExpr
	)
	for {
		tok := l.NextToken()
		switch tok.Type {
		case tokenIllegal:
			return nil, newError(SyntaxError, tok.Pos, "%s", tok.Literal)
		case tokenEOF:
			if len(stack) > 0 {
				open := stack[len(stack)-1]
				return nil, newError(SyntaxError, open.Pos, "unbalanced parentheses: list is never closed")
			}
			return top, nil
		case tokenLParen:
			stack = append(stack, &SExpr{list: true, Pos: tok.Pos})
		case tokenRParen:
			if len(stack) == 0 {
				return nil, newError(SyntaxError, tok.Pos, "unbalanced parentheses: unexpected )")
			}
			node := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				top = append(top, node)
			} else {
				parent := stack[len(stack)-1]
				parent.List = append(parent.List, node)
			}
		case tokenAtom, tokenString:
			if len(stack) == 0 {
				return nil, newError(SyntaxError, tok.Pos, "unexpected %q outside of a declaration", tok.Literal)
			}
			parent := stack[len(stack)-1]
			parent.List = append(parent.List, &SExpr{
				Atom:     tok.Literal,
				IsString: tok.Type == tokenString,
				Pos:      tok.Pos,
			})
		}
	}
}
