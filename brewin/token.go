package brewin

// TokenType identifies the lexical category of a token.
type TokenType string

const (
	tokenIllegal TokenType = "ILLEGAL"
	tokenEOF     TokenType = "EOF"

	tokenLParen TokenType = "("
	tokenRParen TokenType = ")"
	tokenAtom   TokenType = "ATOM"
	tokenString TokenType = "STRING"
)

// Token captures lexical information for the reader.
type Token struct {
	Type    TokenType
	Literal string
	Pos     Position
}

// Position identifies a line and column in the source file.
type Position struct {
	Line   int
	Column int
}
