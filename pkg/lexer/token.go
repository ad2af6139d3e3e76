package lexer

import "fmt"

// Kind is the declared grammar name of a token, e.g. NUMBER or IDENTIFIER.
type Kind string

const (
	Number             Kind = "NUMBER"
	RepeatKeyword      Kind = "REPEAT_KEYWORD"
	Input              Kind = "INPUT"
	BlockIndex         Kind = "BLOCK_INDEX"
	Fluid              Kind = "FLUID"
	Call               Kind = "CALL"
	Optional           Kind = "OPTIONAL"
	Dollar             Kind = "DOLLAR"
	Ampersand          Kind = "AMPERSAND"
	Quote              Kind = "QUOTE"
	Comma              Kind = "COMMA"
	Plus               Kind = "PLUS"
	Minus              Kind = "MINUS"
	Times              Kind = "TIMES"
	Divide             Kind = "DIVIDE"
	Equals             Kind = "EQUALS"
	OpenBracket        Kind = "OPEN_BRACKET"
	CloseBracket       Kind = "CLOSE_BRACKET"
	OpenSquareBracket  Kind = "OPEN_SQUARE_BRACKET"
	CloseSquareBracket Kind = "CLOSE_SQUARE_BRACKET"
	OpenCurlyBracket   Kind = "OPEN_CURLY_BRACKET"
	CloseCurlyBracket  Kind = "CLOSE_CURLY_BRACKET"
	Space              Kind = "SPACE"
	Identifier         Kind = "IDENTIFIER"
	Text               Kind = "TEXT"

	// EOF never appears in a Lex result; parsers use it for the position past
	// the last token.
	EOF Kind = "EOF"
)

// IsWord reports whether tokens of this kind are spelled like identifiers.
// Parsers accept them as plain names outside their keyword position.
func (k Kind) IsWord() bool {
	switch k {
	case Identifier, RepeatKeyword, Input, BlockIndex, Fluid, Optional:
		return true
	}
	return false
}

// Token is a single lexeme.
type Token struct {
	Kind Kind
	Text string
	Pos  int // byte offset in the input
}

func (t Token) String() string {
	if t.Kind == EOF {
		return fmt.Sprintf("%s @%d", t.Kind, t.Pos)
	}
	return fmt.Sprintf("%s %q @%d", t.Kind, t.Text, t.Pos)
}
