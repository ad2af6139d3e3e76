package parser

import (
	"fmt"
	"strings"

	"github.com/eescode/eescode/pkg/lexer"
)

// SyntaxError reports a token no production accepts.
type SyntaxError struct {
	Token    lexer.Token
	Expected []lexer.Kind
	Msg      string // optional detail, e.g. an out of range number
}

func (e *SyntaxError) Error() string {
	var b strings.Builder
	if e.Token.Kind == lexer.EOF {
		b.WriteString("syntax error: unexpected end of input")
	} else {
		fmt.Fprintf(&b, "syntax error at offset %d: unexpected %s %q", e.Token.Pos, e.Token.Kind, e.Token.Text)
	}
	if e.Msg != "" {
		b.WriteString(": ")
		b.WriteString(e.Msg)
	}
	if len(e.Expected) > 0 {
		names := make([]string, len(e.Expected))
		for i, k := range e.Expected {
			names[i] = string(k)
		}
		b.WriteString("; expected ")
		b.WriteString(strings.Join(names, " or "))
	}
	return b.String()
}

// ShapeError reports a construct that parsed but has the wrong node type:
// an input binding whose left side is not a name, or Call applied to
// something that is not a function call.
type ShapeError struct {
	Construct string
	Want      string
	Found     string // node kind, see ast.KindOf
	Example   string
	Pos       int
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("%s at offset %d: expected %s, got %s (example: %s)", e.Construct, e.Pos, e.Want, e.Found, e.Example)
}
