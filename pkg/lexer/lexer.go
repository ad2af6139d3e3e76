// Package lexer builds the two tokenizers of the EES analyzer from one shared
// table of named patterns: the main lexer, where whitespace only separates
// tokens, and the splitting lexer, where every whitespace character is a
// SPACE token and the optional keyword exists.
package lexer

import (
	"fmt"
	"strings"

	plexer "github.com/alecthomas/participle/v2/lexer"
)

// Lexer turns source text into tokens. A Lexer is immutable and safe for
// concurrent use.
type Lexer struct {
	name  string
	def   *plexer.StatefulDefinition
	kinds map[plexer.TokenType]Kind
}

// New builds a lexer from an ordered rule list. Tokens of the WHITESPACE
// rule are dropped from the output.
func New(name string, rules []Rule) (*Lexer, error) {
	def, err := plexer.NewSimple(simpleRules(rules))
	if err != nil {
		return nil, fmt.Errorf("building %s lexer: %w", name, err)
	}
	kinds := make(map[plexer.TokenType]Kind, len(rules))
	for sym, typ := range def.Symbols() {
		kinds[typ] = Kind(sym)
	}
	return &Lexer{name: name, def: def, kinds: kinds}, nil
}

func mustNew(name string, rules []Rule) *Lexer {
	l, err := New(name, rules)
	if err != nil {
		panic(err)
	}
	return l
}

// NewMain returns the expression lexer.
func NewMain() *Lexer { return mustNew("main", MainRules()) }

// NewSplitting returns the splitting lexer.
func NewSplitting() *Lexer { return mustNew("splitting", SplittingRules()) }

func (l *Lexer) Name() string { return l.name }


// Lex tokenizes input. The result never contains an EOF token. Every call
// starts from scratch, so lexing the same input twice yields equal slices.
func (l *Lexer) Lex(input string) ([]Token, error) {
	lx, err := l.def.LexString("", input)
	if err != nil {
		return nil, fmt.Errorf("%s lexer: %w", l.name, err)
	}
	var tokens []Token
	for {
		t, err := lx.Next()
		if err != nil {
			return nil, fmt.Errorf("%s lexer: %w", l.name, err)
		}
		if t.EOF() {
			return tokens, nil
		}
		kind, ok := l.kinds[t.Type]
		if !ok || kind == skipKind {
			continue
		}
		tokens = append(tokens, Token{Kind: kind, Text: t.Value, Pos: t.Pos.Offset})
	}
}

// Dump renders tokens one per line, the format used for diagnostics.
func Dump(tokens []Token) string {
	var b strings.Builder
	for _, t := range tokens {
		b.WriteString(t.String())
		b.WriteByte('\n')
	}
	return b.String()
}
