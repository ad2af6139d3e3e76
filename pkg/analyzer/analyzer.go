// Package analyzer is the entry point for EES code: it owns the main and
// splitting lexers and runs the matching parser over an input string.
//
// A failed parse is retried once in diagnostic mode, which logs every token
// before parsing again. The retry never changes the outcome; it only leaves
// the token stream in the log next to the error.
package analyzer

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/eescode/eescode/pkg/ast"
	"github.com/eescode/eescode/pkg/lexer"
	"github.com/eescode/eescode/pkg/parser"
	"github.com/eescode/eescode/pkg/splitter"
)

// Analyzer is safe for concurrent use. Lexer definitions are immutable and
// each call builds its own parser state.
type Analyzer struct {
	main      *lexer.Lexer
	splitting *lexer.Lexer
	log       *slog.Logger
	dump      bool
}

type Option func(*Analyzer)

func WithLogger(l *slog.Logger) Option {
	return func(a *Analyzer) { a.log = l }
}

// WithTokenDump starts every call in diagnostic mode.
func WithTokenDump(dump bool) Option {
	return func(a *Analyzer) { a.dump = dump }
}

func New(opts ...Option) *Analyzer {
	a := &Analyzer{
		main:      lexer.NewMain(),
		splitting: lexer.NewSplitting(),
		log:       slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// ParseString parses input with the expression grammar. Empty or
// whitespace-only input yields a nil Line and no error.
func (a *Analyzer) ParseString(input string) (*ast.Line, error) {
	if strings.TrimSpace(input) == "" {
		return nil, nil
	}
	line, err := a.parseString(input, a.dump)
	if err == nil || a.dump {
		return line, err
	}
	a.log.Warn("parse failed, retrying with token dump", "grammar", a.main.Name(), "error", err)
	return a.parseString(input, true)
}

func (a *Analyzer) parseString(input string, dump bool) (*ast.Line, error) {
	tokens, err := a.lex(a.main, input, dump)
	if err != nil {
		return nil, err
	}
	line, err := parser.Parse(tokens)
	if err != nil {
		return nil, fmt.Errorf("parsing %q: %w", input, err)
	}
	return line, nil
}

// GetCodeParts splits input into default code, optional sections and repeat
// blocks and returns the flattened records. Empty input yields nil.
func (a *Analyzer) GetCodeParts(input string) ([]splitter.Part, error) {
	if input == "" {
		return nil, nil
	}
	parts, err := a.getCodeParts(input, a.dump)
	if err == nil || a.dump {
		return parts, err
	}
	a.log.Warn("split failed, retrying with token dump", "grammar", a.splitting.Name(), "error", err)
	return a.getCodeParts(input, true)
}

func (a *Analyzer) getCodeParts(input string, dump bool) ([]splitter.Part, error) {
	tokens, err := a.lex(a.splitting, input, dump)
	if err != nil {
		return nil, err
	}
	section, err := splitter.Parse(tokens)
	if err != nil {
		return nil, fmt.Errorf("splitting %q: %w", input, err)
	}
	return splitter.Flatten(section), nil
}

func (a *Analyzer) lex(l *lexer.Lexer, input string, dump bool) ([]lexer.Token, error) {
	tokens, err := l.Lex(input)
	if err != nil {
		return nil, fmt.Errorf("lexing %q: %w", input, err)
	}
	if dump {
		for i, t := range tokens {
			a.log.Info("token", "lexer", l.Name(), "index", i, "kind", t.Kind, "text", t.Text, "pos", t.Pos)
		}
	}
	return tokens, nil
}

// Tokens returns the token stream of the main lexer, or of the splitting
// lexer when splitting is set.
func (a *Analyzer) Tokens(input string, splitting bool) ([]lexer.Token, error) {
	l := a.main
	if splitting {
		l = a.splitting
	}
	return l.Lex(input)
}

// RichText parses input and renders it with s. Empty input renders as "".
func (a *Analyzer) RichText(input string, s ast.Styler) (string, error) {
	line, err := a.ParseString(input)
	if err != nil || line == nil {
		return "", err
	}
	return ast.RichText(line, s), nil
}

// Variables parses input and returns its variables in collection order.
func (a *Analyzer) Variables(input string) ([]*ast.Variable, error) {
	line, err := a.ParseString(input)
	if err != nil || line == nil {
		return nil, err
	}
	return ast.Variables(line), nil
}
