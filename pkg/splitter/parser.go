// Package splitter partitions raw source into default code, optional
// sections (&optional(name){...}) and repeat blocks (&sum{...}) using the
// whitespace-significant token stream of the splitting lexer.
package splitter

import (
	"github.com/eescode/eescode/pkg/lexer"
	"github.com/eescode/eescode/pkg/parser"
)

// reserved tokens can never be plain code parts.
var reserved = map[lexer.Kind]bool{
	lexer.OpenCurlyBracket:  true,
	lexer.CloseCurlyBracket: true,
	lexer.RepeatKeyword:     true,
	lexer.Optional:          true,
	lexer.Ampersand:         true,
}

type splitParser struct {
	tokens []lexer.Token
	pos    int
	eof    lexer.Token
}

// Parse builds the section chain for a splitting token stream. Errors are
// *parser.SyntaxError.
func Parse(tokens []lexer.Token) (*CodeSection, error) {
	end := 0
	if n := len(tokens); n > 0 {
		end = tokens[n-1].Pos + len(tokens[n-1].Text)
	}
	p := &splitParser{tokens: tokens, eof: lexer.Token{Kind: lexer.EOF, Pos: end}}
	return p.parseMainCode()
}

func (p *splitParser) peek() lexer.Token {
	if p.pos < len(p.tokens) {
		return p.tokens[p.pos]
	}
	return p.eof
}

func (p *splitParser) advance() lexer.Token {
	t := p.peek()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return t
}

func (p *splitParser) expect(k lexer.Kind) (lexer.Token, error) {
	t := p.peek()
	if t.Kind != k {
		return t, p.unexpected(k)
	}
	return p.advance(), nil
}

func (p *splitParser) unexpected(expected ...lexer.Kind) error {
	return &parser.SyntaxError{Token: p.peek(), Expected: expected}
}

// main_code := code_container {code_container}
func (p *splitParser) parseMainCode() (*CodeSection, error) {
	var head, tail *CodeSection
	for {
		s, err := p.parseContainer()
		if err != nil {
			return nil, err
		}
		if head == nil {
			head = s
		} else {
			tail.Next = s
		}
		tail = s
		if p.peek().Kind == lexer.EOF {
			return head, nil
		}
	}
}

// code_container := code_identifier '{' code_parts '}' | '(' code_parts ')' | code_parts
func (p *splitParser) parseContainer() (*CodeSection, error) {
	switch p.peek().Kind {
	case lexer.Ampersand:
		typ, name, err := p.parseCodeIdentifier()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.OpenCurlyBracket); err != nil {
			return nil, err
		}
		parts, err := p.parseParts()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.CloseCurlyBracket); err != nil {
			return nil, err
		}
		return &CodeSection{Name: name, Type: typ, Expression: parts}, nil
	case lexer.OpenBracket:
		p.advance()
		parts, err := p.parseBracketParts()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.CloseBracket); err != nil {
			return nil, err
		}
		parts.HasBracket = true
		return NewCodeSection(parts), nil
	}
	parts, err := p.parseParts()
	if err != nil {
		return nil, err
	}
	return NewCodeSection(parts), nil
}

// code_identifier := '&' REPEAT_KEYWORD | '&' OPTIONAL '(' IDENTIFIER ')'
// It returns the section type and name.
func (p *splitParser) parseCodeIdentifier() (typ, name string, err error) {
	if _, err := p.expect(lexer.Ampersand); err != nil {
		return "", "", err
	}
	t := p.peek()
	switch t.Kind {
	case lexer.RepeatKeyword:
		p.advance()
		return t.Text, "", nil
	case lexer.Optional:
		p.advance()
		if _, err := p.expect(lexer.OpenBracket); err != nil {
			return "", "", err
		}
		id := p.peek()
		if !id.Kind.IsWord() {
			return "", "", p.unexpected(lexer.Identifier)
		}
		p.advance()
		if _, err := p.expect(lexer.CloseBracket); err != nil {
			return "", "", err
		}
		return TypeOptional, id.Text, nil
	}
	return "", "", p.unexpected(lexer.RepeatKeyword, lexer.Optional)
}

// parseParts reads one or more non-reserved tokens.
func (p *splitParser) parseParts() (*CodePart, error) {
	var head, tail *CodePart
	for {
		t := p.peek()
		if t.Kind == lexer.EOF || reserved[t.Kind] {
			break
		}
		p.advance()
		part := &CodePart{Expression: t.Text}
		if head == nil {
			head = part
		} else {
			tail.Next = part
		}
		tail = part
	}
	if head == nil {
		return nil, p.unexpected()
	}
	return head, nil
}

// parseBracketParts reads the parts of a bracketed container up to, but not
// including, the matching close bracket.
func (p *splitParser) parseBracketParts() (*CodePart, error) {
	var head, tail *CodePart
	depth := 0
	for {
		t := p.peek()
		if t.Kind == lexer.EOF || reserved[t.Kind] {
			break
		}
		if t.Kind == lexer.CloseBracket {
			if depth == 0 {
				break
			}
			depth--
		}
		if t.Kind == lexer.OpenBracket {
			depth++
		}
		p.advance()
		part := &CodePart{Expression: t.Text}
		if head == nil {
			head = part
		} else {
			tail.Next = part
		}
		tail = part
	}
	if head == nil {
		return nil, p.unexpected()
	}
	return head, nil
}
