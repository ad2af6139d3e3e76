// Package parser implements the EES expression grammar over the main token
// stream.
package parser

import (
	"strconv"

	"github.com/eescode/eescode/pkg/ast"
	"github.com/eescode/eescode/pkg/lexer"
)

const (
	inputBindingExample = "Delta_p[$2] = $input[3]"
	callExample         = "Call Enthalpy(fluid, P = P[$0])"
)

// binary operator precedence; '=' binds loosest and is right associative.
var precedence = map[lexer.Kind]int{
	lexer.Equals: 1,
	lexer.Plus:   2,
	lexer.Minus:  2,
	lexer.Times:  3,
	lexer.Divide: 3,
}

type parser struct {
	tokens []lexer.Token
	pos    int
	eof    lexer.Token
}

// Parse builds the Line for a token stream produced by the main lexer. It
// fails with *SyntaxError or *ShapeError; there is no partial result.
func Parse(tokens []lexer.Token) (*ast.Line, error) {
	end := 0
	if n := len(tokens); n > 0 {
		end = tokens[n-1].Pos + len(tokens[n-1].Text)
	}
	p := &parser{tokens: tokens, eof: lexer.Token{Kind: lexer.EOF, Pos: end}}
	line, err := p.parseLine()
	if err != nil {
		return nil, err
	}
	if p.peek().Kind != lexer.EOF {
		return nil, p.unexpected()
	}
	return line, nil
}

func (p *parser) peek() lexer.Token {
	return p.peekAt(0)
}

func (p *parser) peekAt(offset int) lexer.Token {
	if i := p.pos + offset; i < len(p.tokens) {
		return p.tokens[i]
	}
	return p.eof
}

func (p *parser) advance() lexer.Token {
	t := p.peek()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return t
}

func (p *parser) expect(kinds ...lexer.Kind) (lexer.Token, error) {
	t := p.peek()
	for _, k := range kinds {
		if t.Kind == k {
			return p.advance(), nil
		}
	}
	return t, p.unexpected(kinds...)
}

func (p *parser) unexpected(expected ...lexer.Kind) *SyntaxError {
	return &SyntaxError{Token: p.peek(), Expected: expected}
}

// line := [statement] ['"' comment_tokens ['"'] [line]]
func (p *parser) parseLine() (*ast.Line, error) {
	line := &ast.Line{}
	if p.peek().Kind != lexer.Quote {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		line.Expression = stmt
	}
	if p.peek().Kind != lexer.Quote {
		return line, nil
	}
	comment, err := p.parseComment()
	if err != nil {
		return nil, err
	}
	line.Comment = comment
	if comment.Closed && p.peek().Kind != lexer.EOF {
		next, err := p.parseLine()
		if err != nil {
			return nil, err
		}
		line.Next = next
	}
	return line, nil
}

// parseComment reads '"' followed by one or more tokens up to an optional
// closing quote. Each token becomes one CommentString.
func (p *parser) parseComment() (*ast.Comment, error) {
	quote, err := p.expect(lexer.Quote)
	if err != nil {
		return nil, err
	}
	end := quote.Pos + len(quote.Text)
	c := &ast.Comment{}
	var tail *ast.CommentString
	for {
		t := p.peek()
		if t.Kind == lexer.EOF || t.Kind == lexer.Quote {
			break
		}
		p.advance()
		s := &ast.CommentString{Text: t.Text, Spaced: t.Pos > end}
		end = t.Pos + len(t.Text)
		if tail == nil {
			c.Text = s
		} else {
			tail.Next = s
		}
		tail = s
	}
	if c.Text == nil {
		return nil, p.unexpected()
	}
	if p.peek().Kind == lexer.Quote {
		p.advance()
		c.Closed = true
	}
	return c, nil
}

// statement := CALL expression | expression | expression '=' '$' INPUT '[' NUMBER ']'
func (p *parser) parseStatement() (ast.Node, error) {
	if p.peek().Kind == lexer.Call {
		call := p.advance()
		expr, err := p.parseExpression(1)
		if err != nil {
			return nil, err
		}
		fn, ok := expr.(*ast.Function)
		if !ok {
			return nil, &ShapeError{
				Construct: "Call statement",
				Want:      "a function call",
				Found:     ast.KindOf(expr),
				Example:   callExample,
				Pos:       call.Pos,
			}
		}
		fn.IsCalled = true
		return fn, nil
	}

	start := p.peek()
	expr, err := p.parseExpression(1)
	if err != nil {
		return nil, err
	}
	if !p.atInputBinding() {
		return expr, nil
	}
	switch expr.(type) {
	case *ast.Identifier, *ast.Variable:
	default:
		return nil, &ShapeError{
			Construct: "input binding",
			Want:      "an Identifier or Variable on the left side",
			Found:     ast.KindOf(expr),
			Example:   inputBindingExample,
			Pos:       start.Pos,
		}
	}
	p.advance() // =
	p.advance() // $
	p.advance() // input
	if _, err := p.expect(lexer.OpenSquareBracket); err != nil {
		return nil, err
	}
	index, err := p.parseNumber()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.CloseSquareBracket); err != nil {
		return nil, err
	}
	return ast.NewInputBlock(expr, &ast.Variable{Name: "input", Index: index}), nil
}

func (p *parser) atInputBinding() bool {
	return p.peekAt(0).Kind == lexer.Equals &&
		p.peekAt(1).Kind == lexer.Dollar &&
		p.peekAt(2).Kind == lexer.Input
}

// parseExpression climbs binary operators of at least minPrec.
func (p *parser) parseExpression(minPrec int) (ast.Node, error) {
	left, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		op := p.peek()
		prec, ok := precedence[op.Kind]
		if !ok || prec < minPrec {
			return left, nil
		}
		if op.Kind == lexer.Equals && p.atInputBinding() {
			return left, nil
		}
		p.advance()
		nextMin := prec + 1
		if op.Kind == lexer.Equals {
			nextMin = prec
		}
		right, err := p.parseExpression(nextMin)
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryOp{Left: left, Right: right, Op: op.Text}
	}
}

// primary := '&' REPEAT_KEYWORD '{' expression '}' | IDENTIFIER '(' arguments ')'
//          | '(' expression ')' | atom
func (p *parser) parsePrimary() (ast.Node, error) {
	t := p.peek()
	switch {
	case t.Kind == lexer.Ampersand:
		p.advance()
		kw, err := p.expect(lexer.RepeatKeyword)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.OpenCurlyBracket); err != nil {
			return nil, err
		}
		expr, err := p.parseExpression(1)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.CloseCurlyBracket); err != nil {
			return nil, err
		}
		return &ast.RepeatKeywordExpression{KeyWord: kw.Text, Expression: expr}, nil
	case t.Kind == lexer.OpenBracket:
		p.advance()
		expr, err := p.parseExpression(1)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.CloseBracket); err != nil {
			return nil, err
		}
		return &ast.RoundedBracket{Expression: expr}, nil
	case t.Kind.IsWord() && p.peekAt(1).Kind == lexer.OpenBracket:
		p.advance()
		p.advance()
		args, err := p.parseArguments()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.CloseBracket); err != nil {
			return nil, err
		}
		return &ast.Function{Name: t.Text, Expression: args}, nil
	}
	return p.parseAtom()
}

// arguments := argument {',' argument}
func (p *parser) parseArguments() (*ast.FunctionArgument, error) {
	var head, tail *ast.FunctionArgument
	for {
		arg, err := p.parseArgument()
		if err != nil {
			return nil, err
		}
		fa := &ast.FunctionArgument{Expression: arg}
		if head == nil {
			head = fa
		} else {
			tail.Next = fa
		}
		tail = fa
		if p.peek().Kind != lexer.Comma {
			return head, nil
		}
		p.advance()
	}
}

// argument := atom ['=' atom]
func (p *parser) parseArgument() (ast.Node, error) {
	left, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	if p.peek().Kind != lexer.Equals {
		return left, nil
	}
	op := p.advance()
	right, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	return &ast.BinaryOp{Left: left, Right: right, Op: op.Text}, nil
}

// atom := NUMBER | IDENTIFIER | IDENTIFIER '[' '$' (NUMBER | BLOCK_INDEX) ']' | '$' FLUID
func (p *parser) parseAtom() (ast.Node, error) {
	t := p.peek()
	switch {
	case t.Kind == lexer.Number:
		v, err := p.parseNumber()
		if err != nil {
			return nil, err
		}
		return &ast.Number{Value: v}, nil
	case t.Kind == lexer.Dollar:
		p.advance()
		if _, err := p.expect(lexer.Fluid); err != nil {
			return nil, err
		}
		return &ast.Variable{Name: "fluid", Index: -1, IsFluid: true}, nil
	case t.Kind.IsWord():
		p.advance()
		if p.peek().Kind != lexer.OpenSquareBracket {
			return &ast.Identifier{Name: t.Text}, nil
		}
		p.advance()
		if _, err := p.expect(lexer.Dollar); err != nil {
			return nil, err
		}
		v := &ast.Variable{Name: t.Text, Index: -1}
		if p.peek().Kind == lexer.BlockIndex {
			p.advance()
			v.IsBlockIndex = true
		} else {
			if p.peek().Kind != lexer.Number {
				return nil, p.unexpected(lexer.Number, lexer.BlockIndex)
			}
			index, err := p.parseNumber()
			if err != nil {
				return nil, err
			}
			v.Index = index
		}
		if _, err := p.expect(lexer.CloseSquareBracket); err != nil {
			return nil, err
		}
		return v, nil
	}
	return nil, p.unexpected()
}

func (p *parser) parseNumber() (int, error) {
	t, err := p.expect(lexer.Number)
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(t.Text)
	if err != nil {
		return 0, &SyntaxError{Token: t, Msg: "number out of range"}
	}
	return v, nil
}
