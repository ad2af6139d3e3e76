// Package ast defines the expression tree produced by the EES parser and the
// two operations every node supports: rendering itself as rich text and
// collecting the variables it references.
package ast

import "strings"

// Node is any node of a parsed EES line. The set of nodes is closed.
type Node interface {
	node()
}

// Line is the root of a parse. Next chains the lines that follow a closed
// comment on the same input.
type Line struct {
	Expression Node
	Comment    *Comment
	Next       *Line
}

// Number is an integer literal.
type Number struct {
	Value int
}

// Identifier is a bare name.
type Identifier struct {
	Name string
}

// Variable is an indexed variable reference. Exactly one render mode applies:
// block index (P[$block_index]), input slot ($input[3]), fluid ($fluid) or,
// with none of the flags set, a plain index (P[$0]).
type Variable struct {
	Name         string
	Index        int
	IsBlockIndex bool
	IsInput      bool
	IsFluid      bool
}

// RepeatKeywordExpression wraps &sum{...}, &multiply{...} and &repeat{...}.
type RepeatKeywordExpression struct {
	KeyWord    string
	Expression Node
}

// Function is a call f(args). IsCalled is set for Call statements.
type Function struct {
	Name       string
	Expression *FunctionArgument
	IsCalled   bool
}

// FunctionArgument is one element of a right-linked argument list.
type FunctionArgument struct {
	Expression Node
	Next       *FunctionArgument
}

// RoundedBracket keeps explicit parentheses.
type RoundedBracket struct {
	Expression Node
}

// InputBlock binds an input slot onto a variable: Delta_p[$2] = $input[3].
// Variable is an *Identifier or a *Variable.
type InputBlock struct {
	Variable Node
	Input    *Variable
}

// NewInputBlock builds an InputBlock. Constructing an InputBlock always
// synchronizes the input variable with its binding: the input is marked as
// an input and takes the bound variable's name.
func NewInputBlock(variable Node, input *Variable) *InputBlock {
	input.IsInput = true
	switch v := variable.(type) {
	case *Variable:
		input.Name = v.Name
	case *Identifier:
		input.Name = v.Name
	}
	return &InputBlock{Variable: variable, Input: input}
}

// BinaryOp is left Op right with Op one of + - * / =.
type BinaryOp struct {
	Left  Node
	Right Node
	Op    string
}

// Comment is a quoted trailing comment. Closed is false when the input ended
// before the closing quote.
type Comment struct {
	Text   *CommentString
	Closed bool
}

// CommentString is one token of comment text. Spaced records that
// whitespace preceded the token in the source.
type CommentString struct {
	Text   string
	Spaced bool
	Next   *CommentString
}

// String joins the chain, putting a single space wherever the source had
// whitespace between two tokens.
func (c *CommentString) String() string {
	var b strings.Builder
	for s := c; s != nil; s = s.Next {
		if s != c && s.Spaced {
			b.WriteByte(' ')
		}
		b.WriteString(s.Text)
	}
	return b.String()
}

func (*Line) node()                    {}
func (*Number) node()                  {}
func (*Identifier) node()              {}
func (*Variable) node()                {}
func (*RepeatKeywordExpression) node() {}
func (*Function) node()                {}
func (*FunctionArgument) node()        {}
func (*RoundedBracket) node()          {}
func (*InputBlock) node()              {}
func (*BinaryOp) node()                {}
func (*Comment) node()                 {}
func (*CommentString) node()           {}

// KindOf returns the variant name of n, as used in error messages.
func KindOf(n Node) string {
	switch n.(type) {
	case *Line:
		return "Line"
	case *Number:
		return "Number"
	case *Identifier:
		return "Identifier"
	case *Variable:
		return "Variable"
	case *RepeatKeywordExpression:
		return "RepeatKeywordExpression"
	case *Function:
		return "Function"
	case *FunctionArgument:
		return "FunctionArgument"
	case *RoundedBracket:
		return "RoundedBracket"
	case *InputBlock:
		return "InputBlock"
	case *BinaryOp:
		return "BinaryOp"
	case *Comment:
		return "Comment"
	case *CommentString:
		return "CommentString"
	case nil:
		return "nil"
	}
	return "unknown"
}

// IsVariable reports whether n registers itself when variables are collected.
func IsVariable(n Node) bool {
	_, ok := n.(*Variable)
	return ok
}

// IsInput reports whether n is a variable bound to an input slot.
func IsInput(n Node) bool {
	v, ok := n.(*Variable)
	return ok && v.IsInput
}

// Slots returns the four child slots of n. Absent children are nil
// interfaces, never typed nil pointers.
func Slots(n Node) (next, expression, right, left Node) {
	switch t := n.(type) {
	case *Line:
		if t.Next != nil {
			next = t.Next
		}
		expression = t.Expression
	case *Function:
		if t.Expression != nil {
			expression = t.Expression
		}
	case *FunctionArgument:
		if t.Next != nil {
			next = t.Next
		}
		expression = t.Expression
	case *RoundedBracket:
		expression = t.Expression
	case *RepeatKeywordExpression:
		expression = t.Expression
	case *BinaryOp:
		right, left = t.Right, t.Left
	case *InputBlock:
		if t.Input != nil {
			right = t.Input
		}
		left = t.Variable
	case *CommentString:
		if t.Next != nil {
			next = t.Next
		}
	}
	return
}
