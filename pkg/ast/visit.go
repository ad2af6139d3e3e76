package ast

import (
	"bytes"
	"fmt"
)

type Visitor interface {
	Visit(n Node) error
}

// Walk calls v.Visit for n and then for its children in source order.
func Walk(v Visitor, n Node) error {
	if err := v.Visit(n); err != nil {
		return err
	}
	for _, c := range children(n) {
		if err := Walk(v, c); err != nil {
			return err
		}
	}
	return nil
}

// VisitorFunc adapts a function to a Visitor.
type VisitorFunc func(n Node) error

func (f VisitorFunc) Visit(n Node) error { return f(n) }

func children(n Node) []Node {
	var out []Node
	add := func(c Node) {
		if c != nil {
			out = append(out, c)
		}
	}
	switch t := n.(type) {
	case *Line:
		add(t.Expression)
		if t.Comment != nil {
			add(t.Comment)
		}
		if t.Next != nil {
			add(t.Next)
		}
	case *Comment:
		if t.Text != nil {
			add(t.Text)
		}
	case *InputBlock:
		add(t.Variable)
		if t.Input != nil {
			add(t.Input)
		}
	default:
		next, expression, right, left := Slots(n)
		add(left)
		add(expression)
		add(right)
		add(next)
	}
	return out
}

// Pretty returns a line-oriented string representation of the tree.
func Pretty(n Node) string {
	var buf bytes.Buffer
	ppNode(&buf, 0, n)
	return buf.String()
}

func ppNode(buf *bytes.Buffer, indent int, n Node) {
	for i := 0; i < indent; i++ {
		buf.WriteByte(' ')
	}
	switch t := n.(type) {
	case *Number:
		fmt.Fprintf(buf, "Number(%d)\n", t.Value)
	case *Identifier:
		fmt.Fprintf(buf, "Identifier(%s)\n", t.Name)
	case *Variable:
		mode := ""
		switch {
		case t.IsFluid:
			mode = ", fluid"
		case t.IsInput:
			mode = ", input"
		case t.IsBlockIndex:
			mode = ", block_index"
		}
		fmt.Fprintf(buf, "Variable(%s, %d%s)\n", t.Name, t.Index, mode)
	case *RepeatKeywordExpression:
		fmt.Fprintf(buf, "Repeat(%s)\n", t.KeyWord)
	case *Function:
		if t.IsCalled {
			fmt.Fprintf(buf, "Function(%s, called)\n", t.Name)
		} else {
			fmt.Fprintf(buf, "Function(%s)\n", t.Name)
		}
	case *BinaryOp:
		fmt.Fprintf(buf, "BinaryOp(%s)\n", t.Op)
	case *Comment:
		text := ""
		if t.Text != nil {
			text = t.Text.String()
		}
		fmt.Fprintf(buf, "Comment(%q)\n", text)
		return
	default:
		buf.WriteString(KindOf(n))
		buf.WriteByte('\n')
	}
	for _, c := range children(n) {
		ppNode(buf, indent+2, c)
	}
}
