package ast

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type plain struct{}

func (plain) Style(_, text string) string { return text }
func (plain) LineBreak() string           { return "\n" }

// tagged marks every span with its class so tests can check classification.
type tagged struct{}

func (tagged) Style(class, text string) string { return "<" + class + ":" + text + ">" }
func (tagged) LineBreak() string               { return "|" }

func TestRichTextPlain(t *testing.T) {
	enthalpy := &Function{
		Name: "Enthalpy",
		Expression: &FunctionArgument{
			Expression: &Identifier{Name: "fluid"},
			Next: &FunctionArgument{
				Expression: &BinaryOp{Left: &Identifier{Name: "P"}, Right: &Variable{Name: "P"}, Op: "="},
			},
		},
	}
	tests := []struct {
		name string
		node Node
		want string
	}{
		{"number", &Number{Value: 10}, "10"},
		{"binary", &BinaryOp{Left: &Number{Value: 10}, Right: &Number{Value: 20}, Op: "+"}, "10 + 20"},
		{"indexed", &Variable{Name: "P", Index: 0}, "P[$0]"},
		{"block index", &Variable{Name: "T", Index: -1, IsBlockIndex: true}, "T[$block_index]"},
		{"fluid", &Variable{Name: "fluid", Index: -1, IsFluid: true}, "$fluid"},
		{"input", &Variable{Name: "x", Index: 3, IsInput: true}, "$input[3]"},
		{"function", enthalpy, "Enthalpy(fluid, P = P[$0])"},
		{"call", &Function{Name: "foo", Expression: &FunctionArgument{Expression: &Identifier{Name: "x"}}, IsCalled: true}, "Call foo(x)"},
		{"repeat", &RepeatKeywordExpression{KeyWord: "sum", Expression: &Identifier{Name: "x"}}, "&sum{x}"},
		{"brackets", &RoundedBracket{Expression: &BinaryOp{Left: &Number{Value: 1}, Right: &Number{Value: 2}, Op: "-"}}, "(1 - 2)"},
		{
			"line with comment and next",
			&Line{
				Expression: &Identifier{Name: "a"},
				Comment:    &Comment{Text: &CommentString{Text: "first", Next: &CommentString{Text: "note", Spaced: true}}, Closed: true},
				Next:       &Line{Comment: &Comment{Text: &CommentString{Text: "open"}}},
			},
			"a \"first note\"\n\"open",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RichText(tt.node, plain{}); got != tt.want {
				t.Errorf("RichText = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRichTextStyles(t *testing.T) {
	tests := []struct {
		name string
		node Node
		want string
	}{
		{
			"variable index is styled",
			&Variable{Name: "P", Index: 0},
			"<default:P[><variable:$0><default:]>",
		},
		{
			"known function",
			&Function{Name: "enthalpy", Expression: &FunctionArgument{Expression: &Number{Value: 1}}},
			"<known_keyword:enthalpy><default:(><default:1><default:)>",
		},
		{
			"unknown function",
			&Function{Name: "myfunc", Expression: &FunctionArgument{Expression: &Number{Value: 1}}},
			"<unknown_function:myfunc><default:(><default:1><default:)>",
		},
		{
			"repeat keyword",
			&RepeatKeywordExpression{KeyWord: "multiply", Expression: &Number{Value: 2}},
			"<repeated_keyword:&multiply><default:{><default:2><default:}>",
		},
		{
			"comment",
			&Line{Comment: &Comment{Text: &CommentString{Text: "x"}, Closed: true}, Next: &Line{Expression: &Number{Value: 1}}},
			`<comments:"x">|<default:1>`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RichText(tt.node, tagged{}); got != tt.want {
				t.Errorf("RichText = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRichTextIsDeterministic(t *testing.T) {
	n := &Line{Expression: &BinaryOp{Left: &Variable{Name: "a", Index: 1}, Right: &Number{Value: 3}, Op: "*"}}
	if RichText(n, tagged{}) != RichText(n, tagged{}) {
		t.Fatal("RichText differs between calls")
	}
}

func TestNewInputBlockSynchronizesInput(t *testing.T) {
	lhs := &Variable{Name: "Delta_p", Index: 2}
	in := &Variable{Name: "input", Index: 3}
	b := NewInputBlock(lhs, in)
	want := &Variable{Name: "Delta_p", Index: 3, IsInput: true}
	if diff := cmp.Diff(want, b.Input); diff != "" {
		t.Errorf("input mismatch (-want +got):\n%s", diff)
	}
	if !IsInput(b.Input) || IsInput(lhs) {
		t.Errorf("IsInput: input=%v lhs=%v", IsInput(b.Input), IsInput(lhs))
	}

	b = NewInputBlock(&Identifier{Name: "x"}, &Variable{Index: 1})
	if b.Input.Name != "x" {
		t.Errorf("input name = %q, want x", b.Input.Name)
	}
}

func TestVariablesOrder(t *testing.T) {
	a := &Variable{Name: "a", Index: 0}
	b := &Variable{Name: "b", Index: 1}
	c := &Variable{Name: "c", Index: 2}
	// a + (b * c) "d[$3]"
	line := &Line{
		Expression: &BinaryOp{
			Left:  a,
			Right: &BinaryOp{Left: b, Right: c, Op: "*"},
			Op:    "+",
		},
		Comment: &Comment{Text: &CommentString{Text: "d[$3]"}, Closed: true},
	}
	got := Variables(line)
	want := []*Variable{c, b, a}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Variables mismatch (-want +got):\n%s", diff)
	}
}

func TestVariablesOfBinaryOpIsUnionOfSides(t *testing.T) {
	left := &FunctionArgument{Expression: &Variable{Name: "x", Index: 1}, Next: &FunctionArgument{Expression: &Variable{Name: "y", Index: 2}}}
	leftFn := &Function{Name: "f", Expression: left}
	right := &RoundedBracket{Expression: &Variable{Name: "z", Index: 3}}
	op := &BinaryOp{Left: leftFn, Right: right, Op: "="}

	got := Variables(op)
	want := append(Variables(right), Variables(leftFn)...)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Variables mismatch (-want +got):\n%s", diff)
	}
	if len(got) != 3 {
		t.Errorf("got %d variables, want 3", len(got))
	}
}

func TestVariablesSkipComments(t *testing.T) {
	if got := Variables(&Comment{Text: &CommentString{Text: "P[$0]"}}); len(got) != 0 {
		t.Errorf("comment contributed %d variables", len(got))
	}
	if got := Variables(nil); got != nil {
		t.Errorf("Variables(nil) = %v", got)
	}
}

func TestKindOf(t *testing.T) {
	if KindOf(&Number{}) != "Number" || KindOf(&InputBlock{}) != "InputBlock" || KindOf(nil) != "nil" {
		t.Errorf("unexpected kinds: %s %s %s", KindOf(&Number{}), KindOf(&InputBlock{}), KindOf(nil))
	}
}

func TestFunctions(t *testing.T) {
	line := &Line{
		Expression: &BinaryOp{
			Left:  &Function{Name: "Enthalpy", Expression: &FunctionArgument{Expression: &Identifier{Name: "fluid"}}},
			Right: &RoundedBracket{Expression: &Function{Name: "sqrt", Expression: &FunctionArgument{Expression: &Number{Value: 2}}}},
			Op:    "+",
		},
	}
	if diff := cmp.Diff([]string{"Enthalpy", "sqrt"}, Functions(line)); diff != "" {
		t.Errorf("Functions mismatch (-want +got):\n%s", diff)
	}
}

func TestCommentSpacing(t *testing.T) {
	c := &CommentString{Text: "T", Spaced: true, Next: &CommentString{Text: "=",
		Next: &CommentString{Text: "300", Next: &CommentString{Text: ",", Next: &CommentString{Text: "ok", Spaced: true}}}}}
	if got := c.String(); got != "T=300, ok" {
		t.Errorf("String = %q, want %q", got, "T=300, ok")
	}
}

func TestWalkAndPretty(t *testing.T) {
	line := &Line{
		Expression: NewInputBlock(&Variable{Name: "P", Index: 1}, &Variable{Index: 4}),
		Comment:    &Comment{Text: &CommentString{Text: "bar"}, Closed: true},
	}
	var seen []string
	err := Walk(VisitorFunc(func(n Node) error {
		seen = append(seen, KindOf(n))
		return nil
	}), line)
	if err != nil {
		t.Fatalf("Walk: %v", err)
	}
	want := []string{"Line", "InputBlock", "Variable", "Variable", "Comment", "CommentString"}
	if diff := cmp.Diff(want, seen); diff != "" {
		t.Errorf("walk order mismatch (-want +got):\n%s", diff)
	}

	s := Pretty(line)
	for _, frag := range []string{"Line\n", "  InputBlock\n", "    Variable(P, 1)\n", "    Variable(P, 4, input)\n", "  Comment(\"bar\")\n"} {
		if !strings.Contains(s, frag) {
			t.Errorf("Pretty output missing %q:\n%s", frag, s)
		}
	}
}
