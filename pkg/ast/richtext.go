package ast

import (
	"strconv"
	"strings"
)

// Style classes passed to a Styler.
const (
	StyleDefault         = "default"
	StyleVariable        = "variable"
	StyleComments        = "comments"
	StyleRepeatedKeyword = "repeated_keyword"
	StyleKnownKeyword    = "known_keyword"
	StyleUnknownFunction = "unknown_function"
)

// Styles lists every class RichText may request.
var Styles = []string{
	StyleDefault,
	StyleVariable,
	StyleComments,
	StyleRepeatedKeyword,
	StyleKnownKeyword,
	StyleUnknownFunction,
}

// Styler turns a span of text into markup for a style class.
type Styler interface {
	Style(class, text string) string
	LineBreak() string
}

// knownFunctions are EES built-ins, compared case-insensitively.
var knownFunctions = map[string]bool{}

func init() {
	for _, name := range []string{
		// thermophysical properties
		"Enthalpy", "Entropy", "Density", "Volume", "IntEnergy", "Temperature",
		"Pressure", "Quality", "Cp", "Cv", "Viscosity", "Conductivity", "Prandtl",
		"SoundSpeed", "MolarMass", "T_crit", "P_crit", "v_crit", "T_sat", "P_sat",
		"Enthalpy_vaporization", "Enthalpy_fusion", "SurfaceTension",
		"HumRat", "RelHum", "WetBulb", "DewPoint", "Phase",
		// math
		"abs", "sqrt", "exp", "ln", "log10", "sin", "cos", "tan", "arcsin",
		"arccos", "arctan", "sinh", "cosh", "tanh", "min", "max", "round",
		"trunc", "sign", "if",
	} {
		knownFunctions[strings.ToLower(name)] = true
	}
}

// IsKnownFunction reports whether name is an EES built-in function.
func IsKnownFunction(name string) bool {
	return knownFunctions[strings.ToLower(name)]
}

// RichText renders n and its children as annotated text. It is a pure
// function of the tree.
func RichText(n Node, s Styler) string {
	var b strings.Builder
	writeRich(&b, n, s)
	return b.String()
}

func writeRich(b *strings.Builder, n Node, s Styler) {
	switch t := n.(type) {
	case *Line:
		if t.Expression != nil {
			writeRich(b, t.Expression, s)
		}
		if t.Comment != nil {
			if t.Expression != nil {
				b.WriteString(s.Style(StyleDefault, " "))
			}
			writeRich(b, t.Comment, s)
		}
		if t.Next != nil {
			b.WriteString(s.LineBreak())
			writeRich(b, t.Next, s)
		}
	case *Number:
		b.WriteString(s.Style(StyleDefault, strconv.Itoa(t.Value)))
	case *Identifier:
		b.WriteString(s.Style(StyleDefault, t.Name))
	case *Variable:
		switch {
		case t.IsFluid:
			b.WriteString(s.Style(StyleVariable, "$fluid"))
		case t.IsInput:
			b.WriteString(s.Style(StyleVariable, "$input"))
			b.WriteString(s.Style(StyleDefault, "["+strconv.Itoa(t.Index)+"]"))
		case t.IsBlockIndex:
			b.WriteString(s.Style(StyleDefault, t.Name+"["))
			b.WriteString(s.Style(StyleVariable, "$block_index"))
			b.WriteString(s.Style(StyleDefault, "]"))
		default:
			b.WriteString(s.Style(StyleDefault, t.Name+"["))
			b.WriteString(s.Style(StyleVariable, "$"+strconv.Itoa(t.Index)))
			b.WriteString(s.Style(StyleDefault, "]"))
		}
	case *RepeatKeywordExpression:
		b.WriteString(s.Style(StyleRepeatedKeyword, "&"+t.KeyWord))
		b.WriteString(s.Style(StyleDefault, "{"))
		writeRich(b, t.Expression, s)
		b.WriteString(s.Style(StyleDefault, "}"))
	case *Function:
		if t.IsCalled {
			b.WriteString(s.Style(StyleKnownKeyword, "Call"))
			b.WriteString(s.Style(StyleDefault, " "))
		}
		class := StyleUnknownFunction
		if IsKnownFunction(t.Name) {
			class = StyleKnownKeyword
		}
		b.WriteString(s.Style(class, t.Name))
		b.WriteString(s.Style(StyleDefault, "("))
		if t.Expression != nil {
			writeRich(b, t.Expression, s)
		}
		b.WriteString(s.Style(StyleDefault, ")"))
	case *FunctionArgument:
		writeRich(b, t.Expression, s)
		if t.Next != nil {
			b.WriteString(s.Style(StyleDefault, ", "))
			writeRich(b, t.Next, s)
		}
	case *RoundedBracket:
		b.WriteString(s.Style(StyleDefault, "("))
		writeRich(b, t.Expression, s)
		b.WriteString(s.Style(StyleDefault, ")"))
	case *InputBlock:
		writeRich(b, t.Variable, s)
		b.WriteString(s.Style(StyleDefault, " = "))
		writeRich(b, t.Input, s)
	case *BinaryOp:
		writeRich(b, t.Left, s)
		b.WriteString(s.Style(StyleDefault, " "+t.Op+" "))
		writeRich(b, t.Right, s)
	case *Comment:
		text := `"`
		if t.Text != nil {
			text += t.Text.String()
		}
		if t.Closed {
			text += `"`
		}
		b.WriteString(s.Style(StyleComments, text))
	case *CommentString:
		b.WriteString(s.Style(StyleComments, t.String()))
	}
}
