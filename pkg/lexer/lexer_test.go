package lexer

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func kinds(tokens []Token) []Kind {
	var out []Kind
	for _, t := range tokens {
		out = append(out, t.Kind)
	}
	return out
}

func TestMainLexer(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Kind
	}{
		{
			name:  "arithmetic",
			input: "10 + 20",
			want:  []Kind{Number, Plus, Number},
		},
		{
			name:  "indexed variable",
			input: "P[$0]",
			want:  []Kind{Identifier, OpenSquareBracket, Dollar, Number, CloseSquareBracket},
		},
		{
			name:  "input binding",
			input: "Delta_p[$2] = $input[3]",
			want: []Kind{
				Identifier, OpenSquareBracket, Dollar, Number, CloseSquareBracket,
				Equals, Dollar, Input, OpenSquareBracket, Number, CloseSquareBracket,
			},
		},
		{
			name:  "keywords need word boundaries",
			input: "inputs fluid_2 summary Caller",
			want:  []Kind{Identifier, Identifier, Identifier, Identifier},
		},
		{
			name:  "keywords",
			input: "Call sum multiply repeat block_index fluid input",
			want:  []Kind{Call, RepeatKeyword, RepeatKeyword, RepeatKeyword, BlockIndex, Fluid, Input},
		},
		{
			name:  "optional is a plain identifier in the main lexer",
			input: "optional",
			want:  []Kind{Identifier},
		},
		{
			name:  "repeat block",
			input: "&sum{x*2}",
			want:  []Kind{Ampersand, RepeatKeyword, OpenCurlyBracket, Identifier, Times, Number, CloseCurlyBracket},
		},
		{
			name:  "comment",
			input: `a "note: 1.5 %"`,
			want:  []Kind{Identifier, Quote, Identifier, Text, Number, Text, Number, Text, Quote},
		},
		{
			name:  "all operators",
			input: `$&",+-*/=()[]{}`,
			want: []Kind{
				Dollar, Ampersand, Quote, Comma, Plus, Minus, Times, Divide, Equals,
				OpenBracket, CloseBracket, OpenSquareBracket, CloseSquareBracket,
				OpenCurlyBracket, CloseCurlyBracket,
			},
		},
		{
			name:  "whitespace only",
			input: " \t\n ",
			want:  nil,
		},
		{
			name:  "unicode whitespace is skipped",
			input: "x\u00a0+ 1\u2003\u000b\u0085",
			want:  []Kind{Identifier, Plus, Number},
		},
	}

	l := NewMain()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, err := l.Lex(tt.input)
			if err != nil {
				t.Fatalf("Lex(%q): %v", tt.input, err)
			}
			if diff := cmp.Diff(tt.want, kinds(tokens)); diff != "" {
				t.Errorf("Lex(%q) kinds mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestTokenTextAndPositions(t *testing.T) {
	tokens, err := NewMain().Lex("ab  = 12")
	if err != nil {
		t.Fatalf("Lex: %v", err)
	}
	want := []Token{
		{Kind: Identifier, Text: "ab", Pos: 0},
		{Kind: Equals, Text: "=", Pos: 4},
		{Kind: Number, Text: "12", Pos: 6},
	}
	if diff := cmp.Diff(want, tokens); diff != "" {
		t.Errorf("tokens mismatch (-want +got):\n%s", diff)
	}
}

func TestSplittingLexerKeepsWhitespace(t *testing.T) {
	tokens, err := NewSplitting().Lex("a b\n&optional(x){c}")
	if err != nil {
		t.Fatalf("Lex: %v", err)
	}
	want := []Kind{
		Identifier, Space, Identifier, Space,
		Ampersand, Optional, OpenBracket, Identifier, CloseBracket,
		OpenCurlyBracket, Identifier, CloseCurlyBracket,
	}
	if diff := cmp.Diff(want, kinds(tokens)); diff != "" {
		t.Errorf("kinds mismatch (-want +got):\n%s", diff)
	}
	if tokens[3].Text != "\n" {
		t.Errorf("newline token text = %q", tokens[3].Text)
	}
}

func TestSplittingUnicodeWhitespace(t *testing.T) {
	tokens, err := NewSplitting().Lex("a\u00a0b\u2028c")
	if err != nil {
		t.Fatalf("Lex: %v", err)
	}
	want := []Token{
		{Kind: Identifier, Text: "a", Pos: 0},
		{Kind: Space, Text: "\u00a0", Pos: 1},
		{Kind: Identifier, Text: "b", Pos: 3},
		{Kind: Space, Text: "\u2028", Pos: 4},
		{Kind: Identifier, Text: "c", Pos: 7},
	}
	if diff := cmp.Diff(want, tokens); diff != "" {
		t.Errorf("tokens mismatch (-want +got):\n%s", diff)
	}
}

func TestTextIsLowestPriority(t *testing.T) {
	tokens, err := NewSplitting().Lex("x.y&repeat{#}")
	if err != nil {
		t.Fatalf("Lex: %v", err)
	}
	want := []Kind{Identifier, Text, Identifier, Ampersand, RepeatKeyword, OpenCurlyBracket, Text, CloseCurlyBracket}
	if diff := cmp.Diff(want, kinds(tokens)); diff != "" {
		t.Errorf("kinds mismatch (-want +got):\n%s", diff)
	}
}

func TestLexIsRestartable(t *testing.T) {
	l := NewSplitting()
	in := "abc&repeat{def} (ghi) é"
	first, err := l.Lex(in)
	if err != nil {
		t.Fatalf("Lex: %v", err)
	}
	second, err := l.Lex(in)
	if err != nil {
		t.Fatalf("Lex: %v", err)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("second lex differs (-first +second):\n%s", diff)
	}
}

func TestRuleTables(t *testing.T) {
	has := func(rules []Rule, k Kind) bool {
		for _, r := range rules {
			if r.Kind == k {
				return true
			}
		}
		return false
	}
	if has(MainRules(), Optional) || has(MainRules(), Space) {
		t.Errorf("main lexer must not produce OPTIONAL or SPACE")
	}
	if !has(SplittingRules(), Optional) || !has(SplittingRules(), Space) {
		t.Errorf("splitting lexer must produce OPTIONAL and SPACE")
	}
}

func TestDump(t *testing.T) {
	tokens := []Token{{Kind: Number, Text: "1", Pos: 0}, {Kind: Plus, Text: "+", Pos: 2}}
	want := "NUMBER \"1\" @0\nPLUS \"+\" @2\n"
	if got := Dump(tokens); got != want {
		t.Errorf("Dump = %q, want %q", got, want)
	}
}

// FuzzLex checks that lexing is total: any input tokenizes without error and
// the token texts cover every non-whitespace byte.
func FuzzLex(f *testing.F) {
	seeds := []string{
		"",
		"10 + 20",
		"Delta_p[$2] = $input[3]",
		`Call Enthalpy(fluid, P = P[$0]) "comment ~ §"`,
		"&optional(name){x = 1}\n(abc)",
		"@#!?%^~`|\\<>;:.'",
		"\x00\xff",
	}
	for _, s := range seeds {
		f.Add(s)
	}
	lexers := []*Lexer{NewMain(), NewSplitting()}
	f.Fuzz(func(t *testing.T, input string) {
		for _, l := range lexers {
			tokens, err := l.Lex(input)
			if err != nil {
				t.Fatalf("%s lexer failed on %q: %v", l.Name(), input, err)
			}
			end := 0
			for _, tok := range tokens {
				if tok.Pos < end {
					t.Fatalf("%s lexer: token %v overlaps previous token", l.Name(), tok)
				}
				end = tok.Pos + len(tok.Text)
			}
		}
	})
}
