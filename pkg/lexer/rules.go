package lexer

import "github.com/alecthomas/participle/v2/lexer"

// Rule binds a token kind to the pattern it matches.
type Rule struct {
	Kind    Kind
	Pattern string
}

// Rules are tried in order at each position, the first match wins. Keywords
// therefore come before IDENTIFIER and TEXT comes last.

// whitespace is the Unicode whitespace set: ASCII space and controls plus
// NEL and every separator such as U+00A0.
const whitespace = `\s\v\x{1c}-\x{1f}\x{85}\p{Z}`

var numberRules = []Rule{
	{Number, `[0-9]+`},
}

var keywordRules = []Rule{
	{RepeatKeyword, `(?:sum|multiply|repeat)\b`},
	{Input, `input\b`},
	{BlockIndex, `block_index\b`},
	{Fluid, `fluid\b`},
	{Call, `Call\b`},
}

var operatorRules = []Rule{
	{Dollar, `\$`},
	{Ampersand, `&`},
	{Quote, `"`},
	{Comma, `,`},
	{Plus, `\+`},
	{Minus, `-`},
	{Times, `\*`},
	{Divide, `/`},
	{Equals, `=`},
}

var bracketRules = []Rule{
	{OpenBracket, `\(`},
	{CloseBracket, `\)`},
	{OpenSquareBracket, `\[`},
	{CloseSquareBracket, `\]`},
	{OpenCurlyBracket, `\{`},
	{CloseCurlyBracket, `\}`},
}

var identifierRules = []Rule{
	{Identifier, `[_a-zA-Z][_a-zA-Z0-9]*`},
	// Anything no other rule can start on.
	{Text, `[^` + whitespace + `$&",+\-*/=()\[\]{}_a-zA-Z0-9]+`},
}

// skipKind marks whitespace runs dropped by the main lexer.
const skipKind Kind = "WHITESPACE"

// MainRules returns the rule list of the expression lexer.
func MainRules() []Rule {
	return concat(
		[]Rule{{skipKind, `[` + whitespace + `]+`}},
		numberRules,
		keywordRules,
		operatorRules,
		bracketRules,
		identifierRules,
	)
}

// SplittingRules returns the rule list of the splitting lexer: whitespace is
// significant and the optional keyword is recognized.
func SplittingRules() []Rule {
	return concat(
		[]Rule{{Space, `[` + whitespace + `]`}},
		numberRules,
		keywordRules,
		[]Rule{{Optional, `optional\b`}},
		operatorRules,
		bracketRules,
		identifierRules,
	)
}

func concat(groups ...[]Rule) []Rule {
	var out []Rule
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

func simpleRules(rules []Rule) []lexer.SimpleRule {
	out := make([]lexer.SimpleRule, len(rules))
	for i, r := range rules {
		out[i] = lexer.SimpleRule{Name: string(r.Kind), Pattern: r.Pattern}
	}
	return out
}
