package starlark

import (
	"fmt"

	"github.com/eescode/eescode/pkg/analyzer"
	"github.com/eescode/eescode/pkg/ast"
	"github.com/eescode/eescode/pkg/style"
	"go.starlark.net/starlark"
	"go.starlark.net/starlarkstruct"
)

// CreateBuiltins returns the functions scripts use to reach the analyzer:
//
//	parse(code)                              struct(tree, rich_text, variables, functions) or None
//	rich_text(code, format="plain", theme="default")
//	variables(code)                          list of struct(name, index, ...)
//	code_parts(code)                         list of dict(name, type, expression)
//	tokens(code, splitting=False)            list of struct(kind, text, pos)
func CreateBuiltins(a *analyzer.Analyzer) starlark.StringDict {
	return starlark.StringDict{
		"parse": starlark.NewBuiltin("parse", func(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			var code string
			if err := starlark.UnpackArgs(fn.Name(), args, kwargs, "code", &code); err != nil {
				return nil, err
			}
			line, err := a.ParseString(code)
			if err != nil {
				return nil, err
			}
			if line == nil {
				return starlark.None, nil
			}
			return starlarkstruct.FromStringDict(starlarkstruct.Default, starlark.StringDict{
				"tree":      starlark.String(ast.Pretty(line)),
				"rich_text": starlark.String(ast.RichText(line, style.Plain{})),
				"variables": variablesValue(ast.Variables(line)),
				"functions": stringsValue(ast.Functions(line)),
			}), nil
		}),

		"rich_text": starlark.NewBuiltin("rich_text", func(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			var code string
			format, themeName := "plain", "default"
			if err := starlark.UnpackArgs(fn.Name(), args, kwargs, "code", &code, "format?", &format, "theme?", &themeName); err != nil {
				return nil, err
			}
			theme, err := style.Load(themeName)
			if err != nil {
				return nil, err
			}
			styler, err := style.For(format, theme)
			if err != nil {
				return nil, err
			}
			text, err := a.RichText(code, styler)
			if err != nil {
				return nil, err
			}
			return starlark.String(text), nil
		}),

		"variables": starlark.NewBuiltin("variables", func(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			var code string
			if err := starlark.UnpackArgs(fn.Name(), args, kwargs, "code", &code); err != nil {
				return nil, err
			}
			vars, err := a.Variables(code)
			if err != nil {
				return nil, err
			}
			return variablesValue(vars), nil
		}),

		"code_parts": starlark.NewBuiltin("code_parts", func(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			var code string
			if err := starlark.UnpackArgs(fn.Name(), args, kwargs, "code", &code); err != nil {
				return nil, err
			}
			parts, err := a.GetCodeParts(code)
			if err != nil {
				return nil, err
			}
			if parts == nil {
				return starlark.None, nil
			}
			return partsValue(parts)
		}),

		"tokens": starlark.NewBuiltin("tokens", func(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			var code string
			var splitting bool
			if err := starlark.UnpackArgs(fn.Name(), args, kwargs, "code", &code, "splitting?", &splitting); err != nil {
				return nil, err
			}
			tokens, err := a.Tokens(code, splitting)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", fn.Name(), err)
			}
			return tokensValue(tokens), nil
		}),
	}
}
