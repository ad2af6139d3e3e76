// Package starlark exposes the analyzer to Starlark scripts, so batches of
// EES snippets can be inspected and checked without writing Go.
package starlark

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/eescode/eescode/pkg/analyzer"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// fileOptions lets batch scripts loop over snippets at top level.
var fileOptions = &syntax.FileOptions{
	TopLevelControl: true,
	GlobalReassign:  true,
}

// Evaluator runs Starlark code with the EES builtins predeclared.
type Evaluator struct {
	thread   *starlark.Thread
	builtins starlark.StringDict
	globals  starlark.StringDict
}

// NewEvaluator creates an evaluator backed by a. Output of print goes to out,
// or to stdout when out is nil.
func NewEvaluator(a *analyzer.Analyzer, out io.Writer) *Evaluator {
	if out == nil {
		out = os.Stdout
	}
	thread := &starlark.Thread{
		Name: "eescode",
		Print: func(_ *starlark.Thread, msg string) {
			fmt.Fprintln(out, msg)
		},
	}
	return &Evaluator{
		thread:   thread,
		builtins: CreateBuiltins(a),
		globals:  make(starlark.StringDict),
	}
}

// SetGlobal sets a global from a Go value.
func (e *Evaluator) SetGlobal(name string, value any) error {
	v, err := ToStarlark(value)
	if err != nil {
		return fmt.Errorf("global %q: %w", name, err)
	}
	e.globals[name] = v
	return nil
}

// GetGlobal returns a global converted to a Go value.
func (e *Evaluator) GetGlobal(name string) (any, bool) {
	if val, ok := e.globals[name]; ok {
		return FromStarlark(val), true
	}
	return nil, false
}

func (e *Evaluator) predeclared() starlark.StringDict {
	predeclared := make(starlark.StringDict, len(e.builtins)+len(e.globals))
	for k, v := range e.builtins {
		predeclared[k] = v
	}
	for k, v := range e.globals {
		predeclared[k] = v
	}
	return predeclared
}

// Eval evaluates a single expression.
func (e *Evaluator) Eval(expr string) (any, error) {
	val, err := starlark.EvalOptions(fileOptions, e.thread, "<eval>", expr, e.predeclared())
	if err != nil {
		return nil, fmt.Errorf("starlark evaluation error: %w", err)
	}
	return FromStarlark(val), nil
}

// ExecFile executes a script. Top-level for and if statements are allowed
// and globals may be reassigned. src follows starlark.ExecFile: nil reads
// filename, otherwise a string, []byte or io.Reader. New globals are kept for
// later calls.
func (e *Evaluator) ExecFile(filename string, src any) (starlark.StringDict, error) {
	slog.Debug("executing script", "file", filename)
	globals, err := starlark.ExecFileOptions(fileOptions, e.thread, filename, src, e.predeclared())
	if err != nil {
		var evalErr *starlark.EvalError
		if errors.As(err, &evalErr) {
			return nil, fmt.Errorf("starlark execution error: %s", evalErr.Backtrace())
		}
		return nil, fmt.Errorf("starlark execution error: %w", err)
	}
	for k, v := range globals {
		e.globals[k] = v
	}
	return globals, nil
}

// ExecString executes a script held in a string.
func (e *Evaluator) ExecString(script string) (starlark.StringDict, error) {
	return e.ExecFile("<script>", script)
}
