// Package tea is the public entry point for embedding the Tea
// interpreter: a small New()/Engine wrapper over the internal
// lexer/parser/runtime/evaluator/stdlib packages.
package tea

import (
	"io"
	"os"

	"github.com/lnsp/tea/internal/ast"
	"github.com/lnsp/tea/internal/errors"
	"github.com/lnsp/tea/internal/evaluator"
	"github.com/lnsp/tea/internal/parser"
	"github.com/lnsp/tea/internal/runtime"
	"github.com/lnsp/tea/internal/stdlib"
)

// Engine holds one interpretation session: a namespace tree seeded
// with the standard library, and the Context cursor threaded through
// every Eval call.
type Engine struct {
	ctx *runtime.Context
}

// Option configures a new Engine.
type Option func(*Engine)

// WithOutput redirects print() and other stdlib output away from
// os.Stdout, the default.
func WithOutput(w io.Writer) Option {
	return func(e *Engine) { e.ctx.Output = w }
}

// New creates an Engine with a fresh root namespace loaded with the
// standard library.
func New(opts ...Option) *Engine {
	root := runtime.NewRootNamespace()
	ctx := runtime.NewContext(root, os.Stdout)
	e := &Engine{ctx: ctx}
	for _, opt := range opts {
		opt(e)
	}
	stdlib.Install(e.ctx.Current)
	return e
}

// Parse lexes and parses source into an AST without evaluating it,
// useful for tooling (`tea parse`, AST dumps).
func (e *Engine) Parse(source string) (*ast.Sequence, error) {
	return parser.Parse(source)
}

// Run parses and evaluates source against the engine's namespace,
// returning the last expression's value the way a REPL reports one.
func (e *Engine) Run(source string) (*runtime.Value, error) {
	program, err := parser.Parse(source)
	if err != nil {
		return nil, err
	}
	return evaluator.Eval(e.ctx, program)
}

// Context exposes the underlying runtime Context, for callers that
// need to inspect or extend the namespace directly (e.g. registering
// additional native functions before running a script).
func (e *Engine) Context() *runtime.Context {
	return e.ctx
}

// Display renders a Value the way the REPL/CLI prints results,
// falling back to a type tag when the value has no STRING
// conversion.
func Display(v *runtime.Value) string {
	if v == nil {
		return ""
	}
	s, err := runtime.String.Cast(v)
	if err != nil {
		return "<" + v.Type.Name + ">"
	}
	return s.Payload.(string)
}

// FormatError renders err with source context the way the CLI does
// for a top-level parse or runtime failure.
func FormatError(err error, source string) string {
	return errors.FormatWithSource(err, errors.Line(err), source)
}
