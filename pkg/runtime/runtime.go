// Package runtime provides the top-level orchestrator: parse, validate,
// build the environment, derive and render.
package runtime

import (
	"errors"
	"fmt"
	"strings"

	"github.com/npillmayer/schuko/tracing"
	"github.com/thomasrohde/evalml/pkg/ast"
	"github.com/thomasrohde/evalml/pkg/config"
	"github.com/thomasrohde/evalml/pkg/derivation"
	"github.com/thomasrohde/evalml/pkg/diagnostics"
	"github.com/thomasrohde/evalml/pkg/evaluator"
	"github.com/thomasrohde/evalml/pkg/formatter"
	"github.com/thomasrohde/evalml/pkg/parser"
	"github.com/thomasrohde/evalml/pkg/validator"
)

// tracer traces with key 'evalml.runtime'.
func tracer() tracing.Trace {
	return tracing.Select("evalml.runtime")
}

// Result holds the outcome of a derivation.
type Result struct {
	Derivation *derivation.Derivation
	Output     string
}

// Runtime wires together all components for deriving judgments.
type Runtime struct {
	cfg config.Config
}

// Option is a functional option for configuring the Runtime.
type Option func(*Runtime)

// WithConfig replaces all settings.
func WithConfig(cfg *config.Config) Option {
	return func(rt *Runtime) {
		if cfg != nil {
			rt.cfg = *cfg
		}
	}
}

// WithFormat sets the output format (text, tree or json).
func WithFormat(format string) Option {
	return func(rt *Runtime) {
		rt.cfg.Format = format
	}
}

// WithIndent sets the number of spaces per derivation level.
func WithIndent(n int) Option {
	return func(rt *Runtime) {
		rt.cfg.Indent = n
	}
}

// WithTurnstile sets the turnstile spelling.
func WithTurnstile(t string) Option {
	return func(rt *Runtime) {
		rt.cfg.Turnstile = t
	}
}

// WithParens sets the parenthesisation style (minimal or full).
func WithParens(style string) Option {
	return func(rt *Runtime) {
		rt.cfg.Parens = style
	}
}

// WithLanguage forces a language variant (auto, ml1 or ml2).
func WithLanguage(lang string) Option {
	return func(rt *Runtime) {
		rt.cfg.Language = lang
	}
}

// WithMaxDepth sets the derivation depth budget; 0 means unlimited.
func WithMaxDepth(n int) Option {
	return func(rt *Runtime) {
		rt.cfg.MaxDepth = n
	}
}

// New creates a new Runtime with the given options applied over the
// built-in defaults.
func New(opts ...Option) *Runtime {
	rt := &Runtime{cfg: *config.Default()}
	for _, opt := range opts {
		opt(rt)
	}
	return rt
}

// Config returns the effective settings.
func (rt *Runtime) Config() config.Config {
	return rt.cfg
}

func (rt *Runtime) budget() evaluator.Budget {
	return evaluator.Budget{MaxDepth: rt.cfg.MaxDepth}
}

func (rt *Runtime) formatOptions() formatter.Options {
	return formatter.Options{
		Indent:    rt.cfg.Indent,
		Turnstile: rt.cfg.Turnstile,
		Parens:    formatter.Style(rt.cfg.Parens),
	}
}

// load parses and validates source.
func (rt *Runtime) load(source, filename string) (*ast.Judgment, error) {
	if err := rt.cfg.Validate(); err != nil {
		return nil, err
	}
	j, diags := parser.Parse(source, filename)
	if len(diags) > 0 {
		tracer().Errorf("parse %s: %d diagnostics", filename, len(diags))
		return nil, &DiagnosticError{Diagnostics: diags}
	}
	vDiags := validator.Validate(j)
	if len(vDiags) > 0 {
		tracer().Errorf("validate %s: %d diagnostics", filename, len(vDiags))
		return nil, &DiagnosticError{Diagnostics: vDiags}
	}
	return j, nil
}

// Language picks the language variant for a judgment: a forced setting
// wins, otherwise EvalML2 when the input has a turnstile or uses variables.
func (rt *Runtime) Language(j *ast.Judgment) derivation.Language {
	switch rt.cfg.Language {
	case "ml1":
		return derivation.EvalML1
	case "ml2":
		return derivation.EvalML2
	}
	if j.Turnstile || ast.UsesEnvironment(j.Expr) {
		return derivation.EvalML2
	}
	return derivation.EvalML1
}

// Derive parses, validates and derives a judgment, rendering it in the
// configured format.
func (rt *Runtime) Derive(source, filename string) (*Result, error) {
	j, err := rt.load(source, filename)
	if err != nil {
		return nil, err
	}

	env, err := evaluator.EvaluateBindings(j.Bindings, rt.budget())
	if err != nil {
		tracer().Errorf("environment %s: %v", filename, err)
		return nil, err
	}

	d, err := derivation.Derive(rt.Language(j), env, j.Expr, derivation.WithBudget(rt.budget()))
	if err != nil {
		tracer().Errorf("derive %s: %v", filename, err)
		return nil, err
	}

	out, err := rt.Render(d)
	if err != nil {
		return nil, err
	}
	return &Result{Derivation: d, Output: out}, nil
}

// Render renders a derivation in the configured format.
func (rt *Runtime) Render(d *derivation.Derivation) (string, error) {
	opts := rt.formatOptions()
	switch rt.cfg.Format {
	case "tree":
		return formatter.Tree(d, opts), nil
	case "json":
		b, err := formatter.JSON(d, opts, true)
		if err != nil {
			return "", err
		}
		return string(b) + "\n", nil
	}
	return formatter.Format(d, opts), nil
}

// Evaluate parses, validates and evaluates a judgment without building a
// derivation.
func (rt *Runtime) Evaluate(source, filename string) (evaluator.Value, error) {
	j, err := rt.load(source, filename)
	if err != nil {
		return nil, err
	}
	env, err := evaluator.EvaluateBindings(j.Bindings, rt.budget())
	if err != nil {
		return nil, err
	}
	return evaluator.EvaluateWithin(env, j.Expr, rt.budget())
}

// Check parses and validates a judgment without deriving it.
func (rt *Runtime) Check(source, filename string) []diagnostics.Diagnostic {
	j, diags := parser.Parse(source, filename)
	if len(diags) > 0 {
		return diags
	}
	return validator.Validate(j)
}

// Format parses a judgment and prints it back in canonical form.
func (rt *Runtime) Format(source, filename string) (string, error) {
	j, diags := parser.Parse(source, filename)
	if len(diags) > 0 {
		return "", &DiagnosticError{Diagnostics: diags}
	}
	return formatter.FormatJudgment(j, formatter.Style(rt.cfg.Parens)) + "\n", nil
}

// DiagnosticError wraps diagnostics as an error.
type DiagnosticError struct {
	Diagnostics []diagnostics.Diagnostic
}

func (e *DiagnosticError) Error() string {
	msgs := make([]string, len(e.Diagnostics))
	for i, d := range e.Diagnostics {
		msgs[i] = fmt.Sprintf("%s: %s", d.Code, d.Message)
	}
	return strings.Join(msgs, "; ")
}

// Diagnostics converts any error returned by the runtime into diagnostics.
func Diagnostics(err error) []diagnostics.Diagnostic {
	var de *DiagnosticError
	if errors.As(err, &de) {
		return de.Diagnostics
	}
	var re *evaluator.RuntimeError
	if errors.As(err, &re) {
		return []diagnostics.Diagnostic{re.Diagnostic()}
	}
	var ce *config.Error
	if errors.As(err, &ce) {
		return []diagnostics.Diagnostic{ce.Diag}
	}
	return []diagnostics.Diagnostic{diagnostics.MakeDiag(diagnostics.EIO, err.Error(), nil, "")}
}
