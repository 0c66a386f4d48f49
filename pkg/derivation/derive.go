package derivation

import (
	"fmt"

	"github.com/thomasrohde/evalml/pkg/ast"
	"github.com/thomasrohde/evalml/pkg/diagnostics"
	"github.com/thomasrohde/evalml/pkg/evaluator"
)

// Language selects the judgment shape of a derivation.
type Language int

const (
	// EvalML1 judges closed expressions; no environment is shown.
	EvalML1 Language = iota + 1
	// EvalML2 judges expressions under an environment.
	EvalML2
)

func (l Language) String() string {
	switch l {
	case EvalML1:
		return "EvalML1"
	case EvalML2:
		return "EvalML2"
	}
	return fmt.Sprintf("Language(%d)", int(l))
}

// ShowsEnvironment reports whether judgments of l print an environment.
func (l Language) ShowsEnvironment() bool {
	return l == EvalML2
}

// Derivation is a complete derivation for one judgment.
type Derivation struct {
	Language Language
	Env      *evaluator.Env
	Expr     ast.Expr
	Root     Proof
}

// Value returns the value the derivation concludes.
func (d *Derivation) Value() evaluator.Value {
	return d.Root.Value()
}

// Option configures Derive.
type Option func(*solver)

// WithBudget limits the depth of the derivation tree.
func WithBudget(b evaluator.Budget) Option {
	return func(s *solver) {
		s.budget = b
	}
}

// Derive builds the derivation of expr under env for the given language.
func Derive(lang Language, env *evaluator.Env, expr ast.Expr, opts ...Option) (*Derivation, error) {
	if lang == EvalML1 {
		if !env.IsEmpty() || ast.UsesEnvironment(expr) {
			span := expr.NodeSpan()
			return nil, &evaluator.RuntimeError{
				Code:    diagnostics.ELang,
				Message: "EvalML1 has no variables; use EvalML2",
				Span:    &span,
			}
		}
	}

	s := &solver{}
	for _, opt := range opts {
		opt(s)
	}
	root, err := s.solve(env, expr, 0)
	if err != nil {
		return nil, err
	}
	tracer().Debugf("%s derivation of %s: %d rules", lang, root.Rule(), Size(root))
	return &Derivation{Language: lang, Env: env, Expr: expr, Root: root}, nil
}
