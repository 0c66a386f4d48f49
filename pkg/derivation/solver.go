package derivation

import (
	"fmt"

	"github.com/npillmayer/schuko/tracing"
	"github.com/thomasrohde/evalml/pkg/ast"
	"github.com/thomasrohde/evalml/pkg/diagnostics"
	"github.com/thomasrohde/evalml/pkg/evaluator"
)

// tracer traces with key 'evalml.derivation'.
func tracer() tracing.Trace {
	return tracing.Select("evalml.derivation")
}

type solver struct {
	budget evaluator.Budget
}

// Solve builds the derivation of expr under env, rooted at depth.
func Solve(env *evaluator.Env, expr ast.Expr, depth int) (Proof, error) {
	s := &solver{}
	return s.solve(env, expr, depth)
}

func (s *solver) solve(env *evaluator.Env, expr ast.Expr, depth int) (Proof, error) {
	span := expr.NodeSpan()
	if err := s.budget.Check(depth, &span); err != nil {
		return nil, err
	}
	at := Eval{Env: env, Expr: expr, Level: depth}

	switch e := expr.(type) {
	case *ast.IntLiteral:
		return &IntProof{Eval: at, Result: evaluator.IntValue{Value: e.Value}}, nil

	case *ast.BoolLiteral:
		return &BoolProof{Eval: at, Result: evaluator.BoolValue{Value: e.Value}}, nil

	case *ast.IfExpr:
		return s.solveIf(at, e)

	case *ast.BinaryExpr:
		return s.solveBinary(at, e)

	case *ast.VarRef:
		return s.solveVar(at, e)

	case *ast.LetExpr:
		return s.solveLet(at, e)
	}

	return nil, &evaluator.RuntimeError{
		Code:    diagnostics.EType,
		Message: fmt.Sprintf("unsupported expression %s", expr.Kind()),
		Span:    &span,
	}
}

func (s *solver) solveIf(at Eval, e *ast.IfExpr) (Proof, error) {
	cond, err := s.solve(at.Env, e.Cond, at.Level+1)
	if err != nil {
		return nil, err
	}
	taken, err := evaluator.Guard(cond.Value(), e.Cond.NodeSpan())
	if err != nil {
		return nil, err
	}
	branch := e.Else
	if taken {
		branch = e.Then
	}
	proved, err := s.solve(at.Env, branch, at.Level+1)
	if err != nil {
		return nil, err
	}
	p := &IfProof{Eval: at, Cond: cond, Branch: proved, Taken: taken}
	tracer().Debugf("%s at depth %d", p.Rule(), at.Level)
	return p, nil
}

func (s *solver) solveBinary(at Eval, e *ast.BinaryExpr) (Proof, error) {
	left, err := s.solve(at.Env, e.Left, at.Level+1)
	if err != nil {
		return nil, err
	}
	right, err := s.solve(at.Env, e.Right, at.Level+1)
	if err != nil {
		return nil, err
	}
	span := e.Span
	result, err := evaluator.ApplyBinary(e.Op, left.Value(), right.Value(), &span)
	if err != nil {
		return nil, err
	}
	prim := &PrimProof{
		Op:     e.Op,
		Left:   left.Value(),
		Right:  right.Value(),
		Result: result,
		Level:  at.Level + 1,
	}
	p := &BinOpProof{Eval: at, Left: left, Right: right, Prim: prim}
	tracer().Debugf("%s at depth %d", p.Rule(), at.Level)
	return p, nil
}

func (s *solver) solveVar(at Eval, e *ast.VarRef) (Proof, error) {
	front, err := at.Env.MostRecent()
	if err != nil {
		// Every binding was skipped.
		return nil, evaluator.Unbound(e.Name, &e.Span)
	}
	if front.Name == e.Name {
		return &VarProof{Eval: at, Result: front.Value}, nil
	}
	inner, err := s.solve(at.Env.WithoutMostRecent(), e, at.Level+1)
	if err != nil {
		return nil, err
	}
	tracer().Debugf("%s skips %q at depth %d", RuleVar2, front.Name, at.Level)
	return &VarSkipProof{Eval: at, Inner: inner}, nil
}

func (s *solver) solveLet(at Eval, e *ast.LetExpr) (Proof, error) {
	bound, err := s.solve(at.Env, e.Bound, at.Level+1)
	if err != nil {
		return nil, err
	}
	body, err := s.solve(at.Env.Bind(e.Name, bound.Value()), e.Body, at.Level+1)
	if err != nil {
		return nil, err
	}
	tracer().Debugf("%s binds %q at depth %d", RuleLet, e.Name, at.Level)
	return &LetProof{Eval: at, Bound: bound, Body: body}, nil
}
