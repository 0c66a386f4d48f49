package evaluator

import (
	"fmt"

	"github.com/thomasrohde/evalml/pkg/ast"
	"github.com/thomasrohde/evalml/pkg/diagnostics"
)

// RuntimeError represents an error raised while evaluating or deriving.
type RuntimeError struct {
	Code    string
	Message string
	Span    *ast.Span
}

func (e *RuntimeError) Error() string {
	return e.Message
}

// Diagnostic converts the error into a diagnostic.
func (e *RuntimeError) Diagnostic() diagnostics.Diagnostic {
	return diagnostics.MakeDiag(e.Code, e.Message, e.Span, hintFor(e.Code))
}

func hintFor(code string) string {
	switch code {
	case diagnostics.EUnbound:
		return "bind the variable before '|-' or with 'let'"
	case diagnostics.EBudget:
		return "raise maxDepth or simplify the expression"
	}
	return ""
}

// Unbound returns the E_UNBOUND error for name.
func Unbound(name string, span *ast.Span) *RuntimeError {
	return &RuntimeError{
		Code:    diagnostics.EUnbound,
		Message: fmt.Sprintf("unbound variable '%s'", name),
		Span:    span,
	}
}

type evaluator struct {
	budget Budget
}

// Evaluate computes the value of expr under env.
func Evaluate(env *Env, expr ast.Expr) (Value, error) {
	return EvaluateWithin(env, expr, Budget{})
}

// EvaluateWithin is Evaluate with a nesting-depth budget.
func EvaluateWithin(env *Env, expr ast.Expr, budget Budget) (Value, error) {
	ev := &evaluator{budget: budget}
	return ev.evalExpr(expr, env, 0)
}

// EvaluateBindings builds the environment described by a judgment prefix.
// Each value is evaluated under the bindings before it.
func EvaluateBindings(bindings []*ast.Binding, budget Budget) (*Env, error) {
	ev := &evaluator{budget: budget}
	env := Empty()
	for _, b := range bindings {
		val, err := ev.evalExpr(b.Value, env, 0)
		if err != nil {
			return nil, err
		}
		env = env.Bind(b.Name, val)
	}
	return env, nil
}

func (ev *evaluator) evalExpr(expr ast.Expr, env *Env, depth int) (Value, error) {
	span := expr.NodeSpan()
	if err := ev.budget.Check(depth, &span); err != nil {
		return nil, err
	}

	switch e := expr.(type) {
	case *ast.IntLiteral:
		return NewInt(e.Value), nil

	case *ast.BoolLiteral:
		return NewBool(e.Value), nil

	case *ast.VarRef:
		val, ok := env.Lookup(e.Name)
		if !ok {
			return nil, Unbound(e.Name, &span)
		}
		return val, nil

	case *ast.IfExpr:
		return ev.evalIf(e, env, depth)

	case *ast.BinaryExpr:
		left, err := ev.evalExpr(e.Left, env, depth+1)
		if err != nil {
			return nil, err
		}
		right, err := ev.evalExpr(e.Right, env, depth+1)
		if err != nil {
			return nil, err
		}
		return ApplyBinary(e.Op, left, right, &span)

	case *ast.LetExpr:
		bound, err := ev.evalExpr(e.Bound, env, depth+1)
		if err != nil {
			return nil, err
		}
		return ev.evalExpr(e.Body, env.Bind(e.Name, bound), depth+1)
	}

	return nil, &RuntimeError{
		Code:    diagnostics.EType,
		Message: fmt.Sprintf("unsupported expression %s", expr.Kind()),
		Span:    &span,
	}
}

func (ev *evaluator) evalIf(e *ast.IfExpr, env *Env, depth int) (Value, error) {
	cond, err := ev.evalExpr(e.Cond, env, depth+1)
	if err != nil {
		return nil, err
	}
	taken, err := Guard(cond, e.Cond.NodeSpan())
	if err != nil {
		return nil, err
	}
	if taken {
		return ev.evalExpr(e.Then, env, depth+1)
	}
	return ev.evalExpr(e.Else, env, depth+1)
}

// Guard interprets the value of an if-condition.
func Guard(cond Value, span ast.Span) (bool, error) {
	b, ok := cond.(BoolValue)
	if !ok {
		return false, &RuntimeError{
			Code:    diagnostics.EType,
			Message: fmt.Sprintf("condition must be a bool, got %s", TypeName(cond)),
			Span:    &span,
		}
	}
	return b.Value, nil
}

// ApplyBinary applies a primitive operator to two evaluated operands.
// Arithmetic wraps on int64 overflow.
func ApplyBinary(op ast.BinaryOp, left, right Value, span *ast.Span) (Value, error) {
	l, lOk := left.(IntValue)
	r, rOk := right.(IntValue)
	if !lOk || !rOk {
		return nil, &RuntimeError{
			Code:    diagnostics.EType,
			Message: fmt.Sprintf("Operator '%s' requires two integers, got %s and %s.", string(op), TypeName(left), TypeName(right)),
			Span:    span,
		}
	}

	switch op {
	case ast.OpAdd:
		return NewInt(l.Value + r.Value), nil
	case ast.OpSub:
		return NewInt(l.Value - r.Value), nil
	case ast.OpMul:
		return NewInt(l.Value * r.Value), nil
	case ast.OpLt:
		return NewBool(l.Value < r.Value), nil
	}

	return nil, &RuntimeError{
		Code:    diagnostics.EType,
		Message: fmt.Sprintf("unknown operator '%s'", string(op)),
		Span:    span,
	}
}
