package evaluator_test

import (
	"errors"
	"testing"

	"github.com/thomasrohde/evalml/pkg/ast"
	"github.com/thomasrohde/evalml/pkg/diagnostics"
	"github.com/thomasrohde/evalml/pkg/evaluator"
	"github.com/thomasrohde/evalml/pkg/parser"
)

// --- helpers ---

// run parses a judgment, builds its environment and evaluates its
// expression, failing the test on parse errors.
func run(t *testing.T, src string) (evaluator.Value, error) {
	t.Helper()
	return runWithin(t, src, evaluator.Budget{})
}

func runWithin(t *testing.T, src string, budget evaluator.Budget) (evaluator.Value, error) {
	t.Helper()
	j, diags := parser.Parse(src, "test.ml")
	if len(diags) > 0 {
		t.Fatalf("parse errors: %s", diagnostics.FormatDiagnostics(diags, true))
	}
	env, err := evaluator.EvaluateBindings(j.Bindings, budget)
	if err != nil {
		return nil, err
	}
	return evaluator.EvaluateWithin(env, j.Expr, budget)
}

// mustRun is like run but also fails on runtime errors.
func mustRun(t *testing.T, src string) evaluator.Value {
	t.Helper()
	val, err := run(t, src)
	if err != nil {
		t.Fatalf("unexpected runtime error: %v", err)
	}
	return val
}

// expectRuntimeError asserts err is a *RuntimeError with the given code.
func expectRuntimeError(t *testing.T, err error, code string) *evaluator.RuntimeError {
	t.Helper()
	if err == nil {
		t.Fatalf("expected runtime error %s, got nil", code)
	}
	var re *evaluator.RuntimeError
	if !errors.As(err, &re) {
		t.Fatalf("expected *evaluator.RuntimeError, got %T: %v", err, err)
	}
	if re.Code != code {
		t.Fatalf("expected code %s, got %s (%s)", code, re.Code, re.Message)
	}
	return re
}

// ---- Test: arithmetic and comparison ----

func TestEvaluate(t *testing.T) {
	tests := []struct {
		src  string
		want evaluator.Value
	}{
		{"3 + 5", evaluator.NewInt(8)},
		{"8 - 2 - 3", evaluator.NewInt(3)},
		{"(4 + 5) * (1 - 10)", evaluator.NewInt(-81)},
		{"3 + 2 * -4", evaluator.NewInt(-5)},
		{"4 < 5", evaluator.NewBool(true)},
		{"5 < 5", evaluator.NewBool(false)},
		{"true", evaluator.NewBool(true)},
		{"if 4 < 5 then 2 + 3 else 8 * 8", evaluator.NewInt(5)},
		{"3 + if -23 < -2 * 8 then 8 else 2 + 4", evaluator.NewInt(11)},
		{"3 + (if -23 < -2 * 8 then 8 else 2) + 4", evaluator.NewInt(15)},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			got := mustRun(t, tt.src)
			if !evaluator.Equal(got, tt.want) {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

// ---- Test: environments ----

func TestEvaluateVariables(t *testing.T) {
	tests := []struct {
		src  string
		want evaluator.Value
	}{
		{"x = 3, y = 2 |- x", evaluator.NewInt(3)},
		{"x = 3, y = 2 |- y", evaluator.NewInt(2)},
		{"x = true, y = 4 |- if x then y + 1 else y - 1", evaluator.NewInt(5)},
		{"x = 1, x = 2 |- x", evaluator.NewInt(2)},
		{"x = 2, y = x * 10 |- y", evaluator.NewInt(20)},
		{"|- let x = 1 + 2 in x * 4", evaluator.NewInt(12)},
		{"x = 3 |- let x = x * 2 in x + x", evaluator.NewInt(12)},
		{"|- let x = 3 in let y = x in let x = 10 in x + y", evaluator.NewInt(13)},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			got := mustRun(t, tt.src)
			if !evaluator.Equal(got, tt.want) {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestLetDoesNotLeak(t *testing.T) {
	_, err := run(t, "|- (let x = 1 in x) + x")
	re := expectRuntimeError(t, err, diagnostics.EUnbound)
	if re.Span == nil || re.Span.StartCol != 23 {
		t.Errorf("expected span at the second x, got %+v", re.Span)
	}
}

// ---- Test: errors ----

func TestUnboundVariable(t *testing.T) {
	_, err := run(t, "y = 1 |- x")
	re := expectRuntimeError(t, err, diagnostics.EUnbound)
	if re.Message != "unbound variable 'x'" {
		t.Errorf("unexpected message %q", re.Message)
	}
	if d := re.Diagnostic(); d.Hint == "" {
		t.Error("expected hint on unbound-variable diagnostic")
	}
}

func TestUnboundInBindingPrefix(t *testing.T) {
	_, err := run(t, "x = y, y = 1 |- x")
	expectRuntimeError(t, err, diagnostics.EUnbound)
}

func TestTypeMismatch(t *testing.T) {
	tests := []string{
		"1 + true",
		"false * 2",
		"true < false",
		"if 1 then 2 else 3",
		"x = true |- x - 1",
	}
	for _, src := range tests {
		t.Run(src, func(t *testing.T) {
			_, err := run(t, src)
			expectRuntimeError(t, err, diagnostics.EType)
		})
	}
}

func TestIfEvaluatesOnlyTakenBranch(t *testing.T) {
	// The untaken branch would fail with a type error.
	got := mustRun(t, "if true then 1 else 1 + false")
	if !evaluator.Equal(got, evaluator.NewInt(1)) {
		t.Errorf("got %s, want 1", got)
	}
}

func TestDepthBudget(t *testing.T) {
	src := "1 + (2 + (3 + (4 + 5)))"
	if _, err := runWithin(t, src, evaluator.Budget{MaxDepth: 4}); err != nil {
		t.Fatalf("unexpected error within budget: %v", err)
	}
	_, err := runWithin(t, src, evaluator.Budget{MaxDepth: 3})
	expectRuntimeError(t, err, diagnostics.EBudget)
}

// ---- Test: ApplyBinary ----

func TestApplyBinary(t *testing.T) {
	tests := []struct {
		op   ast.BinaryOp
		l, r int64
		want evaluator.Value
	}{
		{ast.OpAdd, 3, 5, evaluator.NewInt(8)},
		{ast.OpSub, 3, 5, evaluator.NewInt(-2)},
		{ast.OpMul, -3, 5, evaluator.NewInt(-15)},
		{ast.OpLt, 3, 5, evaluator.NewBool(true)},
		{ast.OpLt, 5, 3, evaluator.NewBool(false)},
	}
	for _, tt := range tests {
		got, err := evaluator.ApplyBinary(tt.op, evaluator.NewInt(tt.l), evaluator.NewInt(tt.r), nil)
		if err != nil {
			t.Fatalf("%d %s %d: unexpected error %v", tt.l, tt.op, tt.r, err)
		}
		if !evaluator.Equal(got, tt.want) {
			t.Errorf("%d %s %d: got %s, want %s", tt.l, tt.op, tt.r, got, tt.want)
		}
	}
}

func TestApplyBinaryTypeMessage(t *testing.T) {
	_, err := evaluator.ApplyBinary(ast.OpAdd, evaluator.NewInt(1), evaluator.NewBool(true), nil)
	re := expectRuntimeError(t, err, diagnostics.EType)
	want := "Operator '+' requires two integers, got int and bool."
	if re.Message != want {
		t.Errorf("got %q, want %q", re.Message, want)
	}
}
