package validator_test

import (
	"strings"
	"testing"

	"github.com/thomasrohde/evalml/pkg/diagnostics"
	"github.com/thomasrohde/evalml/pkg/parser"
	"github.com/thomasrohde/evalml/pkg/validator"
)

// helper parses source and validates, returning diagnostics from validation only.
// It fatals on parse errors so test cases focus on validator behavior.
func mustParseAndValidate(t *testing.T, source string) []diagnostics.Diagnostic {
	t.Helper()
	j, parseErrs := parser.Parse(source, "test.ml")
	if len(parseErrs) > 0 {
		t.Fatalf("unexpected parse error: %s", parseErrs[0].Message)
	}
	return validator.Validate(j)
}

// assertNoDiags asserts zero diagnostics were produced.
func assertNoDiags(t *testing.T, diags []diagnostics.Diagnostic) {
	t.Helper()
	if len(diags) != 0 {
		var msgs []string
		for _, d := range diags {
			msgs = append(msgs, d.Code+": "+d.Message)
		}
		t.Errorf("expected no diagnostics, got %d:\n  %s", len(diags), strings.Join(msgs, "\n  "))
	}
}

// assertDiagCount asserts the expected number of diagnostics.
func assertDiagCount(t *testing.T, diags []diagnostics.Diagnostic, expected int) {
	t.Helper()
	if len(diags) != expected {
		var msgs []string
		for _, d := range diags {
			msgs = append(msgs, d.Code+": "+d.Message)
		}
		t.Fatalf("expected %d diagnostics, got %d:\n  %s", expected, len(diags), strings.Join(msgs, "\n  "))
	}
}

func TestValidJudgments(t *testing.T) {
	tests := []string{
		"3 + 5",
		"|- 3",
		"x = 3, y = 2 |- x",
		"x = true, y = 4 |- if x then y + 1 else y - 1",
		"|- let x = 1 + 2 in x * 4",
		"x = 3 |- let x = x * 2 in x + x",
		"x = 1, y = x + 1 |- y",
		"|- let a = 1 in let b = a in let a = b in a + b",
	}
	for _, src := range tests {
		t.Run(src, func(t *testing.T) {
			assertNoDiags(t, mustParseAndValidate(t, src))
		})
	}
}

func TestUnboundInBody(t *testing.T) {
	diags := mustParseAndValidate(t, "x = 1 |- x + y")
	assertDiagCount(t, diags, 1)
	d := diags[0]
	if d.Code != diagnostics.EUnbound {
		t.Errorf("expected E_UNBOUND, got %s", d.Code)
	}
	if d.Message != "unbound variable 'y'" {
		t.Errorf("unexpected message %q", d.Message)
	}
	if d.Span == nil || d.Span.StartCol != 14 {
		t.Errorf("expected span at column 14, got %+v", d.Span)
	}
	if d.Hint != "in scope: x" {
		t.Errorf("unexpected hint %q", d.Hint)
	}
}

func TestReportsEveryUnboundReference(t *testing.T) {
	diags := mustParseAndValidate(t, "|- if a then b else c")
	assertDiagCount(t, diags, 3)
	if !strings.Contains(diags[0].Hint, "nothing is bound") {
		t.Errorf("unexpected hint %q", diags[0].Hint)
	}
}

func TestBindingSeesOnlyEarlierBindings(t *testing.T) {
	diags := mustParseAndValidate(t, "x = y, y = 1 |- x")
	assertDiagCount(t, diags, 1)
	if diags[0].Message != "unbound variable 'y'" {
		t.Errorf("unexpected message %q", diags[0].Message)
	}
}

func TestLetScope(t *testing.T) {
	// The bound expression does not see its own name.
	diags := mustParseAndValidate(t, "|- let x = x in x")
	assertDiagCount(t, diags, 1)

	// The name is not visible after the let.
	diags = mustParseAndValidate(t, "|- (let x = 1 in x) + x")
	assertDiagCount(t, diags, 1)
}

func TestHintListsDistinctNames(t *testing.T) {
	diags := mustParseAndValidate(t, "x = 1, y = 2, x = 3 |- z")
	assertDiagCount(t, diags, 1)
	if diags[0].Hint != "in scope: x, y" {
		t.Errorf("unexpected hint %q", diags[0].Hint)
	}
}
