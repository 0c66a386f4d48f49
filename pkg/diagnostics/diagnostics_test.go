package diagnostics_test

import (
	"strings"
	"testing"

	"github.com/thomasrohde/evalml/pkg/ast"
	"github.com/thomasrohde/evalml/pkg/diagnostics"
)

func TestMakeDiag(t *testing.T) {
	span := &ast.Span{File: "test.ml", StartLine: 1, StartCol: 1, EndLine: 1, EndCol: 5}
	d := diagnostics.MakeDiag(diagnostics.EParse, "unexpected token", span, "check syntax")

	if d.Code != diagnostics.EParse {
		t.Errorf("got Code = %q, want %q", d.Code, diagnostics.EParse)
	}
	if d.Message != "unexpected token" {
		t.Errorf("got Message = %q, want %q", d.Message, "unexpected token")
	}
}

func TestFormatDiagnosticPretty(t *testing.T) {
	span := &ast.Span{File: "test.ml", StartLine: 3, StartCol: 5, EndLine: 3, EndCol: 10}
	d := diagnostics.MakeDiag(diagnostics.EUnbound, "unbound variable 'x'", span, "bind it before '|-'")

	out := diagnostics.FormatDiagnostic(d, true)
	if !strings.Contains(out, "error[E_UNBOUND]") {
		t.Errorf("expected error code in output, got: %s", out)
	}
	if !strings.Contains(out, "test.ml:3:5") {
		t.Errorf("expected location in output, got: %s", out)
	}
	if !strings.Contains(out, "hint:") {
		t.Errorf("expected hint in output, got: %s", out)
	}
}

func TestFormatDiagnosticNoSpan(t *testing.T) {
	d := diagnostics.MakeDiag(diagnostics.EType, "bad operand", nil, "")
	out := diagnostics.FormatDiagnostic(d, true)
	if !strings.Contains(out, "<unknown>") {
		t.Errorf("expected <unknown> location, got: %s", out)
	}
	if strings.Contains(out, "hint:") {
		t.Errorf("unexpected hint line in: %s", out)
	}
}

func TestFormatDiagnosticJSON(t *testing.T) {
	d := diagnostics.MakeDiag(diagnostics.ELex, "bad token", nil, "")
	out := diagnostics.FormatDiagnostic(d, false)
	if !strings.Contains(out, `"code":"E_LEX"`) {
		t.Errorf("expected JSON code in output, got: %s", out)
	}
}

func TestFormatDiagnosticsJoin(t *testing.T) {
	diags := []diagnostics.Diagnostic{
		diagnostics.MakeDiag(diagnostics.EUnbound, "unbound variable 'x'", nil, ""),
		diagnostics.MakeDiag(diagnostics.EUnbound, "unbound variable 'y'", nil, ""),
	}
	pretty := diagnostics.FormatDiagnostics(diags, true)
	if strings.Count(pretty, "error[E_UNBOUND]") != 2 {
		t.Errorf("expected two entries, got: %s", pretty)
	}
	raw := diagnostics.FormatDiagnostics(diags, false)
	if !strings.HasPrefix(raw, "[") {
		t.Errorf("expected JSON array, got: %s", raw)
	}
}
