// Package validator implements static scope checking of judgments.
package validator

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
	"github.com/thomasrohde/evalml/pkg/ast"
	"github.com/thomasrohde/evalml/pkg/diagnostics"
)

type scope struct {
	name   string
	parent *scope
}

func (s *scope) has(name string) bool {
	for cur := s; cur != nil; cur = cur.parent {
		if cur.name == name {
			return true
		}
	}
	return false
}

func (s *scope) add(name string) *scope {
	return &scope{name: name, parent: s}
}

// names returns the distinct names in scope, oldest first.
func (s *scope) names() []string {
	var out []string
	for cur := s; cur != nil; cur = cur.parent {
		out = append(out, cur.name)
	}
	return lo.Uniq(lo.Reverse(out))
}

type validator struct {
	diags []diagnostics.Diagnostic
}

// Validate reports every variable reference that no binding or enclosing
// let can resolve. Binding values only see the bindings before them.
func Validate(j *ast.Judgment) []diagnostics.Diagnostic {
	v := &validator{}
	var sc *scope
	for _, b := range j.Bindings {
		v.validateExpr(b.Value, sc)
		sc = sc.add(b.Name)
	}
	v.validateExpr(j.Expr, sc)
	return v.diags
}

func (v *validator) addDiag(code, msg string, span *ast.Span, hint string) {
	v.diags = append(v.diags, diagnostics.MakeDiag(code, msg, span, hint))
}

func (v *validator) validateExpr(expr ast.Expr, sc *scope) {
	switch e := expr.(type) {
	case *ast.IntLiteral, *ast.BoolLiteral:
		// no names

	case *ast.VarRef:
		if !sc.has(e.Name) {
			span := e.Span
			v.addDiag(diagnostics.EUnbound, fmt.Sprintf("unbound variable '%s'", e.Name), &span, scopeHint(sc))
		}

	case *ast.IfExpr:
		v.validateExpr(e.Cond, sc)
		v.validateExpr(e.Then, sc)
		v.validateExpr(e.Else, sc)

	case *ast.BinaryExpr:
		v.validateExpr(e.Left, sc)
		v.validateExpr(e.Right, sc)

	case *ast.LetExpr:
		v.validateExpr(e.Bound, sc)
		v.validateExpr(e.Body, sc.add(e.Name))
	}
}

func scopeHint(sc *scope) string {
	names := sc.names()
	if len(names) == 0 {
		return "nothing is bound here; add a binding before '|-'"
	}
	return "in scope: " + strings.Join(names, ", ")
}
