// Package formatter renders expressions, judgments and derivation trees.
package formatter

import (
	"strconv"
	"strings"

	"github.com/samber/lo"
	"github.com/thomasrohde/evalml/pkg/ast"
)

// Style selects how sub-expressions are parenthesised.
type Style string

const (
	// Minimal emits only the parentheses needed to re-parse the same tree.
	Minimal Style = "minimal"
	// Full parenthesises every compound sub-expression.
	Full Style = "full"
)

// Precedence table for binary operators (higher = tighter binding)
var precedence = map[ast.BinaryOp]int{
	ast.OpLt:  1,
	ast.OpAdd: 2, ast.OpSub: 2,
	ast.OpMul: 3,
}

func needsParens(child ast.Expr, parentOp ast.BinaryOp, isRight bool) bool {
	switch c := child.(type) {
	case *ast.IfExpr, *ast.LetExpr:
		// Would swallow the rest of the parent expression.
		return true
	case *ast.BinaryExpr:
		childPrec := precedence[c.Op]
		parentPrec := precedence[parentOp]
		if childPrec < parentPrec {
			return true
		}
		if childPrec == parentPrec && (isRight || parentOp == ast.OpLt) {
			return true
		}
	}
	return false
}

func isCompound(e ast.Expr) bool {
	switch e.(type) {
	case *ast.BinaryExpr, *ast.IfExpr, *ast.LetExpr:
		return true
	}
	return false
}

// FormatExpr renders an expression as source text.
func FormatExpr(expr ast.Expr, style Style) string {
	p := exprPrinter{style: style}
	return p.expr(expr)
}

// FormatJudgment renders a parsed judgment as source text.
func FormatJudgment(j *ast.Judgment, style Style) string {
	body := FormatExpr(j.Expr, style)
	if !j.Turnstile {
		return body
	}
	if len(j.Bindings) == 0 {
		return "|- " + body
	}
	env := strings.Join(lo.Map(j.Bindings, func(b *ast.Binding, _ int) string {
		return b.Name + " = " + FormatExpr(b.Value, style)
	}), ", ")
	return env + " |- " + body
}

type exprPrinter struct {
	style Style
}

func (p exprPrinter) expr(e ast.Expr) string {
	switch n := e.(type) {
	case *ast.IntLiteral:
		return strconv.FormatInt(n.Value, 10)
	case *ast.BoolLiteral:
		return strconv.FormatBool(n.Value)
	case *ast.VarRef:
		return n.Name
	case *ast.IfExpr:
		return "if " + p.child(n.Cond) + " then " + p.child(n.Then) + " else " + p.child(n.Else)
	case *ast.LetExpr:
		return "let " + n.Name + " = " + p.child(n.Bound) + " in " + p.child(n.Body)
	case *ast.BinaryExpr:
		left := p.operand(n.Left, n.Op, false)
		right := p.operand(n.Right, n.Op, true)
		return left + " " + string(n.Op) + " " + right
	}
	return ""
}

// child renders a keyword-delimited sub-expression.
func (p exprPrinter) child(e ast.Expr) string {
	if p.style == Full && isCompound(e) {
		return "(" + p.expr(e) + ")"
	}
	return p.expr(e)
}

func (p exprPrinter) operand(e ast.Expr, parentOp ast.BinaryOp, isRight bool) string {
	if p.style == Full {
		return p.child(e)
	}
	if needsParens(e, parentOp, isRight) {
		return "(" + p.expr(e) + ")"
	}
	return p.expr(e)
}
