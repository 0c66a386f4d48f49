package ast_test

import (
	"testing"

	"github.com/thomasrohde/evalml/pkg/ast"
)

func TestNodeKinds(t *testing.T) {
	nodes := []ast.Node{
		&ast.IntLiteral{Value: 42},
		&ast.BoolLiteral{Value: true},
		&ast.VarRef{Name: "x"},
		&ast.IfExpr{},
		&ast.LetExpr{},
		&ast.BinaryExpr{Op: ast.OpAdd},
		&ast.Binding{},
		&ast.Judgment{},
	}

	expected := []string{
		"IntLiteral", "BoolLiteral", "VarRef", "IfExpr",
		"LetExpr", "BinaryExpr", "Binding", "Judgment",
	}

	for i, node := range nodes {
		if got := node.Kind(); got != expected[i] {
			t.Errorf("node %d: got Kind() = %q, want %q", i, got, expected[i])
		}
	}
}

func TestUsesEnvironment(t *testing.T) {
	one := &ast.IntLiteral{Value: 1}
	x := &ast.VarRef{Name: "x"}

	tests := []struct {
		name string
		expr ast.Expr
		want bool
	}{
		{"literal", one, false},
		{"bool", &ast.BoolLiteral{Value: false}, false},
		{"arith", &ast.BinaryExpr{Op: ast.OpAdd, Left: one, Right: one}, false},
		{"var", x, true},
		{"var in arith", &ast.BinaryExpr{Op: ast.OpMul, Left: one, Right: x}, true},
		{"var in else", &ast.IfExpr{Cond: &ast.BoolLiteral{Value: true}, Then: one, Else: x}, true},
		{"let", &ast.LetExpr{Name: "y", Bound: one, Body: one}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ast.UsesEnvironment(tt.expr); got != tt.want {
				t.Errorf("UsesEnvironment() = %v, want %v", got, tt.want)
			}
		})
	}
}
