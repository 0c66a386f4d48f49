package derivation_test

import (
	"testing"

	"github.com/thomasrohde/evalml/pkg/derivation"
	"github.com/thomasrohde/evalml/pkg/evaluator"
	"github.com/thomasrohde/evalml/pkg/parser"
)

var closedExprs = []string{
	"0",
	"true",
	"3 + 5",
	"8 - 2 - 3",
	"(4 + 5) * (1 - 10)",
	"if 4 < 5 then 2 + 3 else 8 * 8",
	"3 + if -23 < -2 * 8 then 8 else 2 + 4",
	"if 2 * 3 < 5 then false else 1 < 2",
	"|- let x = 1 + 2 in x * 4",
	"|- let x = 3 in let y = x * x in let x = y - x in x + y",
	"|- let b = 1 < 2 in if b then let b = 5 in b * b else 0",
}

// The root of a derivation concludes what the evaluator computes.
func TestDerivationAgreesWithEvaluator(t *testing.T) {
	for _, src := range closedExprs {
		t.Run(src, func(t *testing.T) {
			j, diags := parser.Parse(src, "test.ml")
			if len(diags) > 0 {
				t.Fatalf("parse errors: %v", diags)
			}
			want, err := evaluator.Evaluate(evaluator.Empty(), j.Expr)
			if err != nil {
				t.Fatalf("evaluate: %v", err)
			}
			p, err := derivation.Solve(evaluator.Empty(), j.Expr, 0)
			if err != nil {
				t.Fatalf("solve: %v", err)
			}
			if !evaluator.Equal(p.Value(), want) {
				t.Errorf("derivation concludes %s, evaluator computes %s", p.Value(), want)
			}
		})
	}
}

// Every node sits one level below its parent, and every compound node
// concludes the value of its result-bearing premise.
func TestDerivationShape(t *testing.T) {
	for _, src := range closedExprs {
		t.Run(src, func(t *testing.T) {
			d := mustDerive(t, src)
			checkShape(t, d.Root)
		})
	}
}

func checkShape(t *testing.T, root derivation.Proof) {
	t.Helper()
	derivation.Walk(root, func(p derivation.Proof) bool {
		for _, premise := range p.Premises() {
			if premise.Depth() != p.Depth()+1 {
				t.Errorf("%s at depth %d has premise %s at depth %d",
					p.Rule(), p.Depth(), premise.Rule(), premise.Depth())
			}
		}
		var carrier derivation.Proof
		switch n := p.(type) {
		case *derivation.IfProof:
			carrier = n.Branch
		case *derivation.BinOpProof:
			carrier = n.Prim
		case *derivation.VarSkipProof:
			carrier = n.Inner
		case *derivation.LetProof:
			carrier = n.Body
		}
		if carrier != nil && !evaluator.Equal(p.Value(), carrier.Value()) {
			t.Errorf("%s concludes %s but its premise %s concludes %s",
				p.Rule(), p.Value(), carrier.Rule(), carrier.Value())
		}
		return true
	})
}
