// Package derivation builds big-step derivation trees for judgments of the
// form "env |- expr evalto value".
package derivation

import (
	"github.com/thomasrohde/evalml/pkg/ast"
	"github.com/thomasrohde/evalml/pkg/evaluator"
)

// Rule names.
const (
	RuleInt   = "E-Int"
	RuleBool  = "E-Bool"
	RuleIfT   = "E-IfT"
	RuleIfF   = "E-IfF"
	RulePlus  = "E-Plus"
	RuleMinus = "E-Minus"
	RuleTimes = "E-Times"
	RuleLt    = "E-Lt"
	RuleVar1  = "E-Var1"
	RuleVar2  = "E-Var2"
	RuleLet   = "E-Let"

	RuleBPlus  = "B-Plus"
	RuleBMinus = "B-Minus"
	RuleBTimes = "B-Times"
	RuleBLt    = "B-Lt"
)

// Proof is a node of a derivation tree: one rule instance with its premises.
// Implementations are sealed to this package.
type Proof interface {
	Rule() string
	Depth() int
	Value() evaluator.Value
	Premises() []Proof
	proofNode() // sealed marker
}

// EvalProof is a proof of an evaluation judgment.
type EvalProof interface {
	Proof
	Subject() (*evaluator.Env, ast.Expr)
}

// Eval holds the judged environment and expression shared by every
// evaluation proof.
type Eval struct {
	Env   *evaluator.Env
	Expr  ast.Expr
	Level int
}

func (j Eval) Depth() int                          { return j.Level }
func (j Eval) Subject() (*evaluator.Env, ast.Expr) { return j.Env, j.Expr }

// --- Leaves ---

// IntProof is an E-Int leaf.
type IntProof struct {
	Eval
	Result evaluator.IntValue
}

func (p *IntProof) Rule() string           { return RuleInt }
func (p *IntProof) Value() evaluator.Value { return p.Result }
func (p *IntProof) Premises() []Proof      { return nil }
func (p *IntProof) proofNode()             {}

// BoolProof is an E-Bool leaf.
type BoolProof struct {
	Eval
	Result evaluator.BoolValue
}

func (p *BoolProof) Rule() string           { return RuleBool }
func (p *BoolProof) Value() evaluator.Value { return p.Result }
func (p *BoolProof) Premises() []Proof      { return nil }
func (p *BoolProof) proofNode()             {}

// VarProof is an E-Var1 leaf: the variable is the most recent binding.
type VarProof struct {
	Eval
	Result evaluator.Value
}

func (p *VarProof) Rule() string           { return RuleVar1 }
func (p *VarProof) Value() evaluator.Value { return p.Result }
func (p *VarProof) Premises() []Proof      { return nil }
func (p *VarProof) proofNode()             {}

// PrimProof is a B-* leaf applying a primitive operator to two values.
type PrimProof struct {
	Op     ast.BinaryOp
	Left   evaluator.Value
	Right  evaluator.Value
	Result evaluator.Value
	Level  int
}

func (p *PrimProof) Rule() string {
	switch p.Op {
	case ast.OpAdd:
		return RuleBPlus
	case ast.OpSub:
		return RuleBMinus
	case ast.OpMul:
		return RuleBTimes
	case ast.OpLt:
		return RuleBLt
	}
	return "B-?"
}
func (p *PrimProof) Depth() int             { return p.Level }
func (p *PrimProof) Value() evaluator.Value { return p.Result }
func (p *PrimProof) Premises() []Proof      { return nil }
func (p *PrimProof) proofNode()             {}

// --- Compound nodes ---

// IfProof is E-IfT or E-IfF depending on the proved condition.
type IfProof struct {
	Eval
	Cond   Proof
	Branch Proof
	Taken  bool
}

func (p *IfProof) Rule() string {
	if p.Taken {
		return RuleIfT
	}
	return RuleIfF
}
func (p *IfProof) Value() evaluator.Value { return p.Branch.Value() }
func (p *IfProof) Premises() []Proof      { return []Proof{p.Cond, p.Branch} }
func (p *IfProof) proofNode()             {}

// BinOpProof is E-Plus, E-Minus, E-Times or E-Lt.
type BinOpProof struct {
	Eval
	Left  Proof
	Right Proof
	Prim  *PrimProof
}

func (p *BinOpProof) Rule() string {
	switch p.Prim.Op {
	case ast.OpAdd:
		return RulePlus
	case ast.OpSub:
		return RuleMinus
	case ast.OpMul:
		return RuleTimes
	case ast.OpLt:
		return RuleLt
	}
	return "E-?"
}
func (p *BinOpProof) Value() evaluator.Value { return p.Prim.Value() }
func (p *BinOpProof) Premises() []Proof      { return []Proof{p.Left, p.Right, p.Prim} }
func (p *BinOpProof) proofNode()             {}

// VarSkipProof is E-Var2: the most recent binding names another variable,
// so the lookup continues in the environment without it.
type VarSkipProof struct {
	Eval
	Inner Proof
}

func (p *VarSkipProof) Rule() string           { return RuleVar2 }
func (p *VarSkipProof) Value() evaluator.Value { return p.Inner.Value() }
func (p *VarSkipProof) Premises() []Proof      { return []Proof{p.Inner} }
func (p *VarSkipProof) proofNode()             {}

// LetProof is E-Let.
type LetProof struct {
	Eval
	Bound Proof
	Body  Proof
}

func (p *LetProof) Rule() string           { return RuleLet }
func (p *LetProof) Value() evaluator.Value { return p.Body.Value() }
func (p *LetProof) Premises() []Proof      { return []Proof{p.Bound, p.Body} }
func (p *LetProof) proofNode()             {}

// Walk calls fn for p and all its premises, depth first, in premise order.
// Returning false from fn skips the premises of that node.
func Walk(p Proof, fn func(Proof) bool) {
	if !fn(p) {
		return
	}
	for _, premise := range p.Premises() {
		Walk(premise, fn)
	}
}

// Size returns the number of rule instances in p.
func Size(p Proof) int {
	n := 0
	Walk(p, func(Proof) bool {
		n++
		return true
	})
	return n
}
