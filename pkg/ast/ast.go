// Package ast defines the node types of the evaluation language.
package ast

// Span represents a source location range.
type Span struct {
	File      string `json:"file"`
	StartLine int    `json:"startLine"`
	StartCol  int    `json:"startCol"`
	EndLine   int    `json:"endLine"`
	EndCol    int    `json:"endCol"`
}

// Node is the interface implemented by all AST nodes.
type Node interface {
	Kind() string
	NodeSpan() Span
}

// BinaryOp represents a binary operator.
type BinaryOp string

const (
	OpAdd BinaryOp = "+"
	OpSub BinaryOp = "-"
	OpMul BinaryOp = "*"
	OpLt  BinaryOp = "<"
)

// --- Expr is the interface for all expression nodes ---

type Expr interface {
	Node
	exprNode() // sealed marker
}

// --- Literal Expressions ---

type IntLiteral struct {
	Span  Span
	Value int64
}

func (n *IntLiteral) Kind() string   { return "IntLiteral" }
func (n *IntLiteral) NodeSpan() Span { return n.Span }
func (n *IntLiteral) exprNode()      {}

type BoolLiteral struct {
	Span  Span
	Value bool
}

func (n *BoolLiteral) Kind() string   { return "BoolLiteral" }
func (n *BoolLiteral) NodeSpan() Span { return n.Span }
func (n *BoolLiteral) exprNode()      {}

// --- Variables ---

type VarRef struct {
	Span Span
	Name string
}

func (n *VarRef) Kind() string   { return "VarRef" }
func (n *VarRef) NodeSpan() Span { return n.Span }
func (n *VarRef) exprNode()      {}

// --- Control Flow ---

type IfExpr struct {
	Span Span
	Cond Expr
	Then Expr
	Else Expr
}

func (n *IfExpr) Kind() string   { return "IfExpr" }
func (n *IfExpr) NodeSpan() Span { return n.Span }
func (n *IfExpr) exprNode()      {}

// LetExpr binds Name to the value of Bound while evaluating Body.
type LetExpr struct {
	Span  Span
	Name  string
	Bound Expr
	Body  Expr
}

func (n *LetExpr) Kind() string   { return "LetExpr" }
func (n *LetExpr) NodeSpan() Span { return n.Span }
func (n *LetExpr) exprNode()      {}

// --- Binary Expressions ---

type BinaryExpr struct {
	Span  Span
	Op    BinaryOp
	Left  Expr
	Right Expr
}

func (n *BinaryExpr) Kind() string   { return "BinaryExpr" }
func (n *BinaryExpr) NodeSpan() Span { return n.Span }
func (n *BinaryExpr) exprNode()      {}

// --- Judgment input ---

// Binding is one `name = expr` entry of the environment prefix.
type Binding struct {
	Span  Span
	Name  string
	Value Expr
}

func (n *Binding) Kind() string   { return "Binding" }
func (n *Binding) NodeSpan() Span { return n.Span }

// Judgment is a parsed input: an optional environment prefix and the
// expression to derive. Bindings are in source order (oldest first).
// Turnstile records whether the input spelled out `|-` or `⊢`, even with an
// empty prefix.
type Judgment struct {
	Span      Span
	Bindings  []*Binding
	Turnstile bool
	Expr      Expr
}

func (n *Judgment) Kind() string   { return "Judgment" }
func (n *Judgment) NodeSpan() Span { return n.Span }

// UsesEnvironment reports whether expr contains a variable reference or a
// let-binding, i.e. whether it can only be judged under an environment.
func UsesEnvironment(expr Expr) bool {
	switch e := expr.(type) {
	case *VarRef, *LetExpr:
		return true
	case *IfExpr:
		return UsesEnvironment(e.Cond) || UsesEnvironment(e.Then) || UsesEnvironment(e.Else)
	case *BinaryExpr:
		return UsesEnvironment(e.Left) || UsesEnvironment(e.Right)
	}
	return false
}
