package formatter

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
	"github.com/thomasrohde/evalml/pkg/ast"
	"github.com/thomasrohde/evalml/pkg/derivation"
)

// Turnstile spellings.
const (
	ASCIITurnstile   = "|-"
	TypesetTurnstile = "⊢"
)

// Options configures derivation rendering.
type Options struct {
	Indent    int
	Turnstile string
	Parens    Style
}

// DefaultOptions returns the textbook layout: four spaces per level,
// ASCII turnstile, minimal parentheses.
func DefaultOptions() Options {
	return Options{Indent: 4, Turnstile: ASCIITurnstile, Parens: Minimal}
}

func (o Options) normalized() Options {
	if o.Indent < 0 {
		o.Indent = 0
	}
	if o.Turnstile == "" {
		o.Turnstile = ASCIITurnstile
	}
	if o.Parens == "" {
		o.Parens = Minimal
	}
	return o
}

type printer struct {
	lang derivation.Language
	opts Options
}

// Format renders a derivation in textbook form. Each rule instance is
// indented by its depth; sibling premises are separated by ";".
func Format(d *derivation.Derivation, opts Options) string {
	p := printer{lang: d.Language, opts: opts.normalized()}
	return p.node(d.Root) + "\n"
}

// Judgment renders the conclusion of a single proof node, without its rule.
func Judgment(d *derivation.Derivation, proof derivation.Proof, opts Options) string {
	p := printer{lang: d.Language, opts: opts.normalized()}
	return p.judgment(proof)
}

func (p printer) node(proof derivation.Proof) string {
	prefix := strings.Repeat(" ", p.opts.Indent*proof.Depth())
	head := prefix + p.judgment(proof) + " by " + proof.Rule() + " {"

	premises := proof.Premises()
	if len(premises) == 0 {
		return head + "}"
	}
	body := strings.Join(lo.Map(premises, func(q derivation.Proof, _ int) string {
		return p.node(q)
	}), ";\n")
	return head + "\n" + body + "\n" + prefix + "}"
}

func (p printer) judgment(proof derivation.Proof) string {
	switch n := proof.(type) {
	case *derivation.PrimProof:
		return primJudgment(n)
	case derivation.EvalProof:
		env, expr := n.Subject()
		conclusion := FormatExpr(expr, p.opts.Parens) + " evalto " + n.Value().String()
		if !p.lang.ShowsEnvironment() {
			return conclusion
		}
		if env.IsEmpty() {
			return p.opts.Turnstile + " " + conclusion
		}
		return env.String() + " " + p.opts.Turnstile + " " + conclusion
	}
	return ""
}

func primJudgment(n *derivation.PrimProof) string {
	l, r := n.Left.String(), n.Right.String()
	switch n.Op {
	case ast.OpAdd:
		return fmt.Sprintf("%s plus %s is %s", l, r, n.Result)
	case ast.OpSub:
		return fmt.Sprintf("%s minus %s is %s", l, r, n.Result)
	case ast.OpMul:
		return fmt.Sprintf("%s times %s is %s", l, r, n.Result)
	case ast.OpLt:
		return fmt.Sprintf("%s is less than %s", l, r)
	}
	return ""
}
