package formatter

import (
	"github.com/disiqueira/gotree"
	"github.com/thomasrohde/evalml/pkg/derivation"
)

// Tree renders a derivation as an indented box-drawing tree, one rule
// instance per line labelled "Rule: judgment".
func Tree(d *derivation.Derivation, opts Options) string {
	p := printer{lang: d.Language, opts: opts.normalized()}
	root := gotree.New(p.label(d.Root))
	p.addPremises(root, d.Root)
	return root.Print()
}

func (p printer) label(proof derivation.Proof) string {
	return proof.Rule() + ": " + p.judgment(proof)
}

func (p printer) addPremises(parent gotree.Tree, proof derivation.Proof) {
	for _, premise := range proof.Premises() {
		child := parent.Add(p.label(premise))
		p.addPremises(child, premise)
	}
}
