package formatter

import (
	"encoding/json"

	"github.com/samber/lo"
	"github.com/thomasrohde/evalml/pkg/derivation"
	"github.com/thomasrohde/evalml/pkg/evaluator"
)

type nodeJSON struct {
	Rule     string          `json:"rule"`
	Judgment string          `json:"judgment"`
	Value    json.RawMessage `json:"value"`
	Depth    int             `json:"depth"`
	Premises []nodeJSON      `json:"premises"`
}

type derivationJSON struct {
	Language   string          `json:"language"`
	Env        json.RawMessage `json:"env"`
	Expr       string          `json:"expr"`
	Value      json.RawMessage `json:"value"`
	Conclusion string          `json:"conclusion"`
	Derivation nodeJSON        `json:"derivation"`
}

// JSON renders a derivation as a JSON document headed by the root
// conclusion. Nodes carry their rule, judgment text, value, depth and
// premises.
func JSON(d *derivation.Derivation, opts Options, pretty bool) ([]byte, error) {
	p := printer{lang: d.Language, opts: opts.normalized()}
	env, err := evaluator.EnvToJSON(d.Env)
	if err != nil {
		return nil, err
	}
	doc := derivationJSON{
		Language:   d.Language.String(),
		Env:        env,
		Expr:       FormatExpr(d.Expr, p.opts.Parens),
		Value:      json.RawMessage(evaluator.ValueToJSONString(d.Value())),
		Conclusion: Judgment(d, d.Root, opts),
		Derivation: p.jsonNode(d.Root),
	}
	if pretty {
		return json.MarshalIndent(doc, "", "  ")
	}
	return json.Marshal(doc)
}

func (p printer) jsonNode(proof derivation.Proof) nodeJSON {
	return nodeJSON{
		Rule:     proof.Rule(),
		Judgment: p.judgment(proof),
		Value:    json.RawMessage(evaluator.ValueToJSONString(proof.Value())),
		Depth:    proof.Depth(),
		Premises: lo.Map(proof.Premises(), func(q derivation.Proof, _ int) nodeJSON {
			return p.jsonNode(q)
		}),
	}
}
