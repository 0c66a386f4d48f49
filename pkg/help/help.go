// Package help provides the quick reference and help topics shown by
// `evalml help`.
package help

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
	"github.com/thomasrohde/evalml/pkg/derivation"
)

// Version is the CLI version shown in the quick reference.
const Version = "v0.1"

// TopicList is the display order of help topics.
var TopicList = []string{"syntax", "rules", "environment", "output", "diagnostics", "examples"}

// QUICKREF is printed by `evalml help` with no topic.
var QUICKREF = `evalml ` + Version + ` - big-step derivation trees for a small ML

USAGE
  evalml derive <file|-> [flags]     derive a judgment and print the proof
  evalml derive -e '<judgment>'      derive a judgment given inline
  evalml eval <file|-> | -e '...'    print only the value
  evalml check <file|-> | -e '...'   parse and scope-check
  evalml fmt <file|-> | -e '...'     print the judgment in canonical form
  evalml repl                        interactive derivations
  evalml config                      print the effective configuration
  evalml help [topic]                this text, or a topic

FLAGS
  --format text|tree|json   --indent N   --turnstile '|-'|'⊢'
  --parens minimal|full     --lang auto|ml1|ml2   --max-depth N   --pretty

TOPICS
  ` + strings.Join(TopicList, ", ") + `
`

// Topics maps topic names to their text.
var Topics = map[string]string{
	"syntax": `SYNTAX

  judgment ::= [ name = expr { , name = expr } ] |- expr
             | expr
  expr     ::= int | -int | true | false | name
             | expr + expr | expr - expr | expr * expr | expr < expr
             | if expr then expr else expr
             | let name = expr in expr
             | ( expr )

  '*' binds tighter than '+' and '-', which bind tighter than '<'.
  '+', '-' and '*' associate to the left; '<' does not associate.
  'if' and 'let' extend as far to the right as possible.
  '⊢' may be written instead of '|-'. '#' starts a comment.
`,

	"environment": `ENVIRONMENT

  Bindings before '|-' are listed oldest first and evaluated left to right;
  each value may refer to the bindings before it:

    x = 2, y = x * 10 |- y

  The rightmost binding is the most recent. A variable is found by E-Var1
  when it is the most recent binding; otherwise E-Var2 drops the most recent
  binding and looks again. 'let' adds a binding for its body only.
`,

	"output": `OUTPUT

  text (default)
    Each rule instance is "judgment by Rule {premises}", indented by depth
    (--indent, default 4). Premises are separated by ';'. Leaves end in {}.
  tree
    One "Rule: judgment" line per rule instance with box-drawing branches.
  json
    {"language", "env", "expr", "value", "derivation"}; every node carries
    rule, judgment, value, depth and premises.

  EvalML1 judgments omit the environment: "3 + 5 evalto 8".
  EvalML2 judgments show it: "x = 3 |- x evalto 3". The variant is picked
  from the input unless --lang forces it.

  Settings are read from ./.evalml.yaml, then ~/.evalml/config.yaml:
    indent: 4
    turnstile: "|-"
    parens: minimal
    format: text
    language: auto
    maxDepth: 0
`,

	"diagnostics": `DIAGNOSTICS

  E_LEX        unexpected character                      exit 2
  E_PARSE      malformed judgment                        exit 2
  E_UNBOUND    variable not bound (static or dynamic)    exit 2 / 4
  E_TYPE       operand or condition of the wrong type    exit 4
  E_EMPTY_ENV  most recent binding of an empty env       exit 4
  E_LANG       variables used under EvalML1              exit 4
  E_BUDGET     derivation deeper than maxDepth           exit 4
  E_CONFIG     invalid configuration or flag value       exit 1
  E_IO         file cannot be read                       exit 1

  Diagnostics print as JSON on stderr; --pretty prints them as text.
`,

	"examples": `EXAMPLES

  evalml derive -e '3 + 5'
  evalml derive -e 'x = 3, y = 2 |- x'
  evalml derive -e 'x = 3 |- let x = x * 2 in x + x' --format tree
  evalml derive -e 'if 4 < 5 then 2 + 3 else 8 * 8' --lang ml2 --turnstile '⊢'
  echo '|- let x = 1 + 2 in x * 4' | evalml derive -
  evalml eval -e 'x = true, y = 4 |- if x then y + 1 else y'
`,
}

func init() {
	Topics["rules"] = "RULES\n\n" + RuleIndex()
}

var ruleDescriptions = []struct {
	name, text string
}{
	{derivation.RuleInt, "an integer evaluates to itself"},
	{derivation.RuleBool, "a boolean evaluates to itself"},
	{derivation.RuleIfT, "condition is true; derive the then-branch"},
	{derivation.RuleIfF, "condition is false; derive the else-branch"},
	{derivation.RulePlus, "derive both operands, then B-Plus"},
	{derivation.RuleMinus, "derive both operands, then B-Minus"},
	{derivation.RuleTimes, "derive both operands, then B-Times"},
	{derivation.RuleLt, "derive both operands, then B-Lt"},
	{derivation.RuleVar1, "the variable is the most recent binding"},
	{derivation.RuleVar2, "skip the most recent binding and look again"},
	{derivation.RuleLet, "derive the bound value, then the body under the new binding"},
	{derivation.RuleBPlus, "i1 plus i2 is i3"},
	{derivation.RuleBMinus, "i1 minus i2 is i3"},
	{derivation.RuleBTimes, "i1 times i2 is i3"},
	{derivation.RuleBLt, "i1 is less than i2"},
}

// RuleIndex lists every inference rule with a one-line description.
func RuleIndex() string {
	lines := lo.Map(ruleDescriptions, func(r struct{ name, text string }, _ int) string {
		return fmt.Sprintf("  %-8s %s", r.name, r.text)
	})
	return strings.Join(lines, "\n") + fmt.Sprintf("\n\nTotal: %d rules\n", len(lines))
}

// MatchTopic resolves a topic by exact name or unique prefix.
func MatchTopic(query string) (string, string, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	if content, ok := Topics[q]; ok {
		return q, content, nil
	}
	if q == "" {
		return "", "", fmt.Errorf("empty help topic")
	}
	matches := lo.Filter(TopicList, func(name string, _ int) bool {
		return strings.HasPrefix(name, q)
	})
	switch len(matches) {
	case 1:
		return matches[0], Topics[matches[0]], nil
	case 0:
		return "", "", fmt.Errorf("unknown help topic: %s", query)
	}
	return "", "", fmt.Errorf("ambiguous help topic %q: %s", query, strings.Join(matches, ", "))
}
