package parser_test

import (
	"testing"

	"github.com/thomasrohde/evalml/pkg/parser"
)

// FuzzParse feeds random inputs to the parser to catch panics.
// The parser should never panic; it should return diagnostics for invalid input.
func FuzzParse(f *testing.F) {
	seeds := []string{
		// Bare expressions
		`3 + 5`,
		`3 + 2 * -4`,
		`(4 + 5) * (1 - 10)`,
		`if 4 < 5 then 2 + 3 else 8 * 8`,
		`3 + if -23 < -2 * 8 then 8 else 2 + 4`,
		// Judgments
		`|- 3`,
		`x = 3, y = 2 |- x`,
		`x = true, y = 4 |- if x then y + 1 else y - 1`,
		`|- let x = 1 + 2 in x * 4`,
		`x = 3 ⊢ let x = x * 2 in x + x`,
		// Broken inputs
		`let`,
		`if if if`,
		`x = |-`,
		`|- |-`,
		`((((`,
		`- - 1`,
		`1 < 2 < 3`,
		`,,,`,
		``,
	}

	for _, s := range seeds {
		f.Add(s)
	}

	f.Fuzz(func(t *testing.T, input string) {
		func() {
			defer func() {
				if r := recover(); r != nil {
					t.Fatalf("Parse panicked on input %q: %v", input, r)
				}
			}()
			j, diags := parser.Parse(input, "fuzz.ml")
			if j == nil && len(diags) == 0 {
				t.Fatalf("Parse returned neither a judgment nor diagnostics for %q", input)
			}
		}()
	})
}
