package evaluator

import (
	"fmt"

	"github.com/thomasrohde/evalml/pkg/ast"
	"github.com/thomasrohde/evalml/pkg/diagnostics"
)

// Budget holds the resource limits for an evaluation or derivation.
// A zero MaxDepth means unlimited.
type Budget struct {
	MaxDepth int
}

// Check returns an E_BUDGET error when depth exceeds the budget.
func (b Budget) Check(depth int, span *ast.Span) error {
	if b.MaxDepth > 0 && depth > b.MaxDepth {
		return &RuntimeError{
			Code:    diagnostics.EBudget,
			Message: fmt.Sprintf("depth budget exceeded (max %d)", b.MaxDepth),
			Span:    span,
		}
	}
	return nil
}
