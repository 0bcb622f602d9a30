package mirror

import (
	"context"

	"tally/internal/core"
)

// RowAppender is the outbound port for the expense mirror. Implementations
// append one expense as a row and return an opaque row reference.
type RowAppender interface {
	Append(ctx context.Context, e core.Expense) (rowRef string, err error)
}
