// Package sheets defines the outbound ports for exporting committed
// monthly plans to a spreadsheet backend.
package sheets

import (
	"context"

	"budget/internal/core"
)

// PlanWriter appends a committed monthly plan's summary to an external
// sheet and returns a reference to the written row.
type PlanWriter interface {
	AppendPlan(ctx context.Context, month string, plan core.MonthlyPlan) (rowRef string, err error)
}
