// Package memory provides an in-memory PlanWriter for tests and local
// runs without Google credentials.
package memory

import (
	"context"
	"fmt"
	"sync"

	"budget/internal/core"
	ports "budget/internal/sheets"
)

type Row struct {
	Month string
	Plan  core.MonthlyPlan
}

type Writer struct {
	mu   sync.Mutex
	rows []Row
}

var _ ports.PlanWriter = (*Writer)(nil)

func New() *Writer {
	return &Writer{}
}

func (w *Writer) AppendPlan(_ context.Context, month string, plan core.MonthlyPlan) (string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.rows = append(w.rows, Row{Month: month, Plan: plan.Clone()})
	return fmt.Sprintf("mem!A%d", len(w.rows)), nil
}

// Rows returns a copy of everything appended so far.
func (w *Writer) Rows() []Row {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]Row, len(w.rows))
	copy(out, w.rows)
	return out
}
