package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"budget/internal/amqp"
	"budget/internal/budget"
	"budget/internal/core"
	"budget/internal/sheets"
	"budget/internal/storage"
)

// SyncWorker mirrors committed monthly plans from the persisted state
// blob into a spreadsheet. Appended plan ids are remembered so neither a
// redelivered message nor the periodic pass writes the same plan twice.
type SyncWorker struct {
	blobs    storage.BlobStore
	stateKey string
	sheets   sheets.PlanWriter

	mu     sync.Mutex
	synced map[string]bool
}

func NewSyncWorker(blobs storage.BlobStore, stateKey string, sheets sheets.PlanWriter) *SyncWorker {
	return &SyncWorker{
		blobs:    blobs,
		stateKey: stateKey,
		sheets:   sheets,
		synced:   make(map[string]bool),
	}
}

func (w *SyncWorker) alreadySynced(planID string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.synced[planID]
}

func (w *SyncWorker) markSynced(planID string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.synced[planID] = true
}

// HandlePlanSync processes a single plan sync message from AMQP.
func (w *SyncWorker) HandlePlanSync(ctx context.Context, msg *amqp.PlanSyncMessage) error {
	slog.InfoContext(ctx, "Processing plan sync message",
		"month", msg.Month,
		"plan_id", msg.PlanID)

	plan, err := w.lookupPlan(ctx, msg.Month)
	if err != nil {
		return err
	}
	if msg.PlanID != "" && plan.ID != msg.PlanID {
		// The month was re-planned after this message was published.
		// Sync whatever is committed now rather than failing.
		slog.WarnContext(ctx, "Plan was replaced since message publish, syncing current plan",
			"month", msg.Month,
			"plan_id", msg.PlanID,
			"current_plan_id", plan.ID)
	}

	if w.alreadySynced(plan.ID) {
		slog.InfoContext(ctx, "Plan already synced, skipping",
			"month", msg.Month,
			"plan_id", plan.ID)
		return nil
	}

	rowRef, err := w.sheets.AppendPlan(ctx, msg.Month, plan)
	if err != nil {
		return fmt.Errorf("append plan to sheet: %w", err)
	}
	w.markSynced(plan.ID)

	slog.InfoContext(ctx, "Successfully synced plan",
		"month", msg.Month,
		"plan_id", plan.ID,
		"sheets_ref", rowRef)

	return nil
}

// ResyncAll appends every not-yet-synced committed plan to the sheet,
// oldest month first. Used by the periodic pass so plans committed while
// the worker was down still reach the sheet, without re-appending plans
// it already wrote.
func (w *SyncWorker) ResyncAll(ctx context.Context) (int, error) {
	st, err := w.loadState(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrNoState) {
			return 0, nil
		}
		return 0, err
	}

	months := make([]string, 0, len(st.MonthlyPlans))
	for month := range st.MonthlyPlans {
		months = append(months, month)
	}
	sort.Strings(months)

	synced := 0
	for _, month := range months {
		plan := st.MonthlyPlans[month]
		if w.alreadySynced(plan.ID) {
			continue
		}
		if _, err := w.sheets.AppendPlan(ctx, month, plan); err != nil {
			return synced, fmt.Errorf("append plan for %s: %w", month, err)
		}
		w.markSynced(plan.ID)
		synced++
	}
	return synced, nil
}

func (w *SyncWorker) lookupPlan(ctx context.Context, month string) (core.MonthlyPlan, error) {
	st, err := w.loadState(ctx)
	if err != nil {
		return core.MonthlyPlan{}, err
	}
	plan, ok := st.MonthlyPlans[month]
	if !ok {
		return core.MonthlyPlan{}, fmt.Errorf("no committed plan for month %s", month)
	}
	return plan, nil
}

func (w *SyncWorker) loadState(ctx context.Context) (budget.State, error) {
	data, err := w.blobs.Load(ctx, w.stateKey)
	if err != nil {
		return budget.State{}, fmt.Errorf("load state blob: %w", err)
	}
	st, err := budget.DecodeState(data, time.Now())
	if err != nil {
		return budget.State{}, fmt.Errorf("decode state blob: %w", err)
	}
	return st, nil
}
