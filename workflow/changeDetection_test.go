package workflow

import (
	"context"
	"testing"

	"github.com/mmdatafocus/billing_ledger/store"
)

func TestReconcileIfNeeded_SecondCallIsSkipped(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	seedRingScenario(t, dir)
	ledger := newTestLedger(t, store.NewFileBackend(dir))

	first, err := ledger.ReconcileIfNeeded(ctx)
	if err != nil {
		t.Fatalf("first call error: %v", err)
	}
	if first.Skipped || !first.InventoryChanged {
		t.Fatalf("first call must run a pass: %+v", first)
	}

	second, err := ledger.ReconcileIfNeeded(ctx)
	if err != nil {
		t.Fatalf("second call error: %v", err)
	}
	if !second.Skipped {
		t.Fatalf("second call must be skipped: %+v", second)
	}
	if second.PurchaseRecords != 0 || second.SalesRecords != 0 || second.InventoryItems != 0 || second.AnyChanged() {
		t.Fatalf("skipped result must be zeroed: %+v", second)
	}

	state, err := ledger.Store().LoadState(ctx)
	if err != nil || state == nil || state.LastResult == nil {
		t.Fatalf("expected recorded state, got %+v err=%v", state, err)
	}
	if state.LastResult.RunId != first.RunId {
		t.Fatalf("state must record the last pass, got %+v", state.LastResult)
	}
}

func TestReconcileIfNeeded_RunsAgainAfterExternalWrite(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	seedRingScenario(t, dir)
	ledger := newTestLedger(t, store.NewFileBackend(dir))

	if _, err := ledger.ReconcileIfNeeded(ctx); err != nil {
		t.Fatalf("first call error: %v", err)
	}
	writeCollection(t, dir, store.CollectionPurchase, []map[string]any{
		{"items": []map[string]any{{"item": "Ring", "qty": 10, "rate": 100, "gst": 0}}},
		{"items": []map[string]any{{"item": "Chain", "qty": 2, "rate": 40, "gst": 0}}},
	})

	result, err := ledger.ReconcileIfNeeded(ctx)
	if err != nil {
		t.Fatalf("second call error: %v", err)
	}
	if result.Skipped || result.InventoryItems != 2 {
		t.Fatalf("expected a fresh pass over the new purchase, got %+v", result)
	}
}

func TestReconcileIfNeeded_FailedPassRecordsNoState(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	seedRingScenario(t, dir)
	backend := failingBackend{
		Backend: store.NewFileBackend(dir),
		fail:    map[store.Collection]bool{store.CollectionInventory: true},
	}
	ledger := newTestLedger(t, backend)

	if _, err := ledger.ReconcileIfNeeded(ctx); err == nil {
		t.Fatalf("expected persist error")
	}
	state, err := ledger.Store().LoadState(ctx)
	if err != nil || state != nil {
		t.Fatalf("expected no state after a failed pass, got %+v err=%v", state, err)
	}
}
