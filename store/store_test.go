package store

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mmdatafocus/billing_ledger/models"
	"github.com/sirupsen/logrus"
)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func writeFile(t *testing.T, dir, name, body string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestLoadRecords_MissingAndWrongShapeAreEmpty(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	st := NewStore(NewFileBackend(dir), quietLogger())

	purchases, err := st.LoadPurchases(ctx)
	if err != nil || len(purchases) != 0 {
		t.Fatalf("missing collection: expected empty, got %v err=%v", purchases, err)
	}

	writeFile(t, dir, "sales.json", `{"not":"a list"}`)
	sales, err := st.LoadSales(ctx)
	if err != nil || len(sales) != 0 {
		t.Fatalf("wrong shape: expected empty, got %v err=%v", sales, err)
	}

	writeFile(t, dir, "inventory.json", `[1,2,3]`)
	inv, err := st.LoadInventoryDocument(ctx)
	if err != nil || len(inv) != 0 {
		t.Fatalf("wrong inventory shape: expected empty, got %v err=%v", inv, err)
	}
}

func TestLoadRecords_SkipsNonObjects(t *testing.T) {
	dir := t.TempDir()
	st := NewStore(NewFileBackend(dir), quietLogger())
	writeFile(t, dir, "purchase.json", `[{"purchase_id":"P0001"}, "junk", 4, {"purchase_id":"P0002"}]`)
	purchases, err := st.LoadPurchases(context.Background())
	if err != nil {
		t.Fatalf("LoadPurchases error: %v", err)
	}
	if len(purchases) != 2 || purchases[1]["purchase_id"] != "P0002" {
		t.Fatalf("unexpected records: %v", purchases)
	}
}

func TestLoadRecords_CorruptJSONIsAnError(t *testing.T) {
	dir := t.TempDir()
	st := NewStore(NewFileBackend(dir), quietLogger())
	writeFile(t, dir, "purchase.json", `[{"purchase_id":`)
	if _, err := st.LoadPurchases(context.Background()); err == nil {
		t.Fatalf("expected decode error for truncated JSON")
	}
}

func TestSaveRecords_CreatesDirAndPreservesUnknownKeys(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "nested", "data")
	st := NewStore(NewFileBackend(dir), quietLogger())
	records := []models.Document{{"purchase_id": "P0001", "custom_note": "keep me", "supplier": "Acme"}}
	if err := st.SavePurchases(ctx, records); err != nil {
		t.Fatalf("SavePurchases error: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "purchase.json"))
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if !strings.Contains(string(data), "\n        \"custom_note\": \"keep me\"") {
		t.Fatalf("expected 4-space indented output with unknown key, got:\n%s", data)
	}
	loaded, err := st.LoadPurchases(ctx)
	if err != nil || len(loaded) != 1 || loaded[0]["supplier"] != "Acme" {
		t.Fatalf("round trip lost data: %v err=%v", loaded, err)
	}
}

func TestSignatures_TrackExistenceAndSize(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	st := NewStore(NewFileBackend(dir), quietLogger())

	before, err := st.Signatures(ctx)
	if err != nil {
		t.Fatalf("Signatures error: %v", err)
	}
	if before.Purchase.Exists || before.Sales.Exists || before.Inventory.Exists {
		t.Fatalf("expected nothing to exist yet: %+v", before)
	}

	writeFile(t, dir, "sales.json", `[]`)
	after, err := st.Signatures(ctx)
	if err != nil {
		t.Fatalf("Signatures error: %v", err)
	}
	if !after.Sales.Exists || after.Sales.Size != 2 {
		t.Fatalf("unexpected sales signature: %+v", after.Sales)
	}
	if after == before {
		t.Fatalf("signature must change when a collection appears")
	}
}

func TestAppendAudit_LatestFirst(t *testing.T) {
	ctx := context.Background()
	st := NewStore(NewFileBackend(t.TempDir()), quietLogger())
	for _, id := range []string{"a1", "a2"} {
		if err := st.AppendAudit(ctx, models.AuditEntry{ID: id, Module: "sales"}); err != nil {
			t.Fatalf("AppendAudit error: %v", err)
		}
	}
	logs, err := st.LoadAudit(ctx)
	if err != nil {
		t.Fatalf("LoadAudit error: %v", err)
	}
	if len(logs) != 2 || logs[0]["id"] != "a2" || logs[1]["id"] != "a1" {
		t.Fatalf("expected latest first, got %v", logs)
	}
}

func TestLoadState_UnreadableIsNil(t *testing.T) {
	dir := t.TempDir()
	st := NewStore(NewFileBackend(dir), quietLogger())
	writeFile(t, dir, ".consistency_state.json", `garbage`)
	state, err := st.LoadState(context.Background())
	if err != nil || state != nil {
		t.Fatalf("expected nil state and no error, got %v err=%v", state, err)
	}
}

type failingBackend struct {
	Backend
}

func (failingBackend) Save(context.Context, Collection, []byte) error {
	return errors.New("disk full")
}

func TestSave_WrapsPersistError(t *testing.T) {
	st := NewStore(failingBackend{NewFileBackend(t.TempDir())}, quietLogger())
	err := st.SaveInventory(context.Background(), models.Inventory{"Ring": {Stock: 1}})
	var persistErr *PersistError
	if !errors.As(err, &persistErr) {
		t.Fatalf("expected PersistError, got %v", err)
	}
	if persistErr.Collection != CollectionInventory {
		t.Fatalf("expected inventory collection, got %s", persistErr.Collection)
	}
}
