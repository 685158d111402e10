package workflow

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/mmdatafocus/billing_ledger/store"
)

// Repeated passes over identical input must persist byte-identical collections,
// regardless of map iteration order.
func TestReconcile_PersistedOutputIsDeterministic(t *testing.T) {
	seed := func(dir string) {
		writeCollection(t, dir, store.CollectionPurchase, []map[string]any{
			{"items": []map[string]any{
				{"item": "zircon stud", "qty": 3, "rate": 75},
				{"item": "Anklet", "qty": 2, "rate": 300, "gst": 3},
				{"item": "bangle", "qty": 9, "rate": 120},
			}},
		})
		writeCollection(t, dir, store.CollectionSales, []map[string]any{
			{"items": []map[string]any{{"item": "ANKLET", "qty": 1, "rate": 400}}},
		})
		writeCollection(t, dir, store.CollectionInventory, map[string]any{
			"Bangle":  map[string]any{"stock": 1, "rate": 100},
			"Earring": map[string]any{"qty": 4, "rate": 60},
			"chain":   map[string]any{"stock": 2, "rate": 45},
		})
	}

	var outputs []map[string]string
	for i := 0; i < 5; i++ {
		dir := t.TempDir()
		seed(dir)
		ledger := newTestLedger(t, store.NewFileBackend(dir))
		if _, err := ledger.Reconcile(context.Background()); err != nil {
			t.Fatalf("run %d: Reconcile error: %v", i, err)
		}
		out := map[string]string{}
		for _, c := range []store.Collection{store.CollectionPurchase, store.CollectionSales, store.CollectionInventory} {
			data, err := os.ReadFile(filepath.Join(dir, c.FileName()))
			if err != nil {
				t.Fatalf("run %d: read %s: %v", i, c, err)
			}
			out[string(c)] = string(data)
		}
		outputs = append(outputs, out)
	}
	for i := 1; i < len(outputs); i++ {
		for c, data := range outputs[0] {
			if outputs[i][c] != data {
				t.Fatalf("run %d produced different %s:\n%s\nvs\n%s", i, c, outputs[i][c], data)
			}
		}
	}

	expected := `{
    "Anklet": {
        "stock": 1,
        "rate": 300
    },
    "Bangle": {
        "stock": 9,
        "rate": 120
    },
    "chain": {
        "stock": 2,
        "rate": 45
    },
    "Earring": {
        "stock": 4,
        "rate": 60
    },
    "zircon stud": {
        "stock": 3,
        "rate": 75
    }
}`
	if got := outputs[0][string(store.CollectionInventory)]; got != expected && got != expected+"\n" {
		t.Fatalf("unexpected inventory snapshot:\n%s", got)
	}
}
