package workflow

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mmdatafocus/billing_ledger/models"
	"github.com/mmdatafocus/billing_ledger/store"
	"github.com/sirupsen/logrus"
)

var fixedNow = time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func newTestLedger(t *testing.T, backend store.Backend, opts ...Option) *Ledger {
	t.Helper()
	logger := quietLogger()
	opts = append([]Option{
		WithLogger(logger),
		WithClock(func() time.Time { return fixedNow }),
	}, opts...)
	return NewLedger(store.NewStore(backend, logger), opts...)
}

func writeCollection(t *testing.T, dir string, c store.Collection, v any) {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal %s: %v", c, err)
	}
	if err := os.WriteFile(filepath.Join(dir, c.FileName()), data, 0o644); err != nil {
		t.Fatalf("write %s: %v", c, err)
	}
}

func readCollection(t *testing.T, dir string, c store.Collection, out any) {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, c.FileName()))
	if err != nil {
		t.Fatalf("read %s: %v", c, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		t.Fatalf("decode %s: %v", c, err)
	}
}

// docs converts JSON-literal records into the shape a load produces.
func docs(t *testing.T, raw string) []models.Document {
	t.Helper()
	var out []models.Document
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		t.Fatalf("decode fixture: %v", err)
	}
	return out
}

// failingBackend refuses to save the listed collections.
type failingBackend struct {
	store.Backend
	fail map[store.Collection]bool
}

func (b failingBackend) Save(ctx context.Context, c store.Collection, data []byte) error {
	if b.fail[c] {
		return os.ErrPermission
	}
	return b.Backend.Save(ctx, c, data)
}
