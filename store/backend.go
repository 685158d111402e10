package store

import (
	"context"
	"fmt"

	"github.com/mmdatafocus/billing_ledger/models"
)

// Collection names one whole-document store.
type Collection string

const (
	CollectionPurchase  Collection = "purchase"
	CollectionSales     Collection = "sales"
	CollectionInventory Collection = "inventory"
	CollectionState     Collection = "consistency_state"
	CollectionAudit     Collection = "audit_log"
)

// FileName is the on-disk / object name of the collection.
func (c Collection) FileName() string {
	if c == CollectionState {
		return ".consistency_state.json"
	}
	return string(c) + ".json"
}

// Backend persists whole collections. There are no partial updates: Save replaces the
// previous document and the last writer wins.
type Backend interface {
	// Load returns exists=false with a nil error when the collection was never written.
	Load(ctx context.Context, c Collection) (data []byte, exists bool, err error)
	Save(ctx context.Context, c Collection, data []byte) error
	Stat(ctx context.Context, c Collection) (models.Signature, error)
}

// PersistError reports a collection whose write failed.
type PersistError struct {
	Collection Collection
	Err        error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("persist %s: %v", e.Collection, e.Err)
}

func (e *PersistError) Unwrap() error {
	return e.Err
}
