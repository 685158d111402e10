package models

import "time"

// Signature is a cheap fingerprint of a persisted collection.
// ModTime is in unix nanoseconds for backends that track it.
type Signature struct {
	Exists  bool  `json:"exists"`
	Size    int64 `json:"size"`
	ModTime int64 `json:"mtime"`
}

type CollectionSignatures struct {
	Purchase  Signature `json:"purchase"`
	Sales     Signature `json:"sales"`
	Inventory Signature `json:"inventory"`
}

// ReconcileResult summarises one reconciliation pass.
type ReconcileResult struct {
	RunId             string   `json:"run_id,omitempty"`
	PurchaseRecords   int      `json:"purchase_records"`
	SalesRecords      int      `json:"sales_records"`
	InventoryItems    int      `json:"inventory_items"`
	PurchaseChanged   bool     `json:"purchase_changed"`
	SalesChanged      bool     `json:"sales_changed"`
	InventoryChanged  bool     `json:"inventory_changed"`
	Skipped           bool     `json:"skipped"`
	FailedCollections []string `json:"failed_collections,omitempty"`
}

func (r ReconcileResult) AnyChanged() bool {
	return r.PurchaseChanged || r.SalesChanged || r.InventoryChanged
}

// ReconcileState is persisted after every pass that was not skipped.
type ReconcileState struct {
	Signature  CollectionSignatures `json:"signature"`
	LastResult *ReconcileResult     `json:"last_result,omitempty"`
	UpdatedAt  time.Time            `json:"updated_at"`
}
