package models

import "github.com/mmdatafocus/billing_ledger/utils"

type MigrateWhen int

const (
	// MigrateIfAbsent copies the legacy value when the canonical key does not exist.
	MigrateIfAbsent MigrateWhen = iota
	// MigrateIfBlank copies the legacy value when the canonical value is missing or empty.
	MigrateIfBlank
)

// FieldMigration backfills a canonical field from an older field name.
// The legacy field is never removed; other readers may still depend on it.
type FieldMigration struct {
	Legacy    string
	Canonical string
	When      MigrateWhen
	// Numeric migrations always produce a number, defaulting to 0 when the legacy value is missing.
	Numeric bool
}

var PurchaseFieldMigrations = []FieldMigration{
	{Legacy: "created_on", Canonical: "date", When: MigrateIfAbsent},
	{Legacy: "supplier", Canonical: "supplier_name", When: MigrateIfBlank},
	{Legacy: "payment_type", Canonical: "payment_mode", When: MigrateIfBlank},
	{Legacy: "paid", Canonical: "paid_amount", When: MigrateIfAbsent, Numeric: true},
	{Legacy: "due_amount", Canonical: "due", When: MigrateIfAbsent, Numeric: true},
}

var SaleFieldMigrations = []FieldMigration{
	{Legacy: "created_on", Canonical: "date", When: MigrateIfAbsent},
	{Legacy: "payment_type", Canonical: "payment_mode", When: MigrateIfBlank},
	{Legacy: "paid_amount", Canonical: "paid", When: MigrateIfAbsent, Numeric: true},
	{Legacy: "due_amount", Canonical: "due", When: MigrateIfAbsent, Numeric: true},
}

var LineItemFieldMigrations = []FieldMigration{
	{Legacy: "name", Canonical: "item", When: MigrateIfBlank},
	{Legacy: "gst_percent", Canonical: "gst", When: MigrateIfAbsent},
}

// Manual stock adjustments in older builds wrote "qty" instead of "stock".
var InventoryFieldMigrations = []FieldMigration{
	{Legacy: "qty", Canonical: "stock", When: MigrateIfAbsent},
}

// Apply runs one migration against doc and reports whether doc changed.
func (m FieldMigration) Apply(doc Document) bool {
	switch m.When {
	case MigrateIfAbsent:
		if doc.Has(m.Canonical) {
			return false
		}
	case MigrateIfBlank:
		if !utils.IsBlank(doc[m.Canonical]) {
			return false
		}
	}
	if m.Numeric {
		doc[m.Canonical] = doc.Float(m.Legacy)
		return true
	}
	legacy, ok := doc[m.Legacy]
	if !ok || utils.IsBlank(legacy) {
		return false
	}
	doc[m.Canonical] = legacy
	return true
}

// ApplyMigrations runs every migration in order and reports whether any of them changed doc.
func ApplyMigrations(doc Document, migrations []FieldMigration) bool {
	changed := false
	for _, m := range migrations {
		if m.Apply(doc) {
			changed = true
		}
	}
	return changed
}
