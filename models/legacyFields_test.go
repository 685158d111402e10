package models

import "testing"

func TestApplyMigrations_PurchaseLegacyFields(t *testing.T) {
	doc := Document{
		"created_on":   "2024-01-02 10:00:00",
		"supplier":     "Acme",
		"payment_type": "UPI",
		"paid":         "500",
	}
	if !ApplyMigrations(doc, PurchaseFieldMigrations) {
		t.Fatalf("expected migrations to report a change")
	}
	if doc["date"] != "2024-01-02 10:00:00" {
		t.Fatalf("expected date backfilled from created_on, got %#v", doc["date"])
	}
	if doc["supplier_name"] != "Acme" {
		t.Fatalf("expected supplier_name backfilled, got %#v", doc["supplier_name"])
	}
	if doc["payment_mode"] != "UPI" {
		t.Fatalf("expected payment_mode backfilled, got %#v", doc["payment_mode"])
	}
	if doc["paid_amount"] != 500.0 {
		t.Fatalf("expected numeric paid_amount 500, got %#v", doc["paid_amount"])
	}
	for _, legacy := range []string{"created_on", "supplier", "payment_type", "paid"} {
		if !doc.Has(legacy) {
			t.Fatalf("legacy field %q must be kept", legacy)
		}
	}
	if ApplyMigrations(doc, PurchaseFieldMigrations) {
		t.Fatalf("second application must be a no-op")
	}
}

func TestApplyMigrations_CanonicalValueWins(t *testing.T) {
	doc := Document{
		"date":          "2024-05-01",
		"created_on":    "2023-01-01",
		"supplier_name": "Kept",
		"supplier":      "Ignored",
		"paid_amount":   10.0,
		"paid":          99.0,
	}
	ApplyMigrations(doc, PurchaseFieldMigrations)
	if doc["date"] != "2024-05-01" || doc["supplier_name"] != "Kept" || doc["paid_amount"] != 10.0 {
		t.Fatalf("canonical values were overwritten: %#v", doc)
	}
}

func TestApplyMigrations_BlankCanonicalIsBackfilled(t *testing.T) {
	doc := Document{"item": "  ", "name": "Gold Ring"}
	ApplyMigrations(doc, LineItemFieldMigrations)
	if doc["item"] != "Gold Ring" {
		t.Fatalf("expected blank item to be backfilled from name, got %#v", doc["item"])
	}
}

func TestApplyMigrations_SalePaidFromPaidAmount(t *testing.T) {
	doc := Document{"paid_amount": 120.0}
	ApplyMigrations(doc, SaleFieldMigrations)
	if doc["paid"] != 120.0 {
		t.Fatalf("expected paid=120, got %#v", doc["paid"])
	}
}
