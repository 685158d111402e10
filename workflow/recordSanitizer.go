package workflow

import (
	"github.com/mmdatafocus/billing_ledger/models"
	"github.com/mmdatafocus/billing_ledger/utils"
	"github.com/shopspring/decimal"
)

// Canonical paid-amount field per collection. Purchases and sales disagree for historical reasons.
const (
	purchasePaidField = "paid_amount"
	salePaidField     = "paid"
)

// SanitizePurchases normalizes purchase records in place and reports whether any changed.
func SanitizePurchases(purchases []models.Document, aliases *AliasMap) bool {
	return sanitizeRecords(purchases, aliases, models.PurchaseFieldMigrations, purchasePaidField)
}

// SanitizeSales normalizes sale records in place and reports whether any changed.
func SanitizeSales(sales []models.Document, aliases *AliasMap) bool {
	return sanitizeRecords(sales, aliases, models.SaleFieldMigrations, salePaidField)
}

func sanitizeRecords(records []models.Document, aliases *AliasMap, migrations []models.FieldMigration, paidField string) bool {
	changed := false
	for _, record := range records {
		if sanitizeRecord(record, aliases, migrations, paidField) {
			changed = true
		}
	}
	return changed
}

func sanitizeRecord(record models.Document, aliases *AliasMap, migrations []models.FieldMigration, paidField string) bool {
	changed := models.ApplyMigrations(record, migrations)

	lineSum := decimal.Zero
	for _, item := range record.Items() {
		if sanitizeLineItem(item, aliases) {
			changed = true
		}
		lineSum = lineSum.Add(decimal.NewFromFloat(item.Float("total")))
	}

	if !record.Has("grand_total") {
		record["grand_total"] = lineSum.Round(2).InexactFloat64()
		changed = true
	} else if record.SetFloat("grand_total", record.Float("grand_total")) {
		changed = true
	}
	if record.SetFloat(paidField, record.Float(paidField)) {
		changed = true
	}

	if record.SetFloat("due", dueAmount(record.Float("grand_total"), record.Float(paidField))) {
		changed = true
	}
	return changed
}

func sanitizeLineItem(item models.Document, aliases *AliasMap) bool {
	changed := models.ApplyMigrations(item, models.LineItemFieldMigrations)

	if name, ok := aliases.Canonical(item.String("item")); ok {
		if current, isString := item["item"].(string); !isString || current != name {
			item["item"] = name
			changed = true
		}
	}

	qty := item.Float("qty")
	rate := item.Float("rate")
	gst := item.Float("gst")
	for key, v := range map[string]float64{"qty": qty, "rate": rate, "gst": gst} {
		if item.SetFloat(key, v) {
			changed = true
		}
	}

	total := utils.LineTotal(decimal.NewFromFloat(qty), decimal.NewFromFloat(rate), decimal.NewFromFloat(gst))
	if item.SetFloat("total", total.InexactFloat64()) {
		changed = true
	}
	return changed
}

// dueAmount is max(grandTotal - paid, 0) rounded to 2 places.
func dueAmount(grandTotal, paid float64) float64 {
	due := decimal.NewFromFloat(grandTotal).Sub(decimal.NewFromFloat(paid))
	if due.IsNegative() {
		return 0
	}
	return due.Round(2).InexactFloat64()
}
