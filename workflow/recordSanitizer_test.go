package workflow

import (
	"testing"

	"github.com/mmdatafocus/billing_ledger/utils"
	"github.com/shopspring/decimal"
)

func TestSanitizePurchases_BackfillsAndCoerces(t *testing.T) {
	purchases := docs(t, `[{
		"purchase_id": "P0001",
		"supplier": "Acme",
		"paid": 500,
		"items": [{"name": "Gold Ring", "qty": "2", "rate": "1,000", "gst_percent": 3}]
	}]`)
	aliases := NewAliasMap(nil)
	if !SanitizePurchases(purchases, aliases) {
		t.Fatalf("expected changes")
	}
	p := purchases[0]
	item := p.Items()[0]
	if item["item"] != "Gold Ring" || item["qty"] != 2.0 || item["rate"] != 1000.0 || item["gst"] != 3.0 {
		t.Fatalf("line item not normalized: %#v", item)
	}
	if item["total"] != 2060.0 {
		t.Fatalf("expected total 2060, got %#v", item["total"])
	}
	if p["grand_total"] != 2060.0 || p["paid_amount"] != 500.0 || p["due"] != 1560.0 {
		t.Fatalf("unexpected header totals: %#v", p)
	}
	if p["supplier_name"] != "Acme" || !p.Has("supplier") || !item.Has("name") {
		t.Fatalf("legacy fields must be backfilled and kept: %#v", p)
	}
}

func TestSanitizeSales_MalformedValuesDefaultToZero(t *testing.T) {
	sales := docs(t, `[{
		"invoice_no": "INV0001",
		"grand_total": "450",
		"paid": "abc",
		"items": [{"item": "Ring", "qty": null, "rate": {"x": 1}, "gst": "n/a"}]
	}]`)
	SanitizeSales(sales, NewAliasMap(nil))
	s := sales[0]
	item := s.Items()[0]
	if item["qty"] != 0.0 || item["rate"] != 0.0 || item["gst"] != 0.0 || item["total"] != 0.0 {
		t.Fatalf("expected zeroed line item, got %#v", item)
	}
	// An existing grand total is kept, only coerced.
	if s["grand_total"] != 450.0 || s["paid"] != 0.0 || s["due"] != 450.0 {
		t.Fatalf("unexpected header totals: %#v", s)
	}
}

func TestSanitize_LineTotalsAreClosed(t *testing.T) {
	purchases := docs(t, `[{"items": [
		{"item": "A", "qty": 3, "rate": 33.33, "gst": 18, "total": 1},
		{"item": "B", "qty": 1.5, "rate": 19.99, "gst": 12},
		{"item": "C", "qty": 7, "rate": 0.1, "gst": 0, "total": 0.7}
	]}]`)
	SanitizePurchases(purchases, NewAliasMap(nil))
	for _, item := range purchases[0].Items() {
		qty, _ := utils.ToDecimal(item["qty"])
		rate, _ := utils.ToDecimal(item["rate"])
		gst, _ := utils.ToDecimal(item["gst"])
		expected := utils.LineTotal(qty, rate, gst).InexactFloat64()
		if item["total"] != expected {
			t.Fatalf("item %v: expected total %v, got %v", item["item"], expected, item["total"])
		}
	}
}

func TestSanitize_DueInvariant(t *testing.T) {
	cases := []struct {
		grand, paid, expected float64
	}{
		{1000, 400, 600},
		{1000, 1000, 0},
		{1000, 1200, 0},
		{99.999, 0, 100},
		{0, 0, 0},
	}
	for _, tc := range cases {
		sales := docs(t, `[{}]`)
		sales[0]["grand_total"] = tc.grand
		sales[0]["paid"] = tc.paid
		SanitizeSales(sales, NewAliasMap(nil))
		if sales[0]["due"] != tc.expected {
			t.Fatalf("grand=%v paid=%v: expected due %v, got %v", tc.grand, tc.paid, tc.expected, sales[0]["due"])
		}
		due := decimal.NewFromFloat(sales[0].Float("due"))
		if due.IsNegative() || !due.Equal(due.Round(2)) {
			t.Fatalf("due %v must be non-negative with 2 decimals", due)
		}
	}
}

func TestSanitize_SecondRunIsNoop(t *testing.T) {
	sales := docs(t, `[{
		"created_on": "2024-01-01",
		"payment_type": "Cash",
		"paid_amount": 100,
		"due_amount": 5,
		"items": [{"name": "gold ring", "qty": "1", "rate": 250, "gst_percent": 3}]
	}]`)
	aliases := NewAliasMap([]string{"Gold Ring"})
	if !SanitizeSales(sales, aliases) {
		t.Fatalf("expected first run to change records")
	}
	if SanitizeSales(sales, NewAliasMap([]string{"Gold Ring"})) {
		t.Fatalf("expected second run to change nothing: %#v", sales[0])
	}
	if sales[0].Items()[0]["item"] != "Gold Ring" {
		t.Fatalf("expected inventory spelling, got %#v", sales[0].Items()[0]["item"])
	}
}

func TestSanitize_BlankNamesAreLeftAlone(t *testing.T) {
	purchases := docs(t, `[{"items": [{"item": "  ", "qty": 2, "rate": 5}]}]`)
	SanitizePurchases(purchases, NewAliasMap(nil))
	item := purchases[0].Items()[0]
	if item["item"] != "  " {
		t.Fatalf("blank name must be untouched, got %#v", item["item"])
	}
	if item["total"] != 10.0 {
		t.Fatalf("blank-named line must still be summed, got %#v", item["total"])
	}
}
