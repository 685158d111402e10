package workflow

import (
	"fmt"

	"github.com/mmdatafocus/billing_ledger/models"
	"github.com/mmdatafocus/billing_ledger/utils"
	"github.com/shopspring/decimal"
)

type lineTotals struct {
	items    []any
	subtotal decimal.Decimal
	gstTotal decimal.Decimal
	gross    decimal.Decimal
	// qty per canonical item name
	quantities map[string]decimal.Decimal
	rates      map[string]decimal.Decimal
	order      []string
}

// buildLineItems canonicalizes item names against the current inventory and prices every line.
func buildLineItems(input []models.NewLineItem, inv models.Inventory) (lineTotals, error) {
	aliases := NewAliasMap(inv.Names())
	totals := lineTotals{
		items:      make([]any, 0, len(input)),
		quantities: make(map[string]decimal.Decimal),
		rates:      make(map[string]decimal.Decimal),
	}
	for i, in := range input {
		name, ok := aliases.Canonical(in.Item)
		if !ok {
			return totals, fmt.Errorf("items[%d]: %w", i, utils.ErrorInvalidItemName)
		}
		qty := decimal.NewFromFloat(in.Qty)
		rate := decimal.NewFromFloat(in.Rate)
		gst := decimal.NewFromFloat(in.Gst)
		taxable := qty.Mul(rate)
		total := utils.LineTotal(qty, rate, gst)

		totals.subtotal = totals.subtotal.Add(taxable)
		totals.gstTotal = totals.gstTotal.Add(utils.CalculateTaxAmount(taxable, gst))
		totals.gross = totals.gross.Add(total)

		if _, seen := totals.quantities[name]; !seen {
			totals.order = append(totals.order, name)
		}
		totals.quantities[name] = totals.quantities[name].Add(qty)
		totals.rates[name] = rate

		totals.items = append(totals.items, map[string]any{
			"item":  name,
			"qty":   in.Qty,
			"rate":  in.Rate,
			"gst":   in.Gst,
			"total": total.InexactFloat64(),
		})
	}
	return totals, nil
}
