package workflow

import (
	"github.com/mmdatafocus/billing_ledger/models"
	"github.com/mmdatafocus/billing_ledger/utils"
	"github.com/shopspring/decimal"
)

type itemPosition struct {
	qty     decimal.Decimal
	rate    decimal.Decimal
	hasRate bool
}

// RebuildInventory derives the inventory snapshot from sanitized purchase and sale history.
//
// Purchases add quantity and set the item's rate, last record wins. Sales that are not
// cancelled subtract quantity and only seed a rate the purchases never set. Items of prior
// that saw no transaction this pass are carried forward unchanged. Stock may go negative.
func RebuildInventory(purchases []models.Document, sales []models.Document, prior models.Inventory, aliases *AliasMap) models.Inventory {
	positions := make(map[string]*itemPosition)
	position := func(name string) *itemPosition {
		p, ok := positions[name]
		if !ok {
			p = &itemPosition{}
			positions[name] = p
		}
		return p
	}

	for _, purchase := range purchases {
		for _, item := range purchase.Items() {
			name, ok := aliases.Canonical(item.String("item"))
			if !ok {
				continue
			}
			p := position(name)
			qty, _ := utils.ToDecimal(item["qty"])
			rate, _ := utils.ToDecimal(item["rate"])
			p.qty = p.qty.Add(qty)
			p.rate = rate
			p.hasRate = true
		}
	}

	for _, sale := range sales {
		if sale.Bool("cancelled") {
			continue
		}
		for _, item := range sale.Items() {
			name, ok := aliases.Canonical(item.String("item"))
			if !ok {
				continue
			}
			p := position(name)
			qty, _ := utils.ToDecimal(item["qty"])
			p.qty = p.qty.Sub(qty)
			if !p.hasRate {
				p.rate, _ = utils.ToDecimal(item["rate"])
				p.hasRate = true
			}
		}
	}

	for _, invName := range prior.Names() {
		name, ok := aliases.Canonical(invName)
		if !ok {
			name = invName
		}
		if _, active := positions[name]; active {
			continue
		}
		entry := prior[invName]
		positions[name] = &itemPosition{
			qty:     decimal.NewFromFloat(entry.Stock),
			rate:    decimal.NewFromFloat(entry.Rate),
			hasRate: true,
		}
	}

	rebuilt := make(models.Inventory, len(positions))
	for name, p := range positions {
		rebuilt[name] = models.InventoryEntry{
			Stock: p.qty.Round(2).InexactFloat64(),
			Rate:  p.rate.Round(2).InexactFloat64(),
		}
	}
	return rebuilt
}
