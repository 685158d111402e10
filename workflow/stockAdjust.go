package workflow

import (
	"github.com/mmdatafocus/billing_ledger/models"
	"github.com/shopspring/decimal"
)

// addStock moves name's stock by delta. A non-zero rate replaces the recorded rate,
// matching how purchases set the last rate.
func addStock(inv models.Inventory, name string, delta decimal.Decimal, rate decimal.Decimal) {
	entry := inv[name]
	entry.Stock = decimal.NewFromFloat(entry.Stock).Add(delta).Round(2).InexactFloat64()
	if !rate.IsZero() {
		entry.Rate = rate.Round(2).InexactFloat64()
	}
	inv[name] = entry
}
