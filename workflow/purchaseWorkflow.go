package workflow

import (
	"context"
	"fmt"

	"github.com/mmdatafocus/billing_ledger/config"
	"github.com/mmdatafocus/billing_ledger/models"
	"github.com/shopspring/decimal"
)

const recordDateLayout = "2006-01-02 15:04:05"

// CreatePurchase records a supplier purchase and adds its quantities to inventory.
func (l *Ledger) CreatePurchase(ctx context.Context, input models.NewPurchase) (models.Purchase, error) {
	if err := l.validate.Struct(input); err != nil {
		return models.Purchase{}, err
	}

	purchases, err := l.store.LoadPurchases(ctx)
	if err != nil {
		return models.Purchase{}, err
	}
	inv, err := l.store.LoadInventory(ctx)
	if err != nil {
		return models.Purchase{}, err
	}

	lines, err := buildLineItems(input.Items, inv)
	if err != nil {
		return models.Purchase{}, err
	}
	grandTotal := lines.gross.Round(2).InexactFloat64()
	paid := decimal.NewFromFloat(input.PaidAmount).Round(2).InexactFloat64()

	record := models.Document{
		"purchase_id":   nextSequenceId(purchases, "purchase_id", "P"),
		"date":          l.now().Format(recordDateLayout),
		"supplier_id":   input.SupplierId,
		"supplier_name": input.SupplierName,
		"items":         lines.items,
		"subtotal":      lines.subtotal.Round(2).InexactFloat64(),
		"gst_total":     lines.gstTotal.Round(2).InexactFloat64(),
		"grand_total":   grandTotal,
		"paid_amount":   paid,
		"due":           dueAmount(grandTotal, paid),
		"payment_mode":  input.PaymentMode,
	}
	purchases = append(purchases, record)
	if err := l.store.SavePurchases(ctx, purchases); err != nil {
		return models.Purchase{}, err
	}

	for _, name := range lines.order {
		addStock(inv, name, lines.quantities[name], lines.rates[name])
	}
	if err := l.store.SaveInventory(ctx, inv); err != nil {
		// The purchase is saved; the next reconciliation pass rebuilds the stock it added.
		config.LogError(l.logger, "purchaseWorkflow.go", "CreatePurchase", "SaveInventory", record["purchase_id"], err)
		return models.Purchase{}, fmt.Errorf("purchase %s saved, stock not updated: %w", record["purchase_id"], err)
	}

	return models.DecodePurchase(record)
}

