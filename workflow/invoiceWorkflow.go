package workflow

import (
	"context"
	"fmt"
	"strings"

	"github.com/mmdatafocus/billing_ledger/config"
	"github.com/mmdatafocus/billing_ledger/models"
	"github.com/mmdatafocus/billing_ledger/utils"
	"github.com/shopspring/decimal"
)

const defaultPaymentMode = "Cash"

// CreateSale records a customer invoice and takes its quantities out of inventory.
// Unless negative stock is allowed, a sale that would take any item below zero is refused
// before anything is written.
func (l *Ledger) CreateSale(ctx context.Context, input models.NewSale) (models.Sale, error) {
	if err := l.validate.Struct(input); err != nil {
		return models.Sale{}, err
	}
	if err := utils.ValidatePhoneNumber(input.Phone, l.phoneCountryCode); err != nil {
		return models.Sale{}, fmt.Errorf("%w: %v", utils.ErrorInvalidPhone, err)
	}

	sales, err := l.store.LoadSales(ctx)
	if err != nil {
		return models.Sale{}, err
	}
	inv, err := l.store.LoadInventory(ctx)
	if err != nil {
		return models.Sale{}, err
	}

	lines, err := buildLineItems(input.Items, inv)
	if err != nil {
		return models.Sale{}, err
	}
	if !l.allowNegativeStock {
		for _, name := range lines.order {
			available := decimal.NewFromFloat(inv[name].Stock)
			if available.LessThan(lines.quantities[name]) {
				return models.Sale{}, fmt.Errorf("%w: %s has %s, requested %s",
					utils.ErrorInsufficientStock, name, available.StringFixed(2), lines.quantities[name].StringFixed(2))
			}
		}
	}

	discountPercent := decimal.NewFromFloat(input.DiscountPercent)
	if discountPercent.IsNegative() {
		discountPercent = decimal.Zero
	} else if discountPercent.GreaterThan(decimal.NewFromInt(100)) {
		discountPercent = decimal.NewFromInt(100)
	}
	gross := lines.gross.Round(2)
	discountAmount := utils.CalculateDiscountAmount(gross, discountPercent)
	grand := gross.Sub(discountAmount)
	if grand.IsNegative() {
		grand = decimal.Zero
	}
	grandTotal := grand.Round(2).InexactFloat64()
	paid := decimal.NewFromFloat(input.PaidAmount).Round(2).InexactFloat64()
	paymentMode := strings.TrimSpace(input.PaymentMode)
	if paymentMode == "" {
		paymentMode = defaultPaymentMode
	}

	record := models.Document{
		"invoice_no":       nextSequenceId(sales, "invoice_no", "INV"),
		"date":             l.now().Format(recordDateLayout),
		"customer_name":    strings.TrimSpace(input.CustomerName),
		"phone":            strings.TrimSpace(input.Phone),
		"items":            lines.items,
		"subtotal":         lines.subtotal.Round(2).InexactFloat64(),
		"gst_total":        lines.gstTotal.Round(2).InexactFloat64(),
		"gross_total":      gross.InexactFloat64(),
		"discount_percent": discountPercent.Round(2).InexactFloat64(),
		"discount_amount":  discountAmount.InexactFloat64(),
		"grand_total":      grandTotal,
		"paid":             paid,
		"paid_amount":      paid,
		"due":              dueAmount(grandTotal, paid),
		"payment_mode":     paymentMode,
	}
	sales = append(sales, record)
	if err := l.store.SaveSales(ctx, sales); err != nil {
		return models.Sale{}, err
	}

	for _, name := range lines.order {
		addStock(inv, name, lines.quantities[name].Neg(), decimal.Zero)
	}
	if err := l.store.SaveInventory(ctx, inv); err != nil {
		config.LogError(l.logger, "invoiceWorkflow.go", "CreateSale", "SaveInventory", record["invoice_no"], err)
		return models.Sale{}, fmt.Errorf("invoice %s saved, stock not updated: %w", record["invoice_no"], err)
	}

	return models.DecodeSale(record)
}

// CancelSale marks an invoice cancelled and returns its quantities to inventory.
// Cancelled invoices stay in the sales collection and are ignored by inventory rebuilds.
func (l *Ledger) CancelSale(ctx context.Context, invoiceNo string, reason string, user string) error {
	sales, err := l.store.LoadSales(ctx)
	if err != nil {
		return err
	}
	target := findRecord(sales, "invoice_no", invoiceNo)
	if target == nil {
		return fmt.Errorf("invoice %s: %w", invoiceNo, utils.ErrorRecordNotFound)
	}
	if target.Bool("cancelled") {
		return fmt.Errorf("invoice %s: %w", invoiceNo, utils.ErrorInvoiceCancelled)
	}
	inv, err := l.store.LoadInventory(ctx)
	if err != nil {
		return err
	}

	before := map[string]any{
		"invoice_no":  target.String("invoice_no"),
		"grand_total": target.Float("grand_total"),
		"paid":        target.Float("paid"),
		"due":         target.Float("due"),
	}

	aliases := NewAliasMap(inv.Names())
	for _, item := range target.Items() {
		name := item.String("item")
		if name == "" {
			name = item.String("name")
		}
		canonical, ok := aliases.Canonical(name)
		if !ok {
			continue
		}
		qty, _ := utils.ToDecimal(item["qty"])
		rate, _ := utils.ToDecimal(item["rate"])
		addStock(inv, canonical, qty, rate)
	}

	target["cancelled"] = true
	target["cancel_reason"] = reason
	target["cancelled_on"] = l.now().Format(recordDateLayout)

	if err := l.store.SaveSales(ctx, sales); err != nil {
		return err
	}
	if err := l.store.SaveInventory(ctx, inv); err != nil {
		config.LogError(l.logger, "invoiceWorkflow.go", "CancelSale", "SaveInventory", invoiceNo, err)
		return fmt.Errorf("invoice %s cancelled, stock not restored: %w", invoiceNo, err)
	}

	l.writeAudit(ctx, user, AuditModuleSales, "cancel_invoice", target.String("invoice_no"), before, map[string]any{
		"cancelled": true,
		"reason":    reason,
	})
	return nil
}

// ReceiveSalePayment pays down the due of an invoice. amount may not exceed the due.
func (l *Ledger) ReceiveSalePayment(ctx context.Context, invoiceNo string, amount float64, mode string, user string) (models.Sale, error) {
	pay := decimal.NewFromFloat(amount)
	if !pay.IsPositive() {
		return models.Sale{}, utils.ErrorInvalidPayAmount
	}
	mode = strings.TrimSpace(mode)
	if mode == "" {
		mode = defaultPaymentMode
	}

	sales, err := l.store.LoadSales(ctx)
	if err != nil {
		return models.Sale{}, err
	}
	target := findRecord(sales, "invoice_no", invoiceNo)
	if target == nil {
		return models.Sale{}, fmt.Errorf("invoice %s: %w", invoiceNo, utils.ErrorRecordNotFound)
	}
	if target.Bool("cancelled") {
		return models.Sale{}, fmt.Errorf("invoice %s: %w", invoiceNo, utils.ErrorInvoiceCancelled)
	}

	dueBefore := decimal.NewFromFloat(target.Float("due"))
	paidKey := "paid"
	if !target.Has(paidKey) {
		paidKey = "paid_amount"
	}
	paidBefore := decimal.NewFromFloat(target.Float(paidKey))
	if !dueBefore.IsPositive() {
		return models.Sale{}, fmt.Errorf("invoice %s: %w", invoiceNo, utils.ErrorNothingDue)
	}
	if pay.GreaterThan(dueBefore) {
		return models.Sale{}, fmt.Errorf("%w (%s)", utils.ErrorPaymentExceedsDue, dueBefore.StringFixed(2))
	}

	paid := paidBefore.Add(pay).Round(2).InexactFloat64()
	due := dueBefore.Sub(pay)
	if due.IsNegative() {
		due = decimal.Zero
	}
	target["paid"] = paid
	target["paid_amount"] = paid
	target["due"] = due.Round(2).InexactFloat64()
	target["last_payment_mode"] = mode

	if err := l.store.SaveSales(ctx, sales); err != nil {
		return models.Sale{}, err
	}

	l.writeAudit(ctx, user, AuditModuleDuePayment, "receive", target.String("invoice_no"),
		map[string]any{"paid": paidBefore.InexactFloat64(), "due": dueBefore.InexactFloat64()},
		map[string]any{"paid": target["paid"], "due": target["due"], "payment_mode": mode},
	)
	return models.DecodeSale(target)
}
