package workflow

import (
	"context"
	"errors"
	"reflect"

	"github.com/google/uuid"
	"github.com/mmdatafocus/billing_ledger/models"
	"github.com/mmdatafocus/billing_ledger/store"
	"github.com/mmdatafocus/billing_ledger/utils"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Reconcile sanitizes purchase and sale records in place, rebuilds inventory from them
// and persists every collection that changed.
//
// A load failure aborts the pass before anything is written. Persist failures do not:
// each changed collection is saved independently, the ones that failed are named in
// FailedCollections, and the returned error joins their PersistErrors. Writes that
// succeeded are kept.
func (l *Ledger) Reconcile(ctx context.Context) (models.ReconcileResult, error) {
	result := models.ReconcileResult{RunId: uuid.NewString()}
	logger := l.logger.WithField("run_id", result.RunId)
	if cid, ok := utils.GetCorrelationIdFromContext(ctx); ok {
		logger = logger.WithField("correlation_id", cid)
	}

	ctx, span := tracer.Start(ctx, "ledger.reconcile", trace.WithAttributes(attribute.String("run_id", result.RunId)))
	defer span.End()

	release, err := l.guard.Acquire(ctx)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return result, err
	}
	defer release()

	logger.Info("ledger.reconcile.start")

	purchases, err := l.store.LoadPurchases(ctx)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return result, err
	}
	sales, err := l.store.LoadSales(ctx)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return result, err
	}
	invDoc, err := l.store.LoadInventoryDocument(ctx)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return result, err
	}
	prior := models.InventoryFromDocument(invDoc)

	aliases := NewAliasMap(prior.Names())
	result.PurchaseChanged = SanitizePurchases(purchases, aliases)
	result.SalesChanged = SanitizeSales(sales, aliases)
	logger.WithFields(logrus.Fields{
		"purchase_records": len(purchases),
		"sales_records":    len(sales),
		"purchase_changed": result.PurchaseChanged,
		"sales_changed":    result.SalesChanged,
		"aliases":          aliases.Len(),
	}).Info("ledger.reconcile.sanitized")
	logger.WithField("aliases", aliases.Aliases()).Debug("ledger.reconcile.aliases")

	rebuilt := RebuildInventory(purchases, sales, prior, aliases)
	result.InventoryChanged = !reflect.DeepEqual(rebuilt.Document(), invDoc)
	logger.WithFields(logrus.Fields{
		"inventory_items":   len(rebuilt),
		"inventory_changed": result.InventoryChanged,
	}).Info("ledger.reconcile.rebuilt")

	result.PurchaseRecords = len(purchases)
	result.SalesRecords = len(sales)
	result.InventoryItems = len(rebuilt)

	var errs []error
	persist := func(c store.Collection, changed bool, save func() error) {
		if !changed {
			return
		}
		if err := save(); err != nil {
			errs = append(errs, err)
			result.FailedCollections = append(result.FailedCollections, string(c))
			logger.WithError(err).WithField("collection", c).Error("ledger.reconcile.persist_failed")
		}
	}
	persist(store.CollectionPurchase, result.PurchaseChanged, func() error {
		return l.store.SavePurchases(ctx, purchases)
	})
	persist(store.CollectionSales, result.SalesChanged, func() error {
		return l.store.SaveSales(ctx, sales)
	})
	persist(store.CollectionInventory, result.InventoryChanged, func() error {
		return l.store.SaveInventory(ctx, rebuilt)
	})

	span.SetAttributes(
		attribute.Int("purchase_records", result.PurchaseRecords),
		attribute.Int("sales_records", result.SalesRecords),
		attribute.Int("inventory_items", result.InventoryItems),
	)

	if result.AnyChanged() {
		l.writeAudit(ctx, "", AuditModuleDataConsistency, "auto_fix", result.RunId, nil, result)
	}

	err = errors.Join(errs...)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
	}
	logger.WithFields(logrus.Fields{
		"purchase_changed":   result.PurchaseChanged,
		"sales_changed":      result.SalesChanged,
		"inventory_changed":  result.InventoryChanged,
		"failed_collections": result.FailedCollections,
	}).Info("ledger.reconcile.end")
	return result, err
}
