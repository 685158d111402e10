package workflow

import (
	"context"

	"github.com/mmdatafocus/billing_ledger/config"
	"github.com/mmdatafocus/billing_ledger/models"
	"github.com/sirupsen/logrus"
)

// ReconcileIfNeeded runs Reconcile unless purchases, sales and inventory all still carry
// the signatures recorded after the last successful pass.
//
// Signatures are taken again once the pass has written, so a pass that rewrote a
// collection does not trigger another one. A pass with persist failures records no state
// and the next call reconciles again.
func (l *Ledger) ReconcileIfNeeded(ctx context.Context) (models.ReconcileResult, error) {
	sigs, err := l.store.Signatures(ctx)
	if err != nil {
		return models.ReconcileResult{}, err
	}
	state, err := l.store.LoadState(ctx)
	if err != nil {
		return models.ReconcileResult{}, err
	}
	if state != nil && state.Signature == sigs {
		l.logger.WithFields(logrus.Fields{
			"purchase_size":  sigs.Purchase.Size,
			"sales_size":     sigs.Sales.Size,
			"inventory_size": sigs.Inventory.Size,
		}).Info("ledger.reconcile.skipped")
		return models.ReconcileResult{Skipped: true}, nil
	}

	result, err := l.Reconcile(ctx)
	if err != nil {
		return result, err
	}

	after, err := l.store.Signatures(ctx)
	if err != nil {
		config.LogError(l.logger, "changeDetection.go", "ReconcileIfNeeded", "Signatures", result.RunId, err)
		return result, nil
	}
	last := result
	if err := l.store.SaveState(ctx, models.ReconcileState{
		Signature:  after,
		LastResult: &last,
		UpdatedAt:  l.now().UTC(),
	}); err != nil {
		config.LogError(l.logger, "changeDetection.go", "ReconcileIfNeeded", "SaveState", result.RunId, err)
	}
	return result, nil
}
